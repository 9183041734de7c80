package flow

import (
	"context"
	"errors"
)

var (
	ErrAmbiguousEntryPoint = errors.New("flow: more than one node has no incoming edges")
	ErrInvalidConnection   = errors.New("flow: source handle already has an outgoing edge")
	ErrNodeNotFound        = errors.New("flow: node not found")
	ErrEdgeNotFound        = errors.New("flow: edge not found")
	ErrUnknownNodeType     = errors.New("flow: unknown node type")
	ErrUnknownField        = errors.New("flow: unknown payload field")
	ErrMalformedSnapshot   = errors.New("flow: malformed snapshot")
	ErrInvalidTheme        = errors.New("flow: invalid theme")
	ErrNoSnapshots         = errors.New("flow: editor has no snapshot store")
)

// Store is a durable key-value slot. The editor keeps its snapshot under one
// key and its theme preference under another; writes overwrite unconditionally.
type Store interface {
	// Get returns nil, nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// Delete is a no-op if the key is absent.
	Delete(ctx context.Context, key string) error
}
