package flow

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// DefaultSnapshotKey is the slot the editor saves its flow under.
const DefaultSnapshotKey = "flow-data"

// SnapshotError describes why a stored snapshot was rejected.
// Unwraps to ErrMalformedSnapshot.
type SnapshotError struct {
	Key string
	Msg string
	Err error
}

func (e *SnapshotError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s %q: %s", ErrMalformedSnapshot.Error(), e.Key, e.Msg)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *SnapshotError) Unwrap() error { return ErrMalformedSnapshot }

// Snapshots reads and writes the serialized flow in a single Store slot.
type Snapshots struct {
	store  Store
	key    string
	logger *zap.Logger
}

// SnapshotOption configures Snapshots.
type SnapshotOption func(*Snapshots)

// WithSnapshotKey overrides DefaultSnapshotKey.
func WithSnapshotKey(key string) SnapshotOption {
	return func(s *Snapshots) {
		if key != "" {
			s.key = key
		}
	}
}

// WithSnapshotLogger sets the logger used to report rejected snapshots.
func WithSnapshotLogger(l *zap.Logger) SnapshotOption {
	return func(s *Snapshots) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSnapshots creates a persistence adapter over store.
func NewSnapshots(store Store, opts ...SnapshotOption) *Snapshots {
	s := &Snapshots{store: store, key: DefaultSnapshotKey, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot name.
func (s *Snapshots) Key() string { return s.key }

// Save overwrites the slot with g. It does not validate the flow; Editor.Save does.
func (s *Snapshots) Save(ctx context.Context, g Graph) error {
	b, err := EncodeSnapshot(g)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("flow: save snapshot: %w", err)
	}
	s.logger.Debug("snapshot saved",
		zap.String("key", s.key),
		zap.Int("nodes", len(g.Nodes)),
		zap.Int("edges", len(g.Edges)),
	)
	return nil
}

// Load reads the slot. Returns nil, nil if the slot is absent, empty or holds a
// malformed snapshot; rejected snapshots are logged, not returned.
// Only Store failures are returned as errors.
func (s *Snapshots) Load(ctx context.Context) (*Graph, error) {
	b, err := s.store.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("flow: load snapshot: %w", err)
	}
	if len(b) == 0 {
		return nil, nil
	}
	g, err := DecodeSnapshot(b)
	if err != nil {
		s.logger.Warn("ignoring stored snapshot",
			zap.String("key", s.key),
			zap.Error(withKey(err, s.key)),
		)
		return nil, nil
	}
	return g, nil
}

// Clear deletes the slot.
func (s *Snapshots) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("flow: clear snapshot: %w", err)
	}
	return nil
}

func withKey(err error, key string) error {
	if se, ok := err.(*SnapshotError); ok {
		se.Key = key
	}
	return err
}

// EncodeSnapshot serializes g as {"nodes": [...], "edges": [...]}.
func EncodeSnapshot(g Graph) ([]byte, error) {
	if g.Nodes == nil {
		g.Nodes = []Node{}
	}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	b, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("flow: encode snapshot: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses a stored snapshot. A missing edges array is treated as
// empty; a missing or empty nodes array, duplicate ids and dangling edges are
// rejected with a *SnapshotError.
func DecodeSnapshot(b []byte) (*Graph, error) {
	var raw struct {
		Nodes []Node `json:"nodes"`
		Edges []Edge `json:"edges"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, &SnapshotError{Msg: "parse", Err: err}
	}
	if len(raw.Nodes) == 0 {
		return nil, &SnapshotError{Msg: "no nodes"}
	}
	g := &Graph{Nodes: raw.Nodes, Edges: raw.Edges}
	if g.Edges == nil {
		g.Edges = []Edge{}
	}
	if err := checkStructure(*g); err != nil {
		return nil, &SnapshotError{Msg: "structure", Err: err}
	}
	return g, nil
}
