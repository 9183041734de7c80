package flow

import (
	"fmt"
	"strings"
)

// IsValidConnection reports whether c may be added next to edges.
// A source handle carries at most one outgoing edge; fan-in and self-loops are allowed.
func IsValidConnection(edges []Edge, c Connection) bool {
	for _, e := range edges {
		if e.Source == c.Source && e.SourceHandle == c.SourceHandle {
			return false
		}
	}
	return true
}

// EntryPointError reports a flow with more than one possible starting node.
// Unwraps to ErrAmbiguousEntryPoint.
type EntryPointError struct {
	Nodes []string // ids of the nodes with no incoming edges, in node order
}

func (e *EntryPointError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", ErrAmbiguousEntryPoint.Error(), strings.Join(e.Nodes, ", "))
}

func (e *EntryPointError) Unwrap() error { return ErrAmbiguousEntryPoint }

// EntryPoints returns the ids of nodes that no edge targets, in node order.
func EntryPoints(g Graph) []string {
	targeted := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		targeted[e.Target] = true
	}
	var out []string
	for _, n := range g.Nodes {
		if !targeted[n.ID] {
			out = append(out, n.ID)
		}
	}
	return out
}

// Validate checks that a flow with more than one node has exactly one entry point.
// It is recomputed from scratch on every call.
func Validate(g Graph) error {
	if len(g.Nodes) <= 1 {
		return nil
	}
	if entries := EntryPoints(g); len(entries) > 1 {
		return &EntryPointError{Nodes: entries}
	}
	return nil
}

// checkStructure rejects graphs that no editor operation could have produced:
// duplicate node ids, duplicate edge ids and edges that reference unknown nodes.
func checkStructure(g Graph) error {
	ids := make(map[string]bool, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node with empty id")
		}
		if ids[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		ids[n.ID] = true
	}
	edgeIDs := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		if edgeIDs[e.ID] {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true
		if !ids[e.Source] {
			return fmt.Errorf("edge %s references unknown source %q", e.ID, e.Source)
		}
		if !ids[e.Target] {
			return fmt.Errorf("edge %s references unknown target %q", e.ID, e.Target)
		}
	}
	return nil
}
