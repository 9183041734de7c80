package flow_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meikuraledutech/flow"
)

func TestValidate_SingleNode(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{textNode("A")}}
	assert.NoError(t, flow.Validate(g))
}

func TestValidate_EmptyGraph(t *testing.T) {
	assert.NoError(t, flow.Validate(flow.Graph{}))
}

func TestValidate_TwoUnconnectedNodes(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{textNode("A"), textNode("B")}}

	err := flow.Validate(g)
	require.Error(t, err)
	assert.True(t, errors.Is(err, flow.ErrAmbiguousEntryPoint))

	var epe *flow.EntryPointError
	require.True(t, errors.As(err, &epe))
	assert.Equal(t, []string{"A", "B"}, epe.Nodes)
}

func TestValidate_Chain(t *testing.T) {
	assert.NoError(t, flow.Validate(chain("A", "B", "C")))
}

func TestValidate_FanInKeepsSingleEntry(t *testing.T) {
	// D is targeted by both B and C; A is the only node nothing points at.
	g := chain("A", "B", "D")
	g.Nodes = append(g.Nodes, textNode("C"))
	g.Edges = append(g.Edges,
		flow.Edge{ID: "e_A:alt-C", Source: "A", SourceHandle: "alt", Target: "C"},
		edge("C", "D"),
	)
	assert.NoError(t, flow.Validate(g))
}

func TestValidate_CycleWithNoEntryPasses(t *testing.T) {
	// Only in-degree is checked; a pure cycle has zero entry points and passes.
	g := chain("A", "B")
	g.Edges = append(g.Edges, edge("B", "A"))
	assert.NoError(t, flow.Validate(g))
}

func TestValidate_Idempotent(t *testing.T) {
	g := flow.Graph{Nodes: []flow.Node{textNode("A"), textNode("B"), textNode("C")}}
	first := flow.Validate(g)
	second := flow.Validate(g)
	assert.Equal(t, first, second)

	ok := chain("A", "B")
	assert.Equal(t, flow.Validate(ok), flow.Validate(ok))
}

func TestEntryPoints(t *testing.T) {
	g := chain("A", "B")
	g.Nodes = append(g.Nodes, textNode("C"))
	assert.Equal(t, []string{"A", "C"}, flow.EntryPoints(g))
}

func TestIsValidConnection(t *testing.T) {
	edges := []flow.Edge{edge("A", "B")}

	tests := []struct {
		name string
		conn flow.Connection
		want bool
	}{
		{"same source handle is rejected", flow.Connection{Source: "A", Target: "C"}, false},
		{"other handle on same source is allowed", flow.Connection{Source: "A", SourceHandle: "alt", Target: "C"}, true},
		{"fan-in is allowed", flow.Connection{Source: "C", Target: "B"}, true},
		{"self-loop is allowed", flow.Connection{Source: "B", Target: "B"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, flow.IsValidConnection(edges, tt.conn))
		})
	}
}
