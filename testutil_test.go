package flow_test

import (
	"github.com/meikuraledutech/flow"
)

func textNode(id string) flow.Node {
	return flow.Node{ID: id, Data: flow.TextData{Label: "Message", Text: id}}
}

func edge(src, dst string) flow.Edge {
	return flow.Edge{ID: "e_" + src + "-" + dst, Source: src, Target: dst}
}

// chain builds ids[0] -> ids[1] -> ... as text nodes.
func chain(ids ...string) flow.Graph {
	g := flow.Graph{Edges: []flow.Edge{}}
	for i, id := range ids {
		g.Nodes = append(g.Nodes, textNode(id))
		if i > 0 {
			g.Edges = append(g.Edges, edge(ids[i-1], id))
		}
	}
	return g
}
