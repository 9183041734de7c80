package flow

import (
	"encoding/json"
	"fmt"
)

// NodeType identifies the kind of message a node carries.
// The string values double as the drag-payload tags sent by the palette.
type NodeType string

const (
	TextNode  NodeType = "textNode"
	ImageNode NodeType = "imageNode"
	VideoNode NodeType = "videoNode"
)

// ParseNodeType converts a palette tag into a NodeType.
func ParseNodeType(tag string) (NodeType, error) {
	switch t := NodeType(tag); t {
	case TextNode, ImageNode, VideoNode:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownNodeType, tag)
}

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Graph is the unit of persistence: an ordered node sequence and an ordered edge sequence.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Node is a typed, positioned unit of chatbot content.
// Its type is derived from Data, so the two can never disagree.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`
	Data     Payload  `json:"data"`
	Selected bool     `json:"selected,omitempty"`
}

// Type returns the node's type, or "" when it has no payload.
func (n Node) Type() NodeType {
	if n.Data == nil {
		return ""
	}
	return n.Data.Type()
}

type nodeJSON struct {
	ID       string          `json:"id"`
	Type     NodeType        `json:"type"`
	Position Position        `json:"position"`
	Data     json.RawMessage `json:"data"`
	Selected bool            `json:"selected,omitempty"`
}

// MarshalJSON writes the node with an explicit type tag next to its payload.
func (n Node) MarshalJSON() ([]byte, error) {
	if n.Data == nil {
		return nil, fmt.Errorf("flow: node %s has no payload", n.ID)
	}
	data, err := json.Marshal(n.Data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(nodeJSON{
		ID:       n.ID,
		Type:     n.Data.Type(),
		Position: n.Position,
		Data:     data,
		Selected: n.Selected,
	})
}

// UnmarshalJSON decodes the payload variant selected by the type tag.
func (n *Node) UnmarshalJSON(b []byte) error {
	var raw nodeJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	t, err := ParseNodeType(string(raw.Type))
	if err != nil {
		return err
	}
	data, err := decodePayload(t, raw.Data)
	if err != nil {
		return fmt.Errorf("flow: node %s: %w", raw.ID, err)
	}
	*n = Node{
		ID:       raw.ID,
		Position: raw.Position,
		Data:     data,
		Selected: raw.Selected,
	}
	return nil
}

// Edge is a directed connection from a source node's handle to a target node's handle.
// Empty handles mean the node's single default handle.
type Edge struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	Target       string `json:"target"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Selected     bool   `json:"selected,omitempty"`
}

// Connection is a proposed edge, as reported by the canvas when the user drags
// from one handle to another.
type Connection struct {
	Source       string `json:"source" validate:"required"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	Target       string `json:"target" validate:"required"`
	TargetHandle string `json:"targetHandle,omitempty"`
}
