package flow

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
)

// User-visible save outcomes.
const (
	SaveSucceededMessage = "Flow saved successfully!"
	SaveRejectedMessage  = "Error: More than one node has an empty target handle (no incoming edges)."
)

// Editor is one flow-editing session. It exclusively owns the session's nodes
// and edges; callers only ever receive copies.
//
// An Editor is driven by one event at a time and is not safe for concurrent
// use; callers that share one across goroutines must serialize access.
type Editor struct {
	nodes    []Node
	edges    []Edge
	ids      *IDGenerator
	selected string

	snapshots *Snapshots
	logger    *zap.Logger
}

// Option configures an Editor.
type Option func(*Editor)

// WithLogger sets the editor's logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSnapshots attaches the persistence adapter used by Save and Load.
func WithSnapshots(s *Snapshots) Option {
	return func(e *Editor) { e.snapshots = s }
}

// WithGraph replaces the built-in welcome flow as the starting graph.
func WithGraph(g Graph) Option {
	return func(e *Editor) {
		g = g.Clone()
		e.nodes, e.edges = g.Nodes, g.Edges
	}
}

// NewEditor opens a session on the welcome flow (or the WithGraph graph).
// The id generator starts at the number of preloaded nodes, or past the
// largest numeric suffix among them if that is higher.
func NewEditor(opts ...Option) *Editor {
	g := WelcomeGraph()
	e := &Editor{
		nodes:  g.Nodes,
		edges:  g.Edges,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.ids = NewIDGenerator(max(len(e.nodes), maxNumericSuffix(e.nodes)+1))
	return e
}

// Nodes returns a copy of the node sequence.
func (e *Editor) Nodes() []Node {
	out := make([]Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// Edges returns a copy of the edge sequence.
func (e *Editor) Edges() []Edge {
	out := make([]Edge, len(e.edges))
	copy(out, e.edges)
	return out
}

// Graph returns a copy of the current flow.
func (e *Editor) Graph() Graph {
	return Graph{Nodes: e.Nodes(), Edges: e.Edges()}
}

// Node returns the node with the given id.
func (e *Editor) Node(id string) (Node, bool) {
	if i := e.nodeIndex(id); i >= 0 {
		return e.nodes[i], true
	}
	return Node{}, false
}

// NextID reports the numeric suffix the next created node will get.
func (e *Editor) NextID() int { return e.ids.Peek() }

// CreateNode appends a node of type t at pos with the type's placeholder payload.
func (e *Editor) CreateNode(t NodeType, pos Position) (Node, error) {
	data, err := DefaultPayload(t)
	if err != nil {
		return Node{}, err
	}
	n := Node{ID: e.ids.Next(), Position: pos, Data: data}
	e.nodes = append(e.nodes, n)
	e.logger.Debug("node created", zap.String("id", n.ID), zap.String("type", string(t)))
	return n, nil
}

// Drop handles a palette drop: tag is the drag payload, pos the drop point in
// canvas coordinates. The new node becomes the selected node.
func (e *Editor) Drop(tag string, pos Position) (Node, error) {
	t, err := ParseNodeType(tag)
	if err != nil {
		return Node{}, err
	}
	n, err := e.CreateNode(t, pos)
	if err != nil {
		return Node{}, err
	}
	e.selected = n.ID
	return n, nil
}

// Connect adds an edge for c. It returns ErrNodeNotFound if either endpoint is
// missing and ErrInvalidConnection if c's source handle already has an edge;
// in both cases nothing changes.
func (e *Editor) Connect(c Connection) (Edge, error) {
	if e.nodeIndex(c.Source) < 0 || e.nodeIndex(c.Target) < 0 {
		return Edge{}, ErrNodeNotFound
	}
	if !IsValidConnection(e.edges, c) {
		e.logger.Debug("connection rejected",
			zap.String("source", c.Source),
			zap.String("sourceHandle", c.SourceHandle),
			zap.String("target", c.Target),
		)
		return Edge{}, ErrInvalidConnection
	}
	edge := Edge{
		ID:           e.edgeID(c),
		Source:       c.Source,
		SourceHandle: c.SourceHandle,
		Target:       c.Target,
		TargetHandle: c.TargetHandle,
	}
	e.edges = append(e.edges, edge)
	return edge, nil
}

// UpdateNodeField replaces one field of a node's payload. The node's id, type
// and position are untouched. Nothing changes on error.
func (e *Editor) UpdateNodeField(id, field, value string) error {
	i := e.nodeIndex(id)
	if i < 0 {
		return ErrNodeNotFound
	}
	if e.nodes[i].Data == nil {
		return unknownField("", field)
	}
	data, err := e.nodes[i].Data.With(field, value)
	if err != nil {
		return err
	}
	e.nodes[i].Data = data
	return nil
}

// DeleteNode removes a node together with every edge touching it.
// Returns false if no such node exists.
func (e *Editor) DeleteNode(id string) bool {
	i := e.nodeIndex(id)
	if i < 0 {
		return false
	}
	e.nodes = append(e.nodes[:i:i], e.nodes[i+1:]...)

	kept := e.edges[:0:0]
	for _, edge := range e.edges {
		if edge.Source != id && edge.Target != id {
			kept = append(kept, edge)
		}
	}
	removed := len(e.edges) - len(kept)
	e.edges = kept

	if e.selected == id {
		e.selected = ""
	}
	e.logger.Debug("node deleted", zap.String("id", id), zap.Int("edges_removed", removed))
	return true
}

// RemoveEdge removes one edge. Returns false if no such edge exists.
func (e *Editor) RemoveEdge(id string) bool {
	i := e.edgeIndex(id)
	if i < 0 {
		return false
	}
	e.edges = append(e.edges[:i:i], e.edges[i+1:]...)
	return true
}

// Select makes id the active node for editing.
func (e *Editor) Select(id string) bool {
	if e.nodeIndex(id) < 0 {
		return false
	}
	e.selected = id
	return true
}

// ClearSelection deselects the active node.
func (e *Editor) ClearSelection() { e.selected = "" }

// Selected returns the active node, if any.
func (e *Editor) Selected() (Node, bool) {
	if e.selected == "" {
		return Node{}, false
	}
	return e.Node(e.selected)
}

// Validate runs the flow validator over the current graph.
func (e *Editor) Validate() error {
	return Validate(Graph{Nodes: e.nodes, Edges: e.edges})
}

// Save validates the flow and, if it passes, overwrites the stored snapshot.
// A validation failure leaves both the editor and the store untouched.
func (e *Editor) Save(ctx context.Context) error {
	if e.snapshots == nil {
		return ErrNoSnapshots
	}
	if err := e.Validate(); err != nil {
		e.logger.Info("save rejected", zap.Error(err))
		return err
	}
	return e.snapshots.Save(ctx, e.Graph())
}

// Load replaces the flow with the stored snapshot and resyncs the id generator.
// If no usable snapshot exists it reports false and keeps the current graph.
func (e *Editor) Load(ctx context.Context) (bool, error) {
	if e.snapshots == nil {
		return false, ErrNoSnapshots
	}
	g, err := e.snapshots.Load(ctx)
	if err != nil {
		return false, err
	}
	if g == nil {
		return false, nil
	}
	e.nodes, e.edges = g.Nodes, g.Edges
	e.selected = ""
	e.ids.ResyncNodes(e.nodes)
	e.logger.Debug("snapshot loaded",
		zap.Int("nodes", len(e.nodes)),
		zap.Int("edges", len(e.edges)),
		zap.Int("next_id", e.ids.Peek()),
	)
	return true, nil
}

// SaveOutcome maps the result of Save to the message shown to the user.
func SaveOutcome(err error) string {
	switch {
	case err == nil:
		return SaveSucceededMessage
	case errors.Is(err, ErrAmbiguousEntryPoint):
		return SaveRejectedMessage
	}
	return "Error: " + err.Error()
}

func (e *Editor) nodeIndex(id string) int {
	for i, n := range e.nodes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (e *Editor) edgeIndex(id string) int {
	for i, edge := range e.edges {
		if edge.ID == id {
			return i
		}
	}
	return -1
}

// edgeID derives an id from the connection's endpoints. Because a source
// handle carries at most one edge the base id is normally free already.
func (e *Editor) edgeID(c Connection) string {
	base := "e_" + c.Source + handleSuffix(c.SourceHandle) + "-" + c.Target + handleSuffix(c.TargetHandle)
	id := base
	for i := 1; e.edgeIndex(id) >= 0; i++ {
		id = base + "_" + strconv.Itoa(i)
	}
	return id
}

func handleSuffix(h string) string {
	if h == "" {
		return ""
	}
	return ":" + h
}
