package flow

// ChangeType is the kind of incremental update the canvas reports.
type ChangeType string

const (
	ChangePosition ChangeType = "position"
	ChangeSelect   ChangeType = "select"
	ChangeRemove   ChangeType = "remove"
)

// NodeChange is one entry of a batched node update (drag, multi-select, delete key).
type NodeChange struct {
	Type     ChangeType `json:"type" validate:"required,oneof=position select remove"`
	ID       string     `json:"id" validate:"required"`
	Position *Position  `json:"position,omitempty"`
	Selected bool       `json:"selected,omitempty"`
}

// EdgeChange is one entry of a batched edge update.
type EdgeChange struct {
	Type     ChangeType `json:"type" validate:"required,oneof=select remove"`
	ID       string     `json:"id" validate:"required"`
	Selected bool       `json:"selected,omitempty"`
}

// ApplyNodeChanges applies a batch of canvas node changes in order.
// Changes naming unknown nodes are skipped. Removing a node removes its edges too.
func (e *Editor) ApplyNodeChanges(changes []NodeChange) {
	for _, c := range changes {
		switch c.Type {
		case ChangeRemove:
			e.DeleteNode(c.ID)
		case ChangePosition:
			if i := e.nodeIndex(c.ID); i >= 0 && c.Position != nil {
				e.nodes[i].Position = *c.Position
			}
		case ChangeSelect:
			if i := e.nodeIndex(c.ID); i >= 0 {
				e.nodes[i].Selected = c.Selected
			}
		}
	}
}

// ApplyEdgeChanges applies a batch of canvas edge changes in order.
// Changes naming unknown edges are skipped.
func (e *Editor) ApplyEdgeChanges(changes []EdgeChange) {
	for _, c := range changes {
		switch c.Type {
		case ChangeRemove:
			e.RemoveEdge(c.ID)
		case ChangeSelect:
			if i := e.edgeIndex(c.ID); i >= 0 {
				e.edges[i].Selected = c.Selected
			}
		}
	}
}
