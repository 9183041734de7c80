package flow

// Placeholder content for freshly dropped nodes.
const (
	DefaultText     = "Hello! How can I help you today? ✨"
	DefaultImageURL = "https://images.unsplash.com/photo-1611162617474-5b21e879e113?q=80&w=600&auto=format&fit=crop"
	DefaultVideoURL = "https://www.w3schools.com/html/mov_bbb.mp4"
)

// DefaultPayload returns the placeholder payload for a new node of type t.
func DefaultPayload(t NodeType) (Payload, error) {
	switch t {
	case TextNode:
		return TextData{Label: "Message", Text: DefaultText}, nil
	case ImageNode:
		return ImageData{Label: "Image", ImageURL: DefaultImageURL}, nil
	case VideoNode:
		return VideoData{Label: "Video", VideoURL: DefaultVideoURL}, nil
	}
	_, err := ParseNodeType(string(t))
	return nil, err
}

// PaletteItem is one draggable entry in the node palette.
type PaletteItem struct {
	Type  NodeType `json:"type"`
	Label string   `json:"label"`
}

// Palette lists the node types a user can drag onto the canvas, in display order.
func Palette() []PaletteItem {
	return []PaletteItem{
		{Type: TextNode, Label: "Message"},
		{Type: ImageNode, Label: "Image"},
		{Type: VideoNode, Label: "Video"},
	}
}

// WelcomeGraph is the starter flow a new editor opens with when nothing is saved.
func WelcomeGraph() Graph {
	return Graph{
		Nodes: []Node{
			{
				ID:       "node_0",
				Position: Position{X: 50, Y: 150},
				Data:     TextData{Label: "Message", Text: "Welcome to BiteSpeed! 👋"},
			},
			{
				ID:       "node_1",
				Position: Position{X: 400, Y: 150},
				Data:     TextData{Label: "Message", Text: "I'm here to help you build your first chatbot flow. 🚀"},
			},
			{
				ID:       "node_2",
				Position: Position{X: 750, Y: 150},
				Data: ImageData{
					Label:    "Image",
					ImageURL: "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?q=80&w=600&auto=format&fit=crop",
				},
			},
			{
				ID:       "node_3",
				Position: Position{X: 1100, Y: 150},
				Data:     TextData{Label: "Message", Text: "Click 'Save Changes' to validate your flow! ✅"},
			},
		},
		Edges: []Edge{
			{ID: "e0-1", Source: "node_0", Target: "node_1"},
			{ID: "e1-2", Source: "node_1", Target: "node_2"},
			{ID: "e2-3", Source: "node_2", Target: "node_3"},
		},
	}
}
