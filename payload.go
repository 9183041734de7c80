package flow

import (
	"encoding/json"
	"fmt"
)

// Payload is the per-type content of a node. The set of implementations is
// closed: TextData, ImageData and VideoData.
type Payload interface {
	Type() NodeType
	// With returns a copy of the payload with one field replaced.
	// Field names match the JSON names ("label", "text", "imageUrl", "videoUrl").
	With(field, value string) (Payload, error)
	payload()
}

// TextData is the payload of a text message node.
type TextData struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

func (TextData) Type() NodeType { return TextNode }
func (TextData) payload()       {}

func (d TextData) With(field, value string) (Payload, error) {
	switch field {
	case "label":
		d.Label = value
	case "text":
		d.Text = value
	default:
		return nil, unknownField(TextNode, field)
	}
	return d, nil
}

// ImageData is the payload of an image message node.
type ImageData struct {
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl"`
}

func (ImageData) Type() NodeType { return ImageNode }
func (ImageData) payload()       {}

func (d ImageData) With(field, value string) (Payload, error) {
	switch field {
	case "label":
		d.Label = value
	case "imageUrl":
		d.ImageURL = value
	default:
		return nil, unknownField(ImageNode, field)
	}
	return d, nil
}

// VideoData is the payload of a video message node.
type VideoData struct {
	Label    string `json:"label"`
	VideoURL string `json:"videoUrl"`
}

func (VideoData) Type() NodeType { return VideoNode }
func (VideoData) payload()       {}

func (d VideoData) With(field, value string) (Payload, error) {
	switch field {
	case "label":
		d.Label = value
	case "videoUrl":
		d.VideoURL = value
	default:
		return nil, unknownField(VideoNode, field)
	}
	return d, nil
}

func unknownField(t NodeType, field string) error {
	return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, t, field)
}

func decodePayload(t NodeType, raw json.RawMessage) (Payload, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, fmt.Errorf("missing %s payload", t)
	}
	switch t {
	case TextNode:
		var d TextData
		err := json.Unmarshal(raw, &d)
		return d, err
	case ImageNode:
		var d ImageData
		err := json.Unmarshal(raw, &d)
		return d, err
	case VideoNode:
		var d VideoData
		err := json.Unmarshal(raw, &d)
		return d, err
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownNodeType, t)
}
