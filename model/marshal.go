package model

import (
	"encoding/json"
	"fmt"
)

// Block values serialize with a "kind" discriminator so trees survive a
// JSON round trip (the diagnostics tooling consumes this form).

// MarshalBlocks serializes a block tree to JSON.
func MarshalBlocks(blocks []Block) ([]byte, error) {
	raw, err := encodeBlocks(blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// UnmarshalBlocks deserializes a block tree from JSON produced by
// MarshalBlocks.
func UnmarshalBlocks(data []byte) ([]Block, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding block list: %w", err)
	}
	return decodeBlocks(raw)
}

func encodeBlocks(blocks []Block) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(blocks))
	for _, b := range blocks {
		raw, err := encodeBlock(b)
		if err != nil {
			return nil, err
		}
		out = append(out, raw)
	}
	return out, nil
}

func encodeBlock(b Block) (json.RawMessage, error) {
	switch v := b.(type) {
	case *Paragraph:
		return json.Marshal(struct {
			K string `json:"kind"`
			*Paragraph
		}{"paragraph", v})
	case *Heading:
		return json.Marshal(struct {
			K string `json:"kind"`
			*Heading
		}{"heading", v})
	case *List:
		return json.Marshal(struct {
			K string `json:"kind"`
			*List
		}{"list", v})
	case *Table:
		return json.Marshal(struct {
			K string `json:"kind"`
			*Table
		}{"table", v})
	case *Image:
		return json.Marshal(struct {
			K string `json:"kind"`
			*Image
		}{"image", v})
	default:
		return nil, fmt.Errorf("unsupported block type %T", b)
	}
}

func decodeBlocks(raw []json.RawMessage) ([]Block, error) {
	out := make([]Block, 0, len(raw))
	for _, r := range raw {
		b, err := decodeBlock(r)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func decodeBlock(data json.RawMessage) (Block, error) {
	var probe struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("decoding block kind: %w", err)
	}

	switch probe.Kind {
	case "paragraph":
		var b Paragraph
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	case "heading":
		var b Heading
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	case "list":
		var b List
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	case "table":
		var b Table
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	case "image":
		var b Image
		if err := json.Unmarshal(data, &b); err != nil {
			return nil, err
		}
		return &b, nil
	default:
		return nil, fmt.Errorf("unknown block kind %q", probe.Kind)
	}
}

// MarshalJSON implements json.Marshaler so nested blocks keep their kind
// discriminator.
func (li ListItem) MarshalJSON() ([]byte, error) {
	raw, err := encodeBlocks(li.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Blocks []json.RawMessage `json:"blocks"`
	}{raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (li *ListItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	li.Blocks = blocks
	return nil
}

// MarshalJSON implements json.Marshaler so nested blocks keep their kind
// discriminator.
func (tc TableCell) MarshalJSON() ([]byte, error) {
	raw, err := encodeBlocks(tc.Blocks)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		Blocks []json.RawMessage `json:"blocks"`
	}{raw})
}

// UnmarshalJSON implements json.Unmarshaler.
func (tc *TableCell) UnmarshalJSON(data []byte) error {
	var aux struct {
		Blocks []json.RawMessage `json:"blocks"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	blocks, err := decodeBlocks(aux.Blocks)
	if err != nil {
		return err
	}
	tc.Blocks = blocks
	return nil
}
