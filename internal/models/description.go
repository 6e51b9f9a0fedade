package models

import (
	"bytes"
	"encoding/json"
)

// DescriptionKind discriminates the shapes a description can arrive in.
type DescriptionKind int

const (
	DescriptionAbsent DescriptionKind = iota
	// DescriptionPlain is a bare JSON string.
	DescriptionPlain
	// DescriptionStructured is an object such as {"type": "/type/text", "value": "..."}.
	DescriptionStructured
)

// StructuredText is the object form of a text field.
type StructuredText struct {
	Type  string  `json:"type,omitempty"`
	Value *string `json:"value,omitempty"`
}

// Description holds either plain text or a structured text object.
// Decoding never fails: values of any other JSON type decode as absent.
type Description struct {
	Kind       DescriptionKind
	Plain      string
	Structured StructuredText
}

// PlainDescription builds a plain-text description.
func PlainDescription(text string) Description {
	return Description{Kind: DescriptionPlain, Plain: text}
}

// StructuredDescription builds a structured description carrying text under "value".
func StructuredDescription(text string) Description {
	return Description{Kind: DescriptionStructured, Structured: StructuredText{Type: "/type/text", Value: &text}}
}

// Text returns the description text and whether one was present.
// A structured description without a "value" key has no text.
func (d Description) Text() (string, bool) {
	switch d.Kind {
	case DescriptionPlain:
		return d.Plain, true
	case DescriptionStructured:
		if d.Structured.Value == nil {
			return "", false
		}
		return *d.Structured.Value, true
	default:
		return "", false
	}
}

func (d *Description) UnmarshalJSON(data []byte) error {
	*d = Description{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*d = PlainDescription(s)
		}
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil
		}
		st := StructuredText{}
		if t, ok := raw["type"]; ok {
			_ = json.Unmarshal(t, &st.Type)
		}
		if v, ok := raw["value"]; ok {
			var s string
			if err := json.Unmarshal(v, &s); err == nil {
				st.Value = &s
			}
		}
		*d = Description{Kind: DescriptionStructured, Structured: st}
	}
	return nil
}

func (d Description) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DescriptionPlain:
		return json.Marshal(d.Plain)
	case DescriptionStructured:
		return json.Marshal(d.Structured)
	default:
		return []byte("null"), nil
	}
}
