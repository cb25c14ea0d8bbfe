package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID identifies a property on the device. Devices send it as a JSON number
// or string; it is kept as the text that goes on the wire.
type ID string

// MarshalJSON writes integer IDs as JSON numbers and anything else as a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseUint(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Entry is one element of a schema, either a leaf property or a subtree.
type Entry struct {
	Name    string  `json:"name" yaml:"name"`
	Type    string  `json:"type" yaml:"type"`
	ID      ID      `json:"id,omitempty" yaml:"id,omitempty"`
	Mode    string  `json:"mode,omitempty" yaml:"mode,omitempty"`
	Content []Entry `json:"content,omitempty" yaml:"content,omitempty"`

	// DecodeErr records a field that could not be decoded. Such an entry is
	// rejected by Validate.
	DecodeErr error `json:"-" yaml:"-"`
}

// Kind returns the parsed type tag.
func (e *Entry) Kind() (Kind, error) {
	return ParseKind(e.Type)
}

// Access returns the parsed mode.
func (e *Entry) Access() Access {
	return ParseAccess(e.Mode)
}

// Validate reports why the entry cannot be compiled, or nil. Children of a
// subtree are not validated.
func (e *Entry) Validate() error {
	if e.DecodeErr != nil {
		return e.DecodeErr
	}
	if e.Name == "" {
		return ErrMissingName
	}
	if e.Type == "" {
		return ErrMissingType
	}
	kind, err := e.Kind()
	if err != nil {
		return err
	}
	if kind == KindSubtree {
		if len(e.Content) == 0 {
			return ErrEmptySubtree
		}
		return nil
	}
	if e.ID == "" {
		return ErrMissingID
	}
	return nil
}

// UnmarshalJSON decodes an entry without failing on bad fields; problems are
// kept in DecodeErr.
func (e *Entry) UnmarshalJSON(data []byte) error {
	*e = Entry{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		e.DecodeErr = fmt.Errorf("%w: not an object", ErrMalformedEntry)
		return nil
	}

	for key, raw := range fields {
		var err error
		switch key {
		case "name":
			err = decodeJSONString(raw, &e.Name)
		case "type":
			err = decodeJSONString(raw, &e.Type)
		case "mode":
			err = decodeJSONString(raw, &e.Mode)
		case "id":
			err = decodeJSONID(raw, &e.ID)
		case "content":
			err = json.Unmarshal(raw, &e.Content)
		}
		if err != nil && e.DecodeErr == nil {
			e.DecodeErr = fmt.Errorf("%w: field %q: %v", ErrMalformedEntry, key, err)
		}
	}
	return nil
}

func decodeJSONString(raw json.RawMessage, dst *string) error {
	if isJSONNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func decodeJSONID(raw json.RawMessage, dst *ID) error {
	if isJSONNull(raw) {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		*dst = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return fmt.Errorf("id must be a number or string")
	}
	*dst = ID(n.String())
	return nil
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// UnmarshalYAML mirrors UnmarshalJSON for YAML schema files.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	*e = Entry{}

	if node.Kind != yaml.MappingNode {
		e.DecodeErr = fmt.Errorf("%w: not a mapping (line %d)", ErrMalformedEntry, node.Line)
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i].Value, node.Content[i+1]
		var err error
		switch key {
		case "name":
			err = decodeYAMLScalar(value, &e.Name)
		case "type":
			err = decodeYAMLScalar(value, &e.Type)
		case "mode":
			err = decodeYAMLScalar(value, &e.Mode)
		case "id":
			var s string
			err = decodeYAMLScalar(value, &s)
			e.ID = ID(s)
		case "content":
			if value.Kind != yaml.SequenceNode {
				err = fmt.Errorf("content must be a sequence")
			} else {
				err = value.Decode(&e.Content)
			}
		}
		if err != nil && e.DecodeErr == nil {
			e.DecodeErr = fmt.Errorf("%w: field %q (line %d): %v", ErrMalformedEntry, key, value.Line, err)
		}
	}
	return nil
}

func decodeYAMLScalar(node *yaml.Node, dst *string) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("expected a scalar")
	}
	if node.Tag == "!!null" {
		return nil
	}
	*dst = node.Value
	return nil
}
