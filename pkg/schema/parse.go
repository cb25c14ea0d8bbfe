package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse decodes a JSON schema blob. It fails only if the blob is not a JSON
// array; malformed entries are returned for Validate to reject.
func Parse(data []byte) ([]Entry, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if entries == nil {
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}
	return entries, nil
}

// ParseYAML decodes a YAML schema document with the same leniency as Parse.
func ParseYAML(data []byte) ([]Entry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(root.Content) == 0 || root.Content[0].Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: not a sequence", ErrMalformed)
	}
	var entries []Entry
	if err := root.Content[0].Decode(&entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return entries, nil
}

// LoadFile reads a schema from a .json, .yaml or .yml file.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return Parse(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Encode renders entries as the JSON blob a device serves on endpoint 0.
func Encode(entries []Entry) ([]byte, error) {
	return json.Marshal(entries)
}

// Walk calls fn for every entry depth-first with its dotted path relative to
// the schema root.
func Walk(entries []Entry, fn func(path string, e *Entry)) {
	walk("", entries, fn)
}

func walk(prefix string, entries []Entry, fn func(string, *Entry)) {
	for i := range entries {
		e := &entries[i]
		path := e.Name
		if prefix != "" {
			path = prefix + "." + e.Name
		}
		fn(path, e)
		if len(e.Content) > 0 {
			walk(path, e.Content, fn)
		}
	}
}
