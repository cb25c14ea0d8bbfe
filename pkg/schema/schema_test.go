package schema

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		tag  string
		want Kind
	}{
		{"float", KindFloat64},
		{"float64", KindFloat64},
		{"int", KindInt64},
		{"int64", KindInt64},
		{"bool", KindBool},
		{"uint16", KindUint16},
		{"tree", KindSubtree},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.tag)
		if err != nil {
			t.Errorf("ParseKind(%q) error: %v", tt.tag, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKind(%q) = %v, want %v", tt.tag, got, tt.want)
		}
	}

	for _, tag := range []string{"", "string", "Float", "json"} {
		if _, err := ParseKind(tag); !errors.Is(err, ErrUnsupportedType) {
			t.Errorf("ParseKind(%q) error = %v, want ErrUnsupportedType", tag, err)
		}
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
		want any
	}{
		{KindFloat64, "3.14", 3.14},
		{KindFloat64, " -2e3 ", -2000.0},
		{KindInt64, "-42", int64(-42)},
		{KindBool, "1", true},
		{KindBool, "0", false},
		{KindBool, "true", true},
		{KindUint16, "65535", uint16(65535)},
	}
	for _, tt := range tests {
		got, err := tt.kind.ParseValue(tt.text)
		if err != nil {
			t.Errorf("%s.ParseValue(%q) error: %v", tt.kind, tt.text, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.ParseValue(%q) = %#v, want %#v", tt.kind, tt.text, got, tt.want)
		}
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		kind Kind
		text string
	}{
		{KindFloat64, "abc"},
		{KindInt64, "1.5"},
		{KindBool, "yes"},
		{KindUint16, "65536"},
		{KindUint16, "-1"},
	}
	for _, tt := range tests {
		if _, err := tt.kind.ParseValue(tt.text); !errors.Is(err, ErrValueSyntax) {
			t.Errorf("%s.ParseValue(%q) error = %v, want ErrValueSyntax", tt.kind, tt.text, err)
		}
	}
	if _, err := KindSubtree.ParseValue("1"); !errors.Is(err, ErrValueType) {
		t.Errorf("subtree ParseValue error = %v, want ErrValueType", err)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		kind Kind
		v    any
		want string
	}{
		{KindFloat64, 3.14, "3.14"},
		{KindFloat64, 1e21, "1e+21"},
		{KindInt64, int64(-7), "-7"},
		{KindBool, true, "1"},
		{KindBool, false, "0"},
		{KindUint16, uint16(8), "8"},
	}
	for _, tt := range tests {
		got, err := tt.kind.FormatValue(tt.v)
		if err != nil {
			t.Errorf("%s.FormatValue(%v) error: %v", tt.kind, tt.v, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s.FormatValue(%v) = %q, want %q", tt.kind, tt.v, got, tt.want)
		}
	}
}

func TestFormatValueStrictTypes(t *testing.T) {
	tests := []struct {
		kind Kind
		v    any
	}{
		{KindBool, 1},
		{KindInt64, 1},
		{KindInt64, int32(1)},
		{KindFloat64, float32(1)},
		{KindFloat64, int64(1)},
		{KindUint16, 1},
		{KindUint16, uint32(1)},
		{KindSubtree, true},
	}
	for _, tt := range tests {
		if _, err := tt.kind.FormatValue(tt.v); !errors.Is(err, ErrValueType) {
			t.Errorf("%s.FormatValue(%T) error = %v, want ErrValueType", tt.kind, tt.v, err)
		}
	}
}

func TestParseAccess(t *testing.T) {
	tests := []struct {
		mode      string
		read      bool
		write     bool
		formatted string
	}{
		{"", true, true, "rw"},
		{"r", true, false, "r"},
		{"w", false, true, "w"},
		{"rw", true, true, "rw"},
		{"wr", true, true, "rw"},
		{"x", false, false, "-"},
	}
	for _, tt := range tests {
		a := ParseAccess(tt.mode)
		if a.CanRead() != tt.read || a.CanWrite() != tt.write {
			t.Errorf("ParseAccess(%q) = %v", tt.mode, a)
		}
		if a.String() != tt.formatted {
			t.Errorf("ParseAccess(%q).String() = %q, want %q", tt.mode, a.String(), tt.formatted)
		}
	}
}

func TestParse(t *testing.T) {
	blob := []byte(`[
		{"name": "vbus_voltage", "type": "float", "id": 1, "mode": "r"},
		{"name": "serial", "type": "uint16", "id": "sn"},
		{"name": "axis0", "type": "tree", "content": [
			{"name": "gain", "type": "float", "id": 5}
		]}
	]`)

	entries, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].ID != "1" || entries[0].Mode != "r" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].ID != "sn" || entries[1].Access() != AccessReadWrite {
		t.Errorf("entry 1 = %+v", entries[1])
	}
	if len(entries[2].Content) != 1 || entries[2].Content[0].ID != "5" {
		t.Errorf("entry 2 = %+v", entries[2])
	}
	for i := range entries {
		if err := entries[i].Validate(); err != nil {
			t.Errorf("entry %d invalid: %v", i, err)
		}
	}
}

func TestParseMalformed(t *testing.T) {
	for _, blob := range []string{`{"name": "x"}`, `not json`, `null`, `[{"name":`, ``} {
		if _, err := Parse([]byte(blob)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) error = %v, want ErrMalformed", blob, err)
		}
	}
}

func TestParseKeepsBadEntries(t *testing.T) {
	blob := []byte(`[
		{"type": "float", "id": 1},
		{"name": "a"},
		{"name": "b", "type": "string", "id": 2},
		{"name": "c", "type": "float"},
		{"name": "d", "type": "tree", "content": []},
		{"name": 5, "type": "float", "id": 3},
		{"name": "e", "type": "float", "id": true},
		"just a string",
		{"name": "f", "type": "tree", "content": "nope"},
		{"name": "ok", "type": "bool", "id": 9}
	]`)

	entries, err := Parse(blob)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []error{
		ErrMissingName,
		ErrMissingType,
		ErrUnsupportedType,
		ErrMissingID,
		ErrEmptySubtree,
		ErrMalformedEntry,
		ErrMalformedEntry,
		ErrMalformedEntry,
		ErrMalformedEntry,
		nil,
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		err := entries[i].Validate()
		if w == nil {
			if err != nil {
				t.Errorf("entry %d: unexpected error %v", i, err)
			}
			continue
		}
		if !errors.Is(err, w) {
			t.Errorf("entry %d: error = %v, want %v", i, err, w)
		}
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	entries := []Entry{
		{Name: "vbus_voltage", Type: "float", ID: "1", Mode: "r"},
		{Name: "axis0", Type: "tree", Content: []Entry{
			{Name: "name", Type: "int", ID: "axis-name"},
		}},
	}
	data, err := Encode(entries)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	want := `[{"name":"vbus_voltage","type":"float","id":1,"mode":"r"},` +
		`{"name":"axis0","type":"tree","content":[{"name":"name","type":"int","id":"axis-name"}]}]`
	if string(data) != want {
		t.Errorf("Encode = %s\nwant %s", data, want)
	}

	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if back[0].ID != "1" || back[1].Content[0].ID != "axis-name" {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestParseYAML(t *testing.T) {
	doc := []byte(`
- name: vbus_voltage
  type: float
  id: 1
  mode: r
- name: axis0
  type: tree
  content:
    - name: gain
      type: float
      id: 5
    - name: broken
      type: [float]
      id: 6
`)
	entries, err := ParseYAML(doc)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "1" {
		t.Fatalf("entries = %+v", entries)
	}
	axis := entries[1]
	if len(axis.Content) != 2 || axis.Content[0].ID != "5" {
		t.Fatalf("axis0 content = %+v", axis.Content)
	}
	if err := axis.Content[1].Validate(); !errors.Is(err, ErrMalformedEntry) {
		t.Errorf("broken entry error = %v, want ErrMalformedEntry", err)
	}

	if _, err := ParseYAML([]byte("name: x\n")); !errors.Is(err, ErrMalformed) {
		t.Errorf("mapping document error = %v, want ErrMalformed", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "odrive.json")
	if err := os.WriteFile(jsonPath, []byte(`[{"name":"a","type":"int","id":1}]`), 0o600); err != nil {
		t.Fatal(err)
	}
	yamlPath := filepath.Join(dir, "odrive.yaml")
	if err := os.WriteFile(yamlPath, []byte("- {name: a, type: int, id: 1}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{jsonPath, yamlPath} {
		entries, err := LoadFile(p)
		if err != nil {
			t.Fatalf("LoadFile(%s) failed: %v", p, err)
		}
		if len(entries) != 1 || entries[0].Name != "a" || entries[0].ID != "1" {
			t.Errorf("LoadFile(%s) = %+v", p, entries)
		}
	}

	txtPath := filepath.Join(dir, "odrive.txt")
	if err := os.WriteFile(txtPath, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(txtPath); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("txt error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing error = %v, want ErrNotExist", err)
	}
}

func TestWalk(t *testing.T) {
	entries := []Entry{
		{Name: "a", Type: "int", ID: "1"},
		{Name: "b", Type: "tree", Content: []Entry{
			{Name: "c", Type: "tree", Content: []Entry{{Name: "d", Type: "bool", ID: "2"}}},
		}},
	}
	var paths []string
	Walk(entries, func(path string, _ *Entry) { paths = append(paths, path) })

	want := []string{"a", "b", "b.c", "b.c.d"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}
