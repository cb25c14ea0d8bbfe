package inspect

import (
	"errors"
	"strings"
	"testing"

	"github.com/odrive-go/odrive/pkg/schema"
)

func TestFormatValue(t *testing.T) {
	f := &Formatter{}

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{name: "nil", value: nil, expected: "?"},
		{name: "true", value: true, expected: "true"},
		{name: "false", value: false, expected: "false"},
		{name: "float", value: 3.14, expected: "3.14"},
		{name: "float rounded", value: 1.0 / 3.0, expected: "0.333333"},
		{name: "int64", value: int64(-42), expected: "-42"},
		{name: "uint16", value: uint16(65535), expected: "65535"},
		{name: "other", value: "text", expected: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value); got != tt.expected {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.expected)
			}
		})
	}
}

func TestFormatAccess(t *testing.T) {
	tests := []struct {
		access   schema.Access
		expected string
	}{
		{schema.AccessRead, "read-only"},
		{schema.AccessWrite, "write-only"},
		{schema.AccessReadWrite, "read-write"},
		{0, "no-access"},
	}
	for _, tt := range tests {
		if got := FormatAccess(tt.access); got != tt.expected {
			t.Errorf("FormatAccess(%v) = %q, want %q", tt.access, got, tt.expected)
		}
	}
}

func TestIndent(t *testing.T) {
	f := &Formatter{}
	if got := f.Indent(2, "x"); got != "    x" {
		t.Errorf("default width: %q", got)
	}
	f.IndentWidth = 3
	if got := f.Indent(1, "x"); got != "   x" {
		t.Errorf("width 3: %q", got)
	}
}

func TestFormatTree(t *testing.T) {
	rows := []Row{
		{Depth: 0, Name: "vbus_voltage", ID: "1", Kind: schema.KindFloat64, Access: schema.AccessRead, Value: 24.0},
		{Depth: 0, Name: "axis0", Kind: schema.KindSubtree},
		{Depth: 1, Name: "requested_state", ID: "12", Kind: schema.KindInt64, Access: schema.AccessWrite},
		{Depth: 1, Name: "error", ID: "10", Kind: schema.KindInt64, Access: schema.AccessReadWrite, Err: errors.New("boom")},
	}

	f := NewFormatter()
	got := f.FormatTree(rows)
	want := strings.Join([]string{
		"vbus_voltage = 24 (float, read-only)",
		"axis0:",
		"  requested_state (int, write-only)",
		"  error = <boom> (int, read-write)",
		"",
	}, "\n")
	if got != want {
		t.Errorf("FormatTree:\n%s\nwant:\n%s", got, want)
	}

	f.ShowMetadata = false
	f.ShowIDs = true
	if got := f.FormatRow(rows[0]); got != "[1] vbus_voltage = 24" {
		t.Errorf("FormatRow with IDs = %q", got)
	}
}

func TestFormatTreeEmpty(t *testing.T) {
	if got := NewFormatter().FormatTree(nil); !strings.Contains(got, "(empty)") {
		t.Errorf("FormatTree(nil) = %q", got)
	}
}
