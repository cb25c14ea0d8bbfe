package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/odrive-go/odrive/pkg/schema"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes kind and access information
	ShowMetadata bool

	// ShowIDs includes endpoint IDs alongside names
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      false,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats a value for display.
func (f *Formatter) FormatValue(value any) string {
	if value == nil {
		return "?"
	}

	switch v := value.(type) {
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(v, 'g', 6, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatAccess formats an access level for display.
func FormatAccess(access schema.Access) string {
	switch access {
	case schema.AccessRead:
		return "read-only"
	case schema.AccessWrite:
		return "write-only"
	case schema.AccessReadWrite:
		return "read-write"
	default:
		return "no-access"
	}
}

// Row is one line of a formatted tree.
type Row struct {
	Depth  int
	Name   string
	Path   string
	ID     schema.ID
	Kind   schema.Kind
	Access schema.Access
	Value  any
	Err    error
}

// IsObject reports whether the row is a subtree header.
func (r Row) IsObject() bool { return r.Kind == schema.KindSubtree }

// FormatTree formats rows as an indented tree. Object rows end in ':'.
func (f *Formatter) FormatTree(rows []Row) string {
	if len(rows) == 0 {
		return "  (empty)\n"
	}

	var sb strings.Builder
	for _, row := range rows {
		if row.IsObject() {
			sb.WriteString(f.Indent(row.Depth, row.Name+":\n"))
			continue
		}
		sb.WriteString(f.Indent(row.Depth, f.FormatRow(row)))
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatRow formats a single property row without indentation.
func (f *Formatter) FormatRow(row Row) string {
	var sb strings.Builder
	if f.ShowIDs {
		fmt.Fprintf(&sb, "[%s] ", row.ID)
	}
	sb.WriteString(row.Name)
	switch {
	case row.Err != nil:
		fmt.Fprintf(&sb, " = <%v>", row.Err)
	case row.Value != nil:
		sb.WriteString(" = " + f.FormatValue(row.Value))
	}
	if f.ShowMetadata {
		fmt.Fprintf(&sb, " (%s, %s)", row.Kind, FormatAccess(row.Access))
	}
	return sb.String()
}
