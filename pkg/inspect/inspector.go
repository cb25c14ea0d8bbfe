package inspect

import (
	"context"
	"errors"
	"fmt"

	"github.com/odrive-go/odrive/pkg/model"
	"github.com/odrive-go/odrive/pkg/schema"
)

// Inspector errors.
var (
	ErrNotProperty = errors.New("path is not a property")
	ErrNotObject   = errors.New("path is not an object")
)

// Inspector provides inspection and mutation capabilities for a compiled
// device tree.
type Inspector struct {
	root *model.Object
}

// NewInspector creates a new Inspector for the given root object.
func NewInspector(root *model.Object) *Inspector {
	return &Inspector{root: root}
}

// Root returns the underlying root object.
func (i *Inspector) Root() *model.Object {
	return i.root
}

// Resolve parses input and returns the node it names.
func (i *Inspector) Resolve(input string) (model.Node, error) {
	path, err := ParsePath(input, i.root.Name())
	if err != nil {
		return nil, err
	}
	return i.root.Resolve(path.Relative())
}

// Property resolves input to a property.
func (i *Inspector) Property(input string) (*model.Property, error) {
	n, err := i.Resolve(input)
	if err != nil {
		return nil, err
	}
	p, ok := n.(*model.Property)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotProperty, n.Path())
	}
	return p, nil
}

// Read returns the current value of the property at input.
func (i *Inspector) Read(ctx context.Context, input string) (any, error) {
	p, err := i.Property(input)
	if err != nil {
		return nil, err
	}
	return p.Get(ctx)
}

// Write parses text according to the property's kind and writes it.
// The converted value is returned.
func (i *Inspector) Write(ctx context.Context, input, text string) (any, error) {
	p, err := i.Property(input)
	if err != nil {
		return nil, err
	}
	v, err := p.Kind().ParseValue(text)
	if err != nil {
		return nil, &model.PropertyError{Path: p.Path(), Op: "set", Err: err}
	}
	if err := p.Set(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Tree returns the rows below the object at input. With values set, every
// readable property is read; a failed read is recorded in its row and does
// not stop the walk. Reading stops once ctx is done.
func (i *Inspector) Tree(ctx context.Context, input string, values bool) ([]Row, error) {
	obj := i.root
	if input != "" {
		n, err := i.Resolve(input)
		if err != nil {
			return nil, err
		}
		var ok bool
		if obj, ok = n.(*model.Object); !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotObject, n.Path())
		}
	}

	var rows []Row
	i.collect(ctx, obj, 0, values, &rows)
	return rows, nil
}

func (i *Inspector) collect(ctx context.Context, obj *model.Object, depth int, values bool, rows *[]Row) {
	for _, child := range obj.Children() {
		switch n := child.(type) {
		case *model.Object:
			*rows = append(*rows, Row{
				Depth: depth,
				Name:  n.Name(),
				Path:  n.Path(),
				Kind:  schema.KindSubtree,
			})
			i.collect(ctx, n, depth+1, values, rows)
		case *model.Property:
			row := Row{
				Depth:  depth,
				Name:   n.Name(),
				Path:   n.Path(),
				ID:     n.ID(),
				Kind:   n.Kind(),
				Access: n.Access(),
			}
			if values && n.Access().CanRead() {
				if err := ctx.Err(); err != nil {
					row.Err = err
				} else {
					row.Value, row.Err = n.Get(ctx)
				}
			}
			*rows = append(*rows, row)
		}
	}
}
