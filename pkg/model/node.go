package model

import (
	"fmt"
	"strings"
)

// Node is a member of a compiled tree: *Object or *Property.
type Node interface {
	// Name is the entry name within its parent.
	Name() string

	// Path is the dotted path from the root namespace.
	Path() string

	node()
}

// Object is a compiled subtree.
type Object struct {
	name     string
	path     string
	children map[string]Node
	order    []string
}

func newObject(name, path string) *Object {
	return &Object{name: name, path: path, children: make(map[string]Node)}
}

func (o *Object) node() {}

// Name returns the object name.
func (o *Object) Name() string { return o.name }

// Path returns the object's namespace.
func (o *Object) Path() string { return o.path }

// Len returns the number of direct children.
func (o *Object) Len() int { return len(o.order) }

// Names returns the child names in schema order.
func (o *Object) Names() []string {
	names := make([]string, len(o.order))
	copy(names, o.order)
	return names
}

// Children returns the direct children in schema order.
func (o *Object) Children() []Node {
	nodes := make([]Node, len(o.order))
	for i, name := range o.order {
		nodes[i] = o.children[name]
	}
	return nodes
}

// Lookup returns the direct child with the given name.
func (o *Object) Lookup(name string) (Node, bool) {
	n, ok := o.children[name]
	return n, ok
}

// Property returns the direct child property with the given name.
func (o *Object) Property(name string) (*Property, bool) {
	p, ok := o.children[name].(*Property)
	return p, ok
}

// Object returns the direct child object with the given name.
func (o *Object) Object(name string) (*Object, bool) {
	c, ok := o.children[name].(*Object)
	return c, ok
}

// Resolve walks a dotted path relative to this object. An empty path
// resolves to the object itself.
func (o *Object) Resolve(path string) (Node, error) {
	if path == "" {
		return o, nil
	}
	current := o
	parts := strings.Split(path, ".")
	for i, part := range parts {
		child, ok := current.children[part]
		if !ok {
			return nil, fmt.Errorf("%w: %s has no member %q", ErrNotFound, current.path, part)
		}
		if i == len(parts)-1 {
			return child, nil
		}
		next, ok := child.(*Object)
		if !ok {
			return nil, fmt.Errorf("%w: %s is a property", ErrNotFound, child.Path())
		}
		current = next
	}
	return current, nil
}

// ResolveProperty is Resolve restricted to leaves.
func (o *Object) ResolveProperty(path string) (*Property, error) {
	n, err := o.Resolve(path)
	if err != nil {
		return nil, err
	}
	p, ok := n.(*Property)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not a property", ErrNotFound, n.Path())
	}
	return p, nil
}

// Walk visits every node below o depth-first in schema order.
func (o *Object) Walk(fn func(Node)) {
	for _, child := range o.Children() {
		fn(child)
		if sub, ok := child.(*Object); ok {
			sub.Walk(fn)
		}
	}
}

// set adds or replaces a child. A replaced child keeps its position.
func (o *Object) set(n Node) (replaced bool) {
	if _, exists := o.children[n.Name()]; exists {
		o.children[n.Name()] = n
		return true
	}
	o.children[n.Name()] = n
	o.order = append(o.order, n.Name())
	return false
}
