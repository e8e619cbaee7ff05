// Package ast defines the abstract syntax tree of a document: the value
// structure with the punctuation stripped away.
package ast

import (
	"fmt"
	"io"
	"strings"
)

// Node is a value in the abstract syntax tree.
type Node interface {
	// Interface materializes the subtree as plain Go values: map[string]any
	// for objects, []any for arrays, string, float64, bool and nil for the
	// scalars. Object member order is preserved only on the Node itself
	// (Object.Members is ordered); the materialized map is not.
	Interface() any

	label() string
	children() []Node
}

// Object is an ordered sequence of key/value members.
type Object struct {
	Members []Member
}

// Member is a single key/value pair of an object.
type Member struct {
	Key   string
	Value Node
}

// Array is an ordered sequence of values.
type Array struct {
	Elements []Node
}

// String is a string value. Value holds the decoded text.
type String struct {
	Value string
}

// Number is a numeric value. Raw preserves the literal exactly as written;
// Value is its float64 reading.
type Number struct {
	Raw   string
	Value float64
}

// Bool is a true or false value.
type Bool struct {
	Value bool
}

// Null is the null value.
type Null struct{}

// Lookup returns the value of the member with the given key, or nil if the
// object has no such member.
func (o *Object) Lookup(key string) Node {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

func (o *Object) Interface() any {
	out := make(map[string]any, len(o.Members))
	for _, m := range o.Members {
		out[m.Key] = m.Value.Interface()
	}
	return out
}

func (a *Array) Interface() any {
	out := make([]any, len(a.Elements))
	for i, e := range a.Elements {
		out[i] = e.Interface()
	}
	return out
}

func (s *String) Interface() any { return s.Value }
func (n *Number) Interface() any { return n.Value }
func (b *Bool) Interface() any   { return b.Value }
func (Null) Interface() any      { return nil }

func (o *Object) label() string { return "object" }
func (a *Array) label() string  { return "array" }
func (s *String) label() string { return "string " + s.Value }
func (n *Number) label() string { return "number " + n.Raw }
func (Null) label() string      { return "null" }

func (b *Bool) label() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (o *Object) children() []Node {
	out := make([]Node, len(o.Members))
	for i, m := range o.Members {
		out[i] = memberNode{m}
	}
	return out
}

func (a *Array) children() []Node { return a.Elements }
func (s *String) children() []Node { return nil }
func (n *Number) children() []Node { return nil }
func (b *Bool) children() []Node   { return nil }
func (Null) children() []Node      { return nil }

// memberNode lets an object member appear as its own line in the dump and
// its own step in a walk.
type memberNode struct {
	m Member
}

func (mn memberNode) Interface() any   { return mn.m.Value.Interface() }
func (mn memberNode) label() string    { return "member " + mn.m.Key }
func (mn memberNode) children() []Node { return []Node{mn.m.Value} }

// Walk visits n and its descendants in pre-order. If fn returns false the
// children of the current node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.children() {
		Walk(child, fn)
	}
}

// WritePreOrder writes the tree in pre-order, one node per line, indented
// two spaces per depth. Objects and arrays print their kind, members print
// "member <key>", scalars print their kind and value.
func WritePreOrder(w io.Writer, n Node) error {
	return write(w, n, 0)
}

func write(w io.Writer, n Node, depth int) error {
	if _, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), n.label()); err != nil {
		return err
	}
	for _, child := range n.children() {
		if err := write(w, child, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Dump renders the pre-order dump as a string.
func Dump(n Node) string {
	var sb strings.Builder
	write(&sb, n, 0)
	return sb.String()
}
