// Package tree holds the concrete parse tree built during syntax analysis.
// Every token of the document appears as a leaf; interior nodes mark the
// dict and list productions.
package tree

import (
	"fmt"
	"io"
	"strings"
)

// Root label of every parse tree.
const RootLabel = "StartOfParseTree"

// Node is a parse tree node. Interior nodes carry production labels (the
// root label, "dict", "list"); leaves carry either literal punctuation
// ("{", ":", ",", ...) or the token category of a scalar value ("STRING",
// "NUMBER", "KEYWORD").
type Node struct {
	Label    string
	Leaf     bool
	Parent   *Node
	Children []*Node
}

// NewRoot creates the root node of a parse tree.
func NewRoot() *Node {
	return &Node{Label: RootLabel}
}

// AddChild appends a new child with the given label and returns it.
func (n *Node) AddChild(label string, leaf bool) *Node {
	child := &Node{Label: label, Leaf: leaf, Parent: n}
	n.Children = append(n.Children, child)
	return child
}

// WritePreOrder writes the tree in pre-order, one node per line, indented
// two spaces per depth. Interior nodes are prefixed "- Node: " and leaves
// "- Leaf: ".
func (n *Node) WritePreOrder(w io.Writer) error {
	return n.write(w, 0)
}

func (n *Node) write(w io.Writer, depth int) error {
	prefix := "- Node: "
	if n.Leaf {
		prefix = "- Leaf: "
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", strings.Repeat("  ", depth), prefix, n.Label); err != nil {
		return err
	}
	for _, child := range n.Children {
		if err := child.write(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// String renders the pre-order dump as a string.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb, 0)
	return sb.String()
}

// Count returns the number of nodes in the subtree rooted at n, including
// n itself.
func (n *Node) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}
