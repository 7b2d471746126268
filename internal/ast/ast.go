// Package ast defines the single node type shared by parse trees and
// resolved evaluation trees: one discriminated struct, not an
// interface per grammar production.
package ast

import (
	"fmt"
	"io"
	"strings"

	"github.com/aardvark-lang/aardvark/internal/token"
)

// Node is the parse tree node. Which of Ident/Integer/Str/Slot/Func is
// meaningful is selected by Kind, the Go realization of the reference's
// tagged union payload; an identifier resolved to KnownLocal/KnownGlobal
// keeps its Ident alongside the new Slot. Children hold ordered sub-nodes;
// Go's slice append already amortizes the reference's capacity-doubling
// scheme, so no manual growth bookkeeping is needed here.
type Node struct {
	Kind Kind

	Ident   uint64 // Kind == token.Identifier / resolved variants
	Integer int64  // Kind == token.Integer
	Str     string // Kind == token.String

	Slot int64 // Kind == KnownLocal / KnownGlobal: frame-relative / absolute slot
	Func *Node // Kind == KnownCall: resolved callee's function node

	Children []*Node
}

// Kind is an alias so callers only need to import ast for tree-walking.
type Kind = token.Kind

// NewLeaf builds a childless node of the given kind.
func NewLeaf(kind Kind) *Node {
	return &Node{Kind: kind}
}

// AddChild appends c to n's children, returning n for chaining.
func (n *Node) AddChild(c *Node) *Node {
	n.Children = append(n.Children, c)
	return n
}

// Dump renders the tree the way the reference parseTreePrint does: an
// indented listing, one node per line, of kind and payload.
func (n *Node) Dump(w io.Writer) {
	n.dump(w, 0)
}

func (n *Node) dump(w io.Writer, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s", indent, n.Kind)
	switch n.Kind {
	case token.Identifier, token.KnownLocal, token.KnownGlobal:
		fmt.Fprintf(w, " #%x", n.Ident)
	case token.Integer:
		fmt.Fprintf(w, " %d", n.Integer)
	case token.String:
		fmt.Fprintf(w, " %q", n.Str)
	}
	fmt.Fprintln(w)
	for _, c := range n.Children {
		c.dump(w, depth+1)
	}
}
