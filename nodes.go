package texcalc

import (
	"strings"
)

// node is a node in the expression tree. A node with no children is a value
// holding an expression or function token. Otherwise it is an operator, and
// it has exactly two children.
type node struct {
	tok Token

	left  *node
	right *node
}

func (n *node) isValue() bool {
	return n.left == nil && n.right == nil
}

// AST is a built expression tree along with the bindings written in the
// expression. It is immutable once built.
type AST struct {
	// n is the root node of the tree.
	n *node
	// bindings is the list of raw name=value binding texts, in the order
	// they were written.
	bindings []string
}

// Bindings returns the raw name=value texts of the bindings in the
// expression, in the order they were written.
func (a *AST) Bindings() []string {
	return append(([]string)(nil), a.bindings...)
}

// String creates a string representation of the tree, with alternating round
// and square brackets grouping each term.
func (a *AST) String() string {
	var b strings.Builder
	a.n.fmt(&b, false)
	return b.String()
}

func (n *node) String() string {
	var b strings.Builder
	n.fmt(&b, false)
	return b.String()
}

func (n *node) fmt(b *strings.Builder, square bool) {
	var l, r byte = '(', ')'
	if square {
		l, r = '[', ']'
	}
	b.WriteByte(l)
	defer b.WriteByte(r)
	if n.isValue() {
		b.WriteString(n.tok.Source())
		return
	}
	if n.left == nil || n.right == nil {
		// Invalid nodes use invalid characters.
		b.WriteString("$" + n.tok.Kind.String() + "$")
		return
	}
	n.left.fmt(b, !square)
	switch n.tok.Kind {
	case TokenSuperscript:
		b.WriteString(" ^ ")
	default:
		b.WriteByte(' ')
		b.WriteString(n.tok.Source())
		b.WriteByte(' ')
	}
	n.right.fmt(b, !square)
}

