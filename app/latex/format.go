package latex

import (
	"strconv"
	"strings"
)

// FormatNode renders the tree as a compact s-expression, the form used by
// tests: 1+2 prints as (+ 1 2).
func FormatNode(n *Node) string {
	var b strings.Builder
	formatNode(&b, n)
	return b.String()
}

func formatNode(b *strings.Builder, n *Node) {
	if n == nil {
		b.WriteString("nil")
		return
	}
	switch n.Op {
	case OP_NONE:
		b.WriteString("none")
		return
	case OP_NUM, OP_VAR:
		if len(n.Args) == 0 {
			b.WriteString(n.Lexeme)
			return
		}
		// An annotated symbol (\overset) prints its annotations.
	case OP_TEXT:
		b.WriteString(strconv.Quote(n.Lexeme))
		return
	}
	b.WriteByte('(')
	b.WriteString(n.Op.String())
	if n.IsLeaf() {
		b.WriteByte(' ')
		b.WriteString(n.Lexeme)
	}
	for _, a := range n.Args {
		b.WriteByte(' ')
		formatNode(b, a)
	}
	b.WriteByte(')')
}
