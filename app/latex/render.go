package latex

import "strings"

// opLatex maps infix operators to their LaTeX spellings.
var opLatex = map[Op]string{
	OP_ADD:            "+",
	OP_SUB:            "-",
	OP_PM:             "\\pm",
	OP_CUP:            "\\cup",
	OP_CAP:            "\\cap",
	OP_SETMINUS:       "\\setminus",
	OP_COLON:          ":",
	OP_EQL:            "=",
	OP_NE:             "\\ne",
	OP_APPROX:         "\\approx",
	OP_NAPPROX:        "\\not\\approx",
	OP_LT:             "<",
	OP_LE:             "\\le",
	OP_GT:             ">",
	OP_GE:             "\\ge",
	OP_NGTR:           "\\ngtr",
	OP_NLESS:          "\\nless",
	OP_IN:             "\\in",
	OP_NOTIN:          "\\notin",
	OP_NI:             "\\ni",
	OP_SUBSET:         "\\subset",
	OP_SUBSETEQ:       "\\subseteq",
	OP_NSUBSET:        "\\not\\subset",
	OP_NSUBSETEQ:      "\\not\\subseteq",
	OP_SUPSET:         "\\supset",
	OP_SUPSETEQ:       "\\supseteq",
	OP_NSUPSET:        "\\not\\supset",
	OP_NSUPSETEQ:      "\\not\\supseteq",
	OP_PERP:           "\\perp",
	OP_PROPTO:         "\\propto",
	OP_PARALLEL:       "\\parallel",
	OP_NPARALLEL:      "\\nparallel",
	OP_SIM:            "\\sim",
	OP_NSIM:           "\\not\\sim",
	OP_CONG:           "\\cong",
	OP_NCONG:          "\\not\\cong",
	OP_RIGHTARROW:     "\\rightarrow",
	OP_LEFTARROW:      "\\leftarrow",
	OP_LEFTRIGHTARROW: "\\leftrightarrow",
	OP_IMPLIES:        "\\Rightarrow",
	OP_IFF:            "\\iff",
}

// funcLatex maps function operators to their command names.
var funcLatex = map[Op]string{
	OP_SIN: "\\sin", OP_COS: "\\cos", OP_TAN: "\\tan",
	OP_SEC: "\\sec", OP_CSC: "\\csc", OP_COT: "\\cot",
	OP_SINH: "\\sinh", OP_COSH: "\\cosh", OP_TANH: "\\tanh",
	OP_SECH: "\\sech", OP_CSCH: "\\csch", OP_COTH: "\\coth",
	OP_ARCSIN: "\\arcsin", OP_ARCCOS: "\\arccos", OP_ARCTAN: "\\arctan",
	OP_ARCSEC: "\\arcsec", OP_ARCCSC: "\\arccsc", OP_ARCCOT: "\\arccot",
	OP_ARCSINH: "\\sinh^{-1}", OP_ARCCOSH: "\\cosh^{-1}", OP_ARCTANH: "\\tanh^{-1}",
	OP_ARCSECH: "\\sech^{-1}", OP_ARCCSCH: "\\csch^{-1}", OP_ARCCOTH: "\\coth^{-1}",
}

// ToLaTeX renders a tree back to LaTeX. The output is re-parseable; bracket
// style, mixed-number, scientific and repeating shapes are preserved from
// the node flags.
func ToLaTeX(n *Node) string {
	var b strings.Builder
	emit(&b, n)
	return b.String()
}

func emit(b *strings.Builder, n *Node) {
	if n == nil {
		return
	}
	switch n.Op {
	case OP_NONE:
		return
	case OP_NUM, OP_VAR:
		b.WriteString(n.Lexeme)
		return
	case OP_TEXT:
		b.WriteString("\\text{" + n.Lexeme + "}")
		return
	case OP_ADD:
		switch {
		case len(n.Args) == 1:
			b.WriteString("+")
			emit(b, n.Args[0])
		case n.IsMixedNumber:
			emit(b, n.Args[0])
			emit(b, n.Args[1])
		case n.IsRepeating:
			emit(b, n.Args[0])
			b.WriteString("\\overline{")
			emit(b, n.Args[1])
			b.WriteString("}")
		default:
			emitList(b, n.Args, " + ")
		}
		return
	case OP_SUB:
		if len(n.Args) == 1 {
			b.WriteString("-")
			emit(b, n.Args[0])
			return
		}
		emitList(b, n.Args, " - ")
		return
	case OP_MUL:
		sep := " \\cdot "
		if n.IsImplicit {
			sep = " "
		}
		if n.IsScientific {
			sep = " \\times "
		}
		emitList(b, n.Args, sep)
		return
	case OP_FRAC:
		if n.IsSlash && n.Args[0].IsLeaf() && n.Args[1].IsLeaf() {
			emit(b, n.Args[0])
			b.WriteString("/")
			emit(b, n.Args[1])
			return
		}
		b.WriteString("\\frac{")
		emit(b, n.Args[0])
		b.WriteString("}{")
		emit(b, n.Args[1])
		b.WriteString("}")
		return
	case OP_POW:
		emit(b, n.Args[0])
		b.WriteString("^{")
		emit(b, n.Args[1])
		b.WriteString("}")
		return
	case OP_SUBSCRIPT:
		emit(b, n.Args[0])
		b.WriteString("_{")
		emit(b, n.Args[1])
		b.WriteString("}")
		return
	case OP_COMMA:
		emitList(b, n.Args, ", ")
		return
	case OP_NOT:
		b.WriteString("\\not ")
		emit(b, n.Args[0])
		return
	case OP_ABS:
		wrapDelims(b, n, "|", "|")
		return
	case OP_PERCENT:
		emit(b, n.Args[0])
		b.WriteString("\\%")
		return
	case OP_FACT:
		emit(b, n.Args[0])
		b.WriteString("!")
		return
	case OP_VEC, OP_OVERLINE, OP_MATHBF:
		b.WriteString("\\" + n.Op.String() + "{")
		emit(b, n.Args[0])
		b.WriteString("}")
		return
	case OP_SET:
		b.WriteString("\\{")
		emit(b, n.Args[0])
		b.WriteString("\\}")
		return
	case OP_PAREN:
		wrapDelims(b, n, "(", ")")
		return
	case OP_BRACKET:
		wrapDelims(b, n, "[", "]")
		return
	case OP_INTERVAL:
		wrapDelims(b, n, "[", "]")
		return
	case OP_INTERVALOPEN:
		wrapDelims(b, n, "(", ")")
		return
	case OP_INTERVALLEFTOPEN:
		wrapDelims(b, n, "(", "]")
		return
	case OP_INTERVALRIGHTOPEN:
		wrapDelims(b, n, "[", ")")
		return
	case OP_EVALAT:
		b.WriteString("\\left.")
		emit(b, n.Args[0])
		b.WriteString("\\right|")
		return
	case OP_ANGLEBRACKET:
		b.WriteString("\\langle ")
		emit(b, n.Args[0])
		b.WriteString("\\rangle ")
		return
	case OP_PIPE:
		emit(b, n.Args[0])
		b.WriteString("|_{")
		emit(b, n.Args[1])
		b.WriteString("}")
		return
	case OP_MATRIX:
		b.WriteString("\\begin{matrix}")
		for i, row := range n.Args {
			if i > 0 {
				b.WriteString(" \\\\ ")
			}
			emit(b, row)
		}
		b.WriteString("\\end{matrix}")
		return
	case OP_ROW:
		emitList(b, n.Args, " & ")
		return
	case OP_COL:
		emit(b, n.Args[0])
		return
	case OP_EXISTS:
		b.WriteString("\\exists ")
		emit(b, n.Args[0])
		return
	case OP_FORALL:
		b.WriteString("\\forall ")
		emit(b, n.Args[0])
		return
	case OP_LOG:
		emitLog(b, n)
		return
	case OP_SQRT:
		b.WriteString("\\sqrt{")
		emit(b, n.Args[0])
		b.WriteString("}")
		return
	case OP_INTEGRAL:
		emitIntegral(b, n)
		return
	case OP_DERIV:
		b.WriteString("\\frac{d}{d")
		emit(b, n.Args[1])
		b.WriteString("}")
		emit(b, n.Args[0])
		return
	case OP_SUM, OP_PROD, OP_BIGCUP, OP_BIGCAP:
		emitBounded(b, n, "\\"+n.Op.String())
		return
	case OP_LIM:
		if len(n.Args) == 2 {
			b.WriteString("\\lim_{")
			emit(b, n.Args[0])
			b.WriteString("} ")
			emit(b, n.Args[1])
			return
		}
		b.WriteString("\\lim ")
		emit(b, n.Args[0])
		return
	case OP_MOLARMASS:
		b.WriteString("M")
		emit(b, n.Args[0])
		return
	}
	if name, ok := funcLatex[n.Op]; ok {
		b.WriteString(name + " ")
		emit(b, n.Args[0])
		return
	}
	if sym, ok := opLatex[n.Op]; ok {
		emitList(b, n.Args, " "+sym+" ")
		return
	}
	// Anything unmapped degrades to its tag; the renderer stays total.
	b.WriteString(n.Op.String())
}

func emitList(b *strings.Builder, args []*Node, sep string) {
	for i, a := range args {
		if i > 0 {
			b.WriteString(sep)
		}
		emit(b, a)
	}
}

// wrapDelims brackets the body with the node's recorded delimiters, falling
// back to the operator's canonical pair.
func wrapDelims(b *strings.Builder, n *Node, open, close string) {
	if c, ok := bracketChars[n.Lbrk]; ok && n.Lbrk != TOKEN_NONE {
		open = c
	}
	if c, ok := bracketChars[n.Rbrk]; ok && n.Rbrk != TOKEN_NONE {
		close = c
	}
	b.WriteString(open)
	emit(b, n.Args[0])
	b.WriteString(close)
}

func emitLog(b *strings.Builder, n *Node) {
	base, arg := n.Args[0], n.Args[1]
	switch {
	case base.Op == OP_VAR && base.Lexeme == "e":
		b.WriteString("\\ln ")
	case base.Op == OP_NUM && base.Lexeme == "10":
		b.WriteString("\\log ")
	default:
		b.WriteString("\\log_{")
		emit(b, base)
		b.WriteString("} ")
	}
	emit(b, arg)
}

func emitIntegral(b *strings.Builder, n *Node) {
	b.WriteString("\\int")
	var body, v *Node
	if len(n.Args) == 4 {
		b.WriteString("_{")
		emit(b, n.Args[0])
		b.WriteString("}^{")
		emit(b, n.Args[1])
		b.WriteString("}")
		body, v = n.Args[2], n.Args[3]
	} else {
		body, v = n.Args[0], n.Args[1]
	}
	b.WriteString(" ")
	emit(b, body)
	b.WriteString("\\,d")
	emit(b, v)
}

func emitBounded(b *strings.Builder, n *Node, name string) {
	b.WriteString(name)
	switch len(n.Args) {
	case 3:
		b.WriteString("_{")
		emit(b, n.Args[0])
		b.WriteString("}^{")
		emit(b, n.Args[1])
		b.WriteString("} ")
		emit(b, n.Args[2])
	case 2:
		b.WriteString("_{")
		emit(b, n.Args[0])
		b.WriteString("} ")
		emit(b, n.Args[1])
	default:
		b.WriteString(" ")
		emit(b, n.Args[0])
	}
}
