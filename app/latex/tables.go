package latex

// lexemeTokens maps backslash control sequences to token types. Unknown
// control sequences fall through to VAR.
var lexemeTokens = map[string]TokenType{
	"\\frac":      TOKEN_FRAC,
	"\\dfrac":     TOKEN_FRAC,
	"\\tfrac":     TOKEN_FRAC,
	"\\sqrt":      TOKEN_SQRT,
	"\\vec":       TOKEN_VEC,
	"\\overline":  TOKEN_OVERLINE,
	"\\dot":       TOKEN_DOT,
	"\\mathbf":    TOKEN_MATHBF,
	"\\overset":   TOKEN_OVERSET,
	"\\underset":  TOKEN_UNDERSET,
	"\\begin":     TOKEN_BEGIN,
	"\\end":       TOKEN_END,
	"\\left":      TOKEN_LEFT,
	"\\right":     TOKEN_RIGHT,
	"\\langle":    TOKEN_LANGLE,
	"\\rangle":    TOKEN_RANGLE,
	"\\Delta":     TOKEN_DELTA,
	"\\exists":    TOKEN_EXISTS,
	"\\forall":    TOKEN_FORALL,
	"\\degree":    TOKEN_DEGREE,
	"\\circ":      TOKEN_CIRC,
	"\\cdot":      TOKEN_CDOT,
	"\\times":     TOKEN_TIMES,
	"\\div":       TOKEN_DIV,
	"\\pm":        TOKEN_PM,
	"\\cup":       TOKEN_CUP,
	"\\cap":       TOKEN_CAP,
	"\\setminus":  TOKEN_SETMINUS,
	"\\backslash": TOKEN_SETMINUS,

	"\\ne":            TOKEN_NE,
	"\\neq":           TOKEN_NE,
	"\\le":            TOKEN_LE,
	"\\leq":           TOKEN_LE,
	"\\ge":            TOKEN_GE,
	"\\geq":           TOKEN_GE,
	"\\approx":        TOKEN_APPROX,
	"\\sim":           TOKEN_SIM,
	"\\cong":          TOKEN_CONG,
	"\\ngtr":          TOKEN_NGTR,
	"\\nless":         TOKEN_NLESS,
	"\\in":            TOKEN_IN,
	"\\notin":         TOKEN_NOTIN,
	"\\ni":            TOKEN_NI,
	"\\subset":        TOKEN_SUBSET,
	"\\subseteq":      TOKEN_SUBSETEQ,
	"\\supset":        TOKEN_SUPSET,
	"\\supseteq":      TOKEN_SUPSETEQ,
	"\\perp":          TOKEN_PERP,
	"\\propto":        TOKEN_PROPTO,
	"\\parallel":      TOKEN_PARALLEL,
	"\\nparallel":     TOKEN_NPARALLEL,
	"\\to":            TOKEN_TO,
	"\\rightarrow":    TOKEN_RIGHTARROW,
	"\\leftarrow":     TOKEN_LEFTARROW,
	"\\leftrightarrow": TOKEN_LEFTRIGHTARROW,
	"\\longleftrightarrow": TOKEN_LONGLEFTRIGHTARROW,
	"\\Rightarrow":    TOKEN_IMPLIES,
	"\\implies":       TOKEN_IMPLIES,
	"\\iff":           TOKEN_IFF,
	"\\Leftrightarrow": TOKEN_IFF,
	"\\not":           TOKEN_NOT,

	"\\sin":  TOKEN_SIN,
	"\\cos":  TOKEN_COS,
	"\\tan":  TOKEN_TAN,
	"\\sec":  TOKEN_SEC,
	"\\csc":  TOKEN_CSC,
	"\\cot":  TOKEN_COT,
	"\\sinh": TOKEN_SINH,
	"\\cosh": TOKEN_COSH,
	"\\tanh": TOKEN_TANH,
	"\\sech": TOKEN_SECH,
	"\\csch": TOKEN_CSCH,
	"\\coth": TOKEN_COTH,
	"\\arcsin": TOKEN_ARCSIN,
	"\\arccos": TOKEN_ARCCOS,
	"\\arctan": TOKEN_ARCTAN,
	"\\arcsec": TOKEN_ARCSEC,
	"\\arccsc": TOKEN_ARCCSC,
	"\\arccot": TOKEN_ARCCOT,
	"\\log":    TOKEN_LOG,
	"\\ln":     TOKEN_LN,
	"\\lg":     TOKEN_LG,
	"\\int":    TOKEN_INT,
	"\\iint":   TOKEN_IINT,
	"\\iiint":  TOKEN_IIINT,
	"\\sum":    TOKEN_SUM,
	"\\prod":   TOKEN_PROD,
	"\\bigcup": TOKEN_BIGCUP,
	"\\bigcap": TOKEN_BIGCAP,
	"\\lim":    TOKEN_LIM,
}

// whitespaceLexemes are control sequences the scanner skips entirely.
var whitespaceLexemes = map[string]bool{
	"\\ ":     true,
	"\\,":     true,
	"\\;":     true,
	"\\:":     true,
	"\\!":     true,
	"\\big":   true,
	"\\Big":   true,
	"\\bigg":  true,
	"\\Bigg":  true,
	"\\quad":  true,
	"\\qquad": true,
}

// textLexemes are control sequences that consume a brace-delimited argument
// as their lexeme.
var textLexemes = map[string]bool{
	"\\text":   true,
	"\\textrm": true,
	"\\textit": true,
	"\\textbf": true,
}

// unicodeLexemes maps Unicode math code points to LaTeX lexemes. The scanner
// normalizes these before tokenizing.
var unicodeLexemes = map[rune]string{
	// Arrows and operators, U+2190–U+22FF
	'←': "\\leftarrow",
	'→': "\\rightarrow",
	'↔': "\\leftrightarrow",
	'⇒': "\\Rightarrow",
	'⇔': "\\Leftrightarrow",
	'∀': "\\forall",
	'∂': "d", // partial differential reads as the derivative marker
	'∃': "\\exists",
	'∅': "\\varnothing",
	'∈': "\\in",
	'∉': "\\notin",
	'∋': "\\ni",
	'−': "-",
	'∓': "\\pm",
	'∕': "/",
	'∖': "\\setminus",
	'∗': "*",
	'√': "\\sqrt",
	'∝': "\\propto",
	'∞': "\\infty",
	'∥': "\\parallel",
	'∦': "\\nparallel",
	'∩': "\\cap",
	'∪': "\\cup",
	'∫': "\\int",
	'∬': "\\iint",
	'∭': "\\iiint",
	'∼': "\\sim",
	'≅': "\\cong",
	'≈': "\\approx",
	'≠': "\\ne",
	'≤': "\\le",
	'≥': "\\ge",
	'≮': "\\nless",
	'≯': "\\ngtr",
	'⊂': "\\subset",
	'⊃': "\\supset",
	'⊆': "\\subseteq",
	'⊇': "\\supseteq",
	'⊥': "\\perp",
	'⋅': "\\cdot",
	'×': "\\times",
	'÷': "\\div",
	'±': "\\pm",
	'⟷': "\\longleftrightarrow",
	'¢': "\\cent",
	'°': "\\degree",
	'∶': ":",

	// Greek, U+0391–U+03F5
	'Α': "A",
	'Β': "B",
	'Γ': "\\Gamma",
	'Δ': "\\Delta",
	'Ε': "E",
	'Ζ': "Z",
	'Η': "H",
	'Θ': "\\Theta",
	'Ι': "I",
	'Κ': "K",
	'Λ': "\\Lambda",
	'Μ': "M",
	'Ν': "N",
	'Ξ': "\\Xi",
	'Ο': "O",
	'Π': "\\Pi",
	'Ρ': "P",
	'Σ': "\\Sigma",
	'Τ': "T",
	'Υ': "\\Upsilon",
	'Φ': "\\Phi",
	'Χ': "X",
	'Ψ': "\\Psi",
	'Ω': "\\Omega",
	'α': "\\alpha",
	'β': "\\beta",
	'γ': "\\gamma",
	'δ': "\\delta",
	'ε': "\\epsilon",
	'ζ': "\\zeta",
	'η': "\\eta",
	'θ': "\\theta",
	'ι': "\\iota",
	'κ': "\\kappa",
	'λ': "\\lambda",
	'μ': "\\mu",
	'ν': "\\nu",
	'ξ': "\\xi",
	'ο': "o",
	'π': "\\pi",
	'ρ': "\\rho",
	'ς': "\\varsigma",
	'σ': "\\sigma",
	'τ': "\\tau",
	'υ': "\\upsilon",
	'φ': "\\varphi",
	'χ': "\\chi",
	'ψ': "\\psi",
	'ω': "\\omega",
	'ϕ': "\\phi",
	'ϵ': "\\epsilon",

	// The UTF-16 surrogate pair D835 DEC6 decodes to this code point; it
	// normalizes to epsilon like its plane-0 counterpart.
	'\U0001D6C6': "\\varepsilon",
}

// equalityOps, relationalOps and impliesOps map operator tokens to their AST
// operator at each level.
var equalityOps = map[TokenType]Op{
	TOKEN_EQL:        OP_EQL,
	TOKEN_NE:         OP_NE,
	TOKEN_APPROX:     OP_APPROX,
	TOKEN_RIGHTARROW: OP_RIGHTARROW,
}

var relationalOps = map[TokenType]Op{
	TOKEN_LT:                 OP_LT,
	TOKEN_LE:                 OP_LE,
	TOKEN_GT:                 OP_GT,
	TOKEN_GE:                 OP_GE,
	TOKEN_NGTR:               OP_NGTR,
	TOKEN_NLESS:              OP_NLESS,
	TOKEN_IN:                 OP_IN,
	TOKEN_NOTIN:              OP_NOTIN,
	TOKEN_NI:                 OP_NI,
	TOKEN_TO:                 OP_RIGHTARROW,
	TOKEN_SUBSET:             OP_SUBSET,
	TOKEN_SUBSETEQ:           OP_SUBSETEQ,
	TOKEN_SUPSET:             OP_SUPSET,
	TOKEN_SUPSETEQ:           OP_SUPSETEQ,
	TOKEN_PERP:               OP_PERP,
	TOKEN_PROPTO:             OP_PROPTO,
	TOKEN_PARALLEL:           OP_PARALLEL,
	TOKEN_NPARALLEL:          OP_NPARALLEL,
	TOKEN_SIM:                OP_SIM,
	TOKEN_CONG:               OP_CONG,
}

var impliesOps = map[TokenType]Op{
	TOKEN_IMPLIES:            OP_IMPLIES,
	TOKEN_IFF:                OP_IFF,
	TOKEN_LEFTARROW:          OP_LEFTARROW,
	TOKEN_LEFTRIGHTARROW:     OP_LEFTRIGHTARROW,
	TOKEN_LONGLEFTRIGHTARROW: OP_LEFTRIGHTARROW,
}

// notVariants rewrites a relational operator to its negated form when the
// \not prefix precedes it.
var notVariants = map[Op]Op{
	OP_EQL:      OP_NE,
	OP_LT:       OP_NLESS,
	OP_GT:       OP_NGTR,
	OP_IN:       OP_NOTIN,
	OP_SUBSET:   OP_NSUBSET,
	OP_SUBSETEQ: OP_NSUBSETEQ,
	OP_SUPSET:   OP_NSUPSET,
	OP_SUPSETEQ: OP_NSUPSETEQ,
	OP_PARALLEL: OP_NPARALLEL,
	OP_SIM:      OP_NSIM,
	OP_CONG:     OP_NCONG,
	OP_APPROX:   OP_NAPPROX,
}

// trigOps maps function tokens to operators.
var trigOps = map[TokenType]Op{
	TOKEN_SIN:    OP_SIN,
	TOKEN_COS:    OP_COS,
	TOKEN_TAN:    OP_TAN,
	TOKEN_SEC:    OP_SEC,
	TOKEN_CSC:    OP_CSC,
	TOKEN_COT:    OP_COT,
	TOKEN_SINH:   OP_SINH,
	TOKEN_COSH:   OP_COSH,
	TOKEN_TANH:   OP_TANH,
	TOKEN_SECH:   OP_SECH,
	TOKEN_CSCH:   OP_CSCH,
	TOKEN_COTH:   OP_COTH,
	TOKEN_ARCSIN: OP_ARCSIN,
	TOKEN_ARCCOS: OP_ARCCOS,
	TOKEN_ARCTAN: OP_ARCTAN,
	TOKEN_ARCSEC: OP_ARCSEC,
	TOKEN_ARCCSC: OP_ARCCSC,
	TOKEN_ARCCOT: OP_ARCCOT,
}

// inverseOps rewrites a trig operator to its inverse when a ^{-1} exponent
// follows the function name.
var inverseOps = map[Op]Op{
	OP_SIN:  OP_ARCSIN,
	OP_COS:  OP_ARCCOS,
	OP_TAN:  OP_ARCTAN,
	OP_SEC:  OP_ARCSEC,
	OP_CSC:  OP_ARCCSC,
	OP_COT:  OP_ARCCOT,
	OP_SINH: OP_ARCSINH,
	OP_COSH: OP_ARCCOSH,
	OP_TANH: OP_ARCTANH,
	OP_SECH: OP_ARCSECH,
	OP_CSCH: OP_ARCCSCH,
	OP_COTH: OP_ARCCOTH,
}

// opNames gives the compact tag used by FormatNode and intern keys.
var opNames = map[Op]string{
	OP_NONE:               "none",
	OP_NUM:                "num",
	OP_VAR:                "var",
	OP_TEXT:               "text",
	OP_ADD:                "+",
	OP_SUB:                "-",
	OP_MUL:                "*",
	OP_FRAC:               "frac",
	OP_POW:                "^",
	OP_SUBSCRIPT:          "sub",
	OP_PM:                 "pm",
	OP_CUP:                "cup",
	OP_CAP:                "cap",
	OP_SETMINUS:           "setminus",
	OP_COMMA:              ",",
	OP_COLON:              ":",
	OP_EQL:                "=",
	OP_NE:                 "ne",
	OP_APPROX:             "approx",
	OP_NAPPROX:            "napprox",
	OP_LT:                 "lt",
	OP_LE:                 "le",
	OP_GT:                 "gt",
	OP_GE:                 "ge",
	OP_NGTR:               "ngtr",
	OP_NLESS:              "nless",
	OP_IN:                 "in",
	OP_NOTIN:              "notin",
	OP_NI:                 "ni",
	OP_SUBSET:             "subset",
	OP_SUBSETEQ:           "subseteq",
	OP_NSUBSET:            "nsubset",
	OP_NSUBSETEQ:          "nsubseteq",
	OP_SUPSET:             "supset",
	OP_SUPSETEQ:           "supseteq",
	OP_NSUPSET:            "nsupset",
	OP_NSUPSETEQ:          "nsupseteq",
	OP_PERP:               "perp",
	OP_PROPTO:             "propto",
	OP_PARALLEL:           "parallel",
	OP_NPARALLEL:          "nparallel",
	OP_SIM:                "sim",
	OP_NSIM:               "nsim",
	OP_CONG:               "cong",
	OP_NCONG:              "ncong",
	OP_RIGHTARROW:         "rightarrow",
	OP_LEFTARROW:          "leftarrow",
	OP_LEFTRIGHTARROW:     "leftrightarrow",
	OP_IMPLIES:            "implies",
	OP_IFF:                "iff",
	OP_NOT:                "not",
	OP_ABS:                "abs",
	OP_PERCENT:            "percent",
	OP_FACT:               "fact",
	OP_VEC:                "vec",
	OP_OVERLINE:           "overline",
	OP_MATHBF:             "mathbf",
	OP_SET:                "set",
	OP_PAREN:              "paren",
	OP_BRACKET:            "bracket",
	OP_INTERVAL:           "interval",
	OP_INTERVALOPEN:       "intervalopen",
	OP_INTERVALLEFTOPEN:   "intervalleftopen",
	OP_INTERVALRIGHTOPEN:  "intervalrightopen",
	OP_EVALAT:             "evalat",
	OP_ANGLEBRACKET:       "anglebracket",
	OP_PIPE:               "pipe",
	OP_MATRIX:             "matrix",
	OP_ROW:                "row",
	OP_COL:                "col",
	OP_EXISTS:             "exists",
	OP_FORALL:             "forall",
	OP_SIN:                "sin",
	OP_COS:                "cos",
	OP_TAN:                "tan",
	OP_SEC:                "sec",
	OP_CSC:                "csc",
	OP_COT:                "cot",
	OP_SINH:               "sinh",
	OP_COSH:               "cosh",
	OP_TANH:               "tanh",
	OP_SECH:               "sech",
	OP_CSCH:               "csch",
	OP_COTH:               "coth",
	OP_ARCSIN:             "arcsin",
	OP_ARCCOS:             "arccos",
	OP_ARCTAN:             "arctan",
	OP_ARCSEC:             "arcsec",
	OP_ARCCSC:             "arccsc",
	OP_ARCCOT:             "arccot",
	OP_ARCSINH:            "arcsinh",
	OP_ARCCOSH:            "arccosh",
	OP_ARCTANH:            "arctanh",
	OP_ARCSECH:            "arcsech",
	OP_ARCCSCH:            "arccsch",
	OP_ARCCOTH:            "arccoth",
	OP_LOG:                "log",
	OP_SQRT:               "sqrt",
	OP_INTEGRAL:           "integral",
	OP_DERIV:              "deriv",
	OP_SUM:                "sum",
	OP_PROD:               "prod",
	OP_BIGCUP:             "bigcup",
	OP_BIGCAP:             "bigcap",
	OP_LIM:                "lim",
	OP_MOLARMASS:          "M",
}

// String returns the compact operator tag.
func (op Op) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return "op?"
}

// bracketChars maps bracket token codes to their source characters, used for
// intern keys and rendering.
var bracketChars = map[TokenType]string{
	TOKEN_LPAREN:        "(",
	TOKEN_RPAREN:        ")",
	TOKEN_LBRACKET:      "[",
	TOKEN_RBRACKET:      "]",
	TOKEN_LBRACE:        "{",
	TOKEN_RBRACE:        "}",
	TOKEN_LEFTBRACESET:  "\\{",
	TOKEN_RIGHTBRACESET: "\\}",
	TOKEN_PIPE:          "|",
	TOKEN_VERTICALBAR:   "\\|",
	TOKEN_LANGLE:        "\\langle",
	TOKEN_RANGLE:        "\\rangle",
	TOKEN_PERIOD:        ".",
}
