package latex

import "fmt"

// TokenType represents the type of a scanner token.
type TokenType int

const (
	TOKEN_NONE TokenType = iota // end of source
	TOKEN_NUM
	TOKEN_VAR
	TOKEN_TEXT

	// ASCII operators
	TOKEN_PLUS
	TOKEN_MINUS
	TOKEN_STAR
	TOKEN_SLASH
	TOKEN_CARET
	TOKEN_UNDERSCORE
	TOKEN_BANG
	TOKEN_PERCENTSIGN
	TOKEN_COMMA
	TOKEN_SEMICOLON
	TOKEN_COLON
	TOKEN_EQL
	TOKEN_LT
	TOKEN_GT
	TOKEN_PERIOD // bare '.', the empty \left. / \right. delimiter

	// Brackets
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_LBRACE
	TOKEN_RBRACE
	TOKEN_LEFTBRACESET  // \{
	TOKEN_RIGHTBRACESET // \}
	TOKEN_PIPE          // |
	TOKEN_VERTICALBAR   // \|
	TOKEN_LANGLE        // \langle
	TOKEN_RANGLE        // \rangle
	TOKEN_LEFT          // \left
	TOKEN_RIGHT         // \right

	// Two-character fusions and relational control sequences
	TOKEN_NE     // != or \ne
	TOKEN_LE     // <= or \le
	TOKEN_GE     // >= or \ge
	TOKEN_APPROX // \approx
	TOKEN_SIM
	TOKEN_CONG
	TOKEN_NGTR
	TOKEN_NLESS
	TOKEN_IN
	TOKEN_NOTIN
	TOKEN_NI
	TOKEN_SUBSET
	TOKEN_SUBSETEQ
	TOKEN_SUPSET
	TOKEN_SUPSETEQ
	TOKEN_PERP
	TOKEN_PROPTO
	TOKEN_PARALLEL
	TOKEN_NPARALLEL
	TOKEN_TO
	TOKEN_RIGHTARROW // -> or \rightarrow
	TOKEN_LEFTARROW
	TOKEN_LEFTRIGHTARROW
	TOKEN_LONGLEFTRIGHTARROW
	TOKEN_IMPLIES
	TOKEN_IFF
	TOKEN_NOT

	// Multiplicative and additive control sequences
	TOKEN_CDOT
	TOKEN_TIMES
	TOKEN_DIV
	TOKEN_PM
	TOKEN_CUP
	TOKEN_CAP
	TOKEN_SETMINUS

	// Structure
	TOKEN_FRAC
	TOKEN_SQRT
	TOKEN_VEC
	TOKEN_OVERLINE
	TOKEN_DOT
	TOKEN_MATHBF
	TOKEN_OVERSET
	TOKEN_UNDERSET
	TOKEN_BEGIN
	TOKEN_END
	TOKEN_NEWROW // \\
	TOKEN_NEWCOL // &
	TOKEN_DELTA  // \Delta
	TOKEN_EXISTS
	TOKEN_FORALL
	TOKEN_DEGREE // \degree
	TOKEN_CIRC   // \circ

	// Functions
	TOKEN_SIN
	TOKEN_COS
	TOKEN_TAN
	TOKEN_SEC
	TOKEN_CSC
	TOKEN_COT
	TOKEN_SINH
	TOKEN_COSH
	TOKEN_TANH
	TOKEN_SECH
	TOKEN_CSCH
	TOKEN_COTH
	TOKEN_ARCSIN
	TOKEN_ARCCOS
	TOKEN_ARCTAN
	TOKEN_ARCSEC
	TOKEN_ARCCSC
	TOKEN_ARCCOT
	TOKEN_LOG
	TOKEN_LN
	TOKEN_LG
	TOKEN_INT
	TOKEN_IINT
	TOKEN_IIINT
	TOKEN_SUM
	TOKEN_PROD
	TOKEN_BIGCUP
	TOKEN_BIGCAP
	TOKEN_LIM
)

// Token represents a single scanner token. The streaming scanner yields
// (type, lexeme) pairs; Token is the materialized form used by TokenizeLine
// and the app's syntax highlighter.
type Token struct {
	Type   TokenType
	Lexeme string
	Pos    int // rune offset in the normalized input
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%d, %q, %d)", t.Type, t.Lexeme, t.Pos)
}
