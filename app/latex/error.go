package latex

import (
	"strconv"
	"strings"
)

// Diagnostic codes. The 1000–1999 range is reserved for the parser.
const (
	ErrInternal               = 1000
	ErrSyntax                 = 1001
	ErrMultipleDecimal        = 1002
	ErrExtraInput             = 1003
	ErrInvalidChar            = 1004
	ErrMisplacedThousands     = 1005
	ErrExpressionExpected     = 1006
	ErrUnexpectedCharInNumber = 1007
	ErrSeparatorConflict      = 1008
	ErrMissingArgument        = 1009
	ErrAdjacentNumbers        = 1010
	ErrInvalidGroupingBracket = 1011
	ErrMisplacedSubscript     = 1012
	ErrMismatchedThousands    = 1013
	ErrMissingIntegrationVar  = 1014
)

// messages maps diagnostic codes to format strings with positional %1, %2, …
// substitutions.
var messages = map[int]string{
	ErrInternal:               "internal error: %1",
	ErrSyntax:                 "syntax error: expected %1, found %2",
	ErrMultipleDecimal:        "invalid decimal separator: %1",
	ErrExtraInput:             "extra input after expression: %1",
	ErrInvalidChar:            "invalid character %1 in input",
	ErrMisplacedThousands:     "misplaced thousands separator",
	ErrExpressionExpected:     "expression expected, found %1",
	ErrUnexpectedCharInNumber: "unexpected character %1 in number",
	ErrSeparatorConflict:      "thousands and decimal separators conflict: %1",
	ErrMissingArgument:        "missing argument for command %1",
	ErrAdjacentNumbers:        "expecting an operator between numbers",
	ErrInvalidGroupingBracket: "invalid grouping bracket %1",
	ErrMisplacedSubscript:     "misplaced subscript",
	ErrMismatchedThousands:    "mismatched thousands separators",
	ErrMissingIntegrationVar:  "missing integration variable",
}

// ParseError is a fatal parse diagnostic. There is no partial recovery: a
// parse either returns a complete tree or one of these.
type ParseError struct {
	Code int
	Msg  string
	Src  string // the source text being parsed
}

func (e *ParseError) Error() string {
	return "latex error " + strconv.Itoa(e.Code) + ": " + e.Msg
}

// newError formats the message template for code with positional arguments.
func newError(code int, src string, args ...string) *ParseError {
	msg, ok := messages[code]
	if !ok {
		msg = messages[ErrInternal]
		args = []string{"unknown diagnostic " + strconv.Itoa(code)}
	}
	for i, a := range args {
		msg = strings.ReplaceAll(msg, "%"+strconv.Itoa(i+1), a)
	}
	return &ParseError{Code: code, Msg: msg, Src: src}
}

// raise aborts the current parse. Expr recovers it at the entry point; any
// other panic value is re-thrown.
func raise(code int, src string, args ...string) {
	panic(newError(code, src, args...))
}

func internalError(src, detail string) {
	raise(ErrInternal, src, detail)
}

func assert(cond bool, src, detail string) {
	if !cond {
		internalError(src, detail)
	}
}
