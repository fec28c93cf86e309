package main

import (
	"image/color"

	"parselatex/app/latex"
)

// TokenKind represents the category of a syntax token.
type TokenKind int

const (
	TokenPlain TokenKind = iota
	TokenCommand
	TokenText
	TokenNumber
	TokenOperator
	TokenVariable
	TokenRelation
	TokenBracket
	TokenScript
)

// Token is a span of text with a syntax category.
type Token struct {
	Text string
	Kind TokenKind
}

// tokenColors maps token kinds to colors. Dark-theme oriented.
var tokenColors = map[TokenKind]color.NRGBA{
	TokenPlain:    {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenCommand:  {R: 0x56, G: 0x9C, B: 0xD6, A: 0xFF}, // blue
	TokenText:     {R: 0xCE, G: 0x91, B: 0x78, A: 0xFF}, // orange
	TokenNumber:   {R: 0xB5, G: 0xCE, B: 0xA8, A: 0xFF}, // green
	TokenOperator: {R: 0xD4, G: 0xD4, B: 0xD4, A: 0xFF}, // light gray
	TokenVariable: {R: 0x9C, G: 0xDB, B: 0xFE, A: 0xFF}, // light blue
	TokenRelation: {R: 0x4E, G: 0xC9, B: 0xB0, A: 0xFF}, // teal
	TokenBracket:  {R: 0xFF, G: 0xD7, B: 0x00, A: 0xFF}, // yellow
	TokenScript:   {R: 0xC5, G: 0x86, B: 0xC0, A: 0xFF}, // purple
}

// TokenColor returns the color for a token kind.
func TokenColor(kind TokenKind) color.NRGBA {
	if c, ok := tokenColors[kind]; ok {
		return c
	}
	return tokenColors[TokenPlain]
}

// latexTokenToHighlight maps a scanner token type to a highlight TokenKind.
func latexTokenToHighlight(t latex.TokenType) TokenKind {
	switch t {
	case latex.TOKEN_NUM:
		return TokenNumber
	case latex.TOKEN_VAR:
		return TokenVariable
	case latex.TOKEN_TEXT:
		return TokenText
	case latex.TOKEN_PLUS, latex.TOKEN_MINUS, latex.TOKEN_STAR, latex.TOKEN_SLASH,
		latex.TOKEN_CDOT, latex.TOKEN_TIMES, latex.TOKEN_DIV, latex.TOKEN_PM,
		latex.TOKEN_BANG, latex.TOKEN_PERCENTSIGN:
		return TokenOperator
	case latex.TOKEN_CARET, latex.TOKEN_UNDERSCORE:
		return TokenScript
	case latex.TOKEN_LPAREN, latex.TOKEN_RPAREN, latex.TOKEN_LBRACKET,
		latex.TOKEN_RBRACKET, latex.TOKEN_LBRACE, latex.TOKEN_RBRACE,
		latex.TOKEN_LEFTBRACESET, latex.TOKEN_RIGHTBRACESET, latex.TOKEN_PIPE,
		latex.TOKEN_VERTICALBAR, latex.TOKEN_LANGLE, latex.TOKEN_RANGLE,
		latex.TOKEN_LEFT, latex.TOKEN_RIGHT:
		return TokenBracket
	case latex.TOKEN_EQL, latex.TOKEN_NE, latex.TOKEN_LT, latex.TOKEN_LE,
		latex.TOKEN_GT, latex.TOKEN_GE, latex.TOKEN_APPROX, latex.TOKEN_SIM,
		latex.TOKEN_CONG, latex.TOKEN_IN, latex.TOKEN_NOTIN, latex.TOKEN_SUBSET,
		latex.TOKEN_SUBSETEQ, latex.TOKEN_SUPSET, latex.TOKEN_SUPSETEQ,
		latex.TOKEN_TO, latex.TOKEN_RIGHTARROW, latex.TOKEN_IMPLIES, latex.TOKEN_IFF:
		return TokenRelation
	}
	return TokenCommand // remaining tokens: control sequences and punctuation
}

// Tokenize splits a line into highlighted tokens using the core scanner.
// Gaps between tokens (whitespace, skipped control sequences) come through
// as plain spans of the normalized line.
func Tokenize(line string) []Token {
	if line == "" {
		return nil
	}

	latexTokens, normalized := latex.TokenizeLine(line, nil, nil)
	src := []rune(normalized)
	var result []Token
	lastEnd := 0

	for _, lt := range latexTokens {
		if lt.Pos > lastEnd && lt.Pos <= len(src) {
			result = append(result, Token{
				Text: string(src[lastEnd:lt.Pos]),
				Kind: TokenPlain,
			})
		}

		result = append(result, Token{
			Text: lt.Lexeme,
			Kind: latexTokenToHighlight(lt.Type),
		})

		lastEnd = lt.Pos + len([]rune(lt.Lexeme))
	}

	// Any trailing text
	if lastEnd < len(src) {
		result = append(result, Token{
			Text: string(src[lastEnd:]),
			Kind: TokenPlain,
		})
	}

	return result
}
