package latex

import "testing"

// TestTokenizeLine checks token boundaries and kinds for display use.
func TestTokenizeLine(t *testing.T) {
	tokens, _ := TokenizeLine(`1 + 2`, nil, nil)
	want := []struct {
		tk  TokenType
		lex string
	}{
		{TOKEN_NUM, "1"},
		{TOKEN_PLUS, "+"},
		{TOKEN_NUM, "2"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("TokenizeLine(1 + 2) = %v, want %d tokens", tokens, len(want))
	}
	for i, w := range want {
		if tokens[i].Type != w.tk || tokens[i].Lexeme != w.lex {
			t.Errorf("token %d = %v, want (%d, %q)", i, tokens[i], w.tk, w.lex)
		}
	}
}

// TestTokenizeFusions checks two-character operator fusion.
func TestTokenizeFusions(t *testing.T) {
	cases := []struct {
		input string
		tk    TokenType
	}{
		{`!=`, TOKEN_NE},
		{`<=`, TOKEN_LE},
		{`>=`, TOKEN_GE},
		{`**`, TOKEN_CARET},
		{`->`, TOKEN_RIGHTARROW},
	}
	for _, tt := range cases {
		tokens, _ := TokenizeLine(tt.input, nil, nil)
		if len(tokens) != 1 || tokens[0].Type != tt.tk {
			t.Errorf("TokenizeLine(%q) = %v, want one token of type %d", tt.input, tokens, tt.tk)
		}
	}
}

// TestTokenizeControlSequences checks the lexeme table and its special
// cases.
func TestTokenizeControlSequences(t *testing.T) {
	cases := []struct {
		input string
		tk    TokenType
		lex   string
	}{
		{`\frac`, TOKEN_FRAC, `\frac`},
		{`\\`, TOKEN_NEWROW, `\\`},
		{`\{`, TOKEN_LEFTBRACESET, `\{`},
		{`\|`, TOKEN_VERTICALBAR, `\|`},
		{`\infty`, TOKEN_NUM, `\infty`},
		{`\varepsilon`, TOKEN_VAR, `\epsilon`},
		{`\emptyset`, TOKEN_VAR, `\varnothing`},
		{`\nosuchcmd`, TOKEN_VAR, `\nosuchcmd`},
		{`\text{ a b }`, TOKEN_TEXT, `a b`},
		{`\operatorname{foo}`, TOKEN_VAR, `foo`},
	}
	for _, tt := range cases {
		tokens, _ := TokenizeLine(tt.input, nil, nil)
		if len(tokens) != 1 {
			t.Errorf("TokenizeLine(%q) = %v, want one token", tt.input, tokens)
			continue
		}
		if tokens[0].Type != tt.tk || tokens[0].Lexeme != tt.lex {
			t.Errorf("TokenizeLine(%q) = %v, want (%d, %q)", tt.input, tokens[0], tt.tk, tt.lex)
		}
	}
}

// TestTokenizeWhitespace checks that spacing commands and entities vanish.
func TestTokenizeWhitespace(t *testing.T) {
	inputs := []string{
		`x \quad y`,
		`x \; y`,
		`x \ y`,
		`x \Bigg y`,
		"x&nbsp;y",
		"x y",
	}
	for _, input := range inputs {
		tokens, _ := TokenizeLine(input, nil, nil)
		if len(tokens) != 2 {
			t.Errorf("TokenizeLine(%q) = %v, want two VAR tokens", input, tokens)
			continue
		}
		if tokens[0].Lexeme != "x" || tokens[1].Lexeme != "y" {
			t.Errorf("TokenizeLine(%q) = %v, want x then y", input, tokens)
		}
	}
}

// TestTokenizePrimes checks that a prime run is one VAR.
func TestTokenizePrimes(t *testing.T) {
	tokens, _ := TokenizeLine(`f''`, nil, nil)
	if len(tokens) != 2 {
		t.Fatalf("TokenizeLine(f'') = %v, want two tokens", tokens)
	}
	if tokens[1].Type != TOKEN_VAR || tokens[1].Lexeme != "''" {
		t.Errorf("prime token = %v, want VAR %q", tokens[1], "''")
	}
}

// TestKeepTextWhitespace checks the \text whitespace options.
func TestKeepTextWhitespace(t *testing.T) {
	opts := DefaultOptions()
	opts.KeepTextWhitespace = true
	tokens, _ := TokenizeLine(`\text{ a }`, opts, nil)
	if len(tokens) != 1 || tokens[0].Lexeme != " a " {
		t.Errorf("KeepTextWhitespace: tokens = %v, want TEXT %q", tokens, " a ")
	}

	opts = DefaultOptions()
	opts.IgnoreText = true
	tokens, _ = TokenizeLine(`x\text{ a }y`, opts, nil)
	if len(tokens) != 2 {
		t.Errorf("IgnoreText: tokens = %v, want x and y only", tokens)
	}
}

// TestStripInvisible checks control-character collapsing.
func TestStripInvisible(t *testing.T) {
	got := stripInvisible("a\x01\x02b")
	if got != "a\tb" {
		t.Errorf("stripInvisible = %q, want %q", got, "a\tb")
	}
	// The character after a backslash survives.
	got = stripInvisible("a\\\tb")
	if got != "a\\\tb" {
		t.Errorf("stripInvisible after backslash = %q, want preserved", got)
	}
}
