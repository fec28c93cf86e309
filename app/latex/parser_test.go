package latex

import "testing"

// TestParseShapes checks the tree shape for a broad sample of notation.
func TestParseShapes(t *testing.T) {
	shapes := []struct {
		input string
		want  string
	}{
		// Arithmetic
		{`1 + 2`, `(+ 1 2)`},
		{`1 + 2 + 3`, `(+ 1 2 3)`},
		{`a - b`, `(- a b)`},
		{`-x`, `(- x)`},
		{`-2`, `-2`},
		{`+x`, `(+ x)`},
		{`2x`, `(* 2 x)`},
		{`2x + 3y`, `(+ (* 2 x) (* 3 y))`},
		{`2 \cdot 3`, `(* 2 3)`},
		{`a \div b`, `(frac a b)`},
		{`a/b`, `(frac a b)`},
		{`a \pm b`, `(pm a b)`},
		{`\pm 2x`, `(pm (* 2 x))`},

		// Fractions, mixed numbers, repeating decimals
		{`\frac{1}{2}`, `(frac 1 2)`},
		{`3\frac{1}{2}`, `(+ 3 (frac 1 2))`},
		{`0.\overline{3}`, `(+ 0. 3)`},
		{`.\overline{3}`, `(+ 0. 3)`},
		{`0.\dot{3}`, `(+ 0. 3)`},
		{`\dot{1}23\dot{4}`, `(overline 1234)`},

		// Exponents and subscripts
		{`x^2`, `(^ x 2)`},
		{`x^21`, `(* (^ x 2) 1)`},
		{`x^{21}`, `(^ x 21)`},
		{`a^b^c`, `(^ a (^ b c))`},
		{`2**3`, `(^ 2 3)`},
		{`x_1^2`, `(^ (sub x 1) 2)`},
		{`x^2_1`, `(^ (sub x 1) 2)`},
		{`x'`, `(^ x ')`},

		// Scientific notation
		{`1.5e3`, `(* 1.5 (^ 10 3))`},
		{`3e-2`, `(* 3 (^ 10 -2))`},
		{`2 \times 10^4`, `(* 2 (^ 10 4))`},

		// Relations and chains
		{`a = b`, `(= a b)`},
		{`a = b = c`, `(, (= a b) (= b c))`},
		{`a < b < c`, `(, (lt a b) (lt b c))`},
		{`a \le b`, `(le a b)`},
		{`a \not\in b`, `(notin a b)`},
		{`a \not< b`, `(nless a b)`},
		{`x \to 0`, `(rightarrow x 0)`},
		{`p \implies q`, `(implies p q)`},
		{`a \approx b`, `(approx a b)`},
		{`a : b : c`, `(: a b c)`},

		// Brackets and intervals
		{`(x)`, `(paren x)`},
		{`[x]`, `(bracket x)`},
		{`(1,2)`, `(intervalopen (, 1 2))`},
		{`[1,2]`, `(interval (, 1 2))`},
		{`(1,2]`, `(intervalleftopen (, 1 2))`},
		{`[1,2)`, `(intervalrightopen (, 1 2))`},
		{`]1,2[`, `(intervalopen (, 1 2))`},
		{`]1,2]`, `(intervalleftopen (, 1 2))`},
		{`[1,2[`, `(intervalrightopen (, 1 2))`},
		{`\left(x\right)`, `(paren x)`},
		{`|x - 1|`, `(abs (- x 1))`},
		{`\left|x\right|`, `(abs x)`},
		{`\langle a,b\rangle`, `(anglebracket (, a b))`},
		{`\{1\} \cup \{2\}`, `(cup (set 1) (set 2))`},
		{`A \setminus B`, `(setminus A B)`},
		{`\left.f\right|`, `(evalat f)`},
		{`\left.f\right|_2`, `(sub (evalat f) 2)`},

		// Functions
		{`\sin x`, `(sin x)`},
		{`\sin 2x`, `(sin (* 2 x))`},
		{`\sin^2 x`, `(^ (sin x) 2)`},
		{`\sin^{-1}(x)`, `(arcsin (paren x))`},
		{`\cosh y`, `(cosh y)`},
		{`\sin x \cos x`, `(* (sin x) (cos x))`},
		{`\log x`, `(log 10 x)`},
		{`\log_2 8`, `(log 2 8)`},
		{`\ln x`, `(log e x)`},
		{`\lg x`, `(log 10 x)`},
		{`\sqrt{4}`, `(sqrt 4)`},
		{`\sqrt[3]{8}`, `(^ 8 (frac 1 3))`},

		// Big operators
		{`\int x\,dx`, `(integral x x)`},
		{`\int_0^1 x\,dx`, `(integral 0 1 x x)`},
		{`\int \frac{1}{x} dx`, `(integral (frac 1 x) x)`},
		{`\int \sin x\,dx`, `(integral (sin x) x)`},
		{`\iint xy\,dx\,dy`, `(integral (integral (* x y) x) y)`},
		{`\sum_{i=1}^{n} i`, `(sum (= i 1) n i)`},
		{`\prod_{i=1}^{n} i`, `(prod (= i 1) n i)`},
		{`\lim_{x \to 0} x`, `(lim (rightarrow x 0) x)`},
		{`\frac{dy}{dx}`, `(deriv y x)`},
		{`\frac{d}{dx} y`, `(deriv y x)`},

		// Postfix
		{`5!`, `(fact 5)`},
		{`50\%`, `(percent 50)`},

		// Leaves and miscellany
		{``, `none`},
		{`x`, `x`},
		{`\alpha`, `\alpha`},
		{`\varepsilon`, `\epsilon`},
		{`\infty`, `\infty`},
		{`-\infty`, `(- \infty)`},
		{`\unknowncmd`, `\unknowncmd`},
		{`\Delta x`, `Delta_x`},
		{`\vec{v}`, `(vec v)`},
		{`\mathbf{x}`, `(mathbf x)`},
		{`\overline{AB}`, `(overline (* A B))`},
		{`\text{apples}`, `"apples"`},
		{`\operatorname{foo}(x)`, `(* foo (paren x))`},
		{`1, 2, 3`, `(, 1 2 3)`},
		{`45^\circ`, `(* 45 \degree)`},
		{`\begin{matrix}1&2\\3&4\end{matrix}`,
			`(matrix (row (col 1) (col 2)) (row (col 3) (col 4)))`},
	}

	for _, tt := range shapes {
		node, err := Parse(nil, tt.input, nil)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		got := FormatNode(node)
		if got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

// TestParseErrors checks that malformed input fails with the documented
// diagnostic codes.
func TestParseErrors(t *testing.T) {
	errors := []struct {
		input string
		code  int
	}{
		{`2 3`, ErrAdjacentNumbers},
		{`\int x`, ErrMissingIntegrationVar},
		{`\iint x\,dx`, ErrMissingIntegrationVar},
		{`(1`, ErrSyntax},
		{`1)`, ErrExtraInput},
		{`#`, ErrInvalidChar},
		{`x__1`, ErrMisplacedSubscript},
		{`1.2.3`, ErrMultipleDecimal},
		{`\frac{1}`, ErrMissingArgument},
		{`\text{x`, ErrMissingArgument},
	}

	for _, tt := range errors {
		_, err := Parse(nil, tt.input, nil)
		pe, ok := err.(*ParseError)
		if !ok {
			t.Errorf("Parse(%q) = %v, want *ParseError", tt.input, err)
			continue
		}
		if pe.Code != tt.code {
			t.Errorf("Parse(%q) code = %d, want %d", tt.input, pe.Code, tt.code)
		}
	}
}

// TestParseFlags checks the grammatical-shape flags downstream plugins
// consume.
func TestParseFlags(t *testing.T) {
	frac, err := Parse(nil, `\frac{1}{2}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !frac.IsFraction {
		t.Error(`\frac{1}{2}: IsFraction = false, want true`)
	}

	mixed, err := Parse(nil, `3\frac{1}{2}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !mixed.IsMixedNumber {
		t.Error(`3\frac{1}{2}: IsMixedNumber = false, want true`)
	}

	rep, err := Parse(nil, `0.\overline{3}`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !rep.IsRepeating || !rep.Args[0].IsRepeating || !rep.Args[1].IsRepeating {
		t.Error(`0.\overline{3}: IsRepeating not set on sum and children`)
	}

	sci, err := Parse(nil, `1.5e3`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sci.IsScientific {
		t.Error(`1.5e3: IsScientific = false, want true`)
	}

	slash, err := Parse(nil, `1/2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !slash.IsSlash || !slash.IsFraction {
		t.Error(`1/2: IsSlash/IsFraction not set`)
	}

	mul, err := Parse(nil, `2x`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !mul.IsImplicit {
		t.Error(`2x: IsImplicit = false, want true`)
	}
}

// TestThousandsSeparators checks configurable separator scanning and its
// NUM bookkeeping.
func TestThousandsSeparators(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.SetThousandsSeparator(","); err != nil {
		t.Fatal(err)
	}

	n, err := Parse(opts, `1{,}234.5`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n.Op != OP_NUM || n.Lexeme != "1234.5" {
		t.Fatalf(`1{,}234.5 = %s, want NUM 1234.5`, FormatNode(n))
	}
	if n.NumberFormat != FormatDecimal {
		t.Errorf("NumberFormat = %s, want %s", n.NumberFormat, FormatDecimal)
	}
	if n.SeparatorCount != 2 {
		t.Errorf("SeparatorCount = %d, want 2", n.SeparatorCount)
	}
	if n.LastSeparatorIndex != 4 {
		t.Errorf("LastSeparatorIndex = %d, want 4", n.LastSeparatorIndex)
	}

	n, err = Parse(opts, `1,234,567`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n.Lexeme != "1234567" || n.NumberFormat != FormatInteger {
		t.Errorf(`1,234,567 = %s (%s), want 1234567 (integer)`, n.Lexeme, n.NumberFormat)
	}

	// Without the option a comma is a list separator.
	n, err = Parse(nil, `1,234`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(, 1 234)` {
		t.Errorf(`1,234 = %s, want (, 1 234)`, got)
	}

	// Bad grouping and mixed separator characters are fatal.
	if _, err = Parse(opts, `1,23`, nil); err == nil {
		t.Error(`1,23: expected misplaced-separator error`)
	} else if err.(*ParseError).Code != ErrMisplacedThousands {
		t.Errorf(`1,23: code = %d, want %d`, err.(*ParseError).Code, ErrMisplacedThousands)
	}

	multi := DefaultOptions()
	if err := multi.SetThousandsSeparator(",", "'"); err != nil {
		t.Fatal(err)
	}
	if _, err = Parse(multi, `1,234'567`, nil); err == nil {
		t.Error(`1,234'567: expected mismatched-separator error`)
	} else if err.(*ParseError).Code != ErrMismatchedThousands {
		t.Errorf(`1,234'567: code = %d, want %d`, err.(*ParseError).Code, ErrMismatchedThousands)
	}
}

// TestDecimalPlaces checks literal rounding and its strict-mode exemption.
func TestDecimalPlaces(t *testing.T) {
	opts := DefaultOptions()
	opts.DecimalPlaces = 2

	cases := []struct {
		input string
		want  string
	}{
		{`3.14159`, `3.14`},
		{`1.005`, `1.01`},
		{`2.5`, `2.5`},
		{`7`, `7`},
	}
	for _, tt := range cases {
		n, err := Parse(opts, tt.input, nil)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if n.Lexeme != tt.want {
			t.Errorf("Parse(%q) lexeme = %s, want %s", tt.input, n.Lexeme, tt.want)
		}
	}

	strict := DefaultOptions()
	strict.DecimalPlaces = 2
	strict.Strict = true
	n, err := Parse(strict, `3.14159`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n.Lexeme != "3.14159" {
		t.Errorf("strict 3.14159 lexeme = %s, want literal preserved", n.Lexeme)
	}
}

// TestStrictMode checks that lenient fallbacks turn fatal.
func TestStrictMode(t *testing.T) {
	if _, err := Parse(nil, `*2`, nil); err != nil {
		t.Errorf("lenient *2 error: %v", err)
	}
	strict := DefaultOptions()
	strict.Strict = true
	_, err := Parse(strict, `*2`, nil)
	pe, ok := err.(*ParseError)
	if !ok || pe.Code != ErrExpressionExpected {
		t.Errorf("strict *2 = %v, want code %d", err, ErrExpressionExpected)
	}
}

// TestEnvironmentIdentifiers checks greedy multi-character identifier
// matching against the environment key set.
func TestEnvironmentIdentifiers(t *testing.T) {
	env := UnitEnv()

	n, err := Parse(nil, `5kg`, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(* 5 kg)` {
		t.Errorf(`5kg with units = %s, want (* 5 kg)`, got)
	}

	n, err = Parse(nil, `5\mu g`, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(* 5 \mu g)` {
		t.Errorf(`5\mu g with units = %s, want (* 5 \mu g)`, got)
	}

	// Without the environment the same letters split apart.
	n, err = Parse(nil, `5kg`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(* 5 k g)` {
		t.Errorf(`5kg without units = %s, want (* 5 k g)`, got)
	}
}

// TestChemistryMode checks ion charges and the molar mass operator, which
// activate when the environment carries the periodic table.
func TestChemistryMode(t *testing.T) {
	env := ChemistryEnv()

	n, err := Parse(nil, `Na^+`, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(^ Na +)` {
		t.Errorf(`Na^+ = %s, want (^ Na +)`, got)
	}

	n, err = Parse(nil, `M(C)`, env)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(M (paren C))` {
		t.Errorf(`M(C) = %s, want (M (paren C))`, got)
	}

	// Outside chemistry mode M is just a variable.
	n, err = Parse(nil, `M(C)`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(* M (paren C))` {
		t.Errorf(`M(C) without env = %s, want (* M (paren C))`, got)
	}
}

// TestUnicodeInput checks the Unicode-to-LaTeX normalization table.
func TestUnicodeInput(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"π", `\pi`},
		{"α + β", `(+ \alpha \beta)`},
		{"3 − 2", `(- 3 2)`}, // U+2212 minus
		{"a ≤ b", `(le a b)`},
		{"2 × 3", `(* 2 3)`},
		{"x ∈ A", `(in x A)`},
		{"45°", `(* 45 \degree)`},
		{"∞", `\infty`},
	}
	for _, tt := range cases {
		n, err := Parse(nil, tt.input, nil)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tt.input, err)
			continue
		}
		if got := FormatNode(n); got != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}
