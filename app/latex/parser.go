package latex

import "strings"

// Parser holds the state for one parse. Each call to NewParser constructs a
// fresh instance with its own cursors and counters, so concurrent parses of
// independent sources are safe.
type Parser struct {
	scan *Scanner
	opts *Options
	env  Env
	src  string

	tk      TokenType
	tkValid bool
	lexeme  string

	// Snapshot of the scanner's NUM bookkeeping for the lookahead token.
	numFormat    string
	numRaw       string
	sepCount     int
	lastSepIndex int

	oneChar bool // scan the next number as a single character

	bracketTokenCount int
	frenchTokenCount  int
	pipeTokenCount    int
	parsingIntegral   bool
	chemistry         bool
}

// NewParser creates a parser over src. env may be nil; its key set drives
// greedy identifier matching and chemistry-mode detection.
func NewParser(opts *Options, src string, env Env) *Parser {
	if opts == nil {
		opts = DefaultOptions()
	}
	scan := newScanner(src, opts, env)
	return &Parser{
		scan:      scan,
		opts:      opts,
		env:       env,
		src:       scan.Source(),
		chemistry: env.isChemistry(),
	}
}

// Parse is the convenience entry point: one shot from source to tree.
func Parse(opts *Options, src string, env Env) (*Node, error) {
	return NewParser(opts, src, env).Expr()
}

// Expr parses the whole source and returns the root node. An empty input is
// not an error: the canonical NONE node is returned.
func (p *Parser) Expr() (root *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			root, err = nil, pe
		}
	}()
	if err := p.opts.Validate(); err != nil {
		return nil, err
	}
	if p.hd() == TOKEN_NONE {
		return noneNode(), nil
	}
	n := p.commaExpr(true)
	if p.hd() != TOKEN_NONE {
		raise(ErrExtraInput, p.src, p.describe())
	}
	return n, nil
}

func noneNode() *Node {
	return &Node{Op: OP_NONE}
}

// hd returns the lookahead token, scanning one if necessary.
func (p *Parser) hd() TokenType {
	if !p.tkValid {
		p.tk = p.scan.Start(p.oneChar)
		p.oneChar = false
		p.lexeme = p.scan.Lexeme()
		if p.tk == TOKEN_NUM {
			p.numFormat = p.scan.numFormat
			p.numRaw = p.scan.RawLexeme()
			p.sepCount = p.scan.sepCount
			p.lastSepIndex = p.scan.lastSepIndex
		}
		p.tkValid = true
	}
	return p.tk
}

// next consumes the lookahead token.
func (p *Parser) next() {
	p.hd()
	p.tkValid = false
}

// describe names the lookahead token for diagnostics.
func (p *Parser) describe() string {
	if p.hd() == TOKEN_NONE {
		return "end of input"
	}
	return p.lexeme
}

func (p *Parser) expect(tk TokenType, what string) {
	if p.hd() != tk {
		raise(ErrSyntax, p.src, what, p.describe())
	}
	p.next()
}

// numberNode materializes the lookahead NUM token.
func (p *Parser) numberNode() *Node {
	n := &Node{
		Op:                 OP_NUM,
		Lexeme:             p.lexeme,
		NumberFormat:       p.numFormat,
		SeparatorCount:     p.sepCount,
		LastSeparatorIndex: p.lastSepIndex,
	}
	p.next()
	if n.Lexeme == lexInfinity {
		return n
	}
	if !p.opts.Strict && p.opts.DecimalPlaces >= 0 && n.NumberFormat == FormatDecimal {
		n.Lexeme = roundDecimal(n.Lexeme, p.opts.DecimalPlaces)
		if !strings.Contains(n.Lexeme, ".") {
			n.NumberFormat = FormatInteger
		}
	}
	return n
}

// roundDecimal rounds a canonical decimal literal half-up to the given
// scale, without going through floating point.
func roundDecimal(lex string, places int) string {
	neg := strings.HasPrefix(lex, "-")
	if neg {
		lex = lex[1:]
	}
	dot := strings.IndexByte(lex, '.')
	if dot < 0 || len(lex)-dot-1 <= places {
		if neg {
			return "-" + lex
		}
		return lex
	}
	digits := []byte(lex[:dot] + lex[dot+1:])
	keep := dot + places
	roundUp := digits[keep] >= '5'
	digits = digits[:keep]
	if roundUp {
		i := len(digits) - 1
		for ; i >= 0; i-- {
			if digits[i] < '9' {
				digits[i]++
				break
			}
			digits[i] = '0'
		}
		if i < 0 {
			digits = append([]byte{'1'}, digits...)
			dot++
		}
	}
	out := string(digits[:dot])
	if places > 0 {
		frac := string(digits[dot:])
		frac = strings.TrimRight(frac, "0")
		if frac != "" {
			out += "." + frac
		}
	}
	if neg && strings.Trim(out, "0.") != "" {
		out = "-" + out
	}
	return out
}

// isListBreak reports whether tk terminates a comma sequence.
func isListBreak(tk TokenType) bool {
	switch tk {
	case TOKEN_NONE, TOKEN_RPAREN, TOKEN_RBRACKET, TOKEN_RBRACE,
		TOKEN_RIGHTBRACESET, TOKEN_GT, TOKEN_RANGLE, TOKEN_RIGHT,
		TOKEN_NEWROW, TOKEN_NEWCOL, TOKEN_END:
		return true
	}
	return false
}

// commaExpr parses a left-to-right sequence of impliesExpr separated by ','
// (and ';' when allowed). A sequence of one is returned unwrapped; an empty
// sequence yields a COMMA of zero args.
func (p *Parser) commaExpr(allowSemicolon bool) *Node {
	// A ']' outside any group it could close opens a French interval.
	frenchOpen := func() bool { return p.hd() == TOKEN_RBRACKET && p.bracketTokenCount == 0 }
	if isListBreak(p.hd()) && !frenchOpen() {
		return &Node{Op: OP_COMMA}
	}
	args := []*Node{p.impliesExpr()}
	for {
		tk := p.hd()
		if tk != TOKEN_COMMA && !(allowSemicolon && tk == TOKEN_SEMICOLON) {
			break
		}
		p.next()
		if isListBreak(p.hd()) && !frenchOpen() {
			break
		}
		args = append(args, p.impliesExpr())
	}
	if len(args) == 1 {
		return args[0]
	}
	return &Node{Op: OP_COMMA, Args: args}
}

func (p *Parser) impliesExpr() *Node {
	n := p.equalExpr()
	for {
		op, ok := impliesOps[p.hd()]
		if !ok {
			return n
		}
		p.next()
		n = binaryNode(op, n, p.equalExpr(), false)
	}
}

// equalExpr parses chains of =, \ne, \approx, \rightarrow. Chains longer
// than one operator are reified as a COMMA of binary pairs with the shared
// middle operand deep-copied, so a=b=c reads as (a=b, b=c).
func (p *Parser) equalExpr() *Node {
	left := p.relationalExpr()
	var pairs []*Node
	for {
		op, ok := equalityOps[p.hd()]
		if !ok {
			break
		}
		p.next()
		right := p.relationalExpr()
		pairs = append(pairs, binaryNode(op, left, right, false))
		left = right.Copy()
	}
	switch len(pairs) {
	case 0:
		return left
	case 1:
		return pairs[0]
	}
	return &Node{Op: OP_COMMA, Args: pairs}
}

// relationalExpr parses ordering and set-relation chains with the same
// pairing rule as equalExpr. A \not prefix rewrites the following operator
// to its n-prefixed variant.
func (p *Parser) relationalExpr() *Node {
	left := p.ratioExpr()
	var pairs []*Node
	for {
		negated := false
		if p.hd() == TOKEN_NOT {
			p.next()
			negated = true
		}
		op, ok := relationalOps[p.hd()]
		if !ok {
			if negated {
				raise(ErrSyntax, p.src, "relational operator", p.describe())
			}
			break
		}
		p.next()
		if negated {
			if nv, ok := notVariants[op]; ok {
				op = nv
			}
		}
		right := p.ratioExpr()
		pairs = append(pairs, binaryNode(op, left, right, false))
		left = right.Copy()
	}
	switch len(pairs) {
	case 0:
		return left
	case 1:
		return pairs[0]
	}
	return &Node{Op: OP_COMMA, Args: pairs}
}

// ratioExpr parses ':' chains into flattened COLON nodes.
func (p *Parser) ratioExpr() *Node {
	n := p.additiveExpr()
	for p.hd() == TOKEN_COLON {
		p.next()
		n = binaryNode(OP_COLON, n, p.additiveExpr(), true)
	}
	return n
}

// setWrap wraps a \{…\}-bracketed operand as a SET before it joins a set
// operation.
func setWrap(n *Node) *Node {
	if n.Lbrk == TOKEN_LEFTBRACESET && n.Op != OP_SET {
		return unaryNode(OP_SET, n)
	}
	return n
}

func (p *Parser) additiveExpr() *Node {
	left := p.multiplicativeExpr(false)
	for {
		var op Op
		switch p.hd() {
		case TOKEN_PLUS:
			op = OP_ADD
		case TOKEN_MINUS:
			op = OP_SUB
		case TOKEN_PM:
			op = OP_PM
		case TOKEN_SETMINUS:
			op = OP_SETMINUS
		case TOKEN_CUP:
			op = OP_CUP
		case TOKEN_CAP:
			op = OP_CAP
		default:
			return left
		}
		p.next()
		right := p.multiplicativeExpr(false)
		if op == OP_CUP || op == OP_CAP || op == OP_SETMINUS {
			left, right = setWrap(left), setWrap(right)
		}
		flatten := false
		if op == OP_ADD {
			flatten = !p.opts.CompareGrouping && !left.IsMixedNumber && !right.IsMixedNumber
		}
		left = binaryNode(op, left, right, flatten)
	}
}

// startsFactor reports whether tk can begin a multiplicative factor. In
// implicit-only mode, function tokens stop the factor loop so that
// \sin 2x \cos x splits at \cos.
func (p *Parser) startsFactor(tk TokenType, implicitOnly bool) bool {
	switch tk {
	case TOKEN_NUM, TOKEN_VAR, TOKEN_TEXT, TOKEN_LPAREN, TOKEN_LBRACE,
		TOKEN_LEFTBRACESET, TOKEN_LEFT, TOKEN_LANGLE,
		TOKEN_FRAC, TOKEN_SQRT, TOKEN_VEC, TOKEN_OVERLINE, TOKEN_DOT,
		TOKEN_MATHBF, TOKEN_OVERSET, TOKEN_UNDERSET, TOKEN_DELTA,
		TOKEN_EXISTS, TOKEN_FORALL, TOKEN_BEGIN, TOKEN_DEGREE:
		return true
	case TOKEN_PIPE, TOKEN_VERTICALBAR:
		return p.pipeTokenCount == 0
	case TOKEN_RBRACKET:
		// French-style interval opener, valid only outside a group that a
		// ']' may close.
		return p.bracketTokenCount == 0 && p.frenchTokenCount == 0
	case TOKEN_LBRACKET:
		// Inside [a,b[ or ]a,b[ a left bracket closes the interval.
		return p.frenchTokenCount == 0
	}
	if _, ok := trigOps[tk]; ok {
		return !implicitOnly
	}
	switch tk {
	case TOKEN_LOG, TOKEN_LN, TOKEN_LG, TOKEN_INT, TOKEN_IINT, TOKEN_IIINT,
		TOKEN_SUM, TOKEN_PROD, TOKEN_BIGCUP, TOKEN_BIGCAP, TOKEN_LIM:
		return !implicitOnly
	}
	return false
}

// lastFactor returns the rightmost argument of a flattened MUL, or the node
// itself.
func lastFactor(n *Node) *Node {
	if n.Op == OP_MUL && len(n.Args) > 0 {
		return n.Args[len(n.Args)-1]
	}
	return n
}

// mulImplicit joins two factors by implicit multiplication.
func (p *Parser) mulImplicit(left, right *Node) *Node {
	if lastFactor(left).Op == OP_NUM && right.Op == OP_NUM &&
		!right.IsRepeating && !right.IsScientific {
		raise(ErrAdjacentNumbers, p.src)
	}
	n := binaryNode(OP_MUL, left, right, true)
	n.IsImplicit = true
	if left.Op == OP_NUM && isPolynomialFactor(right) {
		n.IsPolynomialTerm = true
	}
	return n
}

// isPolynomialFactor reports whether the node is a variable or an integer
// power of one, the shape of a polynomial term's tail.
func isPolynomialFactor(n *Node) bool {
	if n.Op == OP_VAR {
		return true
	}
	return n.Op == OP_POW && len(n.Args) == 2 &&
		n.Args[0].Op == OP_VAR && isInteger(n.Args[1])
}

// isTenPow reports whether the node is 10^k, the right factor of the
// a × 10^k scientific form.
func isTenPow(n *Node) bool {
	return n.Op == OP_POW && len(n.Args) == 2 &&
		n.Args[0].Op == OP_NUM && n.Args[0].Lexeme == "10"
}

// multiplicativeExpr is the disambiguation engine. With no explicit
// operator between factors it chooses among mixed numbers, repeating
// decimals, E-notation, scientific form, prime attachment, molar mass,
// degree attachment and generic implicit multiplication.
func (p *Parser) multiplicativeExpr(implicitOnly bool) *Node {
	left := p.fractionExpr()
	for {
		tk := p.hd()
		switch tk {
		case TOKEN_STAR, TOKEN_CDOT, TOKEN_TIMES:
			if implicitOnly {
				return left
			}
			isTimes := tk == TOKEN_TIMES
			p.next()
			right := p.fractionExpr()
			if isTimes && left.Op == OP_NUM && isTenPow(right) {
				n := binaryNode(OP_MUL, left, right, false)
				n.IsScientific = true
				left = n
				continue
			}
			left = binaryNode(OP_MUL, left, right, true)
			continue
		case TOKEN_DIV:
			if implicitOnly {
				return left
			}
			p.next()
			left = binaryNode(OP_FRAC, left, p.fractionExpr(), false)
			continue
		}

		if !p.startsFactor(tk, implicitOnly) {
			return left
		}

		switch {
		case tk == TOKEN_FRAC && isInteger(left):
			// Mixed number: integer followed by a proper fraction.
			f := p.fractionExpr()
			if isProperFraction(f) {
				n := binaryNode(OP_ADD, left, f, false)
				n.IsMixedNumber = true
				left = n
			} else {
				left = p.mulImplicit(left, f)
			}

		case tk == TOKEN_OVERLINE && left.Op == OP_NUM && left.Lexeme != lexInfinity:
			// Repeating decimal: 0.\overline{3}.
			p.next()
			digits := p.repeatDigits("\\overline")
			left = p.repeatingNode(left, digits)

		case tk == TOKEN_DOT && left.Op == OP_NUM && left.NumberFormat == FormatDecimal:
			// Dot notation for a repeating tail: 0.\dot{3}4\dot{5}.
			dotted := p.dottedNumberExpr()
			left = p.repeatingNode(left, dotted.Args[0])

		case (tk == TOKEN_TEXT || tk == TOKEN_VAR) && left.Op == OP_NUM &&
			(p.lexeme == "e" || p.lexeme == "E"):
			n, ok := p.eNotation(left)
			if !ok {
				left = p.mulImplicit(left, p.fractionExpr())
			} else {
				left = n
			}

		case tk == TOKEN_VAR && strings.HasPrefix(p.lexeme, "'") && left.Op == OP_VAR:
			// Prime attachment: x' folds into a POW.
			prime := varNode(p.lexeme)
			p.next()
			left = binaryNode(OP_POW, left, prime, false)

		case tk == TOKEN_DEGREE:
			p.next()
			deg := varNode("\\degree")
			if left.Op == OP_NUM && strings.HasPrefix(left.Lexeme, "-") {
				// A negative scalar re-enters as -(n·°).
				pos := left.Copy()
				pos.Lexeme = pos.Lexeme[1:]
				left = unaryNode(OP_SUB, p.mulImplicit(pos, deg))
			} else {
				n := binaryNode(OP_MUL, left, deg, true)
				n.IsImplicit = true
				left = n
			}

		case p.chemistry && tk == TOKEN_LPAREN && left.Op == OP_VAR && left.Lexeme == "M":
			// Molar mass operator M(…).
			left = unaryNode(OP_MOLARMASS, p.primaryExpr())

		default:
			left = p.mulImplicit(left, p.fractionExpr())
		}
	}
}

// repeatingNode builds the ADD shape of a repeating decimal, flagging the
// sum and both children.
func (p *Parser) repeatingNode(whole, digits *Node) *Node {
	n := binaryNode(OP_ADD, whole, digits, false)
	n.IsRepeating = true
	whole.IsRepeating = true
	digits.IsRepeating = true
	return n
}

// repeatDigits consumes the {digits} group of a repeating-decimal marker.
func (p *Parser) repeatDigits(cmd string) *Node {
	p.expect(TOKEN_LBRACE, "{")
	if p.hd() != TOKEN_NUM {
		raise(ErrMissingArgument, p.src, cmd)
	}
	n := p.numberNode()
	p.expect(TOKEN_RBRACE, "}")
	return n
}

// eNotation recognizes NUM (e|E) signed-NUM, rewriting it as n × 10^k. On a
// false start the scanner rewinds and the caller falls back to implicit
// multiplication.
func (p *Parser) eNotation(left *Node) (*Node, bool) {
	mark := p.scan.mark()
	markLexeme := p.lexeme
	markTk := p.tk
	p.next()

	sign := ""
	if p.hd() == TOKEN_MINUS {
		sign = "-"
		p.next()
	} else if p.hd() == TOKEN_PLUS {
		p.next()
	}
	if p.hd() != TOKEN_NUM || p.numFormat != FormatInteger || p.lexeme == lexInfinity {
		p.scan.resetTo(mark)
		p.tk, p.lexeme, p.tkValid = markTk, markLexeme, true
		return nil, false
	}
	exp := p.numberNode()
	exp.Lexeme = sign + exp.Lexeme
	ten := &Node{Op: OP_NUM, Lexeme: "10", NumberFormat: FormatInteger}
	pow := binaryNode(OP_POW, ten, exp, false)
	n := binaryNode(OP_MUL, left, pow, false)
	n.IsScientific = true
	return n, true
}

// fractionExpr folds '/'-written fractions.
func (p *Parser) fractionExpr() *Node {
	left := p.subscriptExpr()
	for p.hd() == TOKEN_SLASH {
		p.next()
		right := p.subscriptExpr()
		n := binaryNode(OP_FRAC, left, right, false)
		n.IsSlash = true
		n.IsFraction = isSimpleFraction(n)
		left = n
	}
	return left
}

// subscriptExpr folds '_'-chains and interleaved '^' into the canonical
// SUBSCRIPT-inside-POW shape, so x^2_1 and x_1^2 agree.
func (p *Parser) subscriptExpr() *Node {
	left := p.unaryExpr()
	for p.hd() == TOKEN_UNDERSCORE {
		p.next()
		p.oneChar = true
		if p.hd() == TOKEN_UNDERSCORE || p.hd() == TOKEN_NONE {
			raise(ErrMisplacedSubscript, p.src)
		}
		sub := p.scopedOperand()
		if left.Op == OP_POW {
			left.Args[0] = binaryNode(OP_SUBSCRIPT, left.Args[0], sub, false)
		} else {
			left = binaryNode(OP_SUBSCRIPT, left, sub, false)
		}
		for p.hd() == TOKEN_CARET {
			p.next()
			left = binaryNode(OP_POW, left, p.scopedOperand(), false)
		}
	}
	return left
}

// scopedOperand parses the single-character-scope operand of ^ and _: a
// brace group, a signed operand, or one token's worth of expression. A bare
// operand leaves any following ^ or _ to the caller.
func (p *Parser) scopedOperand() *Node {
	if !p.tkValid {
		p.oneChar = true
	}
	switch p.hd() {
	case TOKEN_LBRACE:
		return p.braceExpr(TOKEN_LBRACE, TOKEN_RBRACE)
	case TOKEN_MINUS, TOKEN_PLUS, TOKEN_PM, TOKEN_NOT, TOKEN_UNDERSCORE, TOKEN_CARET:
		return p.unaryExpr()
	}
	return p.primaryExpr()
}

// negate folds a minus sign into a numeric literal, or wraps anything else
// in a unary SUB.
func negate(n *Node) *Node {
	if n.Op == OP_NUM && n.Lexeme != lexInfinity && !strings.HasPrefix(n.Lexeme, "-") {
		c := n.Copy()
		c.Lexeme = "-" + c.Lexeme
		return c
	}
	return unaryNode(OP_SUB, n)
}

func (p *Parser) unaryExpr() *Node {
	switch p.hd() {
	case TOKEN_MINUS:
		p.next()
		return negate(p.unaryExpr())
	case TOKEN_PLUS:
		p.next()
		return unaryNode(OP_ADD, p.unaryExpr())
	case TOKEN_PM:
		p.next()
		return unaryNode(OP_PM, p.multiplicativeExpr(false))
	case TOKEN_NOT:
		p.next()
		return unaryNode(OP_NOT, p.unaryExpr())
	case TOKEN_UNDERSCORE, TOKEN_CARET:
		return p.scriptIntroducer()
	}
	return p.postfixExpr()
}

// scriptIntroducer parses standalone _ and ^ prefixes such as the electron
// configuration shorthand _+^-: scripts with no base.
func (p *Parser) scriptIntroducer() *Node {
	n := noneNode()
	for {
		var op Op
		switch p.hd() {
		case TOKEN_UNDERSCORE:
			op = OP_SUBSCRIPT
		case TOKEN_CARET:
			op = OP_POW
		default:
			return n
		}
		p.next()
		p.oneChar = true
		var operand *Node
		if p.hd() == TOKEN_PLUS || p.hd() == TOKEN_MINUS {
			operand = varNode(p.lexeme)
			p.next()
		} else {
			operand = p.scopedOperand()
		}
		n = binaryNode(op, n, operand, false)
	}
}

func (p *Parser) postfixExpr() *Node {
	n := p.exponentialExpr()
	for {
		switch p.hd() {
		case TOKEN_PERCENTSIGN:
			p.next()
			n = unaryNode(OP_PERCENT, n)
		case TOKEN_BANG:
			p.next()
			n = unaryNode(OP_FACT, n)
		case TOKEN_PIPE:
			if p.pipeTokenCount > 0 {
				return n
			}
			mark := p.scan.mark()
			p.next()
			if p.hd() == TOKEN_UNDERSCORE {
				p.next()
				n = binaryNode(OP_PIPE, n, p.scopedOperand(), false)
				continue
			}
			p.scan.resetTo(mark)
			p.tk, p.lexeme, p.tkValid = TOKEN_PIPE, "|", true
			return n
		case TOKEN_PLUS, TOKEN_MINUS:
			// Ion suffix before a closing brace in chemistry mode.
			if !p.chemistry {
				return n
			}
			sign := p.lexeme
			mark := p.scan.mark()
			markTk := p.tk
			p.next()
			if p.hd() == TOKEN_RBRACE || p.hd() == TOKEN_RIGHTBRACESET {
				n = binaryNode(OP_POW, n, varNode(sign), false)
				continue
			}
			p.scan.resetTo(mark)
			p.tk, p.lexeme, p.tkValid = markTk, sign, true
			return n
		default:
			return n
		}
	}
}

// exponentialExpr collects a^b^c right-associatively and recognizes the
// \circ superscript as degree units and bare +/- ion-charge exponents.
func (p *Parser) exponentialExpr() *Node {
	n := p.primaryExpr()
	var exps []*Node
	for p.hd() == TOKEN_CARET {
		p.next()
		p.oneChar = true
		if p.hd() == TOKEN_PLUS || p.hd() == TOKEN_MINUS {
			// The sign is the whole exponent for ion charges; otherwise it
			// must begin a signed operand.
			sign := p.lexeme
			mark := p.scan.mark()
			markTk := p.tk
			p.next()
			if !p.startsFactor(p.hd(), true) {
				exps = append(exps, varNode(sign))
				continue
			}
			p.scan.resetTo(mark)
			p.tk, p.lexeme, p.tkValid = markTk, sign, true
		}
		exp := p.scopedOperand()
		if exp.Op == OP_VAR && exp.Lexeme == "\\circ" {
			// Degree units: 45^\circ, optionally 45^\circ C.
			deg := varNode("\\degree")
			if p.hd() == TOKEN_TEXT || p.hd() == TOKEN_VAR {
				if p.lexeme == "K" || p.lexeme == "C" || p.lexeme == "F" {
					deg = varNode("\\degree " + p.lexeme)
					p.next()
				}
			}
			m := binaryNode(OP_MUL, n, deg, false)
			m.IsImplicit = true
			n = m
			continue
		}
		exps = append(exps, exp)
	}
	if len(exps) > 0 {
		exp := exps[len(exps)-1]
		for i := len(exps) - 2; i >= 0; i-- {
			exp = binaryNode(OP_POW, exps[i], exp, false)
		}
		n = binaryNode(OP_POW, n, exp, false)
	}
	return n
}

func (p *Parser) primaryExpr() *Node {
	tk := p.hd()
	if _, ok := trigOps[tk]; ok {
		return p.trigExpr()
	}
	switch tk {
	case TOKEN_NUM:
		return p.numberNode()
	case TOKEN_VAR:
		name := p.lexeme
		p.next()
		return varNode(name)
	case TOKEN_TEXT:
		s := p.lexeme
		p.next()
		return textNode(s)
	case TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_RBRACKET, TOKEN_LEFT, TOKEN_LANGLE:
		return p.parenExpr(tk)
	case TOKEN_LBRACE:
		return p.braceExpr(TOKEN_LBRACE, TOKEN_RBRACE)
	case TOKEN_LEFTBRACESET:
		return p.braceExpr(TOKEN_LEFTBRACESET, TOKEN_RIGHTBRACESET)
	case TOKEN_PIPE, TOKEN_VERTICALBAR:
		return p.absExpr(tk, false)
	case TOKEN_LOG, TOKEN_LN, TOKEN_LG:
		return p.logExpr(tk)
	case TOKEN_INT:
		return p.integralExpr(1)
	case TOKEN_IINT:
		return p.integralExpr(2)
	case TOKEN_IIINT:
		return p.integralExpr(3)
	case TOKEN_SUM:
		return p.boundedExpr(OP_SUM)
	case TOKEN_PROD:
		return p.boundedExpr(OP_PROD)
	case TOKEN_BIGCUP:
		return p.boundedExpr(OP_BIGCUP)
	case TOKEN_BIGCAP:
		return p.boundedExpr(OP_BIGCAP)
	case TOKEN_LIM:
		return p.limitExpr()
	case TOKEN_FRAC:
		return p.fracExpr()
	case TOKEN_SQRT:
		return p.sqrtExpr()
	case TOKEN_VEC:
		p.next()
		return unaryNode(OP_VEC, p.commandArg("\\vec"))
	case TOKEN_OVERLINE:
		p.next()
		return unaryNode(OP_OVERLINE, p.commandArg("\\overline"))
	case TOKEN_MATHBF:
		p.next()
		return unaryNode(OP_MATHBF, p.commandArg("\\mathbf"))
	case TOKEN_DOT:
		return p.dottedNumberExpr()
	case TOKEN_OVERSET, TOKEN_UNDERSET:
		return p.oversetExpr()
	case TOKEN_DELTA:
		p.next()
		if p.hd() == TOKEN_VAR {
			name := p.lexeme
			p.next()
			return varNode("Delta_" + name)
		}
		return varNode("Delta")
	case TOKEN_EXISTS:
		p.next()
		return unaryNode(OP_EXISTS, p.equalExpr())
	case TOKEN_FORALL:
		p.next()
		return unaryNode(OP_FORALL, p.commaExpr(false))
	case TOKEN_BEGIN:
		return p.matrixExpr()
	case TOKEN_CIRC:
		p.next()
		return varNode("\\circ")
	case TOKEN_NONE:
		raise(ErrExpressionExpected, p.src, "end of input")
	}
	if p.opts.Strict {
		raise(ErrExpressionExpected, p.src, p.describe())
	}
	p.next()
	return noneNode()
}

// commandArg parses the argument of a one-argument command: a brace group,
// or a single token's worth of expression.
func (p *Parser) commandArg(cmd string) *Node {
	if p.hd() == TOKEN_NONE {
		raise(ErrMissingArgument, p.src, cmd)
	}
	if p.hd() == TOKEN_LBRACE {
		return p.braceExpr(TOKEN_LBRACE, TOKEN_RBRACE)
	}
	if !p.tkValid {
		p.oneChar = true
	}
	return p.primaryExpr()
}

// braceExpr parses { … } and \{ … \} groups. The content is returned with
// the bracket pair recorded; empty braces yield a COMMA of zero args.
func (p *Parser) braceExpr(open, close TokenType) *Node {
	p.expect(open, bracketChars[open])
	if p.hd() == close {
		p.next()
		return &Node{Op: OP_COMMA, Lbrk: open, Rbrk: close}
	}
	body := p.commaExpr(true)
	rbrk := close
	if p.hd() == TOKEN_RIGHT {
		// \left\{ … \right. — any delimiter after \right is accepted.
		p.next()
		rbrk = p.hd()
		p.next()
	} else {
		p.expect(close, bracketChars[close])
	}
	if body.Lbrk == TOKEN_NONE && body.Rbrk == TOKEN_NONE {
		body.Lbrk = open
		body.Rbrk = rbrk
	}
	return body
}

// isCloser reports whether tk is one of the tokens parenExpr accepts as a
// group closer.
func isCloser(tk TokenType) bool {
	switch tk {
	case TOKEN_RPAREN, TOKEN_RBRACKET, TOKEN_LBRACKET, TOKEN_PERIOD,
		TOKEN_PIPE, TOKEN_VERTICALBAR, TOKEN_RANGLE, TOKEN_RBRACE,
		TOKEN_RIGHTBRACESET:
		return true
	}
	return false
}

// parenExpr parses every \left/\right and fixed bracket group, classifying
// the result as PAREN, BRACKET, one of the four intervals, EVALAT or
// ANGLEBRACKET. French-style interval delimiters normalize: a right bracket
// as opener reads as '(', a left bracket as closer reads as ')'.
func (p *Parser) parenExpr(tk TokenType) *Node {
	leftCmd := false
	open := tk
	if tk == TOKEN_LEFT {
		p.next()
		leftCmd = true
		open = p.hd()
		switch open {
		case TOKEN_LBRACE:
			return p.braceExpr(TOKEN_LBRACE, TOKEN_RBRACE)
		case TOKEN_LEFTBRACESET:
			return p.braceExpr(TOKEN_LEFTBRACESET, TOKEN_RIGHTBRACESET)
		case TOKEN_PIPE, TOKEN_VERTICALBAR:
			return p.absExpr(open, true)
		case TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_RBRACKET, TOKEN_PERIOD, TOKEN_LANGLE:
			// fall through to the group parse below
		default:
			raise(ErrInvalidGroupingBracket, p.src, p.describe())
		}
	}
	p.next() // consume the opening delimiter

	// bracketTokenCount counts open groups that a ']' may close;
	// frenchTokenCount counts those that a '[' may close.
	rClosable := open == TOKEN_LPAREN || open == TOKEN_LBRACKET || open == TOKEN_RBRACKET
	lClosable := open == TOKEN_LBRACKET || open == TOKEN_RBRACKET
	if rClosable {
		p.bracketTokenCount++
	}
	if lClosable {
		p.frenchTokenCount++
	}
	body := p.commaExpr(true)
	if rClosable {
		p.bracketTokenCount--
	}
	if lClosable {
		p.frenchTokenCount--
	}

	if leftCmd {
		p.expect(TOKEN_RIGHT, "\\right")
	}
	closer := p.hd()
	if !isCloser(closer) {
		raise(ErrSyntax, p.src, "closing bracket", p.describe())
	}
	p.next()

	// \left. … \right| evaluates an expression at a boundary.
	if open == TOKEN_PERIOD && (closer == TOKEN_PIPE || closer == TOKEN_VERTICALBAR) {
		n := unaryNode(OP_EVALAT, body)
		n.Lbrk, n.Rbrk = open, closer
		return n
	}
	if open == TOKEN_LANGLE {
		n := unaryNode(OP_ANGLEBRACKET, body)
		n.Lbrk, n.Rbrk = open, closer
		return n
	}

	// Normalize French-style delimiters.
	effOpen, effClose := open, closer
	if effOpen == TOKEN_RBRACKET {
		effOpen = TOKEN_LPAREN
	}
	if effClose == TOKEN_LBRACKET {
		effClose = TOKEN_RPAREN
	}

	if body.Op == OP_COMMA && len(body.Args) == 2 {
		var op Op
		switch {
		case effOpen == TOKEN_LPAREN && effClose == TOKEN_RPAREN:
			op = OP_INTERVALOPEN
		case effOpen == TOKEN_LBRACKET && effClose == TOKEN_RBRACKET:
			op = OP_INTERVAL
		case effOpen == TOKEN_LPAREN && effClose == TOKEN_RBRACKET:
			op = OP_INTERVALLEFTOPEN
		case effOpen == TOKEN_LBRACKET && effClose == TOKEN_RPAREN:
			op = OP_INTERVALRIGHTOPEN
		}
		if op != OP_NONE {
			n := unaryNode(op, body)
			n.Lbrk, n.Rbrk = effOpen, effClose
			return n
		}
	}

	op := OP_PAREN
	if effOpen == TOKEN_LBRACKET {
		op = OP_BRACKET
	}
	n := unaryNode(op, body)
	n.Lbrk, n.Rbrk = effOpen, effClose
	return n
}

// absExpr parses | … | and \left| … \right|. The pipe counter makes inner
// expressions stop at a bare | so nested pipes pair correctly.
func (p *Parser) absExpr(open TokenType, leftCmd bool) *Node {
	p.next() // consume the opening pipe
	p.pipeTokenCount++
	body := p.additiveExpr()
	p.pipeTokenCount--
	if leftCmd {
		p.expect(TOKEN_RIGHT, "\\right")
	}
	closer := p.hd()
	if closer != TOKEN_PIPE && closer != TOKEN_VERTICALBAR {
		raise(ErrSyntax, p.src, bracketChars[open], p.describe())
	}
	p.next()
	n := unaryNode(OP_ABS, body)
	n.Lbrk, n.Rbrk = open, closer
	return n
}

// trigExpr parses the trig/hyperbolic family: chained exponents first, then
// the argument. A lone ^{-1} exponent selects the inverse function and is
// discarded.
func (p *Parser) trigExpr() *Node {
	op := trigOps[p.hd()]
	p.next()
	var exps []*Node
	for p.hd() == TOKEN_CARET {
		p.next()
		exps = append(exps, p.scopedOperand())
	}
	if len(exps) == 1 && isNegOne(exps[0]) {
		if inv, ok := inverseOps[op]; ok {
			op = inv
			exps = nil
		}
	}
	arg := p.functionArg()
	n := unaryNode(op, arg)
	n = p.extractTrailingDX(n)
	if len(exps) > 0 {
		exp := exps[len(exps)-1]
		for i := len(exps) - 2; i >= 0; i-- {
			exp = binaryNode(OP_POW, exps[i], exp, false)
		}
		n = binaryNode(OP_POW, n, exp, false)
	}
	return n
}

func isNegOne(n *Node) bool {
	if n.Op == OP_NUM && n.Lexeme == "-1" {
		return true
	}
	return n.Op == OP_SUB && len(n.Args) == 1 &&
		n.Args[0].Op == OP_NUM && n.Args[0].Lexeme == "1"
}

// functionArg parses a function's argument: the next bracketed group if one
// follows, otherwise an implicit-only multiplicative expression so that
// \sin 2x binds 2x tightly.
func (p *Parser) functionArg() *Node {
	switch p.hd() {
	case TOKEN_LPAREN, TOKEN_LBRACKET, TOKEN_LEFT, TOKEN_LBRACE, TOKEN_PIPE, TOKEN_VERTICALBAR:
		return p.primaryExpr()
	}
	return p.multiplicativeExpr(true)
}

// extractTrailingDX pulls a trailing d-variable pair out of a function
// argument inside an integral and re-attaches it after the function result,
// so \int \sin x dx reads as MUL(SIN(x), d, x).
func (p *Parser) extractTrailingDX(n *Node) *Node {
	if !p.parsingIntegral || len(n.Args) == 0 {
		return n
	}
	arg := n.Args[len(n.Args)-1]
	rest, v, ok := stripDX(arg)
	if !ok {
		return n
	}
	n.Args[len(n.Args)-1] = rest
	m := binaryNode(OP_MUL, n, varNode("d"), true)
	m = binaryNode(OP_MUL, m, v, true)
	m.IsImplicit = true
	return m
}

// logExpr parses \log_b x, \ln x and \lg x. The subscript base is optional
// and defaults to 10; \ln uses e.
func (p *Parser) logExpr(tk TokenType) *Node {
	p.next()
	var base *Node
	if tk == TOKEN_LOG && p.hd() == TOKEN_UNDERSCORE {
		p.next()
		base = p.scopedOperand()
	}
	if base == nil {
		if tk == TOKEN_LN {
			base = varNode("e")
		} else {
			base = &Node{Op: OP_NUM, Lexeme: "10", NumberFormat: FormatInteger}
		}
	}
	arg := p.functionArg()
	n := binaryNode(OP_LOG, base, arg, false)
	return p.extractTrailingDX(n)
}

// bounds parses the optional _lo and ^hi scripts of big operators, in
// either order.
func (p *Parser) bounds() (lo, hi *Node) {
	for {
		switch p.hd() {
		case TOKEN_UNDERSCORE:
			if lo != nil {
				return lo, hi
			}
			p.next()
			lo = p.scopedOperand()
		case TOKEN_CARET:
			if hi != nil {
				return lo, hi
			}
			p.next()
			hi = p.scopedOperand()
		default:
			return lo, hi
		}
	}
}

// integralExpr parses \int, \iint and \iiint. The integrand must end in a
// d-variable pair per nesting level; the variables are extracted and the
// levels nest inner-first. The integral-context flag is restored on every
// exit path.
func (p *Parser) integralExpr(depth int) *Node {
	p.next()
	lo, hi := p.bounds()

	saved := p.parsingIntegral
	p.parsingIntegral = true
	defer func() { p.parsingIntegral = saved }()

	body := p.additiveExpr()

	vars := make([]*Node, 0, depth)
	for i := 0; i < depth; i++ {
		rest, v, ok := stripDX(body)
		if !ok {
			raise(ErrMissingIntegrationVar, p.src)
		}
		body = rest
		vars = append(vars, v)
	}

	// vars holds the outermost variable first (it was stripped from the
	// right edge); build the nest inner-first.
	n := body
	for i := depth - 1; i >= 0; i-- {
		if i == 0 && lo != nil && hi != nil {
			n = newNode(OP_INTEGRAL, lo, hi, n, vars[i])
		} else {
			n = newNode(OP_INTEGRAL, n, vars[i])
		}
	}
	return n
}

// stripDX removes exactly the trailing d-variable pair from an integrand,
// walking the right spine through MUL, FRAC numerators and function
// arguments. The second result is the integration variable.
func stripDX(n *Node) (*Node, *Node, bool) {
	if n == nil {
		return nil, nil, false
	}
	switch n.Op {
	case OP_MUL:
		k := len(n.Args)
		if k >= 2 && isDVar(n.Args[k-2]) && n.Args[k-1].Op == OP_VAR {
			v := n.Args[k-1]
			rest := n.Args[:k-2]
			switch len(rest) {
			case 0:
				return &Node{Op: OP_NUM, Lexeme: "1", NumberFormat: FormatInteger}, v, true
			case 1:
				return rest[0], v, true
			}
			c := n.Copy()
			c.Args = c.Args[:k-2]
			return c, v, true
		}
		// Recurse into the rightmost factor.
		if rest, v, ok := stripDX(n.Args[k-1]); ok {
			c := n.Copy()
			c.Args[k-1] = rest
			return c, v, true
		}
	case OP_FRAC:
		if len(n.Args) == 2 {
			if rest, v, ok := stripDX(n.Args[0]); ok {
				c := n.Copy()
				c.Args[0] = rest
				return c, v, true
			}
		}
	default:
		if _, ok := trigOps[tokenForOp(n.Op)]; ok && len(n.Args) > 0 {
			if rest, v, ok := stripDX(n.Args[len(n.Args)-1]); ok {
				c := n.Copy()
				c.Args[len(c.Args)-1] = rest
				return c, v, true
			}
		}
	}
	return nil, nil, false
}

// hasDX reports whether the integrand's right spine ends in a d-variable
// pair.
func hasDX(n *Node) bool {
	_, _, ok := stripDX(n)
	return ok
}

func isDVar(n *Node) bool {
	return n.Op == OP_VAR && n.Lexeme == "d"
}

// tokenForOp inverts trigOps for stripDX's function-argument walk.
func tokenForOp(op Op) TokenType {
	for tk, o := range trigOps {
		if o == op {
			return tk
		}
	}
	return TOKEN_NONE
}

// boundedExpr parses \sum, \prod, \bigcup and \bigcap: optional bounds,
// then a multiplicative expression.
func (p *Parser) boundedExpr(op Op) *Node {
	p.next()
	lo, hi := p.bounds()
	body := p.multiplicativeExpr(false)
	switch {
	case lo != nil && hi != nil:
		return newNode(op, lo, hi, body)
	case lo != nil:
		return newNode(op, lo, body)
	}
	return unaryNode(op, body)
}

// limitExpr parses \lim with an optional subscript such as {x \to 0}.
func (p *Parser) limitExpr() *Node {
	p.next()
	var sub *Node
	if p.hd() == TOKEN_UNDERSCORE {
		p.next()
		sub = p.scopedOperand()
	}
	body := p.multiplicativeExpr(false)
	if sub == nil {
		return unaryNode(OP_LIM, body)
	}
	return newNode(OP_LIM, sub, body)
}

// fracExpr parses \frac{num}{den}, recognizing the derivative shapes
// \frac{dy}{dx} and \frac{d}{dx}.
func (p *Parser) fracExpr() *Node {
	p.next()
	num := p.commandArg("\\frac")
	den := p.commandArg("\\frac")

	if dv, ok := derivVar(den); ok {
		// \frac{dy}{dx} differentiates y; \frac{d}{dx} differentiates the
		// factor that follows.
		if isDVar(num) {
			var operand *Node
			if p.startsFactor(p.hd(), true) {
				operand = p.multiplicativeExpr(true)
			} else {
				operand = noneNode()
			}
			return newNode(OP_DERIV, operand, dv)
		}
		if num.Op == OP_MUL && len(num.Args) == 2 && isDVar(num.Args[0]) {
			return newNode(OP_DERIV, num.Args[1], dv)
		}
	}

	n := binaryNode(OP_FRAC, num, den, false)
	n.IsFraction = true
	return n
}

// derivVar matches a denominator of the form d·v.
func derivVar(den *Node) (*Node, bool) {
	if den.Op == OP_MUL && len(den.Args) == 2 && isDVar(den.Args[0]) && den.Args[1].Op == OP_VAR {
		return den.Args[1], true
	}
	return nil, false
}

// sqrtExpr parses \sqrt{x} and \sqrt[n]{x}; an indexed root reads as the
// reciprocal power.
func (p *Parser) sqrtExpr() *Node {
	p.next()
	if p.hd() == TOKEN_LBRACKET {
		p.next()
		p.bracketTokenCount++
		idx := p.additiveExpr()
		p.bracketTokenCount--
		p.expect(TOKEN_RBRACKET, "]")
		arg := p.commandArg("\\sqrt")
		one := &Node{Op: OP_NUM, Lexeme: "1", NumberFormat: FormatInteger}
		return binaryNode(OP_POW, arg, binaryNode(OP_FRAC, one, idx, false), false)
	}
	return unaryNode(OP_SQRT, p.commandArg("\\sqrt"))
}

// dottedNumberExpr parses dot notation for repeating digits:
// \dot{3}, or \dot{3}45\dot{6} with the repeated block between the dots.
// The digits concatenate under an OVERLINE.
func (p *Parser) dottedNumberExpr() *Node {
	var digits strings.Builder
	p.next() // the first \dot
	first := p.repeatDigits("\\dot")
	digits.WriteString(first.Lexeme)
	for p.hd() == TOKEN_NUM {
		digits.WriteString(p.lexeme)
		p.next()
	}
	if p.hd() == TOKEN_DOT {
		p.next()
		last := p.repeatDigits("\\dot")
		digits.WriteString(last.Lexeme)
	}
	num := &Node{Op: OP_NUM, Lexeme: digits.String(), NumberFormat: FormatInteger}
	return unaryNode(OP_OVERLINE, num)
}

// oversetExpr parses \overset{anno}{sym} and \underset, pushing the
// annotation into the underlying symbol's argument list.
func (p *Parser) oversetExpr() *Node {
	cmd := p.lexeme
	p.next()
	anno := p.commandArg(cmd)
	sym := p.commandArg(cmd)
	sym.Args = append(sym.Args, anno)
	return sym
}

// matrixExpr parses the \begin{matrix} … \end{matrix} and array families.
// Rows separate on \\, columns on &.
func (p *Parser) matrixExpr() *Node {
	name := p.lexeme
	p.next()
	var rows []*Node
	for {
		var cols []*Node
		for {
			cell := p.commaExpr(true)
			cols = append(cols, unaryNode(OP_COL, cell))
			if p.hd() != TOKEN_NEWCOL {
				break
			}
			p.next()
		}
		rows = append(rows, &Node{Op: OP_ROW, Args: cols})
		if p.hd() == TOKEN_NEWROW {
			p.next()
			continue
		}
		break
	}
	if p.hd() != TOKEN_END {
		raise(ErrSyntax, p.src, "\\end{"+name+"}", p.describe())
	}
	if p.lexeme != name {
		raise(ErrSyntax, p.src, "\\end{"+name+"}", "\\end{"+p.lexeme+"}")
	}
	p.next()
	return &Node{Op: OP_MATRIX, Args: rows}
}
