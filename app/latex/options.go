package latex

// Options configures a parse. DefaultOptions gives '.' as the only decimal
// separator, no thousands separators, no rounding and lenient mode. The zero
// value differs in DecimalPlaces: 0 rounds every decimal literal to an
// integer.
type Options struct {
	// AllowThousandsSeparator enables the implicit ',' thousands separator
	// during number scanning.
	AllowThousandsSeparator bool

	// ThousandsSeparators lists the characters recognized as thousands
	// separators. Setting it implies AllowThousandsSeparator.
	ThousandsSeparators []rune

	// DecimalSeparators lists the characters recognized as decimal
	// separators. Empty means '.'.
	DecimalSeparators []rune

	// DecimalPlaces, when non-negative, rounds numeric literals to this
	// scale. Negative means keep literals as written.
	DecimalPlaces int

	// Strict keeps NUM literals unrounded (DecimalPlaces is ignored; the
	// lexeme is still the canonical form with thousands separators erased)
	// and makes any unknown primary token fatal.
	Strict bool

	// CompareGrouping disables flattening of ADD chains.
	CompareGrouping bool

	// KeepTextWhitespace preserves whitespace inside \text{…}.
	KeepTextWhitespace bool

	// IgnoreText treats \text{…} as whitespace.
	IgnoreText bool
}

// DefaultOptions returns the lenient default configuration.
func DefaultOptions() *Options {
	return &Options{DecimalPlaces: -1}
}

// decimalSeparators returns the effective decimal separator set.
func (o *Options) decimalSeparators() []rune {
	if len(o.DecimalSeparators) == 0 {
		return []rune{'.'}
	}
	return o.DecimalSeparators
}

// thousandsSeparators returns the effective thousands separator set.
func (o *Options) thousandsSeparators() []rune {
	if len(o.ThousandsSeparators) > 0 {
		return o.ThousandsSeparators
	}
	if o.AllowThousandsSeparator {
		return []rune{','}
	}
	return nil
}

// SetDecimalSeparator configures the decimal separator set from strings.
// Each entry must be a single character.
func (o *Options) SetDecimalSeparator(seps ...string) error {
	var rs []rune
	for _, s := range seps {
		r := []rune(s)
		if len(r) != 1 {
			return newError(ErrMultipleDecimal, "", s)
		}
		rs = append(rs, r[0])
	}
	o.DecimalSeparators = rs
	return o.Validate()
}

// SetThousandsSeparator configures the thousands separator set from strings.
// Each entry must be a single character.
func (o *Options) SetThousandsSeparator(seps ...string) error {
	var rs []rune
	for _, s := range seps {
		r := []rune(s)
		if len(r) != 1 {
			return newError(ErrSeparatorConflict, "", s)
		}
		rs = append(rs, r[0])
	}
	o.ThousandsSeparators = rs
	o.AllowThousandsSeparator = true
	return o.Validate()
}

// Validate rejects configurations where a character serves as both thousands
// and decimal separator.
func (o *Options) Validate() error {
	for _, t := range o.thousandsSeparators() {
		for _, d := range o.decimalSeparators() {
			if t == d {
				return newError(ErrSeparatorConflict, "", string(t))
			}
		}
	}
	return nil
}

func containsRune(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
