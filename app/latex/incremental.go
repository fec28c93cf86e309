package latex

import "strings"

// CachedLine holds the cached state for a single line of the notebook.
type CachedLine struct {
	Text    string
	Node    *Node
	Result  string
	Err     error
	IsEmpty bool // line was blank or a comment
}

// ParseResult is the displayable outcome of parsing a single line.
type ParseResult struct {
	Text  string // normalized LaTeX, or the diagnostic message
	IsErr bool
}

// ParseState holds the incremental parse cache. Lines are independent
// expressions, so only lines whose text changed are re-parsed.
type ParseState struct {
	Opts  *Options
	Env   Env
	Lines []CachedLine
}

// ParseAllIncremental parses lines incrementally, reusing cached results
// where the text is unchanged.
func (ps *ParseState) ParseAllIncremental(lines []string) []ParseResult {
	results := make([]ParseResult, len(lines))

	// Full reset when the line count changes
	if len(lines) != len(ps.Lines) {
		ps.Lines = make([]CachedLine, len(lines))
		for i := range ps.Lines {
			ps.Lines[i].Text = "\x00" // force dirty
		}
	}

	opts := ps.Opts
	if opts == nil {
		opts = DefaultOptions()
	}

	for i, line := range lines {
		cached := &ps.Lines[i]
		if cached.Text == line {
			if cached.IsEmpty {
				results[i] = ParseResult{}
			} else if cached.Err != nil {
				results[i] = ParseResult{Text: cached.Err.Error(), IsErr: true}
			} else {
				results[i] = ParseResult{Text: cached.Result}
			}
			continue
		}

		// Dirty — re-parse
		cached.Text = line
		trimmed := strings.TrimSpace(line)
		cached.IsEmpty = trimmed == "" || strings.HasPrefix(trimmed, "%%")
		if cached.IsEmpty {
			cached.Node = nil
			cached.Result = ""
			cached.Err = nil
			results[i] = ParseResult{}
			continue
		}

		node, err := Parse(opts, line, ps.Env)
		if err != nil {
			cached.Node = nil
			cached.Result = ""
			cached.Err = err
			results[i] = ParseResult{Text: err.Error(), IsErr: true}
			continue
		}
		cached.Node = node
		cached.Err = nil
		if node.Op == OP_NONE {
			cached.Result = ""
			results[i] = ParseResult{}
			continue
		}
		cached.Result = ToLaTeX(node)
		results[i] = ParseResult{Text: cached.Result}
	}

	return results
}
