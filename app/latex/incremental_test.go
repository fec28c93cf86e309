package latex

import "testing"

// TestParseAllIncremental checks per-line results and cache reuse.
func TestParseAllIncremental(t *testing.T) {
	ps := &ParseState{}

	lines := []string{`1 + 2`, ``, `%% comment`, `1 +`}
	results := ps.ParseAllIncremental(lines)
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	if results[0].IsErr || results[0].Text != `1 + 2` {
		t.Errorf("line 0 = %+v, want normalized 1 + 2", results[0])
	}
	if results[1].Text != "" || results[2].Text != "" {
		t.Errorf("blank/comment lines = %+v, %+v, want empty", results[1], results[2])
	}
	if !results[3].IsErr {
		t.Errorf("line 3 = %+v, want a diagnostic", results[3])
	}

	// A clean second pass reuses the cache: node pointers are stable.
	node0 := ps.Lines[0].Node
	results = ps.ParseAllIncremental(lines)
	if ps.Lines[0].Node != node0 {
		t.Error("unchanged line was re-parsed")
	}
	if results[0].Text != `1 + 2` {
		t.Errorf("cached line 0 = %+v", results[0])
	}

	// Editing one line re-parses only that line.
	lines = []string{`1 + 2`, `x^2`, `%% comment`, `1 +`}
	results = ps.ParseAllIncremental(lines)
	if ps.Lines[0].Node != node0 {
		t.Error("editing line 1 re-parsed line 0")
	}
	if results[1].IsErr || results[1].Text != `x^{2}` {
		t.Errorf("line 1 = %+v, want x^{2}", results[1])
	}
}

// TestParseAllIncrementalResize checks the full reset on line-count change.
func TestParseAllIncrementalResize(t *testing.T) {
	ps := &ParseState{}
	ps.ParseAllIncremental([]string{`1`, `2`})
	results := ps.ParseAllIncremental([]string{`1`, `2`, `3`})
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, r := range results {
		if r.IsErr || r.Text == "" {
			t.Errorf("line %d = %+v, want a result", i, r)
		}
	}
}
