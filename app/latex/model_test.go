package latex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestModelCreate checks the three Create input forms.
func TestModelCreate(t *testing.T) {
	m := NewModel(nil)

	fromString, err := m.Create(`1 + 2`, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(fromString); got != `(+ 1 2)` {
		t.Errorf("Create(string) = %s, want (+ 1 2)", got)
	}

	fromNode, err := m.Create(fromString, "q1")
	if err != nil {
		t.Fatal(err)
	}
	if fromNode == fromString {
		t.Error("Create(node) returned the same pointer, want a deep copy")
	}
	if fromNode.Location != "q1" {
		t.Errorf("Location = %q, want q1", fromNode.Location)
	}
	fromNode.Args[0].Lexeme = "9"
	if fromString.Args[0].Lexeme != "1" {
		t.Error("mutating the copy leaked into the original")
	}

	fromList, err := m.Create([]interface{}{`1`, `x`}, "")
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(fromList); got != `(, 1 x)` {
		t.Errorf("Create(list) = %s, want (, 1 x)", got)
	}

	if _, err := m.Create(42, ""); err == nil {
		t.Error("Create(int) succeeded, want error")
	}
}

// TestModelEnvStack checks scoped environment pushes.
func TestModelEnvStack(t *testing.T) {
	m := NewModel(nil)

	err := m.WithEnv(UnitEnv(), func() error {
		n, err := m.FromLaTeX(`5kg`)
		if err != nil {
			return err
		}
		if got := FormatNode(n); got != `(* 5 kg)` {
			t.Errorf("inside WithEnv: %s, want (* 5 kg)", got)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	// After the scope exits the units are gone again.
	n, err := m.FromLaTeX(`5kg`)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(* 5 k g)` {
		t.Errorf("after WithEnv: %s, want (* 5 k g)", got)
	}

	// The root environment is never popped.
	m.PopEnv()
	m.PopEnv()
	if len(m.envStack) != 1 {
		t.Errorf("envStack length = %d, want 1", len(m.envStack))
	}
}

// TestModelIntern checks the pool exposed through the facade.
func TestModelIntern(t *testing.T) {
	m := NewModel(nil)
	n, err := m.FromLaTeX(`x^2 + x^2`)
	if err != nil {
		t.Fatal(err)
	}
	id := m.Intern(n)
	got := m.NodeByID(id)
	if diff := cmp.Diff(n, got); diff != "" {
		t.Errorf("NodeByID differs (-want +got):\n%s", diff)
	}
	// x, 2, x^2 and the sum: the repeated x^2 shares its id.
	if m.PoolLen() != 4 {
		t.Errorf("PoolLen = %d, want 4", m.PoolLen())
	}
}

// TestModelInvoke checks plugin dispatch through the registry.
func TestModelInvoke(t *testing.T) {
	RegisterFn("opName", func(m *Model, n *Node, args ...interface{}) (interface{}, error) {
		return n.Op.String(), nil
	})

	m := NewModel(nil)
	n, err := m.FromLaTeX(`1 + 2`)
	if err != nil {
		t.Fatal(err)
	}
	out, err := m.Invoke("opName", n)
	if err != nil {
		t.Fatal(err)
	}
	if out != "+" {
		t.Errorf("Invoke(opName) = %v, want +", out)
	}

	if _, err := m.Invoke("missing", n); err == nil {
		t.Error("Invoke(missing) succeeded, want error")
	}
}

// TestOptionValidation checks separator configuration errors.
func TestOptionValidation(t *testing.T) {
	opts := DefaultOptions()
	if err := opts.SetDecimalSeparator("ab"); err == nil {
		t.Error("SetDecimalSeparator(ab) succeeded, want error")
	} else if err.(*ParseError).Code != ErrMultipleDecimal {
		t.Errorf("code = %d, want %d", err.(*ParseError).Code, ErrMultipleDecimal)
	}

	opts = DefaultOptions()
	if err := opts.SetThousandsSeparator("."); err == nil {
		t.Error("SetThousandsSeparator(.) succeeded, want conflict error")
	} else if err.(*ParseError).Code != ErrSeparatorConflict {
		t.Errorf("code = %d, want %d", err.(*ParseError).Code, ErrSeparatorConflict)
	}

	// A conflicting configuration also fails at parse time.
	opts = DefaultOptions()
	opts.ThousandsSeparators = []rune{','}
	opts.DecimalSeparators = []rune{','}
	if _, err := Parse(opts, `1`, nil); err == nil {
		t.Error("Parse with conflicting separators succeeded, want error")
	}
}

// TestCompareGrouping checks that ADD chains stay nested under the option.
func TestCompareGrouping(t *testing.T) {
	opts := DefaultOptions()
	opts.CompareGrouping = true
	n, err := Parse(opts, `1 + 2 + 3`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got := FormatNode(n); got != `(+ (+ 1 2) 3)` {
		t.Errorf("compareGrouping 1+2+3 = %s, want (+ (+ 1 2) 3)", got)
	}
}
