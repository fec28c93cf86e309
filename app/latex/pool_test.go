package latex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestInternSharing checks that structurally identical subtrees share one
// id and distinct ones do not.
func TestInternSharing(t *testing.T) {
	pool := NewPool()

	a, err := Parse(nil, `1 + 2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse(nil, `1 + 2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	c, err := Parse(nil, `1 + 3`, nil)
	if err != nil {
		t.Fatal(err)
	}

	idA := pool.Intern(a)
	idB := pool.Intern(b)
	idC := pool.Intern(c)

	if idA != idB {
		t.Errorf("Intern(1+2) twice = %d, %d, want shared id", idA, idB)
	}
	if idA == idC {
		t.Errorf("Intern(1+2) and Intern(1+3) share id %d", idA)
	}
	if idA == 0 {
		t.Error("Intern returned the reserved id 0")
	}

	// The shared leaves 1 and 2 intern once each: 1, 2, (1+2), 3, (1+3).
	if pool.Len() != 5 {
		t.Errorf("pool.Len() = %d, want 5", pool.Len())
	}
}

// TestInternRoundTrip checks node(intern(x)) structurally equals x.
func TestInternRoundTrip(t *testing.T) {
	sources := []string{
		`1 + 2`,
		`\frac{1}{2}`,
		`3\frac{1}{2}`,
		`\int_0^1 x\,dx`,
		`[1,2)`,
		`a = b = c`,
		`\sin^{-1}(x)`,
		`\begin{matrix}1&2\\3&4\end{matrix}`,
	}

	for _, src := range sources {
		pool := NewPool()
		want, err := Parse(nil, src, nil)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", src, err)
		}
		id := pool.Intern(want)
		got := pool.Node(id)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("round trip of %q differs (-want +got):\n%s", src, diff)
		}
	}
}

// TestInternBracketKeys checks that bracket style participates in the
// structural key, so |x| and \|x\| do not collide.
func TestInternBracketKeys(t *testing.T) {
	pool := NewPool()

	abs, err := Parse(nil, `|x|`, nil)
	if err != nil {
		t.Fatal(err)
	}
	norm, err := Parse(nil, `\|x\|`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pool.Intern(abs) == pool.Intern(norm) {
		t.Error("|x| and \\|x\\| interned to the same id")
	}

	open, err := Parse(nil, `(1,2)`, nil)
	if err != nil {
		t.Fatal(err)
	}
	closed, err := Parse(nil, `[1,2]`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if pool.Intern(open) == pool.Intern(closed) {
		t.Error("(1,2) and [1,2] interned to the same id")
	}
}

// TestPoolIndependence checks that a reconstructed tree is a fresh copy.
func TestPoolIndependence(t *testing.T) {
	pool := NewPool()
	n, err := Parse(nil, `1 + 2`, nil)
	if err != nil {
		t.Fatal(err)
	}
	id := pool.Intern(n)

	first := pool.Node(id)
	first.Args[0].Lexeme = "99"

	second := pool.Node(id)
	if second.Args[0].Lexeme != "1" {
		t.Errorf("mutating one reconstruction leaked into the pool: got %s", second.Args[0].Lexeme)
	}

	if pool.Node(0) != nil {
		t.Error("pool.Node(0) should be nil: index 0 is reserved")
	}
	if pool.Node(9999) != nil {
		t.Error("pool.Node(out of range) should be nil")
	}
}
