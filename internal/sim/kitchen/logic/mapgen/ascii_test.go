package mapgen

import (
	"math/rand"
	"strings"
	"testing"
)

func TestASCII_HandLayout(t *testing.T) {
	l := Layout{
		Rows:         3,
		Cols:         4,
		Placeholders: map[Cell]struct{}{{0, 0}: {}},
		Plain:        map[Cell]struct{}{{0, 1}: {}},
		Chopping:     map[Cell]struct{}{{2, 3}: {}},
		Cooking:      map[Cell]struct{}{{2, 0}: {}},
		Specials:     map[Cell]Role{{0, 3}: RoleServing, {1, 0}: RoleFishCrate},
	}
	want := "#=.S\nF...\nO..K\n"
	if got := l.ASCII(); got != want {
		t.Fatalf("ASCII:\n%s\nwant:\n%s", got, want)
	}
}

func TestASCII_GeneratedCountsMatch(t *testing.T) {
	l, err := Generate(rand.New(rand.NewSource(3)), paramsFor(2))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	s := l.ASCII()
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	if len(lines) != l.Rows {
		t.Fatalf("rows=%d want %d", len(lines), l.Rows)
	}
	for _, line := range lines {
		if len(line) != l.Cols {
			t.Fatalf("line %q has %d cols want %d", line, len(line), l.Cols)
		}
	}
	if got := strings.Count(s, "."); got != len(l.FreeCells()) {
		t.Fatalf("floor cells=%d want %d", got, len(l.FreeCells()))
	}
	for _, g := range []string{"F", "L", "B", "S", "X"} {
		if strings.Count(s, g) != 1 {
			t.Fatalf("glyph %s count=%d want 1", g, strings.Count(s, g))
		}
	}
}
