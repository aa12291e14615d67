package diff

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pairCase struct {
	name string
	a, b []string
}

func lines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, " ")
}

func pairCases() []pairCase {
	cases := []pairCase{
		{"both empty", nil, nil},
		{"old empty", nil, lines("a b c")},
		{"new empty", lines("a b c"), nil},
		{"identical", lines("a b c"), lines("a b c")},
		{"replace middle", lines("a b c"), lines("a x c")},
		{"insert front", lines("b c"), lines("a b c")},
		{"delete back", lines("a b c"), lines("a b")},
		{"disjoint", lines("a b c"), lines("x y z")},
		{"repeated lines", lines("a a a b a a"), lines("a b a a a a")},
		{"classic", lines("a b c a b b a"), lines("c b a b a c")},
		{"move block", lines("1 2 3 4 5 6 7 8"), lines("5 6 7 8 1 2 3 4")},
		{"blank lines", []string{"", "x", "", ""}, []string{"x", "", "y", ""}},
	}

	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []string{"a", "b", "c", "d", "e"}
	for n := range 40 {
		a := make([]string, rng.IntN(30))
		for i := range a {
			a[i] = alphabet[rng.IntN(len(alphabet))]
		}
		b := make([]string, rng.IntN(30))
		for i := range b {
			b[i] = alphabet[rng.IntN(len(alphabet))]
		}
		cases = append(cases, pairCase{fmt.Sprintf("random %d", n), a, b})
	}
	return cases
}

// checkScript verifies that changes is a complete, ordered edit script
// turning a into b.
func checkScript(t *testing.T, a, b []string, changes []Change) {
	t.Helper()
	i, j := 0, 0
	for k, c := range changes {
		require.Positive(t, c.Count, "change %d has non-positive count", k)
		switch c.Kind {
		case ChangeEqual:
			require.Equal(t, 1, c.Count, "equal change %d", k)
			require.Equal(t, i, c.OldIndex, "equal change %d old index", k)
			require.Equal(t, j, c.NewIndex, "equal change %d new index", k)
			require.Equal(t, a[i], b[j], "equal change %d pairs different lines", k)
			i++
			j++
		case ChangeDelete:
			require.Equal(t, i, c.OldIndex, "delete change %d old index", k)
			i += c.Count
		case ChangeInsert:
			require.Equal(t, j, c.NewIndex, "insert change %d new index", k)
			j += c.Count
		}
	}
	require.Equal(t, len(a), i, "old lines covered")
	require.Equal(t, len(b), j, "new lines covered")
}

func TestAlgorithmsProduceValidScripts(t *testing.T) {
	for _, name := range Algorithms() {
		algo, err := Lookup(name)
		require.NoError(t, err)

		t.Run(name, func(t *testing.T) {
			for _, tc := range pairCases() {
				t.Run(tc.name, func(t *testing.T) {
					checkScript(t, tc.a, tc.b, algo.Diff(tc.a, tc.b))
				})
			}
		})
	}
}

func TestAlgorithmsIdenticalInputIsAllEqual(t *testing.T) {
	a := lines("x y z x y")
	for _, name := range Algorithms() {
		algo, err := Lookup(name)
		require.NoError(t, err)
		assert.Zero(t, EditCount(algo.Diff(a, a)), name)
	}
}

func TestAlgorithmsDoNotModifyInput(t *testing.T) {
	a := lines("a b c d")
	b := lines("a c e d")
	for _, name := range Algorithms() {
		algo, err := Lookup(name)
		require.NoError(t, err)
		algo.Diff(a, b)
		assert.Equal(t, lines("a b c d"), a, name)
		assert.Equal(t, lines("a c e d"), b, name)
	}
}

func TestMyersIsMinimal(t *testing.T) {
	for _, tc := range pairCases() {
		t.Run(tc.name, func(t *testing.T) {
			want := EditCount(LCS{}.Diff(tc.a, tc.b))
			assert.Equal(t, want, EditCount(Myers{}.Diff(tc.a, tc.b)))
		})
	}
}

func TestLCSEditCounts(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"a b c", "a b c", 0},
		{"a b c", "a x c", 2},
		{"a b c", "", 3},
		{"a b c a b b a", "c b a b a c", 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EditCount(LCS{}.Diff(lines(tt.a), lines(tt.b))), "%q -> %q", tt.a, tt.b)
	}
}

func TestScriptCoalesces(t *testing.T) {
	changes := Myers{}.Diff(lines("a b c"), lines("x y z"))
	assert.Equal(t, []Change{Delete(0, 3), Insert(0, 3)}, changes)
}

func TestXDiffUsesUniqueAnchors(t *testing.T) {
	// The unique "fn" line anchors the match even though braces repeat.
	a := []string{"{", "}", "fn", "{", "body", "}"}
	b := []string{"fn", "{", "body", "}", "{", "}"}
	changes := XDiff{}.Diff(a, b)
	checkScript(t, a, b, changes)

	var equal []string
	for _, c := range changes {
		if c.Kind == ChangeEqual {
			equal = append(equal, a[c.OldIndex])
		}
	}
	assert.Equal(t, []string{"fn", "{", "body", "}"}, equal)
}

func TestRegistry(t *testing.T) {
	assert.Equal(t, []string{"myers", "lcs", "xdiff", "naive", "dmp"}, Algorithms())

	a, err := Lookup("MYERS")
	require.NoError(t, err)
	assert.Equal(t, "myers", a.Name())

	_, err = Lookup("patience")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "myers, lcs, xdiff, naive, dmp")

	names := Algorithms()
	names[0] = "mutated"
	assert.Equal(t, "myers", Algorithms()[0])
}

func TestFromMarks(t *testing.T) {
	got := fromMarks([]bool{false, true, true, false}, []bool{false, true, false})
	assert.Equal(t, []Change{Equal(0, 0), Delete(1, 2), Insert(1, 1), Equal(3, 2)}, got)
}

func BenchmarkAlgorithms(b *testing.B) {
	rng := rand.New(rand.NewPCG(7, 7))
	old := make([]string, 2000)
	for i := range old {
		old[i] = fmt.Sprintf("line %d", rng.IntN(400))
	}
	updated := append([]string(nil), old...)
	for range 50 {
		updated[rng.IntN(len(updated))] = "edited"
	}

	for _, name := range Algorithms() {
		algo, _ := Lookup(name)
		b.Run(name, func(b *testing.B) {
			for b.Loop() {
				algo.Diff(old, updated)
			}
		})
	}
}
