package diff

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DMP delegates to the diff-match-patch library in line mode: each line is
// encoded as a single rune and the rune sequences are diffed with the
// library's bisection algorithm. The timeout is disabled so the output is
// deterministic and minimal.
type DMP struct{}

// Name implements Algorithm.
func (DMP) Name() string { return "dmp" }

// Diff implements Algorithm.
func (DMP) Diff(a, b []string) []Change {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0

	ra, rb, _ := dmp.DiffLinesToRunes(terminate(a), terminate(b))
	diffs := dmp.DiffMainRunes(ra, rb, false)

	var s script
	i, j := 0, 0
	for _, d := range diffs {
		// One rune per line.
		n := utf8.RuneCountInString(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			for k := 0; k < n; k++ {
				s.equal(i+k, j+k)
			}
			i += n
			j += n
		case diffmatchpatch.DiffDelete:
			s.delete(i, n)
			i += n
		case diffmatchpatch.DiffInsert:
			s.insert(j, n)
			j += n
		}
	}
	if i != len(a) || j != len(b) {
		panic("diff: diff-match-patch script does not cover input")
	}
	return s
}

// terminate joins lines so that every line, including the last, ends in
// "\n"; the library's line splitter then yields exactly len(lines) lines.
func terminate(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
