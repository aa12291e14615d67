package patcher

import (
	"strings"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// normalize collapses runs of whitespace to single spaces and trims the
// ends.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// linesEqual reports whether two lines are equal exactly, after trimming,
// or after whitespace normalization.
func linesEqual(a, b string) bool {
	return a == b ||
		strings.TrimSpace(a) == strings.TrimSpace(b) ||
		normalize(a) == normalize(b)
}

// Similarity scores two lines in [0, 1], falling back to Jaccard overlap of
// their words.
func Similarity(a, b string) float64 {
	if s, ok := containmentScore(a, b); ok {
		return s
	}
	return jaccard(normalize(a), normalize(b))
}

// EditSimilarity scores two lines in [0, 1], falling back to one minus the
// normalized edit distance.
func EditSimilarity(a, b string) float64 {
	if s, ok := containmentScore(a, b); ok {
		return s
	}
	na, nb := normalize(a), normalize(b)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0
	dist := dmp.DiffLevenshtein(dmp.DiffMain(na, nb, false))
	longest := max(utf8.RuneCountInString(na), utf8.RuneCountInString(nb))
	return max(0, 1-float64(dist)/float64(longest))
}

// containmentScore handles the cases shared by both similarity measures.
// It reports false when the final fallback measure must decide.
func containmentScore(a, b string) (float64, bool) {
	if a == b {
		return 1, true
	}
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return NormalizedScore, true
	}
	if na == "" || nb == "" {
		return 0, true
	}

	short, long := na, nb
	if utf8.RuneCountInString(short) > utf8.RuneCountInString(long) {
		short, long = long, short
	}
	ratio := float64(utf8.RuneCountInString(short)) / float64(utf8.RuneCountInString(long))

	switch {
	case strings.HasPrefix(long, short):
		return PrefixBaseScore + (1-PrefixBaseScore)*ratio, true
	case strings.Contains(long, short):
		return SubstringBaseScore + (1-SubstringBaseScore)*ratio, true
	}
	return 0, false
}

// jaccard returns |A∩B| / |A∪B| over the whitespace-separated words.
func jaccard(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 && len(wb) == 0 {
		return 1
	}
	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}

func wordSet(s string) map[string]struct{} {
	words := strings.Fields(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// matcher bundles the line comparison rules of one algorithm.
type matcher struct {
	score func(a, b string) float64
	// exact disables trimming, normalization and similarity.
	exact bool
	// search enables the windowed strategies of the locate cascade.
	search bool
}

func newMatcher(a Algorithm) *matcher {
	switch a {
	case Similar:
		return &matcher{score: EditSimilarity, search: true}
	case Naive:
		return &matcher{score: Similarity, exact: true}
	default:
		return &matcher{score: Similarity, search: true}
	}
}

// equal is the anchor equality used by the exact strategies.
func (m *matcher) equal(content, recorded string) bool {
	if m.exact {
		return content == recorded
	}
	return linesEqual(content, recorded)
}

// verify is the per-line match for context and removed lines of a placed
// chunk.
func (m *matcher) verify(content, recorded string) bool {
	if m.equal(content, recorded) {
		return true
	}
	return !m.exact && m.score(content, recorded) >= FuzzyThreshold
}

// flexible is the looser match used only to count lenient anchor matches.
func (m *matcher) flexible(content, recorded string) bool {
	if m.equal(content, recorded) {
		return true
	}
	return !m.exact && m.score(content, recorded) >= LenientThreshold
}
