package patcher

// search describes one chunk location problem.
type search struct {
	src      []string
	anchor   []string
	expected int // Recorded start of the chunk.
	floor    int // First line not yet consumed by a prior chunk.
	lo, hi   int // Inclusive candidate window for the windowed strategies.
	m        *matcher
}

func newSearch(src, anchor []string, expected, floor, searchRange int, m *matcher) *search {
	half := searchRange / 2
	return &search{
		src:      src,
		anchor:   anchor,
		expected: expected,
		floor:    floor,
		lo:       max(floor, expected-half),
		hi:       min(len(src)-len(anchor), expected+half),
		m:        m,
	}
}

// fits reports whether the anchor can start at pos.
func (s *search) fits(pos int) bool {
	return pos >= s.floor && pos+len(s.anchor) <= len(s.src)
}

// candidates returns window positions ordered by distance from the
// expected position, earlier first on ties.
func (s *search) candidates() []int {
	var out []int
	for d := 0; ; d++ {
		below, above := s.expected-d, s.expected+d
		if below < s.lo && above > s.hi {
			return out
		}
		if below >= s.lo && below <= s.hi {
			out = append(out, below)
		}
		if d > 0 && above >= s.lo && above <= s.hi {
			out = append(out, above)
		}
	}
}

func (s *search) anchorEqual(pos int) bool {
	for i, line := range s.anchor {
		if !s.m.equal(s.src[pos+i], line) {
			return false
		}
	}
	return true
}

// locateStrategy finds a start position for a chunk.
type locateStrategy interface {
	// Name identifies the strategy in logs.
	Name() string

	// Locate returns the start position and true on success.
	Locate(s *search) (int, bool)
}

// cascade returns the strategies tried in order for a matcher.
func cascade(m *matcher) []locateStrategy {
	if !m.search {
		return []locateStrategy{exactAtExpected{}}
	}
	return []locateStrategy{
		exactAtExpected{},
		windowExact{},
		windowFuzzy{},
		windowLenient{},
		fallback{},
	}
}

// locate runs strategies in order and returns the first success.
func locate(s *search, strategies []locateStrategy) (int, string, bool) {
	for _, st := range strategies {
		if pos, ok := st.Locate(s); ok {
			return pos, st.Name(), true
		}
	}
	return 0, "", false
}

// exactAtExpected accepts the recorded position when the anchor matches
// there.
type exactAtExpected struct{}

func (exactAtExpected) Name() string { return "exact" }

func (exactAtExpected) Locate(s *search) (int, bool) {
	if !s.fits(s.expected) || !s.anchorEqual(s.expected) {
		return 0, false
	}
	return s.expected, true
}

// windowExact scans the window for the anchor, nearest position first.
type windowExact struct{}

func (windowExact) Name() string { return "window" }

func (windowExact) Locate(s *search) (int, bool) {
	if len(s.anchor) == 0 {
		return 0, false
	}
	for _, pos := range s.candidates() {
		if s.anchorEqual(pos) {
			return pos, true
		}
	}
	return 0, false
}

// windowFuzzy picks the window position with the highest mean line
// similarity, if it reaches FuzzyThreshold.
type windowFuzzy struct{}

func (windowFuzzy) Name() string { return "fuzzy" }

func (windowFuzzy) Locate(s *search) (int, bool) {
	if len(s.anchor) == 0 {
		return 0, false
	}
	best, bestScore := -1, 0.0
	for _, pos := range s.candidates() {
		total := 0.0
		for i, line := range s.anchor {
			total += s.m.score(s.src[pos+i], line)
		}
		score := total / float64(len(s.anchor))
		if score >= FuzzyThreshold && score > bestScore {
			best, bestScore = pos, score
		}
	}
	return best, best >= 0
}

// windowLenient picks the window position with the most flexibly matching
// anchor lines, if their fraction reaches LenientThreshold.
type windowLenient struct{}

func (windowLenient) Name() string { return "lenient" }

func (windowLenient) Locate(s *search) (int, bool) {
	if len(s.anchor) == 0 {
		return 0, false
	}
	best, bestMatches := -1, 0
	for _, pos := range s.candidates() {
		matches := 0
		for i, line := range s.anchor {
			if s.m.flexible(s.src[pos+i], line) {
				matches++
			}
		}
		if float64(matches)/float64(len(s.anchor)) >= LenientThreshold && matches > bestMatches {
			best, bestMatches = pos, matches
		}
	}
	return best, best >= 0
}

// fallback uses the recorded position, never rewinding past lines already
// consumed, so that mismatches surface while applying the chunk body.
type fallback struct{}

func (fallback) Name() string { return "fallback" }

func (fallback) Locate(s *search) (int, bool) {
	pos := max(s.expected, s.floor)
	if pos > len(s.src) {
		return 0, false
	}
	return pos, true
}
