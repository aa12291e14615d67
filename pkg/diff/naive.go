package diff

// naiveLookahead is how far ahead Naive searches for a resynchronization
// point.
const naiveLookahead = 10

// Naive walks both sequences greedily, resynchronizing with a short
// lookahead after a mismatch. It is fast and simple but not minimal.
type Naive struct{}

// Name implements Algorithm.
func (Naive) Name() string { return "naive" }

// Diff implements Algorithm.
func (Naive) Diff(a, b []string) []Change {
	var s script
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i] == b[j] {
			s.equal(i, j)
			i++
			j++
			continue
		}
		if k := indexFrom(b, a[i], j+1); k >= 0 {
			s.insert(j, k-j)
			j = k
			continue
		}
		if k := indexFrom(a, b[j], i+1); k >= 0 {
			s.delete(i, k-i)
			i = k
			continue
		}
		s.delete(i, 1)
		s.insert(j, 1)
		i++
		j++
	}
	s.delete(i, len(a)-i)
	s.insert(j, len(b)-j)
	return s
}

// indexFrom returns the index of line in lines[from:from+naiveLookahead],
// or -1.
func indexFrom(lines []string, line string, from int) int {
	end := min(from+naiveLookahead, len(lines))
	for k := from; k < end; k++ {
		if lines[k] == line {
			return k
		}
	}
	return -1
}
