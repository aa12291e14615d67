package diff

// ChangeKind classifies an edit-script entry.
type ChangeKind int

const (
	// ChangeEqual is a single line present in both sequences.
	ChangeEqual ChangeKind = iota
	// ChangeDelete is a run of lines present only in the old sequence.
	ChangeDelete
	// ChangeInsert is a run of lines present only in the new sequence.
	ChangeInsert
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeDelete:
		return "delete"
	case ChangeInsert:
		return "insert"
	default:
		return "equal"
	}
}

// Change is one entry of an edit script.
//
// Equal carries both indices and a count of 1. Delete carries OldIndex and
// Count; Insert carries NewIndex and Count. The unused index is -1.
type Change struct {
	Kind     ChangeKind
	OldIndex int
	NewIndex int
	Count    int
}

// Equal returns an equal entry for old[oldIdx] == new[newIdx].
func Equal(oldIdx, newIdx int) Change {
	return Change{Kind: ChangeEqual, OldIndex: oldIdx, NewIndex: newIdx, Count: 1}
}

// Delete returns a deletion of count lines starting at old[oldIdx].
func Delete(oldIdx, count int) Change {
	return Change{Kind: ChangeDelete, OldIndex: oldIdx, NewIndex: -1, Count: count}
}

// Insert returns an insertion of count lines starting at new[newIdx].
func Insert(newIdx, count int) Change {
	return Change{Kind: ChangeInsert, OldIndex: -1, NewIndex: newIdx, Count: count}
}

// script accumulates an edit script, coalescing adjacent runs of the same
// kind.
type script []Change

func (s *script) equal(i, j int) {
	*s = append(*s, Equal(i, j))
}

func (s *script) delete(i, n int) {
	if n <= 0 {
		return
	}
	if last := len(*s) - 1; last >= 0 {
		c := &(*s)[last]
		if c.Kind == ChangeDelete && c.OldIndex+c.Count == i {
			c.Count += n
			return
		}
	}
	*s = append(*s, Delete(i, n))
}

func (s *script) insert(j, n int) {
	if n <= 0 {
		return
	}
	if last := len(*s) - 1; last >= 0 {
		c := &(*s)[last]
		if c.Kind == ChangeInsert && c.NewIndex+c.Count == j {
			c.Count += n
			return
		}
	}
	*s = append(*s, Insert(j, n))
}

// fromMarks builds a script from per-line change flags. Unmarked lines of a
// and b pair up in order; at each gap deletions precede insertions.
func fromMarks(deleted, inserted []bool) []Change {
	var s script
	i, j := 0, 0
	for i < len(deleted) || j < len(inserted) {
		switch {
		case i < len(deleted) && deleted[i]:
			start := i
			for i < len(deleted) && deleted[i] {
				i++
			}
			s.delete(start, i-start)
		case j < len(inserted) && inserted[j]:
			start := j
			for j < len(inserted) && inserted[j] {
				j++
			}
			s.insert(start, j-start)
		case i < len(deleted) && j < len(inserted):
			s.equal(i, j)
			i++
			j++
		default:
			panic("diff: unmatched lines in edit marks")
		}
	}
	return s
}

// EditCount returns the number of inserted plus deleted lines.
func EditCount(changes []Change) int {
	n := 0
	for _, c := range changes {
		if c.Kind != ChangeEqual {
			n += c.Count
		}
	}
	return n
}

// intern maps lines to small integers so algorithms compare ints rather
// than strings. Equal lines share an id across both sequences.
func intern(a, b []string) (ai, bi []int) {
	ids := make(map[string]int, len(a)+len(b))
	id := func(s string) int {
		if v, ok := ids[s]; ok {
			return v
		}
		v := len(ids)
		ids[s] = v
		return v
	}
	ai = make([]int, len(a))
	for i, s := range a {
		ai[i] = id(s)
	}
	bi = make([]int, len(b))
	for j, s := range b {
		bi[j] = id(s)
	}
	return ai, bi
}
