package diff

// xdiffCellLimit bounds the size of a region handed to the exact LCS
// fallback. Larger regions without a unique anchor are marked as fully
// changed.
const xdiffCellLimit = 1 << 22

// xdiffMaxDepth bounds the anchor recursion.
const xdiffMaxDepth = 64

// XDiff is a heuristic divide-and-conquer algorithm in the spirit of the
// patience strategy of libxdiff. After stripping the common prefix and
// suffix it anchors on lines that occur exactly once in both ranges,
// recursing between anchors. Small anchorless regions are solved exactly;
// large ones are marked as changed. The result is always a valid edit
// script but is not guaranteed to be minimal.
type XDiff struct{}

// Name implements Algorithm.
func (XDiff) Name() string { return "xdiff" }

// Diff implements Algorithm.
func (XDiff) Diff(a, b []string) []Change {
	ai, bi := intern(a, b)
	x := &xdiffCtx{
		a:        ai,
		b:        bi,
		deleted:  make([]bool, len(a)),
		inserted: make([]bool, len(b)),
	}
	x.compare(0, len(a), 0, len(b), 0)
	return fromMarks(x.deleted, x.inserted)
}

type xdiffCtx struct {
	a, b     []int
	deleted  []bool
	inserted []bool
}

func (x *xdiffCtx) compare(alo, ahi, blo, bhi, depth int) {
	for alo < ahi && blo < bhi && x.a[alo] == x.b[blo] {
		alo++
		blo++
	}
	for ahi > alo && bhi > blo && x.a[ahi-1] == x.b[bhi-1] {
		ahi--
		bhi--
	}

	switch {
	case alo == ahi:
		x.markInserted(blo, bhi)
		return
	case blo == bhi:
		x.markDeleted(alo, ahi)
		return
	}

	if depth < xdiffMaxDepth {
		if anchors := x.anchors(alo, ahi, blo, bhi); len(anchors) > 0 {
			pa, pb := alo, blo
			for _, an := range anchors {
				x.compare(pa, an.a, pb, an.b, depth+1)
				pa, pb = an.a+1, an.b+1
			}
			x.compare(pa, ahi, pb, bhi, depth+1)
			return
		}
	}

	if (ahi-alo)*(bhi-blo) <= xdiffCellLimit {
		x.exact(alo, ahi, blo, bhi)
		return
	}
	x.markDeleted(alo, ahi)
	x.markInserted(blo, bhi)
}

type anchor struct{ a, b int }

// anchors returns the longest increasing sequence of line pairs whose
// content occurs exactly once in each range.
func (x *xdiffCtx) anchors(alo, ahi, blo, bhi int) []anchor {
	type slot struct {
		countA, countB int
		posA, posB     int
	}
	slots := make(map[int]*slot)
	for i := alo; i < ahi; i++ {
		s := slots[x.a[i]]
		if s == nil {
			s = &slot{}
			slots[x.a[i]] = s
		}
		s.countA++
		s.posA = i
	}
	for j := blo; j < bhi; j++ {
		if s := slots[x.b[j]]; s != nil {
			s.countB++
			s.posB = j
		}
	}

	// Unique pairs in a-order.
	var pairs []anchor
	for i := alo; i < ahi; i++ {
		if s := slots[x.a[i]]; s.countA == 1 && s.countB == 1 {
			pairs = append(pairs, anchor{a: i, b: s.posB})
		}
	}
	if len(pairs) == 0 {
		return nil
	}

	// Patience sort: longest subsequence increasing in b.
	tails := make([]int, 0, len(pairs))
	prev := make([]int, len(pairs))
	for i, p := range pairs {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if pairs[tails[mid]].b < p.b {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		prev[i] = -1
		if lo > 0 {
			prev[i] = tails[lo-1]
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	seq := make([]anchor, len(tails))
	for k, i := len(tails)-1, tails[len(tails)-1]; k >= 0; k, i = k-1, prev[i] {
		seq[k] = pairs[i]
	}
	return seq
}

// exact solves a small region with an LCS table.
func (x *xdiffCtx) exact(alo, ahi, blo, bhi int) {
	sub := LCS{}.diffInts(x.a[alo:ahi], x.b[blo:bhi])
	for _, c := range sub {
		switch c.Kind {
		case ChangeDelete:
			x.markDeleted(alo+c.OldIndex, alo+c.OldIndex+c.Count)
		case ChangeInsert:
			x.markInserted(blo+c.NewIndex, blo+c.NewIndex+c.Count)
		}
	}
}

func (x *xdiffCtx) markDeleted(lo, hi int) {
	for i := lo; i < hi; i++ {
		x.deleted[i] = true
	}
}

func (x *xdiffCtx) markInserted(lo, hi int) {
	for j := lo; j < hi; j++ {
		x.inserted[j] = true
	}
}
