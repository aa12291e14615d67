package diff

import "math"

// Myers computes a minimal edit script with the linear-space variant of
// Myers' O(ND) algorithm. It searches forward and backward simultaneously
// for the middle snake and recurses on both halves, so memory stays
// O(n+m) regardless of the edit distance.
type Myers struct{}

// Name implements Algorithm.
func (Myers) Name() string { return "myers" }

// Diff implements Algorithm.
func (Myers) Diff(a, b []string) []Change {
	n, m := len(a), len(b)
	ai, bi := intern(a, b)
	c := &myersCtx{
		a:        ai,
		b:        bi,
		fd:       make([]int, n+m+3),
		bd:       make([]int, n+m+3),
		off:      m + 1,
		deleted:  make([]bool, n),
		inserted: make([]bool, m),
	}
	c.compare(0, n, 0, m)
	return fromMarks(c.deleted, c.inserted)
}

// myersCtx holds the frontier arrays shared by every recursion level.
// fd and bd are indexed by diagonal k = x - y, shifted by off.
type myersCtx struct {
	a, b     []int
	fd, bd   []int
	off      int
	deleted  []bool
	inserted []bool
}

// compare marks the changed lines of a[xoff:xlim] against b[yoff:ylim].
func (c *myersCtx) compare(xoff, xlim, yoff, ylim int) {
	for xoff < xlim && yoff < ylim && c.a[xoff] == c.b[yoff] {
		xoff++
		yoff++
	}
	for xlim > xoff && ylim > yoff && c.a[xlim-1] == c.b[ylim-1] {
		xlim--
		ylim--
	}

	switch {
	case xoff == xlim:
		for y := yoff; y < ylim; y++ {
			c.inserted[y] = true
		}
	case yoff == ylim:
		for x := xoff; x < xlim; x++ {
			c.deleted[x] = true
		}
	default:
		xmid, ymid := c.midsnake(xoff, xlim, yoff, ylim)
		c.compare(xoff, xmid, yoff, ymid)
		c.compare(xmid, xlim, ymid, ylim)
	}
}

// midsnake returns a point on an optimal path through the edit graph of
// a[xoff:xlim] and b[yoff:ylim]. Both ranges are non-empty and differ in
// their first and last elements.
func (c *myersCtx) midsnake(xoff, xlim, yoff, ylim int) (int, int) {
	fd, bd, off := c.fd, c.bd, c.off

	dmin, dmax := xoff-ylim, xlim-yoff
	fmid, bmid := xoff-yoff, xlim-ylim
	fmin, fmax := fmid, fmid
	bmin, bmax := bmid, bmid
	odd := (fmid-bmid)&1 != 0

	fd[fmid+off] = xoff
	bd[bmid+off] = xlim

	for {
		// Extend the forward frontier by one edit.
		if fmin > dmin {
			fmin--
			fd[fmin-1+off] = -1
		} else {
			fmin++
		}
		if fmax < dmax {
			fmax++
			fd[fmax+1+off] = -1
		} else {
			fmax--
		}
		for d := fmax; d >= fmin; d -= 2 {
			tlo, thi := fd[d-1+off], fd[d+1+off]
			x := thi
			if tlo >= thi {
				x = tlo + 1
			}
			y := x - d
			for x < xlim && y < ylim && c.a[x] == c.b[y] {
				x++
				y++
			}
			fd[d+off] = x
			if odd && bmin <= d && d <= bmax && bd[d+off] <= x {
				return x, y
			}
		}

		// Extend the backward frontier by one edit.
		if bmin > dmin {
			bmin--
			bd[bmin-1+off] = math.MaxInt
		} else {
			bmin++
		}
		if bmax < dmax {
			bmax++
			bd[bmax+1+off] = math.MaxInt
		} else {
			bmax--
		}
		for d := bmax; d >= bmin; d -= 2 {
			tlo, thi := bd[d-1+off], bd[d+1+off]
			x := tlo
			if tlo >= thi {
				x = thi - 1
			}
			y := x - d
			for x > xoff && y > yoff && c.a[x-1] == c.b[y-1] {
				x--
				y--
			}
			bd[d+off] = x
			if !odd && fmin <= d && d <= fmax && x <= fd[d+off] {
				return x, y
			}
		}
	}
}
