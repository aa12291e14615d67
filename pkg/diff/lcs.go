package diff

// LCS computes the edit script from a full longest-common-subsequence
// table. It uses O(n·m) time and memory and serves as the reference the
// other algorithms are checked against.
type LCS struct{}

// Name implements Algorithm.
func (LCS) Name() string { return "lcs" }

// Diff implements Algorithm.
func (l LCS) Diff(a, b []string) []Change {
	return l.diffInts(intern(a, b))
}

func (LCS) diffInts(ai, bi []int) []Change {
	n, m := len(ai), len(bi)

	// table[i*(m+1)+j] is the LCS length of a[:i] and b[:j].
	w := m + 1
	table := make([]int, (n+1)*w)
	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			switch {
			case ai[i-1] == bi[j-1]:
				table[i*w+j] = table[(i-1)*w+j-1] + 1
			case table[(i-1)*w+j] >= table[i*w+j-1]:
				table[i*w+j] = table[(i-1)*w+j]
			default:
				table[i*w+j] = table[i*w+j-1]
			}
		}
	}

	deleted := make([]bool, n)
	inserted := make([]bool, m)
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && ai[i-1] == bi[j-1]:
			i--
			j--
		case j > 0 && (i == 0 || table[i*w+j-1] >= table[(i-1)*w+j]):
			inserted[j-1] = true
			j--
		default:
			deleted[i-1] = true
			i--
		}
	}
	return fromMarks(deleted, inserted)
}
