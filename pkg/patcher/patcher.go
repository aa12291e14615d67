// Package patcher applies unified diff patches to content that may have
// drifted since the patch was generated.
package patcher

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// Tunable matching constants.
const (
	// SearchRange is the span of the window searched around a chunk's
	// expected position (half on each side).
	SearchRange = 50
	// FuzzyThreshold is the minimum mean similarity for a fuzzy anchor match.
	FuzzyThreshold = 0.7
	// LenientThreshold is the minimum fraction of matching anchor lines for a
	// lenient match, and the minimum similarity for a single flexible line
	// match.
	LenientThreshold = 0.6
	// NormalizedScore is the similarity of lines equal after whitespace
	// normalization.
	NormalizedScore = 0.95
	// PrefixBaseScore is the base similarity when one line prefixes the other.
	PrefixBaseScore = 0.8
	// SubstringBaseScore is the base similarity when one line contains the
	// other.
	SubstringBaseScore = 0.75
)

// Algorithm selects how chunks are located and lines compared.
type Algorithm int

const (
	// Fuzzy runs the full location cascade with word-overlap similarity.
	Fuzzy Algorithm = iota
	// Similar runs the full cascade with edit-distance similarity.
	Similar
	// Naive requires every chunk at its recorded position with exact lines.
	Naive
	// Strict delegates to git-style exact application.
	Strict
)

var algorithmNames = []string{"fuzzy", "similar", "naive", "strict"}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
	return algorithmNames[a]
}

// ParseAlgorithm returns the algorithm with the given name.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown patch algorithm %q (available: %s)", name, strings.Join(algorithmNames, ", "))
}

// Algorithms returns the names of all patch algorithms.
func Algorithms() []string {
	names := make([]string, len(algorithmNames))
	copy(names, algorithmNames)
	return names
}

// Patcher applies one Patch. It never modifies the patch.
type Patcher struct {
	patch       *patch.Patch
	algorithm   Algorithm
	searchRange int
	logger      *zap.Logger
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithAlgorithm selects the patch algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(p *Patcher) { p.algorithm = a }
}

// WithSearchRange overrides SearchRange.
func WithSearchRange(n int) Option {
	return func(p *Patcher) { p.searchRange = max(n, 0) }
}

// WithLogger sets the logger used for debug output about chunk placement.
func WithLogger(l *zap.Logger) Option {
	return func(p *Patcher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New returns a Patcher for p.
func New(p *patch.Patch, opts ...Option) *Patcher {
	pt := &Patcher{
		patch:       p,
		algorithm:   Fuzzy,
		searchRange: SearchRange,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(pt)
	}
	return pt
}

// Apply applies the patch to content, or its inverse when reverse is set.
//
// Chunks are located and applied in order. The result keeps a trailing
// newline if and only if content has one.
func (p *Patcher) Apply(content string, reverse bool) (string, error) {
	if p.algorithm == Strict {
		return applyStrict(p.patch, content, reverse)
	}

	src := patch.SplitLines(content)
	st := &state{src: src, out: make([]string, 0, len(src))}
	m := newMatcher(p.algorithm)

	for i := range p.patch.Chunks {
		c := &p.patch.Chunks[i]
		if reverse {
			rc := c.Reversed()
			c = &rc
		}
		if err := p.applyChunk(st, m, i, c); err != nil {
			return "", err
		}
	}
	st.out = append(st.out, src[st.pos:]...)

	return patch.JoinLines(st.out, strings.HasSuffix(content, "\n")), nil
}

// Apply applies p to content with the default Fuzzy algorithm.
func Apply(p *patch.Patch, content string, reverse bool) (string, error) {
	return New(p).Apply(content, reverse)
}
