// Package diff computes line-level edit scripts and assembles them into
// unified diff patches.
package diff

import (
	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// DefaultContext is the number of unchanged lines shown around each hunk.
const DefaultContext = 3

// Differ generates patches with a configured algorithm and context width.
type Differ struct {
	algorithm Algorithm
	context   int
}

// Option configures a Differ.
type Option func(*Differ)

// WithAlgorithm selects the edit-script algorithm.
func WithAlgorithm(a Algorithm) Option {
	return func(d *Differ) { d.algorithm = a }
}

// WithContext sets the number of context lines. Negative values are
// treated as zero.
func WithContext(n int) Option {
	return func(d *Differ) { d.context = max(n, 0) }
}

// New returns a Differ using Myers with DefaultContext unless overridden.
func New(opts ...Option) *Differ {
	d := &Differ{algorithm: Myers{}, context: DefaultContext}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Algorithm returns the configured algorithm.
func (d *Differ) Algorithm() Algorithm { return d.algorithm }

// Diff computes the patch turning oldText into newText, labelled with the
// given file names. Identical inputs produce a patch with no chunks.
func (d *Differ) Diff(oldName, newName, oldText, newText string) *patch.Patch {
	p := &patch.Patch{OldFile: oldName, NewFile: newName}
	if oldText == newText {
		return p
	}

	oldLines := patch.SplitLines(oldText)
	newLines := patch.SplitLines(newText)
	changes := d.algorithm.Diff(oldLines, newLines)
	p.Chunks = Assemble(changes, oldLines, newLines, d.context)
	return p
}

// Generate computes the patch turning oldText into newText with the
// placeholder names "original" and "modified".
func (d *Differ) Generate(oldText, newText string) *patch.Patch {
	return d.Diff("original", "modified", oldText, newText)
}

// Unified generates a unified diff between oldText and newText using the
// default Differ. Returns an empty string if the inputs produce no chunks.
func Unified(filename, oldText, newText string) string {
	p := New().Diff(filename, filename, oldText, newText)
	if p.IsEmpty() {
		return ""
	}
	return p.String()
}
