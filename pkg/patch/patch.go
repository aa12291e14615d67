// Package patch defines the unified diff data model and its text codec.
package patch

// DevNull is the sentinel path marking a file that does not exist. On the
// old side it denotes creation, on the new side deletion.
const DevNull = "/dev/null"

// OpKind classifies a line inside a chunk.
type OpKind int

const (
	// OpContext is an unchanged line present on both sides.
	OpContext OpKind = iota
	// OpAdd is a line present only in the new file.
	OpAdd
	// OpRemove is a line present only in the old file.
	OpRemove
)

// Prefix returns the unified diff line prefix for the kind.
func (k OpKind) Prefix() byte {
	switch k {
	case OpAdd:
		return '+'
	case OpRemove:
		return '-'
	default:
		return ' '
	}
}

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	default:
		return "context"
	}
}

// Operation is a single line of a chunk. Text excludes the line terminator.
type Operation struct {
	Kind OpKind
	Text string
}

// Context returns a context operation.
func Context(text string) Operation { return Operation{Kind: OpContext, Text: text} }

// Add returns an addition.
func Add(text string) Operation { return Operation{Kind: OpAdd, Text: text} }

// Remove returns a removal.
func Remove(text string) Operation { return Operation{Kind: OpRemove, Text: text} }

// String renders the operation as a unified diff body line without newline.
func (o Operation) String() string {
	return string(o.Kind.Prefix()) + o.Text
}

// reversed swaps additions and removals.
func (o Operation) reversed() Operation {
	switch o.Kind {
	case OpAdd:
		o.Kind = OpRemove
	case OpRemove:
		o.Kind = OpAdd
	}
	return o
}

// Chunk is a hunk: a contiguous region of the old and new files.
//
// OldStart and NewStart are 0-based. For a range with zero lines the start
// is the insertion point, i.e. the number of lines preceding the range.
type Chunk struct {
	OldStart   int
	OldLines   int
	NewStart   int
	NewLines   int
	Operations []Operation
}

// Counts returns the number of old-side (context + remove) and new-side
// (context + add) lines in the chunk's operations.
func (c *Chunk) Counts() (oldLines, newLines int) {
	for _, op := range c.Operations {
		switch op.Kind {
		case OpContext:
			oldLines++
			newLines++
		case OpRemove:
			oldLines++
		case OpAdd:
			newLines++
		}
	}
	return oldLines, newLines
}

// Anchor returns the leading run of context lines.
func (c *Chunk) Anchor() []string {
	var anchor []string
	for _, op := range c.Operations {
		if op.Kind != OpContext {
			break
		}
		anchor = append(anchor, op.Text)
	}
	return anchor
}

// Reversed returns a copy of the chunk describing the inverse change. The
// receiver is left untouched.
func (c *Chunk) Reversed() Chunk {
	ops := make([]Operation, len(c.Operations))
	for i, op := range c.Operations {
		ops[i] = op.reversed()
	}
	return Chunk{
		OldStart:   c.NewStart,
		OldLines:   c.NewLines,
		NewStart:   c.OldStart,
		NewLines:   c.OldLines,
		Operations: ops,
	}
}

// Patch describes the changes to a single file.
type Patch struct {
	// Preamble is an optional free-form header line such as
	// "diff --git a/x b/x". It is re-emitted verbatim.
	Preamble string
	OldFile  string
	NewFile  string
	Chunks   []Chunk
}

// IsCreation reports whether the patch creates NewFile.
func (p *Patch) IsCreation() bool { return p.OldFile == DevNull }

// IsDeletion reports whether the patch deletes OldFile.
func (p *Patch) IsDeletion() bool { return p.NewFile == DevNull }

// IsEmpty reports whether the patch has no chunks.
func (p *Patch) IsEmpty() bool { return len(p.Chunks) == 0 }

// Reversed returns the inverse patch. The receiver is left untouched.
func (p *Patch) Reversed() *Patch {
	r := &Patch{
		Preamble: p.Preamble,
		OldFile:  p.NewFile,
		NewFile:  p.OldFile,
		Chunks:   make([]Chunk, len(p.Chunks)),
	}
	for i := range p.Chunks {
		r.Chunks[i] = p.Chunks[i].Reversed()
	}
	return r
}
