package patch

import (
	"fmt"
	"io"
	"strings"
)

// String renders the patch as unified diff text. Every line, including the
// last, is newline-terminated.
func (p *Patch) String() string {
	var b strings.Builder
	p.writeTo(&b)
	return b.String()
}

// WriteTo writes the unified diff text of the patch to w.
func (p *Patch) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, p.String())
	return int64(n), err
}

func (p *Patch) writeTo(b *strings.Builder) {
	if p.Preamble != "" {
		b.WriteString(p.Preamble)
		b.WriteByte('\n')
	}
	fmt.Fprintf(b, "--- %s\n", formatPath(p.OldFile, "a/"))
	fmt.Fprintf(b, "+++ %s\n", formatPath(p.NewFile, "b/"))

	for i := range p.Chunks {
		p.Chunks[i].writeTo(b)
	}
}

// Header returns the "@@ -a,b +c,d @@" line for the chunk.
//
// Starts are printed 1-based. A range with zero lines prints its insertion
// point unchanged, matching GNU diff: "-3,0" means "after line 3".
func (c *Chunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", formatRange(c.OldStart, c.OldLines), formatRange(c.NewStart, c.NewLines))
}

func (c *Chunk) writeTo(b *strings.Builder) {
	b.WriteString(c.Header())
	b.WriteByte('\n')
	for _, op := range c.Operations {
		b.WriteByte(op.Kind.Prefix())
		b.WriteString(op.Text)
		b.WriteByte('\n')
	}
}

func formatRange(start, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", start)
	}
	return fmt.Sprintf("%d,%d", start+1, count)
}

func formatPath(path, prefix string) string {
	if path == DevNull {
		return path
	}
	return prefix + path
}
