package runner

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/donaldgifford/diffpatch/internal/config"
	"github.com/donaldgifford/diffpatch/pkg/multipatch"
)

// palette colors terminal output. Each color honors the configured mode.
type palette struct {
	add    *color.Color
	remove *color.Color
	hunk   *color.Color
	header *color.Color

	ok      *color.Color
	deleted *color.Color
	skipped *color.Color
	fail    *color.Color
}

func newPalette(mode string) *palette {
	p := &palette{
		add:     color.New(color.FgGreen),
		remove:  color.New(color.FgRed),
		hunk:    color.New(color.FgCyan),
		header:  color.New(color.Bold),
		ok:      color.New(color.FgGreen),
		deleted: color.New(color.FgYellow),
		skipped: color.New(color.FgBlue),
		fail:    color.New(color.FgRed),
	}
	for _, c := range p.all() {
		switch mode {
		case config.ColorAlways:
			c.EnableColor()
		case config.ColorNever:
			c.DisableColor()
		}
	}
	return p
}

func (p *palette) all() []*color.Color {
	return []*color.Color{p.add, p.remove, p.hunk, p.header, p.ok, p.deleted, p.skipped, p.fail}
}

// writePatch writes patch text line by line, colored by line kind.
func (p *palette) writePatch(w io.Writer, text string) {
	for line := range strings.SplitAfterSeq(text, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "diff "),
			strings.HasPrefix(line, "--- "),
			strings.HasPrefix(line, "+++ "):
			p.header.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			p.hunk.Fprint(w, line)
		case strings.HasPrefix(line, "+"):
			p.add.Fprint(w, line)
		case strings.HasPrefix(line, "-"):
			p.remove.Fprint(w, line)
		default:
			fmt.Fprint(w, line)
		}
	}
}

// writeResults prints one line per file followed by the summary.
func (p *palette) writeResults(w io.Writer, results []multipatch.ApplyResult, dryRun bool) {
	for _, r := range results {
		c := p.colorFor(r.Kind)
		switch r.Kind {
		case multipatch.Failed:
			c.Fprintf(w, "%-8s %s: %v\n", r.Kind, r.Path, r.Err)
		case multipatch.Skipped:
			c.Fprintf(w, "%-8s %s (%s)\n", r.Kind, r.Path, r.Reason)
		default:
			label := r.Kind.String()
			if r.File != nil && r.File.IsNew {
				label = "created"
			}
			c.Fprintf(w, "%-8s %s\n", label, r.Path)
		}
	}

	s := multipatch.Summarize(results)
	suffix := ""
	if dryRun {
		suffix = " (dry run)"
	}
	fmt.Fprintf(w, "%s%s\n", s, suffix)
}

func (p *palette) colorFor(k multipatch.ResultKind) *color.Color {
	switch k {
	case multipatch.Failed:
		return p.fail
	case multipatch.Deleted:
		return p.deleted
	case multipatch.Skipped:
		return p.skipped
	default:
		return p.ok
	}
}
