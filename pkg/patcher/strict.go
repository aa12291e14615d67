package patcher

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"

	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// applyStrict applies the patch with go-gitdiff, which requires every
// fragment at its recorded position with byte-identical lines.
func applyStrict(p *patch.Patch, content string, reverse bool) (string, error) {
	f := &gitdiff.File{OldName: p.OldFile, NewName: p.NewFile}
	for i := range p.Chunks {
		c := p.Chunks[i]
		if reverse {
			c = c.Reversed()
		}
		f.TextFragments = append(f.TextFragments, toFragment(&c))
	}

	src := content
	if src != "" && !strings.HasSuffix(src, "\n") {
		src += "\n"
	}

	var out bytes.Buffer
	if err := gitdiff.Apply(&out, strings.NewReader(src), f); err != nil {
		return "", strictError(err)
	}

	result := out.String()
	if !strings.HasSuffix(content, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result, nil
}

// toFragment converts a chunk to a git text fragment.
//
// gitdiff treats position 0 as file creation and positions a fragment at
// OldPosition-1, so the 0-based insertion point maps to OldStart+1 for
// every range, including empty ones.
func toFragment(c *patch.Chunk) *gitdiff.TextFragment {
	frag := &gitdiff.TextFragment{
		OldPosition: int64(c.OldStart) + 1,
		NewPosition: int64(c.NewStart) + 1,
		Lines:       make([]gitdiff.Line, 0, len(c.Operations)),
	}
	for _, op := range c.Operations {
		line := gitdiff.Line{Line: op.Text + "\n"}
		switch op.Kind {
		case patch.OpContext:
			line.Op = gitdiff.OpContext
			frag.OldLines++
			frag.NewLines++
			if frag.LinesAdded == 0 && frag.LinesDeleted == 0 {
				frag.LeadingContext++
			} else {
				frag.TrailingContext++
			}
		case patch.OpAdd:
			line.Op = gitdiff.OpAdd
			frag.NewLines++
			frag.LinesAdded++
			frag.TrailingContext = 0
		case patch.OpRemove:
			line.Op = gitdiff.OpDelete
			frag.OldLines++
			frag.LinesDeleted++
			frag.TrailingContext = 0
		}
		frag.Lines = append(frag.Lines, line)
	}
	return frag
}

func strictError(err error) error {
	var ae *gitdiff.ApplyError
	if !errors.As(err, &ae) {
		return fmt.Errorf("%w: %w", patch.ErrApply, err)
	}
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &patch.LineNotFoundError{Line: int(ae.Line)}
	case errors.Is(err, &gitdiff.Conflict{}):
		return &patch.ApplyError{Chunk: ae.Fragment, Line: int(ae.Line), Reason: ae.Error()}
	default:
		return fmt.Errorf("%w: %w", patch.ErrApply, err)
	}
}
