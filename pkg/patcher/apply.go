package patcher

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// state is the cursor carried across chunks: pos indexes the first source
// line not yet copied or consumed.
type state struct {
	src []string
	out []string
	pos int
}

// applyChunk locates c and applies its operations. idx is the 0-based
// chunk index used in errors and logs.
func (p *Patcher) applyChunk(st *state, m *matcher, idx int, c *patch.Chunk) error {
	s := newSearch(st.src, c.Anchor(), c.OldStart, st.pos, p.searchRange, m)
	start, strategy, ok := locate(s, cascade(m))
	if !ok {
		return &patch.ApplyError{Chunk: idx + 1, Line: c.OldStart + 1, Reason: "cannot locate hunk"}
	}
	p.logger.Debug("located chunk",
		zap.Int("chunk", idx+1),
		zap.String("strategy", strategy),
		zap.Int("expected", c.OldStart+1),
		zap.Int("actual", start+1),
		zap.Int("offset", start-c.OldStart),
	)

	st.out = append(st.out, st.src[st.pos:start]...)
	pos := start
	for _, op := range c.Operations {
		if op.Kind == patch.OpAdd {
			st.out = append(st.out, op.Text)
			continue
		}

		if pos >= len(st.src) {
			return &patch.LineNotFoundError{Line: pos + 1}
		}
		line := st.src[pos]
		if !m.verify(line, op.Text) {
			return &patch.ApplyError{
				Chunk:  idx + 1,
				Line:   pos + 1,
				Reason: fmt.Sprintf("%s line mismatch: expected %q, found %q", op.Kind, op.Text, line),
			}
		}
		if op.Kind == patch.OpContext {
			// Keep the content's own version of the line.
			st.out = append(st.out, line)
		}
		pos++
	}
	st.pos = pos
	return nil
}
