// Package multipatch splits concatenated diffs into per-file patches and
// applies them to a directory tree.
package multipatch

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/donaldgifford/diffpatch/pkg/patch"
)

// MultifilePatch is an ordered list of independent single-file patches.
type MultifilePatch struct {
	Patches []*patch.Patch
}

// section is the raw text of one file's diff and its 1-based first line.
type section struct {
	line int
	text string
}

// Parse splits content into one section per line starting with "diff " and
// parses each. Text before the first such line is ignored. When no such
// line exists, each "---" line directly followed by "+++" starts a section.
//
// A section that fails to parse is skipped with a warning on logger. Parse
// fails only when no section parses.
func Parse(content string, logger *zap.Logger) (*MultifilePatch, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	sections := splitSections(patch.SplitLines(content))
	if len(sections) == 0 {
		return nil, &patch.FormatError{Reason: "no file sections found"}
	}

	mp := &MultifilePatch{}
	var errs []error
	for _, sec := range sections {
		p, err := patch.Parse(sec.text)
		if err != nil {
			logger.Warn("skipping malformed patch section",
				zap.Int("line", sec.line),
				zap.Error(err),
			)
			errs = append(errs, fmt.Errorf("section at line %d: %w", sec.line, err))
			continue
		}
		mp.Patches = append(mp.Patches, p)
	}

	if len(mp.Patches) == 0 {
		return nil, fmt.Errorf("all %d patch sections failed to parse: %w", len(sections), errors.Join(errs...))
	}
	return mp, nil
}

func splitSections(lines []string) []section {
	starts := sectionStarts(lines, func(i int) bool {
		return strings.HasPrefix(lines[i], "diff ")
	})
	if len(starts) == 0 {
		starts = sectionStarts(lines, func(i int) bool {
			return strings.HasPrefix(lines[i], "--- ") &&
				i+1 < len(lines) &&
				strings.HasPrefix(lines[i+1], "+++ ")
		})
	}

	sections := make([]section, 0, len(starts))
	for k, start := range starts {
		end := len(lines)
		if k+1 < len(starts) {
			end = starts[k+1]
		}
		sections = append(sections, section{
			line: start + 1,
			text: patch.JoinLines(lines[start:end], true),
		})
	}
	return sections
}

func sectionStarts(lines []string, isStart func(int) bool) []int {
	var starts []int
	for i := range lines {
		if isStart(i) {
			starts = append(starts, i)
		}
	}
	return starts
}

// String renders all patches. A patch without a preamble gets a
// "diff --git" line so that the output splits back into the same sections.
func (m *MultifilePatch) String() string {
	var b strings.Builder
	for _, p := range m.Patches {
		if p.Preamble == "" {
			q := *p
			q.Preamble = gitPreamble(p)
			p = &q
		}
		b.WriteString(p.String())
	}
	return b.String()
}

func gitPreamble(p *patch.Patch) string {
	oldName, newName := p.OldFile, p.NewFile
	if oldName == patch.DevNull {
		oldName = newName
	}
	if newName == patch.DevNull {
		newName = oldName
	}
	return fmt.Sprintf("diff --git a/%s b/%s", oldName, newName)
}
