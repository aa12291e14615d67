package patch

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// timestampRe matches a space-separated timestamp trailing a file header
// path, e.g. "2024-03-01 10:00:00.000000000 +0100".
var timestampRe = regexp.MustCompile(
	`\s+\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:\s*(?:[+-]\d{4}|Z))?\s*$`,
)

// Parse reconstructs a single-file Patch from unified diff text.
//
// Header lines other than "---", "+++" and "@@" (index, mode, similarity)
// are skipped. The first "diff ..." line is kept as the preamble. Chunk
// bodies are read according to the counts in their header and validated
// against them.
func Parse(text string) (*Patch, error) {
	p := &parser{lines: SplitLines(text)}
	return p.parse()
}

// parser tracks position across lines.
type parser struct {
	lines  []string
	pos    int
	patch  Patch
	sawOld bool
	sawNew bool
}

func (p *parser) parse() (*Patch, error) {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		if !p.sawNew {
			if err := p.parseHeaderLine(line); err != nil {
				return nil, err
			}
			p.pos++
			continue
		}

		switch {
		case strings.HasPrefix(line, "@@"):
			c, err := p.parseChunk()
			if err != nil {
				return nil, err
			}
			p.patch.Chunks = append(p.patch.Chunks, c)
		case line == "", strings.HasPrefix(line, `\`):
			p.pos++
		case strings.HasPrefix(line, "diff "), p.isFileHeader():
			return nil, p.errorf("unexpected second file section; parse multi-file diffs with multipatch.Parse")
		default:
			return nil, p.errorf("unexpected line %q outside of a chunk", line)
		}
	}

	if !p.sawOld || !p.sawNew {
		return nil, &FormatError{Reason: "missing --- / +++ file headers"}
	}
	return &p.patch, nil
}

func (p *parser) parseHeaderLine(line string) error {
	switch {
	case strings.HasPrefix(line, "diff "):
		if p.sawOld {
			return p.errorf("unexpected %q between file headers", line)
		}
		if p.patch.Preamble == "" {
			p.patch.Preamble = line
		}
	case strings.HasPrefix(line, "--- "):
		if p.sawOld {
			return p.errorf("duplicate --- header")
		}
		p.patch.OldFile = parsePath(line[len("--- "):], "a/")
		p.sawOld = true
	case strings.HasPrefix(line, "+++ "):
		if !p.sawOld {
			return p.errorf("+++ header without preceding --- header")
		}
		p.patch.NewFile = parsePath(line[len("+++ "):], "b/")
		p.sawNew = true
	case strings.HasPrefix(line, "@@"):
		return p.errorf("chunk header before file headers")
	}
	return nil
}

// parseChunk reads a chunk header and its body, leaving pos on the first
// line after the chunk.
func (p *parser) parseChunk() (Chunk, error) {
	header := p.lines[p.pos]
	c, err := parseChunkHeader(header)
	if err != nil {
		return Chunk{}, err
	}
	p.pos++

	var oldSeen, newSeen int
	for ; p.pos < len(p.lines); p.pos++ {
		line := p.lines[p.pos]
		if strings.HasPrefix(line, "@@") || strings.HasPrefix(line, "diff ") {
			break
		}
		// Once the declared counts are met, a blank line or a new file
		// header ends the chunk.
		if oldSeen >= c.OldLines && newSeen >= c.NewLines && (line == "" || p.isFileHeader()) {
			break
		}

		var op Operation
		switch {
		case line == "":
			// Editors strip the lone space of an empty context line.
			op = Context("")
		case line[0] == '\\':
			continue
		case line[0] == ' ':
			op = Context(line[1:])
		case line[0] == '-':
			op = Remove(line[1:])
		case line[0] == '+':
			op = Add(line[1:])
		default:
			return Chunk{}, p.errorf("invalid line prefix in chunk body: %q", line)
		}

		switch op.Kind {
		case OpContext:
			oldSeen++
			newSeen++
		case OpRemove:
			oldSeen++
		case OpAdd:
			newSeen++
		}
		c.Operations = append(c.Operations, op)
	}

	if oldSeen != c.OldLines || newSeen != c.NewLines {
		return Chunk{}, &CountMismatchError{
			Header:      header,
			DeclaredOld: c.OldLines,
			DeclaredNew: c.NewLines,
			ObservedOld: oldSeen,
			ObservedNew: newSeen,
		}
	}
	return c, nil
}

// isFileHeader reports whether pos starts a "---" / "+++" header pair.
func (p *parser) isFileHeader() bool {
	return strings.HasPrefix(p.lines[p.pos], "--- ") &&
		p.pos+1 < len(p.lines) &&
		strings.HasPrefix(p.lines[p.pos+1], "+++ ")
}

func (p *parser) errorf(format string, args ...any) error {
	return &FormatError{Line: p.pos + 1, Reason: fmt.Sprintf(format, args...)}
}

// parseChunkHeader parses "@@ -l[,s] +l[,s] @@[ section]".
func parseChunkHeader(line string) (Chunk, error) {
	rest, ok := strings.CutPrefix(line, "@@ ")
	if !ok {
		return Chunk{}, &ChunkHeaderError{Header: line, Reason: "missing leading @@"}
	}
	ranges, _, ok := strings.Cut(rest, " @@")
	if !ok {
		return Chunk{}, &ChunkHeaderError{Header: line, Reason: "missing closing @@"}
	}

	fields := strings.Fields(ranges)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "-") || !strings.HasPrefix(fields[1], "+") {
		return Chunk{}, &ChunkHeaderError{Header: line, Reason: "expected -old and +new ranges"}
	}

	var c Chunk
	var err error
	if c.OldStart, c.OldLines, err = parseRange(line, fields[0][1:]); err != nil {
		return Chunk{}, err
	}
	if c.NewStart, c.NewLines, err = parseRange(line, fields[1][1:]); err != nil {
		return Chunk{}, err
	}
	return c, nil
}

// parseRange converts a 1-based "start[,count]" range to a 0-based start.
// A missing count is 1, or 0 when start is 0. A zero-count range keeps its
// start as the insertion point.
func parseRange(header, s string) (start, count int, err error) {
	startStr, countStr, hasCount := strings.Cut(s, ",")
	n, err := parseNumber(startStr)
	if err != nil {
		return 0, 0, err
	}

	count = 1
	if n == 0 {
		count = 0
	}
	if hasCount {
		if count, err = parseNumber(countStr); err != nil {
			return 0, 0, err
		}
	}

	switch {
	case count == 0:
		return n, 0, nil
	case n == 0:
		return 0, 0, &ChunkHeaderError{Header: header, Reason: fmt.Sprintf("range %q starts at 0 but has %d lines", s, count)}
	default:
		return n - 1, count, nil
	}
}

var errNotDigits = errors.New("not an unsigned decimal integer")

func parseNumber(s string) (int, error) {
	if s == "" || strings.TrimLeft(s, "0123456789") != "" {
		return 0, &NumberFormatError{Value: s, Err: errNotDigits}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &NumberFormatError{Value: s, Err: err}
	}
	return n, nil
}

// parsePath extracts the path from a "---"/"+++" header value, dropping a
// tab- or space-separated timestamp and the a/ or b/ prefix.
func parsePath(s, prefix string) string {
	if i := strings.IndexByte(s, '\t'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(timestampRe.ReplaceAllString(s, ""))
	if s == DevNull {
		return s
	}
	return strings.TrimPrefix(s, prefix)
}
