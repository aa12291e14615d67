package patch

import "strings"

// SplitLines splits text into lines on "\n". A final newline does not
// produce a trailing empty element, and an empty string produces no lines.
// Carriage returns are kept as part of the line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// JoinLines joins lines with "\n", appending a final newline when
// trailingNewline is set and there is at least one line.
func JoinLines(lines []string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	s := strings.Join(lines, "\n")
	if trailingNewline {
		s += "\n"
	}
	return s
}
