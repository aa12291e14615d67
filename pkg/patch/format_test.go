package patch

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkHeader(t *testing.T) {
	tests := []struct {
		name  string
		chunk Chunk
		want  string
	}{
		{"single line", Chunk{OldStart: 0, OldLines: 1, NewStart: 0, NewLines: 1}, "@@ -1,1 +1,1 @@"},
		{"offset", Chunk{OldStart: 9, OldLines: 7, NewStart: 11, NewLines: 6}, "@@ -10,7 +12,6 @@"},
		{"insertion into empty", Chunk{OldStart: 0, OldLines: 0, NewStart: 0, NewLines: 2}, "@@ -0,0 +1,2 @@"},
		{"pure insertion after line 3", Chunk{OldStart: 3, OldLines: 0, NewStart: 3, NewLines: 1}, "@@ -3,0 +4,1 @@"},
		{"deletion of whole file", Chunk{OldStart: 0, OldLines: 2, NewStart: 0, NewLines: 0}, "@@ -1,2 +0,0 @@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chunk.Header())
		})
	}
}

func TestPatchString(t *testing.T) {
	p := &Patch{
		OldFile: "main.go",
		NewFile: "main.go",
		Chunks: []Chunk{{
			OldStart: 0, OldLines: 3, NewStart: 0, NewLines: 3,
			Operations: []Operation{Context("a"), Remove("b"), Add("B"), Context("c")},
		}},
	}

	want := "--- a/main.go\n" +
		"+++ b/main.go\n" +
		"@@ -1,3 +1,3 @@\n" +
		" a\n" +
		"-b\n" +
		"+B\n" +
		" c\n"
	assert.Equal(t, want, p.String())
}

func TestPatchStringPreambleAndDevNull(t *testing.T) {
	p := &Patch{
		Preamble: "diff --git a/new.txt b/new.txt",
		OldFile:  DevNull,
		NewFile:  "new.txt",
		Chunks: []Chunk{{
			NewLines:   1,
			Operations: []Operation{Add("hello")},
		}},
	}

	want := "diff --git a/new.txt b/new.txt\n" +
		"--- /dev/null\n" +
		"+++ b/new.txt\n" +
		"@@ -0,0 +1,1 @@\n" +
		"+hello\n"
	assert.Equal(t, want, p.String())
}

func TestPatchStringNoChunks(t *testing.T) {
	p := &Patch{OldFile: "x", NewFile: "x"}
	assert.Equal(t, "--- a/x\n+++ b/x\n", p.String())
}

func TestPatchWriteTo(t *testing.T) {
	p := &Patch{
		OldFile: "f",
		NewFile: "f",
		Chunks:  []Chunk{{OldLines: 1, NewLines: 1, Operations: []Operation{Remove("x"), Add("y")}}},
	}

	var buf bytes.Buffer
	n, err := p.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, p.String(), buf.String())
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, " same", Context("same").String())
	assert.Equal(t, "+new", Add("new").String())
	assert.Equal(t, "-old", Remove("old").String())
	assert.Equal(t, "+", Add("").String())
}

func TestChunkCounts(t *testing.T) {
	c := Chunk{Operations: []Operation{Context("a"), Remove("b"), Remove("c"), Add("d"), Context("e")}}
	oldLines, newLines := c.Counts()
	assert.Equal(t, 4, oldLines)
	assert.Equal(t, 3, newLines)
}

func TestChunkAnchor(t *testing.T) {
	c := Chunk{Operations: []Operation{Context("a"), Context("b"), Remove("c"), Context("d")}}
	assert.Equal(t, []string{"a", "b"}, c.Anchor())

	c = Chunk{Operations: []Operation{Add("x"), Context("y")}}
	assert.Empty(t, c.Anchor())
}

func TestPatchReversed(t *testing.T) {
	p := &Patch{
		Preamble: "diff --git a/f b/f",
		OldFile:  "old.txt",
		NewFile:  "new.txt",
		Chunks: []Chunk{{
			OldStart: 2, OldLines: 2, NewStart: 4, NewLines: 3,
			Operations: []Operation{Context("a"), Remove("b"), Add("c"), Add("d")},
		}},
	}

	r := p.Reversed()
	assert.Equal(t, "new.txt", r.OldFile)
	assert.Equal(t, "old.txt", r.NewFile)
	assert.Equal(t, p.Preamble, r.Preamble)
	require.Len(t, r.Chunks, 1)
	assert.Equal(t, Chunk{
		OldStart: 4, OldLines: 3, NewStart: 2, NewLines: 2,
		Operations: []Operation{Context("a"), Add("b"), Remove("c"), Remove("d")},
	}, r.Chunks[0])

	// The original is untouched.
	assert.Equal(t, Remove("b"), p.Chunks[0].Operations[1])

	assert.Equal(t, p.String(), r.Reversed().String())
}

func TestPatchKinds(t *testing.T) {
	assert.True(t, (&Patch{OldFile: DevNull, NewFile: "a"}).IsCreation())
	assert.True(t, (&Patch{OldFile: "a", NewFile: DevNull}).IsDeletion())
	assert.True(t, (&Patch{OldFile: "a", NewFile: "a"}).IsEmpty())
	assert.False(t, (&Patch{OldFile: "a", NewFile: "a"}).IsCreation())
}
