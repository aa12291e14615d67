package diff

import "github.com/donaldgifford/diffpatch/pkg/patch"

// unit is one line of an expanded edit script, with the old and new
// positions in effect before it.
type unit struct {
	kind   ChangeKind
	oldPos int
	newPos int
}

// region represents a contiguous range of changed units.
type region struct{ start, end int }

// Assemble converts an edit script into chunks with up to context lines of
// surrounding context. Changes separated by at most 2*context equal lines
// share a chunk.
func Assemble(changes []Change, oldLines, newLines []string, context int) []patch.Chunk {
	context = max(context, 0)
	units := expand(changes, len(oldLines), len(newLines))
	regions := mergeRegions(findChangeRegions(units), context)

	chunks := make([]patch.Chunk, 0, len(regions))
	for _, r := range regions {
		start := max(r.start-context, 0)
		end := min(r.end+context, len(units)-1)
		chunks = append(chunks, buildChunk(units[start:end+1], oldLines, newLines))
	}
	return chunks
}

// expand flattens changes into one unit per line, tracking positions. The
// positions are derived from the walk itself, so a Delete or Insert needs
// no counterpart index.
func expand(changes []Change, n, m int) []unit {
	units := make([]unit, 0, max(n, m))
	oldPos, newPos := 0, 0
	for _, c := range changes {
		switch c.Kind {
		case ChangeEqual:
			units = append(units, unit{kind: ChangeEqual, oldPos: oldPos, newPos: newPos})
			oldPos++
			newPos++
		case ChangeDelete:
			for range c.Count {
				units = append(units, unit{kind: ChangeDelete, oldPos: oldPos, newPos: newPos})
				oldPos++
			}
		case ChangeInsert:
			for range c.Count {
				units = append(units, unit{kind: ChangeInsert, oldPos: oldPos, newPos: newPos})
				newPos++
			}
		}
	}
	if oldPos != n || newPos != m {
		panic("diff: edit script does not cover input")
	}
	return units
}

// findChangeRegions identifies contiguous ranges of non-equal units.
func findChangeRegions(units []unit) []region {
	var regions []region
	for i, u := range units {
		if u.kind == ChangeEqual {
			continue
		}
		if len(regions) == 0 || i > regions[len(regions)-1].end+1 {
			regions = append(regions, region{start: i, end: i})
		} else {
			regions[len(regions)-1].end = i
		}
	}
	return regions
}

// mergeRegions combines regions whose equal gap is at most 2*context lines,
// so their contexts would touch or overlap.
func mergeRegions(regions []region, context int) []region {
	var merged []region
	for _, r := range regions {
		if len(merged) > 0 && r.start-merged[len(merged)-1].end-1 <= 2*context {
			merged[len(merged)-1].end = r.end
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// buildChunk emits the operations for a window of units. Counts are taken
// from the emitted operations.
func buildChunk(units []unit, oldLines, newLines []string) patch.Chunk {
	c := patch.Chunk{
		OldStart:   units[0].oldPos,
		NewStart:   units[0].newPos,
		Operations: make([]patch.Operation, 0, len(units)),
	}
	for _, u := range units {
		switch u.kind {
		case ChangeEqual:
			c.Operations = append(c.Operations, patch.Context(oldLines[u.oldPos]))
			c.OldLines++
			c.NewLines++
		case ChangeDelete:
			c.Operations = append(c.Operations, patch.Remove(oldLines[u.oldPos]))
			c.OldLines++
		case ChangeInsert:
			c.Operations = append(c.Operations, patch.Add(newLines[u.newPos]))
			c.NewLines++
		}
	}
	return c
}
