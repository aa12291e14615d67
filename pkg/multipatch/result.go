package multipatch

import (
	"errors"
	"fmt"
)

// ErrFilesFailed is wrapped by the aggregate error returned when at least
// one file failed.
var ErrFilesFailed = errors.New("one or more files failed to patch")

// ResultKind classifies the outcome for one file.
type ResultKind int

const (
	// Applied means the patch produced new content for File.
	Applied ResultKind = iota
	// Deleted means the patch removes Path.
	Deleted
	// Skipped means there was nothing to do; Reason explains why.
	Skipped
	// Failed means the patch could not be applied to Path; see Err.
	Failed
)

func (k ResultKind) String() string {
	switch k {
	case Applied:
		return "applied"
	case Deleted:
		return "deleted"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("ResultKind(%d)", int(k))
	}
}

// PatchedFile is the content produced for one file.
type PatchedFile struct {
	Path      string
	Content   string
	IsNew     bool
	IsDeleted bool
}

// ApplyResult is the outcome for one patch.
type ApplyResult struct {
	Kind   ResultKind
	File   *PatchedFile // Set for Applied and Deleted.
	Path   string       // Resolved path the result refers to.
	Reason string       // Set for Skipped.
	Err    error        // Set for Failed.
}

func applied(f *PatchedFile) ApplyResult {
	return ApplyResult{Kind: Applied, File: f, Path: f.Path}
}

func deleted(path string) ApplyResult {
	return ApplyResult{Kind: Deleted, File: &PatchedFile{Path: path, IsDeleted: true}, Path: path}
}

func skipped(path, reason string) ApplyResult {
	return ApplyResult{Kind: Skipped, Path: path, Reason: reason}
}

func failed(path string, err error) ApplyResult {
	return ApplyResult{Kind: Failed, Path: path, Err: err}
}

// Summary counts results by kind.
type Summary struct {
	Applied int
	Deleted int
	Skipped int
	Failed  int
	errs    []error
}

// Summarize counts results and collects the failures.
func Summarize(results []ApplyResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Kind {
		case Applied:
			s.Applied++
		case Deleted:
			s.Deleted++
		case Skipped:
			s.Skipped++
		case Failed:
			s.Failed++
			s.errs = append(s.errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return s
}

// Total returns the number of results counted.
func (s Summary) Total() int {
	return s.Applied + s.Deleted + s.Skipped + s.Failed
}

func (s Summary) String() string {
	return fmt.Sprintf("%d applied, %d deleted, %d skipped, %d failed",
		s.Applied, s.Deleted, s.Skipped, s.Failed)
}

// Err returns nil when no file failed, otherwise an error wrapping
// ErrFilesFailed and every per-file error.
func (s Summary) Err() error {
	if s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d: %w", ErrFilesFailed, s.Failed, s.Total(), errors.Join(s.errs...))
}
