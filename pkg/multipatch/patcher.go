package multipatch

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/diffpatch/pkg/patch"
	"github.com/donaldgifford/diffpatch/pkg/patcher"
)

// ErrOutsideRoot is returned for patch paths that resolve outside the root
// directory.
var ErrOutsideRoot = errors.New("path escapes root directory")

// Patcher applies every patch of a MultifilePatch. Files are independent:
// a failure is reported for its file and never stops the others.
type Patcher struct {
	mp        *MultifilePatch
	root      string
	fs        FS
	algorithm patcher.Algorithm
	workers   int
	logger    *zap.Logger
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithRoot resolves patch paths against dir.
func WithRoot(dir string) Option {
	return func(p *Patcher) {
		if dir != "" {
			p.root = filepath.Clean(dir)
		}
	}
}

// WithFS replaces the local filesystem.
func WithFS(fsys FS) Option {
	return func(p *Patcher) { p.fs = fsys }
}

// WithAlgorithm selects the per-file patch algorithm.
func WithAlgorithm(a patcher.Algorithm) Option {
	return func(p *Patcher) { p.algorithm = a }
}

// WithWorkers sets how many files are processed concurrently. Values below
// 1 mean sequential processing.
func WithWorkers(n int) Option {
	return func(p *Patcher) { p.workers = max(n, 1) }
}

// WithLogger sets the logger for per-file outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(p *Patcher) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPatcher returns a Patcher for mp.
func NewPatcher(mp *MultifilePatch, opts ...Option) *Patcher {
	p := &Patcher{
		mp:        mp,
		fs:        OSFS{},
		algorithm: patcher.Fuzzy,
		workers:   1,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply computes the result for every patch without touching the
// filesystem beyond reading sources. Results are in patch order. The error
// is non-nil only if at least one file failed.
func (p *Patcher) Apply(reverse bool) ([]ApplyResult, error) {
	results := make([]ApplyResult, len(p.mp.Patches))
	p.each(len(results), func(i int) {
		results[i] = p.applyOne(p.mp.Patches[i], reverse)
		p.logResult(results[i])
	})
	return results, Summarize(results).Err()
}

// ApplyAndWrite applies every patch and performs the filesystem changes:
// applied files are written (creating parent directories) and deleted files
// are removed. An I/O failure turns that file's result into Failed.
func (p *Patcher) ApplyAndWrite(reverse bool) ([]ApplyResult, error) {
	results := make([]ApplyResult, len(p.mp.Patches))
	p.each(len(results), func(i int) {
		r := p.applyOne(p.mp.Patches[i], reverse)
		results[i] = p.write(r)
		p.logResult(results[i])
	})
	return results, Summarize(results).Err()
}

// each runs fn for 0..n-1 with at most p.workers in flight.
func (p *Patcher) each(n int, fn func(i int)) {
	if p.workers <= 1 || n <= 1 {
		for i := range n {
			fn(i)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := range n {
		g.Go(func() error {
			fn(i)
			return nil
		})
	}
	_ = g.Wait() // fn reports failures through results.
}

func (p *Patcher) applyOne(fp *patch.Patch, reverse bool) ApplyResult {
	source, target := fp.OldFile, fp.NewFile
	if reverse {
		source, target = target, source
	}
	isNew := source == patch.DevNull
	isDelete := target == patch.DevNull

	if isNew && isDelete {
		return failed(patch.DevNull, &patch.FormatError{Reason: "both file paths are " + patch.DevNull})
	}

	var sourcePath string
	var content string
	if !isNew {
		var err error
		if sourcePath, err = p.resolve(source); err != nil {
			return failed(source, err)
		}
		data, err := p.fs.ReadFile(sourcePath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			if reverse && isDelete {
				return skipped(sourcePath, "file already absent")
			}
			return failed(sourcePath, &patch.FileNotFoundError{Path: sourcePath, Err: err})
		case err != nil:
			return failed(sourcePath, fmt.Errorf("reading %s: %w", sourcePath, err))
		}
		content = string(data)
	}

	targetPath := sourcePath
	if !isDelete {
		var err error
		if targetPath, err = p.resolve(target); err != nil {
			return failed(target, err)
		}
	}

	out, err := patcher.New(fp,
		patcher.WithAlgorithm(p.algorithm),
		patcher.WithLogger(p.logger.With(zap.String("file", targetPath))),
	).Apply(content, reverse)
	if err != nil {
		return failed(targetPath, err)
	}

	if isDelete {
		return deleted(sourcePath)
	}
	if isNew && out != "" {
		// Empty source content carries no newline convention; created
		// files end with one.
		out += "\n"
	}
	return applied(&PatchedFile{Path: targetPath, Content: out, IsNew: isNew})
}

// write performs the filesystem side effect of r.
func (p *Patcher) write(r ApplyResult) ApplyResult {
	switch r.Kind {
	case Applied:
		if dir := filepath.Dir(r.File.Path); dir != "." {
			if err := p.fs.MkdirAll(dir); err != nil {
				return failed(r.Path, fmt.Errorf("creating directory %s: %w", dir, err))
			}
		}
		if err := p.fs.WriteFile(r.File.Path, []byte(r.File.Content)); err != nil {
			return failed(r.Path, fmt.Errorf("writing %s: %w", r.File.Path, err))
		}
	case Deleted:
		if p.fs.Exists(r.Path) {
			if err := p.fs.Remove(r.Path); err != nil {
				return failed(r.Path, fmt.Errorf("removing %s: %w", r.Path, err))
			}
		}
	}
	return r
}

// resolve maps a patch path onto the filesystem. With a root set, the
// result must stay inside it.
func (p *Patcher) resolve(path string) (string, error) {
	if p.root == "" {
		return filepath.FromSlash(path), nil
	}

	full := filepath.FromSlash(path)
	if !filepath.IsAbs(full) {
		full = filepath.Join(p.root, full)
	}
	full = filepath.Clean(full)

	rel, err := filepath.Rel(p.root, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s (root %s)", ErrOutsideRoot, path, p.root)
	}
	return full, nil
}

func (p *Patcher) logResult(r ApplyResult) {
	fields := []zap.Field{zap.String("path", r.Path), zap.Stringer("result", r.Kind)}
	switch r.Kind {
	case Failed:
		p.logger.Warn("patch failed", append(fields, zap.Error(r.Err))...)
	case Skipped:
		p.logger.Info("patch skipped", append(fields, zap.String("reason", r.Reason))...)
	default:
		p.logger.Debug("patch applied", fields...)
	}
}
