// Package runner executes diffpatch commands and maps outcomes to exit
// codes.
package runner

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/donaldgifford/diffpatch/internal/config"
	"github.com/donaldgifford/diffpatch/internal/logging"
	"github.com/donaldgifford/diffpatch/pkg/diff"
	"github.com/donaldgifford/diffpatch/pkg/multipatch"
	"github.com/donaldgifford/diffpatch/pkg/patch"
	"github.com/donaldgifford/diffpatch/pkg/patcher"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitFailed = 1
	ExitError  = 2
)

// Commands.
const (
	CmdGenerate   = "generate"
	CmdApply      = "apply"
	CmdApplyMulti = "apply-multi"
)

// Options configures a single run. Zero values for Context, Algorithm,
// Workers and Color defer to the configuration file.
type Options struct {
	Command string

	OldPath    string
	NewPath    string
	PatchPath  string
	FilePath   string
	OutputPath string // "-" writes to stdout.
	Dir        string

	Context   *int
	Algorithm string
	Reverse   bool
	Check     bool
	DryRun    bool
	Workers   int

	ConfigPath string
	Color      string
	Quiet      bool
	Verbose    bool

	Stdout io.Writer
	Stderr io.Writer
}

// env is the resolved configuration for one run.
type env struct {
	opts   *Options
	cfg    *config.Config
	logger *zap.Logger
	pal    *palette
}

// Run executes the command and returns an exit code.
func Run(opts *Options) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	if err := applyOverrides(cfg, opts); err != nil {
		writeErr(opts.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}

	logger, cleanup, err := logging.New(cfg.Log, opts.Stderr)
	if err != nil {
		writeErr(opts.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	defer cleanup()

	e := &env{opts: opts, cfg: cfg, logger: logger, pal: newPalette(cfg.Output.Color)}

	switch opts.Command {
	case CmdGenerate:
		return e.generate()
	case CmdApply:
		return e.apply()
	case CmdApplyMulti:
		return e.applyMulti()
	default:
		writeErr(opts.Stderr, "diffpatch: unknown command %q\n", opts.Command)
		return ExitError
	}
}

// applyOverrides layers command-line options over the loaded config.
func applyOverrides(cfg *config.Config, opts *Options) error {
	if opts.Context != nil {
		cfg.Diff.ContextLines = *opts.Context
	}
	if opts.Algorithm != "" {
		switch opts.Command {
		case CmdGenerate:
			cfg.Diff.Algorithm = opts.Algorithm
		default:
			cfg.Apply.Algorithm = opts.Algorithm
		}
	}
	if opts.Reverse {
		cfg.Apply.Reverse = true
	}
	if opts.Dir != "" {
		cfg.Apply.RootDir = opts.Dir
	}
	if opts.Workers != 0 {
		cfg.Apply.Workers = opts.Workers
	}
	if opts.Color != "" {
		cfg.Output.Color = opts.Color
	}
	if opts.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg.Validate()
}

func (e *env) generate() int {
	o := e.opts
	if o.OldPath == "" || o.NewPath == "" {
		writeErr(o.Stderr, "diffpatch: generate requires --old and --new\n")
		return ExitError
	}
	oldText, err := readFile(o.OldPath)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	newText, err := readFile(o.NewPath)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}

	algo, err := diff.Lookup(e.cfg.Diff.Algorithm)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	d := diff.New(diff.WithAlgorithm(algo), diff.WithContext(e.cfg.Diff.ContextLines))
	p := d.Diff(filepath.ToSlash(o.OldPath), filepath.ToSlash(o.NewPath), oldText, newText)
	e.logger.Debug("generated patch",
		zap.String("algorithm", algo.Name()),
		zap.Int("context", e.cfg.Diff.ContextLines),
		zap.Int("chunks", len(p.Chunks)),
	)

	if o.Check {
		// Files differing only in the final newline produce no chunks.
		if oldText == newText {
			return ExitOK
		}
		if !o.Quiet {
			writeErr(o.Stderr, "%s and %s differ\n", o.OldPath, o.NewPath)
		}
		return ExitFailed
	}

	if o.OutputPath != "" && o.OutputPath != "-" {
		if err := writeFile(o.OutputPath, p.String()); err != nil {
			writeErr(o.Stderr, "diffpatch: %v\n", err)
			return ExitError
		}
		if !o.Quiet {
			writeErr(o.Stderr, "patch written to %s\n", o.OutputPath)
		}
		return ExitOK
	}

	e.pal.writePatch(o.Stdout, p.String())
	return ExitOK
}

func (e *env) apply() int {
	o := e.opts
	if o.PatchPath == "" || o.FilePath == "" {
		writeErr(o.Stderr, "diffpatch: apply requires --patch and --file\n")
		return ExitError
	}
	patchText, err := readFile(o.PatchPath)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	p, err := patch.Parse(patchText)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: parsing %s: %v\n", o.PatchPath, err)
		return ExitError
	}
	content, err := readFile(o.FilePath)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}

	algo, err := patcher.ParseAlgorithm(e.cfg.Apply.Algorithm)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	out, err := patcher.New(p, patcher.WithAlgorithm(algo), patcher.WithLogger(e.logger)).
		Apply(content, e.cfg.Apply.Reverse)
	if err != nil {
		e.pal.fail.Fprintf(o.Stderr, "failed to apply %s to %s: %v\n", o.PatchPath, o.FilePath, err)
		return ExitFailed
	}

	dest := o.OutputPath
	if dest == "" {
		dest = o.FilePath
	}
	if dest == "-" {
		writeOut(o.Stdout, out)
		return ExitOK
	}
	if err := writeFile(dest, out); err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	if !o.Quiet {
		e.pal.ok.Fprintf(o.Stderr, "patched %s\n", dest)
	}
	return ExitOK
}

func (e *env) applyMulti() int {
	o := e.opts
	if o.PatchPath == "" {
		writeErr(o.Stderr, "diffpatch: apply-multi requires --patch\n")
		return ExitError
	}
	patchText, err := readFile(o.PatchPath)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	mp, err := multipatch.Parse(patchText, e.logger)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: parsing %s: %v\n", o.PatchPath, err)
		return ExitError
	}

	algo, err := patcher.ParseAlgorithm(e.cfg.Apply.Algorithm)
	if err != nil {
		writeErr(o.Stderr, "diffpatch: %v\n", err)
		return ExitError
	}
	mpt := multipatch.NewPatcher(mp,
		multipatch.WithRoot(e.cfg.Apply.RootDir),
		multipatch.WithAlgorithm(algo),
		multipatch.WithWorkers(e.cfg.Apply.Workers),
		multipatch.WithLogger(e.logger),
	)

	var results []multipatch.ApplyResult
	if o.DryRun {
		results, err = mpt.Apply(e.cfg.Apply.Reverse)
	} else {
		results, err = mpt.ApplyAndWrite(e.cfg.Apply.Reverse)
	}

	if !o.Quiet {
		e.pal.writeResults(o.Stdout, results, o.DryRun)
	}
	if err != nil {
		return ExitFailed
	}
	return ExitOK
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
