// Package main is the entry point for diffpatch.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/donaldgifford/diffpatch/internal/runner"
)

// Build-time variables set via ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalFlags are accepted by every subcommand.
type globalFlags struct {
	configPath string
	color      string
	quiet      bool
	verbose    bool
}

func (g *globalFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&g.configPath, "config", "", "path to config file")
	fs.StringVar(&g.color, "color", "", "color output: auto, always or never")
	fs.BoolVar(&g.quiet, "q", false, "suppress informational output")
	fs.BoolVar(&g.verbose, "v", false, "enable debug logging")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return runner.ExitError
	}

	switch args[0] {
	case "-version", "--version", "version":
		fmt.Fprintf(stdout, "diffpatch %s (%s) %s\n", version, commit, date)
		return runner.ExitOK
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return runner.ExitOK
	}

	opts, err := parseCommand(args[0], args[1:], stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return runner.ExitOK
		}
		fmt.Fprintf(stderr, "diffpatch: %v\n", err)
		return runner.ExitError
	}
	opts.Stdout = stdout
	opts.Stderr = stderr
	return runner.Run(opts)
}

func parseCommand(cmd string, args []string, stderr io.Writer) (*runner.Options, error) {
	fs := flag.NewFlagSet("diffpatch "+cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var g globalFlags
	g.register(fs)
	opts := &runner.Options{Command: cmd}

	var context int
	switch cmd {
	case runner.CmdGenerate:
		fs.StringVar(&opts.OldPath, "old", "", "original file")
		fs.StringVar(&opts.NewPath, "new", "", "modified file")
		fs.StringVar(&opts.OutputPath, "output", "", "write the patch to this file instead of stdout")
		fs.IntVar(&context, "context", 0, "context lines around each change (default from config)")
		fs.StringVar(&opts.Algorithm, "algorithm", "", "diff algorithm: myers, lcs, xdiff, naive or dmp")
		fs.BoolVar(&opts.Check, "check", false, "exit 1 if the files differ, print nothing")
	case runner.CmdApply:
		fs.StringVar(&opts.PatchPath, "patch", "", "unified diff to apply")
		fs.StringVar(&opts.FilePath, "file", "", "file to patch")
		fs.StringVar(&opts.OutputPath, "output", "", "write the result here (\"-\" for stdout) instead of in place")
		fs.BoolVar(&opts.Reverse, "reverse", false, "undo the patch")
		fs.StringVar(&opts.Algorithm, "algorithm", "", "apply algorithm: fuzzy, similar, naive or strict")
	case runner.CmdApplyMulti:
		fs.StringVar(&opts.PatchPath, "patch", "", "multi-file unified diff to apply")
		fs.StringVar(&opts.Dir, "dir", "", "root directory for patch paths")
		fs.BoolVar(&opts.Reverse, "reverse", false, "undo the patch")
		fs.BoolVar(&opts.DryRun, "dry-run", false, "report results without writing files")
		fs.IntVar(&opts.Workers, "workers", 0, "files patched concurrently (default from config)")
		fs.StringVar(&opts.Algorithm, "algorithm", "", "apply algorithm: fuzzy, similar, naive or strict")
	default:
		usage(stderr)
		return nil, fmt.Errorf("unknown command %q", cmd)
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only an explicit flag overrides the config; validation rejects negatives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "context" {
			opts.Context = &context
		}
	})
	opts.ConfigPath = g.configPath
	opts.Color = g.color
	opts.Quiet = g.quiet
	opts.Verbose = g.verbose
	return opts, nil
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: diffpatch <command> [flags]

Generate and apply unified diffs.

Commands:
  generate     diff two files (--old, --new)
  apply        apply a single-file patch (--patch, --file)
  apply-multi  apply a multi-file patch (--patch, --dir)

Global flags:
  -config path   config file (default: discovered diffpatch.yml)
  -color mode    auto, always or never
  -q             suppress informational output
  -v             enable debug logging
  -version       print version and exit

Run "diffpatch <command> -h" for command flags.
`)
}
