// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package singlechecker defines the main function for a rule driver
// with only a single rule.
// This package makes it easy for the provider of a rule to also
// provide a standalone tool that runs it.
// For example, if example.org/discardedresult is a rule package
// that defines a variable Rule, a complete command is:
//
//	package main
//
//	import (
//		"example.org/discardedresult"
//		"github.com/ilvet/ilvet/analysis/singlechecker"
//	)
//
//	func main() { singlechecker.Main(discardedresult.Rule) }
//
// The command accepts listing files (.il) and txtar archives of
// listings (.txtar) as arguments. It prints one line per diagnostic,
// or with --json a tree of results keyed by method and rule, or with
// --format a text/template applied to each checker.Finding.
//
// The exit status is 0 if there were no findings, 1 if an input could
// not be loaded or a rule failed, and 3 if there were findings. In
// --json mode findings do not affect the exit status.
package singlechecker

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/analysis/checker"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitFindings = 3
)

// Main is the main function for a checker command for a single rule.
func Main(r *analysis.Rule) {
	os.Exit(Run(r, os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	json        bool
	format      string
	debug       bool
	concurrency int
}

func (opts *options) register(flags *pflag.FlagSet) {
	flags.BoolVar(&opts.json, "json", false, "emit results as a JSON tree")
	flags.StringVarP(&opts.format, "format", "f", "", "format each finding using the given text/template")
	flags.BoolVar(&opts.debug, "debug", false, "log analysis progress to stderr")
	flags.IntVar(&opts.concurrency, "concurrency", 0, "maximum number of methods analyzed in parallel (0 means GOMAXPROCS)")
}

// Run runs the command for rule r with the given arguments,
// writing results to stdout and errors and logs to stderr,
// and returns the exit status.
func Run(r *analysis.Rule, args []string, stdout, stderr io.Writer) int {
	if err := analysis.Validate([]*analysis.Rule{r}); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return exitError
	}
	if err := resetFlags(r); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", r.Name, err)
		return exitError
	}

	opts := new(options)
	status := exitOK
	cmd := &cobra.Command{
		Use:           r.Name + " [flags] file.il|archive.txtar...",
		Short:         title(r.Doc),
		Long:          r.Doc,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != "" {
				if opts.json {
					return fmt.Errorf("you cannot specify both --format and --json")
				}
				if _, err := template.New(r.Name).Parse(opts.format); err != nil {
					return fmt.Errorf("invalid --format: %v", err)
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			status, err = run(cmd.Context(), r, opts, args, cmd.OutOrStdout(), cmd.ErrOrStderr())
			return err
		},
	}
	if args == nil {
		args = []string{} // cobra reads os.Args for nil
	}
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	opts.register(cmd.Flags())
	cmd.Flags().AddGoFlagSet(&r.Flags)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", r.Name, err)
		return exitError
	}
	return status
}

func run(ctx context.Context, r *analysis.Rule, opts *options, args []string, stdout, stderr io.Writer) (int, error) {
	logger := newLogger(stderr, opts.debug)
	defer logger.Sync()

	listings, err := load(args)
	if err != nil {
		return exitError, err
	}
	logger.Debug("loaded inputs", zap.Strings("args", args), zap.Int("listings", len(listings)))

	g, err := checker.Analyze(ctx, []*analysis.Rule{r}, listings, &checker.Options{
		Concurrency: opts.concurrency,
		Logger:      logger,
	})
	if err != nil {
		return exitError, err
	}

	switch {
	case opts.json:
		err = g.PrintJSON(stdout)
	case opts.format != "":
		err = g.PrintTemplate(stdout, opts.format)
	default:
		err = g.PrintText(stdout)
	}
	if err != nil {
		return exitError, err
	}

	if errs := g.Errors(); len(errs) > 0 {
		return exitError, fmt.Errorf("%d rule failure(s), first: %w", len(errs), errs[0].Err)
	}
	if opts.json {
		return exitOK, nil
	}
	if g.Failed() {
		return exitFindings, nil
	}
	return exitOK, nil
}

// resetFlags returns the rule's flags to their default values, so that
// settings from an earlier Run in the same process do not carry over.
func resetFlags(r *analysis.Rule) error {
	var err error
	r.Flags.VisitAll(func(f *flag.Flag) {
		if err == nil && f.Value.String() != f.DefValue {
			if e := f.Value.Set(f.DefValue); e != nil {
				err = fmt.Errorf("resetting -%s: %v", f.Name, e)
			}
		}
	})
	return err
}

// newLogger returns a console logger writing to w: a development
// logger if debug is set, else one that reports warnings and errors.
func newLogger(w io.Writer, debug bool) *zap.Logger {
	cfg := zap.NewProductionEncoderConfig()
	level := zapcore.WarnLevel
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
		level = zapcore.DebugLevel
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// title returns the first paragraph of a rule's documentation.
func title(doc string) string {
	first, _, _ := strings.Cut(doc, "\n\n")
	return strings.ReplaceAll(first, "\n", " ")
}
