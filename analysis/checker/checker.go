// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package checker provides a rule driver that applies a set of rules
// to every method of a set of listings, in parallel.
//
// The result of a call to Analyze is a Graph of Actions, one per
// (rule, method) pair, in a deterministic order: listings in the
// order given, methods in listing order, then rules in the order
// given. The Graph's printing methods render the findings as text,
// JSON, or through a text/template.
package checker

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/il"
)

// Options specifies options that control the analysis driver.
type Options struct {
	// Concurrency bounds the number of methods analyzed at once.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int

	// Logger receives debug and error events. Nil means no logging.
	Logger *zap.Logger
}

// Graph holds the results of a round of analysis.
type Graph struct {
	Actions []*Action
}

// An Action represents one unit of analysis work: the application of
// one rule to one method body.
type Action struct {
	Rule    *analysis.Rule
	Listing *il.Listing
	Method  *il.MethodBody
	Result  *analysis.Result // nil if Err is set
	Err     error            // error result of running the rule
	Elapsed time.Duration
}

func (act *Action) String() string {
	return act.Rule.Name + "@" + act.Method.Name
}

// Analyze runs the specified rules over every method of the listings.
//
// Rule failures are recorded in the Err field of the affected action
// and do not stop the analysis. Analyze returns an error only if the
// rules are invalid or ctx is cancelled before all methods have been
// analyzed.
func Analyze(ctx context.Context, rules []*analysis.Rule, listings []*il.Listing, opts *Options) (*Graph, error) {
	if opts == nil {
		opts = &Options{}
	}
	if err := analysis.Validate(rules); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Lay out all actions up front; each goroutine fills in the
	// actions of one method.
	g := &Graph{}
	type unit struct {
		lst     *il.Listing
		method  *il.MethodBody
		actions []*Action
	}
	var units []unit
	for _, lst := range listings {
		for _, m := range lst.Methods {
			u := unit{lst: lst, method: m}
			for _, r := range rules {
				act := &Action{Rule: r, Listing: lst, Method: m}
				u.actions = append(u.actions, act)
				g.Actions = append(g.Actions, act)
			}
			units = append(units, u)
		}
	}
	logger.Debug("starting analysis",
		zap.Int("listings", len(listings)),
		zap.Int("methods", len(units)),
		zap.Int("rules", len(rules)),
		zap.Int("concurrency", limit))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for _, u := range units {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for _, act := range u.actions {
				act.exec(logger)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return g, nil
}

func (act *Action) exec(logger *zap.Logger) {
	start := time.Now()
	act.Result, act.Err = analysis.Run(act.Rule, act.Method)
	act.Elapsed = time.Since(start)
	if act.Err != nil {
		logger.Error("rule failed",
			zap.String("rule", act.Rule.Name),
			zap.String("method", act.Method.Name),
			zap.Error(act.Err))
		return
	}
	logger.Debug("analyzed method",
		zap.String("rule", act.Rule.Name),
		zap.String("method", act.Method.Name),
		zap.Stringer("verdict", act.Result.Verdict),
		zap.Int("diagnostics", len(act.Result.Diagnostics)),
		zap.Duration("elapsed", act.Elapsed))
}

// Failed reports whether any action concluded with a Failure verdict.
func (g *Graph) Failed() bool {
	for _, act := range g.Actions {
		if act.Result != nil && act.Result.Verdict == analysis.Failure {
			return true
		}
	}
	return false
}

// Errors returns the actions whose rule could not run.
func (g *Graph) Errors() []*Action {
	var errs []*Action
	for _, act := range g.Actions {
		if act.Err != nil {
			errs = append(errs, act)
		}
	}
	return errs
}
