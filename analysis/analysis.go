// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis defines the interface between a rule that checks
// one decoded method body and the drivers that run it.
//
// A Rule describes a check: its name, documentation, flags and a Run
// function. A driver hands Run a Pass holding the method body; the rule
// reports findings through the Pass, and the driver concludes them into
// a Result whose Verdict is Failure exactly when something was reported.
package analysis

import (
	"flag"
	"fmt"

	"github.com/ilvet/ilvet/il"
)

// A Rule describes a check of a single method body and its options.
type Rule struct {
	// The Name of the rule must be a valid Go identifier
	// as it may appear in command-line flags and output.
	Name string

	// Doc is the documentation for the rule.
	// The part before the first "\n\n" is the title
	// (no capital or period, max ~60 letters).
	Doc string

	// URL holds an optional link to a web page with additional
	// documentation for this rule.
	URL string

	// Flags defines any flags accepted by the rule.
	// The manner in which these flags are exposed to the user
	// depends on the driver which runs the rule.
	Flags flag.FlagSet

	// Run applies the rule to a method body.
	// It reports findings through pass.Report and returns an error
	// only when the rule itself could not run.
	Run func(*Pass) error
}

func (r *Rule) String() string { return r.Name }

// A Pass provides information to the Run function that applies a
// specific rule to a single method body.
type Pass struct {
	Rule   *Rule          // the identity of the current rule
	Method *il.MethodBody // the method under analysis; read-only

	// Report reports a Diagnostic, a finding about a specific
	// instruction of the method.
	Report func(Diagnostic)
}

// Reportf is a helper function that reports a Diagnostic of medium
// severity at the given instruction using the specified message.
func (pass *Pass) Reportf(in *il.Instruction, format string, args ...any) {
	pass.Report(Diagnostic{
		Offset:    in.Offset,
		Signature: in.Operand,
		Severity:  Medium,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (pass *Pass) String() string {
	return fmt.Sprintf("%s@%s", pass.Rule.Name, pass.Method.Name)
}

// Run applies rule r to body and concludes its findings into a Result.
// The body is not modified.
func Run(r *Rule, body *il.MethodBody) (*Result, error) {
	var diags []Diagnostic
	pass := &Pass{
		Rule:   r,
		Method: body,
		Report: func(d Diagnostic) {
			if d.Category == "" {
				d.Category = r.Name
			}
			diags = append(diags, d)
		},
	}
	if err := r.Run(pass); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", r.Name, body.Name, err)
	}
	return Conclude(diags), nil
}
