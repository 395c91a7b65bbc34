// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ilvet/ilvet/il"
)

// A Diagnostic is a message associated with an instruction of the
// method under analysis.
type Diagnostic struct {
	Offset    int           // offset of the offending instruction
	Signature *il.Signature // callee of that instruction, if any
	Severity  Severity
	Category  string // optional; defaults to the rule name
	Message   string
}

// Severity ranks diagnostics for presentation.
type Severity int

const (
	Low Severity = iota
	Medium
	High
)

var severityNames = [...]string{Low: "low", Medium: "medium", High: "high"}

func (s Severity) String() string {
	if s >= 0 && int(s) < len(severityNames) {
		return severityNames[s]
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if strings.EqualFold(name, string(text)) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

// A Verdict is the outcome of applying a rule to one method.
type Verdict int

const (
	Success Verdict = iota // nothing was reported
	Failure                // at least one diagnostic was reported
)

func (v Verdict) String() string {
	switch v {
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	}
	return fmt.Sprintf("Verdict(%d)", int(v))
}

func (v Verdict) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// A Result is the concluded outcome of one rule on one method.
type Result struct {
	Verdict     Verdict
	Diagnostics []Diagnostic // ordered by offset
}

// Conclude aggregates reported diagnostics into a Result.
// The verdict is Failure if and only if diags is non-empty.
// Conclude does not modify diags; the Result holds its own copy,
// stably sorted by offset.
func Conclude(diags []Diagnostic) *Result {
	res := &Result{Verdict: Success}
	if len(diags) == 0 {
		return res
	}
	res.Verdict = Failure
	res.Diagnostics = slices.Clone(diags)
	slices.SortStableFunc(res.Diagnostics, func(a, b Diagnostic) int {
		return a.Offset - b.Offset
	})
	return res
}
