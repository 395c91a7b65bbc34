// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker

// This file defines helpers for printing analysis results.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/template"

	"github.com/ilvet/ilvet/analysis"
)

// A Finding is the output record of one diagnostic, as printed by
// PrintJSON and passed to the template of PrintTemplate.
type Finding struct {
	Position string // file:line of the instruction, or file if unknown
	Method   string
	Offset   int
	Rule     string
	Severity analysis.Severity
	Category string
	Callee   string `json:",omitempty"`
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s", f.Position, f.Message)
}

func (act *Action) findings() []Finding {
	if act.Result == nil {
		return nil
	}
	var out []Finding
	for _, d := range act.Result.Diagnostics {
		f := Finding{
			Position: act.Listing.Filename,
			Method:   act.Method.Name,
			Offset:   d.Offset,
			Rule:     act.Rule.Name,
			Severity: d.Severity,
			Category: d.Category,
			Message:  d.Message,
		}
		if line, ok := act.Listing.LineOf(act.Method.Name, d.Offset); ok {
			f.Position = fmt.Sprintf("%s:%d", act.Listing.Filename, line.Num)
		}
		if d.Signature != nil {
			f.Callee = d.Signature.String()
		}
		out = append(out, f)
	}
	return out
}

// Findings returns the diagnostics of all actions, in action order.
func (g *Graph) Findings() []Finding {
	var out []Finding
	for _, act := range g.Actions {
		out = append(out, act.findings()...)
	}
	return out
}

// PrintText emits diagnostics as plain text to w, in the form
//
//	file:line: Method+IL_xxxx: message [rule]
//
// Actions whose rule failed are reported in the same form.
func (g *Graph) PrintText(w io.Writer) error {
	for _, act := range g.Actions {
		if act.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: %s: error: %v\n", act.Listing.Filename, act.Method.Name, act.Err); err != nil {
				return err
			}
			continue
		}
		for _, f := range act.findings() {
			if _, err := fmt.Fprintf(w, "%s: %s+IL_%04x: %s [%s]\n", f.Position, f.Method, f.Offset, f.Message, f.Rule); err != nil {
				return err
			}
		}
	}
	return nil
}

// A jsonResult is the JSON form of one action.
type jsonResult struct {
	Verdict     string    `json:"verdict,omitempty"`
	Diagnostics []Finding `json:"diagnostics,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// PrintJSON emits the results as a JSON tree keyed by method and then
// by rule name. Every method appears, including those that passed.
func (g *Graph) PrintJSON(w io.Writer) error {
	tree := make(map[string]map[string]jsonResult)
	for _, act := range g.Actions {
		key := act.Listing.Filename + ":" + act.Method.Name
		m, ok := tree[key]
		if !ok {
			m = make(map[string]jsonResult)
			tree[key] = m
		}
		var r jsonResult
		if act.Err != nil {
			r.Error = act.Err.Error()
		} else {
			r.Verdict = act.Result.Verdict.String()
			r.Diagnostics = act.findings()
		}
		m[act.Rule.Name] = r
	}
	data, err := json.MarshalIndent(tree, "", "\t")
	if err != nil {
		return fmt.Errorf("internal error: JSON marshaling failed: %v", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// PrintTemplate formats each Finding using the text/template format,
// in the manner of 'go list -f=template'. A newline is appended to
// each record that does not end with one.
func (g *Graph) PrintTemplate(w io.Writer, format string) error {
	tmpl, err := template.New("findings").Parse(format)
	if err != nil {
		return err
	}
	for _, f := range g.Findings() {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, f); err != nil {
			return err
		}
		if n := buf.Len(); n == 0 || buf.Bytes()[n-1] != '\n' {
			buf.WriteByte('\n')
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
