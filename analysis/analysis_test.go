// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/il"
)

var body = &il.MethodBody{
	Name: "Item::M",
	Instructions: []il.Instruction{
		{Offset: 0, Kind: il.Load},
		{Offset: 1, Kind: il.Discard},
		{Offset: 2, Kind: il.Load},
		{Offset: 3, Kind: il.Discard},
		{Offset: 4, Kind: il.Return},
	},
}

// reportPops reports every Discard, last first, to exercise sorting.
var reportPops = &analysis.Rule{
	Name: "reportpops",
	Doc:  "report every pop",
	Run: func(pass *analysis.Pass) error {
		for i := len(pass.Method.Instructions) - 1; i >= 0; i-- {
			in := &pass.Method.Instructions[i]
			if in.Kind == il.Discard {
				pass.Reportf(in, "pop at %d", in.Offset)
			}
		}
		return nil
	},
}

func TestRun(t *testing.T) {
	res, err := analysis.Run(reportPops, body)
	if err != nil {
		t.Fatal(err)
	}
	want := &analysis.Result{
		Verdict: analysis.Failure,
		Diagnostics: []analysis.Diagnostic{
			{Offset: 1, Severity: analysis.Medium, Category: "reportpops", Message: "pop at 1"},
			{Offset: 3, Severity: analysis.Medium, Category: "reportpops", Message: "pop at 3"},
		},
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Run mismatch (-want +got):\n%s", diff)
	}
}

func TestRunError(t *testing.T) {
	errBroken := errors.New("broken")
	broken := &analysis.Rule{
		Name: "broken",
		Doc:  "always fails",
		Run:  func(*analysis.Pass) error { return errBroken },
	}
	_, err := analysis.Run(broken, body)
	if !errors.Is(err, errBroken) {
		t.Fatalf("Run error = %v, want wrapped %v", err, errBroken)
	}
	if want := "broken: Item::M: broken"; err.Error() != want {
		t.Errorf("Run error = %q, want %q", err, want)
	}
}

func TestConclude(t *testing.T) {
	if res := analysis.Conclude(nil); res.Verdict != analysis.Success || res.Diagnostics != nil {
		t.Errorf("Conclude(nil) = %+v, want Success with no diagnostics", res)
	}

	diags := []analysis.Diagnostic{
		{Offset: 9, Message: "b"},
		{Offset: 2, Message: "a"},
		{Offset: 9, Message: "c"},
	}
	res := analysis.Conclude(diags)
	if res.Verdict != analysis.Failure {
		t.Errorf("Verdict = %v, want Failure", res.Verdict)
	}
	var got []string
	for _, d := range res.Diagnostics {
		got = append(got, d.Message)
	}
	if strings.Join(got, "") != "abc" {
		t.Errorf("order = %q, want stable sort by offset", got)
	}
	if diags[0].Message != "b" {
		t.Errorf("Conclude modified its input")
	}
	res.Diagnostics[0].Message = "x"
	if diags[1].Message != "a" {
		t.Errorf("Result shares storage with its input")
	}
}

func TestSeverityText(t *testing.T) {
	data, err := json.Marshal(map[string]any{"s": analysis.High, "v": analysis.Failure})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(data), `{"s":"high","v":"Failure"}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
	var s analysis.Severity
	if err := s.UnmarshalText([]byte("MEDIUM")); err != nil || s != analysis.Medium {
		t.Errorf("UnmarshalText(MEDIUM) = %v, %v", s, err)
	}
	if err := s.UnmarshalText([]byte("fatal")); err == nil {
		t.Errorf("UnmarshalText(fatal) succeeded")
	}
}
