// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package checker_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/analysis/checker"
	"github.com/ilvet/ilvet/analysis/passes/discardedresult"
	"github.com/ilvet/ilvet/il"
)

func load(t *testing.T) []*il.Listing {
	t.Helper()
	lst, err := il.ParseFile(filepath.Join("testdata", "sample.il"))
	if err != nil {
		t.Fatal(err)
	}
	return []*il.Listing{lst}
}

// broken is a rule that fails on every method.
var broken = &analysis.Rule{
	Name: "broken",
	Doc:  "broken: a rule that always fails",
	Run:  func(*analysis.Pass) error { return errors.New("boom") },
}

// returns is a rule that reports every return instruction.
var returns = &analysis.Rule{
	Name: "returns",
	Doc:  "returns: report return instructions",
	Run: func(pass *analysis.Pass) error {
		for i := range pass.Method.Instructions {
			if in := &pass.Method.Instructions[i]; in.Kind == il.Return {
				pass.Reportf(in, "return")
			}
		}
		return nil
	},
}

func TestPrintText(t *testing.T) {
	g, err := checker.Analyze(context.Background(), []*analysis.Rule{discardedresult.Rule}, load(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !g.Failed() {
		t.Errorf("Failed() = false, want true")
	}
	var buf bytes.Buffer
	if err := g.PrintText(&buf); err != nil {
		t.Fatal(err)
	}
	golden := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	golden.Assert(t, "text", buf.Bytes())
}

func TestOrder(t *testing.T) {
	rules := []*analysis.Rule{discardedresult.Rule, returns}
	var want []string
	for _, m := range load(t)[0].Methods {
		for _, r := range rules {
			want = append(want, r.Name+"@"+m.Name)
		}
	}
	var first []checker.Finding
	for _, n := range []int{1, 2, 8} {
		g, err := checker.Analyze(context.Background(), rules, load(t), &checker.Options{Concurrency: n})
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		for _, act := range g.Actions {
			got = append(got, act.String())
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("concurrency %d: actions (-want +got):\n%s", n, diff)
		}
		if first == nil {
			first = g.Findings()
		} else if diff := cmp.Diff(first, g.Findings()); diff != "" {
			t.Errorf("concurrency %d: findings differ (-first +got):\n%s", n, diff)
		}
	}
}

func TestCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := checker.Analyze(ctx, []*analysis.Rule{discardedresult.Rule}, load(t), nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze with cancelled context = %v, want %v", err, context.Canceled)
	}
}

func TestInvalidRules(t *testing.T) {
	_, err := checker.Analyze(context.Background(), []*analysis.Rule{returns, returns}, load(t), nil)
	if err == nil || !strings.Contains(err.Error(), `duplicate rule name "returns"`) {
		t.Errorf("Analyze with duplicate rules = %v", err)
	}
}

func TestRuleError(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := checker.Analyze(context.Background(), []*analysis.Rule{broken}, load(t), &checker.Options{Logger: zap.New(core)})
	if err != nil {
		t.Fatal(err)
	}
	if errs := g.Errors(); len(errs) != 3 {
		t.Fatalf("got %d failed actions, want 3", len(errs))
	}
	if g.Failed() {
		t.Errorf("Failed() = true for actions that only errored")
	}
	if n := logs.FilterMessage("rule failed").Len(); n != 3 {
		t.Errorf("logged %d rule failures, want 3", n)
	}
	if n := logs.FilterMessage("starting analysis").Len(); n != 1 {
		t.Errorf("logged %d starts, want 1", n)
	}

	var buf bytes.Buffer
	if err := g.PrintText(&buf); err != nil {
		t.Fatal(err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if want := filepath.Join("testdata", "sample.il") + ": Item::Violations: error: broken: Item::Violations: boom"; first != want {
		t.Errorf("first line = %q, want %q", first, want)
	}
}

func TestPrintJSON(t *testing.T) {
	g, err := checker.Analyze(context.Background(), []*analysis.Rule{discardedresult.Rule, broken}, load(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := g.PrintJSON(&buf); err != nil {
		t.Fatal(err)
	}

	type result struct {
		Verdict     string
		Diagnostics []struct {
			Offset   int
			Severity string
			Callee   string
		}
		Error string
	}
	var tree map[string]map[string]result
	if err := json.Unmarshal(buf.Bytes(), &tree); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.Bytes())
	}

	prefix := filepath.Join("testdata", "sample.il") + ":"
	if len(tree) != 3 {
		t.Errorf("got %d methods, want 3", len(tree))
	}
	clean := tree[prefix+"Item::Clean"]
	if got := clean["discardedresult"].Verdict; got != "Success" {
		t.Errorf("Item::Clean verdict = %q, want Success", got)
	}
	if got := clean["broken"].Error; got != "broken: Item::Clean: boom" {
		t.Errorf("Item::Clean broken error = %q", got)
	}
	v := tree[prefix+"Item::Violations"]["discardedresult"]
	if v.Verdict != "Failure" || len(v.Diagnostics) != 1 {
		t.Fatalf("Item::Violations = %+v, want one Failure diagnostic", v)
	}
	d := v.Diagnostics[0]
	if d.Offset != 0x0a || d.Severity != "high" || d.Callee != "instance System.String System.String::ToUpper(System.Globalization.CultureInfo)" {
		t.Errorf("diagnostic = %+v", d)
	}
}

func TestPrintTemplate(t *testing.T) {
	g, err := checker.Analyze(context.Background(), []*analysis.Rule{discardedresult.Rule}, load(t), nil)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := g.PrintTemplate(&buf, "{{.Method}} {{printf \"IL_%04x\" .Offset}} {{.Severity}}"); err != nil {
		t.Fatal(err)
	}
	want := "Item::Violations IL_000a high\nItem::CreateItem IL_0000 medium\n"
	if got := buf.String(); got != want {
		t.Errorf("PrintTemplate:\ngot  %q\nwant %q", got, want)
	}

	if err := g.PrintTemplate(&buf, "{{.Method"); err == nil {
		t.Errorf("PrintTemplate with bad template succeeded")
	}
}
