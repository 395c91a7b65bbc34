// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysistest provides utilities for testing rules.
package analysistest

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/il"
)

// TestData returns the effective filename of
// the program's "testdata" directory.
// This function may be overridden by projects using
// an alternative build system (such as Blaze) that
// does not run a test in its package directory.
var TestData = func() string {
	testdata, err := filepath.Abs("testdata")
	if err != nil {
		panic(err)
	}
	return testdata
}

// Testing is an abstraction of a *testing.T.
type Testing interface {
	Errorf(format string, args ...any)
}

// A Result holds the result of applying a rule to one method of a
// test listing.
type Result struct {
	Listing *il.Listing
	Method  *il.MethodBody
	Result  *analysis.Result
	Err     error
}

// Run applies a rule to the methods of the named test archives and
// checks that the rule produces the expected diagnostics and verdicts.
//
// Each name denotes the archive dir/src/NAME.txtar. Every file in the
// archive is a listing (see il.Parse). Expectations are written in
// comments of the form
//
//	// want "regexp" ...
//
// on an instruction line, each of which must be matched by exactly one
// diagnostic reported at that instruction, and
//
//	// want verdict:"Failure"
//
// on a .method line, asserting the method's verdict. Diagnostics with
// no matching expectation are errors, as are unmatched expectations.
//
// Run reports an error to t for each mismatch, and returns the results
// for further checks.
func Run(t Testing, dir string, r *analysis.Rule, names ...string) []*Result {
	var results []*Result
	for _, name := range names {
		filename := filepath.Join(dir, "src", name+".txtar")
		ar, err := txtar.ParseFile(filename)
		if err != nil {
			t.Errorf("loading %s: %v", name, err)
			continue
		}
		if len(ar.Files) == 0 {
			t.Errorf("%s: archive contains no listings", name)
			continue
		}
		for _, f := range ar.Files {
			lst, err := il.Parse(name+"/"+f.Name, f.Data)
			if err != nil {
				t.Errorf("%v", err)
				continue
			}
			for _, m := range lst.Methods {
				res, err := analysis.Run(r, m)
				if err != nil {
					t.Errorf("%s: %v", lst.Filename, err)
				} else {
					check(t, lst, m, res)
				}
				results = append(results, &Result{Listing: lst, Method: m, Result: res, Err: err})
			}
		}
	}
	return results
}

// An expectation is a "want" on one line of a listing.
type expectation struct {
	line    il.Line
	verdict string         // for a .method line
	rx      *regexp.Regexp // for an instruction line
	matched bool
}

func check(t Testing, lst *il.Listing, m *il.MethodBody, res *analysis.Result) {
	diagWants := make(map[int][]*expectation) // by offset
	var verdictWants []*expectation
	for _, line := range lst.Lines {
		if line.Method != m.Name {
			continue
		}
		exps, err := parseWants(line)
		if err != nil {
			t.Errorf("%s:%d: in 'want' comment: %v", lst.Filename, line.Num, err)
			continue
		}
		for _, exp := range exps {
			if exp.verdict != "" {
				verdictWants = append(verdictWants, exp)
			} else {
				diagWants[line.Offset] = append(diagWants[line.Offset], exp)
			}
		}
	}

	for _, exp := range verdictWants {
		exp.matched = true
		if got := res.Verdict.String(); got != exp.verdict {
			t.Errorf("%s:%d: %s: verdict %s, want %s", lst.Filename, exp.line.Num, m.Name, got, exp.verdict)
		}
	}

	for _, d := range res.Diagnostics {
		posn := fmt.Sprintf("%s: %s+IL_%04x", lst.Filename, m.Name, d.Offset)
		if line, ok := lst.LineOf(m.Name, d.Offset); ok {
			posn = fmt.Sprintf("%s:%d", lst.Filename, line.Num)
		}
		exps := diagWants[d.Offset]
		found := false
		for _, exp := range exps {
			if !exp.matched && exp.rx.MatchString(d.Message) {
				exp.matched = true
				found = true
				break
			}
		}
		switch {
		case found:
		case len(exps) > 0:
			t.Errorf("%s: diagnostic %q does not match pattern %#q", posn, d.Message, exps[0].rx)
		default:
			t.Errorf("%s: unexpected diagnostic: %s", posn, d.Message)
		}
	}

	var unmatched []*expectation
	for _, exps := range diagWants {
		for _, exp := range exps {
			if !exp.matched {
				unmatched = append(unmatched, exp)
			}
		}
	}
	sort.Slice(unmatched, func(i, j int) bool { return unmatched[i].line.Num < unmatched[j].line.Num })
	for _, exp := range unmatched {
		t.Errorf("%s:%d: no diagnostic was reported matching %#q", lst.Filename, exp.line.Num, exp.rx)
	}
}

// parseWants extracts the expectations from a line's comment.
// The "want" may follow other comment text after a further "//".
func parseWants(line il.Line) ([]*expectation, error) {
	var text string
	for _, part := range strings.Split(line.Comment, "//") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(part), "want"); ok {
			text = rest
		}
	}
	if text == "" {
		return nil, nil
	}
	if text[0] != ' ' && text[0] != '\t' {
		return nil, fmt.Errorf("unexpected %q after want", text[:1])
	}

	var exps []*expectation
	for text = strings.TrimSpace(text); text != ""; text = strings.TrimSpace(text) {
		verdict := false
		if rest, ok := strings.CutPrefix(text, "verdict:"); ok {
			verdict = true
			text = rest
		}
		lit, err := strconv.QuotedPrefix(text)
		if err != nil {
			return nil, fmt.Errorf("got %q, want quoted string", text)
		}
		text = text[len(lit):]
		s, err := strconv.Unquote(lit)
		if err != nil {
			return nil, err
		}

		exp := &expectation{line: line}
		switch {
		case verdict && line.Offset >= 0:
			return nil, fmt.Errorf("verdict expectation on an instruction line")
		case verdict:
			if s != analysis.Success.String() && s != analysis.Failure.String() {
				return nil, fmt.Errorf("unknown verdict %q", s)
			}
			exp.verdict = s
		case line.Offset < 0:
			return nil, fmt.Errorf("diagnostic expectation on a .method line")
		default:
			rx, err := regexp.Compile(s)
			if err != nil {
				return nil, err
			}
			exp.rx = rx
		}
		exps = append(exps, exp)
	}
	return exps, nil
}

// WriteFiles is a helper function that creates a temporary directory
// and populates it with a tree of test archives: each key of filemap
// names a file below dir/src and its value is the file content.
// It returns the directory and a cleanup function.
func WriteFiles(filemap map[string]string) (dir string, cleanup func(), err error) {
	dir, err = os.MkdirTemp("", "analysistest")
	if err != nil {
		return "", nil, err
	}
	cleanup = func() { os.RemoveAll(dir) }
	for name, content := range filemap {
		filename := filepath.Join(dir, "src", filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(filename), 0777); err != nil {
			cleanup()
			return "", nil, err
		}
		if err := os.WriteFile(filename, []byte(content), 0666); err != nil {
			cleanup()
			return "", nil, err
		}
	}
	return dir, cleanup, nil
}
