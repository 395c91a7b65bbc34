// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysistest_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/analysis/analysistest"
	"github.com/ilvet/ilvet/il"
)

// findcall reports every call of a method named WriteLine.
var findcall = &analysis.Rule{
	Name: "findcall",
	Doc:  "findcall: report calls of WriteLine",
	Run: func(pass *analysis.Pass) error {
		for i := range pass.Method.Instructions {
			in := &pass.Method.Instructions[i]
			if in.Kind == il.Call && in.Operand.Name == "WriteLine" {
				pass.Reportf(in, "call of %s", in.Operand.Name)
			}
		}
		return nil
	},
}

// TestTheTest tests the analysistest testing infrastructure.
func TestTheTest(t *testing.T) {
	filemap := map[string]string{
		"a.txtar": `
-- b.il --
.method M::A // want verdict:"Failure"
  IL_0000: call void System.Console::WriteLine() // want: "diagnostic"
  IL_0005: call void System.Console::WriteLine() // want "\xZZ scan error"
  IL_000a: call void System.Console::WriteLine() // want "wrong expectation text"
  IL_000f: call void System.Console::WriteLine()
  IL_0014: nop // want "unsatisfied expectation"
  IL_0015: call void System.Console::WriteLine() // want "call of WriteLine"
  IL_001a: call void System.Console::WriteLine() // some comment // want "call of WriteLine"
  IL_001f: ret // want verdict:"Success"

.method M::B // want verdict:"Failure"
  IL_0000: ret
`,
	}
	dir, cleanup, err := analysistest.WriteFiles(filemap)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	var got []string
	t2 := errorfunc(func(s string) { got = append(got, s) }) // a fake *testing.T
	results := analysistest.Run(t2, dir, findcall, "a")

	want := []string{
		`a/b.il:2: in 'want' comment: unexpected ":" after want`,
		fmt.Sprintf("a/b.il:3: in 'want' comment: got %q, want quoted string", `"\xZZ scan error"`),
		`a/b.il:9: in 'want' comment: verdict expectation on an instruction line`,
		`a/b.il:2: unexpected diagnostic: call of WriteLine`,
		`a/b.il:3: unexpected diagnostic: call of WriteLine`,
		"a/b.il:4: diagnostic \"call of WriteLine\" does not match pattern `wrong expectation text`",
		`a/b.il:5: unexpected diagnostic: call of WriteLine`,
		"a/b.il:4: no diagnostic was reported matching `wrong expectation text`",
		"a/b.il:6: no diagnostic was reported matching `unsatisfied expectation`",
		`a/b.il:11: M::B: verdict Success, want Failure`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("got errors (-want +got):\n%s", diff)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if n := len(results[0].Result.Diagnostics); n != 6 {
		t.Errorf("%s: got %d diagnostics, want 6", results[0].Method.Name, n)
	}
}

func TestMissingArchive(t *testing.T) {
	dir, cleanup, err := analysistest.WriteFiles(map[string]string{"empty.txtar": "comment only\n"})
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()

	var got []string
	t2 := errorfunc(func(s string) { got = append(got, s) })
	analysistest.Run(t2, dir, findcall, "empty", "missing")
	if len(got) != 2 {
		t.Fatalf("got %d errors, want 2: %q", len(got), got)
	}
	if got[0] != "empty: archive contains no listings" {
		t.Errorf("got %q for an empty archive", got[0])
	}
	if !strings.HasPrefix(got[1], "loading missing: ") {
		t.Errorf("got %q for a missing archive", got[1])
	}
}

type errorfunc func(string)

func (f errorfunc) Errorf(format string, args ...any) {
	f(fmt.Sprintf(format, args...))
}
