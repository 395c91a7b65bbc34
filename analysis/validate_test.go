// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"strings"
	"testing"
)

func noop(*Pass) error { return nil }

var (
	good = &Rule{
		Name: "good",
		Doc:  "this rule is well formed",
		Run:  noop,
	}
	alsoGood = &Rule{
		Name: "alsoGood",
		Doc:  "this rule is well formed too",
		Run:  noop,
	}
	badName = &Rule{
		Name: "bad-name",
		Doc:  "this rule has a name that is not an identifier",
		Run:  noop,
	}
	undocumented = &Rule{
		Name: "undocumented",
		Doc:  " \n",
		Run:  noop,
	}
	noRun = &Rule{
		Name: "noRun",
		Doc:  "this rule cannot run",
	}
	goodTwin = &Rule{
		Name: "good",
		Doc:  "this rule reuses the name of another",
		Run:  noop,
	}
)

func TestValidate(t *testing.T) {
	cases := []struct {
		rules         []*Rule
		wantErr       bool
		errSubstrings []string
	}{
		{
			[]*Rule{good, alsoGood},
			false,
			nil,
		},
		{
			nil,
			false,
			nil,
		},
		{
			[]*Rule{good, nil},
			true,
			[]string{"nil *Rule at index 1"},
		},
		{
			[]*Rule{badName},
			true,
			[]string{`"bad-name"`, "not a valid identifier"},
		},
		{
			[]*Rule{undocumented},
			true,
			[]string{`"undocumented"`, "is undocumented"},
		},
		{
			[]*Rule{noRun},
			true,
			[]string{`"noRun"`, "nil Run"},
		},
		{
			[]*Rule{good, alsoGood, goodTwin},
			true,
			[]string{`duplicate rule name "good"`},
		},
	}
	for _, c := range cases {
		got := Validate(c.rules)

		if !c.wantErr {
			if got == nil {
				continue
			}
			t.Errorf("got unexpected error while validating rules %v: %v", c.rules, got)
			continue
		}
		if got == nil {
			t.Errorf("got no error while validating rules %v, want error", c.rules)
			continue
		}
		for _, s := range c.errSubstrings {
			if !strings.Contains(got.Error(), s) {
				t.Errorf("error %q does not contain %q", got, s)
			}
		}
	}
}
