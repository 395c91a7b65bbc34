// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysisinternal_test

import (
	"strings"
	"testing"

	"github.com/ilvet/ilvet/internal/analysisinternal"
)

func TestExtractDoc(t *testing.T) {
	const multi = `// Copyright

/*
Package multi defines two rules.

# Rule alpha

alpha: check the first thing

The alpha rule checks the first thing.

# Rule alphabet

alphabet: check every letter

# Rule nosummary

This heading has no summary line.
*/
package multi
`
	for _, test := range []struct {
		content, name, want string
	}{
		{multi, "alpha", "check the first thing\n\nThe alpha rule checks the first thing."},
		{multi, "alphabet", "check every letter"},
		{multi, "nosummary", "error: 'Rule nosummary' heading not followed by 'nosummary: summary...' line"},
		{multi, "beta", "error: package doc comment contains no 'Rule beta' heading"},
		{"", "x", "error: empty Go source file"},
		{"package x", "x", "error: Go source file has no package doc comment"},
		{"not go", "x", "error: not a Go source file"},
	} {
		got, err := analysisinternal.ExtractDoc(test.content, test.name)
		if err != nil {
			got = "error: " + err.Error()
		}
		if got != test.want {
			t.Errorf("ExtractDoc(%s) = %q, want %q", test.name, got, test.want)
		}
	}
}

func TestMustExtractDocPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil || !strings.Contains(r.(error).Error(), "no 'Rule x' heading") {
			t.Errorf("recover() = %v, want heading error", r)
		}
	}()
	analysisinternal.MustExtractDoc("// Package p.\npackage p\n", "x")
}
