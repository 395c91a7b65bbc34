// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The discardedresult command runs the discardedresult rule over
// listings of IL method bodies and reports each call or construction
// whose result is computed and then dropped.
//
// Usage:
//
//	discardedresult [--json | -f template] [--exemptions file.yaml] file.il|archive.txtar...
//
// See the documentation of package
// github.com/ilvet/ilvet/analysis/passes/discardedresult
// for what is reported, and of package
// github.com/ilvet/ilvet/analysis/singlechecker
// for the output formats and exit status.
package main

import (
	"github.com/ilvet/ilvet/analysis/passes/discardedresult"
	"github.com/ilvet/ilvet/analysis/singlechecker"
)

func main() { singlechecker.Main(discardedresult.Rule) }
