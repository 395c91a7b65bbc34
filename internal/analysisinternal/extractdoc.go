// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysisinternal provides helpers shared by rule packages.
package analysisinternal

import (
	"fmt"
	"go/parser"
	"go/token"
	"strings"
)

// MustExtractDoc is like [ExtractDoc] but it panics on error.
//
// To use, define a doc.go file such as:
//
//	// Package halting defines a rule about program termination.
//	//
//	// # Rule halting
//	//
//	// halting: report methods that never return
//	//
//	// The halting rule reports a diagnostic for methods
//	// that run forever.
//	package halting
//
//	import _ "embed"
//
//	//go:embed doc.go
//	var doc string
//
// and declare the rule as:
//
//	var Rule = &analysis.Rule{
//		Name: "halting",
//		Doc:  analysisinternal.MustExtractDoc(doc, "halting"),
//		...
//	}
func MustExtractDoc(content, name string) string {
	doc, err := ExtractDoc(content, name)
	if err != nil {
		panic(err)
	}
	return doc
}

// ExtractDoc extracts a section of a package doc comment from the
// contents of a rule package's doc.go file.
//
// The section runs from a heading of the form
//
//	# Rule NAME
//
// to the next heading or the end of the comment. Its first paragraph
// must be "NAME: SUMMARY"; ExtractDoc returns everything after the
// colon, which is the form expected by Rule.Doc.
func ExtractDoc(content, name string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("empty Go source file")
	}
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "", content, parser.ParseComments|parser.PackageClauseOnly)
	if err != nil {
		return "", fmt.Errorf("not a Go source file")
	}
	if f.Doc == nil {
		return "", fmt.Errorf("Go source file has no package doc comment")
	}
	for _, section := range strings.Split(f.Doc.Text(), "\n# ") {
		body, ok := strings.CutPrefix(section, "Rule "+name)
		if !ok || body == "" || (body[0] != '\n' && body[0] != '\r') {
			continue
		}
		body = strings.TrimSpace(body)
		rest, ok := strings.CutPrefix(body, name+":")
		if !ok {
			return "", fmt.Errorf("'Rule %s' heading not followed by '%s: summary...' line", name, name)
		}
		return strings.TrimSpace(rest), nil
	}
	return "", fmt.Errorf("package doc comment contains no 'Rule %s' heading", name)
}
