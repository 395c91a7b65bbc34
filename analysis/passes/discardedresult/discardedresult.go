// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ilvet/ilvet/analysis"
	"github.com/ilvet/ilvet/il"
	"github.com/ilvet/ilvet/internal/analysisinternal"
)

//go:embed doc.go
var doc string

var Rule = &analysis.Rule{
	Name: "discardedresult",
	Doc:  analysisinternal.MustExtractDoc(doc, "discardedresult"),
	URL:  "https://pkg.go.dev/github.com/ilvet/ilvet/analysis/passes/discardedresult",
	Run:  run,
}

// registry is the table in effect. Each -exemptions flag merges a
// file into it, and the flag's empty default value resets it to
// Default(), so that drivers running the rule more than once in a
// process can start each run afresh.
var registry = Default()

var exemptSelfReturning = true

func init() {
	Rule.Flags.Var(new(exemptionFiles), "exemptions", "YAML `file` of additional exemptions (may be repeated)")
	Rule.Flags.BoolVar(&exemptSelfReturning, "selfreturning", exemptSelfReturning, "exempt calls returning their own declaring type; for testing only")
}

// exemptionFiles is a repeatable flag naming registry files.
// Setting it to the empty string clears it.
type exemptionFiles []string

func (f *exemptionFiles) String() string { return strings.Join(*f, ",") }

func (f *exemptionFiles) Set(filename string) error {
	if filename == "" {
		registry = Default()
		*f = nil
		return nil
	}
	extra, err := LoadRegistry(filename)
	if err != nil {
		return err
	}
	registry = registry.Merge(extra)
	*f = append(*f, filename)
	return nil
}

func run(pass *analysis.Pass) error {
	for _, in := range bareStatements(pass.Method) {
		if ignorable(registry, in.Operand, exemptSelfReturning) {
			continue
		}
		pass.Report(diagnostic(in))
	}
	return nil
}

func diagnostic(in *il.Instruction) analysis.Diagnostic {
	sig := in.Operand
	d := analysis.Diagnostic{
		Offset:    in.Offset,
		Signature: sig,
		Severity:  analysis.Medium,
	}
	if in.Kind == il.NewObject {
		d.Message = fmt.Sprintf("Do not ignore the newly constructed %s; the reference is discarded", sig.DeclaringType)
		return d
	}
	if sig.Return == "System.String" {
		d.Severity = analysis.High
	}
	d.Message = fmt.Sprintf("Do not ignore the result of %s; the returned %s is discarded", sig.QualifiedName(), sig.Return)
	return d
}
