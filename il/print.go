// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package il

import (
	"bytes"
	"fmt"
	"io"
)

// defaultOps supplies a mnemonic for instructions built without one.
var defaultOps = [...]string{
	Other:      "nop",
	Call:       "call",
	NewObject:  "newobj",
	Discard:    "pop",
	Duplicate:  "dup",
	StoreLocal: "stloc",
	Return:     "ret",
	Load:       "ldnull",
	Compute:    "nop",
	Jump:       "br",
}

// String returns the instruction in listing syntax, without indentation.
func (in *Instruction) String() string {
	op := in.Op
	if op == "" && int(in.Kind) < len(defaultOps) {
		op = defaultOps[in.Kind]
	}
	s := fmt.Sprintf("IL_%04x: %s", in.Offset, op)
	switch {
	case in.Operand != nil:
		s += " " + in.Operand.String()
	case in.Arg != "":
		s += " " + in.Arg
	}
	return s
}

// String returns the method body in listing syntax.
func (b *MethodBody) String() string {
	var buf bytes.Buffer
	WriteMethod(&buf, b)
	return buf.String()
}

// WriteMethod writes the listing form of b to w. Parsing the output
// yields a body equal to b, provided b was itself read from a listing.
func WriteMethod(w io.Writer, b *MethodBody) (int64, error) {
	var n int64
	c, err := fmt.Fprintf(w, ".method %s\n", b.Name)
	n += int64(c)
	if err != nil {
		return n, err
	}
	for i := range b.Instructions {
		c, err := fmt.Fprintf(w, "  %s\n", b.Instructions[i].String())
		n += int64(c)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
