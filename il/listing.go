// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package il

// This file defines the reader for the textual listing form of
// method bodies, used by tests and by the command-line tools.
//
// A listing is a sequence of methods. Each begins with a header line
//
//	.method Item::Violations
//
// and continues with one instruction per line:
//
//	IL_000a: callvirt instance string System.String::ToUpper(class System.Globalization.CultureInfo)
//	IL_000f: pop
//
// Text after "//" (outside a string literal) is a comment. Comments are
// not part of the body but are kept, with their line numbers, in the
// Listing so that test harnesses can attach expectations to them.

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// A Listing is the result of parsing one listing file.
type Listing struct {
	Filename string
	Methods  []*MethodBody
	Lines    []Line // one per header or instruction line, in file order
}

// A Line records where a method header or instruction appeared.
type Line struct {
	Method  string // name of the enclosing method
	Offset  int    // instruction offset, or -1 for the .method header
	Num     int    // 1-based line number
	Comment string // trailing comment text without the "//", if any
}

// LineOf returns the line of the instruction at offset in the named
// method. An offset of -1 denotes the method's header line.
func (l *Listing) LineOf(method string, offset int) (Line, bool) {
	for _, line := range l.Lines {
		if line.Method == method && line.Offset == offset {
			return line, true
		}
	}
	return Line{}, false
}

// A SyntaxError reports a malformed listing line.
type SyntaxError struct {
	Filename string
	Line     int
	Msg      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.Filename, e.Line, e.Msg)
}

// ParseFile reads and parses the named listing file.
func ParseFile(filename string) (*Listing, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return Parse(filename, data)
}

// Parse parses the listing in src. The filename is used only in errors.
func Parse(filename string, src []byte) (*Listing, error) {
	lst := &Listing{Filename: filename}
	seen := make(map[string]bool)
	var cur *MethodBody
	for i, text := range strings.Split(string(src), "\n") {
		num := i + 1
		errorf := func(format string, args ...any) error {
			return &SyntaxError{Filename: filename, Line: num, Msg: fmt.Sprintf(format, args...)}
		}

		code, comment := splitComment(text)
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}

		if rest, ok := strings.CutPrefix(code, ".method"); ok {
			name := strings.TrimSpace(rest)
			if name == "" {
				return nil, errorf("missing method name")
			}
			if seen[name] {
				return nil, errorf("duplicate method %s", name)
			}
			seen[name] = true
			cur = &MethodBody{Name: name}
			lst.Methods = append(lst.Methods, cur)
			lst.Lines = append(lst.Lines, Line{Method: name, Offset: -1, Num: num, Comment: comment})
			continue
		}

		if cur == nil {
			return nil, errorf("instruction outside of a .method")
		}
		in, err := parseInstr(code)
		if err != nil {
			return nil, errorf("%v", err)
		}
		if n := len(cur.Instructions); n > 0 && in.Offset <= cur.Instructions[n-1].Offset {
			return nil, errorf("offset IL_%04x does not follow IL_%04x", in.Offset, cur.Instructions[n-1].Offset)
		}
		cur.Instructions = append(cur.Instructions, in)
		lst.Lines = append(lst.Lines, Line{Method: cur.Name, Offset: in.Offset, Num: num, Comment: comment})
	}
	return lst, nil
}

// splitComment splits a line at the first "//" that is not inside a
// double-quoted string literal.
func splitComment(line string) (code, comment string) {
	inQuote := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '\\' && inQuote:
			i++
		case c == '"':
			inQuote = !inQuote
		case c == '/' && !inQuote && i+1 < len(line) && line[i+1] == '/':
			return line[:i], strings.TrimSpace(line[i+2:])
		}
	}
	return line, ""
}

func parseInstr(code string) (Instruction, error) {
	label, rest, ok := strings.Cut(code, ":")
	if !ok {
		return Instruction{}, fmt.Errorf("missing IL_ label")
	}
	offset, err := parseLabel(strings.TrimSpace(label))
	if err != nil {
		return Instruction{}, err
	}
	op, operand, _ := strings.Cut(strings.TrimSpace(rest), " ")
	if op == "" {
		return Instruction{}, fmt.Errorf("missing opcode")
	}
	operand = strings.TrimSpace(operand)

	in := Instruction{Offset: offset, Op: op}
	in.Kind, in.Pops, in.Pushes = kindOf(op)
	switch in.Kind {
	case Call, NewObject:
		sig, err := parseSignature(operand)
		if err != nil {
			return Instruction{}, fmt.Errorf("%s: %v", op, err)
		}
		if in.Kind == NewObject {
			if sig.Name != ".ctor" {
				return Instruction{}, fmt.Errorf("newobj target %s is not a constructor", sig.QualifiedName())
			}
			sig.IsConstructor = true
		}
		in.Operand = sig
	default:
		in.Arg = operand
	}
	return in, nil
}

func parseLabel(label string) (int, error) {
	hex, ok := strings.CutPrefix(label, "IL_")
	if !ok {
		return 0, fmt.Errorf("bad label %q, want IL_xxxx", label)
	}
	n, err := strconv.ParseUint(hex, 16, 31)
	if err != nil {
		return 0, fmt.Errorf("bad label %q: %v", label, err)
	}
	return int(n), nil
}

// kindOf maps a mnemonic to its stack-effect class and, for Compute
// and Jump, the number of values it pops and pushes.
func kindOf(op string) (kind Kind, pops, pushes int) {
	op = strings.ToLower(op)
	switch {
	case op == "call", op == "callvirt":
		return Call, 0, 0
	case op == "newobj":
		return NewObject, 0, 0
	case op == "pop":
		return Discard, 0, 0
	case op == "dup":
		return Duplicate, 0, 0
	case op == "ret":
		return Return, 0, 0
	case strings.HasPrefix(op, "stloc"), strings.HasPrefix(op, "starg"):
		return StoreLocal, 0, 0
	}

	short := strings.TrimSuffix(op, ".s")
	if n, ok := jumps[short]; ok {
		return Jump, n, 0
	}
	if e, ok := effects[short]; ok {
		return Compute, e[0], e[1]
	}
	for _, p := range effectPrefixes {
		if strings.HasPrefix(op, p.prefix) {
			return Compute, p.pops, p.pushes
		}
	}
	if strings.HasPrefix(op, "ld") {
		return Load, 0, 0
	}
	return Other, 0, 0
}

// jumps gives the operand count of unconditional transfers.
var jumps = map[string]int{
	"br":         0,
	"leave":      0,
	"jmp":        0,
	"throw":      1,
	"rethrow":    0,
	"endfinally": 0,
	"endfault":   0,
	"endfilter":  1,
}

// effects gives {pops, pushes} of instructions with a fixed stack
// effect, keyed by mnemonic without any ".s" suffix.
var effects = map[string][2]int{
	"nop": {0, 0}, "break": {0, 0},

	// Prefixes modify the next instruction.
	"constrained.": {0, 0}, "readonly.": {0, 0}, "tail.": {0, 0},
	"volatile.": {0, 0}, "unaligned.": {0, 0},

	"stfld": {2, 0}, "stsfld": {1, 0}, "stobj": {2, 0},
	"initobj": {1, 0}, "cpobj": {2, 0}, "initblk": {3, 0}, "cpblk": {3, 0},

	"brtrue": {1, 0}, "brfalse": {1, 0}, "brinst": {1, 0},
	"brnull": {1, 0}, "brzero": {1, 0}, "switch": {1, 0},
	"beq": {2, 0}, "bne.un": {2, 0},
	"bge": {2, 0}, "bge.un": {2, 0}, "bgt": {2, 0}, "bgt.un": {2, 0},
	"ble": {2, 0}, "ble.un": {2, 0}, "blt": {2, 0}, "blt.un": {2, 0},

	"ceq": {2, 1}, "cgt": {2, 1}, "cgt.un": {2, 1}, "clt": {2, 1}, "clt.un": {2, 1},
	"add": {2, 1}, "add.ovf": {2, 1}, "add.ovf.un": {2, 1},
	"sub": {2, 1}, "sub.ovf": {2, 1}, "sub.ovf.un": {2, 1},
	"mul": {2, 1}, "mul.ovf": {2, 1}, "mul.ovf.un": {2, 1},
	"div": {2, 1}, "div.un": {2, 1}, "rem": {2, 1}, "rem.un": {2, 1},
	"and": {2, 1}, "or": {2, 1}, "xor": {2, 1},
	"shl": {2, 1}, "shr": {2, 1}, "shr.un": {2, 1},
	"neg": {1, 1}, "not": {1, 1}, "ckfinite": {1, 1},

	"box": {1, 1}, "unbox": {1, 1}, "unbox.any": {1, 1},
	"castclass": {1, 1}, "isinst": {1, 1}, "newarr": {1, 1},
	"sizeof": {0, 1}, "arglist": {0, 1},
	"localloc": {1, 1}, "mkrefany": {1, 1}, "refanyval": {1, 1}, "refanytype": {1, 1},

	"ldfld": {1, 1}, "ldflda": {1, 1}, "ldlen": {1, 1},
	"ldobj": {1, 1}, "ldvirtftn": {1, 1}, "ldelema": {2, 1},
}

// effectPrefixes covers instruction families named by a common prefix.
var effectPrefixes = []struct {
	prefix       string
	pops, pushes int
}{
	{"conv.", 1, 1},
	{"ldelem", 2, 1},
	{"ldind.", 1, 1},
	{"stelem", 3, 0},
	{"stind.", 2, 0},
}

// parseSignature parses a call operand of the form
//
//	[instance] RetType DeclaringType::Name(ParamType, ...)
func parseSignature(s string) (*Signature, error) {
	sig := new(Signature)
	if rest, ok := strings.CutPrefix(s, "instance "); ok {
		sig.HasThis = true
		s = strings.TrimSpace(rest)
	}
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("malformed signature %q", s)
	}
	head, params := strings.TrimSpace(s[:open]), s[open+1:len(s)-1]

	// The member is the last word outside any generic argument list,
	// optionally preceded by a class or valuetype keyword.
	words := splitWords(head)
	if len(words) < 2 {
		return nil, fmt.Errorf("signature %q has no return type", s)
	}
	member := words[len(words)-1]
	words = words[:len(words)-1]
	if kw := words[len(words)-1]; (kw == "class" || kw == "valuetype") && len(words) > 1 {
		words = words[:len(words)-1]
	}
	sig.Return = normalizeType(strings.Join(words, " "))
	colons := strings.LastIndex(member, "::")
	if colons <= 0 || colons+2 == len(member) {
		return nil, fmt.Errorf("malformed member %q", member)
	}
	sig.DeclaringType = normalizeType(member[:colons])
	sig.Name = member[colons+2:]

	for _, p := range splitParams(params) {
		if p = normalizeType(p); p == "" {
			return nil, fmt.Errorf("empty parameter type in %q", s)
		}
		sig.Params = append(sig.Params, p)
	}
	return sig, nil
}

// splitParams splits a parameter list at top-level commas, so that
// generic instantiations such as Dictionary`2<K,V> stay whole.
func splitParams(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return splitTopLevel(s, ',')
}

// splitWords splits s at top-level spaces, dropping empty words, so
// that Dictionary`2<string, int32> is one word.
func splitWords(s string) []string {
	var words []string
	for _, w := range splitTopLevel(s, ' ') {
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

// splitTopLevel splits s at each sep that is not nested inside <> or [].
func splitTopLevel(s string, sep byte) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '[':
			depth++
		case '>', ']':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// builtinTypes maps assembler keywords to the types they denote.
var builtinTypes = map[string]string{
	"void":        "System.Void",
	"bool":        "System.Boolean",
	"char":        "System.Char",
	"int8":        "System.SByte",
	"uint8":       "System.Byte",
	"int16":       "System.Int16",
	"uint16":      "System.UInt16",
	"int32":       "System.Int32",
	"uint32":      "System.UInt32",
	"int64":       "System.Int64",
	"uint64":      "System.UInt64",
	"float32":     "System.Single",
	"float64":     "System.Double",
	"string":      "System.String",
	"object":      "System.Object",
	"native int":  "System.IntPtr",
	"native uint": "System.UIntPtr",
}

func normalizeType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimPrefix(t, "class ")
	t = strings.TrimPrefix(t, "valuetype ")
	// Drop an assembly scope such as [mscorlib].
	if strings.HasPrefix(t, "[") {
		if end := strings.IndexByte(t, ']'); end > 1 {
			t = t[end+1:]
		}
	}
	if full, ok := builtinTypes[t]; ok {
		return full
	}
	return t
}
