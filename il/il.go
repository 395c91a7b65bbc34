// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package il defines a representation of a decoded method body: an
// ordered sequence of instructions, each tagged with a Kind and, for
// calls and constructions, the resolved signature of the callee.
//
// Bodies are produced by a decoder (or by Parse, from the textual
// listing form) and are never modified by the analyses that consume
// them.
package il

import (
	"fmt"
	"strings"
)

// A Kind classifies an instruction by its effect on the operand stack.
//
// The set of kinds is closed; clients that switch over it should
// treat any kind they do not recognize like Other.
type Kind uint8

const (
	// Other is an instruction whose stack effect is not modeled.
	// It is treated as having no effect at all.
	Other Kind = iota

	Call       // pops the arguments and, for instance calls, the receiver; pushes a non-void result
	NewObject  // pops the constructor arguments; pushes the new object
	Discard    // pops one value and drops it
	Duplicate  // pops one value and pushes two copies of it
	StoreLocal // pops one value into a local variable or argument
	Return     // pops whatever is left and leaves the method
	Load       // pushes one value: a constant, local, argument or static field

	// Compute pops Pops operands and pushes Pushes new values:
	// field stores, conditional branches, arithmetic and the like.
	Compute

	// Jump pops Pops operands and transfers control unconditionally
	// (br, leave, throw), so nothing on the stack reaches the next
	// instruction in sequence.
	Jump
)

var kindNames = [...]string{
	Other:      "Other",
	Call:       "Call",
	NewObject:  "NewObject",
	Discard:    "Discard",
	Duplicate:  "Duplicate",
	StoreLocal: "StoreLocal",
	Return:     "Return",
	Load:       "Load",
	Compute:    "Compute",
	Jump:       "Jump",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Void is the return type of a method that produces no value.
const Void = "System.Void"

// A Signature describes the resolved target of a call or construction.
//
// Type names are namespace-qualified and compared case-sensitively.
type Signature struct {
	DeclaringType string
	Name          string
	Params        []string // parameter types, in order
	Return        string   // Void if the method returns nothing
	IsConstructor bool
	HasThis       bool // instance member: a receiver is passed before Params
}

// Arity returns the number of declared parameters, not counting the receiver.
func (sig *Signature) Arity() int { return len(sig.Params) }

// IsVoid reports whether the method returns no value.
func (sig *Signature) IsVoid() bool { return sig.Return == Void || sig.Return == "" }

// QualifiedName returns the member name qualified by its declaring type,
// e.g. "System.String::Trim".
func (sig *Signature) QualifiedName() string {
	return sig.DeclaringType + "::" + sig.Name
}

// Equal reports whether sig and other describe the same member:
// every field must match exactly.
func (sig *Signature) Equal(other *Signature) bool {
	if sig == nil || other == nil {
		return sig == other
	}
	if sig.DeclaringType != other.DeclaringType ||
		sig.Name != other.Name ||
		sig.Return != other.Return ||
		sig.IsConstructor != other.IsConstructor ||
		sig.HasThis != other.HasThis ||
		len(sig.Params) != len(other.Params) {
		return false
	}
	for i := range sig.Params {
		if sig.Params[i] != other.Params[i] {
			return false
		}
	}
	return true
}

// String returns the signature in listing syntax, for example
//
//	instance System.String System.String::ToUpper(System.Globalization.CultureInfo)
func (sig *Signature) String() string {
	var b strings.Builder
	if sig.HasThis {
		b.WriteString("instance ")
	}
	ret := sig.Return
	if ret == "" {
		ret = Void
	}
	b.WriteString(ret)
	b.WriteByte(' ')
	b.WriteString(sig.QualifiedName())
	b.WriteByte('(')
	b.WriteString(strings.Join(sig.Params, ","))
	b.WriteByte(')')
	return b.String()
}

// An Instruction is one decoded instruction of a method body.
type Instruction struct {
	Offset  int        // position within the body; unique and increasing
	Kind    Kind       // stack-effect class
	Op      string     // mnemonic, e.g. "callvirt"; may be empty
	Operand *Signature // callee; non-nil exactly for Call and NewObject
	Arg     string     // any other operand, verbatim (e.g. a string literal)

	// Stack effect of Compute and Jump instructions; zero otherwise.
	Pops, Pushes int
}

// A MethodBody is the ordered instruction sequence of one method.
type MethodBody struct {
	Name         string // qualified method name, e.g. "Item::Violations"
	Instructions []Instruction
}

// Validate checks the structural guarantees a decoder must provide:
// strictly increasing offsets, a signature on every call and
// construction, and stack effects only where the kind has one.
func (b *MethodBody) Validate() error {
	for i := range b.Instructions {
		in := &b.Instructions[i]
		if i > 0 && in.Offset <= b.Instructions[i-1].Offset {
			return fmt.Errorf("%s: offset IL_%04x does not follow IL_%04x", b.Name, in.Offset, b.Instructions[i-1].Offset)
		}
		switch in.Kind {
		case Compute, Jump:
			if in.Pops < 0 || in.Pushes < 0 {
				return fmt.Errorf("%s: IL_%04x: negative stack effect on %s", b.Name, in.Offset, in.Kind)
			}
			if in.Kind == Jump && in.Pushes != 0 {
				return fmt.Errorf("%s: IL_%04x: %s pushes %d values", b.Name, in.Offset, in.Kind, in.Pushes)
			}
		default:
			if in.Pops != 0 || in.Pushes != 0 {
				return fmt.Errorf("%s: IL_%04x: stack effect on %s", b.Name, in.Offset, in.Kind)
			}
		}
		switch in.Kind {
		case Call, NewObject:
			if in.Operand == nil {
				return fmt.Errorf("%s: IL_%04x: %s without a signature", b.Name, in.Offset, in.Kind)
			}
			if in.Kind == NewObject && !in.Operand.IsConstructor {
				return fmt.Errorf("%s: IL_%04x: newobj target %s is not a constructor", b.Name, in.Offset, in.Operand.QualifiedName())
			}
		default:
			if in.Operand != nil {
				return fmt.Errorf("%s: IL_%04x: unexpected signature on %s", b.Name, in.Offset, in.Kind)
			}
		}
	}
	return nil
}

// Instr returns the instruction at the given offset, or nil.
func (b *MethodBody) Instr(offset int) *Instruction {
	lo, hi := 0, len(b.Instructions)
	for lo < hi {
		mid := (lo + hi) / 2
		switch off := b.Instructions[mid].Offset; {
		case off == offset:
			return &b.Instructions[mid]
		case off < offset:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return nil
}
