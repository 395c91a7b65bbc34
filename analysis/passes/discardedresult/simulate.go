// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

import "github.com/ilvet/ilvet/il"

// A slot is the symbolic value of one operand stack entry.
type slot struct {
	// producer is the call or construction that pushed the value,
	// or nil for values of no interest (loads, copies, unknowns).
	producer *il.Instruction

	// statement reports whether the producer ran on an otherwise
	// empty stack, so that dropping this value makes the producer a
	// bare top-level statement.
	statement bool
}

// A simulator tracks the operand stack through one forward pass.
type simulator struct {
	stack []slot            // top is last
	bare  []*il.Instruction // bare top-level statements, in order
}

// bareStatements returns the calls and constructions of body that are
// executed as statements of their own and whose single value is then
// dropped by a Discard, in instruction order.
//
// The simulation is a single forward pass. Values are consumed by use
// (as receiver, argument, store or return value) or by discard; only
// the latter, applied to a value produced at depth zero, makes a bare
// statement. Values still on the stack when the body falls off its
// end are ignored.
//
// An unconditional jump empties the stack. A call whose operands run
// past the bottom of the stack, as after a join point, cannot be
// placed at a known depth and never becomes a statement.
func bareStatements(body *il.MethodBody) []*il.Instruction {
	if !hasDiscard(body) {
		return nil
	}
	var sim simulator
	for i := range body.Instructions {
		sim.step(&body.Instructions[i])
	}
	return sim.bare
}

func hasDiscard(body *il.MethodBody) bool {
	for i := range body.Instructions {
		if body.Instructions[i].Kind == il.Discard {
			return true
		}
	}
	return false
}

func (sim *simulator) step(in *il.Instruction) {
	switch in.Kind {
	case il.Call:
		sig := in.Operand
		if sig == nil {
			sim.opaque()
			return
		}
		n := sig.Arity()
		if sig.HasThis {
			n++
		}
		exact := sim.use(n)
		if !sig.IsVoid() {
			sim.produce(in, exact)
		}

	case il.NewObject:
		if in.Operand == nil {
			sim.opaque()
			return
		}
		// The constructor's declared return is void;
		// newobj itself pushes the new reference.
		exact := sim.use(in.Operand.Arity())
		sim.produce(in, exact)

	case il.Discard:
		if s, ok := sim.pop(); ok && s.statement {
			sim.bare = append(sim.bare, s.producer)
		}

	case il.Duplicate:
		sim.use(1)
		sim.push(nil)
		sim.push(nil)

	case il.StoreLocal:
		sim.use(1)

	case il.Return:
		sim.use(len(sim.stack))

	case il.Load:
		sim.push(nil)

	case il.Compute:
		sim.use(in.Pops)
		for i := 0; i < in.Pushes; i++ {
			sim.push(nil)
		}

	case il.Jump:
		sim.use(in.Pops)
		sim.stack = sim.stack[:0]

	case il.Other:
		sim.opaque()

	default:
		sim.opaque()
	}
}

// push pushes the value produced by in, which may be nil.
// The depth is measured after in has popped its own operands.
func (sim *simulator) push(in *il.Instruction) {
	sim.stack = append(sim.stack, slot{
		producer:  in,
		statement: in != nil && len(sim.stack) == 0,
	})
}

// produce pushes the value of a call or construction. If exact is
// false the producer's depth is unknown and it is not a statement.
func (sim *simulator) produce(in *il.Instruction, exact bool) {
	sim.push(in)
	if !exact {
		sim.stack[len(sim.stack)-1].statement = false
	}
}

// pop removes the top slot. It reports false if the stack is empty,
// which happens when an operand came from an instruction whose push
// was not modeled.
func (sim *simulator) pop() (slot, bool) {
	n := len(sim.stack)
	if n == 0 {
		return slot{}, false
	}
	s := sim.stack[n-1]
	sim.stack = sim.stack[:n-1]
	return s, true
}

// use pops n operands consumed by use.
// It reports false if the stack ran out first.
func (sim *simulator) use(n int) bool {
	for ; n > 0; n-- {
		if _, ok := sim.pop(); !ok {
			return false
		}
	}
	return true
}

// opaque handles an instruction whose effect on the stack is unknown.
// Its net effect is taken to be zero, but no value live across it can
// be trusted any more, so none of them may become a bare statement.
func (sim *simulator) opaque() {
	for i := range sim.stack {
		sim.stack[i].statement = false
	}
}
