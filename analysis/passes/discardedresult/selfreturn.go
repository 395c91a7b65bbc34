// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

import "github.com/ilvet/ilvet/il"

// isSelfReturning reports whether sig is a fluent call, one that
// returns its own declaring type and so, by convention, the receiver
// it was called on.
//
// Same-type results of immutable types (String.Trim) and of methods
// known to build a new instance (PermissionSet.Union) are new values,
// not the receiver. Constructors are never self-returning. Types are
// compared by generic definition, so Builder`1<!0> returned from
// Builder`1<int32> is the same type.
func isSelfReturning(reg *Registry, sig *il.Signature) bool {
	if sig.IsConstructor || genericDef(sig.Return) != genericDef(sig.DeclaringType) {
		return false
	}
	return !reg.IsImmutable(sig.DeclaringType) && !reg.ReturnsFresh(sig)
}

// ignorable reports whether a bare statement calling sig may drop
// its result.
func ignorable(reg *Registry, sig *il.Signature, exemptSelfReturning bool) bool {
	if exemptSelfReturning && isSelfReturning(reg, sig) {
		return true
	}
	return reg.IsExempt(sig)
}
