// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package discardedresult defines a Rule that reports calls and
constructions whose result is computed and then thrown away.

# Rule discardedresult

discardedresult: report method results and new objects that are discarded

The discardedresult rule simulates the operand stack of a method body
and reports each call or construction that forms a statement of its own
whose value is dropped unread, for example

	"violationOne".ToUpper(CultureInfo.InvariantCulture);
	new Item();

Strings and other immutable values are returned, not modified in place,
so ignoring the result of such a call usually means the call is useless
or its effect was lost.

A value that is stored, returned, passed as an argument or used as the
receiver of another call is never reported. Calls whose return type is
their own declaring type (such as StringBuilder.Append) are not
reported either, because the caller still holds the receiver: this is
what keeps fluent chains quiet. Methods of immutable types and methods
known to return a new instance (PermissionSet.Union) do not count as
self-returning.

A fixed table exempts APIs whose result is conventionally optional,
such as Directory.CreateDirectory, and constructors that are useful for
their side effect alone, such as System.Threading.Timer. The
-exemptions flag names a YAML file of additional entries:

	version: v1
	methods:
	  - {type: System.IO.Directory, name: CreateDirectory, arity: 1}
	constructors: [System.Threading.Timer]
	immutable: [System.String]
	fresh:
	  - {type: System.Security.PermissionSet, name: Union, arity: 1}

Field stores, branches, arithmetic and similar instructions consume
their operands like any other use. After an unconditional branch or a
throw the stack is taken to be empty. Instructions whose stack effect
is not modeled are treated as opaque, and no value live across one of
them is ever reported.
*/
package discardedresult
