// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

// DefaultExemptions is the built-in table of framework APIs whose
// results may be dropped. Adding an entry here, or in a file passed
// with -exemptions, is the way to silence a legitimate pattern.
var DefaultExemptions = Exemptions{
	Version: "v1",
	Methods: []MethodKey{
		// The DirectoryInfo these return is rarely needed again.
		{"System.IO.Directory", "CreateDirectory", 1},
		{"System.IO.Directory", "CreateDirectory", 2},
		{"System.IO.DirectoryInfo", "CreateSubdirectory", 1},
		{"System.IO.DirectoryInfo", "CreateSubdirectory", 2},

		// These mutate the set in place; the returned permission is incidental.
		{"System.Security.PermissionSet", "AddPermission", 1},
		{"System.Security.PermissionSet", "RemovePermission", 1},
		{"System.Security.PermissionSet", "SetPermission", 1},

		// Set and map mutators that also report whether anything changed.
		{"System.Collections.Generic.HashSet`1", "Add", 1},
		{"System.Collections.Generic.HashSet`1", "Remove", 1},
		{"System.Collections.Generic.SortedSet`1", "Add", 1},
		{"System.Collections.Generic.SortedSet`1", "Remove", 1},
		{"System.Collections.Generic.ISet`1", "Add", 1},
		{"System.Collections.Generic.ICollection`1", "Remove", 1},
		{"System.Collections.Generic.List`1", "Remove", 1},
		{"System.Collections.Generic.List`1", "RemoveAll", 1},
		{"System.Collections.Generic.Dictionary`2", "Remove", 1},
		{"System.Collections.Generic.Dictionary`2", "TryAdd", 2},
		{"System.Collections.ArrayList", "Add", 1},

		// Removing an element is often the whole point.
		{"System.Collections.Stack", "Pop", 0},
		{"System.Collections.Queue", "Dequeue", 0},
		{"System.Collections.Generic.Stack`1", "Pop", 0},
		{"System.Collections.Generic.Queue`1", "Dequeue", 0},

		// Atomic updates return the old or new value as a convenience.
		{"System.Threading.Interlocked", "Increment", 1},
		{"System.Threading.Interlocked", "Decrement", 1},
		{"System.Threading.Interlocked", "Add", 2},
		{"System.Threading.Interlocked", "Exchange", 2},
		{"System.Threading.Interlocked", "CompareExchange", 3},

		{"System.Threading.ThreadPool", "QueueUserWorkItem", 1},
		{"System.Threading.ThreadPool", "QueueUserWorkItem", 2},
	},
	Constructors: []string{
		// The callback keeps running whether or not the timer is referenced.
		"System.Threading.Timer",
	},
	Immutable: []string{
		"System.String",
		"System.DateTime",
		"System.DateTimeOffset",
		"System.TimeSpan",
		"System.Decimal",
		"System.Version",
		"System.Uri",
	},
	Fresh: []MethodKey{
		{"System.Security.PermissionSet", "Union", 1},
		{"System.Security.PermissionSet", "Intersect", 1},
		{"System.Security.PermissionSet", "Copy", 0},
		{"System.Delegate", "Combine", 2},
		{"System.Delegate", "Remove", 2},
	},
}
