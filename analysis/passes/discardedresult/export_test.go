// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

// SetRegistryForTesting replaces the registry in effect and returns a
// function restoring the previous one.
func SetRegistryForTesting(r *Registry) (restore func()) {
	old := registry
	registry = r
	return func() { registry = old }
}
