// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"fmt"
	"go/token"
	"strings"
)

// Validate reports an error if any of the rules are misconfigured.
// Checks include:
// that the name is a valid identifier;
// that the Doc is not empty;
// that the Run is non-nil;
// and that no two rules share a name.
func Validate(rules []*Rule) error {
	names := make(map[string]bool)
	for i, r := range rules {
		if r == nil {
			return fmt.Errorf("nil *Rule at index %d", i)
		}
		if !token.IsIdentifier(r.Name) {
			return fmt.Errorf("rule %q is not a valid identifier", r.Name)
		}
		if strings.TrimSpace(r.Doc) == "" {
			return fmt.Errorf("rule %q is undocumented", r)
		}
		if r.Run == nil {
			return fmt.Errorf("rule %q has nil Run", r)
		}
		if names[r.Name] {
			return fmt.Errorf("duplicate rule name %q", r)
		}
		names[r.Name] = true
	}
	return nil
}
