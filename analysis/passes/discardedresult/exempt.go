// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discardedresult

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/ilvet/ilvet/il"
)

// A MethodKey identifies a method by declaring type, name and number
// of parameters. Generic instantiations are keyed by their definition:
// HashSet`1<System.Int32> and HashSet`1<System.String> share the key
// of HashSet`1.
type MethodKey struct {
	Type  string `yaml:"type"`
	Name  string `yaml:"name"`
	Arity int    `yaml:"arity"`
}

func (k MethodKey) String() string { return fmt.Sprintf("%s::%s/%d", k.Type, k.Name, k.Arity) }

func keyOf(sig *il.Signature) MethodKey {
	return MethodKey{Type: genericDef(sig.DeclaringType), Name: sig.Name, Arity: sig.Arity()}
}

// genericDef strips the type arguments from a generic instantiation.
func genericDef(typ string) string {
	if i := strings.IndexByte(typ, '<'); i > 0 {
		return typ[:i]
	}
	return typ
}

// Exemptions is the serialized form of a Registry.
type Exemptions struct {
	Version      string      `yaml:"version"`
	Methods      []MethodKey `yaml:"methods"`      // results that are optional to use
	Constructors []string    `yaml:"constructors"` // types constructed for their side effect
	Immutable    []string    `yaml:"immutable"`    // types whose same-type results are new values
	Fresh        []MethodKey `yaml:"fresh"`        // methods returning a new instance of their own type
}

// A Registry is a read-only lookup table deciding which discarded
// results are legitimate. The zero Registry, and a nil *Registry,
// exempt nothing.
type Registry struct {
	methods      map[MethodKey]bool
	constructors map[string]bool
	immutable    map[string]bool
	fresh        map[MethodKey]bool
}

// NewRegistry builds a Registry from its serialized form.
func NewRegistry(e *Exemptions) *Registry {
	r := &Registry{
		methods:      make(map[MethodKey]bool),
		constructors: make(map[string]bool),
		immutable:    make(map[string]bool),
		fresh:        make(map[MethodKey]bool),
	}
	for _, k := range e.Methods {
		k.Type = genericDef(k.Type)
		r.methods[k] = true
	}
	for _, t := range e.Constructors {
		r.constructors[genericDef(t)] = true
	}
	for _, t := range e.Immutable {
		r.immutable[genericDef(t)] = true
	}
	for _, k := range e.Fresh {
		k.Type = genericDef(k.Type)
		r.fresh[k] = true
	}
	return r
}

// Default returns a Registry holding DefaultExemptions.
func Default() *Registry { return NewRegistry(&DefaultExemptions) }

// IsExempt reports whether discarding the result of sig is
// legitimate according to the tables. Constructors are looked up by
// declaring type alone, other methods by their exact key.
func (r *Registry) IsExempt(sig *il.Signature) bool {
	if r == nil {
		return false
	}
	if sig.IsConstructor {
		return r.constructors[genericDef(sig.DeclaringType)]
	}
	return r.methods[keyOf(sig)]
}

// IsImmutable reports whether typ is an immutable type, one whose
// methods return new values rather than their receiver.
func (r *Registry) IsImmutable(typ string) bool {
	return r != nil && r.immutable[genericDef(typ)]
}

// ReturnsFresh reports whether sig is known to return a new instance
// of its declaring type rather than its receiver.
func (r *Registry) ReturnsFresh(sig *il.Signature) bool {
	return r != nil && r.fresh[keyOf(sig)]
}

// Merge returns a new Registry holding the entries of both r and other.
func (r *Registry) Merge(other *Registry) *Registry {
	m := NewRegistry(&Exemptions{})
	for _, src := range []*Registry{r, other} {
		if src == nil {
			continue
		}
		for k := range src.methods {
			m.methods[k] = true
		}
		for t := range src.constructors {
			m.constructors[t] = true
		}
		for t := range src.immutable {
			m.immutable[t] = true
		}
		for k := range src.fresh {
			m.fresh[k] = true
		}
	}
	return m
}

// LoadRegistry reads a Registry from the named YAML file.
func LoadRegistry(filename string) (*Registry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r, err := ReadRegistry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return r, nil
}

// ReadRegistry decodes a YAML Exemptions document from in.
// Unknown fields are rejected, and the version must be v1.
func ReadRegistry(in io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(in)
	dec.KnownFields(true)
	var e Exemptions
	if err := dec.Decode(&e); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty exemptions document")
		}
		return nil, err
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return NewRegistry(&e), nil
}

func (e *Exemptions) validate() error {
	if !semver.IsValid(e.Version) {
		return fmt.Errorf("invalid version %q", e.Version)
	}
	if major := semver.Major(e.Version); major != "v1" {
		return fmt.Errorf("unsupported version %s (want v1)", e.Version)
	}
	for _, list := range []struct {
		field string
		keys  []MethodKey
	}{{"methods", e.Methods}, {"fresh", e.Fresh}} {
		for i, k := range list.keys {
			if k.Type == "" || k.Name == "" || k.Arity < 0 {
				return fmt.Errorf("%s[%d]: incomplete entry %s", list.field, i, k)
			}
		}
	}
	for _, list := range []struct {
		field string
		types []string
	}{{"constructors", e.Constructors}, {"immutable", e.Immutable}} {
		for i, t := range list.types {
			if strings.TrimSpace(t) == "" {
				return fmt.Errorf("%s[%d]: empty type name", list.field, i)
			}
		}
	}
	return nil
}
