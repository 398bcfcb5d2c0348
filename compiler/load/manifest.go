// Package load reads strtype manifests. It is the surface-syntax layer:
// it turns a YAML document into the raw configuration fragments consumed
// by the resolver in compiler/gen, and nothing more.
package load

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/strtype/strtype/compiler/gen"
)

// Manifest is one strtype.yaml document: the tool-level output settings
// plus the list of wrapper-type declarations.
type Manifest struct {
	// Package is the output package import path.
	Package string `yaml:"package"`
	// Target is the output directory.
	Target string `yaml:"target"`
	// Header overrides the generated file header comment.
	Header string `yaml:"header,omitempty"`
	// Features enables optional tool features by name.
	Features []string `yaml:"features,omitempty"`
	// Types holds the wrapper-type declarations.
	Types []*Declaration `yaml:"types"`
}

// Declaration is one wrapper-type declaration: a type name and the
// configuration fragments that apply to it, in document order.
type Declaration struct {
	Name      string        `yaml:"name"`
	Fragments []FragmentDoc `yaml:"fragments"`
}

// FragmentDoc is the YAML form of one configuration fragment.
type FragmentDoc struct {
	Name       *string   `yaml:"name,omitempty"`
	Owned      *OwnedDoc `yaml:"owned,omitempty"`
	Eq         []string  `yaml:"eq,omitempty"`
	Ord        []string  `yaml:"ord,omitempty"`
	Serde      bool      `yaml:"serde,omitempty"`
	NoDeref    bool      `yaml:"no_deref,omitempty"`
	Infallible bool      `yaml:"infallible,omitempty"`
}

// OwnedDoc is the YAML form of the owned(...) sub-option list.
type OwnedDoc struct {
	Name   string   `yaml:"name,omitempty"`
	Derive []string `yaml:"derive,omitempty"`
}

// Parse decodes a manifest. Decoding is strict: unknown keys are manifest
// errors, so a typoed capability name fails loudly instead of silently
// generating less than asked for.
func Parse(r io.Reader) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("strtype: parse manifest: %w", err)
	}
	if len(m.Types) == 0 {
		return nil, fmt.Errorf("strtype: manifest declares no types")
	}
	for i, d := range m.Types {
		if d.Name == "" {
			return nil, fmt.Errorf("strtype: manifest type %d has no name", i)
		}
	}
	return &m, nil
}

// ParseFile decodes the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("strtype: open manifest: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// GenFragments converts the declaration's raw fragments into the resolver
// input form.
func (d *Declaration) GenFragments() []gen.Fragment {
	out := make([]gen.Fragment, 0, len(d.Fragments))
	for _, fd := range d.Fragments {
		f := gen.Fragment{
			Name:       fd.Name,
			Eq:         parseRefs(fd.Eq),
			Ord:        parseRefs(fd.Ord),
			Serde:      fd.Serde,
			NoDeref:    fd.NoDeref,
			Infallible: fd.Infallible,
		}
		if fd.Owned != nil {
			f.Owned = &gen.OwnedFragment{
				Name:   fd.Owned.Name,
				Derive: fd.Owned.Derive,
			}
		}
		out = append(out, f)
	}
	return out
}

func parseRefs(raw []string) []gen.TypeRef {
	if len(raw) == 0 {
		return nil
	}
	refs := make([]gen.TypeRef, len(raw))
	for i, s := range raw {
		refs[i] = parseRef(s)
	}
	return refs
}

// parseRef splits a foreign type reference into package path and type
// name. "string" and "bytes" are builtins; everything else is either a
// local type name or a slash-qualified import path ending in ".Name".
func parseRef(s string) gen.TypeRef {
	switch s {
	case "string", "bytes", "[]byte":
		return gen.TypeRef{Name: s}
	}
	if idx := strings.LastIndex(s, "."); idx > 0 {
		return gen.TypeRef{Pkg: s[:idx], Name: s[idx+1:]}
	}
	return gen.TypeRef{Name: s}
}
