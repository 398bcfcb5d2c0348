package gen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// The following types and their exported methods are used by the
// synthesizers to emit the assets.
type (
	// Type is the resolved capability set for one wrapper-type declaration.
	// It is built once by Resolve, consumed by the synthesizers, and
	// immutable thereafter.
	Type struct {
		// Name holds the wrapper type name.
		Name string
		// DisplayName is the human-readable name used in generated
		// documentation and error text. Defaults to the lower-cased
		// type name; repeated name fragments concatenate into it.
		DisplayName string
		// Owned holds the owned companion type request, if any.
		Owned *OwnedType
		// ForeignEq lists foreign types receiving symmetric equality,
		// in declaration order. Duplicates are kept and re-emitted.
		ForeignEq []TypeRef
		// ForeignOrd lists foreign types receiving symmetric ordering.
		// Every entry also participates in equality.
		ForeignOrd []TypeRef
		// NoDeref suppresses the transparent view: the wrapper is
		// emitted as an opaque struct instead of a defined string type.
		NoDeref bool
		// Infallible marks the validation predicates as always holding.
		// No error carrier and no error-shaped constructors are emitted.
		Infallible bool
		// Serde requests the text serialization capability.
		Serde bool
	}

	// OwnedType describes the owned companion type.
	OwnedType struct {
		// Name holds the owned type name.
		Name string
		// Derives holds the additional capabilities to generate.
		Derives DeriveSet
	}

	// TypeRef names a foreign type against which comparison capabilities
	// are generated. The builtin refs use Name "string" and "bytes"; any
	// other ref is a (possibly package-qualified) Go type.
	TypeRef struct {
		Pkg  string
		Name string
	}
)

// Fallible reports whether constructors carry an error channel.
func (t *Type) Fallible() bool {
	return !t.Infallible
}

// Display returns the resolved display name, falling back to the
// lower-cased type name.
func (t *Type) Display() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return strings.ToLower(t.Name)
}

// ForeignEqAll returns the equality list followed by the ordering list.
// Ordering presupposes equality, so every ordered type gets an equality
// pair even when it was not separately listed under eq.
func (t *Type) ForeignEqAll() []TypeRef {
	refs := make([]TypeRef, 0, len(t.ForeignEq)+len(t.ForeignOrd))
	refs = append(refs, t.ForeignEq...)
	refs = append(refs, t.ForeignOrd...)
	return refs
}

// ErrorIdent returns the name of the generated error carrier type.
func (t *Type) ErrorIdent() string {
	return "Invalid" + t.Name
}

// FileBase returns the base name used for generated files.
func (t *Type) FileBase() string {
	return strings.ToLower(t.Name)
}

// Receiver returns the receiver identifier for wrapper methods.
func (t *Type) Receiver() string {
	r, _ := utf8.DecodeRuneInString(t.Name)
	if r == utf8.RuneError {
		return "t"
	}
	return string(unicode.ToLower(r))
}

// AsMethod returns the name of the borrowing accessor shared by the
// wrapper (as-self) and the owned type.
func (t *Type) AsMethod() string {
	return "As" + t.Name
}

// ToOwnedMethod returns the name of the wrapper's to-owned conversion.
func (t *Type) ToOwnedMethod() string {
	return "To" + t.Owned.Name
}

// ValidateBytesFunc returns the name of the consumer-supplied byte
// predicate.
func (t *Type) ValidateBytesFunc() string {
	return "validate" + t.Name + "Bytes"
}

// ValidateTextFunc returns the name of the consumer-supplied text
// predicate.
func (t *Type) ValidateTextFunc() string {
	return "validate" + t.Name + "Text"
}

// DefaultFunc returns the name of the consumer-supplied default-value hook
// required by the Default derive.
func (t *Type) DefaultFunc() string {
	return "default" + t.Name
}

// String returns the printable form of the reference.
func (r TypeRef) String() string {
	if r.Pkg != "" {
		return r.Pkg + "." + r.Name
	}
	return r.Name
}

// Suffix returns the Go-name suffix identifying this foreign type in
// generated method names (EqualString, CompareBytes, ...).
func (r TypeRef) Suffix() string {
	switch r.Name {
	case "string":
		return "String"
	case "bytes", "[]byte":
		return "Bytes"
	}
	if first, _ := utf8.DecodeRuneInString(r.Name); unicode.IsUpper(first) {
		return r.Name
	}
	return inflect.Camelize(r.Name)
}

// Derive is one of the six recognized owned-type capabilities.
type Derive uint8

// The recognized derive flags.
const (
	DeriveDefault Derive = iota
	DerivePartialEq
	DeriveEq
	DerivePartialOrd
	DeriveOrd
	DeriveHash

	numDerives
)

var deriveNames = [numDerives]string{
	DeriveDefault:    "Default",
	DerivePartialEq:  "PartialEq",
	DeriveEq:         "Eq",
	DerivePartialOrd: "PartialOrd",
	DeriveOrd:        "Ord",
	DeriveHash:       "Hash",
}

// String returns the capability name.
func (d Derive) String() string {
	if d < numDerives {
		return deriveNames[d]
	}
	return "Unknown"
}

// ParseDerive parses a capability name into a Derive. Unknown names are
// configuration errors.
func ParseDerive(name string) (Derive, error) {
	for d, n := range deriveNames {
		if n == name {
			return Derive(d), nil
		}
	}
	return 0, NewConfigError("owned.derive", name, "unknown derive; use Default, PartialEq, Eq, PartialOrd, Ord, or Hash")
}

// DeriveSet is a growable set of derive flags. Accumulation is idempotent:
// a flag appearing in multiple fragments is recorded once.
type DeriveSet uint8

// Add inserts d into the set.
func (s *DeriveSet) Add(d Derive) {
	*s |= 1 << d
}

// Merge inserts every flag of other into the set.
func (s *DeriveSet) Merge(other DeriveSet) {
	*s |= other
}

// Has reports whether d is in the set.
func (s DeriveSet) Has(d Derive) bool {
	return s&(1<<d) != 0
}

// List returns the flags in declaration order.
func (s DeriveSet) List() []Derive {
	var out []Derive
	for d := Derive(0); d < numDerives; d++ {
		if s.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

// String returns the set in a stable, readable form.
func (s DeriveSet) String() string {
	list := s.List()
	names := make([]string, len(list))
	for i, d := range list {
		names[i] = d.String()
	}
	return "{" + strings.Join(names, ", ") + "}"
}
