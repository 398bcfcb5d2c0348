package gen

// Fragment is one parsed occurrence of the wrapper-type configuration
// grammar. Fragments arrive pre-parsed (the surface syntax lives in
// compiler/load); the resolver only folds them.
type Fragment struct {
	// Name appends to the display name.
	Name *string
	// Owned requests or extends the owned companion type.
	Owned *OwnedFragment
	// Eq lists foreign types to generate symmetric equality against.
	Eq []TypeRef
	// Ord lists foreign types to generate symmetric ordering against.
	Ord []TypeRef
	// Serde requests the serialization capability.
	Serde bool
	// NoDeref suppresses the transparent view.
	NoDeref bool
	// Infallible marks the validation predicates as always holding.
	Infallible bool
}

// OwnedFragment is the owned(...) sub-option list of a fragment. Derive
// holds raw capability names; they are validated during resolution.
type OwnedFragment struct {
	Name   string
	Derive []string
}

// Resolve folds fragments into the capability set for one declaration.
//
// Merge policy: the owned type name and the serde, no_deref and infallible
// flags are last-write-wins; eq, ord and derive accumulate; the display
// name CONCATENATES across repeated name fragments. The concatenation is a
// long-standing oddity kept for compatibility with existing declarations --
// repeating a name fragment does not replace the name, it extends it.
//
// Resolve fails with a ConfigError when a fragment is structurally invalid:
// an unknown derive name, or an owned fragment whose first occurrence
// carries no type name.
func Resolve(name string, fragments []Fragment) (*Type, error) {
	if name == "" {
		return nil, NewConfigError("name", nil, "missing wrapper type name")
	}
	t := &Type{Name: name}
	for _, f := range fragments {
		if err := apply(t, f); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func apply(t *Type, f Fragment) error {
	if f.Name != nil {
		t.DisplayName += *f.Name
	}
	if f.Owned != nil {
		var derives DeriveSet
		for _, raw := range f.Owned.Derive {
			d, err := ParseDerive(raw)
			if err != nil {
				return err
			}
			derives.Add(d)
		}
		switch {
		case t.Owned != nil:
			if f.Owned.Name != "" {
				t.Owned.Name = f.Owned.Name
			}
			t.Owned.Derives.Merge(derives)
		case f.Owned.Name == "":
			return NewConfigError("owned", nil, "first owned fragment must name the owned type")
		default:
			t.Owned = &OwnedType{Name: f.Owned.Name, Derives: derives}
		}
	}
	t.ForeignEq = append(t.ForeignEq, f.Eq...)
	t.ForeignOrd = append(t.ForeignOrd, f.Ord...)
	if f.Serde {
		t.Serde = true
	}
	if f.NoDeref {
		t.NoDeref = true
	}
	if f.Infallible {
		t.Infallible = true
	}
	return nil
}
