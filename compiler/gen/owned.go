package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// genOwned generates the owned companion file ({name}_buf.go). Returns nil
// when no owned type was requested.
//
// The owned type holds a single string buffer whose only invariant is that
// it is always a valid value. Every derived operation rebuilds a borrowed
// view through the borrowing accessor instead of caching one; the accessor
// is the sole delegation point, which keeps equality and hashing consistent
// by construction.
func genOwned(g *Generator, t *Type) *jen.File {
	if t.Owned == nil {
		return nil
	}
	f := g.newFile()

	genOwnedDecl(f, t)
	if t.Fallible() {
		genOwnedFallibleConstructors(f, t)
	} else {
		genOwnedInfallibleConstructors(f, t)
	}
	genOwnedAccessors(f, t)
	genOwnedDerives(f, t)
	if t.Serde {
		genOwnedSerde(f, t)
	}

	return f
}

// ownedField returns the buffer field name. The field is exported only for
// infallible types, where direct construction cannot break the invariant.
func (t *Type) ownedField() string {
	if t.Infallible {
		return "Value"
	}
	return "value"
}

func genOwnedDecl(f *jen.File, t *Type) {
	owned := t.Owned.Name
	f.Commentf("%s is an owned %s. Its buffer always holds a valid value.", owned, t.Display())
	if t.Infallible {
		f.Type().Id(owned).Struct(
			jen.Id("Value").String(),
		)
	} else {
		f.Type().Id(owned).Struct(
			jen.Id("value").String(),
		)
	}
}

func genOwnedFallibleConstructors(f *jen.File, t *Type) {
	owned := t.Owned.Name
	errIdent := t.ErrorIdent()
	field := t.ownedField()

	f.Commentf("New%s parses input as an owned %s.", owned, t.Display())
	f.Func().Id("New"+owned).Index(jen.Id("T").Qual(runtimePkg, "Buffer")).
		Params(jen.Id("input").Id("T")).
		Params(jen.Id(owned), jen.Error()).
		Block(
			jen.If(jen.Op("!").Id(t.ValidateBytesFunc()).Call(jen.Index().Byte().Parens(jen.Id("input")))).Block(
				jen.Return(jen.Id(owned).Values(), jen.Op("&").Id(errIdent).Index(jen.Id("T")).Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(jen.Id(owned).Values(jen.Dict{
				jen.Id(field): jen.Id("string").Call(jen.Id("input")),
			}), jen.Nil()),
		)

	f.Commentf("%sFromBytes parses input bytes as an owned %s.", owned, t.Display())
	f.Func().Id(owned+"FromBytes").
		Params(jen.Id("input").Index().Byte()).
		Params(jen.Id(owned), jen.Error()).
		Block(
			jen.Return(jen.Id("New" + owned).Call(jen.Id("input"))),
		)

	f.Commentf("%sFromString parses input as an owned %s.", owned, t.Display())
	f.Func().Id(owned+"FromString").
		Params(jen.Id("input").String()).
		Params(jen.Id(owned), jen.Error()).
		Block(
			jen.Return(jen.Id("New" + owned).Call(jen.Id("input"))),
		)

	f.Commentf("Unchecked%s wraps input without validation. The caller must already", owned)
	f.Commentf("know that input is a valid %s.", t.Display())
	f.Func().Id("Unchecked"+owned).
		Params(jen.Id("input").String()).
		Id(owned).
		Block(
			jen.Return(jen.Id(owned).Values(jen.Dict{
				jen.Id(field): jen.Id("input"),
			})),
		)
}

func genOwnedInfallibleConstructors(f *jen.File, t *Type) {
	owned := t.Owned.Name

	f.Commentf("New%s wraps input as an owned %s.", owned, t.Display())
	f.Func().Id("New"+owned).Index(jen.Id("T").Qual(runtimePkg, "Buffer")).
		Params(jen.Id("input").Id("T")).
		Id(owned).
		Block(
			jen.Return(jen.Id(owned).Values(jen.Dict{
				jen.Id("Value"): jen.Id("string").Call(jen.Id("input")),
			})),
		)

	f.Commentf("%sFromBytes wraps input bytes as an owned %s.", owned, t.Display())
	f.Func().Id(owned+"FromBytes").
		Params(jen.Id("input").Index().Byte()).
		Params(jen.Id(owned), jen.Error()).
		Block(
			jen.If(jen.Op("!").Qual("unicode/utf8", "Valid").Call(jen.Id("input"))).Block(
				jen.Return(jen.Id(owned).Values(), jen.Op("&").Qual(runtimePkg, "DecodeError").Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(jen.Id(owned).Values(jen.Dict{
				jen.Id("Value"): jen.Id("string").Call(jen.Id("input")),
			}), jen.Nil()),
		)

	f.Commentf("%sFromString wraps input as an owned %s.", owned, t.Display())
	f.Func().Id(owned+"FromString").
		Params(jen.Id("input").String()).
		Id(owned).
		Block(
			jen.Return(jen.Id("New" + owned).Call(jen.Id("input"))),
		)
}

func genOwnedAccessors(f *jen.File, t *Type) {
	owned := t.Owned.Name
	field := t.ownedField()
	as := t.AsMethod()
	recv := t.Receiver()

	f.Commentf("%s borrows the buffer as a %s. The view is rebuilt on every", as, t.Name)
	f.Comment("call; the buffer is valid at all times, so skipping validation is safe.")
	if t.Fallible() {
		f.Func().Params(jen.Id("b").Id(owned)).Id(as).Params().Id(t.Name).Block(
			jen.Return(jen.Id("Unchecked" + t.Name).Call(jen.Id("b").Dot(field))),
		)
	} else {
		f.Func().Params(jen.Id("b").Id(owned)).Id(as).Params().Id(t.Name).Block(
			jen.Return(jen.Id(t.Name + "FromText").Call(jen.Id("b").Dot(field))),
		)
	}

	f.Commentf("Text returns the %s as a string.", t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id("Text").Params().String().Block(
		jen.Return(jen.Id("b").Dot(as).Call().Dot("Text").Call()),
	)

	f.Commentf("Bytes returns the %s as bytes.", t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id("Bytes").Params().Index().Byte().Block(
		jen.Return(jen.Id("b").Dot(as).Call().Dot("Bytes").Call()),
	)

	f.Commentf("String renders the %s verbatim.", t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id("String").Params().String().Block(
		jen.Return(jen.Id("b").Dot(as).Call().Dot("String").Call()),
	)

	f.Commentf("GoString renders the %s verbatim.", t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id("GoString").Params().String().Block(
		jen.Return(jen.Id("b").Dot(as).Call().Dot("GoString").Call()),
	)

	f.Comment("IntoText consumes the buffer as a string.")
	f.Func().Params(jen.Id("b").Id(owned)).Id("IntoText").Params().String().Block(
		jen.Return(jen.Id("b").Dot(field)),
	)

	f.Comment("IntoBytes consumes the buffer as bytes.")
	f.Func().Params(jen.Id("b").Id(owned)).Id("IntoBytes").Params().Index().Byte().Block(
		jen.Return(jen.Index().Byte().Parens(jen.Id("b").Dot(field))),
	)

	f.Commentf("%s copies %s into owned storage.", t.ToOwnedMethod(), recv)
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id(t.ToOwnedMethod()).Params().Id(owned).Block(
		jen.Return(jen.Id(owned).Values(jen.Dict{
			jen.Id(field): jen.Id(recv).Dot("Text").Call(),
		})),
	)
}

// genOwnedDerives emits the capabilities gated by the derive flags. Each
// derive presupposes that the wrapper type satisfies the analogous
// capability; the preconditions are stated in the generated documentation
// and not checked here.
func genOwnedDerives(f *jen.File, t *Type) {
	owned := t.Owned.Name
	as := t.AsMethod()
	recv := t.Receiver()
	derives := t.Owned.Derives

	if derives.Has(DeriveDefault) {
		f.Commentf("Default%s copies the default %s into owned storage. The target", owned, t.Name)
		f.Commentf("package must define %s() %s, and the default value must be valid.", t.DefaultFunc(), t.Name)
		f.Func().Id("Default"+owned).Params().Id(owned).Block(
			jen.Return(jen.Id(t.DefaultFunc()).Call().Dot(t.ToOwnedMethod()).Call()),
		)
	}

	if derives.Has(DerivePartialEq) {
		f.Commentf("Equal reports whether b and other hold the same %s.", t.Display())
		f.Func().Params(jen.Id("b").Id(owned)).Id("Equal").Params(jen.Id("other").Id(owned)).Bool().Block(
			jen.Return(jen.Id("b").Dot(as).Call().Op("==").Id("other").Dot(as).Call()),
		)

		f.Commentf("Equal%s reports whether b and other hold the same %s.", t.Name, t.Display())
		f.Func().Params(jen.Id("b").Id(owned)).Id("Equal"+t.Name).Params(jen.Id("other").Id(t.Name)).Bool().Block(
			jen.Return(jen.Id("b").Dot(as).Call().Op("==").Id("other")),
		)

		f.Commentf("Equal%s reports whether %s and other hold the same %s.", owned, recv, t.Display())
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id("Equal"+owned).Params(jen.Id("other").Id(owned)).Bool().Block(
			jen.Return(jen.Id(recv).Op("==").Id("other").Dot(as).Call()),
		)

		for _, ref := range t.ForeignEqAll() {
			genOwnedEqualPair(f, t, ref)
		}
	}

	if derives.Has(DeriveEq) {
		f.Commentf("%s values are comparable; Equal matches ==. Requires the", owned)
		f.Comment("PartialEq capability to be requested as well.")
		f.Var().Id("_").Map(jen.Id(owned)).Struct()
	}

	if derives.Has(DerivePartialOrd) {
		f.Commentf("Compare%s orders b against other by the underlying text.", t.Name)
		f.Func().Params(jen.Id("b").Id(owned)).Id("Compare"+t.Name).Params(jen.Id("other").Id(t.Name)).Int().Block(
			jen.Return(jen.Qual("strings", "Compare").Call(
				jen.Id("b").Dot("Text").Call(),
				jen.Id("other").Dot("Text").Call(),
			)),
		)

		f.Commentf("Compare%s orders %s against other by the underlying text.", owned, recv)
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id("Compare"+owned).Params(jen.Id("other").Id(owned)).Int().Block(
			jen.Return(jen.Qual("strings", "Compare").Call(
				jen.Id(recv).Dot("Text").Call(),
				jen.Id("other").Dot("Text").Call(),
			)),
		)

		for _, ref := range t.ForeignOrd {
			genOwnedComparePair(f, t, ref)
		}
	}

	if derives.Has(DeriveOrd) {
		f.Commentf("Compare orders b against other by the %s total order.", t.Name)
		f.Func().Params(jen.Id("b").Id(owned)).Id("Compare").Params(jen.Id("other").Id(owned)).Int().Block(
			jen.Return(jen.Qual("strings", "Compare").Call(
				jen.Id("b").Dot(as).Call().Dot("Text").Call(),
				jen.Id("other").Dot(as).Call().Dot("Text").Call(),
			)),
		)
	}

	if derives.Has(DeriveHash) {
		f.Commentf("Hash returns a 64-bit hash of the %s.", t.Display())
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id("Hash").Params().Uint64().Block(
			jen.Return(jen.Qual(runtimePkg, "Hash64").Call(jen.Id(recv).Dot("Bytes").Call())),
		)

		f.Commentf("Hash returns a 64-bit hash of the %s. It delegates through the", t.Display())
		f.Comment("borrowing accessor, so equal values hash identically.")
		f.Func().Params(jen.Id("b").Id(owned)).Id("Hash").Params().Uint64().Block(
			jen.Return(jen.Id("b").Dot(as).Call().Dot("Hash").Call()),
		)
	}
}

// genOwnedEqualPair emits the owned-equals-foreign method and its reflexive
// package-level form, delegating through the borrowing accessor.
func genOwnedEqualPair(f *jen.File, t *Type, ref TypeRef) {
	owned := t.Owned.Name
	as := t.AsMethod()
	suffix := ref.Suffix()
	method := "Equal" + suffix
	reverse := suffix + "Equal" + owned

	f.Commentf("%s reports whether b and other represent the same %s.", method, t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id(method).
		Params(jen.Id("other").Add(refCode(ref))).
		Bool().
		Block(
			jen.Return(jen.Id("b").Dot(as).Call().Dot(method).Call(jen.Id("other"))),
		)

	f.Commentf("%s is the reflexive form of [%s.%s].", reverse, owned, method)
	f.Func().Id(reverse).
		Params(jen.Id("other").Add(refCode(ref)), jen.Id("b").Id(owned)).
		Bool().
		Block(
			jen.Return(jen.Id("b").Dot(method).Call(jen.Id("other"))),
		)
}

// genOwnedComparePair emits the owned-compares-foreign method and its
// reversed package-level form, delegating through the borrowing accessor.
func genOwnedComparePair(f *jen.File, t *Type, ref TypeRef) {
	owned := t.Owned.Name
	as := t.AsMethod()
	suffix := ref.Suffix()
	method := "Compare" + suffix
	reverse := suffix + "Compare" + owned

	if t.Fallible() {
		f.Commentf("%s orders b against other. The second result is false when", method)
		f.Commentf("other is not a valid %s; such operands are incomparable.", t.Display())
		f.Func().Params(jen.Id("b").Id(owned)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Params(jen.Int(), jen.Bool()).
			Block(
				jen.Return(jen.Id("b").Dot(as).Call().Dot(method).Call(jen.Id("other"))),
			)

		f.Commentf("%s is the reversed form of [%s.%s].", reverse, owned, method)
		f.Func().Id(reverse).
			Params(jen.Id("other").Add(refCode(ref)), jen.Id("b").Id(owned)).
			Params(jen.Int(), jen.Bool()).
			Block(
				jen.List(jen.Id("c"), jen.Id("ok")).Op(":=").Id("b").Dot(method).Call(jen.Id("other")),
				jen.Return(jen.Op("-").Id("c"), jen.Id("ok")),
			)
	} else {
		f.Commentf("%s orders b against other.", method)
		f.Func().Params(jen.Id("b").Id(owned)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Int().
			Block(
				jen.Return(jen.Id("b").Dot(as).Call().Dot(method).Call(jen.Id("other"))),
			)

		f.Commentf("%s is the reversed form of [%s.%s].", reverse, owned, method)
		f.Func().Id(reverse).
			Params(jen.Id("other").Add(refCode(ref)), jen.Id("b").Id(owned)).
			Int().
			Block(
				jen.Return(jen.Op("-").Id("b").Dot(method).Call(jen.Id("other"))),
			)
	}
}

// genOwnedSerde emits the text serialization capability on the owned type.
func genOwnedSerde(f *jen.File, t *Type) {
	owned := t.Owned.Name

	f.Commentf("MarshalText encodes the %s as its underlying text.", t.Display())
	f.Func().Params(jen.Id("b").Id(owned)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Id("b").Dot("Bytes").Call(), jen.Nil()),
	)

	f.Commentf("UnmarshalText decodes and re-validates a %s.", t.Display())
	f.Func().Params(jen.Id("b").Op("*").Id(owned)).Id("UnmarshalText").
		Params(jen.Id("data").Index().Byte()).
		Error().
		Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(owned+"FromBytes").Call(jen.Id("data")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(fmt.Sprintf("unmarshal %s: %%w", owned)), jen.Err())),
			),
			jen.Op("*").Id("b").Op("=").Id("v"),
			jen.Return(jen.Nil()),
		)
}
