package gen

import (
	"github.com/dave/jennifer/jen"
)

// genCompare generates the foreign-comparison file ({name}_cmp.go): a
// symmetric equality pair per foreign type, and a symmetric ordering pair
// per ordered foreign type. Returns nil when no foreign types are declared.
//
// Policy: in fallible mode a comparison first constructs a validated
// wrapper value from the foreign operand; construction failure evaluates to
// not-equal for equality and to the incomparable outcome for ordering. A
// comparison never surfaces a validation error.
func genCompare(g *Generator, t *Type) *jen.File {
	eq := t.ForeignEqAll()
	if len(eq) == 0 {
		return nil
	}
	f := g.newFile()

	for _, ref := range eq {
		genEqualPair(f, t, ref)
	}
	for _, ref := range t.ForeignOrd {
		genComparePair(f, t, ref)
	}

	return f
}

// refCode returns the Go type expression of a foreign type reference.
func refCode(r TypeRef) jen.Code {
	switch r.Name {
	case "string":
		return jen.String()
	case "bytes", "[]byte":
		return jen.Index().Byte()
	}
	if r.Pkg != "" {
		return jen.Qual(r.Pkg, r.Name)
	}
	return jen.Id(r.Name)
}

// genEqualPair emits the wrapper-equals-foreign method and its reflexive
// package-level form.
func genEqualPair(f *jen.File, t *Type, ref TypeRef) {
	recv := t.Receiver()
	suffix := ref.Suffix()
	method := "Equal" + suffix
	reverse := suffix + "Equal" + t.Name

	f.Commentf("%s reports whether %s and other represent the same %s.", method, recv, t.Display())
	if t.Fallible() {
		f.Commentf("A value that is not a valid %s is never equal.", t.Display())
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Bool().
			Block(
				jen.List(jen.Id("o"), jen.Err()).Op(":=").Id("New"+t.Name).Call(jen.Id("string").Call(jen.Id("other"))),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Return(jen.False()),
				),
				jen.Return(jen.Id(recv).Op("==").Id("o")),
			)
	} else {
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Bool().
			Block(
				jen.Return(jen.Id(recv).Op("==").Id("New"+t.Name).Call(jen.Id("string").Call(jen.Id("other")))),
			)
	}

	f.Commentf("%s is the reflexive form of [%s.%s].", reverse, t.Name, method)
	f.Func().Id(reverse).
		Params(jen.Id("other").Add(refCode(ref)), jen.Id(recv).Id(t.Name)).
		Bool().
		Block(
			jen.Return(jen.Id(recv).Dot(method).Call(jen.Id("other"))),
		)
}

// genComparePair emits the wrapper-compares-foreign method and its reversed
// package-level form. In fallible mode the second result reports whether
// the operands were comparable at all.
func genComparePair(f *jen.File, t *Type, ref TypeRef) {
	recv := t.Receiver()
	suffix := ref.Suffix()
	method := "Compare" + suffix
	reverse := suffix + "Compare" + t.Name

	if t.Fallible() {
		f.Commentf("%s orders %s against other. The second result is false when", method, recv)
		f.Commentf("other is not a valid %s; such operands are incomparable.", t.Display())
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Params(jen.Int(), jen.Bool()).
			Block(
				jen.List(jen.Id("o"), jen.Err()).Op(":=").Id("New"+t.Name).Call(jen.Id("string").Call(jen.Id("other"))),
				jen.If(jen.Err().Op("!=").Nil()).Block(
					jen.Return(jen.Lit(0), jen.False()),
				),
				jen.Return(jen.Qual("strings", "Compare").Call(
					jen.Id(recv).Dot("Text").Call(),
					jen.Id("o").Dot("Text").Call(),
				), jen.True()),
			)

		f.Commentf("%s is the reversed form of [%s.%s].", reverse, t.Name, method)
		f.Func().Id(reverse).
			Params(jen.Id("other").Add(refCode(ref)), jen.Id(recv).Id(t.Name)).
			Params(jen.Int(), jen.Bool()).
			Block(
				jen.List(jen.Id("c"), jen.Id("ok")).Op(":=").Id(recv).Dot(method).Call(jen.Id("other")),
				jen.Return(jen.Op("-").Id("c"), jen.Id("ok")),
			)
	} else {
		f.Commentf("%s orders %s against other.", method, recv)
		f.Func().Params(jen.Id(recv).Id(t.Name)).Id(method).
			Params(jen.Id("other").Add(refCode(ref))).
			Int().
			Block(
				jen.Return(jen.Qual("strings", "Compare").Call(
					jen.Id(recv).Dot("Text").Call(),
					jen.Id("New"+t.Name).Call(jen.Id("string").Call(jen.Id("other"))).Dot("Text").Call(),
				)),
			)

		f.Commentf("%s is the reversed form of [%s.%s].", reverse, t.Name, method)
		f.Func().Id(reverse).
			Params(jen.Id("other").Add(refCode(ref)), jen.Id(recv).Id(t.Name)).
			Int().
			Block(
				jen.Return(jen.Op("-").Id(recv).Dot(method).Call(jen.Id("other"))),
			)
	}
}
