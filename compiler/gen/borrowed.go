package gen

import (
	"fmt"

	"github.com/dave/jennifer/jen"
)

// runtimePkg is the import path of the runtime package generated code
// links against.
const runtimePkg = "github.com/strtype/strtype"

// genWrapper generates the wrapper file ({name}.go): the type declaration,
// the constructor family, the accessors and, in fallible mode, the error
// carrier. The serialization capability is appended here when requested.
func genWrapper(g *Generator, t *Type) *jen.File {
	f := g.newFile()

	genWrapperDecl(f, t)
	if t.Fallible() {
		genErrorCarrier(f, t)
		genFallibleConstructors(f, t)
	} else {
		genInfallibleConstructors(f, t)
	}
	genAccessors(f, t)
	if t.Serde {
		genWrapperSerde(f, t)
	}

	return f
}

// genWrapperDecl emits the wrapper type. The default rendering is a defined
// string type: the underlying character sequence shows through conversions
// and comparisons. NoDeref suppresses that view and emits an opaque struct.
func genWrapperDecl(f *jen.File, t *Type) {
	f.Commentf("%s is a validated %s.", t.Name, t.Display())
	if t.NoDeref {
		f.Type().Id(t.Name).Struct(
			jen.Id("text").String(),
		)
	} else {
		f.Type().Id(t.Name).String()
	}
}

// genErrorCarrier emits the error carrier returned by fallible
// constructors. It is generic over the payload type and holds the original
// rejected input.
func genErrorCarrier(f *jen.File, t *Type) {
	errIdent := t.ErrorIdent()

	f.Commentf("%s is returned by the constructors of [%s] when the input", errIdent, t.Name)
	f.Commentf("is not a valid %s. Input holds the rejected value.", t.Display())
	f.Type().Id(errIdent).Index(jen.Id("T").Qual(runtimePkg, "Buffer")).Struct(
		jen.Id("Input").Id("T"),
	)

	f.Comment("Error implements the error interface.")
	f.Func().Params(jen.Id("e").Op("*").Id(errIdent).Index(jen.Id("T"))).Id("Error").Params().String().Block(
		jen.Return(jen.Lit("invalid "+t.Display()+": ").Op("+").Id("string").Call(jen.Id("e").Dot("Input"))),
	)

	f.Commentf("GoString renders the error as %s(input) for debugging.", t.Name)
	f.Func().Params(jen.Id("e").Op("*").Id(errIdent).Index(jen.Id("T"))).Id("GoString").Params().String().Block(
		jen.Return(jen.Qual("fmt", "Sprintf").Call(
			jen.Lit(t.Name+"(%q)"),
			jen.Id("string").Call(jen.Id("e").Dot("Input")),
		)),
	)
}

// genFallibleConstructors emits the fallible constructor family. Each entry
// point validates with the predicate matching its native representation and
// returns the rejected input inside the error carrier on failure.
func genFallibleConstructors(f *jen.File, t *Type) {
	errIdent := t.ErrorIdent()

	f.Commentf("New%s parses input as a %s.", t.Name, t.Display())
	f.Func().Id("New"+t.Name).Index(jen.Id("T").Qual(runtimePkg, "Buffer")).
		Params(jen.Id("input").Id("T")).
		Params(jen.Id(t.Name), jen.Error()).
		Block(
			jen.If(jen.Op("!").Id(t.ValidateBytesFunc()).Call(jen.Index().Byte().Parens(jen.Id("input")))).Block(
				jen.Return(t.wrapperZero(), jen.Op("&").Id(errIdent).Index(jen.Id("T")).Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(t.wrapBuf(jen.Id("input")), jen.Nil()),
		)

	f.Commentf("%sFromBytes parses input bytes as a %s.", t.Name, t.Display())
	f.Func().Id(t.Name+"FromBytes").
		Params(jen.Id("input").Index().Byte()).
		Params(jen.Id(t.Name), jen.Error()).
		Block(
			jen.If(jen.Op("!").Id(t.ValidateBytesFunc()).Call(jen.Id("input"))).Block(
				jen.Return(t.wrapperZero(), jen.Op("&").Id(errIdent).Index(jen.Index().Byte()).Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(t.wrapBuf(jen.Id("input")), jen.Nil()),
		)

	f.Commentf("%sFromText parses input as a %s.", t.Name, t.Display())
	f.Func().Id(t.Name+"FromText").
		Params(jen.Id("input").String()).
		Params(jen.Id(t.Name), jen.Error()).
		Block(
			jen.If(jen.Op("!").Id(t.ValidateTextFunc()).Call(jen.Id("input"))).Block(
				jen.Return(t.wrapperZero(), jen.Op("&").Id(errIdent).Index(jen.String()).Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(t.wrapString(jen.Id("input")), jen.Nil()),
		)

	f.Commentf("Unchecked%s wraps input without validation. The caller must already", t.Name)
	f.Commentf("know that input is a valid %s.", t.Display())
	f.Func().Id("Unchecked"+t.Name).
		Params(jen.Id("input").String()).
		Id(t.Name).
		Block(
			jen.Return(t.wrapString(jen.Id("input"))),
		)
}

// genInfallibleConstructors emits the constructor family for types whose
// predicates always hold. The byte entry point still fails when the input
// is not well-formed UTF-8; that failure is a decode error, never a
// validation error.
func genInfallibleConstructors(f *jen.File, t *Type) {
	f.Commentf("New%s wraps input as a %s.", t.Name, t.Display())
	f.Func().Id("New"+t.Name).Index(jen.Id("T").Qual(runtimePkg, "Buffer")).
		Params(jen.Id("input").Id("T")).
		Id(t.Name).
		Block(
			jen.Return(jen.Id(t.Name + "FromText").Call(jen.Id("string").Call(jen.Id("input")))),
		)

	f.Commentf("%sFromBytes wraps input bytes as a %s.", t.Name, t.Display())
	f.Func().Id(t.Name+"FromBytes").
		Params(jen.Id("input").Index().Byte()).
		Params(jen.Id(t.Name), jen.Error()).
		Block(
			jen.If(jen.Op("!").Qual("unicode/utf8", "Valid").Call(jen.Id("input"))).Block(
				jen.Return(t.wrapperZero(), jen.Op("&").Qual(runtimePkg, "DecodeError").Values(jen.Dict{
					jen.Id("Input"): jen.Id("input"),
				})),
			),
			jen.Return(t.wrapBuf(jen.Id("input")), jen.Nil()),
		)

	f.Commentf("%sFromText wraps input as a %s.", t.Name, t.Display())
	f.Func().Id(t.Name+"FromText").
		Params(jen.Id("input").String()).
		Id(t.Name).
		Block(
			jen.Return(t.wrapString(jen.Id("input"))),
		)
}

// genAccessors emits the universal accessors and conversions shared by both
// modes.
func genAccessors(f *jen.File, t *Type) {
	recv := t.Receiver()

	f.Commentf("Text returns the %s as a string.", t.Display())
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id("Text").Params().String().Block(
		jen.Return(t.rawExpr(recv)),
	)

	f.Commentf("Bytes returns the %s as bytes.", t.Display())
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id("Bytes").Params().Index().Byte().Block(
		jen.Return(jen.Index().Byte().Parens(t.bytesInner(recv))),
	)

	f.Commentf("%s returns the value itself. It lets %s stand in wherever a", t.AsMethod(), t.Name)
	f.Comment("borrowed view is expected.")
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id(t.AsMethod()).Params().Id(t.Name).Block(
		jen.Return(jen.Id(recv)),
	)

	f.Commentf("String renders the %s verbatim.", t.Display())
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id("String").Params().String().Block(
		jen.Return(jen.Id(recv).Dot("Text").Call()),
	)

	f.Commentf("GoString renders the %s verbatim.", t.Display())
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id("GoString").Params().String().Block(
		jen.Return(jen.Id(recv).Dot("Text").Call()),
	)
}

// genWrapperSerde emits the text serialization capability on the wrapper.
// Unmarshaling re-validates through the byte constructor; in fallible mode
// a rejected value surfaces as a wrapped validation error.
func genWrapperSerde(f *jen.File, t *Type) {
	recv := t.Receiver()

	f.Commentf("MarshalText encodes the %s as its underlying text.", t.Display())
	f.Func().Params(jen.Id(recv).Id(t.Name)).Id("MarshalText").Params().Params(jen.Index().Byte(), jen.Error()).Block(
		jen.Return(jen.Id(recv).Dot("Bytes").Call(), jen.Nil()),
	)

	f.Commentf("UnmarshalText decodes and re-validates a %s.", t.Display())
	f.Func().Params(jen.Id(recv).Op("*").Id(t.Name)).Id("UnmarshalText").
		Params(jen.Id("data").Index().Byte()).
		Error().
		Block(
			jen.List(jen.Id("v"), jen.Err()).Op(":=").Id(t.Name+"FromBytes").Call(jen.Id("data")),
			jen.If(jen.Err().Op("!=").Nil()).Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit(fmt.Sprintf("unmarshal %s: %%w", t.Name)), jen.Err())),
			),
			jen.Op("*").Id(recv).Op("=").Id("v"),
			jen.Return(jen.Nil()),
		)
}

// wrapperZero returns the zero value expression of the wrapper type.
func (t *Type) wrapperZero() *jen.Statement {
	if t.NoDeref {
		return jen.Id(t.Name).Values()
	}
	return jen.Lit("")
}

// wrapString wraps a string expression into the wrapper type.
func (t *Type) wrapString(expr jen.Code) *jen.Statement {
	if t.NoDeref {
		return jen.Id(t.Name).Values(jen.Dict{jen.Id("text"): jen.Add(expr)})
	}
	return jen.Id(t.Name).Call(expr)
}

// wrapBuf wraps a byte- or buffer-typed expression into the wrapper type.
func (t *Type) wrapBuf(expr jen.Code) *jen.Statement {
	if t.NoDeref {
		return jen.Id(t.Name).Values(jen.Dict{jen.Id("text"): jen.Id("string").Call(expr)})
	}
	return jen.Id(t.Name).Call(expr)
}

// rawExpr returns the underlying string of the receiver.
func (t *Type) rawExpr(recv string) *jen.Statement {
	if t.NoDeref {
		return jen.Id(recv).Dot("text")
	}
	return jen.Id("string").Call(jen.Id(recv))
}

// bytesInner returns the expression converted by the Bytes accessor.
func (t *Type) bytesInner(recv string) *jen.Statement {
	if t.NoDeref {
		return jen.Id(recv).Dot("text")
	}
	return jen.Id(recv)
}
