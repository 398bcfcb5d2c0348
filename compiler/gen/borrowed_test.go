package gen

import (
	"testing"

	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T) *Generator {
	t.Helper()
	cfg := MustNewConfig(
		WithTarget("ids"),
		WithPackage("example.com/out/ids"),
	)
	return NewGenerator(cfg, nil)
}

func render(t *testing.T, f *jen.File) string {
	t.Helper()
	require.NotNil(t, f)
	return f.GoString()
}

func TestGenWrapperFallible(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{Name: "Token"}
	code := render(t, genWrapper(g, typ))

	t.Run("Decl", func(t *testing.T) {
		assert.Contains(t, code, "package ids")
		assert.Contains(t, code, "Code generated by strtype. DO NOT EDIT.")
		assert.Contains(t, code, "type Token string")
	})

	t.Run("ErrorCarrier", func(t *testing.T) {
		assert.Contains(t, code, "type InvalidToken[T strtype.Buffer] struct {")
		assert.Contains(t, code, "Input T")
		assert.Contains(t, code, `"invalid token: " + string(e.Input)`)
		assert.Contains(t, code, `"Token(%q)"`)
	})

	t.Run("Constructors", func(t *testing.T) {
		assert.Contains(t, code, "func NewToken[T strtype.Buffer](input T) (Token, error)")
		assert.Contains(t, code, "func TokenFromBytes(input []byte) (Token, error)")
		assert.Contains(t, code, "func TokenFromText(input string) (Token, error)")
		assert.Contains(t, code, "func UncheckedToken(input string) Token")
		assert.Contains(t, code, "validateTokenBytes([]byte(input))")
		assert.Contains(t, code, "validateTokenText(input)")
		assert.Contains(t, code, "&InvalidToken[T]{Input: input}")
	})

	t.Run("Accessors", func(t *testing.T) {
		assert.Contains(t, code, "func (t Token) Text() string")
		assert.Contains(t, code, "func (t Token) Bytes() []byte")
		assert.Contains(t, code, "func (t Token) AsToken() Token")
		assert.Contains(t, code, "func (t Token) String() string")
		assert.Contains(t, code, "func (t Token) GoString() string")
	})

	t.Run("NoSerdeUnlessRequested", func(t *testing.T) {
		assert.NotContains(t, code, "MarshalText")
	})
}

func TestGenWrapperInfallible(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{Name: "Label", Infallible: true}
	code := render(t, genWrapper(g, typ))

	t.Run("NoErrorCarrier", func(t *testing.T) {
		assert.NotContains(t, code, "InvalidLabel")
		assert.NotContains(t, code, "UncheckedLabel")
		assert.NotContains(t, code, "validateLabel")
	})

	t.Run("Constructors", func(t *testing.T) {
		assert.Contains(t, code, "func NewLabel[T strtype.Buffer](input T) Label")
		assert.Contains(t, code, "func LabelFromText(input string) Label")
	})

	t.Run("ByteDecodeError", func(t *testing.T) {
		// The byte entry point keeps an error channel for malformed UTF-8.
		assert.Contains(t, code, "func LabelFromBytes(input []byte) (Label, error)")
		assert.Contains(t, code, "utf8.Valid(input)")
		assert.Contains(t, code, "&strtype.DecodeError{Input: input}")
	})
}

func TestGenWrapperOpaque(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{Name: "Secret", NoDeref: true}
	code := render(t, genWrapper(g, typ))

	assert.Contains(t, code, "type Secret struct {")
	assert.Contains(t, code, "text string")
	assert.NotContains(t, code, "type Secret string")
	assert.Contains(t, code, "func (s Secret) Text() string")
	assert.Contains(t, code, "return s.text")
	assert.Contains(t, code, "Secret{text: input}")
}

func TestGenWrapperSerde(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{Name: "Token", Serde: true}
	code := render(t, genWrapper(g, typ))

	assert.Contains(t, code, "func (t Token) MarshalText() ([]byte, error)")
	assert.Contains(t, code, "func (t *Token) UnmarshalText(data []byte) error")
	// Unmarshaling re-validates through the byte constructor.
	assert.Contains(t, code, "v, err := TokenFromBytes(data)")
	assert.Contains(t, code, `"unmarshal Token: %w"`)
}
