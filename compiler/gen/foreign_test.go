package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenCompareNone(t *testing.T) {
	g := testGenerator(t)
	assert.Nil(t, genCompare(g, &Type{Name: "Token"}))
}

func TestGenCompareFallible(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{
		Name:       "Token",
		ForeignEq:  []TypeRef{{Name: "string"}},
		ForeignOrd: []TypeRef{{Name: "bytes"}},
	}
	code := render(t, genCompare(g, typ))

	t.Run("SymmetricEquality", func(t *testing.T) {
		assert.Contains(t, code, "func (t Token) EqualString(other string) bool")
		assert.Contains(t, code, "func StringEqualToken(other string, t Token) bool")
		assert.Contains(t, code, "return t.EqualString(other)")
	})

	t.Run("InvalidOperandIsNeverEqual", func(t *testing.T) {
		assert.Contains(t, code, "o, err := NewToken(string(other))")
		assert.Contains(t, code, "return false")
	})

	t.Run("OrderingImpliesEquality", func(t *testing.T) {
		// A type listed only under ord still receives an equality pair.
		assert.Contains(t, code, "func (t Token) EqualBytes(other []byte) bool")
		assert.Contains(t, code, "func BytesEqualToken(other []byte, t Token) bool")
	})

	t.Run("IncomparableOperands", func(t *testing.T) {
		assert.Contains(t, code, "func (t Token) CompareBytes(other []byte) (int, bool)")
		assert.Contains(t, code, "return 0, false")
		assert.Contains(t, code, "return strings.Compare(t.Text(), o.Text()), true")
	})

	t.Run("ReversedOrdering", func(t *testing.T) {
		assert.Contains(t, code, "func BytesCompareToken(other []byte, t Token) (int, bool)")
		assert.Contains(t, code, "c, ok := t.CompareBytes(other)")
		assert.Contains(t, code, "return -c, ok")
	})
}

func TestGenCompareInfallible(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{
		Name:       "Label",
		Infallible: true,
		ForeignOrd: []TypeRef{{Name: "string"}},
	}
	code := render(t, genCompare(g, typ))

	// No error channel anywhere: equality converts directly, ordering
	// returns a bare int.
	assert.Contains(t, code, "func (l Label) EqualString(other string) bool")
	assert.Contains(t, code, "return l == NewLabel(string(other))")
	assert.Contains(t, code, "func (l Label) CompareString(other string) int")
	assert.Contains(t, code, "func StringCompareLabel(other string, l Label) int")
	assert.Contains(t, code, "return -l.CompareString(other)")
	assert.NotContains(t, code, "(int, bool)")
}

func TestGenCompareQualifiedRef(t *testing.T) {
	g := testGenerator(t)
	typ := &Type{
		Name:      "Token",
		ForeignEq: []TypeRef{{Pkg: "example.com/users", Name: "UserID"}},
	}
	code := render(t, genCompare(g, typ))

	assert.Contains(t, code, `"example.com/users"`)
	assert.Contains(t, code, "func (t Token) EqualUserID(other users.UserID) bool")
	assert.Contains(t, code, "func UserIDEqualToken(other users.UserID, t Token) bool")
}
