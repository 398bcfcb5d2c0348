package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestResolve(t *testing.T) {
	t.Run("MissingName", func(t *testing.T) {
		_, err := Resolve("", nil)
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})

	t.Run("Empty", func(t *testing.T) {
		typ, err := Resolve("Token", nil)
		require.NoError(t, err)
		assert.Equal(t, "Token", typ.Name)
		assert.Equal(t, "token", typ.Display())
		assert.Nil(t, typ.Owned)
		assert.True(t, typ.Fallible())
		assert.False(t, typ.Serde)
	})

	t.Run("Flags", func(t *testing.T) {
		typ, err := Resolve("Token", []Fragment{
			{Serde: true},
			{NoDeref: true, Infallible: true},
		})
		require.NoError(t, err)
		assert.True(t, typ.Serde)
		assert.True(t, typ.NoDeref)
		assert.False(t, typ.Fallible())
	})

	t.Run("DisplayNameConcatenates", func(t *testing.T) {
		// Repeated name fragments extend the display name rather than
		// replacing it, so name is the one non-idempotent merge field.
		fragments := []Fragment{{Name: strptr("session ")}, {Name: strptr("token")}}
		typ, err := Resolve("Token", fragments)
		require.NoError(t, err)
		assert.Equal(t, "session token", typ.Display())

		again, err := Resolve("Token", append(fragments, fragments...))
		require.NoError(t, err)
		assert.Equal(t, "session token"+"session token", again.Display())
	})

	t.Run("MergeIdempotence", func(t *testing.T) {
		fragments := []Fragment{
			{Owned: &OwnedFragment{Name: "TokenBuf", Derive: []string{"PartialEq", "Hash"}}},
			{Owned: &OwnedFragment{Derive: []string{"Hash", "Ord"}}},
		}
		once, err := Resolve("Token", fragments)
		require.NoError(t, err)
		twice, err := Resolve("Token", append(fragments, fragments...))
		require.NoError(t, err)
		assert.Equal(t, once.Owned, twice.Owned)
		assert.Equal(t, "{PartialEq, Ord, Hash}", once.Owned.Derives.String())
	})

	t.Run("OwnedNameLastWriteWins", func(t *testing.T) {
		typ, err := Resolve("Token", []Fragment{
			{Owned: &OwnedFragment{Name: "TokenBuf"}},
			{Owned: &OwnedFragment{Name: "OwnedToken"}},
			{Owned: &OwnedFragment{Derive: []string{"Default"}}},
		})
		require.NoError(t, err)
		assert.Equal(t, "OwnedToken", typ.Owned.Name)
		assert.True(t, typ.Owned.Derives.Has(DeriveDefault))
	})

	t.Run("FirstOwnedFragmentMustBeNamed", func(t *testing.T) {
		_, err := Resolve("Token", []Fragment{
			{Owned: &OwnedFragment{Derive: []string{"Hash"}}},
		})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "first owned fragment must name the owned type")
	})

	t.Run("UnknownDerive", func(t *testing.T) {
		_, err := Resolve("Token", []Fragment{
			{Owned: &OwnedFragment{Name: "TokenBuf", Derive: []string{"Clone"}}},
		})
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "unknown derive")
	})

	t.Run("ForeignRefsAccumulate", func(t *testing.T) {
		typ, err := Resolve("Token", []Fragment{
			{Eq: []TypeRef{{Name: "string"}}},
			{Eq: []TypeRef{{Name: "string"}}, Ord: []TypeRef{{Name: "bytes"}}},
		})
		require.NoError(t, err)
		// Duplicates are kept; deduplication is not part of the merge.
		assert.Len(t, typ.ForeignEq, 2)
		assert.Len(t, typ.ForeignOrd, 1)
		assert.Len(t, typ.ForeignEqAll(), 3)
	})
}

func TestTypeNaming(t *testing.T) {
	typ := &Type{Name: "Token", Owned: &OwnedType{Name: "TokenBuf"}}
	assert.Equal(t, "InvalidToken", typ.ErrorIdent())
	assert.Equal(t, "token", typ.FileBase())
	assert.Equal(t, "t", typ.Receiver())
	assert.Equal(t, "AsToken", typ.AsMethod())
	assert.Equal(t, "ToTokenBuf", typ.ToOwnedMethod())
	assert.Equal(t, "validateTokenBytes", typ.ValidateBytesFunc())
	assert.Equal(t, "validateTokenText", typ.ValidateTextFunc())
	assert.Equal(t, "defaultToken", typ.DefaultFunc())
}

func TestTypeRefSuffix(t *testing.T) {
	assert.Equal(t, "String", TypeRef{Name: "string"}.Suffix())
	assert.Equal(t, "Bytes", TypeRef{Name: "bytes"}.Suffix())
	assert.Equal(t, "Bytes", TypeRef{Name: "[]byte"}.Suffix())
	assert.Equal(t, "UserID", TypeRef{Pkg: "example.com/ids", Name: "UserID"}.Suffix())
	assert.Equal(t, "RawLabel", TypeRef{Name: "raw_label"}.Suffix())
}

func TestParseDerive(t *testing.T) {
	for _, name := range []string{"Default", "PartialEq", "Eq", "PartialOrd", "Ord", "Hash"} {
		d, err := ParseDerive(name)
		require.NoError(t, err)
		assert.Equal(t, name, d.String())
	}
	_, err := ParseDerive("Copy")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}
