package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles(t *testing.T) {
	g := testGenerator(t)

	t.Run("WrapperOnly", func(t *testing.T) {
		files := g.Files(&Type{Name: "Token"})
		assert.Len(t, files, 1)
		assert.Contains(t, files, "token.go")
	})

	t.Run("FullArtifactSet", func(t *testing.T) {
		files := g.Files(&Type{
			Name:      "Token",
			Owned:     ownedType(DerivePartialEq),
			ForeignEq: []TypeRef{{Name: "string"}},
		})
		assert.Len(t, files, 3)
		assert.Contains(t, files, "token.go")
		assert.Contains(t, files, "token_cmp.go")
		assert.Contains(t, files, "token_buf.go")
	})
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir), WithPackage("example.com/out/ids"))
	typ := &Type{Name: "Token", Owned: ownedType(DeriveHash)}
	g := NewGenerator(cfg, []*Type{typ})

	require.NoError(t, g.Generate(context.Background()))

	wrapper, err := os.ReadFile(filepath.Join(dir, "token.go"))
	require.NoError(t, err)
	assert.Contains(t, string(wrapper), "package ids")
	assert.Contains(t, string(wrapper), "type Token string")

	owned, err := os.ReadFile(filepath.Join(dir, "token_buf.go"))
	require.NoError(t, err)
	assert.Contains(t, string(owned), "type TokenBuf struct")

	// No snapshot without the feature.
	_, err = os.Stat(filepath.Join(dir, SnapshotFile))
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateMissingTarget(t *testing.T) {
	g := NewGenerator(&Config{}, nil)
	err := g.Generate(context.Background())
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestGenerateHeaderOverride(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(
		WithTarget(dir),
		WithPackage("example.com/out/ids"),
		WithHeader("Code generated by idtool. DO NOT EDIT."),
	)
	g := NewGenerator(cfg, []*Type{{Name: "Token"}})
	require.NoError(t, g.Generate(context.Background()))

	data, err := os.ReadFile(filepath.Join(dir, "token.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Code generated by idtool. DO NOT EDIT.")
}

func TestGenerateSnapshotSkip(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(
		WithTarget(dir),
		WithPackage("example.com/out/ids"),
		WithFeatures(FeatureSnapshot),
	)
	types := []*Type{{Name: "Token"}}
	g := NewGenerator(cfg, types)

	require.NoError(t, g.Generate(context.Background()))
	path := filepath.Join(dir, "token.go")
	_, err := os.Stat(filepath.Join(dir, SnapshotFile))
	require.NoError(t, err)

	// An unchanged declaration set skips regeneration entirely.
	require.NoError(t, os.Remove(path))
	require.NoError(t, NewGenerator(cfg, types).Generate(context.Background()))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A changed declaration set regenerates.
	changed := []*Type{{Name: "Token", Serde: true}}
	require.NoError(t, NewGenerator(cfg, changed).Generate(context.Background()))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestGenerateCanceled(t *testing.T) {
	dir := t.TempDir()
	cfg := MustNewConfig(WithTarget(dir), WithPackage("example.com/out/ids"))
	g := NewGenerator(cfg, []*Type{{Name: "Token"}}).WithWorkers(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, g.Generate(ctx), context.Canceled)
}
