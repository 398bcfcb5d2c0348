package gen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Generator renders the artifact set of resolved declarations into Go
// source files. It is a pure function of its inputs: the same config and
// declarations always produce the same files.
type Generator struct {
	cfg     *Config
	types   []*Type
	workers int
}

// NewGenerator creates a new Generator for the given declarations.
func NewGenerator(cfg *Config, types []*Type) *Generator {
	return &Generator{
		cfg:     cfg,
		types:   types,
		workers: runtime.GOMAXPROCS(0),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Files returns the rendered artifact set for a single declaration, keyed
// by file name. The wrapper file is always present; the comparison and
// owned files appear only when the declaration requests them.
func (g *Generator) Files(t *Type) map[string]*jen.File {
	files := map[string]*jen.File{
		t.FileBase() + ".go": genWrapper(g, t),
	}
	if f := genCompare(g, t); f != nil {
		files[t.FileBase()+"_cmp.go"] = f
	}
	if f := genOwned(g, t); f != nil {
		files[t.FileBase()+"_buf.go"] = f
	}
	return files
}

// Generate renders and writes all files with parallel execution. When the
// snapshot feature is enabled and the resolved declarations are identical
// to the stored snapshot, generation is skipped entirely.
func (g *Generator) Generate(ctx context.Context) error {
	if g.cfg == nil || g.cfg.Target == "" {
		return NewConfigError("Target", nil, "missing target directory in config")
	}

	var snap *Snapshot
	if g.cfg.HasFeature(FeatureSnapshot.Name) {
		snap = NewSnapshot(g.types)
		stored, err := ReadSnapshot(g.snapshotPath())
		if err != nil {
			return err
		}
		if snap.Equal(stored) {
			return nil
		}
	}

	if err := os.MkdirAll(g.cfg.Target, 0o755); err != nil {
		return NewGenerationError("write", g.cfg.Target, "create target directory", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for _, t := range g.types {
		for name, f := range g.Files(t) {
			name, f := name, f
			eg.Go(func() error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
					return g.writeFile(f, name)
				}
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if snap != nil {
		if err := WriteSnapshot(g.snapshotPath(), snap); err != nil {
			return err
		}
	}
	return nil
}

// pkgName returns the output package name.
func (g *Generator) pkgName() string {
	if g.cfg.Package != "" {
		return filepath.Base(g.cfg.Package)
	}
	return filepath.Base(g.cfg.Target)
}

// snapshotPath returns the snapshot file location.
func (g *Generator) snapshotPath() string {
	if g.cfg.SnapshotPath != "" {
		return g.cfg.SnapshotPath
	}
	return filepath.Join(g.cfg.Target, SnapshotFile)
}

// newFile creates a new Jennifer file with the header comment.
func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.pkgName())
	header := g.cfg.Header
	if header == "" {
		header = "Code generated by strtype. DO NOT EDIT."
	}
	f.HeaderComment(header)
	return f
}

// writeFile renders f, runs it through the imports formatter, and writes
// it under the target directory.
func (g *Generator) writeFile(f *jen.File, name string) error {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return NewGenerationError("render", name, "render file", err)
	}

	path := filepath.Join(g.cfg.Target, name)
	formatted, err := imports.Process(path, buf.Bytes(), nil)
	if err != nil {
		return NewGenerationError("format", name, "format file", err)
	}

	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return NewGenerationError("write", name, "write file", err)
	}
	return nil
}
