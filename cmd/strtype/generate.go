package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/strtype/strtype/compiler/gen"
	"github.com/strtype/strtype/compiler/load"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate code from the manifest",
	Long: `Generate reads the manifest, resolves every declaration and writes the
generated files into the manifest's target directory.

Examples:
  # Generate from ./strtype.yaml
  strtype generate

  # Generate from another manifest
  strtype generate --manifest ids/strtype.yaml
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		start := time.Now()
		n, err := runGenerate(cmd.Context(), logger, viper.GetString("manifest"))
		if err != nil {
			color.Red("generation failed: %v", err)
			return err
		}
		color.Green("generated %d declaration(s) in %s", n, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

// runGenerate loads the manifest, resolves every declaration and runs the
// generator. It returns the number of declarations generated.
func runGenerate(ctx context.Context, logger *zap.Logger, manifest string) (int, error) {
	m, err := load.ParseFile(manifest)
	if err != nil {
		return 0, err
	}
	logger.Debug("manifest loaded",
		zap.String("manifest", manifest),
		zap.String("target", m.Target),
		zap.Int("types", len(m.Types)),
	)

	types := make([]*gen.Type, 0, len(m.Types))
	for _, d := range m.Types {
		typ, err := gen.Resolve(d.Name, d.GenFragments())
		if err != nil {
			return 0, fmt.Errorf("resolve %s: %w", d.Name, err)
		}
		logger.Debug("declaration resolved",
			zap.String("type", typ.Name),
			zap.Bool("owned", typ.Owned != nil),
			zap.Bool("fallible", typ.Fallible()),
		)
		types = append(types, typ)
	}

	opts := []gen.Option{gen.WithTarget(m.Target)}
	if m.Package != "" {
		opts = append(opts, gen.WithPackage(m.Package))
	}
	if m.Header != "" {
		opts = append(opts, gen.WithHeader(m.Header))
	}
	if len(m.Features) > 0 {
		opts = append(opts, gen.WithFeatureNames(m.Features...))
	}
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return 0, err
	}

	if err := gen.NewGenerator(cfg, types).Generate(ctx); err != nil {
		return 0, err
	}
	return len(types), nil
}
