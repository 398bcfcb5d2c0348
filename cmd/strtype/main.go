// Command strtype generates validated string wrapper types from a YAML
// manifest.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	manifestPath string
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "strtype",
		Short: "Generate validated string wrapper types",
		Long: `strtype reads a YAML manifest of wrapper-type declarations and generates
Go source: a borrowed wrapper type per declaration, plus the owned
companion, foreign comparisons and serialization the declaration asks for.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "strtype.yaml", "Manifest file to read")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	viper.SetEnvPrefix("STRTYPE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("manifest", rootCmd.PersistentFlags().Lookup("manifest"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "strtype:", err)
		os.Exit(1)
	}
}

// newLogger builds the CLI logger. Debug level is gated behind --verbose
// (or STRTYPE_VERBOSE).
func newLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	if viper.GetBool("verbose") {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
