package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 250*time.Millisecond, "Quiet period before regenerating")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the manifest changes",
	Long: `Watch monitors the manifest file and reruns generation after each
change. Rapid edit bursts are coalesced into one run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer logger.Sync()

		manifest := viper.GetString("manifest")
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()

		// Watch the directory, not the file: editors replace files on
		// save, which drops a file-level watch.
		dir := filepath.Dir(manifest)
		if err := watcher.Add(dir); err != nil {
			return err
		}

		run := func() {
			n, err := runGenerate(cmd.Context(), logger, manifest)
			if err != nil {
				color.Red("generation failed: %v", err)
				return
			}
			color.Green("regenerated %d declaration(s)", n)
		}
		run()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		var timer *time.Timer
		pending := make(chan struct{}, 1)
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(event.Name) != filepath.Clean(manifest) {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				logger.Debug("manifest changed", zap.String("event", event.Op.String()))
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(watchDebounce, func() {
					select {
					case pending <- struct{}{}:
					default:
					}
				})
			case <-pending:
				run()
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn("watch error", zap.Error(err))
			case <-sig:
				return nil
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
		}
	},
}
