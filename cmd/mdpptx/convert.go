package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/config"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/filesystem"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
	"github.com/fredcamaral/mdpptx/internal/domain/ports"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <input> <output>",
	Short: "Convert markdown files into a presentation",
	Long: `Convert a markdown file, or every markdown file in a directory, into
PowerPoint presentations.

By default all inputs are merged into the single presentation named by
<output>, in file name order. With --separate, <output> is a directory and
each input produces its own presentation beside its relative path.

Example:
  mdpptx convert talk.md talk.pptx
  mdpptx convert ./slides deck.pptx --recursive --template modern
  mdpptx convert ./slides ./out --separate --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Defaults come from the config files; flags only override when set
	convertCmd.Flags().StringP(config.FlagTemplate, "t", "", "Template: default, professional, modern or minimal")
	convertCmd.Flags().BoolP(config.FlagRecursive, "r", false, "Descend into sub-directories")
	convertCmd.Flags().BoolP(config.FlagSeparate, "s", false, "Write one presentation per input file")
	convertCmd.Flags().Bool(config.FlagAllowEmpty, false, "Succeed when no markdown input is found")
	convertCmd.Flags().Int(config.FlagWorkers, 0, "Parallel conversions (0 uses all CPUs)")
	convertCmd.Flags().Bool(config.FlagFallbackTitles, false, "Title untitled slides after their file name")
	convertCmd.Flags().BoolP("watch", "w", false, "Convert again whenever an input changes")
	convertCmd.Flags().Bool("open", false, "Open the first written presentation in the desktop viewer")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	workingDir := input
	if !info.IsDir() {
		workingDir = filepath.Dir(input)
	}

	cfg, err := loadConfig(cmd, workingDir)
	if err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	opts := cfg.Conversion.Options()
	opts.Output = output

	ctx := cmd.Context()
	watch, _ := cmd.Flags().GetBool("watch")
	open, _ := cmd.Flags().GetBool("open")

	written, err := a.convertOnce(ctx, cmd, input, opts)
	if err != nil && !watch {
		return err
	}
	if err != nil {
		a.logger.Error("conversion failed", "error", err)
	}
	if open && len(written) > 0 {
		if err := a.opener.Open(written[0]); err != nil {
			a.logger.Warn("could not open presentation", "path", written[0], "error", err)
		}
	}

	if !watch {
		return nil
	}
	return a.watchAndConvert(ctx, cmd, input, opts)
}

// convertOnce discovers, converts and persists one batch. It returns the
// paths written.
func (a *app) convertOnce(ctx context.Context, cmd *cobra.Command, input string, opts entities.ConversionOptions) ([]string, error) {
	files, err := a.source.Discover(ctx, input, opts.Recursive)
	if err != nil {
		return nil, err
	}

	docs, err := a.source.Load(ctx, files)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	artifacts, err := a.converter.Convert(ctx, docs, opts)
	a.monitor.RecordConversion(time.Since(start), len(docs), artifacts, err)
	if err != nil {
		return nil, err
	}

	dest := opts.Output
	if opts.Combine {
		dest = filepath.Dir(opts.Output)
	}
	if err := a.sink.Persist(ctx, dest, artifacts); err != nil {
		return nil, err
	}

	written := make([]string, 0, len(artifacts))
	for _, artifact := range artifacts {
		path := filepath.Join(dest, filepath.FromSlash(artifact.Name))
		written = append(written, path)
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", path, len(artifact.Data))
	}
	if len(artifacts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no markdown input found, nothing written")
	}
	return written, nil
}

// watchAndConvert reruns the conversion after every batch of input changes
// until ctx is cancelled
func (a *app) watchAndConvert(ctx context.Context, cmd *cobra.Command, input string, opts entities.ConversionOptions) error {
	w := watcher.NewPollingWatcher(
		a.config.Watcher.GetInterval(),
		a.config.Watcher.GetDebounce(),
		watcher.WithFilter(filesystem.IsMarkdown),
		watcher.WithRecursive(opts.Recursive),
		watcher.WithLogger(a.logs.GetLogger("watcher")),
	)

	events, err := w.Watch(ctx, input)
	if err != nil {
		return fmt.Errorf("watching %s: %w", input, err)
	}
	defer func() { _ = w.Stop() }()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s for changes (press Ctrl+C to stop)\n", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			changed := 1 + drain(events)
			a.logger.Info("inputs changed", "count", changed, "first", event.Path)

			if _, err := a.convertOnce(ctx, cmd, input, opts); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				a.logger.Error("conversion failed", "error", err)
			}

			stats := a.monitor.Snapshot()
			a.logger.Debug("rebuild stats",
				"runs", stats.Conversions,
				"failures", stats.Failures,
				"avg", stats.AverageTime,
				"cache_hit_rate", stats.PartCache.HitRate,
			)
		}
	}
}

// drain consumes the events already queued and returns how many it read
func drain(events <-chan ports.FileChangeEvent) int {
	count := 0
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return count
			}
			count++
		default:
			return count
		}
	}
}
