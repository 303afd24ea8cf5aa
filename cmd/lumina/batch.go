package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/image"
	"github.com/yanmxa/lumina/internal/log"
	"github.com/yanmxa/lumina/internal/style"
)

var (
	batchStyle string
	batchOut   string
	batchJobs  int
)

var batchCmd = &cobra.Command{
	Use:   "batch <glob>",
	Short: "Redesign every room photo matching a glob",
	Long: `Redesign every room photo matching a glob in one style. Each photo gets
its own session. Patterns support ** (e.g. "photos/**/*.jpg").`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		settings, err := loadSettings()
		if err != nil {
			return err
		}
		cfg, err := engineConfig(ctx, settings)
		if err != nil {
			return err
		}

		files, err := matchImages(args[0])
		if err != nil {
			return err
		}
		return runBatch(ctx, cfg, files, batchStyle, batchOut, batchJobs, cmd.OutOrStdout())
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchStyle, "style", "s", "", "Style to redesign every room in")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "redesigns", "Output directory")
	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", 1, "Number of photos processed concurrently")
	_ = batchCmd.MarkFlagRequired("style")
}

// matchImages expands pattern and keeps supported image files, sorted.
func matchImages(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	var files []string
	for _, m := range matches {
		if image.IsImageFile(m) {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no images match %q", pattern)
	}
	sort.Strings(files)
	return files, nil
}

// runBatch redesigns each file in a fresh session sharing cfg's clients.
// Failures are reported per file; the returned error counts them.
func runBatch(ctx context.Context, cfg core.Config, files []string, styleName, outDir string, jobs int, w io.Writer) error {
	if cfg.Styles == nil {
		cfg.Styles = style.NewCatalog()
	}
	if _, ok := cfg.Styles.Lookup(styleName); !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownStyle, styleName)
	}
	if jobs < 1 {
		jobs = 1
	}

	var (
		mu     sync.Mutex
		failed int
	)
	report := func(format string, args ...any) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintf(w, format, args...)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, file := range files {
		g.Go(func() error {
			path, err := redesignFile(ctx, core.New(cfg), file, styleName, outDir)
			if err != nil {
				log.LogError("batch", err)
				mu.Lock()
				failed++
				mu.Unlock()
				report("FAIL %s: %v\n", file, err)
				return nil
			}
			report("ok   %s -> %s\n", file, path)
			return nil
		})
	}
	_ = g.Wait()

	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, len(files))
	}
	return nil
}

func redesignFile(ctx context.Context, engine *core.Engine, file, styleName, outDir string) (string, error) {
	res, err := runRedesign(ctx, engine, redesignRequest{Source: file, Style: styleName}, io.Discard)
	if err != nil {
		return "", err
	}
	img, ok := res.Image()
	if !ok {
		return "", fmt.Errorf("no image generated")
	}
	return image.Save(filepath.Join(outDir, image.OutputName(file, styleName, img)), img)
}
