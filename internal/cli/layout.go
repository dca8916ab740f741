package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skylinehq/skyline/pkg/layout"
	"github.com/skylinehq/skyline/pkg/pipeline"
	"github.com/skylinehq/skyline/pkg/tree"
)

// layoutCommand creates the layout command for solving city layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{
		Iterations: c.Config.Iterations,
		Seed:       c.Config.Seed,
	}

	cmd := &cobra.Command{
		Use:   "layout [tree.json]",
		Short: "Solve a city layout from a file tree",
		Long: `Solve a city layout from a file tree.

The layout command takes a tree.json file describing a repository's files and
folders and runs the force-directed solver. The output is a layout.json file
with one block per node: files become buildings sized by line count, folders
become flat plates, and the solver spreads them out so nothing overlaps.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, interactive)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	// Solve flags
	cmd.Flags().IntVarP(&opts.Iterations, "iterations", "n", opts.Iterations, "simulation iterations (default 50)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", opts.Seed, "random seed for reproducible layouts (default 42)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if a cached layout exists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "show an interactive progress view")

	return cmd
}

// runLayout loads the tree, solves the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, interactive bool) error {
	root, err := tree.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load tree %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	opts.Logger = logger

	prog := newProgress(logger)
	var result *pipeline.Result
	if interactive {
		result, err = c.runLayoutInteractive(ctx, runner, root, opts)
	} else {
		spinner := newSpinnerWithContext(ctx, "Solving layout...")
		spinner.Start()
		result, err = runner.ComputeLayoutWithCacheInfo(ctx, root, opts)
		if err != nil {
			spinner.StopWithError("Layout failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return fmt.Errorf("solve layout: %w", err)
	}
	prog.done(fmt.Sprintf("Solved %d blocks", result.Stats.BlockCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := layout.WriteLayoutFile(result.Layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if result.Layout.Truncated {
		printWarning("Tree exceeds the node cap; only the first %d nodes were laid out", len(result.Layout.Blocks))
	}
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.BlockCount, result.Layout.Truncated, result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Serve", "skyline serve")

	return nil
}
