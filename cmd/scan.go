/*
Copyright © 2025 Blue Fractal Fish
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bluefractalfish/whirlwind/internal/scan"
	"github.com/bluefractalfish/whirlwind/pkg/ascii"
	"github.com/bluefractalfish/whirlwind/pkg/config"
	"github.com/bluefractalfish/whirlwind/pkg/exitcode"
	"github.com/bluefractalfish/whirlwind/pkg/ignore"
	"github.com/bluefractalfish/whirlwind/pkg/logger"
	"github.com/spf13/cobra"
)

// newScanCommand creates the scan subcommand.
func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan ROOT",
		Short: "Scan a directory tree and summarize its files",
		Long: `Scan traverses ROOT recursively, counting directories, files, and
bytes, and tracking the N largest files without holding the full file list
in memory. Per-file stat failures are skipped; the scan always completes.`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().Int("top-n", 100, "Track the N largest files (0 disables)")
	cmd.Flags().Bool("no-ignore", false, "Disable .gitignore/.whirlwindignore filtering")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	topN := intFlag(cmd.Flags(), "top-n", cfg.Scan.TopN)
	noIgnore, _ := cmd.Flags().GetBool("no-ignore")
	if cfg.Scan.NoIgnore {
		noIgnore = true
	}

	root := args[0]

	opts := scan.Options{TopN: topN}
	if !noIgnore {
		if matcher, err := ignore.NewMatcher(root); err == nil {
			opts.Ignores = matcher
		} else {
			logger.Warn("ignore matcher unavailable", logger.Err(err))
		}
	}

	progress := newScanProgress(cmd.ErrOrStderr())
	opts.Progress = progress.Tick

	stats, err := scan.Scan(context.Background(), root, opts)
	progress.Done()

	var invalid *scan.InvalidRootError
	if errors.As(err, &invalid) {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", invalid)
		os.Exit(exitcode.InvalidRoot)
	}
	if err != nil {
		return err
	}

	renderScanReport(cmd, root, stats)
	return nil
}

// renderScanReport prints the inventory summary and the largest-files
// table in a single box.
func renderScanReport(cmd *cobra.Command, root string, stats *scan.ScanStats) {
	lines := []string{
		"summary of scan on " + root,
		"",
	}

	inventory := [][]string{
		{"metric", "value"},
		{"directories", fmt.Sprintf("%d", stats.NumDirs)},
		{"files", fmt.Sprintf("%d", stats.NumFiles)},
		{"total size", scan.FormatBytes(stats.TotalBytes)},
	}
	lines = append(lines, ascii.Table(inventory, []ascii.Align{ascii.AlignLeft, ascii.AlignRight})...)

	if largest := stats.Largest(); len(largest) > 0 {
		rows := [][]string{{"size", "path"}}
		for _, e := range largest {
			rows = append(rows, []string{scan.FormatBytes(e.Size), ascii.Truncate(e.Path, 96)})
		}
		lines = append(lines, "")
		lines = append(lines, "largest files")
		lines = append(lines, ascii.Table(rows, []ascii.Align{ascii.AlignRight, ascii.AlignLeft})...)
	}

	cmd.Print(ascii.Box(lines))
}
