/*
Copyright © 2025 Blue Fractal Fish
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bluefractalfish/whirlwind/internal/emit"
	"github.com/bluefractalfish/whirlwind/internal/raster"
	"github.com/bluefractalfish/whirlwind/internal/scan"
	"github.com/bluefractalfish/whirlwind/internal/stage"
	"github.com/bluefractalfish/whirlwind/pkg/config"
	"github.com/bluefractalfish/whirlwind/pkg/exitcode"
	"github.com/bluefractalfish/whirlwind/pkg/logger"
	"github.com/spf13/cobra"
)

// newStageCommand creates the stage subcommand.
func newStageCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage ROOT",
		Short: "Extract raster metadata into a staging-table CSV",
		Long: `Stage finds raster files under ROOT, extracts per-file metadata
(identity, projection, pixel geometry, footprint, acquisition date), and
writes one CSV row per readable raster. Unreadable rasters are logged and
skipped; a write failure on the output file is fatal.`,
		Args: cobra.ExactArgs(1),
		RunE: runStage,
	}

	cmd.Flags().String("out", "mosaic_stage.csv", "Output CSV path")
	cmd.Flags().String("columns", "", "Comma-separated column list (overrides config)")
	cmd.Flags().String("columns-file", "", "YAML column-sets file")
	cmd.Flags().String("table", "mosaic_stage", "Table to select from the column-sets file")
	cmd.Flags().Int("target-srid", 4326, "EPSG code footprints are reprojected into")
	cmd.Flags().Int("jobs", 1, "Concurrent extractions")

	return cmd
}

func runStage(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	root := args[0]
	if st, err := os.Stat(root); err != nil || !st.IsDir() {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", &scan.InvalidRootError{Path: root})
		os.Exit(exitcode.InvalidRoot)
	}

	columns, err := resolveColumns(cmd, cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		os.Exit(exitcode.ValidationError)
	}

	targetSRID := intFlag(cmd.Flags(), "target-srid", cfg.Stage.TargetSRID)
	jobs := intFlag(cmd.Flags(), "jobs", cfg.Stage.Jobs)
	out, _ := cmd.Flags().GetString("out")

	uris, err := stage.FindRasters(root, cfg.Stage.Extensions)
	if err != nil {
		return err
	}
	logger.Info("staging rasters",
		logger.Int("count", len(uris)),
		logger.String("root", root),
		logger.Int("target_srid", targetSRID))

	driver := raster.NewGDAL()
	extractor := stage.NewExtractor(driver, driver, targetSRID)

	progress := newStageProgress(cmd.ErrOrStderr())
	rows, skipped, err := extractor.Run(context.Background(), uris, stage.RunnerOptions{
		Columns:  columns,
		Jobs:     jobs,
		Progress: progress.Tick,
	})
	progress.Done()
	if err != nil {
		return err
	}

	records := make([]map[string]string, len(rows))
	for i, row := range rows {
		records[i] = row
	}
	if err := emit.WriteCSVFile(out, columns, records); err != nil {
		var emitErr *emit.EmissionError
		if errors.As(err, &emitErr) {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", emitErr)
			os.Exit(exitcode.FileSystemError)
		}
		return err
	}

	logger.Info("staging complete",
		logger.Int("rows", len(rows)),
		logger.Int("skipped", skipped),
		logger.String("out", out))
	cmd.Printf("wrote %d rows to %s (%d skipped)\n", len(rows), out, skipped)
	return nil
}

// resolveColumns picks the column list: the --columns flag wins, then a
// --columns-file table, then configuration defaults.
func resolveColumns(cmd *cobra.Command, cfg *config.Config) ([]string, error) {
	if spec, _ := cmd.Flags().GetString("columns"); spec != "" {
		return stage.ParseColumns(spec)
	}

	if path, _ := cmd.Flags().GetString("columns-file"); path != "" {
		table, _ := cmd.Flags().GetString("table")
		sets, err := stage.LoadColumnSets(path)
		if err != nil {
			return nil, err
		}
		columns, ok := sets[table]
		if !ok {
			return nil, fmt.Errorf("table %q not present in %s", table, path)
		}
		return columns, nil
	}

	if err := stage.ValidateColumns(cfg.Stage.Columns); err != nil {
		return nil, fmt.Errorf("configured columns: %w", err)
	}
	return cfg.Stage.Columns, nil
}
