/*
Copyright © 2025 Blue Fractal Fish
*/
package cmd

import (
	"os"

	"github.com/bluefractalfish/whirlwind/internal/ops"
	"github.com/bluefractalfish/whirlwind/pkg/buildinfo"
	"github.com/bluefractalfish/whirlwind/pkg/exitcode"
	"github.com/bluefractalfish/whirlwind/pkg/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newRootCommand creates a fresh root command instance with all
// subcommands attached. This factory pattern allows tests to create
// isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whirlwind",
		Short: "Raster inventory and CSV staging tool",
		Long: `Whirlwind inventories directory trees of raster imagery and builds
staging-table CSVs of per-file geospatial metadata (projection, footprint,
pixel geometry, acquisition date).

Examples:
   whirlwind scan /data/mosaics              # Summarize a directory tree
   whirlwind scan /data/mosaics --top-n 20   # Track the 20 largest files
   whirlwind stage /data/mosaics             # Build mosaic_stage.csv
   whirlwind version                         # Show version`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Wire Cobra's built-in --version using whirlwind's binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("whirlwind {{.Version}}\n")

	// Grouped help by command group (Inventory → Support)
	cmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		reg := ops.GetRegistry()
		cmd.Println(cmd.Long)
		cmd.Println()
		cmd.Println("Inventory Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupInventory) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Support Commands:")
		for _, c := range reg.GetCommandsByGroup(ops.GroupSupport) {
			cmd.Printf("  %-12s %s\n", c.Name, c.Description)
		}
		cmd.Println()
		cmd.Println("Flags:")
		cmd.Print(cmd.UsageString())
	})

	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newStageCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// commandGroups classifies subcommands for the grouped help output.
var commandGroups = map[string]ops.CommandGroup{
	"scan":    ops.GroupInventory,
	"stage":   ops.GroupInventory,
	"version": ops.GroupSupport,
}

func init() {
	// Only the package-level tree is registered; test trees built through
	// newRootCommand stay out of the registry.
	for _, c := range rootCmd.Commands() {
		group, ok := commandGroups[c.Name()]
		if !ok {
			continue
		}
		if err := ops.RegisterCommand(c.Name(), group, c, c.Short); err != nil {
			logger.Error("Failed to register command",
				logger.String("command", c.Name()), logger.Err(err))
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	config := logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "whirlwind",
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.GeneralError)
	}
}

// intFlag returns the flag's value when it was set explicitly and the
// fallback (typically a configuration default) otherwise.
func intFlag(flags *pflag.FlagSet, name string, fallback int) int {
	if flags.Changed(name) {
		v, _ := flags.GetInt(name)
		return v
	}
	return fallback
}
