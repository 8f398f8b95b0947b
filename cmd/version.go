/*
Copyright © 2025 Blue Fractal Fish
*/
package cmd

import (
	"encoding/json"
	"runtime"

	"github.com/bluefractalfish/whirlwind/pkg/buildinfo"
	"github.com/spf13/cobra"
)

type versionInfo struct {
	BinaryVersion string `json:"binaryVersion"`
	ModuleVersion string `json:"moduleVersion,omitempty"`
	GoVersion     string `json:"goVersion,omitempty"`
	Platform      string `json:"platform,omitempty"`
}

// newVersionCommand creates the version subcommand.
func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE:  runVersion,
	}

	cmd.Flags().Bool("extended", false, "Include module, Go, and platform details")
	cmd.Flags().Bool("json", false, "Output as JSON")

	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	extended, _ := cmd.Flags().GetBool("extended")
	asJSON, _ := cmd.Flags().GetBool("json")

	info := versionInfo{BinaryVersion: buildinfo.BinaryVersion}
	if extended {
		info.ModuleVersion = buildinfo.ModuleVersion()
		info.GoVersion = runtime.Version()
		info.Platform = runtime.GOOS + "/" + runtime.GOARCH
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}

	cmd.Printf("whirlwind %s\n", info.BinaryVersion)
	if extended {
		if info.ModuleVersion != "" {
			cmd.Printf("module:   %s\n", info.ModuleVersion)
		}
		cmd.Printf("go:       %s\n", info.GoVersion)
		cmd.Printf("platform: %s\n", info.Platform)
	}
	return nil
}
