package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/airtrace/airtrace/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load(configFile)
		if err != nil {
			exitWithError("failed to load config", err)
		}
		out, err := cfg.Render()
		if err != nil {
			exitWithError("failed to render config", err)
		}
		fmt.Print(out)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
