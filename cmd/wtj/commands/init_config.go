package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"wtj-scraper/internal/config"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config [path]",
	Short: "Writes the default config file unless one already exists.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if len(args) == 1 {
			path = args[0]
		}
		created, err := config.EnsureUserConfig(path)
		if err != nil {
			return fmt.Errorf("init config %s: %w", path, err)
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, left untouched\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}
