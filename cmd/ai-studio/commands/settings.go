package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/ai-studio-kit/pkg/settings"
)

var settingsFormat string

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect the settings file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := settings.Encode(settings.Format(strings.ToLower(settingsFormat)), current.settings.Snapshot())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(raw)
		return err
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), current.settings.Path())
	},
}

func init() {
	settingsShowCmd.Flags().StringVarP(&settingsFormat, "format", "f", string(settings.FormatYAML), "Output format (yaml|json|toml)")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsPathCmd)
}
