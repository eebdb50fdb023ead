package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tldv-downloader/tldv/internal/config"
	"github.com/tldv-downloader/tldv/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change persistent settings",
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetSettingsPath())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print all settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		con := tui.NewConsole(cmd.OutOrStdout())
		meta := config.GetSettingsMetadata()
		for _, category := range config.CategoryOrder() {
			fmt.Fprintln(cmd.OutOrStdout(), con.Theme.Accent.Render(category))
			for _, m := range meta[category] {
				value, _ := settings.Get(m.Key)
				if m.Key == "token" && value != "" {
					value = maskToken(value)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %s\n", m.Key, value)
			}
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.LoadSettings()
		if err != nil {
			return err
		}
		if err := settings.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := config.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		tui.NewConsole(cmd.OutOrStdout()).Success("%s updated", args[0])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configPathCmd, configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
