package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jfmyers9/pctl/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize the configuration",
	Long: `Show the effective configuration, or write it to a config file so it
can be edited.

Without flags, prints the effective configuration: built-in defaults,
~/.config/pctl/config.yaml and PCTL_* environment variables combined.

With --init, writes the effective configuration to
~/.config/pctl/config.yaml. An existing file is left untouched unless
--force is also given.`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Bool("init", false, "Write the configuration file")
	configCmd.Flags().Bool("force", false, "Overwrite an existing configuration file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	initFlag, _ := cmd.Flags().GetBool("init")
	if !initFlag {
		printConfig(cfg)
		return nil
	}

	force, _ := cmd.Flags().GetBool("force")
	configFile := filepath.Join(config.GetConfigDir(), "config.yaml")
	if _, err := os.Stat(configFile); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configFile)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("✓ Wrote %s\n", configFile)
	fmt.Println("\nEdit it and re-run your pctl commands to pick up the changes.")

	return nil
}

// printConfig prints the effective configuration using the same key names
// the config file uses.
func printConfig(cfg *config.Config) {
	fmt.Printf("playerctl.binary:     %s\n", cfg.Binary)
	fmt.Printf("playerctl.delimiter:  %s\n", cfg.Delimiter)
	fmt.Printf("output_format:        %s\n", cfg.OutputFormat)
	fmt.Printf("output_width:         %d\n", cfg.OutputWidth)
	fmt.Printf("marquee.enabled:      %t\n", cfg.Marquee.Enabled)
	fmt.Printf("marquee.speed:        %d\n", cfg.Marquee.Speed)
	fmt.Printf("marquee.separator:    %q\n", cfg.Marquee.Separator)
	fmt.Printf("poll_interval:        %d\n", cfg.PollInterval)
	fmt.Printf("min_play_time:        %d\n", cfg.MinPlayTime)
	fmt.Printf("history.enabled:      %t\n", cfg.HistoryEnabled)
	fmt.Printf("discord.enabled:      %t\n", cfg.Discord.Enabled)
	fmt.Printf("discord.app_id:       %s\n", cfg.Discord.AppID)
}
