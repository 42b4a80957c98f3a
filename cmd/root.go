/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "pctl",
	Short: "Control and query MPRIS media players via playerctl",
	Long: `pctl wraps the playerctl command line tool with a friendlier
control and query surface for MPRIS media players.

It provides one-shot playback commands (play, pause, seek, volume),
query commands whose output is easy to consume from scripts and
status bars, and a watch daemon that records listening history and
optionally publishes the current track as Discord Rich Presence.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags can be added here if needed
}
