package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/jfmyers9/pctl/pkg/playerctl"
	"github.com/spf13/cobra"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the playback status of the active player",
	Long: `Print the playback status (Playing, Paused or Stopped) of the
active player.

Exit codes:
  0 - A player is playing or paused
  1 - Playback is stopped, or no players are running`,
	RunE: runStatus,
}

// positionCmd represents the position command
var positionCmd = &cobra.Command{
	Use:   "position",
	Short: "Show playback positions for all players",
	Long: `Print the playback position of every running player, one line per
player in the form <player><TAB><position>, sorted by player name.
Positions are reported in microseconds.`,
	RunE: runPosition,
}

// metadataCmd represents the metadata command
var metadataCmd = &cobra.Command{
	Use:   "metadata",
	Short: "Show track metadata for all players",
	Long: `Print the track metadata of every running player as one block of
key/value pairs per player, sorted by player name.

With --json, print a JSON object mapping player names to their raw
metadata key/value pairs instead.`,
	RunE: runMetadata,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(positionCmd)
	rootCmd.AddCommand(metadataCmd)

	metadataCmd.Flags().Bool("json", false, "Output metadata as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}

	status, err := client.Status(ctx)
	if err != nil {
		return fmt.Errorf("failed to get status: %w", err)
	}

	fmt.Println(status)

	// Stopped exits non-zero so status bars and scripts can branch on it
	if status == playerctl.StateStopped {
		os.Exit(1)
	}

	return nil
}

func runPosition(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}

	positions, err := client.Positions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get positions: %w", err)
	}

	names := make([]string, 0, len(positions))
	for name := range positions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\t%d\n", name, positions[name])
	}

	return nil
}

func runMetadata(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}

	players, err := client.Metadata(ctx)
	if err != nil {
		return fmt.Errorf("failed to get metadata: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printMetadataJSON(players)
	}

	names := make([]string, 0, len(players))
	for name := range players {
		names = append(names, name)
	}
	sort.Strings(names)

	for i, name := range names {
		if i > 0 {
			fmt.Println()
		}
		fmt.Printf("%s:\n", name)
		printMetadataBlock(players[name])
	}

	return nil
}

// printMetadataBlock prints one player's raw key/value pairs, sorted by
// key and aligned on the widest key.
func printMetadataBlock(meta *playerctl.PlayerMetadata) {
	keys := make([]string, 0, len(meta.Raw))
	width := 0
	for key := range meta.Raw {
		keys = append(keys, key)
		if len(key) > width {
			width = len(key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Printf("  %-*s  %s\n", width, key, meta.Raw[key])
	}
}

func printMetadataJSON(players map[string]*playerctl.PlayerMetadata) error {
	raw := make(map[string]map[string]string, len(players))
	for name, meta := range players {
		raw[name] = meta.Raw
	}

	out, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
