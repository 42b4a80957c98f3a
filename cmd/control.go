package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jfmyers9/pctl/internal/config"
	"github.com/jfmyers9/pctl/pkg/playerctl"
	"github.com/spf13/cobra"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Resume playback",
	Long:  `Resume playback on the active player. If paused, starts playing the current track.`,
	RunE:  runPlay,
}

// pauseCmd represents the pause command
var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause playback",
	Long:  `Pause playback on the active player. Pauses the currently playing track.`,
	RunE:  runPause,
}

// toggleCmd represents the toggle command
var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle play/pause",
	Long:  `Toggle between play and pause on the active player. If playing, pauses. If paused, resumes.`,
	RunE:  runToggle,
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long:  `Stop playback on the active player.`,
	RunE:  runStop,
}

// nextCmd represents the next command
var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Skip to the next track",
	Long:  `Skip to the next track on the active player.`,
	RunE:  runNext,
}

// prevCmd represents the prev command
var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Go to the previous track",
	Long:  `Go to the previous track on the active player.`,
	RunE:  runPrev,
}

// seekCmd represents the seek command
var seekCmd = &cobra.Command{
	Use:   "seek <offset>",
	Short: "Seek forwards or backwards",
	Long: `Seek by a relative offset in seconds on the active player.

Positive offsets seek forwards, negative offsets seek backwards.
Fractional offsets like 2.5 are accepted.

Use -- before a negative offset so it is not parsed as a flag:

  pctl seek 10
  pctl seek -- -10`,
	Args: cobra.ExactArgs(1),
	RunE: runSeek,
}

// volumeCmd represents the volume command
var volumeCmd = &cobra.Command{
	Use:   "volume <delta>",
	Short: "Adjust playback volume",
	Long: `Adjust the playback volume of the active player by a relative delta.

The delta is a fraction of full volume: 0.05 raises the volume by 5%,
-0.05 lowers it by 5%.

Use -- before a negative delta so it is not parsed as a flag:

  pctl volume 0.05
  pctl volume -- -0.05`,
	Args: cobra.ExactArgs(1),
	RunE: runVolume,
}

func init() {
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(volumeCmd)
}

// newClient builds a playerctl client from the user configuration.
func newClient() (*playerctl.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg.Client(), nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Play(ctx); err != nil {
		return fmt.Errorf("failed to play: %w", err)
	}

	return nil
}

func runPause(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Pause(ctx); err != nil {
		return fmt.Errorf("failed to pause: %w", err)
	}

	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.PlayPause(ctx); err != nil {
		return fmt.Errorf("failed to toggle playback: %w", err)
	}

	return nil
}

func runStop(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop: %w", err)
	}

	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Next(ctx); err != nil {
		return fmt.Errorf("failed to skip to next track: %w", err)
	}

	return nil
}

func runPrev(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Previous(ctx); err != nil {
		return fmt.Errorf("failed to go to previous track: %w", err)
	}

	return nil
}

func runSeek(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	offset, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid seek offset: %s (must be a number of seconds)", args[0])
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.Seek(ctx, offset); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}

	return nil
}

func runVolume(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	delta, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid volume delta: %s (must be a number like 0.05)", args[0])
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	if err := client.AdjustVolume(ctx, delta); err != nil {
		return fmt.Errorf("failed to adjust volume: %w", err)
	}

	return nil
}
