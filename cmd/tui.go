package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/pctl/internal/config"
	"github.com/jfmyers9/pctl/internal/history"
	"github.com/jfmyers9/pctl/internal/tui"
	"github.com/jfmyers9/pctl/internal/watch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Display a terminal UI for the running players",
	Long: `Display a terminal-based user interface showing the currently playing
track with real-time updates.

The TUI includes:
- Now playing display with track title, artist, and album
- Progress bar showing playback position
- A panel listing every running player and its current track
- Recent plays recorded by the watch daemon

Playback can be controlled from the keyboard: space toggles
play/pause, n/p switch tracks, +/- adjust volume, and the arrow
keys seek. Press 'q' to quit.`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	client := cfg.Client()

	app := tui.New()
	app.SetControls(client)
	seedRecentPlays(app)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The TUI owns the terminal, so the poller logs nowhere
	poller := watch.NewPoller(client, time.Duration(cfg.PollInterval)*time.Second, zerolog.Nop())

	updates := make(chan watch.Update, 10)
	go func() {
		_ = poller.Run(ctx, updates)
	}()

	if err := app.Run(ctx, updates); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// seedRecentPlays preloads the recent plays panel from the watch daemon's
// history database. Missing or unreadable history just leaves the panel
// empty, the TUI works without the daemon.
func seedRecentPlays(app *tui.App) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return
	}

	dbPath := filepath.Join(dataDir, "history.db")
	if _, err := os.Stat(dbPath); err != nil {
		return
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	plays, err := store.Recent(ctx, 5)
	if err != nil {
		return
	}

	// Recent returns newest first, SeedRecent wants oldest first
	for i, j := 0, len(plays)-1; i < j; i, j = i+1, j-1 {
		plays[i], plays[j] = plays[j], plays[i]
	}
	app.SeedRecent(plays)
}
