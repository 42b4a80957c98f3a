package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/pctl/internal/history"
	"github.com/spf13/cobra"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recently recorded plays",
	Long: `Show plays recorded by the watch daemon, newest first.

Each line shows when the play started, the track, and which player
played it. With --json, a JSON array of plays is printed instead.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of plays to show")
	historyCmd.Flags().Bool("json", false, "Output plays as JSON")
	historyCmd.Flags().String("data-dir", "", "Data directory of the watch daemon (default: ~/.local/share/pctl)")
}

// playJSON is the JSON shape of one recorded play.
type playJSON struct {
	Player        string  `json:"player"`
	Title         string  `json:"title"`
	Artist        string  `json:"artist,omitempty"`
	Album         string  `json:"album,omitempty"`
	TrackURL      string  `json:"track_url,omitempty"`
	LengthSeconds float64 `json:"length_seconds,omitempty"`
	StartedAt     string  `json:"started_at"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		var err error
		dataDir, err = defaultDataDir()
		if err != nil {
			return err
		}
	}

	dbPath := filepath.Join(dataDir, "history.db")
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("no play history at %s (is the watch daemon running?)", dbPath)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	plays, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printHistoryJSON(plays)
	}

	if len(plays) == 0 {
		fmt.Println("No plays recorded yet")
		return nil
	}

	for _, play := range plays {
		started := play.StartedAt.Local().Format("2006-01-02 15:04")
		if play.Artist != "" {
			fmt.Printf("%s  %s - %s [%s]\n", started, play.Artist, play.Title, play.Player)
		} else {
			fmt.Printf("%s  %s [%s]\n", started, play.Title, play.Player)
		}
	}

	return nil
}

func printHistoryJSON(plays []history.Play) error {
	out := make([]playJSON, 0, len(plays))
	for _, play := range plays {
		out = append(out, playJSON{
			Player:        play.Player,
			Title:         play.Title,
			Artist:        play.Artist,
			Album:         play.Album,
			TrackURL:      play.TrackURL,
			LengthSeconds: play.Length.Seconds(),
			StartedAt:     play.StartedAt.Local().Format(time.RFC3339),
		})
	}

	encoded, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}

	fmt.Println(string(encoded))
	return nil
}
