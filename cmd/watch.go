package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jfmyers9/pctl/internal/config"
	"github.com/jfmyers9/pctl/internal/discord"
	"github.com/jfmyers9/pctl/internal/watch"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	watchLogFile  string
	watchLogLevel string
	watchDataDir  string
	watchDiscord  bool
)

// defaultDiscordAppID is the Discord application used for Rich Presence
// when the config does not name one.
const defaultDiscordAppID = "1054951789318166528"

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the play watcher daemon",
	Long: `Run the watcher daemon that monitors the running players and records
what you listen to.

The watcher will:
- Poll playerctl every few seconds for status, metadata and positions
- Record a play once a track has stayed current past the minimum play time
- Prune history entries older than the retention window on shutdown
- Publish the current track as Discord Rich Presence when enabled
- Handle graceful shutdown on SIGINT/SIGTERM

The watcher runs in the foreground and logs to stderr by default.
Use the --log-file flag to log to a file (useful for systemd).`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	// Command-line flags
	watchCmd.Flags().StringVar(&watchLogFile, "log-file", "", "Log file path (default: stderr)")
	watchCmd.Flags().StringVar(&watchLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	watchCmd.Flags().StringVar(&watchDataDir, "data-dir", "", "Data directory for the history database (default: ~/.local/share/pctl)")
	watchCmd.Flags().BoolVar(&watchDiscord, "discord", false, "Publish Discord Rich Presence (overrides config)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Set up logging
	logger := setupLogger(watchLogFile, watchLogLevel)

	logger.Info().
		Str("version", version).
		Msg("Starting pctl watcher")

	// Determine data directory
	dataDir := watchDataDir
	if dataDir == "" {
		dataDir, err = defaultDataDir()
		if err != nil {
			return err
		}
	}

	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logger.Info().Str("data_dir", dataDir).Msg("Using data directory")

	// Create playerctl client
	client := cfg.Client()

	// Create Discord presence when enabled
	var presence *discord.Presence
	if watchDiscord || cfg.Discord.Enabled {
		appID := cfg.Discord.AppID
		if appID == "" {
			appID = defaultDiscordAppID
		}
		presence = discord.New(appID, logger)
		logger.Info().Str("app_id", appID).Msg("Discord Rich Presence enabled")
	}

	// Create watcher config
	historyDB := ""
	if cfg.HistoryEnabled {
		historyDB = filepath.Join(dataDir, "history.db")
	}
	watchCfg := watch.Config{
		PollInterval: time.Duration(cfg.PollInterval) * time.Second,
		MinPlayTime:  time.Duration(cfg.MinPlayTime) * time.Second,
		HistoryDB:    historyDB,
		CleanupAge:   90 * 24 * time.Hour, // Keep three months of history
	}

	// Create watcher
	w, err := watch.New(watchCfg, client, presence, logger)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Run watcher (blocks until shutdown signal)
	if err := w.Run(); err != nil {
		return fmt.Errorf("watcher error: %w", err)
	}

	// Graceful shutdown
	if err := w.Shutdown(); err != nil {
		logger.Error().Err(err).Msg("Error during shutdown")
		return err
	}

	logger.Info().Msg("Shutdown complete")
	return nil
}

// defaultDataDir returns the default directory for watcher data
func defaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "pctl"), nil
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	// Create logger
	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}
