package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jfmyers9/pctl/internal/discord"
	"github.com/jfmyers9/pctl/internal/history"
	"github.com/rs/zerolog"
)

// Config holds watcher configuration. HistoryDB may be empty to
// disable play recording. CleanupAge bounds how long recorded plays
// are kept; zero keeps them forever.
type Config struct {
	PollInterval time.Duration
	MinPlayTime  time.Duration
	HistoryDB    string
	CleanupAge   time.Duration
}

// Watcher coordinates the poller, play tracking, history recording and
// Discord presence
type Watcher struct {
	config   Config
	store    *history.Store
	tracker  *Tracker
	poller   *Poller
	presence *discord.Presence
	logger   zerolog.Logger
}

// New creates a new Watcher instance. presence may be nil to disable
// Discord presence updates.
func New(cfg Config, client Client, presence *discord.Presence, logger zerolog.Logger) (*Watcher, error) {
	var store *history.Store
	if cfg.HistoryDB != "" {
		var err error
		store, err = history.NewStore(cfg.HistoryDB)
		if err != nil {
			return nil, fmt.Errorf("failed to create history store: %w", err)
		}
	}

	return &Watcher{
		config:   cfg,
		store:    store,
		tracker:  NewTracker(cfg.MinPlayTime),
		poller:   NewPoller(client, cfg.PollInterval, logger),
		presence: presence,
		logger:   logger.With().Str("component", "watcher").Logger(),
	}, nil
}

// Run starts the watcher and blocks until a shutdown signal is received
func (w *Watcher) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Handle first signal gracefully, second signal forces exit
	go func() {
		<-sigChan
		w.logger.Info().Msg("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Second signal forces exit
		<-sigChan
		w.logger.Warn().Msg("Second shutdown signal received, forcing exit")
		os.Exit(1)
	}()

	if err := w.run(ctx); err != nil && err != context.Canceled {
		return err
	}

	return nil
}

// run is the main watcher loop
func (w *Watcher) run(ctx context.Context) error {
	w.logger.Info().Msg("Starting watcher")

	var wg sync.WaitGroup
	updates := make(chan Update, 10)

	// Start poller
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := w.poller.Run(ctx, updates); err != nil && err != context.Canceled {
			w.logger.Error().Err(err).Msg("Poller error")
		}
	}()

	// Start Discord presence
	var presenceCh chan discord.Update
	if w.presence != nil {
		presenceCh = make(chan discord.Update, 10)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.presence.Run(ctx, presenceCh)
		}()
	}

	// Main loop: handle player updates
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.handleUpdates(ctx, updates, presenceCh)
	}()

	// Wait for all goroutines to finish
	wg.Wait()

	w.logger.Info().Msg("Watcher stopped")
	return nil
}

// handleUpdates processes player updates from the poller
func (w *Watcher) handleUpdates(ctx context.Context, updates <-chan Update, presenceCh chan<- discord.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case update := <-updates:
			if update.Err != nil {
				// Log error but continue
				w.logger.Debug().Err(update.Err).Msg("Player update error")
				continue
			}

			if err := w.handleUpdate(update); err != nil {
				w.logger.Error().Err(err).Msg("Failed to handle player update")
			}

			if presenceCh != nil {
				// Forward to presence (non-blocking)
				select {
				case presenceCh <- discord.Update{
					Status:    update.Status,
					Players:   update.Players,
					Positions: update.Positions,
				}:
				default:
					w.logger.Debug().Msg("Presence channel full, skipping update")
				}
			}
		}
	}
}

// handleUpdate records any plays that crossed the minimum play time
func (w *Watcher) handleUpdate(update Update) error {
	for _, play := range w.tracker.Observe(update.Players) {
		w.logger.Info().
			Str("track", play.Title).
			Str("artist", play.Artist).
			Str("player", play.Player).
			Msg("Recording play")

		if w.store == nil {
			continue
		}
		ctx := context.Background()
		if _, err := w.store.Add(ctx, play); err != nil {
			return fmt.Errorf("failed to record play: %w", err)
		}
	}
	return nil
}

// Shutdown gracefully shuts down the watcher
func (w *Watcher) Shutdown() error {
	w.logger.Info().Msg("Shutting down watcher")

	if w.store == nil {
		return nil
	}

	ctx := context.Background()

	// Prune old plays
	if w.config.CleanupAge > 0 {
		if _, err := w.store.Cleanup(ctx, w.config.CleanupAge); err != nil {
			w.logger.Warn().Err(err).Msg("Failed to clean up history")
		}
	}

	if err := w.store.Close(); err != nil {
		return fmt.Errorf("failed to close history store: %w", err)
	}

	return nil
}
