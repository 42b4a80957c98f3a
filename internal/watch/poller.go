package watch

import (
	"context"
	"errors"
	"time"

	"github.com/jfmyers9/pctl/pkg/playerctl"
	"github.com/rs/zerolog"
)

// Update is one snapshot of every player visible over MPRIS. Status
// reflects the default player, Players and Positions are keyed by
// player name, and positions are in microseconds. Err is set when the
// playerctl client failed outright.
type Update struct {
	Status    playerctl.PlayState
	Players   map[string]*playerctl.PlayerMetadata
	Positions map[string]uint64
	Err       error
}

// Client is the subset of the playerctl client the poller needs.
type Client interface {
	Status(ctx context.Context) (playerctl.PlayState, error)
	Positions(ctx context.Context) (map[string]uint64, error)
	Metadata(ctx context.Context) (map[string]*playerctl.PlayerMetadata, error)
}

// Poller snapshots player state at regular intervals
type Poller struct {
	client   Client
	interval time.Duration
	logger   zerolog.Logger
}

// NewPoller creates a new Poller instance
func NewPoller(client Client, interval time.Duration, logger zerolog.Logger) *Poller {
	return &Poller{
		client:   client,
		interval: interval,
		logger:   logger.With().Str("component", "poller").Logger(),
	}
}

// Run starts the polling loop and sends updates to the provided channel
// Blocks until context is cancelled
func (p *Poller) Run(ctx context.Context, updates chan<- Update) error {
	p.logger.Info().
		Dur("interval", p.interval).
		Msg("Starting poller")

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Poll immediately on start
	p.poll(ctx, updates)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info().Msg("Poller stopped")
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx, updates)
		}
	}
}

// poll gathers one snapshot and sends it as an update
func (p *Poller) poll(ctx context.Context, updates chan<- Update) {
	update := p.snapshot(ctx)
	if update.Err != nil {
		p.logger.Debug().Err(update.Err).Msg("Error polling players")
		// Send error update (non-blocking)
		select {
		case updates <- update:
		case <-ctx.Done():
		}
		return
	}

	// Send update (non-blocking)
	select {
	case updates <- update:
		p.logger.Debug().
			Stringer("status", update.Status).
			Int("players", len(update.Players)).
			Msg("Poll update")
	case <-ctx.Done():
	}
}

// snapshot queries status, metadata and positions in one pass
func (p *Poller) snapshot(ctx context.Context) Update {
	status, err := p.client.Status(ctx)
	if err != nil {
		return normalizeError(err)
	}

	players, err := p.client.Metadata(ctx)
	if err != nil {
		return normalizeError(err)
	}

	positions, err := p.client.Positions(ctx)
	if err != nil {
		return normalizeError(err)
	}

	return Update{
		Status:    status,
		Players:   players,
		Positions: positions,
	}
}

// normalizeError maps a playerctl command failure to an empty snapshot.
// playerctl exits non-zero whenever no players are running, which is a
// normal state for a long-running watcher, not a fault. Spawn and I/O
// errors pass through untouched.
func normalizeError(err error) Update {
	var cmdErr *playerctl.CommandError
	if errors.As(err, &cmdErr) {
		return Update{
			Status:    playerctl.StateStopped,
			Players:   map[string]*playerctl.PlayerMetadata{},
			Positions: map[string]uint64{},
		}
	}
	return Update{Err: err}
}
