package discord

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jfmyers9/pctl/pkg/playerctl"
)

// Update represents one player snapshot from the watcher.
// Mirrors the watcher's update type to avoid import cycles.
type Update struct {
	Status    playerctl.PlayState
	Players   map[string]*playerctl.PlayerMetadata
	Positions map[string]uint64
}

type rpcClient interface {
	SetActivity(Activity) error
	Close() error
}

// Presence manages Discord Rich Presence updates.
type Presence struct {
	appID   string
	logger  zerolog.Logger
	client  rpcClient
	connect func(string) (rpcClient, error)
	last    lastActivity
}

type lastActivity struct {
	player, title, artist, album string
	playing                      bool
}

func New(appID string, logger zerolog.Logger) *Presence {
	return &Presence{
		appID:  appID,
		logger: logger.With().Str("component", "discord").Logger(),
		connect: func(appID string) (rpcClient, error) {
			return ipcConnect(appID)
		},
	}
}

// Run consumes player updates and sets Discord Rich Presence.
// Connects lazily on the first playing track. If Discord isn't
// running, logs the error and retries on the next update.
func (p *Presence) Run(ctx context.Context, updates <-chan Update) {
	for {
		select {
		case <-ctx.Done():
			p.close()
			return
		case u, ok := <-updates:
			if !ok {
				p.close()
				return
			}
			p.handleUpdate(u)
		}
	}
}

func (p *Presence) handleUpdate(u Update) {
	player, meta := activeTrack(u)
	if meta == nil || u.Status != playerctl.StatePlaying {
		if p.last.playing {
			p.clearActivity()
			p.last = lastActivity{}
		}
		return
	}

	cur := lastActivity{
		player: player, title: meta.Title,
		artist: meta.Artist, album: meta.Album,
		playing: true,
	}
	if cur == p.last {
		return
	}

	if err := p.ensureConnected(); err != nil {
		p.logger.Warn().Err(err).Msg("Discord not available")
		return
	}

	if err := p.client.SetActivity(buildActivity(player, meta, u.Positions[player])); err != nil {
		p.logger.Warn().Err(err).Msg("Failed to set activity")
		p.close()
		return
	}
	p.last = cur
}

// activeTrack picks the player whose track the presence should show:
// the first player, in name order, with a current track. Sorting keeps
// the choice stable between polls.
func activeTrack(u Update) (string, *playerctl.PlayerMetadata) {
	names := make([]string, 0, len(u.Players))
	for name := range u.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if meta := u.Players[name]; meta != nil && meta.Title != "" {
			return name, meta
		}
	}
	return "", nil
}

func buildActivity(player string, meta *playerctl.PlayerMetadata, position uint64) Activity {
	start := time.Now().Add(-time.Duration(position) * time.Microsecond)
	startUnix := start.Unix()

	activity := Activity{
		Type:    2, // Listening
		Name:    displayName(player),
		Details: meta.Title,
		Timestamps: &Timestamps{
			Start: &startUnix,
		},
		Assets: &Assets{
			LargeImage: artworkImage(meta.ArtURL),
			LargeText:  meta.Album,
			SmallImage: "pctl",
			SmallText:  "pctl",
		},
	}
	if meta.Artist != "" {
		activity.State = "by " + meta.Artist
	}
	if meta.Length > 0 {
		endUnix := start.Add(meta.LengthDuration()).Unix()
		activity.Timestamps.End = &endUnix
	}
	return activity
}

// displayName strips the MPRIS instance suffix from a player name,
// e.g. "chromium.instance4172" becomes "chromium".
func displayName(player string) string {
	name, _, found := strings.Cut(player, ".instance")
	if !found || name == "" {
		return player
	}
	return name
}

// artworkImage returns the track art URL if Discord can load it.
// Discord only fetches http(s) assets, so file:// covers are dropped.
func artworkImage(artURL string) string {
	if strings.HasPrefix(artURL, "http://") || strings.HasPrefix(artURL, "https://") {
		return artURL
	}
	return ""
}

func (p *Presence) ensureConnected() error {
	if p.client != nil {
		return nil
	}
	client, err := p.connect(p.appID)
	if err != nil {
		return err
	}
	p.logger.Info().Msg("Connected to Discord")
	p.client = client
	return nil
}

func (p *Presence) clearActivity() {
	if p.client == nil {
		return
	}
	if err := p.client.SetActivity(Activity{}); err != nil {
		p.logger.Debug().Err(err).Msg("Failed to clear activity")
		p.close()
	}
}

func (p *Presence) close() {
	if p.client == nil {
		return
	}
	_ = p.client.Close()
	p.client = nil
}
