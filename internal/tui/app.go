package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"github.com/jfmyers9/pctl/internal/history"
	"github.com/jfmyers9/pctl/internal/watch"
	"github.com/jfmyers9/pctl/pkg/playerctl"
)

const maxRecentPlays = 5

// Config holds TUI configuration options
type Config struct {
	RefreshRate time.Duration // How often to refresh the display
}

// DefaultConfig returns the default TUI configuration
func DefaultConfig() Config {
	return Config{
		RefreshRate: 500 * time.Millisecond,
	}
}

// Controls is the subset of the playerctl client the TUI needs for
// keyboard playback control.
type Controls interface {
	PlayPause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
	Seek(ctx context.Context, offset float64) error
	AdjustVolume(ctx context.Context, offset float64) error
}

// App is the TUI application for displaying player state
type App struct {
	app        *tview.Application
	nowPlaying *tview.TextView
	progress   *tview.TextView
	status     *tview.TextView
	players    *tview.TextView
	recent     *tview.TextView

	// Configuration
	config Config

	// Playerctl client for controls
	controls Controls

	// Mutex protects shared state accessed by both the channel consumer
	// goroutine and the ticker goroutine in handleUpdates.
	mu sync.Mutex

	// Current snapshot (guarded by mu)
	update watch.Update

	// Session stats (guarded by mu)
	sessionStart time.Time
	tracksPlayed int

	// Ring buffer for recent plays (avoids allocation on every track change)
	recentBuf   [maxRecentPlays]history.Play
	recentCount int // total plays added (recentCount % maxRecentPlays = next write index)

	// Last-rendered content for change detection
	lastNowPlaying string
	lastProgress   string
	lastPlayers    string
	lastRecent     string

	// Cached progress bar width to stabilize change detection.
	// Updated only when GetInnerRect returns a positive value.
	lastBarWidth int

	// Context cancel function
	cancelFunc context.CancelFunc
}

// New creates a new TUI application with default config
func New() *App {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a new TUI application with the given config
func NewWithConfig(cfg Config) *App {
	a := &App{
		app:          tview.NewApplication(),
		config:       cfg,
		sessionStart: time.Now(),
	}
	a.setupUI()
	return a
}

// SetControls sets the playerctl client for playback controls
func (a *App) SetControls(controls Controls) {
	a.controls = controls
}

// SeedRecent preloads the recent plays panel, oldest first.
func (a *App) SeedRecent(plays []history.Play) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, play := range plays {
		a.addToRecentPlays(play)
	}
}

// setupUI creates the UI layout
func (a *App) setupUI() {
	// Now playing panel
	a.nowPlaying = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.nowPlaying.SetBorder(true).
		SetTitle(" Now Playing ").
		SetTitleAlign(tview.AlignLeft)

	// Progress bar
	a.progress = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.progress.SetBorder(true)

	// Player list
	a.players = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.players.SetBorder(true).
		SetTitle(" Players ").
		SetTitleAlign(tview.AlignLeft)

	// Recent plays
	a.recent = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	a.recent.SetBorder(true).
		SetTitle(" Recent ").
		SetTitleAlign(tview.AlignLeft)

	// Status bar
	a.status = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[gray]q:quit  space:play/pause  n:next  p:prev  +/-:volume  ←/→:seek[-]")

	// Create layout
	// Top row: now playing (takes most space)
	// Middle row: progress bar
	// Bottom row: player list | recent plays
	// Footer: status bar

	bottomRow := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(a.players, 0, 1, false).
		AddItem(a.recent, 0, 1, false)

	flex := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.nowPlaying, 0, 3, false).
		AddItem(a.progress, 3, 1, false).
		AddItem(bottomRow, 7, 1, false).
		AddItem(a.status, 1, 1, false)

	// Handle keyboard input
	a.app.SetInputCapture(a.handleKeyEvent)

	a.app.SetRoot(flex, true)
}

// handleKeyEvent processes keyboard input
func (a *App) handleKeyEvent(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		a.app.Stop()
		return nil
	case tcell.KeyLeft:
		a.control(func(ctx context.Context) error {
			return a.controls.Seek(ctx, -5)
		})
		return nil
	case tcell.KeyRight:
		a.control(func(ctx context.Context) error {
			return a.controls.Seek(ctx, 5)
		})
		return nil
	}

	switch event.Rune() {
	case 'q', 'Q':
		a.app.Stop()
		return nil
	case ' ':
		a.control(func(ctx context.Context) error {
			return a.controls.PlayPause(ctx)
		})
		return nil
	case 'n', 'N':
		a.control(func(ctx context.Context) error {
			return a.controls.Next(ctx)
		})
		return nil
	case 'p', 'P':
		a.control(func(ctx context.Context) error {
			return a.controls.Previous(ctx)
		})
		return nil
	case '+', '=':
		a.control(func(ctx context.Context) error {
			return a.controls.AdjustVolume(ctx, 0.05)
		})
		return nil
	case '-', '_':
		a.control(func(ctx context.Context) error {
			return a.controls.AdjustVolume(ctx, -0.05)
		})
		return nil
	}
	return event
}

// control runs a playback command with a short timeout
func (a *App) control(fn func(context.Context) error) {
	if a.controls == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = fn(ctx)
}

// Run starts the TUI with a player update channel from the poller
func (a *App) Run(ctx context.Context, updates <-chan watch.Update) error {
	// Create cancellable context
	ctx, a.cancelFunc = context.WithCancel(ctx)

	// Start update goroutine
	go a.handleUpdates(ctx, updates)

	// Run application
	if err := a.app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}

// handleUpdates processes player updates and refreshes the display.
// It splits work into two goroutines: one consumes channel updates
// (state only), and a single ticker drives all redraws to prevent
// queued redraw buildup. All shared App fields are protected by a.mu.
func (a *App) handleUpdates(ctx context.Context, updates <-chan watch.Update) {
	var lastPlaying history.Play

	// Channel consumer goroutine: updates player info but does NOT
	// trigger redraws. The ticker goroutine is the sole caller of
	// refresh().
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case update := <-updates:
				if update.Err != nil {
					continue
				}

				a.mu.Lock()
				// Check for a track change on the active player
				player, meta := activeTrack(update)
				if meta != nil {
					cur := history.Play{
						Player: player,
						Title:  meta.Title,
						Artist: meta.Artist,
						Album:  meta.Album,
					}
					if cur != lastPlaying {
						// Add previous track to recent list
						if lastPlaying.Title != "" {
							lastPlaying.StartedAt = time.Now()
							a.addToRecentPlays(lastPlaying)
							a.tracksPlayed++
						}
						lastPlaying = cur
					}
				}

				a.update = update
				a.mu.Unlock()
			}
		}
	}()

	// Single refresh ticker: the only source of redraws
	refreshRate := a.config.RefreshRate
	if refreshRate <= 0 {
		refreshRate = 500 * time.Millisecond
	}
	ticker := time.NewTicker(refreshRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.app.Stop()
			return
		case <-ticker.C:
			a.refresh()
		}
	}
}

// activeTrack picks the player the top panels should show: the first
// player, in name order, with a current track.
func activeTrack(u watch.Update) (string, *playerctl.PlayerMetadata) {
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

// addToRecentPlays adds a play to the ring buffer of recent plays.
// Must be called with a.mu held.
func (a *App) addToRecentPlays(play history.Play) {
	if play.Title == "" {
		return
	}

	// Write into ring buffer at the current position
	idx := a.recentCount % maxRecentPlays
	a.recentBuf[idx] = play
	a.recentCount++
}

// getRecentPlays returns recent plays in most-recent-first order.
// Must be called with a.mu held.
func (a *App) getRecentPlays() []history.Play {
	n := a.recentCount
	if n > maxRecentPlays {
		n = maxRecentPlays
	}
	result := make([]history.Play, n)
	for i := 0; i < n; i++ {
		// Walk backwards from the most recently written slot
		idx := (a.recentCount - 1 - i) % maxRecentPlays
		result[i] = a.recentBuf[idx]
	}
	return result
}

// refresh updates all UI components
func (a *App) refresh() {
	a.app.QueueUpdateDraw(func() {
		a.mu.Lock()
		defer a.mu.Unlock()

		a.updateNowPlaying()
		a.updateProgress()
		a.updatePlayers()
		a.updateRecentPlays()
	})
}

// updateNowPlaying updates the now playing panel
func (a *App) updateNowPlaying() {
	var text string

	player, meta := activeTrack(a.update)
	if meta == nil {
		text = "\n\n[gray]No track playing[-]"
	} else {
		var sb strings.Builder
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("[white::b]%s[-:-:-]\n", tview.Escape(meta.Title)))
		sb.WriteString(fmt.Sprintf("[yellow]%s[-]\n", tview.Escape(meta.Artist)))
		sb.WriteString(fmt.Sprintf("[gray]%s[-]", tview.Escape(meta.Album)))

		// Play state indicator
		stateIcon := "[green]▶[-]" // Play triangle
		if a.update.Status == playerctl.StatePaused {
			stateIcon = "[yellow]⏸[-]" // Pause icon
		}
		sb.WriteString(fmt.Sprintf("\n\n%s [gray]on %s[-]", stateIcon, tview.Escape(player)))
		text = sb.String()
	}

	if text != a.lastNowPlaying {
		a.lastNowPlaying = text
		a.nowPlaying.SetText(text)
	}
}

// updateProgress updates the progress bar
func (a *App) updateProgress() {
	var text string

	player, meta := activeTrack(a.update)
	if meta == nil {
		text = ""
	} else {
		position := time.Duration(a.update.Positions[player]) * time.Microsecond
		length := meta.LengthDuration()

		_, _, width, _ := a.progress.GetInnerRect()
		barWidth := width - 14 // Account for time display
		// Only update cached width when GetInnerRect returns a positive
		// value, avoiding flicker from transient zero-width during layout.
		if barWidth > 0 {
			a.lastBarWidth = barWidth
		}
		if a.lastBarWidth < 10 {
			a.lastBarWidth = 10
		}

		progressBar := buildProgressBar(position, length, a.lastBarWidth)
		posStr := formatDuration(position)
		lenStr := formatDuration(length)
		text = fmt.Sprintf("%s %s %s", posStr, progressBar, lenStr)
	}

	if text != a.lastProgress {
		a.lastProgress = text
		a.progress.SetText(text)
	}
}

// updatePlayers updates the player list panel
func (a *App) updatePlayers() {
	var sb strings.Builder

	active, _ := activeTrack(a.update)
	names := make([]string, 0, len(a.update.Players))
	for name := range a.update.Players {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		sb.WriteString("[gray]No players[-]\n")
	} else {
		for _, name := range names {
			meta := a.update.Players[name]
			marker := "  "
			if name == active {
				marker = "[green]▸[-] "
			}

			title := "[gray](no track)[-]"
			if meta != nil && meta.Title != "" {
				title = tview.Escape(runewidth.Truncate(meta.Title, 24, "..."))
			}
			sb.WriteString(fmt.Sprintf("%s[white]%s[-]  %s\n", marker, tview.Escape(name), title))
		}
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Session: %s  Tracks: %d", formatDuration(time.Since(a.sessionStart)), a.tracksPlayed))

	text := sb.String()
	if text != a.lastPlayers {
		a.lastPlayers = text
		a.players.SetText(text)
	}
}

// updateRecentPlays updates the recent plays panel
func (a *App) updateRecentPlays() {
	var sb strings.Builder

	plays := a.getRecentPlays()
	if len(plays) == 0 {
		sb.WriteString("[gray]No recent plays[-]")
	} else {
		for i, play := range plays {
			if i > 0 {
				sb.WriteString("\n")
			}

			title := runewidth.Truncate(play.Title, 20, "...")
			sb.WriteString(fmt.Sprintf("[white]%s[-] [gray]%s[-]", tview.Escape(title), tview.Escape(play.Artist)))
		}
	}

	text := sb.String()
	if text != a.lastRecent {
		a.lastRecent = text
		a.recent.SetText(text)
	}
}

// Stop stops the TUI application
func (a *App) Stop() {
	if a.cancelFunc != nil {
		a.cancelFunc()
	}
	a.app.Stop()
}

// buildProgressBar creates a text-based progress bar
func buildProgressBar(position, length time.Duration, width int) string {
	if width <= 0 {
		return ""
	}
	if length == 0 {
		return strings.Repeat("-", width)
	}

	progress := float64(position) / float64(length)
	if progress > 1 {
		progress = 1
	}
	if progress < 0 {
		progress = 0
	}

	filled := int(progress * float64(width))
	empty := width - filled

	bar := "[green]" + strings.Repeat("█", filled) + "[-]" +
		"[gray]" + strings.Repeat("░", empty) + "[-]"

	return bar
}

// formatDuration formats a duration as MM:SS or HH:MM:SS for longer durations
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
