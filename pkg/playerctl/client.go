package playerctl

import (
	"context"
)

// DefaultBin is the binary the default runner invokes.
const DefaultBin = "playerctl"

// Config holds client configuration. The zero value selects all
// defaults.
type Config struct {
	Bin       string // Optional: binary name or path (defaults to DefaultBin)
	Delimiter string // Optional: position query delimiter (defaults to DefaultDelimiter)
	Runner    Runner // Optional: invocation runner, substituted in tests
}

// Client issues playerctl commands and parses their responses.
//
// The client holds no state beyond its configuration: every operation
// is one fresh subprocess round trip, so a single Client is safe for
// concurrent use from any number of goroutines.
type Client struct {
	delim  string
	runner Runner
}

// New creates a Client with default configuration.
func New() *Client {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a Client with the given configuration.
func NewWithConfig(cfg Config) *Client {
	bin := cfg.Bin
	if bin == "" {
		bin = DefaultBin
	}

	delim := cfg.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	runner := cfg.Runner
	if runner == nil {
		runner = &execRunner{bin: bin}
	}

	return &Client{delim: delim, runner: runner}
}

// Play resumes playback.
func (c *Client) Play(ctx context.Context) error {
	return c.command(ctx, "play")
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context) error {
	return c.command(ctx, "pause")
}

// PlayPause toggles between play and pause.
func (c *Client) PlayPause(ctx context.Context) error {
	return c.command(ctx, "play-pause")
}

// Stop stops playback.
func (c *Client) Stop(ctx context.Context) error {
	return c.command(ctx, "stop")
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context) error {
	return c.command(ctx, "next")
}

// Previous goes back to the previous track.
func (c *Client) Previous(ctx context.Context) error {
	return c.command(ctx, "previous")
}

// Seek moves the playback position by offset seconds; a negative offset
// seeks backwards.
func (c *Client) Seek(ctx context.Context, offset float64) error {
	return c.command(ctx, seekArgs(offset)...)
}

// AdjustVolume changes the volume by delta, where 1.0 is full volume:
// 0.05 raises the volume five percent, -0.05 lowers it.
func (c *Client) AdjustVolume(ctx context.Context, delta float64) error {
	return c.command(ctx, volumeArgs(delta)...)
}

// Status reports the playback state of the active player.
func (c *Client) Status(ctx context.Context) (PlayState, error) {
	out, err := c.run(ctx, statusArgs()...)
	if err != nil {
		return StateStopped, err
	}
	return ParseStatus(out), nil
}

// Positions reports every player's playback position in microseconds,
// keyed by player name.
func (c *Client) Positions(ctx context.Context) (map[string]uint64, error) {
	out, err := c.run(ctx, positionArgs(c.delim)...)
	if err != nil {
		return nil, err
	}
	return ParsePositions(out, c.delim)
}

// Metadata reports every player's metadata, keyed by player name.
func (c *Client) Metadata(ctx context.Context) (map[string]*PlayerMetadata, error) {
	out, err := c.run(ctx, metadataArgs()...)
	if err != nil {
		return nil, err
	}
	return ParseMetadata(out)
}

// command runs a control operation whose output is discarded.
func (c *Client) command(ctx context.Context, args ...string) error {
	_, err := c.run(ctx, args...)
	return err
}

// run executes one invocation and classifies the outcome: spawn
// failures pass through unchanged, a non-zero exit becomes a
// CommandError, and a clean exit yields the captured stdout.
func (c *Client) run(ctx context.Context, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &CommandError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res.Stdout, nil
}
