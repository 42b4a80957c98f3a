// Package playerctl wraps the playerctl command-line utility for
// controlling and querying MPRIS media players.
//
// # Overview
//
// This package shells out to playerctl for every operation: it formats
// the exact argument list the tool expects, runs it, and parses the
// line-oriented text the tool prints back into typed results. There is
// no daemon, no D-Bus binding, and no cached state — each call is one
// independent subprocess round trip, which keeps the client trivially
// safe for concurrent use.
//
// # Installation
//
//	go get github.com/jfmyers9/pctl/pkg/playerctl
//
// The playerctl binary itself must be installed and on PATH (or named
// explicitly via Config.Bin).
//
// # Quick Start
//
//	import "github.com/jfmyers9/pctl/pkg/playerctl"
//
//	client := playerctl.New()
//
//	if err := client.PlayPause(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Controlling playback
//
// Play, Pause, PlayPause, Stop, Next and Previous take no parameters.
// Seek and AdjustVolume take signed offsets and encode them in the
// suffix notation playerctl uses for relative adjustments:
//
//	client.Seek(ctx, 10)            // playerctl position 10+
//	client.Seek(ctx, -10)           // playerctl position 10-
//	client.AdjustVolume(ctx, 0.05)  // playerctl volume 0.05+
//
// # Querying players
//
// Status reports the active player's state as a PlayState. Positions
// and Metadata query every player at once and return maps keyed by
// player name:
//
//	players, err := client.Metadata(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for name, meta := range players {
//	    fmt.Printf("%s: %s - %s\n", name, meta.Artist, meta.Title)
//	}
//
// Each PlayerMetadata carries typed fields for the common MPRIS keys
// plus a Raw map holding every key/value pair the tool emitted, so
// nothing a player reports is lost. URL fields are percent-decoded in
// the typed fields and left undecoded in Raw.
//
// # Error Handling
//
// Failures are typed and reachable with errors.As:
//
//	_, err := client.Metadata(ctx)
//	var cmdErr *playerctl.CommandError
//	if errors.As(err, &cmdErr) {
//	    // playerctl ran and exited non-zero; cmdErr.Stderr has its complaint
//	}
//
// CommandError means playerctl itself failed (most commonly "No players
// found"). ParseLengthError and ParseURLError mean a response field was
// malformed; malformed whole lines are skipped silently instead, since
// they appear when a player briefly emits partial output. Errors from
// spawning the process (binary not found, permission denied) pass
// through wrapped, preserving errors.Is identity.
//
// # Context Support
//
// All operations accept a context.Context; cancellation kills the
// subprocess:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	state, err := client.Status(ctx)
//
// # Configuration
//
// NewWithConfig accepts an alternate binary path, a custom delimiter
// for position queries (the default ";-;" is fine unless a player name
// contains it), and a replacement Runner for tests:
//
//	client := playerctl.NewWithConfig(playerctl.Config{
//	    Bin:       "/usr/local/bin/playerctl",
//	    Delimiter: "|||",
//	})
package playerctl
