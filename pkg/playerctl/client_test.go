package playerctl

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

type fakeRunner struct {
	calls  [][]string
	result Result
	err    error
}

func (f *fakeRunner) Run(_ context.Context, args ...string) (Result, error) {
	f.calls = append(f.calls, args)
	if f.err != nil {
		return Result{}, f.err
	}
	return f.result, nil
}

func newTestClient(runner *fakeRunner) *Client {
	return NewWithConfig(Config{Runner: runner})
}

// TestControlCommands tests that each control operation sends the exact
// argument list
func TestControlCommands(t *testing.T) {
	tests := []struct {
		name string
		call func(*Client, context.Context) error
		want string
	}{
		{"play", (*Client).Play, "play"},
		{"pause", (*Client).Pause, "pause"},
		{"play-pause", (*Client).PlayPause, "play-pause"},
		{"stop", (*Client).Stop, "stop"},
		{"next", (*Client).Next, "next"},
		{"previous", (*Client).Previous, "previous"},
		{
			"seek forward",
			func(c *Client, ctx context.Context) error { return c.Seek(ctx, 10) },
			"position 10+",
		},
		{
			"seek back",
			func(c *Client, ctx context.Context) error { return c.Seek(ctx, -10) },
			"position 10-",
		},
		{
			"volume up",
			func(c *Client, ctx context.Context) error { return c.AdjustVolume(ctx, 0.05) },
			"volume 0.05+",
		},
		{
			"volume down",
			func(c *Client, ctx context.Context) error { return c.AdjustVolume(ctx, -0.05) },
			"volume 0.05-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			client := newTestClient(runner)

			if err := tt.call(client, context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(runner.calls) != 1 {
				t.Fatalf("expected 1 invocation, got %d", len(runner.calls))
			}
			if got := strings.Join(runner.calls[0], " "); got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestCommandError tests that a non-zero exit becomes a CommandError
// carrying the stderr text verbatim
func TestCommandError(t *testing.T) {
	runner := &fakeRunner{result: Result{ExitCode: 1, Stderr: "No players found\n"}}
	client := newTestClient(runner)

	err := client.Play(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error = %v, want *CommandError", err)
	}
	if cmdErr.ExitCode != 1 {
		t.Errorf("exit code = %d, want 1", cmdErr.ExitCode)
	}
	if cmdErr.Stderr != "No players found\n" {
		t.Errorf("stderr = %q, want verbatim tool output", cmdErr.Stderr)
	}
	if !strings.Contains(err.Error(), "status 1") {
		t.Errorf("message = %q, want the exit status", err.Error())
	}
	if !errors.Is(err, &CommandError{ExitCode: 1}) {
		t.Error("errors.Is should match on exit code")
	}
}

// TestSpawnErrorPassthrough tests that runner failures pass through with
// their identity intact
func TestSpawnErrorPassthrough(t *testing.T) {
	spawnErr := errors.New("executable file not found in $PATH")
	runner := &fakeRunner{err: spawnErr}
	client := newTestClient(runner)

	if err := client.Next(context.Background()); !errors.Is(err, spawnErr) {
		t.Errorf("error = %v, want the runner's error", err)
	}
	if _, err := client.Metadata(context.Background()); !errors.Is(err, spawnErr) {
		t.Errorf("error = %v, want the runner's error", err)
	}
}

// TestStatus tests the status query end to end
func TestStatus(t *testing.T) {
	runner := &fakeRunner{result: Result{Stdout: "Playing\n"}}
	client := newTestClient(runner)

	state, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if state != StatePlaying {
		t.Errorf("state = %v, want %v", state, StatePlaying)
	}
	if got := strings.Join(runner.calls[0], " "); got != "status" {
		t.Errorf("args = %q, want %q", got, "status")
	}

	runner.result = Result{ExitCode: 1, Stderr: "No players found"}
	if _, err := client.Status(context.Background()); err == nil {
		t.Error("expected error when no players are running")
	}
}

// TestPositions tests the position query end to end, including the
// delimiter contract between formatter and parser
func TestPositions(t *testing.T) {
	runner := &fakeRunner{result: Result{Stdout: "mpv;-;12345\nfirefox;-;9999\n"}}
	client := newTestClient(runner)

	positions, err := client.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions() unexpected error: %v", err)
	}
	if positions["mpv"] != 12345 || positions["firefox"] != 9999 {
		t.Errorf("positions = %v", positions)
	}

	want := "-a position --format {{playerName}};-;{{position}}"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

// TestPositionsCustomDelimiter tests that a configured delimiter is used
// by both the formatter and the parser
func TestPositionsCustomDelimiter(t *testing.T) {
	runner := &fakeRunner{result: Result{Stdout: "mpv|42\n"}}
	client := NewWithConfig(Config{Delimiter: "|", Runner: runner})

	positions, err := client.Positions(context.Background())
	if err != nil {
		t.Fatalf("Positions() unexpected error: %v", err)
	}
	if positions["mpv"] != 42 {
		t.Errorf("positions = %v, want mpv:42", positions)
	}

	want := "-a position --format {{playerName}}|{{position}}"
	if got := strings.Join(runner.calls[0], " "); got != want {
		t.Errorf("args = %q, want %q", got, want)
	}
}

// TestMetadataQuery tests the metadata query end to end
func TestMetadataQuery(t *testing.T) {
	runner := &fakeRunner{result: Result{
		Stdout: "mpv xesam:title Song A\nmpv xesam:artist Some Artist\n",
	}}
	client := newTestClient(runner)

	players, err := client.Metadata(context.Background())
	if err != nil {
		t.Fatalf("Metadata() unexpected error: %v", err)
	}
	if got := strings.Join(runner.calls[0], " "); got != "-a metadata" {
		t.Errorf("args = %q, want %q", got, "-a metadata")
	}

	mpv := players["mpv"]
	if mpv == nil {
		t.Fatal("missing mpv entry")
	}
	if mpv.Title != "Song A" {
		t.Errorf("title = %q, want %q", mpv.Title, "Song A")
	}
	if mpv.Artist != "Some Artist" {
		t.Errorf("artist = %q, want %q", mpv.Artist, "Some Artist")
	}
}

// TestClient_Integration exercises the client against a real playerctl
// binary when one is installed
func TestClient_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if _, err := exec.LookPath(DefaultBin); err != nil {
		t.Skip("playerctl not installed")
	}

	client := New()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// With no players running every call is a CommandError; with players
	// running the queries must parse cleanly. Both outcomes are valid here.
	t.Run("Status", func(t *testing.T) {
		state, err := client.Status(ctx)
		if err != nil {
			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) {
				t.Fatalf("Status() failed: %v", err)
			}
			t.Logf("no players available: %v", err)
			return
		}
		t.Logf("status: %v", state)
	})

	t.Run("Metadata", func(t *testing.T) {
		players, err := client.Metadata(ctx)
		if err != nil {
			var cmdErr *CommandError
			if !errors.As(err, &cmdErr) {
				t.Fatalf("Metadata() failed: %v", err)
			}
			t.Logf("no players available: %v", err)
			return
		}
		for name, meta := range players {
			t.Logf("%s: %s - %s (%v)", name, meta.Artist, meta.Title, meta.LengthDuration())
		}
	})
}
