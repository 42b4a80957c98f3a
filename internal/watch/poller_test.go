package watch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfmyers9/pctl/pkg/playerctl"
	"github.com/rs/zerolog"
)

type fakeClient struct {
	status    playerctl.PlayState
	players   map[string]*playerctl.PlayerMetadata
	positions map[string]uint64
	err       error
}

func (f *fakeClient) Status(ctx context.Context) (playerctl.PlayState, error) {
	if f.err != nil {
		return playerctl.StateStopped, f.err
	}
	return f.status, nil
}

func (f *fakeClient) Positions(ctx context.Context) (map[string]uint64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.positions, nil
}

func (f *fakeClient) Metadata(ctx context.Context) (map[string]*playerctl.PlayerMetadata, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.players, nil
}

func TestSnapshot_BundlesClientResults(t *testing.T) {
	client := &fakeClient{
		status: playerctl.StatePlaying,
		players: map[string]*playerctl.PlayerMetadata{
			"spotify": testMeta("How to Disappear Completely", "Radiohead", "Kid A"),
		},
		positions: map[string]uint64{"spotify": 45000000},
	}
	p := NewPoller(client, time.Second, zerolog.Nop())

	update := p.snapshot(context.Background())
	if update.Err != nil {
		t.Fatalf("snapshot returned error: %v", update.Err)
	}
	if update.Status != playerctl.StatePlaying {
		t.Errorf("Status = %v, want %v", update.Status, playerctl.StatePlaying)
	}
	if len(update.Players) != 1 || update.Players["spotify"] == nil {
		t.Errorf("Players = %v, want spotify entry", update.Players)
	}
	if update.Positions["spotify"] != 45000000 {
		t.Errorf("Positions[spotify] = %d, want 45000000", update.Positions["spotify"])
	}
}

func TestSnapshot_NoPlayersIsEmptyNotError(t *testing.T) {
	client := &fakeClient{
		err: &playerctl.CommandError{ExitCode: 1, Stderr: "No players found\n"},
	}
	p := NewPoller(client, time.Second, zerolog.Nop())

	update := p.snapshot(context.Background())
	if update.Err != nil {
		t.Fatalf("expected empty snapshot, got error: %v", update.Err)
	}
	if update.Status != playerctl.StateStopped {
		t.Errorf("Status = %v, want %v", update.Status, playerctl.StateStopped)
	}
	if update.Players == nil || len(update.Players) != 0 {
		t.Errorf("Players = %v, want empty map", update.Players)
	}
	if update.Positions == nil || len(update.Positions) != 0 {
		t.Errorf("Positions = %v, want empty map", update.Positions)
	}
}

func TestSnapshot_SpawnErrorPropagates(t *testing.T) {
	spawnErr := errors.New("exec: \"playerctl\": executable file not found in $PATH")
	client := &fakeClient{err: spawnErr}
	p := NewPoller(client, time.Second, zerolog.Nop())

	update := p.snapshot(context.Background())
	if !errors.Is(update.Err, spawnErr) {
		t.Fatalf("Err = %v, want %v", update.Err, spawnErr)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	client := &fakeClient{status: playerctl.StateStopped}
	p := NewPoller(client, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	updates := make(chan Update, 1)
	done := make(chan error, 1)
	go func() {
		done <- p.Run(ctx, updates)
	}()

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("no update received from running poller")
	}

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after context cancel")
	}
}
