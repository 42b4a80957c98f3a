package watch

import (
	"time"

	"github.com/jfmyers9/pctl/internal/history"
	"github.com/jfmyers9/pctl/pkg/playerctl"
)

// candidate is a track observed on a player that has not yet been held
// long enough to count as a play.
type candidate struct {
	play      history.Play
	firstSeen time.Time
	recorded  bool
}

// Tracker decides when an observed track counts as a play. A track is
// recorded once it has stayed current on the same player for the
// minimum play time; changing tracks or losing the player resets the
// clock.
type Tracker struct {
	minPlayTime time.Duration
	current     map[string]*candidate
	now         func() time.Time
}

// NewTracker creates a new Tracker instance
func NewTracker(minPlayTime time.Duration) *Tracker {
	return &Tracker{
		minPlayTime: minPlayTime,
		current:     make(map[string]*candidate),
		now:         time.Now,
	}
}

// Observe takes the latest player snapshot and returns the plays that
// became eligible for recording since the previous call.
func (t *Tracker) Observe(players map[string]*playerctl.PlayerMetadata) []history.Play {
	now := t.now()
	var plays []history.Play

	for player, meta := range players {
		if meta.Title == "" {
			// A player with no current track is not a candidate.
			delete(t.current, player)
			continue
		}

		cand, ok := t.current[player]
		if !ok || !sameTrack(cand.play, player, meta) {
			t.current[player] = &candidate{
				play:      playFromMetadata(player, meta, now),
				firstSeen: now,
			}
			continue
		}

		if cand.recorded || now.Sub(cand.firstSeen) < t.minPlayTime {
			continue
		}

		cand.recorded = true
		plays = append(plays, cand.play)
	}

	// Forget players that disappeared from the snapshot.
	for player := range t.current {
		if _, ok := players[player]; !ok {
			delete(t.current, player)
		}
	}

	return plays
}

// sameTrack reports whether the candidate and the observed metadata
// describe the same track on the same player
func sameTrack(play history.Play, player string, meta *playerctl.PlayerMetadata) bool {
	return play.Player == player &&
		play.Title == meta.Title &&
		play.Artist == meta.Artist &&
		play.Album == meta.Album
}

func playFromMetadata(player string, meta *playerctl.PlayerMetadata, startedAt time.Time) history.Play {
	return history.Play{
		Player:    player,
		Title:     meta.Title,
		Artist:    meta.Artist,
		Album:     meta.Album,
		TrackURL:  meta.URL,
		Length:    meta.LengthDuration(),
		StartedAt: startedAt,
	}
}
