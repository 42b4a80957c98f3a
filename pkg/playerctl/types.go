package playerctl

import (
	"time"
)

// PlayState represents the playback state a player reports.
type PlayState int

const (
	StateStopped PlayState = iota // No player active or playback stopped
	StatePlaying                  // A track is currently playing
	StatePaused                   // Playback is paused
)

// String returns the playerctl spelling of the state.
func (s PlayState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// PlayerMetadata holds the metadata one player reports.
//
// The typed fields cover the common MPRIS keys; a zero value means the
// player did not report that key. Raw holds every key/value pair exactly
// as the tool emitted it, including the keys that also populate a typed
// field and any keys this package does not model. URL-bearing typed
// fields are percent-decoded; their Raw entries are not.
type PlayerMetadata struct {
	TrackID        string            // mpris:trackid, opaque track identifier
	ArtURL         string            // mpris:artUrl, album art location (decoded)
	Length         uint64            // mpris:length, track length in microseconds
	Title          string            // xesam:title
	Album          string            // xesam:album
	Artist         string            // xesam:artist
	AlbumArtist    string            // xesam:albumArtist
	URL            string            // xesam:url, track location (decoded)
	ContentCreated string            // xesam:contentCreated, as reported
	Raw            map[string]string // every emitted key/value pair, undecoded
}

// LengthDuration returns the track length as a time.Duration.
func (m *PlayerMetadata) LengthDuration() time.Duration {
	return time.Duration(m.Length) * time.Microsecond
}
