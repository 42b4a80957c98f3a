package playerctl

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Recognized metadata keys. Values under any other key still land in
// the Raw map but populate no typed field.
const (
	keyTrackID        = "mpris:trackid"
	keyArtURL         = "mpris:artUrl"
	keyLength         = "mpris:length"
	keyTitle          = "xesam:title"
	keyAlbum          = "xesam:album"
	keyArtist         = "xesam:artist"
	keyAlbumArtist    = "xesam:albumArtist"
	keyURL            = "xesam:url"
	keyContentCreated = "xesam:contentCreated"
)

// ParseStatus maps status query output to a PlayState. The output is
// trimmed and matched case-sensitively; anything that is not exactly
// "Playing" or "Paused" — including empty output — maps to StateStopped.
func ParseStatus(output string) PlayState {
	switch strings.TrimSpace(output) {
	case "Playing":
		return StatePlaying
	case "Paused":
		return StatePaused
	default:
		return StateStopped
	}
}

// ParsePositions parses position query output into a map from player
// name to position in microseconds. Each line splits at the first
// occurrence of delim; lines without the delimiter are skipped. A
// position that does not parse as an unsigned integer fails the whole
// call with a ParseLengthError. A player name repeating across lines
// keeps the last value.
func ParsePositions(output, delim string) (map[string]uint64, error) {
	positions := make(map[string]uint64)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")

		player, value, ok := strings.Cut(line, delim)
		if !ok {
			continue
		}
		pos, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, &ParseLengthError{Value: value, Err: err}
		}
		positions[player] = pos
	}
	return positions, nil
}

// ParseMetadata parses all-players metadata query output into a map
// from player name to PlayerMetadata.
//
// Each line has the shape "<player> <key> <value...>": the player name
// ends at the first space, the key at the next, and the value is
// everything after it with leading whitespace trimmed — embedded spaces
// in the value survive. Lines too short to yield a player and a key are
// skipped. Records are created on the first line naming a player and
// accumulate across later lines for the same name. Every key/value pair
// is stored verbatim in Raw; recognized keys additionally populate the
// typed field, and a value that fails numeric parsing or URL decoding
// fails the whole call.
func ParseMetadata(output string) (map[string]*PlayerMetadata, error) {
	players := make(map[string]*PlayerMetadata)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")

		player, rest, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		rest = strings.TrimLeft(rest, " \t")
		key, value, ok := strings.Cut(rest, " ")
		if !ok {
			continue
		}
		value = strings.TrimLeft(value, " \t")

		meta := players[player]
		if meta == nil {
			meta = &PlayerMetadata{Raw: make(map[string]string)}
			players[player] = meta
		}
		meta.Raw[key] = value

		if err := assignField(meta, key, value); err != nil {
			return nil, err
		}
	}
	return players, nil
}

// assignField decodes value into the typed field for key, if the key is
// one of the recognized metadata names.
func assignField(meta *PlayerMetadata, key, value string) error {
	switch key {
	case keyTrackID:
		meta.TrackID = value
	case keyArtURL:
		decoded, err := decodeURL(value)
		if err != nil {
			return err
		}
		meta.ArtURL = decoded
	case keyLength:
		length, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return &ParseLengthError{Value: value, Err: err}
		}
		meta.Length = length
	case keyTitle:
		meta.Title = value
	case keyAlbum:
		meta.Album = value
	case keyArtist:
		meta.Artist = value
	case keyAlbumArtist:
		meta.AlbumArtist = value
	case keyURL:
		decoded, err := decodeURL(value)
		if err != nil {
			return err
		}
		meta.URL = decoded
	case keyContentCreated:
		meta.ContentCreated = value
	}
	return nil
}

// decodeURL percent-decodes a URL-bearing metadata value. Decoding is
// path-style: a literal '+' stays '+' rather than becoming a space.
func decodeURL(value string) (string, error) {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return "", &ParseURLError{Value: value, Err: err}
	}
	if !utf8.ValidString(decoded) {
		return "", &ParseURLError{Value: value, Err: errInvalidUTF8}
	}
	return decoded, nil
}
