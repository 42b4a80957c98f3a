package playerctl

import (
	"math"
	"strconv"
)

// DefaultDelimiter separates player name from value in position query
// output. Chosen to be unlikely to appear in a player name.
const DefaultDelimiter = ";-;"

// signedArg encodes a signed offset in the suffix notation playerctl
// expects for relative adjustments: "5+" means forward or louder by
// five, "5-" the reverse. Zero encodes as "0+".
func signedArg(offset float64) string {
	mag := strconv.FormatFloat(math.Abs(offset), 'f', -1, 64)
	if offset < 0 {
		return mag + "-"
	}
	return mag + "+"
}

// seekArgs builds the arguments for a relative position adjustment in
// seconds.
func seekArgs(offset float64) []string {
	return []string{"position", signedArg(offset)}
}

// volumeArgs builds the arguments for a relative volume adjustment,
// where 1.0 is full volume.
func volumeArgs(delta float64) []string {
	return []string{"volume", signedArg(delta)}
}

// statusArgs builds the arguments for a playback status query.
func statusArgs() []string {
	return []string{"status"}
}

// positionArgs builds the arguments asking every player for its position
// in microseconds, one "<player><delim><position>" line per player. The
// delimiter must match the one ParsePositions splits on.
func positionArgs(delim string) []string {
	return []string{"-a", "position", "--format", "{{playerName}}" + delim + "{{position}}"}
}

// metadataArgs builds the arguments asking every player for its full
// metadata table, one "<player> <key> <value>" line per field.
func metadataArgs() []string {
	return []string{"-a", "metadata"}
}
