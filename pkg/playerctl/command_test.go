package playerctl

import (
	"math"
	"strings"
	"testing"
)

// TestSignedArg tests the sign-suffix encoding for relative offsets
func TestSignedArg(t *testing.T) {
	tests := []struct {
		name   string
		offset float64
		want   string
	}{
		{"positive integer", 10.0, "10+"},
		{"negative integer", -10.0, "10-"},
		{"zero", 0, "0+"},
		{"negative zero", math.Copysign(0, -1), "0+"},
		{"fractional", 2.5, "2.5+"},
		{"negative fractional", -0.25, "0.25-"},
		{"small delta", 0.05, "0.05+"},
		{"large offset", 3600, "3600+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := signedArg(tt.offset); got != tt.want {
				t.Errorf("signedArg(%v) = %q, want %q", tt.offset, got, tt.want)
			}
		})
	}
}

// TestControlArgs tests the argument lists built for seek and volume
func TestControlArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"seek forward", seekArgs(10), "position 10+"},
		{"seek back", seekArgs(-10), "position 10-"},
		{"volume up", volumeArgs(0.05), "volume 0.05+"},
		{"volume down", volumeArgs(-0.1), "volume 0.1-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Join(tt.args, " "); got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestQueryArgs tests the argument lists built for queries
func TestQueryArgs(t *testing.T) {
	if got := strings.Join(statusArgs(), " "); got != "status" {
		t.Errorf("statusArgs = %q, want %q", got, "status")
	}

	want := "-a position --format {{playerName}};-;{{position}}"
	if got := strings.Join(positionArgs(DefaultDelimiter), " "); got != want {
		t.Errorf("positionArgs = %q, want %q", got, want)
	}

	want = "-a position --format {{playerName}}|{{position}}"
	if got := strings.Join(positionArgs("|"), " "); got != want {
		t.Errorf("positionArgs = %q, want %q", got, want)
	}

	want = "-a metadata"
	if got := strings.Join(metadataArgs(), " "); got != want {
		t.Errorf("metadataArgs = %q, want %q", got, want)
	}
}
