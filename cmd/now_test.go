package cmd

import (
	"testing"

	"github.com/jfmyers9/pctl/pkg/playerctl"
	"github.com/mattn/go-runewidth"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle emoji correctly",
			input:    "🎵 Music",
			width:    15,
			expected: "🎵 Music       ", // emoji is 2 chars wide, so 8 total + 7 spaces
		},
		{
			name:     "truncate emoji text",
			input:    "🎵 This is a very long song title",
			width:    15,
			expected: "🎵 This is a...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 chars, ... is 3, need 1 space
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "single character padding",
			input:    "A",
			width:    5,
			expected: "A    ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			// Verify the result has the expected display width (if width > 0)
			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func TestFormatNow(t *testing.T) {
	info := nowInfo{
		Player:  "spotify",
		Title:   "Radio Ga Ga",
		Artist:  "Queen",
		Album:   "The Works",
		TrackID: "/com/spotify/track/1",
		URL:     "https://open.spotify.com/track/1",
	}

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "default artist dash title",
			template: "{{.Artist}} - {{.Title}}",
			expected: "Queen - Radio Ga Ga",
		},
		{
			name:     "all fields",
			template: "{{.Title}} by {{.Artist}} on {{.Album}} ({{.Player}})",
			expected: "Radio Ga Ga by Queen on The Works (spotify)",
		},
		{
			name:     "url field",
			template: "{{.URL}}",
			expected: "https://open.spotify.com/track/1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := formatNow(info, tt.template)
			if err != nil {
				t.Fatalf("formatNow returned error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("formatNow(%q) = %q, expected %q", tt.template, result, tt.expected)
			}
		})
	}
}

func TestFormatNowInvalidTemplate(t *testing.T) {
	_, err := formatNow(nowInfo{}, "{{.Title")
	if err == nil {
		t.Error("Expected error for unterminated template")
	}
}

func TestFormatNowUnknownField(t *testing.T) {
	_, err := formatNow(nowInfo{}, "{{.Nope}}")
	if err == nil {
		t.Error("Expected error for unknown template field")
	}
}

func TestSelectPlayer(t *testing.T) {
	players := map[string]*playerctl.PlayerMetadata{
		"vlc":     {Title: "Bohemian Rhapsody", Artist: "Queen"},
		"spotify": {Title: "Radio Ga Ga", Artist: "Queen"},
		"firefox": {},
	}

	t.Run("explicit player wins", func(t *testing.T) {
		name, meta := selectPlayer(players, "vlc")
		if name != "vlc" || meta == nil || meta.Title != "Bohemian Rhapsody" {
			t.Errorf("Expected vlc metadata, got %q %+v", name, meta)
		}
	})

	t.Run("explicit player not running", func(t *testing.T) {
		_, meta := selectPlayer(players, "mpv")
		if meta != nil {
			t.Errorf("Expected nil metadata for absent player, got %+v", meta)
		}
	})

	t.Run("first player with a title wins", func(t *testing.T) {
		name, meta := selectPlayer(players, "")
		if name != "spotify" || meta == nil || meta.Title != "Radio Ga Ga" {
			t.Errorf("Expected spotify metadata, got %q %+v", name, meta)
		}
	})

	t.Run("no player reports a track", func(t *testing.T) {
		_, meta := selectPlayer(map[string]*playerctl.PlayerMetadata{"firefox": {}}, "")
		if meta != nil {
			t.Errorf("Expected nil metadata, got %+v", meta)
		}
	})

	t.Run("empty map", func(t *testing.T) {
		_, meta := selectPlayer(map[string]*playerctl.PlayerMetadata{}, "")
		if meta != nil {
			t.Errorf("Expected nil metadata, got %+v", meta)
		}
	})
}
