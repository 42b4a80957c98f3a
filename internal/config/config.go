package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/jfmyers9/pctl/pkg/playerctl"
)

// Config holds application configuration
type Config struct {
	// Playerctl binary name or path
	// Default: "playerctl"
	Binary string

	// Delimiter between player name and value in position queries
	// Default: ";-;"
	Delimiter string

	// Output format template for the now command
	// Default: "{{.Artist}} - {{.Title}}"
	OutputFormat string

	// Maximum display width for the now command (0 = unlimited)
	OutputWidth int

	// Marquee scrolling for now output longer than OutputWidth
	Marquee MarqueeConfig

	// Poll interval for the watch daemon (in seconds)
	PollInterval int

	// Seconds a track must stay current before it is recorded
	MinPlayTime int

	// Whether the watch daemon records plays to the history store
	HistoryEnabled bool

	// Discord Rich Presence settings for the watch daemon
	Discord DiscordConfig
}

// MarqueeConfig holds marquee scrolling configuration
type MarqueeConfig struct {
	Enabled   bool
	Speed     int    // Characters scrolled per second
	Separator string // Text inserted between repetitions
}

// DiscordConfig holds Discord Rich Presence configuration
type DiscordConfig struct {
	Enabled bool
	AppID   string
}

// Load reads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	configDir := getConfigDir()
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("playerctl.binary", playerctl.DefaultBin)
	v.SetDefault("playerctl.delimiter", playerctl.DefaultDelimiter)
	v.SetDefault("output_format", "{{.Artist}} - {{.Title}}")
	v.SetDefault("output_width", 0)
	v.SetDefault("marquee.enabled", false)
	v.SetDefault("marquee.speed", 2)
	v.SetDefault("marquee.separator", "  •  ")
	v.SetDefault("poll_interval", 3)
	v.SetDefault("min_play_time", 30)
	v.SetDefault("history.enabled", true)
	v.SetDefault("discord.enabled", false)
	v.SetDefault("discord.app_id", "")

	// Read config file (optional - don't fail if missing)
	_ = v.ReadInConfig()

	// Read from environment variables
	v.SetEnvPrefix("PCTL")
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		Binary:       v.GetString("playerctl.binary"),
		Delimiter:    v.GetString("playerctl.delimiter"),
		OutputFormat: v.GetString("output_format"),
		OutputWidth:  v.GetInt("output_width"),
		Marquee: MarqueeConfig{
			Enabled:   v.GetBool("marquee.enabled"),
			Speed:     v.GetInt("marquee.speed"),
			Separator: v.GetString("marquee.separator"),
		},
		PollInterval:   v.GetInt("poll_interval"),
		MinPlayTime:    v.GetInt("min_play_time"),
		HistoryEnabled: v.GetBool("history.enabled"),
		Discord: DiscordConfig{
			Enabled: v.GetBool("discord.enabled"),
			AppID:   v.GetString("discord.app_id"),
		},
	}

	return cfg, nil
}

// Client creates a playerctl client from the configured binary and
// delimiter
func (c *Config) Client() *playerctl.Client {
	return playerctl.NewWithConfig(playerctl.Config{
		Bin:       c.Binary,
		Delimiter: c.Delimiter,
	})
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "pctl")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	v := viper.New()

	// Set config file path
	configDir := getConfigDir()
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("playerctl.binary", c.Binary)
	v.Set("playerctl.delimiter", c.Delimiter)
	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("marquee.enabled", c.Marquee.Enabled)
	v.Set("marquee.speed", c.Marquee.Speed)
	v.Set("marquee.separator", c.Marquee.Separator)
	v.Set("poll_interval", c.PollInterval)
	v.Set("min_play_time", c.MinPlayTime)
	v.Set("history.enabled", c.HistoryEnabled)
	v.Set("discord.enabled", c.Discord.Enabled)
	v.Set("discord.app_id", c.Discord.AppID)

	// Write to file
	return v.WriteConfigAs(configFile)
}
