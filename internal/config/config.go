package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Colors holds color values for every UI style.
// Values can be xterm-256 codes (0-255) or hex colors (#rrggbb).
type Colors struct {
	Title        string `toml:"title"`
	Header       string `toml:"header"`
	SelectedBG   string `toml:"selected_bg"`
	SelectedFG   string `toml:"selected_fg"`
	Working      string `toml:"working"`
	Meeting      string `toml:"meeting"`
	Break        string `toml:"break"`
	Offline      string `toml:"offline"`
	Done         string `toml:"done"`
	Notification string `toml:"notification"`
	Help         string `toml:"help"`
	Border       string `toml:"border"`
	FormTitle    string `toml:"form_title"`
	FormActive   string `toml:"form_active"`
	FormDim      string `toml:"form_dim"`
	Error        string `toml:"error"`
	Role         string `toml:"role"`
}

// Storage selects where the snapshot is kept.
type Storage struct {
	Backend string `toml:"backend"` // "file", "sqlite" or "memory"
	DataDir string `toml:"data_dir"`
	Key     string `toml:"key"`
}

// Duration is a time.Duration written as a Go duration string ("10m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Inactivity configures the idle-to-offline monitor.
type Inactivity struct {
	Timeout Duration `toml:"timeout"`
	// MemberID is marked offline when no member matches the current user.
	MemberID int `toml:"member_id"`
}

// SeedMember is one roster entry used when no saved state exists.
type SeedMember struct {
	ID     int    `toml:"id"`
	Name   string `toml:"name"`
	Status string `toml:"status"`
}

// Team holds the initial data for a fresh start.
type Team struct {
	CurrentUser string       `toml:"current_user"`
	Role        string       `toml:"role"`
	Members     []SeedMember `toml:"members"`
}

// Config is the top-level configuration.
type Config struct {
	Storage    Storage    `toml:"storage"`
	Inactivity Inactivity `toml:"inactivity"`
	Team       Team       `toml:"team"`
	Colors     Colors     `toml:"colors"`
}

// Default returns a Config populated with the built-in defaults.
func Default() Config {
	return Config{
		Storage: Storage{
			Backend: "file",
			DataDir: DataDir(),
			Key:     "teamPulseState",
		},
		Inactivity: Inactivity{
			Timeout:  Duration{10 * time.Minute},
			MemberID: 1,
		},
		Team: Team{
			CurrentUser: "Dylan Hunter",
			Role:        "lead",
			Members: []SeedMember{
				{ID: 1, Name: "Natalie Gibson", Status: "Working"},
				{ID: 2, Name: "Peter Piper", Status: "Meeting"},
				{ID: 3, Name: "John Doe", Status: "Offline"},
			},
		},
		Colors: Colors{
			Title:        "#cba6f7", // Mauve
			Header:       "#89b4fa", // Blue
			SelectedBG:   "#313244", // Surface 0
			SelectedFG:   "#cdd6f4", // Text
			Working:      "#a6e3a1", // Green
			Meeting:      "#cba6f7", // Mauve
			Break:        "#f9e2af", // Yellow
			Offline:      "#7f849c", // Overlay 1
			Done:         "#94e2d5", // Teal
			Notification: "#a6adc8", // Subtext 0
			Help:         "#7f849c", // Overlay 1
			Border:       "#585b70", // Surface 2
			FormTitle:    "#f5c2e7", // Pink
			FormActive:   "#f5c2e7", // Pink
			FormDim:      "#7f849c", // Overlay 1
			Error:        "#f38ba8", // Red
			Role:         "#89b4fa", // Blue
		},
	}
}

// Path returns the config file path, respecting XDG_CONFIG_HOME.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "teampulse", "teampulse.conf")
}

// DataDir returns the default state directory, respecting XDG_DATA_HOME.
func DataDir() string {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "teampulse")
}

// Load reads the config file at the default path.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the config file at path and returns a Config. Omitted
// fields keep their default values. If the file does not exist, defaults
// are returned with no error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	// Seed members from the file replace the defaults, never merge with them.
	defaults := cfg.Team.Members
	cfg.Team.Members = nil
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if !md.IsDefined("team", "members") {
		cfg.Team.Members = defaults
	}
	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)
	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

const defaultFileContent = `# TeamPulse configuration
# Uncomment and modify values to customize. All values are optional.
# Colors can be hex (#rrggbb) or xterm-256 codes (0-255).
# Defaults use the Catppuccin Mocha palette.

[storage]
# backend  = "file"            # file, sqlite or memory
# data_dir = "~/.local/share/teampulse"
# key      = "teamPulseState"  # name of the saved state entry

[inactivity]
# timeout   = "10m"  # mark the signed-in member offline after this long without input
# member_id = 1      # member marked offline when no member matches current_user

# Used only when there is no saved state yet.
[team]
# current_user = "Dylan Hunter"
# role         = "lead"   # lead or member
#
# [[team.members]]
# id     = 1
# name   = "Natalie Gibson"
# status = "Working"       # Working, Meeting, Break or Offline

[colors]
# title        = "#cba6f7"  # Mauve
# header       = "#89b4fa"  # Blue
# selected_bg  = "#313244"  # Surface 0
# selected_fg  = "#cdd6f4"  # Text
# working      = "#a6e3a1"  # Green
# meeting      = "#cba6f7"  # Mauve
# break        = "#f9e2af"  # Yellow
# offline      = "#7f849c"  # Overlay 1
# done         = "#94e2d5"  # Teal
# notification = "#a6adc8"  # Subtext 0
# help         = "#7f849c"  # Overlay 1
# border       = "#585b70"  # Surface 2
# form_title   = "#f5c2e7"  # Pink
# form_active  = "#f5c2e7"  # Pink
# form_dim     = "#7f849c"  # Overlay 1
# error        = "#f38ba8"  # Red
# role         = "#89b4fa"  # Blue
`

// WriteDefault writes the default config file with all values commented out.
// It no-ops if the file already exists. Parent directories are created as needed.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // file already exists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(defaultFileContent), 0o644)
}
