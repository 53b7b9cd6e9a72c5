package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"

	mbhttp "github.com/handiism/playlist-generator/internal/http"
	"github.com/handiism/playlist-generator/internal/model"
)

// Environment variables read by ApplyEnv.
const (
	EnvLibraryRoot    = "PLAYLISTGEN_LIBRARY_ROOT"
	EnvMusicBrainzURL = "PLAYLISTGEN_MUSICBRAINZ_URL"
	EnvUserAgent      = "PLAYLISTGEN_USER_AGENT"
	EnvPlaylistDir    = "PLAYLISTGEN_PLAYLIST_DIR"
	EnvVerbose        = "PLAYLISTGEN_VERBOSE"
)

// Settings holds all configuration options.
type Settings struct {
	// Library settings
	LibraryRoot string   `json:"library_root" yaml:"library_root"`
	MarkerFiles []string `json:"marker_files" yaml:"marker_files"` // files that do not make a folder non-empty

	// MusicBrainz settings
	MusicBrainzURL      string  `json:"musicbrainz_url" yaml:"musicbrainz_url"`
	UserAgent           string  `json:"user_agent" yaml:"user_agent"`
	RequestTimeout      float64 `json:"request_timeout" yaml:"request_timeout"`         // seconds
	RateLimitCooldown   float64 `json:"rate_limit_cooldown" yaml:"rate_limit_cooldown"` // seconds
	RateLimitMaxRetries int     `json:"rate_limit_max_retries" yaml:"rate_limit_max_retries"`
	TagReadConcurrency  int     `json:"tag_read_concurrency" yaml:"tag_read_concurrency"`

	// Sampler settings
	InitialMinRating float64       `json:"initial_min_rating" yaml:"initial_min_rating"`
	RatingStep       float64       `json:"rating_step" yaml:"rating_step"`
	PlaylistSize     int           `json:"playlist_size" yaml:"playlist_size"`
	Weights          model.Weights `json:"weights" yaml:"weights"`

	// Export settings
	Exporter       string `json:"exporter" yaml:"exporter"`               // music, files
	PlaylistFormat string `json:"playlist_format" yaml:"playlist_format"` // m3u, pls, wpl, zpl
	M3UExtended    bool   `json:"m3u_extended" yaml:"m3u_extended"`
	PlaylistDir    string `json:"playlist_dir" yaml:"playlist_dir"`

	Verbose bool `json:"verbose" yaml:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		LibraryRoot: filepath.Join(homeDir, "Music", "Library"),
		MarkerFiles: []string{"Folder.jpg"},

		MusicBrainzURL:      "https://musicbrainz.org/ws/2",
		UserAgent:           "playlistgen/1.0 ( https://github.com/handiism/playlist-generator )",
		RequestTimeout:      30,
		RateLimitCooldown:   1.0,
		RateLimitMaxRetries: 0,
		TagReadConcurrency:  8,

		InitialMinRating: 4.0,
		RatingStep:       0.5,
		PlaylistSize:     20,
		Weights:          model.Weights{Artist: 40, Album: 30, Genre: 30},

		Exporter:       "music",
		PlaylistFormat: "m3u",
		M3UExtended:    true,
		PlaylistDir:    filepath.Join(homeDir, "Music", "Playlists"),
	}
}

// Load reads settings from a JSON or YAML file.
//
// Files ending in .yaml or .yml are decoded as YAML, anything else as JSON.
// Fields missing from the file keep their defaults; a missing file yields
// the defaults.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file, chosen by extension.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// ApplyEnv loads .env from the working directory, if any, and applies the
// PLAYLISTGEN_* overrides. Variables already set in the process environment
// win over the .env file.
func (s *Settings) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}

	if v := os.Getenv(EnvLibraryRoot); v != "" {
		s.LibraryRoot = v
	}
	if v := os.Getenv(EnvMusicBrainzURL); v != "" {
		s.MusicBrainzURL = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		s.UserAgent = v
	}
	if v := os.Getenv(EnvPlaylistDir); v != "" {
		s.PlaylistDir = v
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		verbose, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		s.Verbose = verbose
	}
	return nil
}

// Validate checks the values other packages rely on.
func (s *Settings) Validate() error {
	if s.LibraryRoot == "" {
		return errors.New("library_root is required")
	}
	if s.PlaylistSize <= 0 {
		return fmt.Errorf("playlist_size must be positive, got %d", s.PlaylistSize)
	}
	if s.RatingStep <= 0 {
		return fmt.Errorf("rating_step must be positive, got %v", s.RatingStep)
	}
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	switch s.Exporter {
	case "music", "files":
	default:
		return fmt.Errorf("exporter must be music or files, got %q", s.Exporter)
	}
	return nil
}

// ToHTTPOptions converts settings to MusicBrainz client options.
func (s *Settings) ToHTTPOptions(log zerolog.Logger) mbhttp.Options {
	return mbhttp.Options{
		UserAgent:           s.UserAgent,
		Timeout:             seconds(s.RequestTimeout),
		RateLimitCooldown:   seconds(s.RateLimitCooldown),
		MaxRateLimitRetries: s.RateLimitMaxRetries,
		Logger:              log,
	}
}

// Format returns the configured playlist file format.
func (s *Settings) Format() model.PlaylistFormat {
	return model.ParsePlaylistFormat(s.PlaylistFormat)
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
