// Package config provides configuration management for playlistgen.
//
// This package handles:
//   - Loading and saving settings from JSON or YAML files
//   - Default configuration values
//   - Overrides from a .env file and PLAYLISTGEN_* environment variables
//   - Conversion to the option types of other packages
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// Library at ~/Music/Library
//	// MusicBrainz at https://musicbrainz.org/ws/2, 1s back-off on 503
//	// 20 song playlists, minimum rating 4.0 relaxed in steps of 0.5
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.yaml")
//	if err != nil {
//	    // A missing file is not an error: defaults are returned
//	}
//	settings.ApplyEnv()
//
// # Saving Settings
//
//	settings.LibraryRoot = "/Volumes/Music"
//	err := settings.Save("/path/to/config.json")
//
// # Environment
//
// ApplyEnv reads .env from the working directory when present, then:
//   - PLAYLISTGEN_LIBRARY_ROOT
//   - PLAYLISTGEN_MUSICBRAINZ_URL
//   - PLAYLISTGEN_USER_AGENT
//   - PLAYLISTGEN_PLAYLIST_DIR
//   - PLAYLISTGEN_VERBOSE
package config
