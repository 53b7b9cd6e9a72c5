package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/audio"
	"github.com/handiism/playlist-generator/internal/config"
	"github.com/handiism/playlist-generator/internal/export"
	"github.com/handiism/playlist-generator/internal/genre"
	mbhttp "github.com/handiism/playlist-generator/internal/http"
	"github.com/handiism/playlist-generator/internal/library"
	"github.com/handiism/playlist-generator/internal/model"
	"github.com/handiism/playlist-generator/internal/musicbrainz"
	"github.com/handiism/playlist-generator/internal/playlist"
	"github.com/handiism/playlist-generator/internal/progress"
)

// Exporter kinds accepted by Manager.Exporter.
const (
	ExportMusic = "music"
	ExportFiles = "files"
)

// ErrNotLoaded is returned by operations that need the catalog before
// Refresh has run.
var ErrNotLoaded = errors.New("library not loaded")

// ErrAlreadyInPlaylist is returned by AddSong for a song the playlist
// already plays.
var ErrAlreadyInPlaylist = errors.New("song already in playlist")

// Manager coordinates the library operations of one session.
type Manager struct {
	settings *config.Settings
	index    *library.Index
	reader   *audio.Reader
	updater  *genre.Updater
	sampler  *playlist.Sampler
	tracker  *progress.Tracker
	log      zerolog.Logger

	catalog *library.Catalog
	mu      sync.RWMutex
}

// NewManager creates a Manager from settings. onProgress receives the
// progress events of genre updates and playlist generation; it may be nil.
func NewManager(settings *config.Settings, onProgress func(progress.Event), log zerolog.Logger) *Manager {
	tracker := progress.NewTracker(onProgress)
	reader := audio.NewReader()
	client := musicbrainz.NewClient(
		mbhttp.NewClient(settings.ToHTTPOptions(log)),
		settings.MusicBrainzURL,
		reader,
		log,
	)

	return &Manager{
		settings: settings,
		index:    library.NewIndex(settings.LibraryRoot, settings.MarkerFiles, log),
		reader:   reader,
		updater:  genre.NewUpdater(client, audio.NewTagger(log), reader, tracker, log),
		sampler: playlist.NewSampler(client, playlist.Config{
			InitialMinRating: settings.InitialMinRating,
			RatingStep:       settings.RatingStep,
		}, tracker, log),
		tracker: tracker,
		log:     log,
	}
}

// Settings returns the settings the manager was built with.
func (m *Manager) Settings() *config.Settings {
	return m.settings
}

// Tracker returns the progress tracker shared by all batches.
func (m *Manager) Tracker() *progress.Tracker {
	return m.tracker
}

// Refresh rescans the library, loads every song's genre tags and replaces
// the catalog. Songs whose tags could not be read are returned as
// labelled lines.
func (m *Manager) Refresh(ctx context.Context) ([]string, error) {
	catalog, err := m.index.Load(ctx)
	if err != nil {
		return nil, err
	}
	failures, err := library.LoadGenreTags(ctx, catalog.Songs(), m.reader, m.settings.TagReadConcurrency)
	if err != nil {
		return failures, err
	}

	m.mu.Lock()
	m.catalog = catalog
	m.mu.Unlock()

	m.log.Info().Int("songs", catalog.Len()).Int("tag_errors", len(failures)).Msg("library loaded")
	return failures, nil
}

// Catalog returns the catalog of the last Refresh, or nil.
func (m *Manager) Catalog() *library.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.catalog
}

// List returns the library entries of one depth.
func (m *Manager) List(ctx context.Context, scope library.Scope) ([]*model.Song, error) {
	return m.index.ListSongs(ctx, scope)
}

// Genres returns the distinct genres of the loaded catalog.
func (m *Manager) Genres() ([]string, error) {
	catalog := m.Catalog()
	if catalog == nil {
		return nil, ErrNotLoaded
	}
	return library.Genres(catalog.Songs()), nil
}

// UpdateGenres expands the selected artists, albums and songs and fills in
// their genre tags from MusicBrainz. See genre.Updater.UpdateGenres for
// the returned lines.
func (m *Manager) UpdateGenres(ctx context.Context, selection []*model.Song) ([]string, error) {
	songs, err := m.index.Expand(ctx, selection)
	if err != nil {
		return nil, err
	}
	return m.updater.UpdateGenres(ctx, songs)
}

// Generate draws a playlist named name from the loaded catalog.
func (m *Manager) Generate(ctx context.Context, name string, sel model.Selection, size int, weights model.Weights) (*model.Playlist, error) {
	catalog := m.Catalog()
	if catalog == nil {
		return nil, ErrNotLoaded
	}

	songs, err := m.sampler.Generate(ctx, catalog.Filter(sel), sel, size, weights)
	if err != nil {
		return nil, fmt.Errorf("generate playlist: %w", err)
	}
	return model.NewPlaylist(name, songs, m.reader), nil
}

// AddSong appends the song at path to p. Library songs keep their catalog
// entry; other audio files take their artist and album from the two
// enclosing folders.
func (m *Manager) AddSong(p *model.Playlist, path string) (*model.Song, error) {
	song, err := m.songAt(path)
	if err != nil {
		return nil, fmt.Errorf("add %s: %w", path, err)
	}
	if !p.Add(song, m.reader) {
		return nil, fmt.Errorf("add %s: %w", path, ErrAlreadyInPlaylist)
	}
	m.log.Debug().Str("song", song.Label()).Str("playlist", p.Name).Msg("song added")
	return song, nil
}

func (m *Manager) songAt(path string) (*model.Song, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if catalog := m.Catalog(); catalog != nil {
		for _, p := range []string{path, abs} {
			if s, ok := catalog.Lookup(p); ok {
				return s, nil
			}
		}
	}

	if !audio.IsAudio(abs) {
		return nil, fmt.Errorf("%w: %s", audio.ErrUnsupportedFileType, filepath.Ext(abs))
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a folder", abs)
	}

	albumDir := filepath.Dir(abs)
	artist, album, file := filepath.Base(filepath.Dir(albumDir)), filepath.Base(albumDir), filepath.Base(abs)
	return model.NewSong(abs, artist, album, album+" - "+file), nil
}

// Exporter returns the exporter of the given kind, using the configured
// playlist directory and format for files.
func (m *Manager) Exporter(kind string) (export.Exporter, error) {
	switch kind {
	case ExportMusic:
		return export.NewMusicApp(nil, m.log), nil
	case ExportFiles:
		return export.NewFiles(m.settings.PlaylistDir, m.settings.Format(), m.settings.M3UExtended, m.log), nil
	default:
		return nil, fmt.Errorf("unknown exporter %q", kind)
	}
}

// Export delivers p through the configured exporter.
func (m *Manager) Export(ctx context.Context, p *model.Playlist) error {
	exp, err := m.Exporter(m.settings.Exporter)
	if err != nil {
		return err
	}
	return exp.Export(ctx, p)
}

// Prune removes library folders left without songs.
func (m *Manager) Prune(ctx context.Context) ([]string, error) {
	return m.index.Prune(ctx)
}
