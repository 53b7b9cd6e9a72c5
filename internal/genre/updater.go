// Package genre fills in missing genre tags from MusicBrainz.
package genre

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/audio"
	"github.com/handiism/playlist-generator/internal/model"
	"github.com/handiism/playlist-generator/internal/progress"
)

// Resolver finds the genre of an album.
type Resolver interface {
	ResolveGenre(ctx context.Context, artist, album string) (string, error)
}

// Writer stores a genre in a file's tags.
type Writer interface {
	WriteGenre(path, genre string) error
}

// MetadataReader reads the artist and album tags used for lookups.
type MetadataReader interface {
	ReadMetadata(path string) (audio.Metadata, error)
}

// Updater resolves and writes genres for a batch of songs.
type Updater struct {
	resolver Resolver
	writer   Writer
	reader   MetadataReader
	tracker  *progress.Tracker
	log      zerolog.Logger
}

// NewUpdater creates an Updater. reader and tracker may be nil; without a
// reader the folder names are used for lookups.
func NewUpdater(resolver Resolver, writer Writer, reader MetadataReader, tracker *progress.Tracker, log zerolog.Logger) *Updater {
	return &Updater{
		resolver: resolver,
		writer:   writer,
		reader:   reader,
		tracker:  tracker,
		log:      log,
	}
}

// UpdateGenres resolves the genre of every song's album and writes it into
// the song's tags.
//
// Lookups are sequential and cached per (artist, album) for the batch.
// Files that are not audio are reported without a lookup.
// Per-song failures never stop the batch; they are returned as labelled
// lines for the user to follow up:
//
//	"Artist - Album - 01 Song.mp3 - No Genre Found"
//	"Artist - Album - cover.png - Unsupported file type: .png"
//	"Artist - Album - 02 Song.m4a - File update failed: ..."
//
// The returned error is set only when ctx is cancelled; the lines
// collected up to then are returned with it.
func (u *Updater) UpdateGenres(ctx context.Context, songs []*model.Song) ([]string, error) {
	cache := NewCache()
	var failures []string

	u.tracker.Begin(fmt.Sprintf("Updating genres for %d songs", len(songs)))

	for i, song := range songs {
		if err := ctx.Err(); err != nil {
			u.tracker.End("Genre update cancelled")
			return failures, err
		}
		u.tracker.Report(fmt.Sprintf("(%d/%d) %s", i+1, len(songs), song.Label()), progress.LevelInfo)

		if !audio.IsAudio(song.Path) {
			failures = append(failures, unsupportedFailure(song))
			continue
		}

		artist, album := u.lookupKey(song)

		res, ok := cache.Get(artist, album)
		if !ok {
			genre, err := u.resolver.ResolveGenre(ctx, artist, album)
			if ctxErr := ctx.Err(); ctxErr != nil {
				u.tracker.End("Genre update cancelled")
				return failures, ctxErr
			}
			res = Result{Genre: genre, Err: err}
			cache.Put(artist, album, res)
		} else {
			u.log.Debug().Str("artist", artist).Str("album", album).Msg("genre cache hit")
		}
		if res.Err != nil || res.Genre == "" {
			u.log.Warn().Err(res.Err).Str("song", song.Label()).Msg("no genre")
			failures = append(failures, song.Label()+" - No Genre Found")
			continue
		}

		genre := model.CapitalizeGenre(res.Genre)
		if err := u.writer.WriteGenre(song.Path, genre); err != nil {
			failures = append(failures, writeFailure(song, err))
			continue
		}
		song.GenreTags = []string{genre}
	}

	u.tracker.End(fmt.Sprintf("Updated %d songs, %d errors", len(songs)-len(failures), len(failures)))
	return failures, nil
}

// lookupKey prefers the artist and album tags, falling back to the
// folder names when a tag is missing or unreadable.
func (u *Updater) lookupKey(song *model.Song) (string, string) {
	artist, album := song.Artist, song.Album
	if u.reader == nil {
		return artist, album
	}

	meta, err := u.reader.ReadMetadata(song.Path)
	if err != nil {
		u.log.Debug().Err(err).Str("song", song.Label()).Msg("tags unreadable, using folder names")
		return artist, album
	}
	if meta.Artist != "" {
		artist = meta.Artist
	}
	if meta.Album != "" {
		album = meta.Album
	}
	return artist, album
}

func writeFailure(song *model.Song, err error) string {
	if errors.Is(err, audio.ErrUnsupportedFileType) {
		return unsupportedFailure(song)
	}
	return fmt.Sprintf("%s - File update failed: %v", song.Label(), err)
}

func unsupportedFailure(song *model.Song) string {
	return fmt.Sprintf("%s - Unsupported file type: %s", song.Label(), filepath.Ext(song.Path))
}
