package library

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/model"
)

// Scope selects the depth ListSongs walks to.
type Scope int

const (
	ScopeArtists Scope = iota + 1
	ScopeAlbums
	ScopeSongs
)

// String returns the scope name.
func (s Scope) String() string {
	switch s {
	case ScopeArtists:
		return "artists"
	case ScopeAlbums:
		return "albums"
	case ScopeSongs:
		return "songs"
	default:
		return "unknown"
	}
}

// ParseScope maps "artists", "albums" and "songs" to a Scope.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "artists", "artist":
		return ScopeArtists, nil
	case "albums", "album":
		return ScopeAlbums, nil
	case "songs", "song":
		return ScopeSongs, nil
	default:
		return 0, fmt.Errorf("unknown scope %q", s)
	}
}

// Index lists the contents of a library root.
type Index struct {
	root    string
	markers map[string]struct{}
	log     zerolog.Logger
}

// NewIndex creates an index over root. Files named in markers do not make
// a folder count as non-empty.
func NewIndex(root string, markers []string, log zerolog.Logger) *Index {
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[strings.ToLower(m)] = struct{}{}
	}
	return &Index{root: root, markers: set, log: log}
}

// Root returns the library root.
func (idx *Index) Root() string {
	return idx.root
}

// ListSongs lists the entries of the given scope, sorted by name.
//
// Unreadable folders are logged and contribute nothing; the walk goes on.
// Only context cancellation is returned as an error.
func (idx *Index) ListSongs(ctx context.Context, scope Scope) ([]*model.Song, error) {
	var songs []*model.Song

	for _, artist := range idx.folders(idx.root) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		artistPath := filepath.Join(idx.root, artist)

		switch scope {
		case ScopeArtists:
			songs = append(songs, model.NewSong(artistPath, artist, "", artist))
		case ScopeAlbums:
			for _, album := range idx.folders(artistPath) {
				songs = append(songs, model.NewSong(filepath.Join(artistPath, album), artist, album, artist+" - "+album))
			}
		case ScopeSongs:
			for _, album := range idx.folders(artistPath) {
				songs = append(songs, idx.albumSongs(artistPath, artist, album)...)
			}
		default:
			return nil, fmt.Errorf("unknown scope %d", scope)
		}
	}

	sortByName(songs)
	return songs, nil
}

// Load lists every song into a catalog.
func (idx *Index) Load(ctx context.Context) (*Catalog, error) {
	songs, err := idx.ListSongs(ctx, ScopeSongs)
	if err != nil {
		return nil, err
	}
	return NewCatalog(songs), nil
}

// Expand replaces artist and album entries by the songs below them.
// Song entries pass through. The result is de-duplicated and keeps the
// order of the selection.
func (idx *Index) Expand(ctx context.Context, selection []*model.Song) ([]*model.Song, error) {
	seen := make(map[string]struct{})
	var out []*model.Song
	add := func(s *model.Song) {
		if _, ok := seen[s.Key()]; ok {
			return
		}
		seen[s.Key()] = struct{}{}
		out = append(out, s)
	}

	for _, entry := range selection {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(entry.Path)
		if err != nil {
			idx.log.Warn().Err(err).Str("path", entry.Path).Msg("skipping unreadable entry")
			continue
		}
		switch {
		case !info.IsDir():
			add(entry)
		case entry.Album == "":
			artistPath := entry.Path
			for _, album := range idx.folders(artistPath) {
				for _, s := range idx.albumSongs(artistPath, entry.Artist, album) {
					add(s)
				}
			}
		default:
			for _, s := range idx.albumSongs(filepath.Dir(entry.Path), entry.Artist, entry.Album) {
				add(s)
			}
		}
	}
	return out, nil
}

// Prune removes album folders that hold only marker or hidden files, then
// artist folders left without albums. It returns the removed paths.
func (idx *Index) Prune(ctx context.Context) ([]string, error) {
	var removed []string
	var errs []error

	remove := func(path string) {
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
			return
		}
		idx.log.Info().Str("path", path).Msg("removed empty folder")
		removed = append(removed, path)
	}

	for _, artist := range idx.dirs(idx.root) {
		if err := ctx.Err(); err != nil {
			return removed, err
		}
		artistPath := filepath.Join(idx.root, artist)

		for _, album := range idx.dirs(artistPath) {
			albumPath := filepath.Join(artistPath, album)
			if idx.isEmpty(albumPath) {
				remove(albumPath)
			}
		}
		if idx.isEmpty(artistPath) {
			remove(artistPath)
		}
	}
	return removed, errors.Join(errs...)
}

// albumSongs lists the files of one album folder.
func (idx *Index) albumSongs(artistPath, artist, album string) []*model.Song {
	albumPath := filepath.Join(artistPath, album)
	entries, err := os.ReadDir(albumPath)
	if err != nil {
		idx.log.Warn().Err(err).Str("path", albumPath).Msg("cannot read album folder")
		return nil
	}

	var songs []*model.Song
	for _, e := range entries {
		if e.IsDir() || idx.ignored(e.Name()) {
			continue
		}
		songs = append(songs, model.NewSong(filepath.Join(albumPath, e.Name()), artist, album, album+" - "+e.Name()))
	}
	return songs
}

// folders returns the non-empty, non-hidden sub folders of dir.
func (idx *Index) folders(dir string) []string {
	var names []string
	for _, name := range idx.dirs(dir) {
		if !idx.isEmpty(filepath.Join(dir, name)) {
			names = append(names, name)
		}
	}
	return names
}

// dirs returns the non-hidden sub folders of dir.
func (idx *Index) dirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		idx.log.Warn().Err(err).Str("path", dir).Msg("cannot read folder")
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			names = append(names, e.Name())
		}
	}
	return names
}

// isEmpty reports whether dir holds nothing but marker or hidden files.
// An unreadable folder is not empty, so Prune never removes it.
func (idx *Index) isEmpty(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			if !idx.isEmpty(filepath.Join(dir, e.Name())) {
				return false
			}
			continue
		}
		if !idx.ignored(e.Name()) {
			return false
		}
	}
	return true
}

func (idx *Index) ignored(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := idx.markers[strings.ToLower(name)]
	return ok
}

func sortByName(songs []*model.Song) {
	sort.SliceStable(songs, func(i, j int) bool {
		return songs[i].Name < songs[j].Name
	})
}
