package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/playlist-generator/internal/model"
)

// libraryEntries turns --artist and --album flag values into the artist
// and album entries the library index expands. Albums are given as
// "Artist/Album".
func libraryEntries(root string, artists, albums []string) ([]*model.Song, error) {
	var entries []*model.Song
	for _, artist := range artists {
		entries = append(entries, model.NewSong(filepath.Join(root, artist), artist, "", artist))
	}
	for _, a := range albums {
		artist, album, ok := strings.Cut(a, "/")
		if !ok || artist == "" || album == "" {
			return nil, fmt.Errorf("album %q must be given as Artist/Album", a)
		}
		entries = append(entries, model.NewSong(filepath.Join(root, artist, album), artist, album, artist+" - "+album))
	}
	return entries, nil
}

// fitWeights hands the share of every category without a selection to
// the selected ones, the same way clearing a category does interactively.
func fitWeights(w model.Weights, active model.Active) model.Weights {
	if !active.Genre && w.Genre > 0 {
		w = w.Select(model.CategoryGenre, false, active)
	}
	if !active.Album && w.Album > 0 {
		w = w.Select(model.CategoryAlbum, false, active)
	}
	if !active.Artist && w.Artist > 0 {
		w = w.Select(model.CategoryArtist, false, active)
	}
	return w
}
