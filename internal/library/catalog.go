package library

import "github.com/handiism/playlist-generator/internal/model"

// Catalog is a snapshot of the library's songs with a path index.
//
// It is rebuilt by rescanning, never updated in place.
type Catalog struct {
	songs  []*model.Song
	byPath map[string]*model.Song
}

// NewCatalog indexes songs by path. When two songs share a path the first
// one wins.
func NewCatalog(songs []*model.Song) *Catalog {
	c := &Catalog{byPath: make(map[string]*model.Song, len(songs))}
	for _, s := range songs {
		if _, ok := c.byPath[s.Path]; ok {
			continue
		}
		c.byPath[s.Path] = s
		c.songs = append(c.songs, s)
	}
	return c
}

// Songs returns the songs in listing order.
func (c *Catalog) Songs() []*model.Song {
	return c.songs
}

// Lookup returns the song stored at path.
func (c *Catalog) Lookup(path string) (*model.Song, bool) {
	s, ok := c.byPath[path]
	return s, ok
}

// Len returns the number of songs.
func (c *Catalog) Len() int {
	return len(c.songs)
}

// Filter returns the songs that are in the selected artists or albums, or
// carry a selected genre tag. Genre tags must be loaded first.
func (c *Catalog) Filter(sel model.Selection) []*model.Song {
	var out []*model.Song
	for _, s := range c.songs {
		if sel.HasArtist(s.Artist) || sel.HasAlbum(s.Album) || s.HasGenre(sel.Genres) {
			out = append(out, s)
		}
	}
	return out
}
