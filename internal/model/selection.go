package model

import (
	"errors"
	"fmt"
)

// ErrInvalidWeights is returned when weights are negative, above 100,
// or add up to more than 100.
var ErrInvalidWeights = errors.New("invalid playlist weights")

// Category is one of the three ways a song can enter a playlist.
type Category int

const (
	CategoryAlbum Category = iota
	CategoryArtist
	CategoryGenre
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAlbum:
		return "album"
	case CategoryArtist:
		return "artist"
	case CategoryGenre:
		return "genre"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Selection holds the artists, albums and genres chosen for a playlist.
type Selection struct {
	Artists map[string]struct{}
	Albums  map[string]struct{}
	Genres  map[string]struct{}
}

// NewSelection builds a Selection from name lists.
func NewSelection(artists, albums, genres []string) Selection {
	return Selection{
		Artists: toSet(artists),
		Albums:  toSet(albums),
		Genres:  toSet(genres),
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// HasArtist reports whether artist is selected.
func (s Selection) HasArtist(artist string) bool {
	_, ok := s.Artists[artist]
	return ok
}

// HasAlbum reports whether album is selected.
func (s Selection) HasAlbum(album string) bool {
	_, ok := s.Albums[album]
	return ok
}

// HasGenre reports whether genre is selected.
func (s Selection) HasGenre(genre string) bool {
	_, ok := s.Genres[genre]
	return ok
}

// Active returns which categories have at least one selected name.
func (s Selection) Active() Active {
	return Active{
		Artist: len(s.Artists) > 0,
		Album:  len(s.Albums) > 0,
		Genre:  len(s.Genres) > 0,
	}
}

// Active flags the categories that currently have a selection.
type Active struct {
	Artist bool
	Album  bool
	Genre  bool
}

// Weights is the share of the playlist, in percent, given to each category.
type Weights struct {
	Artist int `json:"artist" yaml:"artist"`
	Album  int `json:"album" yaml:"album"`
	Genre  int `json:"genre" yaml:"genre"`
}

// Counts is the number of songs each category contributes to a playlist.
type Counts struct {
	Artist int
	Album  int
	Genre  int
}

// Total returns the sum of the three counts.
func (c Counts) Total() int {
	return c.Artist + c.Album + c.Genre
}

// Of returns the count for one category.
func (c Counts) Of(cat Category) int {
	switch cat {
	case CategoryAlbum:
		return c.Album
	case CategoryArtist:
		return c.Artist
	default:
		return c.Genre
	}
}

// Validate checks that each weight is within 0-100 and the sum is at most 100.
func (w Weights) Validate() error {
	for _, v := range []int{w.Artist, w.Album, w.Genre} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: %d%% is out of range", ErrInvalidWeights, v)
		}
	}
	if sum := w.Artist + w.Album + w.Genre; sum > 100 {
		return fmt.Errorf("%w: weights add up to %d%%", ErrInvalidWeights, sum)
	}
	return nil
}

// Counts splits size songs across the categories.
//
// Artist and album counts are rounded down; genre takes the remainder so
// the three counts always sum to size.
func (w Weights) Counts(size int) (Counts, error) {
	if err := w.Validate(); err != nil {
		return Counts{}, err
	}
	if size < 0 {
		return Counts{}, fmt.Errorf("playlist size %d is negative", size)
	}
	artist := size * w.Artist / 100
	album := size * w.Album / 100
	return Counts{
		Artist: artist,
		Album:  album,
		Genre:  size - artist - album,
	}, nil
}

// Select returns the weights after a category's selection changed from
// empty to non-empty (selected=true) or back (selected=false).
//
// A newly selected category takes whatever the other two leave of 100.
// A cleared category drops to 0 and hands its share to the remaining
// selected category, artist before album before genre.
func (w Weights) Select(cat Category, selected bool, active Active) Weights {
	switch cat {
	case CategoryGenre:
		if selected {
			w.Genre = 100 - w.Album - w.Artist
			break
		}
		w.Genre = 0
		if active.Artist {
			w.Artist = 100 - w.Album
		} else if active.Album {
			w.Album = 100
		}
	case CategoryArtist:
		if selected {
			w.Artist = 100 - w.Album - w.Genre
			break
		}
		w.Artist = 0
		if active.Album {
			w.Album = 100 - w.Genre
		} else if active.Genre {
			w.Genre = 100
		}
	case CategoryAlbum:
		if selected {
			w.Album = 100 - w.Artist - w.Genre
			break
		}
		w.Album = 0
		if active.Artist {
			w.Artist = 100 - w.Genre
		} else if active.Genre {
			w.Genre = 100
		}
	}
	return w.clamp()
}

// Step moves the artist or album weight by delta percent.
//
// The genre weight moves the opposite way when genres are selected; the
// other of artist/album absorbs what is left so the sum stays at 100.
// Steps that need another selected category, or that would push a weight
// out of range, return w unchanged. Genre weight is always derived.
func (w Weights) Step(cat Category, delta int, active Active) Weights {
	var self, other *int
	var selfActive, otherActive bool
	next := w
	switch cat {
	case CategoryArtist:
		self, other = &next.Artist, &next.Album
		selfActive, otherActive = active.Artist, active.Album
	case CategoryAlbum:
		self, other = &next.Album, &next.Artist
		selfActive, otherActive = active.Album, active.Artist
	default:
		return w
	}

	if !selfActive || !(active.Genre || otherActive) {
		return w
	}
	if *self+delta < 0 || *self+delta > 100 {
		return w
	}

	*self += delta
	if active.Genre && next.Genre-delta >= 0 && next.Genre-delta <= 100 {
		next.Genre -= delta
	}
	sum := next.Artist + next.Album + next.Genre
	if (delta > 0 && sum > 100) || (delta < 0 && sum < 100) {
		*other = 100 - *self - next.Genre
	}
	if *other < 0 || *other > 100 {
		return w
	}
	return next
}

func (w Weights) clamp() Weights {
	w.Artist = clampPercent(w.Artist)
	w.Album = clampPercent(w.Album)
	w.Genre = clampPercent(w.Genre)
	return w
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
