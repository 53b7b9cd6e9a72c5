package model

import (
	"path/filepath"
	"strings"
)

// TitleReader reads the title stored in an audio file's tags.
type TitleReader interface {
	ReadTitle(path string) (string, error)
}

// Song represents one entry of the music library.
//
// Identity is (Path, Name): two Song values describe the same entry iff
// both match, regardless of the mutable fields. Use Key wherever a song is
// stored in a set or map.
//
// The rating is set at most once. Until then it is unset, which is a
// different state from a resolved rating of 0.0.
type Song struct {
	// Path is the absolute location of the file or folder.
	Path string

	// Name is the display label, e.g. "Album - 01 Song.mp3".
	Name string

	// Artist is the artist folder name.
	Artist string

	// Album is the album folder name. Empty for artist entries.
	Album string

	// GenreTags holds the genres read from the file's tags, in tag order.
	// Populated on demand by library.LoadGenreTags.
	GenreTags []string

	title       string
	titleLoaded bool

	rating float64
	rated  bool
}

// NewSong creates a Song with an unset rating.
func NewSong(path, artist, album, name string) *Song {
	return &Song{
		Path:   path,
		Name:   name,
		Artist: artist,
		Album:  album,
	}
}

// Key returns the identity of the song.
func (s *Song) Key() string {
	return s.Path + "\x00" + s.Name
}

// String implements fmt.Stringer.
func (s *Song) String() string {
	return s.Name
}

// Extension returns the lower-cased file extension without the dot.
func (s *Song) Extension() string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(s.Path), "."))
}

// Title returns the song title, reading it through r on first use.
//
// When the tags carry no title (or r fails) the file name without its
// extension is used. The result is cached on the song.
func (s *Song) Title(r TitleReader) string {
	if s.titleLoaded {
		return s.title
	}
	if r != nil {
		if title, err := r.ReadTitle(s.Path); err == nil && title != "" {
			s.SetTitle(title)
			return s.title
		}
	}
	base := filepath.Base(s.Path)
	s.SetTitle(strings.TrimSuffix(base, filepath.Ext(base)))
	return s.title
}

// SetTitle stores a known title, skipping any later tag read.
func (s *Song) SetTitle(title string) {
	s.title = title
	s.titleLoaded = true
}

// Rating returns the rating and whether it has been set.
func (s *Song) Rating() (float64, bool) {
	return s.rating, s.rated
}

// RatingOrZero returns the rating, treating unset as 0.0.
func (s *Song) RatingOrZero() float64 {
	return s.rating
}

// HasRating reports whether the rating has been set.
func (s *Song) HasRating() bool {
	return s.rated
}

// UpdateRating sets the rating if it has not been set before.
// It returns false, leaving the original value, on any later call.
func (s *Song) UpdateRating(rating float64) bool {
	if s.rated {
		return false
	}
	s.rating = rating
	s.rated = true
	return true
}

// HasGenre reports whether any of the song's genre tags is in genres.
func (s *Song) HasGenre(genres map[string]struct{}) bool {
	for _, g := range s.GenreTags {
		if _, ok := genres[g]; ok {
			return true
		}
	}
	return false
}

// Label identifies the song in error lists by its last three path
// components, e.g. "Artist - Album - 01 Song.mp3".
func (s *Song) Label() string {
	return PathLabel(s.Path)
}

// PathLabel joins the last three components of path with " - ".
func PathLabel(path string) string {
	parts := strings.Split(filepath.ToSlash(filepath.Clean(path)), "/")
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) > 3 {
		kept = kept[len(kept)-3:]
	}
	return strings.Join(kept, " - ")
}
