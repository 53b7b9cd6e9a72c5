package playlist

import "github.com/handiism/playlist-generator/internal/model"

// Buckets holds the candidates of each category, in input order.
type Buckets struct {
	Album  []*model.Song
	Artist []*model.Song
	Genre  []*model.Song
}

// Len returns the number of songs across all buckets.
func (b Buckets) Len() int {
	return len(b.Album) + len(b.Artist) + len(b.Genre)
}

// All returns the album, artist and genre songs, in that order.
func (b Buckets) All() []*model.Song {
	all := make([]*model.Song, 0, b.Len())
	all = append(all, b.Album...)
	all = append(all, b.Artist...)
	return append(all, b.Genre...)
}

// Of returns the songs of one category.
func (b Buckets) Of(cat model.Category) []*model.Song {
	switch cat {
	case model.CategoryAlbum:
		return b.Album
	case model.CategoryArtist:
		return b.Artist
	default:
		return b.Genre
	}
}

// Partition assigns each song to at most one bucket.
//
// Album selection takes precedence over artist selection, which takes
// precedence over genre tags. Duplicate songs (same Key) are kept once.
func Partition(songs []*model.Song, sel model.Selection) Buckets {
	var b Buckets
	seen := make(map[string]struct{}, len(songs))

	for _, s := range songs {
		if _, ok := seen[s.Key()]; ok {
			continue
		}

		switch {
		case sel.HasAlbum(s.Album):
			b.Album = append(b.Album, s)
		case sel.HasArtist(s.Artist):
			b.Artist = append(b.Artist, s)
		case s.HasGenre(sel.Genres):
			b.Genre = append(b.Genre, s)
		default:
			continue
		}
		seen[s.Key()] = struct{}{}
	}
	return b
}

// genreKey returns the first of the song's genres that is selected.
func genreKey(s *model.Song, sel model.Selection) string {
	for _, g := range s.GenreTags {
		if sel.HasGenre(g) {
			return g
		}
	}
	return ""
}
