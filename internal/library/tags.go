package library

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/playlist-generator/internal/model"
)

// GenreReader reads the raw genre tag of a file.
type GenreReader interface {
	ReadGenre(path string) (string, error)
}

// LoadGenreTags reads the genre tag of every song and stores the split,
// capitalized names in GenreTags.
//
// Reads run concurrently, at most concurrency at a time. Each unreadable
// file yields a "<label> - Find Genre Error" entry, in song order, and the
// batch continues.
func LoadGenreTags(ctx context.Context, songs []*model.Song, reader GenreReader, concurrency int) ([]string, error) {
	if concurrency < 1 {
		concurrency = 1
	}

	failures := make([]string, len(songs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, song := range songs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			raw, err := reader.ReadGenre(song.Path)
			if err != nil {
				failures[i] = song.Label() + " - Find Genre Error"
				return nil
			}
			song.GenreTags = model.SplitGenres(raw)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var errs []string
	for _, f := range failures {
		if f != "" {
			errs = append(errs, f)
		}
	}
	return errs, nil
}

// Genres returns the distinct genre names carried by songs, sorted,
// without the "Unknown" placeholder.
func Genres(songs []*model.Song) []string {
	set := make(map[string]struct{})
	for _, s := range songs {
		for _, g := range s.GenreTags {
			if g != model.UnknownGenre {
				set[g] = struct{}{}
			}
		}
	}

	genres := make([]string, 0, len(set))
	for g := range set {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}
