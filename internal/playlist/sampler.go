package playlist

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/model"
	"github.com/handiism/playlist-generator/internal/progress"
)

// ErrInvalidSize is returned for a playlist size below one.
var ErrInvalidSize = errors.New("playlist size must be positive")

// RatingResolver sets a song's rating. After the call the rating must be
// set, falling back to 0.0 when nothing better is known.
type RatingResolver interface {
	ResolveRating(ctx context.Context, song *model.Song)
}

// Config tunes the draw.
type Config struct {
	// InitialMinRating is the rating a song must reach to be drawn, before
	// any relaxation.
	InitialMinRating float64

	// RatingStep is how much a group's minimum drops when none of its
	// songs qualifies.
	RatingStep float64

	// Rand drives the shuffles. Nil means a randomly seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns a minimum rating of 4.0 relaxed in steps of 0.5.
func DefaultConfig() Config {
	return Config{InitialMinRating: 4.0, RatingStep: 0.5}
}

// Sampler generates playlists.
type Sampler struct {
	ratings RatingResolver
	cfg     Config
	rng     *rand.Rand
	tracker *progress.Tracker
	log     zerolog.Logger
}

// NewSampler creates a Sampler. tracker may be nil.
func NewSampler(ratings RatingResolver, cfg Config, tracker *progress.Tracker, log zerolog.Logger) *Sampler {
	if cfg.RatingStep <= 0 {
		cfg.RatingStep = DefaultConfig().RatingStep
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sampler{
		ratings: ratings,
		cfg:     cfg,
		rng:     rng,
		tracker: tracker,
		log:     log,
	}
}

// Generate returns up to size songs drawn from songs according to the
// selection and weights, in draw order.
//
// Fewer than size songs are returned when a category runs out: its unused
// share is not handed to the other categories.
func (s *Sampler) Generate(ctx context.Context, songs []*model.Song, sel model.Selection, size int, weights model.Weights) ([]*model.Song, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	counts, err := weights.Counts(size)
	if err != nil {
		return nil, err
	}

	buckets := Partition(songs, sel)
	if buckets.Len() <= size {
		s.log.Debug().Int("pool", buckets.Len()).Int("size", size).Msg("pool fits, skipping sampling")
		return buckets.All(), nil
	}

	s.tracker.Begin(fmt.Sprintf("Generating a %d song playlist from %d candidates", size, buckets.Len()))
	if err := s.resolveRatings(ctx, buckets.All()); err != nil {
		s.tracker.End("Playlist generation cancelled")
		return nil, err
	}

	out := s.draw(buckets, sel, counts)
	s.tracker.End(fmt.Sprintf("Generated %d songs", len(out)))
	return out, nil
}

func (s *Sampler) resolveRatings(ctx context.Context, songs []*model.Song) error {
	for i, song := range songs {
		if song.HasRating() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		s.tracker.Report(fmt.Sprintf("Rating (%d/%d) %s", i+1, len(songs), song.Label()), progress.LevelInfo)
		if s.ratings != nil {
			s.ratings.ResolveRating(ctx, song)
		}
		// An interrupted lookup leaves the song unrated for the next run.
		if err := ctx.Err(); err != nil {
			return err
		}
		song.UpdateRating(0)
	}
	return nil
}

// group is the candidates sharing one album, artist or genre.
type group struct {
	key       string
	songs     []*model.Song
	minRating float64
}

type bucket struct {
	cat    model.Category
	groups []*group
	limit  int
	drawn  int
}

func (s *Sampler) draw(buckets Buckets, sel model.Selection, counts model.Counts) []*model.Song {
	keys := map[model.Category]func(*model.Song) string{
		model.CategoryAlbum:  func(song *model.Song) string { return song.Album },
		model.CategoryArtist: func(song *model.Song) string { return song.Artist },
		model.CategoryGenre:  func(song *model.Song) string { return genreKey(song, sel) },
	}

	var order []*bucket
	for _, cat := range []model.Category{model.CategoryAlbum, model.CategoryArtist, model.CategoryGenre} {
		order = append(order, &bucket{
			cat:    cat,
			groups: s.groupBy(buckets.Of(cat), keys[cat]),
			limit:  counts.Of(cat),
		})
	}

	var out []*model.Song
	total := counts.Total()
	for len(out) < total {
		progressed := false
		for _, b := range order {
			for _, g := range b.groups {
				if b.drawn >= b.limit {
					break
				}
				if len(g.songs) == 0 {
					continue
				}
				out = append(out, s.take(g))
				b.drawn++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}

	for _, b := range order {
		s.log.Debug().Stringer("category", b.cat).Int("drawn", b.drawn).Int("limit", b.limit).Msg("category drawn")
	}
	return out
}

// groupBy groups songs by key. Songs within a group and the group order
// are shuffled.
func (s *Sampler) groupBy(songs []*model.Song, key func(*model.Song) string) []*group {
	index := make(map[string]*group)
	var groups []*group
	for _, song := range songs {
		k := key(song)
		g, ok := index[k]
		if !ok {
			g = &group{key: k, minRating: s.cfg.InitialMinRating}
			index[k] = g
			groups = append(groups, g)
		}
		g.songs = append(g.songs, song)
	}

	for _, g := range groups {
		s.rng.Shuffle(len(g.songs), func(i, j int) { g.songs[i], g.songs[j] = g.songs[j], g.songs[i] })
	}
	s.rng.Shuffle(len(groups), func(i, j int) { groups[i], groups[j] = groups[j], groups[i] })
	return groups
}

// take removes and returns the first song of g rated at least its minimum,
// relaxing the minimum step by step until one qualifies. g must not be
// empty.
func (s *Sampler) take(g *group) *model.Song {
	for {
		best := math.Inf(-1)
		for i, song := range g.songs {
			r := song.RatingOrZero()
			if r >= g.minRating {
				g.songs = append(g.songs[:i], g.songs[i+1:]...)
				return song
			}
			best = max(best, r)
		}
		if math.IsInf(best, -1) || math.IsNaN(best) {
			// No comparable rating at all.
			song := g.songs[0]
			g.songs = g.songs[1:]
			return song
		}
		for g.minRating > best {
			g.minRating -= s.cfg.RatingStep
		}
	}
}
