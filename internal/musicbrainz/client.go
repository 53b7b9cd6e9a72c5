package musicbrainz

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	mbhttp "github.com/handiism/playlist-generator/internal/http"
	"github.com/handiism/playlist-generator/internal/model"
	"github.com/handiism/playlist-generator/internal/musicbrainz/dto"
)

// DefaultBaseURL is the MusicBrainz web service root.
const DefaultBaseURL = "https://musicbrainz.org/ws/2"

var (
	// ErrNoGenre is returned when no album release or no genre was found.
	ErrNoGenre = errors.New("no genre found")

	// ErrNoRecording is returned when no recording matches title and album.
	ErrNoRecording = errors.New("no matching recording")
)

// Fetcher fetches and decodes a JSON document.
//
// *http.Client satisfies it.
type Fetcher interface {
	GetJSON(ctx context.Context, url string, dst any) error
}

// Client performs genre and rating lookups.
type Client struct {
	fetch   Fetcher
	baseURL string
	titles  model.TitleReader
	log     zerolog.Logger
}

// NewClient creates a client. titles reads song titles from tags for
// recording searches; it may be nil, in which case file names are used.
func NewClient(fetch Fetcher, baseURL string, titles model.TitleReader, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		fetch:   fetch,
		baseURL: strings.TrimRight(baseURL, "/"),
		titles:  titles,
		log:     log,
	}
}

// ResolveGenre returns the top voted genre of the album.
//
// Failures are either wrapped ErrNoGenre or the transport error; a nil
// error always comes with a non-empty genre.
func (c *Client) ResolveGenre(ctx context.Context, artist, album string) (string, error) {
	query := fmt.Sprintf(`"%s" AND artist:"%s"`, album, artist)
	searchURL := c.baseURL + "/release-group/?query=release:" + mbhttp.EncodeQuery(query) + "&fmt=json"

	var search dto.ReleaseGroupSearch
	if err := c.fetch.GetJSON(ctx, searchURL, &search); err != nil {
		return "", fmt.Errorf("search release group %s - %s: %w", artist, album, err)
	}

	var id string
	for _, rg := range search.ReleaseGroups {
		if rg.PrimaryType == "Album" {
			id = rg.ID
			break
		}
	}
	if id == "" {
		return "", fmt.Errorf("%s - %s: no album release: %w", artist, album, ErrNoGenre)
	}

	var detail dto.ReleaseGroupGenres
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/release-group/"+id+"?inc=genres&fmt=json", &detail); err != nil {
		return "", fmt.Errorf("fetch genres %s - %s: %w", artist, album, err)
	}

	genre := topGenre(detail.Genres)
	if genre == "" {
		return "", fmt.Errorf("%s - %s: %w", artist, album, ErrNoGenre)
	}

	c.log.Debug().Str("artist", artist).Str("album", album).Str("genre", genre).Msg("genre resolved")
	return genre, nil
}

// topGenre returns the name with the highest count. Ties keep service order.
func topGenre(genres []dto.Genre) string {
	sorted := make([]dto.Genre, 0, len(genres))
	for _, g := range genres {
		if g.Name != "" {
			sorted = append(sorted, g)
		}
	}
	if len(sorted) == 0 {
		return ""
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CountOrZero() > sorted[j].CountOrZero()
	})
	return sorted[0].Name
}

// ResolveRating sets the song's rating from its MusicBrainz recording.
//
// The rating is always set when this returns: 0.0 when no rated match
// exists or any lookup fails. A song that already has a rating is left
// untouched, and so is one whose lookup was cut short by ctx.
func (c *Client) ResolveRating(ctx context.Context, song *model.Song) {
	if song.HasRating() {
		return
	}

	rating, err := c.lookupRating(ctx, song)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		c.log.Debug().Err(err).Str("song", song.Label()).Msg("rating unavailable, using 0")
		rating = 0
	}
	song.UpdateRating(rating)
}

func (c *Client) lookupRating(ctx context.Context, song *model.Song) (float64, error) {
	title := song.Title(c.titles)
	query := fmt.Sprintf(`"%s" AND artist:"%s" AND release:"%s"`, title, song.Artist, song.Album)
	searchURL := c.baseURL + "/recording/?query=recording:" + mbhttp.EncodeQuery(query) + "&fmt=json"

	var search dto.RecordingSearch
	if err := c.fetch.GetJSON(ctx, searchURL, &search); err != nil {
		return 0, err
	}

	id := matchRecording(search.Recordings, title, song.Album)
	if id == "" {
		return 0, fmt.Errorf("%s: %w", song.Label(), ErrNoRecording)
	}

	var detail dto.RecordingRating
	if err := c.fetch.GetJSON(ctx, c.baseURL+"/recording/"+id+"?inc=ratings&fmt=json", &detail); err != nil {
		return 0, err
	}
	if detail.Rating.Value == nil {
		return 0, nil
	}
	return *detail.Rating.Value, nil
}

func matchRecording(recordings []dto.Recording, title, album string) string {
	for _, rec := range recordings {
		if !sameTitle(rec.Title, title) {
			continue
		}
		for _, rel := range rec.Releases {
			if strings.EqualFold(rel.Title, album) {
				return rec.ID
			}
		}
	}
	return ""
}
