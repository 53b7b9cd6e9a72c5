package genre

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/audio"
	"github.com/handiism/playlist-generator/internal/model"
	"github.com/handiism/playlist-generator/internal/progress"
)

type stubResolver struct {
	genres map[string]string // "artist|album" -> genre
	calls  map[string]int
}

func (r *stubResolver) ResolveGenre(ctx context.Context, artist, album string) (string, error) {
	key := artist + "|" + album
	r.calls[key]++
	g, ok := r.genres[key]
	if !ok {
		return "", errors.New("no genre found")
	}
	return g, nil
}

// cancellingResolver cancels the batch while its first lookup is in flight.
type cancellingResolver struct {
	cancel context.CancelFunc
	calls  int
}

func (r *cancellingResolver) ResolveGenre(ctx context.Context, artist, album string) (string, error) {
	r.calls++
	r.cancel()
	return "", ctx.Err()
}

type stubWriter struct {
	written map[string]string
	fail    map[string]error
}

func (w *stubWriter) WriteGenre(path, genre string) error {
	if err := w.fail[path]; err != nil {
		return err
	}
	w.written[path] = genre
	return nil
}

type stubMetadata map[string]audio.Metadata

func (m stubMetadata) ReadMetadata(path string) (audio.Metadata, error) {
	meta, ok := m[path]
	if !ok {
		return audio.Metadata{}, errors.New("no tags")
	}
	return meta, nil
}

func song(artist, album, file string) *model.Song {
	return model.NewSong(fmt.Sprintf("/lib/%s/%s/%s", artist, album, file), artist, album, album+" - "+file)
}

func TestUpdateGenres(t *testing.T) {
	songs := []*model.Song{
		song("Radiohead", "OK Computer", "01.mp3"),
		song("Radiohead", "OK Computer", "02.mp3"),
		song("Unknown Band", "Demo", "01.mp3"),
		song("Unknown Band", "Demo", "02.mp3"),
		song("Radiohead", "OK Computer", "cover.png"),
		song("Radiohead", "OK Computer", "03.m4a"),
	}
	resolver := &stubResolver{
		genres: map[string]string{"Radiohead|OK Computer": "alternative rock"},
		calls:  map[string]int{},
	}
	writer := &stubWriter{
		written: map[string]string{},
		fail: map[string]error{
			songs[4].Path: fmt.Errorf("%w: .png", audio.ErrUnsupportedFileType),
			songs[5].Path: errors.New("disk full"),
		},
	}

	var comments []string
	tracker := progress.NewTracker(func(e progress.Event) { comments = append(comments, e.Message) })
	updater := NewUpdater(resolver, writer, nil, tracker, zerolog.Nop())

	failures, err := updater.UpdateGenres(context.Background(), songs)
	if err != nil {
		t.Fatalf("UpdateGenres() error = %v", err)
	}

	for key, n := range resolver.calls {
		if n != 1 {
			t.Errorf("ResolveGenre(%s) called %d times, want 1", key, n)
		}
	}
	if len(resolver.calls) != 2 {
		t.Errorf("distinct lookups = %d, want 2", len(resolver.calls))
	}

	if got := writer.written[songs[0].Path]; got != "Alternative Rock" {
		t.Errorf("written genre = %q, want %q", got, "Alternative Rock")
	}
	if _, ok := writer.written[songs[2].Path]; ok {
		t.Error("songs without a genre must not be written")
	}

	want := []string{
		"Unknown Band - Demo - 01.mp3 - No Genre Found",
		"Unknown Band - Demo - 02.mp3 - No Genre Found",
		"Radiohead - OK Computer - cover.png - Unsupported file type: .png",
		"Radiohead - OK Computer - 03.m4a - File update failed: disk full",
	}
	if strings.Join(failures, "\n") != strings.Join(want, "\n") {
		t.Errorf("failures =\n%s\nwant\n%s", strings.Join(failures, "\n"), strings.Join(want, "\n"))
	}

	if tracker.Busy() {
		t.Error("tracker should be idle after the batch")
	}
	if len(comments) == 0 {
		t.Error("expected progress events")
	}
}

func TestUpdateGenres_PrefersTags(t *testing.T) {
	s := song("radiohead", "ok computer (remaster)", "01.mp3")
	resolver := &stubResolver{
		genres: map[string]string{"Radiohead|OK Computer": "rock"},
		calls:  map[string]int{},
	}
	writer := &stubWriter{written: map[string]string{}}
	reader := stubMetadata{s.Path: {Artist: "Radiohead", Album: "OK Computer"}}

	failures, err := NewUpdater(resolver, writer, reader, nil, zerolog.Nop()).UpdateGenres(context.Background(), []*model.Song{s})
	if err != nil || len(failures) != 0 {
		t.Fatalf("UpdateGenres() = %q, %v", failures, err)
	}
	if writer.written[s.Path] != "Rock" {
		t.Errorf("written = %q, want %q", writer.written[s.Path], "Rock")
	}
	if strings.Join(s.GenreTags, ",") != "Rock" {
		t.Errorf("GenreTags = %q", s.GenreTags)
	}
}

func TestUpdateGenres_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resolver := &stubResolver{calls: map[string]int{}}
	updater := NewUpdater(resolver, &stubWriter{written: map[string]string{}}, nil, nil, zerolog.Nop())

	_, err := updater.UpdateGenres(ctx, []*model.Song{song("A", "B", "c.mp3")})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("UpdateGenres() error = %v, want context.Canceled", err)
	}
	if len(resolver.calls) != 0 {
		t.Error("no lookups expected after cancellation")
	}
}

func TestUpdateGenres_CancelledMidLookup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resolver := &cancellingResolver{cancel: cancel}
	writer := &stubWriter{written: map[string]string{}}
	updater := NewUpdater(resolver, writer, nil, nil, zerolog.Nop())

	songs := []*model.Song{song("A", "B", "01.mp3"), song("A", "B", "02.mp3")}
	failures, err := updater.UpdateGenres(ctx, songs)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("UpdateGenres() error = %v, want context.Canceled", err)
	}
	if len(failures) != 0 {
		t.Errorf("failures = %q, want none for the interrupted song", failures)
	}
	if resolver.calls != 1 {
		t.Errorf("lookups = %d, want 1", resolver.calls)
	}
}

func TestUpdateGenres_SkipsNonAudio(t *testing.T) {
	resolver := &stubResolver{calls: map[string]int{}}
	writer := &stubWriter{written: map[string]string{}}
	updater := NewUpdater(resolver, writer, nil, nil, zerolog.Nop())

	failures, err := updater.UpdateGenres(context.Background(), []*model.Song{song("A", "B", "cover.png")})
	if err != nil {
		t.Fatalf("UpdateGenres() error = %v", err)
	}
	want := "A - B - cover.png - Unsupported file type: .png"
	if len(failures) != 1 || failures[0] != want {
		t.Errorf("failures = %q, want [%q]", failures, want)
	}
	if len(resolver.calls) != 0 {
		t.Errorf("lookups = %v, want none for non-audio files", resolver.calls)
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("A", "B"); ok {
		t.Error("empty cache should miss")
	}

	c.Put("A", "B", Result{Err: errors.New("boom")})
	c.Put("A", "C", Result{Genre: "Pop"})

	r, ok := c.Get("A", "B")
	if !ok || r.Err == nil {
		t.Error("failures should be cached")
	}
	if r, _ := c.Get("A", "C"); r.Genre != "Pop" {
		t.Errorf("Get(A, C) = %+v", r)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
