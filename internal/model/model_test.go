package model

import (
	"errors"
	"testing"
)

type stubTitles map[string]string

func (s stubTitles) ReadTitle(path string) (string, error) {
	t, ok := s[path]
	if !ok {
		return "", errors.New("no tags")
	}
	return t, nil
}

func TestSong_UpdateRatingOnce(t *testing.T) {
	song := NewSong("/music/A/B/song.mp3", "A", "B", "B - song.mp3")

	if _, ok := song.Rating(); ok {
		t.Fatal("new song should have an unset rating")
	}
	if !song.UpdateRating(0.0) {
		t.Fatal("first UpdateRating should succeed")
	}
	if song.UpdateRating(8.5) {
		t.Error("second UpdateRating should be rejected")
	}
	got, ok := song.Rating()
	if !ok || got != 0.0 {
		t.Errorf("Rating() = %v, %v, want 0, true", got, ok)
	}
}

func TestSong_KeyIgnoresMutableFields(t *testing.T) {
	a := NewSong("/music/A/B/song.mp3", "A", "B", "B - song.mp3")
	b := NewSong("/music/A/B/song.mp3", "A", "B", "B - song.mp3")
	b.GenreTags = []string{"Rock"}
	b.UpdateRating(4)

	if a.Key() != b.Key() {
		t.Error("songs with the same path and name should share a key")
	}

	c := NewSong("/music/A/B/song.mp3", "A", "B", "other label")
	if a.Key() == c.Key() {
		t.Error("songs with different names should have different keys")
	}
}

func TestSong_Title(t *testing.T) {
	tests := []struct {
		name   string
		reader TitleReader
		want   string
	}{
		{"from tags", stubTitles{"/m/A/B/01 Track.mp3": "Real Title"}, "Real Title"},
		{"no tags", stubTitles{}, "01 Track"},
		{"nil reader", nil, "01 Track"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := NewSong("/m/A/B/01 Track.mp3", "A", "B", "B - 01 Track.mp3")
			if got := song.Title(tt.reader); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPathLabel(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/music/Artist/Album/Song.mp3", "Artist - Album - Song.mp3"},
		{"/Album/Song.mp3", "Album - Song.mp3"},
		{"Song.mp3", "Song.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := PathLabel(tt.path); got != tt.want {
				t.Errorf("PathLabel(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestWeights_CountsSumToSize(t *testing.T) {
	for a := 0; a <= 100; a += 5 {
		for b := 0; a+b <= 100; b += 5 {
			for g := 0; a+b+g <= 100; g += 5 {
				w := Weights{Artist: a, Album: b, Genre: g}
				for _, size := range []int{0, 1, 7, 20, 33, 60} {
					c, err := w.Counts(size)
					if err != nil {
						t.Fatalf("Counts(%d) with %+v: %v", size, w, err)
					}
					if c.Total() != size {
						t.Fatalf("Counts(%d) with %+v = %+v, total %d", size, w, c, c.Total())
					}
				}
			}
		}
	}
}

func TestWeights_CountsScenario(t *testing.T) {
	w := Weights{Artist: 50, Album: 30, Genre: 20}
	c, err := w.Counts(20)
	if err != nil {
		t.Fatal(err)
	}
	want := Counts{Artist: 10, Album: 6, Genre: 4}
	if c != want {
		t.Errorf("Counts(20) = %+v, want %+v", c, want)
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		w       Weights
		wantErr bool
	}{
		{Weights{Artist: 50, Album: 50}, false},
		{Weights{}, false},
		{Weights{Artist: 60, Album: 50}, true},
		{Weights{Artist: -5}, true},
		{Weights{Genre: 101}, true},
	}

	for _, tt := range tests {
		err := tt.w.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%+v) error = %v, wantErr %v", tt.w, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWeights) {
			t.Errorf("Validate(%+v) error should wrap ErrInvalidWeights", tt.w)
		}
	}
}

func TestWeights_Select(t *testing.T) {
	tests := []struct {
		name     string
		start    Weights
		cat      Category
		selected bool
		active   Active
		want     Weights
	}{
		{
			name:     "first artist selection takes everything",
			cat:      CategoryArtist,
			selected: true,
			active:   Active{Artist: true},
			want:     Weights{Artist: 100},
		},
		{
			name:     "genre takes what artist and album leave",
			start:    Weights{Artist: 40, Album: 30},
			cat:      CategoryGenre,
			selected: true,
			active:   Active{Artist: true, Album: true, Genre: true},
			want:     Weights{Artist: 40, Album: 30, Genre: 30},
		},
		{
			name:   "clearing genre hands share to artist",
			start:  Weights{Artist: 40, Album: 30, Genre: 30},
			cat:    CategoryGenre,
			active: Active{Artist: true, Album: true},
			want:   Weights{Artist: 70, Album: 30},
		},
		{
			name:   "clearing artist hands share to album",
			start:  Weights{Artist: 40, Album: 30, Genre: 30},
			cat:    CategoryArtist,
			active: Active{Album: true, Genre: true},
			want:   Weights{Album: 70, Genre: 30},
		},
		{
			name:   "clearing album with only genre left",
			start:  Weights{Album: 60, Genre: 40},
			cat:    CategoryAlbum,
			active: Active{Genre: true},
			want:   Weights{Genre: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Select(tt.cat, tt.selected, tt.active)
			if got != tt.want {
				t.Errorf("Select() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWeights_Step(t *testing.T) {
	all := Active{Artist: true, Album: true, Genre: true}

	tests := []struct {
		name   string
		start  Weights
		cat    Category
		delta  int
		active Active
		want   Weights
	}{
		{
			name:   "artist up takes from genre",
			start:  Weights{Artist: 40, Album: 30, Genre: 30},
			cat:    CategoryArtist,
			delta:  5,
			active: all,
			want:   Weights{Artist: 45, Album: 30, Genre: 25},
		},
		{
			name:   "album down gives to genre",
			start:  Weights{Artist: 40, Album: 30, Genre: 30},
			cat:    CategoryAlbum,
			delta:  -5,
			active: all,
			want:   Weights{Artist: 40, Album: 25, Genre: 35},
		},
		{
			name:   "artist up without genre takes from album",
			start:  Weights{Artist: 50, Album: 50},
			cat:    CategoryArtist,
			delta:  5,
			active: Active{Artist: true, Album: true},
			want:   Weights{Artist: 55, Album: 45},
		},
		{
			name:   "needs a second category",
			start:  Weights{Artist: 100},
			cat:    CategoryArtist,
			delta:  -5,
			active: Active{Artist: true},
			want:   Weights{Artist: 100},
		},
		{
			name:   "cannot go below zero",
			start:  Weights{Artist: 0, Album: 50, Genre: 50},
			cat:    CategoryArtist,
			delta:  -5,
			active: all,
			want:   Weights{Artist: 0, Album: 50, Genre: 50},
		},
		{
			name:   "genre is derived",
			start:  Weights{Artist: 50, Genre: 50},
			cat:    CategoryGenre,
			delta:  5,
			active: Active{Artist: true, Genre: true},
			want:   Weights{Artist: 50, Genre: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.start.Step(tt.cat, tt.delta, tt.active)
			if got != tt.want {
				t.Errorf("Step() = %+v, want %+v", got, tt.want)
			}
			if err := got.Validate(); err != nil {
				t.Errorf("Step() produced invalid weights: %v", err)
			}
		})
	}
}

func TestPlaylist_IncludedPaths(t *testing.T) {
	songs := []*Song{
		NewSong("/m/A/B/1.mp3", "A", "B", "B - 1.mp3"),
		NewSong("/m/A/B/2.mp3", "A", "B", "B - 2.mp3"),
		NewSong("/m/A/B/3.mp3", "A", "B", "B - 3.mp3"),
	}
	pl := NewPlaylist("Test", songs, nil)
	pl.Toggle(1)
	pl.Toggle(10)

	got := pl.IncludedPaths()
	if len(got) != 2 || got[0] != "/m/A/B/1.mp3" || got[1] != "/m/A/B/3.mp3" {
		t.Errorf("IncludedPaths() = %v", got)
	}
	if pl.Rows[0].Title != "1" {
		t.Errorf("Rows[0].Title = %q, want %q", pl.Rows[0].Title, "1")
	}
}

func TestPlaylist_Add(t *testing.T) {
	pl := NewPlaylist("Test", []*Song{NewSong("/m/A/B/1.mp3", "A", "B", "B - 1.mp3")}, nil)
	pl.Toggle(0)

	extra := NewSong("/m/C/D/9 Extra.mp3", "C", "D", "D - 9 Extra.mp3")
	if !pl.Add(extra, nil) {
		t.Fatal("Add() = false for a new song")
	}
	if pl.Add(NewSong("/m/C/D/9 Extra.mp3", "C", "D", "other"), nil) {
		t.Error("Add() = true for a path already in the playlist")
	}
	if len(pl.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(pl.Rows))
	}

	row := pl.Rows[1]
	if !row.Included || row.Title != "9 Extra" || row.Artist != "C" || row.Album != "D" {
		t.Errorf("added row = %+v", row)
	}
	if got := pl.IncludedPaths(); len(got) != 1 || got[0] != extra.Path {
		t.Errorf("IncludedPaths() = %v, want only the added song", got)
	}
}

func TestPlaylistFormat_Extension(t *testing.T) {
	tests := []struct {
		format PlaylistFormat
		want   string
	}{
		{PlaylistFormatM3U, ".m3u"},
		{PlaylistFormatPLS, ".pls"},
		{PlaylistFormatWPL, ".wpl"},
		{PlaylistFormatZPL, ".zpl"},
		{ParsePlaylistFormat("bogus"), ".m3u"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.format.Extension(); got != tt.want {
				t.Errorf("Extension() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSplitGenres(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"rock", []string{"Rock"}},
		{"alternative rock; ELECTRONIC", []string{"Alternative Rock", "Electronic"}},
		{"Jazz; ; Soul", []string{"Jazz", "Soul"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := SplitGenres(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("SplitGenres(%q) = %q, want %q", tt.raw, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("SplitGenres(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
