package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/handiism/playlist-generator/internal/app"
	"github.com/handiism/playlist-generator/internal/config"
	"github.com/handiism/playlist-generator/internal/model"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	settings := config.DefaultSettings()
	settings.LibraryRoot = t.TempDir()
	m := NewModel(app.NewManager(settings, nil, zerolog.Nop()))

	next, _ := m.Update(LoadedMsg{
		Artists: []*model.Song{model.NewSong("/lib/A", "A", "", "A"), model.NewSong("/lib/B", "B", "", "B")},
		Albums:  []*model.Song{model.NewSong("/lib/A/X", "A", "X", "A - X")},
		Genres:  []string{"Jazz", "Rock"},
	})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestLoaded(t *testing.T) {
	m := newTestModel(t)
	if m.state != StateSelect {
		t.Fatalf("state = %v, want StateSelect", m.state)
	}
	if len(m.items[TabGenres]) != 2 {
		t.Errorf("genre items = %d, want 2", len(m.items[TabGenres]))
	}
}

func TestSelectionWeights(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, space)
	if got, want := m.Weights(), (model.Weights{Artist: 100}); got != want {
		t.Errorf("after selecting an artist weights = %+v, want %+v", got, want)
	}

	m = press(t, m, tab, space, runes("]"))
	if got, want := m.Weights(), (model.Weights{Artist: 95, Album: 5}); got != want {
		t.Errorf("after selecting an album and stepping weights = %+v, want %+v", got, want)
	}

	// Clear the artist again.
	m = press(t, m, tab, tab, space)
	if got, want := m.Weights(), (model.Weights{Album: 100}); got != want {
		t.Errorf("after clearing artists weights = %+v, want %+v", got, want)
	}

	sel := m.Selection()
	if sel.HasArtist("A") || !sel.HasAlbum("X") {
		t.Errorf("Selection() = %+v, want only album X", sel)
	}
}

func TestSelectSecondItem(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, down, space)

	sel := m.Selection()
	if sel.HasArtist("A") || !sel.HasArtist("B") {
		t.Errorf("Selection() = %+v, want artist B", sel)
	}
	if len(m.selectedEntries()) != 1 {
		t.Errorf("selectedEntries() = %d, want 1", len(m.selectedEntries()))
	}
}

func TestReloadDropsMissingGenres(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, tab, space)
	if got := m.Weights().Genre; got != 100 {
		t.Fatalf("genre weight = %d, want 100", got)
	}

	next, _ := m.Update(LoadedMsg{Genres: []string{"Rock"}})
	m = next.(Model)
	if m.Selection().HasGenre("Jazz") {
		t.Error("a genre that disappeared should no longer be selected")
	}
	if got := m.Weights().Genre; got != 0 {
		t.Errorf("genre weight = %d, want 0 after its selection vanished", got)
	}
}

func TestSizeCycling(t *testing.T) {
	m := newTestModel(t)
	if m.Size() != 20 {
		t.Fatalf("Size() = %d, want the configured 20", m.Size())
	}

	m = press(t, m, runes("s"))
	if m.Size() != 25 {
		t.Errorf("Size() = %d, want 25", m.Size())
	}
	m = press(t, m, runes("S"), runes("S"))
	if m.Size() != 15 {
		t.Errorf("Size() = %d, want 15", m.Size())
	}
	m = press(t, m, runes("S"), runes("S"), runes("S"))
	if m.Size() != 60 {
		t.Errorf("Size() = %d, want to wrap around to 60", m.Size())
	}
}

func TestUpdateGenresNeedsSelection(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, runes("u"))
	if m.state != StateError || !errors.Is(m.err, errNothingToUpdate) {
		t.Errorf("state = %v err = %v, want errNothingToUpdate", m.state, m.err)
	}

	m = press(t, m, runes("r"))
	if m.state != StateSelect {
		t.Errorf("state = %v, want StateSelect after r", m.state)
	}
}

func TestReview(t *testing.T) {
	m := newTestModel(t)
	p := &model.Playlist{Name: "Mix", Rows: []model.PlaylistRow{
		{Title: "One", Path: "/a.mp3", Included: true},
		{Title: "Two", Path: "/b.mp3", Included: true},
	}}
	next, _ := m.Update(GeneratedMsg{Playlist: p})
	m = next.(Model)
	if m.state != StateReview {
		t.Fatalf("state = %v, want StateReview", m.state)
	}

	m = press(t, m, down, space)
	if got := len(p.Included()); got != 1 {
		t.Errorf("included rows = %d, want 1", got)
	}

	m = press(t, m, runes("n"))
	if m.state != StateNaming {
		t.Fatalf("state = %v, want StateNaming", m.state)
	}
	m.nameInput.SetValue("Evening")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if p.Name != "Evening" || m.state != StateReview {
		t.Errorf("name = %q state = %v, want Evening in review", p.Name, m.state)
	}
}

func TestReviewAddSong(t *testing.T) {
	m := newTestModel(t)
	p := &model.Playlist{Name: "Mix", Rows: []model.PlaylistRow{
		{Title: "One", Path: "/a.mp3", Included: true},
	}}
	next, _ := m.Update(GeneratedMsg{Playlist: p})
	m = next.(Model)

	path := filepath.Join(t.TempDir(), "Guest", "Single", "07 Bonus.mp3")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	m = press(t, m, runes("a"))
	if m.state != StateAdding {
		t.Fatalf("state = %v, want StateAdding", m.state)
	}
	m.nameInput.SetValue(path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.state != StateReview {
		t.Fatalf("state = %v, want StateReview", m.state)
	}
	if len(p.Rows) != 2 || p.Rows[1].Title != "07 Bonus" || !p.Rows[1].Included {
		t.Fatalf("rows = %+v, want the added song included", p.Rows)
	}
	if m.reviewCursor != 1 {
		t.Errorf("reviewCursor = %d, want 1 on the added row", m.reviewCursor)
	}

	// Adding it twice is refused with a message.
	m = press(t, m, runes("a"))
	m.nameInput.SetValue(path)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if len(p.Rows) != 2 {
		t.Errorf("rows = %d after a duplicate add, want 2", len(p.Rows))
	}
	if !strings.Contains(m.message, "already in playlist") {
		t.Errorf("message = %q, want the duplicate error", m.message)
	}

	m = press(t, m, runes("a"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateReview || len(p.Rows) != 2 {
		t.Errorf("esc: state = %v rows = %d, want review with 2 rows", m.state, len(p.Rows))
	}
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		n, cursor, height int
		start, end        int
	}{
		{3, 0, 15, 0, 3},
		{30, 0, 10, 0, 10},
		{30, 12, 10, 7, 17},
		{30, 29, 10, 20, 30},
	}
	for _, tt := range tests {
		start, end := visibleRange(tt.n, tt.cursor, tt.height)
		if start != tt.start || end != tt.end {
			t.Errorf("visibleRange(%d, %d, %d) = (%d, %d), want (%d, %d)", tt.n, tt.cursor, tt.height, start, end, tt.start, tt.end)
		}
	}
}
