// Package tui provides a Bubble Tea terminal user interface for choosing
// artists, albums and genres, generating a playlist, reviewing it and
// exporting it.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/playlist-generator/internal/app"
	"github.com/handiism/playlist-generator/internal/library"
	"github.com/handiism/playlist-generator/internal/model"
)

// State represents the current UI state.
type State int

const (
	StateLoading State = iota
	StateSelect
	StateWorking
	StateReview
	StateNaming
	StateAdding
	StateDone
	StateError
)

// Tab is one of the selection lists.
type Tab int

const (
	TabArtists Tab = iota
	TabAlbums
	TabGenres
	tabCount
)

// String returns the tab title.
func (t Tab) String() string {
	switch t {
	case TabArtists:
		return "Artists"
	case TabAlbums:
		return "Albums"
	default:
		return "Genres"
	}
}

func (t Tab) category() model.Category {
	switch t {
	case TabArtists:
		return model.CategoryArtist
	case TabAlbums:
		return model.CategoryAlbum
	default:
		return model.CategoryGenre
	}
}

// weightStep is the percentage one key press moves a weight by.
const weightStep = 5

// playlistSizes are the sizes the size key cycles through.
var playlistSizes = func() []int {
	var sizes []int
	for s := 5; s <= 60; s += 5 {
		sizes = append(sizes, s)
	}
	return sizes
}()

// item is one selectable row of a tab.
type item struct {
	label string
	value string      // artist, album or genre name used for the selection
	entry *model.Song // library entry expanded for genre updates; nil for genres
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	manager   *app.Manager
	spinner   spinner.Model
	nameInput textinput.Model

	// Work context, replaced after a cancellation
	ctx    context.Context
	cancel context.CancelFunc

	// Selection
	tab     Tab
	items   [tabCount][]item
	cursor  [tabCount]int
	checked [tabCount]map[string]bool
	weights model.Weights
	sizeIdx int

	// Review
	playlist     *model.Playlist
	reviewCursor int

	comment  string
	message  string
	failures []string
	err      error

	width  int
	height int
}

// NewModel creates a new TUI model working on manager.
func NewModel(manager *app.Manager) Model {
	ti := textinput.New()
	ti.Placeholder = "Playlist name"
	ti.CharLimit = 200
	ti.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:     StateLoading,
		manager:   manager,
		spinner:   sp,
		nameInput: ti,
		ctx:       ctx,
		cancel:    cancel,
		sizeIdx:   sizeIndex(manager.Settings().PlaylistSize),
	}
	for t := range m.checked {
		m.checked[t] = make(map[string]bool)
	}
	return m
}

// sizeIndex returns the index of the smallest listed size not below size.
func sizeIndex(size int) int {
	for i, s := range playlistSizes {
		if s >= size {
			return i
		}
	}
	return len(playlistSizes) - 1
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.spinner.Tick)
}

// Message types
type (
	// LoadedMsg is sent when the library has been (re)loaded.
	LoadedMsg struct {
		Artists []*model.Song
		Albums  []*model.Song
		Genres  []string
		Err     error
	}

	// GenresDoneMsg is sent when a genre update finishes.
	GenresDoneMsg struct {
		Failures []string
		Err      error
	}

	// GeneratedMsg is sent when a playlist has been drawn.
	GeneratedMsg struct {
		Playlist *model.Playlist
		Err      error
	}

	// ExportedMsg is sent when the export finishes.
	ExportedMsg struct {
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Size returns the playlist size currently chosen.
func (m Model) Size() int {
	return playlistSizes[m.sizeIdx]
}

// Weights returns the current category weights.
func (m Model) Weights() model.Weights {
	return m.weights
}

// Selection returns the checked artists, albums and genres.
func (m Model) Selection() model.Selection {
	var names [tabCount][]string
	for t := range m.items {
		for _, it := range m.items[t] {
			if m.checked[t][it.value] {
				names[t] = append(names[t], it.value)
			}
		}
	}
	return model.NewSelection(names[TabArtists], names[TabAlbums], names[TabGenres])
}

// selectedEntries returns the checked artist and album entries.
func (m Model) selectedEntries() []*model.Song {
	var entries []*model.Song
	for _, t := range []Tab{TabArtists, TabAlbums} {
		for _, it := range m.items[t] {
			if m.checked[t][it.value] && it.entry != nil {
				entries = append(entries, it.entry)
			}
		}
	}
	return entries
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		if m.state == StateWorking || m.state == StateLoading {
			m.comment = m.manager.Tracker().Comment()
			cmds = append(cmds, m.tickProgress())
		}

	case LoadedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.setItems(TabArtists, entryItems(msg.Artists, func(s *model.Song) string { return s.Artist }))
		m.setItems(TabAlbums, entryItems(msg.Albums, func(s *model.Song) string { return s.Album }))
		m.setItems(TabGenres, genreItems(msg.Genres))
		if m.state == StateLoading {
			m.state = StateSelect
		}

	case GenresDoneMsg:
		m.failures = msg.Failures
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.state = StateDone
		m.message = "Genre update finished"
		// New genres may have appeared.
		cmds = append(cmds, m.load())

	case GeneratedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.playlist = msg.Playlist
		m.reviewCursor = 0
		m.state = StateReview

	case ExportedMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			break
		}
		m.state = StateDone
		m.failures = nil
		m.message = "Exported \"" + m.playlist.Name + "\""
	}

	if m.state == StateNaming || m.state == StateAdding {
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch m.state {
	case StateSelect:
		return m.handleSelectKey(key)

	case StateWorking, StateLoading:
		if key == "esc" {
			m.cancel()
		}

	case StateReview:
		switch key {
		case "up", "k":
			m.reviewCursor = max(m.reviewCursor-1, 0)
		case "down", "j":
			m.reviewCursor = max(min(m.reviewCursor+1, len(m.playlist.Rows)-1), 0)
		case " ", "space":
			m.playlist.Toggle(m.reviewCursor)
		case "n":
			m.state = StateNaming
			m.nameInput.Placeholder = "Playlist name"
			m.nameInput.SetValue(m.playlist.Name)
			m.nameInput.Focus()
			return m, textinput.Blink
		case "a":
			m.state = StateAdding
			m.message = ""
			m.nameInput.Placeholder = "Path to a song file"
			m.nameInput.SetValue("")
			m.nameInput.Focus()
			return m, textinput.Blink
		case "e", "enter":
			return m.startWork(m.export())
		case "esc":
			m.state = StateSelect
		}

	case StateNaming:
		switch key {
		case "enter":
			if name := m.nameInput.Value(); name != "" {
				m.playlist.Name = name
			}
			m.nameInput.Blur()
			m.state = StateReview
			return m, nil
		case "esc":
			m.nameInput.Blur()
			m.state = StateReview
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case StateAdding:
		switch key {
		case "enter":
			m.nameInput.Blur()
			m.state = StateReview
			if path := m.nameInput.Value(); path != "" {
				song, err := m.manager.AddSong(m.playlist, path)
				if err != nil {
					m.message = err.Error()
					return m, nil
				}
				m.reviewCursor = len(m.playlist.Rows) - 1
				m.message = "Added " + song.Label()
			}
			return m, nil
		case "esc":
			m.nameInput.Blur()
			m.state = StateReview
			return m, nil
		}
		var cmd tea.Cmd
		m.nameInput, cmd = m.nameInput.Update(msg)
		return m, cmd

	case StateDone, StateError:
		switch key {
		case "q":
			return m, tea.Quit
		case "r", "esc":
			m.ctx, m.cancel = context.WithCancel(context.Background())
			m.err = nil
			if m.items[TabArtists] == nil {
				m.state = StateLoading
				return m, tea.Batch(m.load(), m.spinner.Tick)
			}
			m.state = StateSelect
		}
	}
	return m, nil
}

func (m Model) handleSelectKey(key string) (tea.Model, tea.Cmd) {
	t := m.tab
	switch key {
	case "q", "esc":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % tabCount
	case "shift+tab", "left", "h":
		m.tab = (m.tab + tabCount - 1) % tabCount
	case "up", "k":
		m.cursor[t] = max(m.cursor[t]-1, 0)
	case "down", "j":
		m.cursor[t] = max(min(m.cursor[t]+1, len(m.items[t])-1), 0)
	case " ", "space":
		m.toggle()
	case "+", "=":
		m.weights = m.weights.Step(model.CategoryArtist, weightStep, m.Selection().Active())
	case "-":
		m.weights = m.weights.Step(model.CategoryArtist, -weightStep, m.Selection().Active())
	case "]":
		m.weights = m.weights.Step(model.CategoryAlbum, weightStep, m.Selection().Active())
	case "[":
		m.weights = m.weights.Step(model.CategoryAlbum, -weightStep, m.Selection().Active())
	case "s":
		m.sizeIdx = (m.sizeIdx + 1) % len(playlistSizes)
	case "S":
		m.sizeIdx = (m.sizeIdx + len(playlistSizes) - 1) % len(playlistSizes)
	case "u":
		entries := m.selectedEntries()
		if len(entries) == 0 {
			m.state = StateError
			m.err = errNothingToUpdate
			return m, nil
		}
		return m.startWork(m.updateGenres(entries))
	case "g", "enter":
		return m.startWork(m.generate())
	}
	return m, nil
}

// toggle flips the item under the cursor. When the tab's selection goes
// from empty to non-empty or back, the weights are rebalanced.
func (m *Model) toggle() {
	t := m.tab
	if len(m.items[t]) == 0 {
		return
	}
	value := m.items[t][m.cursor[t]].value

	before := len(m.checked[t]) > 0
	if m.checked[t][value] {
		delete(m.checked[t], value)
	} else {
		m.checked[t][value] = true
	}
	after := len(m.checked[t]) > 0

	if before != after {
		m.weights = m.weights.Select(t.category(), after, m.Selection().Active())
	}
}

// setItems replaces the items of a tab, keeping checks on values that are
// still listed.
func (m *Model) setItems(t Tab, items []item) {
	before := len(m.checked[t]) > 0

	still := make(map[string]bool)
	for _, it := range items {
		if m.checked[t][it.value] {
			still[it.value] = true
		}
	}
	m.items[t] = items
	m.checked[t] = still
	m.cursor[t] = max(min(m.cursor[t], len(items)-1), 0)

	if before && len(still) == 0 {
		m.weights = m.weights.Select(t.category(), false, m.Selection().Active())
	}
}

func entryItems(entries []*model.Song, value func(*model.Song) string) []item {
	items := make([]item, 0, len(entries))
	for _, e := range entries {
		items = append(items, item{label: e.Name, value: value(e), entry: e})
	}
	return items
}

func genreItems(genres []string) []item {
	items := make([]item, 0, len(genres))
	for _, g := range genres {
		items = append(items, item{label: g, value: g})
	}
	return items
}

// startWork switches to the working state and runs cmd.
func (m Model) startWork(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	m.state = StateWorking
	m.comment = ""
	m.message = ""
	return m, tea.Batch(cmd, m.spinner.Tick, m.tickProgress())
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// load refreshes the library and lists its artists, albums and genres.
func (m Model) load() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		if _, err := manager.Refresh(ctx); err != nil {
			return LoadedMsg{Err: err}
		}
		artists, err := manager.List(ctx, library.ScopeArtists)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		albums, err := manager.List(ctx, library.ScopeAlbums)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		genres, err := manager.Genres()
		return LoadedMsg{Artists: artists, Albums: albums, Genres: genres, Err: err}
	}
}

func (m Model) updateGenres(entries []*model.Song) tea.Cmd {
	ctx, manager := m.ctx, m.manager
	return func() tea.Msg {
		failures, err := manager.UpdateGenres(ctx, entries)
		return GenresDoneMsg{Failures: failures, Err: err}
	}
}

func (m Model) generate() tea.Cmd {
	ctx, manager := m.ctx, m.manager
	sel, size, weights := m.Selection(), m.Size(), m.weights
	name := "Playlist " + time.Now().Format("2006-01-02 15.04")
	return func() tea.Msg {
		p, err := manager.Generate(ctx, name, sel, size, weights)
		return GeneratedMsg{Playlist: p, Err: err}
	}
}

func (m Model) export() tea.Cmd {
	ctx, manager, p := m.ctx, m.manager, m.playlist
	return func() tea.Msg {
		return ExportedMsg{Err: manager.Export(ctx, p)}
	}
}

// Run starts the TUI application.
func Run(manager *app.Manager) error {
	p := tea.NewProgram(NewModel(manager), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
