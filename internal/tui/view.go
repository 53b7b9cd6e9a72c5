package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handiism/playlist-generator/internal/export"
)

var errNothingToUpdate = errors.New("select at least one artist or album to update genres")

// listHeight is the number of rows shown for selection and review lists.
const listHeight = 15

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🎵 Playlist Generator"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.manager.Settings().LibraryRoot))
	b.WriteString("\n\n")

	switch m.state {
	case StateLoading:
		b.WriteString(m.viewWorking("Loading library..."))
	case StateSelect:
		b.WriteString(m.viewSelect())
	case StateWorking:
		b.WriteString(m.viewWorking("Working..."))
	case StateReview:
		b.WriteString(m.viewReview())
	case StateNaming:
		b.WriteString(subtitleStyle.Render("Playlist name:"))
		b.WriteString("\n\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	case StateAdding:
		b.WriteString(subtitleStyle.Render("Add song (path):"))
		b.WriteString("\n\n")
		b.WriteString(m.nameInput.View())
		b.WriteString("\n")
	case StateDone:
		b.WriteString(m.viewDone())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewWorking(fallback string) string {
	comment := m.comment
	if comment == "" {
		comment = fallback
	}
	return m.spinner.View() + " " + subtitleStyle.Render(comment) + "\n"
}

func (m Model) viewSelect() string {
	var b strings.Builder

	// Tabs
	var tabs []string
	for t := Tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%s (%d)", t, len(m.checked[t]))
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, dimStyle.Render(label))
		}
	}
	b.WriteString(strings.Join(tabs, "   "))
	b.WriteString("\n\n")

	items := m.items[m.tab]
	if len(items) == 0 {
		b.WriteString(dimStyle.Render("  nothing here"))
		b.WriteString("\n")
	}
	start, end := visibleRange(len(items), m.cursor[m.tab], listHeight)
	for i := start; i < end; i++ {
		it := items[i]
		line := fmt.Sprintf("%s %s", checkbox(m.checked[m.tab][it.value]), it.label)
		if i == m.cursor[m.tab] {
			b.WriteString(cursorStyle.Render("› " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	w := m.weights
	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Artists %d%% • Albums %d%% • Genres %d%% • Size %d",
		w.Artist, w.Album, w.Genre, m.Size(),
	)))
	b.WriteString("\n")
	if sum := w.Artist + w.Album + w.Genre; sum != 100 && sum != 0 {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Weights add up to %d%%", sum)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewReview() string {
	var b strings.Builder

	p := m.playlist
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%s (%d of %d songs)", p.Name, len(p.Included()), len(p.Rows))))
	b.WriteString("\n\n")

	start, end := visibleRange(len(p.Rows), m.reviewCursor, listHeight)
	for i := start; i < end; i++ {
		row := p.Rows[i]
		line := fmt.Sprintf("%s %s - %s - %s", checkbox(row.Included), row.Title, row.Artist, row.Album)
		switch {
		case i == m.reviewCursor:
			b.WriteString(cursorStyle.Render("› " + line))
		case !row.Included:
			b.WriteString(dimStyle.Render("  " + line))
		default:
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if len(p.Rows) == 0 {
		b.WriteString(warningStyle.Render("No songs matched the selection."))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(m.message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewDone() string {
	var b strings.Builder

	b.WriteString(boxStyle.Render(successStyle.Render("✨ " + m.message)))
	b.WriteString("\n")

	if len(m.failures) > 0 {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("%d songs need attention:", len(m.failures))))
		b.WriteString("\n")
		start, end := visibleRange(len(m.failures), 0, listHeight)
		for _, f := range m.failures[start:end] {
			b.WriteString(errorStyle.Render("✗ " + f))
			b.WriteString("\n")
		}
		if len(m.failures) > end {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ... and %d more", len(m.failures)-end)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		if errors.Is(m.err, export.ErrAutomationDenied) {
			b.WriteString("\n\n")
			b.WriteString(infoStyle.Render("  Grant access, then press r and export again."))
		}
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateSelect:
		return "tab: switch list • space: select • +/-: artist % • ]/[: album % • s: size • u: update genres • enter: generate • q: quit"
	case StateLoading, StateWorking:
		return "esc: cancel"
	case StateReview:
		return "space: include/exclude • a: add song • n: rename • e: export • esc: back"
	case StateNaming, StateAdding:
		return "enter: save • esc: cancel"
	case StateDone, StateError:
		return "r: back • q: quit"
	}
	return ""
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

// visibleRange returns the window of at most height rows of a list of n
// rows that keeps cursor in view.
func visibleRange(n, cursor, height int) (int, int) {
	if n <= height {
		return 0, n
	}
	start := max(cursor-height/2, 0)
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
