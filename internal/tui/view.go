package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
	"github.com/idilsaglam/tada/internal/ui"
)

// Screen geometry: the frame border and left padding push content to
// column 2, and the header takes three lines below the top border.
const (
	frameTop    = 1
	frameLeft   = 2
	headerLines = 3
	prefixWidth = 2
	gapWidth    = 2
	removeGlyph = "✕"
)

type zone int

const (
	zoneNone zone = iota
	zoneRow
	zoneBox
	zoneText
	zoneRemove
)

func rowTop(i int) int { return frameTop + headerLines + i }

func (m Model) box(t model.Todo) string {
	if t.Completed {
		return m.styles.theme.BoxChecked
	}
	return m.styles.theme.BoxUnchecked
}

// text is the row label after truncation to the frame width.
func (m Model) text(t model.Todo) string {
	inner := m.width - 2*frameLeft
	room := inner - prefixWidth - lipgloss.Width(m.box(t)) - 1 - gapWidth - lipgloss.Width(removeGlyph)
	return ansi.Truncate(t.Content, max(10, room), "…")
}

// hit maps a screen cell to a row index and the control under it.
func (m Model) hit(x, y int) (int, zone) {
	i := y - rowTop(0)
	if i < 0 || i >= len(m.todos) {
		return -1, zoneNone
	}
	t := m.todos[i]
	col := x - frameLeft - prefixWidth
	boxW := lipgloss.Width(m.box(t))
	textW := lipgloss.Width(m.text(t))
	textAt := boxW + 1
	removeAt := textAt + textW + gapWidth
	switch {
	case col >= 0 && col < boxW:
		return i, zoneBox
	case col >= textAt && col < textAt+textW:
		return i, zoneText
	case col >= removeAt && col < removeAt+lipgloss.Width(removeGlyph):
		return i, zoneRemove
	}
	return i, zoneRow
}

// layout reports where every row currently sits, in render order.
func (m Model) layout() []reorder.Row {
	rows := make([]reorder.Row, len(m.todos))
	for i, t := range m.todos {
		rows[i] = reorder.Row{ID: t.ID, Top: float64(rowTop(i)), Height: 1}
	}
	return rows
}

func (m Model) View() string {
	s := m.styles
	t := s.theme
	done, pending := model.Stats(m.todos)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render(m.title),
		t.Success.Render(t.SymDone), done,
		t.Pending.Render(t.SymPending), pending,
		t.Accent.Render("Total"), len(m.todos),
	)
	if m.ind.Visible() {
		header += "  " + m.spin.View()
	}
	lines := []string{header, s.help.Render(ui.ProgressBar(done, done+pending, 28)), ""}

	switch {
	case !m.loaded && len(m.todos) == 0:
		lines = append(lines, t.Muted.Render("loading..."))
	case len(m.todos) == 0:
		lines = append(lines, t.Muted.Render("no items, press a to add one"))
	}
	for i, td := range m.todos {
		lines = append(lines, m.renderRow(i, td))
	}

	lines = append(lines, "", m.statusLine())
	if m.mode == modeAdd {
		title := "Add new item"
		if m.inErr != "" {
			title += ": " + t.Error.Render(m.inErr)
		}
		lines = append(lines, s.input.Render(title+"\n"+m.ti.View()))
	}
	if m.mode == modeGrab {
		lines = append(lines, m.help.View(grabKeys{m.keys}))
	} else {
		lines = append(lines, m.help.View(m.keys))
	}
	return s.frame.Render(strings.Join(lines, "\n"))
}

func (m Model) renderRow(i int, td model.Todo) string {
	s := m.styles
	t := s.theme
	dragging := m.drag != nil && m.drag.Dragged() == td.ID

	prefix := "  "
	switch {
	case dragging:
		prefix = s.dragging.Render("≡ ")
	case i == m.cursor && m.mode != modeAdd:
		prefix = s.selected.Render("> ")
	}

	box := t.Muted.Render(m.box(td))
	text := m.text(td)
	if td.Completed {
		box = t.Success.Render(m.box(td))
		text = s.done.Render(text)
	}
	if dragging {
		text = s.dragging.Render(m.text(td))
	}
	if m.mode == modeEdit && td.ID == m.editing {
		return prefix + box + " " + m.ti.View()
	}
	return prefix + box + " " + text + strings.Repeat(" ", gapWidth) + s.remove.Render(removeGlyph)
}

func (m Model) statusLine() string {
	t := m.styles.theme
	switch {
	case m.err != nil:
		return t.Error.Render(t.SymFail + " " + m.err.Error())
	case m.mode == modeGrab:
		return t.Accent.Render("moving: ↑/↓ to place, enter to drop")
	case m.status != "":
		return t.Muted.Render(m.status)
	}
	return ""
}
