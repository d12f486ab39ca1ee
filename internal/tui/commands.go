package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/live"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
)

type (
	// todosLoadedMsg carries a fresh snapshot; it always triggers a full rebuild.
	todosLoadedMsg struct {
		todos []model.Todo
		err   error
	}
	// mutationDoneMsg follows add, edit and delete.
	mutationDoneMsg struct {
		op  string
		err error
	}
	toggledMsg struct {
		todo model.Todo
		err  error
	}
	reorderSavedMsg struct{ err error }
	busyMsg         struct{}
	liveMsg         struct {
		change live.Change
		ok     bool
	}
)

func (m Model) fetch() tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		todos, err := b.List(ctx)
		if err != nil {
			return todosLoadedMsg{err: err}
		}
		model.SortByPosition(todos)
		return todosLoadedMsg{todos: todos}
	}
}

func (m Model) create(content string) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		_, err := b.Create(ctx, content)
		return mutationDoneMsg{op: "add", err: err}
	}
}

func (m Model) toggle(id model.ID) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		t, err := b.Toggle(ctx, id)
		return toggledMsg{todo: t, err: err}
	}
}

func (m Model) replace(t model.Todo) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		_, err := b.Replace(ctx, t)
		return mutationDoneMsg{op: "edit", err: err}
	}
}

func (m Model) remove(id model.ID) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		return mutationDoneMsg{op: "delete", err: b.Delete(ctx, id)}
	}
}

func (m Model) persist(assignments []reorder.Assignment) tea.Cmd {
	ctx, b := m.ctx, m.backend
	return func() tea.Msg {
		return reorderSavedMsg{err: reorder.Persist(ctx, b, assignments)}
	}
}

// waitBusy blocks until the indicator flips.
func waitBusy(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		<-ch
		return busyMsg{}
	}
}

func waitLive(ch <-chan live.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		c, ok := <-ch
		return liveMsg{change: c, ok: ok}
	}
}
