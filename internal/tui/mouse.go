package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/reorder"
)

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBrowse {
		return m, nil
	}
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.MouseButtonWheelDown:
			if m.cursor < len(m.todos)-1 {
				m.cursor++
			}
			return m, nil
		case tea.MouseButtonLeft:
		default:
			return m, nil
		}

		i, z := m.hit(msg.X, msg.Y)
		if i < 0 {
			return m, nil
		}
		t := m.todos[i]
		m.cursor = i
		switch z {
		case zoneBox:
			return m, m.toggle(t.ID)
		case zoneRemove:
			return m, m.remove(t.ID)
		case zoneText:
			now := m.now()
			if m.lastClick.id == t.ID && now.Sub(m.lastClick.at) <= doubleClick {
				m.lastClick = click{}
				m.pressed = ""
				return m.startEdit(t)
			}
			m.lastClick = click{id: t.ID, at: now}
		}
		m.pressed = t.ID
		return m, nil

	case tea.MouseActionMotion:
		if m.pressed == "" {
			return m, nil
		}
		if m.drag == nil {
			d, err := reorder.Start(model.IDs(m.todos), m.pressed)
			if err != nil {
				m.pressed = ""
				return m.fail("move", err), nil
			}
			m.drag = d
			m.lastClick = click{}
		}
		if m.drag.Over(float64(msg.Y), m.layout()) {
			m.applyOrder(m.drag.Order())
			m.cursor = m.drag.Index()
		}
		return m, nil

	case tea.MouseActionRelease:
		m.pressed = ""
		if m.drag != nil {
			return m.drop()
		}
	}
	return m, nil
}
