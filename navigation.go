package main

import tea "github.com/charmbracelet/bubbletea"

// handleNavigation nudges the selected waypoint by whole cells.
func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	if m.editor.Len() == 0 {
		return m, nil
	}
	dx, dy := 0, 0
	switch key {
	case "h", "left", "H", "shift+left":
		dx = -speed
	case "l", "right", "L", "shift+right":
		dx = speed
	case "k", "up", "K", "shift+up":
		dy = -speed
	case "j", "down", "J", "shift+down":
		dy = speed
	}
	if err := m.editor.Nudge(m.selectedRow, float64(dx), float64(dy)); err != nil {
		return m, m.setError(err.Error())
	}
	return m, nil
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) selectRow(delta int) {
	n := m.editor.Len()
	if n == 0 {
		m.selectedRow = 0
		return
	}
	m.selectedRow = (m.selectedRow + delta + n) % n
}

func (m *model) selectField(delta int) {
	n := len(FormFields)
	m.selectedField = (m.selectedField + delta + n) % n
}

func (m *model) ensureSelectionInBounds() {
	n := m.editor.Len()
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}
