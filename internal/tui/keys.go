package tui

import tea "github.com/charmbracelet/bubbletea"

// viewMode is the current display mode of the dashboard.
type viewMode int

const (
	viewList viewMode = iota
	viewDetail
	viewSessions
)

// Key bindings as constants for consistency.
const (
	KeyQuit        = "q"
	KeyQuitAlt     = "ctrl+c"
	KeyConnect     = "enter"
	KeyRefresh     = "r"
	KeyFilter      = "/"
	KeyOnlyOnline  = "o"
	KeyDetail      = "d"
	KeySessions    = "s"
	KeyKill        = "x"
	KeyKillAll     = "K"
	KeyCollapse    = "esc"
	KeySelectPrev  = "up"
	KeySelectPrevK = "k"
	KeySelectNext  = "down"
	KeySelectNextJ = "j"
	KeySelectFirst = "home"
	KeySelectLast  = "end"
	KeyToggleHelp  = "?"
)

// handleKey processes keyboard input. Returns true if the key was handled.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	key := msg.String()

	// While the filter input is focused it owns every key except the
	// ones that leave filter mode.
	if m.filtering {
		switch key {
		case KeyCollapse:
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.clampSelection()
			return true, nil
		case KeyConnect:
			m.filtering = false
			m.filter.Blur()
			m.clampSelection()
			return true, nil
		case KeyQuitAlt:
			return true, m.quit()
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.clampSelection()
		return true, cmd
	}

	if key == KeyToggleHelp {
		m.showHelp = !m.showHelp
		return true, nil
	}
	if m.showHelp && key == KeyCollapse {
		m.showHelp = false
		return true, nil
	}

	switch key {
	case KeyQuit, KeyQuitAlt:
		return true, m.quit()

	case KeyCollapse:
		m.mode = viewList
		return true, nil

	case KeyFilter:
		m.filtering = true
		m.filter.Focus()
		return true, nil

	case KeyOnlyOnline:
		m.onlyOnline = !m.onlyOnline
		m.clampSelection()
		return true, nil

	case KeyRefresh:
		return true, m.refreshCmd()

	case KeyDetail:
		if len(m.visible()) > 0 {
			m.mode = viewDetail
			m.updateDetailContent()
		}
		return true, nil

	case KeySessions:
		m.mode = viewSessions
		m.sessionSel = 0
		return true, nil

	case KeyConnect:
		if m.mode == viewSessions {
			return true, nil
		}
		if t := m.selectedTarget(); t != nil {
			return true, m.connectCmd(*t)
		}
		return true, nil

	case KeyKill:
		if m.mode == viewSessions {
			return true, m.killSelectedSession()
		}
		return true, nil

	case KeyKillAll:
		if m.mode == viewSessions {
			return true, m.killAllSessions()
		}
		return true, nil

	case KeySelectPrev, KeySelectPrevK:
		m.moveSelection(-1)
		return true, nil

	case KeySelectNext, KeySelectNextJ:
		m.moveSelection(1)
		return true, nil

	case KeySelectFirst:
		m.setSelection(0)
		return true, nil

	case KeySelectLast:
		m.setSelection(1 << 30)
		return true, nil
	}

	return false, nil
}

// moveSelection shifts the selection in the active view by delta rows.
func (m *Model) moveSelection(delta int) {
	if m.mode == viewSessions {
		n := m.sessions.Count()
		m.sessionSel = clamp(m.sessionSel+delta, 0, n-1)
		return
	}
	n := len(m.visible())
	m.selected = clamp(m.selected+delta, 0, n-1)
	if m.mode == viewDetail {
		m.updateDetailContent()
	}
}

// setSelection jumps the selection to an absolute row, clamped to range.
func (m *Model) setSelection(i int) {
	if m.mode == viewSessions {
		m.sessionSel = clamp(i, 0, m.sessions.Count()-1)
		return
	}
	m.selected = clamp(i, 0, len(m.visible())-1)
	if m.mode == viewDetail {
		m.updateDetailContent()
	}
}

// clampSelection keeps the selection valid after the visible set shrinks.
func (m *Model) clampSelection() {
	m.selected = clamp(m.selected, 0, len(m.visible())-1)
	m.sessionSel = clamp(m.sessionSel, 0, m.sessions.Count()-1)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
