package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ghost/internal/registry"
	"github.com/rileyhilliard/ghost/internal/util"
)

// connectCmd begins the launch decision procedure for a target. Planning
// includes a verification probe (up to 10s), so it runs off the update loop;
// the connecting flag keeps a second Enter from racing the first.
func (m *Model) connectCmd(t registry.Target) tea.Cmd {
	if m.connecting {
		m.setNotify(notifyInfo, "A connection is already in progress")
		return nil
	}
	m.connecting = true
	m.store.SetHealth(t.ID, registry.HealthConnecting)
	m.setNotify(notifyInfo, fmt.Sprintf("Connecting to %s…", t.Name))

	mode := m.connMode
	return func() tea.Msg {
		plan, err := m.launcher.Plan(t, mode)
		return planMsg{target: t, plan: plan, err: err}
	}
}

// handlePlan executes a resolved launch plan: detached spawn for a window
// plan, tea.ExecProcess for a takeover plan so Bubble Tea releases and
// restores the terminal around the ssh session.
func (m Model) handlePlan(msg planMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.connecting = false
		m.store.SetHealth(msg.target.ID, registry.HealthOffline)
		m.setNotify(notifyError, msg.err.Error())
		return m, nil
	}

	if msg.plan.Window != nil {
		plan := msg.plan
		return m, func() tea.Msg {
			pid, err := m.launcher.Spawn(plan)
			return spawnedMsg{target: plan.Target, pid: pid, err: err}
		}
	}

	m.store.SetHealth(msg.target.ID, registry.HealthOnline)
	m.store.RecordConnection(msg.target.ID)
	target := msg.plan.Target
	return m, tea.ExecProcess(msg.plan.Takeover, func(err error) tea.Msg {
		return sshFinishedMsg{target: target, err: err}
	})
}

// killSelectedSession terminates the highlighted session in the sessions
// view.
func (m *Model) killSelectedSession() tea.Cmd {
	list := m.sessions.Sessions()
	if m.sessionSel < 0 || m.sessionSel >= len(list) {
		return nil
	}
	s := list[m.sessionSel]
	if err := m.sessions.Kill(s.PID); err != nil {
		m.setNotify(notifyError, err.Error())
		return nil
	}
	m.clampSelection()
	m.setNotify(notifySuccess, fmt.Sprintf("Killed session %s (pid %d)", s.Label, s.PID))
	return nil
}

// killAllSessions terminates every tracked session and reports the tally.
func (m *Model) killAllSessions() tea.Cmd {
	if m.sessions.Count() == 0 {
		m.setNotify(notifyInfo, "No active sessions")
		return nil
	}
	summary := m.sessions.KillAll()
	m.clampSelection()
	noun := util.Pluralize(summary.Killed, "session", "sessions")
	if summary.Failed > 0 {
		m.setNotify(notifyError,
			fmt.Sprintf("Killed %d %s, %d failed", summary.Killed, noun, summary.Failed))
		return nil
	}
	m.setNotify(notifySuccess, fmt.Sprintf("Killed %d %s", summary.Killed, noun))
	return nil
}
