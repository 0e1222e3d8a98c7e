package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/ghost/internal/registry"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	if m.notify.text != "" {
		b.WriteString(m.renderNotification())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		switch m.mode {
		case viewDetail:
			b.WriteString(m.renderDetail())
		case viewSessions:
			b.WriteString(m.renderSessions())
		default:
			b.WriteString(m.renderList())
		}
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader shows the fleet summary and the age of the last sweep.
func (m Model) renderHeader() string {
	title := fmt.Sprintf("ghost · %d targets, %d online, %d sessions",
		m.store.Len(), m.store.OnlineCount(), m.sessions.Count())

	age := ""
	if !m.lastSweep.IsZero() {
		age = MutedStyle.Render(fmt.Sprintf("  updated %ds ago", int(time.Since(m.lastSweep).Seconds())))
	}
	return HeaderStyle.Render(title) + age
}

// renderNotification draws the transient popup.
func (m Model) renderNotification() string {
	style := NotifyInfoStyle
	switch m.notify.kind {
	case notifySuccess:
		style = NotifySuccessStyle
	case notifyError:
		style = NotifyErrorStyle
	}
	return style.Render(m.notify.text)
}

// renderList draws the target table.
func (m Model) renderList() string {
	var b strings.Builder

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}

	vis := m.visible()
	if len(vis) == 0 {
		if m.store.Len() == 0 {
			b.WriteString(MutedStyle.Render("No targets configured. Add one with 'ghost add'."))
		} else {
			b.WriteString(MutedStyle.Render("No targets match the current filter."))
		}
		return b.String()
	}

	for i, t := range vis {
		b.WriteString(m.renderRow(t, i == m.selected && !m.filtering))
		b.WriteString("\n")
	}

	if m.onlyOnline {
		b.WriteString(MutedStyle.Render("showing online only (o to toggle)"))
		b.WriteString("\n")
	}
	return b.String()
}

// renderRow draws one target line: indicator, name, address, latency,
// security.
func (m Model) renderRow(t *registry.Target, selected bool) string {
	indicator := m.healthIndicator(t.Health)

	rowStyle := RowStyle
	cursor := "  "
	if selected {
		rowStyle = RowSelectedStyle
		cursor = "> "
	}

	latency := ""
	if t.Health == registry.HealthOnline && t.Stats.Latency > 0 {
		latency = fmt.Sprintf(" %dms", t.Stats.Latency.Milliseconds())
	}

	sec := ""
	if t.Security != registry.SecurityUnknown {
		sec = " " + securityStyle(t.Security).Render(strings.ToLower(t.Security.String()))
	}

	return cursor + indicator + " " + rowStyle.Render(
		fmt.Sprintf("%-20s %s", t.Name, t.ConnectionString())) +
		MutedStyle.Render(latency) + sec
}

// healthIndicator returns the colored status glyph, animated while
// connecting.
func (m Model) healthIndicator(h registry.HealthState) string {
	sym := h.Symbol()
	if h == registry.HealthConnecting {
		sym = spinnerFrames[m.spinnerFrame%len(spinnerFrames)]
	}
	return healthStyle(h).Render(sym)
}

// renderDetail draws the scrollable detail panel for the selected target.
func (m Model) renderDetail() string {
	if !m.viewportReady {
		return MutedStyle.Render("…")
	}
	return DetailBoxStyle.Render(m.detail.View())
}

// resizeViewport sizes the detail viewport to the window, reserving header
// and footer rows.
func (m *Model) resizeViewport() {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	if !m.viewportReady {
		m.detail = viewport.New(w, h)
		m.viewportReady = true
	} else {
		m.detail.Width = w
		m.detail.Height = h
	}
	if m.mode == viewDetail {
		m.updateDetailContent()
	}
}

// updateDetailContent rebuilds the detail viewport text for the selected
// target.
func (m *Model) updateDetailContent() {
	if !m.viewportReady {
		return
	}
	t := m.selectedTarget()
	if t == nil {
		m.detail.SetContent(MutedStyle.Render("No target selected"))
		return
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-12s", label)))
		b.WriteString(value)
		b.WriteString("\n")
	}

	b.WriteString(NameStyle.Render(t.Name))
	b.WriteString("\n\n")
	row("Address", t.ConnectionString())
	row("Health", m.healthIndicator(t.Health)+" "+t.Health.String())
	row("Security", securityStyle(t.Security).Render(t.Security.String()))
	row("Auth", t.Auth.Type.String())
	if t.Auth.KeyPath != "" {
		row("Key", t.Auth.KeyPath)
	}
	if t.Description != "" {
		row("Notes", t.Description)
	}
	if len(t.Tags) > 0 {
		row("Tags", strings.Join(t.Tags, ", "))
	}

	b.WriteString("\n")
	if t.Stats.Latency > 0 {
		row("Latency", fmt.Sprintf("%dms %s",
			t.Stats.Latency.Milliseconds(), sparkline(t.Stats.LatencyHistory)))
	}
	if t.Stats.Successes+t.Stats.Failures > 0 {
		row("Uptime", fmt.Sprintf("%.0f%% (%d ok / %d failed)",
			t.Stats.UptimePercent, t.Stats.Successes, t.Stats.Failures))
	}
	if !t.Stats.LastConnected.IsZero() {
		row("Last seen", t.Stats.LastConnected.Format("15:04:05"))
	}

	if live := m.sessionsFor(t.ID); len(live) > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Sessions"))
		b.WriteString("\n")
		for _, s := range live {
			b.WriteString(fmt.Sprintf("  pid %-8d %s\n", s.PID, s.FormatDuration()))
		}
	}

	m.detail.SetContent(b.String())
}

// renderSessions draws the live-session table plus recent connections.
func (m Model) renderSessions() string {
	var b strings.Builder

	list := m.sessions.Sessions()
	if len(list) == 0 {
		b.WriteString(MutedStyle.Render("No active sessions. Connect to a target to start one."))
		b.WriteString("\n")
	} else {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("  %-8s %-28s %s", "PID", "TARGET", "UPTIME")))
		b.WriteString("\n")
		for i, s := range list {
			cursor := "  "
			style := RowStyle
			if i == m.sessionSel {
				cursor = "> "
				style = RowSelectedStyle
			}
			b.WriteString(cursor + style.Render(
				fmt.Sprintf("%-8d %-28s %s", s.PID, s.Label, s.FormatDuration())))
			b.WriteString("\n")
		}
	}

	if history := m.store.History(); len(history) > 0 {
		b.WriteString("\n")
		b.WriteString(LabelStyle.Render("Recent connections"))
		b.WriteString("\n")
		limit := len(history)
		if limit > 5 {
			limit = 5
		}
		for _, h := range history[:limit] {
			b.WriteString(MutedStyle.Render(
				fmt.Sprintf("  %s  %s", h.ConnectedAt.Format("15:04:05"), h.TargetName)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderHelp draws the key reference overlay.
func (m Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"enter", "connect to selected target"},
		{"r", "refresh all visible targets"},
		{"/", "filter targets"},
		{"o", "toggle online-only"},
		{"d", "target detail"},
		{"s", "sessions view"},
		{"x", "kill selected session"},
		{"K", "kill all sessions"},
		{"↑/↓ j/k", "move selection"},
		{"esc", "back to list"},
		{"q", "quit"},
	}
	var b strings.Builder
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			NameStyle.Render(fmt.Sprintf("%-9s", r.key)), LabelStyle.Render(r.desc)))
	}
	return DetailBoxStyle.Render(b.String())
}

// renderFooter shows the context-appropriate key hints.
func (m Model) renderFooter() string {
	switch {
	case m.filtering:
		return FooterStyle.Render("enter: apply  esc: clear")
	case m.mode == viewSessions:
		return FooterStyle.Render("x: kill  K: kill all  esc: back  ?: help  q: quit")
	case m.mode == viewDetail:
		return FooterStyle.Render("enter: connect  esc: back  ?: help  q: quit")
	default:
		return FooterStyle.Render("enter: connect  r: refresh  /: filter  s: sessions  ?: help  q: quit")
	}
}

// sessionsFor returns the live sessions owned by one target.
func (m Model) sessionsFor(targetID string) []sessionRow {
	var out []sessionRow
	for _, s := range m.sessions.ByTarget(targetID) {
		out = append(out, sessionRow{PID: s.PID, dur: s.FormatDuration()})
	}
	return out
}

// sessionRow is the minimal per-session render data for the detail view.
type sessionRow struct {
	PID int
	dur string
}

// FormatDuration returns the precomputed uptime text.
func (s sessionRow) FormatDuration() string { return s.dur }

// sparkBlocks are the eight vertical-bar glyphs used for latency history.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a latency history as a compact bar graph, scaled to the
// series' own max. Falls back to empty on monochrome terminals where the
// bars read as noise.
func sparkline(series []int64) string {
	if len(series) == 0 || !hasColorSupport() {
		return ""
	}
	var max int64 = 1
	for _, v := range series {
		if v > max {
			max = v
		}
	}
	out := make([]rune, len(series))
	for i, v := range series {
		idx := int(v * int64(len(sparkBlocks)-1) / max)
		out[i] = sparkBlocks[idx]
	}
	return lipgloss.NewStyle().Foreground(ColorCyan).Render(string(out))
}
