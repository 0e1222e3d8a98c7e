// Package tui is the interactive dashboard: a Bubble Tea program that owns
// the target store, drains the background health monitor, reconciles spawned
// sessions, and launches connections. All store mutation happens on the
// program's update loop, which is what lets the store stay lock-free.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/health"
	"github.com/rileyhilliard/ghost/internal/launch"
	"github.com/rileyhilliard/ghost/internal/logger"
	"github.com/rileyhilliard/ghost/internal/registry"
	"github.com/rileyhilliard/ghost/internal/session"
)

// drainInterval is how often the UI drains monitor updates and reconciles
// sessions. Decoupled from the probe interval; draining an empty channel
// is nearly free.
const drainInterval = 500 * time.Millisecond

// notifyDuration is how long a notification popup stays visible.
const notifyDuration = 4 * time.Second

// spinnerInterval is the animation frame rate for the connecting spinner.
const spinnerInterval = 150 * time.Millisecond

// notifyKind selects the popup border color.
type notifyKind int

const (
	notifyInfo notifyKind = iota
	notifySuccess
	notifyError
)

// notification is the transient popup state.
type notification struct {
	text  string
	kind  notifyKind
	until time.Time
}

// Model is the Bubble Tea model for the ghost dashboard.
type Model struct {
	store    *registry.Store
	monitor  *health.Monitor
	launcher *launch.Launcher
	sessions *session.Registry
	cfg      *config.Config
	cfgPath  string
	connMode launch.Mode
	log      logger.Logger

	mode       viewMode
	selected   int
	sessionSel int
	onlyOnline bool
	showHelp   bool
	quitting   bool

	filter    textinput.Model
	filtering bool

	detail        viewport.Model
	viewportReady bool

	notify       notification
	spinnerFrame int
	width        int
	height       int
	lastSweep    time.Time

	connecting bool // a launch is in flight; blocks double-connects
}

// tickMsg drives the periodic drain/reconcile pass.
type tickMsg time.Time

// spinnerTickMsg advances the connecting animation.
type spinnerTickMsg time.Time

// refreshResultMsg carries one out-of-band probe result back to the loop.
type refreshResultMsg struct {
	targetID string
	result   registry.ProbeResult
}

// planMsg carries a resolved (or failed) launch plan for a target.
type planMsg struct {
	target registry.Target
	plan   *launch.Plan
	err    error
}

// spawnedMsg reports the outcome of a detached new-window spawn.
type spawnedMsg struct {
	target registry.Target
	pid    int
	err    error
}

// sshFinishedMsg reports that a takeover ssh session ended.
type sshFinishedMsg struct {
	target registry.Target
	err    error
}

// New assembles the dashboard model. The monitor is started by Init, not
// here, so constructing a model for tests has no side effects.
func New(cfg *config.Config, cfgPath string, mode launch.Mode) Model {
	store := registry.NewStore()
	for _, t := range cfg.Targets() {
		store.Add(t)
	}

	filter := textinput.New()
	filter.Placeholder = "filter by name, host, or user"
	filter.Prompt = "/ "
	filter.PromptStyle = FilterPromptStyle
	filter.CharLimit = 64

	monitor := health.New(cfg.Settings.RefreshInterval)
	monitor.SetTimeout(cfg.Settings.ProbeTimeout)

	return Model{
		store:      store,
		monitor:    monitor,
		launcher:   launch.NewLauncher(),
		sessions:   session.NewRegistry(),
		cfg:        cfg,
		cfgPath:    cfgPath,
		connMode:   mode,
		log:        logger.NewEnvLogger("[tui]"),
		onlyOnline: cfg.Settings.ShowOnlyOnline,
		filter:     filter,
	}
}

// Init starts the background monitor and the UI timers, then kicks off an
// immediate first sweep so the dashboard doesn't sit on Unknown for a full
// interval.
func (m Model) Init() tea.Cmd {
	m.monitor.Start(m.store.Snapshot())
	return tea.Batch(
		m.tickCmd(),
		m.spinnerTickCmd(),
		m.refreshCmd(),
	)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tickMsg:
		m.drainMonitor()
		m.reconcileSessions()
		if !m.notify.until.IsZero() && time.Now().After(m.notify.until) {
			m.notify = notification{}
		}
		if m.mode == viewDetail {
			m.updateDetailContent()
		}
		return m, m.tickCmd()

	case spinnerTickMsg:
		m.spinnerFrame = (m.spinnerFrame + 1) % 10000
		return m, m.spinnerTickCmd()

	case refreshResultMsg:
		if prev, ok := m.store.ApplyResult(msg.targetID, msg.result); ok {
			m.notifyOnTransition(msg.targetID, prev, msg.result.Health)
		}
		m.clampSelection()
		if m.mode == viewDetail {
			m.updateDetailContent()
		}

	case planMsg:
		return m.handlePlan(msg)

	case spawnedMsg:
		m.connecting = false
		if msg.err != nil {
			m.store.SetHealth(msg.target.ID, registry.HealthOffline)
			m.setNotify(notifyError, msg.err.Error())
			return m, nil
		}
		m.sessions.Add(msg.target.ID, msg.pid, msg.target.ConnectionString())
		m.store.SetHealth(msg.target.ID, registry.HealthOnline)
		m.store.RecordConnection(msg.target.ID)
		m.setNotify(notifySuccess,
			fmt.Sprintf("Opened window for %s (pid %d)", msg.target.Name, msg.pid))

	case sshFinishedMsg:
		m.connecting = false
		if msg.err != nil {
			m.setNotify(notifyInfo,
				fmt.Sprintf("Session with %s ended: %v", msg.target.Name, msg.err))
		} else {
			m.setNotify(notifyInfo,
				fmt.Sprintf("Session with %s ended", msg.target.Name))
		}
	}

	return m, nil
}

// quit stops the background monitor and tells the program to exit. The
// monitor goroutine may take up to one probe timeout to notice; quitting
// doesn't wait on it. The online-only toggle is written back to the config
// so it sticks across runs.
func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.monitor.Stop()
	if m.cfgPath != "" && m.onlyOnline != m.cfg.Settings.ShowOnlyOnline {
		m.cfg.Settings.ShowOnlyOnline = m.onlyOnline
		if err := config.Save(m.cfg, m.cfgPath); err != nil {
			m.log.Debug("saving config on quit: %v", err)
		}
	}
	return tea.Quit
}

// drainMonitor applies every queued background probe result to the store.
func (m *Model) drainMonitor() {
	for {
		u, ok := m.monitor.TryRecv()
		if !ok {
			return
		}
		m.lastSweep = time.Now()
		prev, applied := m.store.ApplyResult(u.TargetID, u.Result)
		if applied {
			m.notifyOnTransition(u.TargetID, prev, u.Result.Health)
		}
		m.clampSelection()
	}
}

// reconcileSessions drops sessions whose processes have ended and surfaces
// the change as a notification.
func (m *Model) reconcileSessions() {
	removed := m.sessions.Reconcile()
	if len(removed) == 0 {
		return
	}
	m.clampSelection()
	if len(removed) == 1 {
		m.setNotify(notifyInfo, fmt.Sprintf("Session %s ended", removed[0].Label))
		return
	}
	m.setNotify(notifyInfo, fmt.Sprintf("%d sessions ended", len(removed)))
}

// notifyOnTransition raises a popup exactly when a target crosses the
// Online/Offline boundary. Repeated results in the same state, and
// transitions involving only Unknown/Connecting, stay quiet.
func (m *Model) notifyOnTransition(targetID string, prev, next registry.HealthState) {
	t := m.store.Get(targetID)
	if t == nil {
		return
	}
	switch {
	case next == registry.HealthOnline && prev != registry.HealthOnline && prev != registry.HealthUnknown && prev != registry.HealthConnecting:
		m.setNotify(notifySuccess, fmt.Sprintf("%s is back online", t.Name))
	case next == registry.HealthOffline && prev == registry.HealthOnline:
		m.setNotify(notifyError, fmt.Sprintf("%s went offline", t.Name))
	}
}

// setNotify replaces the popup and restarts its dismiss timer.
func (m *Model) setNotify(kind notifyKind, text string) {
	m.notify = notification{text: text, kind: kind, until: time.Now().Add(notifyDuration)}
}

// visible returns the targets the list view currently shows.
func (m *Model) visible() []*registry.Target {
	return m.store.Filtered(m.filter.Value(), m.onlyOnline)
}

// selectedTarget returns the highlighted target, or nil when the list is
// empty.
func (m *Model) selectedTarget() *registry.Target {
	vis := m.visible()
	if m.selected < 0 || m.selected >= len(vis) {
		return nil
	}
	return vis[m.selected]
}

// tickCmd schedules the next drain/reconcile pass.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(drainInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// spinnerTickCmd schedules the next spinner frame.
func (m Model) spinnerTickCmd() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

// refreshCmd probes every visible target out of band, marking them
// Connecting first so the UI shows the sweep in progress. Each probe runs
// in its own command so slow hosts don't serialize the others.
func (m *Model) refreshCmd() tea.Cmd {
	targets := m.visible()
	if len(targets) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(targets))
	for _, t := range targets {
		m.store.SetHealth(t.ID, registry.HealthConnecting)
		snapshot := *t
		cmds = append(cmds, func() tea.Msg {
			return refreshResultMsg{
				targetID: snapshot.ID,
				result:   m.monitor.CheckNow(snapshot),
			}
		})
	}
	return tea.Batch(cmds...)
}
