package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/launch"
)

// Run starts the dashboard program in the alternate screen and blocks until
// the user quits.
func Run(cfg *config.Config, cfgPath string, mode launch.Mode) error {
	p := tea.NewProgram(New(cfg, cfgPath, mode), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"The dashboard exited unexpectedly",
			"Run with GHOST_DEBUG=1 for details")
	}
	return nil
}
