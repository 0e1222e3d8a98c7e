package cli

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/ghost/internal/probe"
	"github.com/rileyhilliard/ghost/internal/registry"
)

var (
	listOnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#39FF14"))
	listOfflineStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0055"))
	listMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B6B8D"))
)

// listCommand probes every target concurrently and prints a summary table.
func listCommand(onlyOnline bool) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	targets := cfg.Targets()
	if len(targets) == 0 {
		fmt.Println("No targets configured. Add one with 'ghost add'.")
		return nil
	}

	store := registry.NewStore()
	for _, t := range targets {
		store.Add(t)
	}

	// Probe in parallel; results are applied on this goroutine afterwards.
	results := make([]registry.ProbeResult, len(targets))
	var wg sync.WaitGroup
	for i, t := range targets {
		wg.Add(1)
		go func(i int, t registry.Target) {
			defer wg.Done()
			results[i] = probe.Probe(t, probe.QuickTimeout)
		}(i, *t)
	}
	wg.Wait()

	for i, t := range targets {
		store.ApplyResult(t.ID, results[i])
	}

	for _, t := range store.Filtered("", onlyOnline) {
		fmt.Println(formatTargetLine(t))
	}

	fmt.Printf("\n%d targets, %d online\n", store.Len(), store.OnlineCount())
	return nil
}

// formatTargetLine renders one list row: status dot, name, address, latency.
func formatTargetLine(t *registry.Target) string {
	dot := listMutedStyle.Render("?")
	detail := ""

	switch t.Health {
	case registry.HealthOnline:
		dot = listOnlineStyle.Render("●")
		detail = fmt.Sprintf("%dms", t.Stats.Latency.Milliseconds())
		if t.Security == registry.SecurityVulnerable {
			detail += "  " + listOfflineStyle.Render("password auth on port 22")
		}
	case registry.HealthOffline:
		dot = listOfflineStyle.Render("●")
	}

	return fmt.Sprintf("%s %-20s %-30s %s",
		dot, t.Name, t.ConnectionString(), listMutedStyle.Render(detail))
}
