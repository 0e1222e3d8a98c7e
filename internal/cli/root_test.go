package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/ghost/internal/config"
	"github.com/rileyhilliard/ghost/internal/errors"
	"github.com/rileyhilliard/ghost/internal/launch"
)

func resetFlags() {
	configPathFlag = ""
	connModeFlag = ""
	newWindowFlag = false
	directFlag = false
}

func TestResolveMode(t *testing.T) {
	defer resetFlags()

	cfg := config.DefaultConfig()

	tests := []struct {
		name      string
		newWindow bool
		direct    bool
		flag      string
		cfgMode   string
		want      launch.Mode
	}{
		{"config default", false, false, "", "auto", launch.ModeAuto},
		{"config direct", false, false, "", "direct", launch.ModeDirect},
		{"flag overrides config", false, false, "new-window", "direct", launch.ModeNewWindow},
		{"shorthand beats flag", true, false, "direct", "auto", launch.ModeNewWindow},
		{"direct shorthand", false, true, "", "auto", launch.ModeDirect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			newWindowFlag = tt.newWindow
			directFlag = tt.direct
			connModeFlag = tt.flag
			cfg.Settings.ConnectionMode = tt.cfgMode

			got, err := resolveMode(cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveModeInvalid(t *testing.T) {
	defer resetFlags()
	resetFlags()
	connModeFlag = "sideways"

	_, err := resolveMode(config.DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrConfig))
}

func TestFindTarget(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Servers["id-1"] = config.Server{Name: "Web-Prod", Host: "web.example.com", User: "admin"}

	tgt, err := findTarget(cfg, "web-prod")
	require.NoError(t, err)
	assert.Equal(t, "Web-Prod", tgt.Name, "lookup is case-insensitive")

	_, err = findTarget(cfg, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Web-Prod", "error lists available targets")
}

func TestFindTargetEmptyConfig(t *testing.T) {
	_, err := findTarget(config.DefaultConfig(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost add")
}
