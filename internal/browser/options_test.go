package browser

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiTest/internal/config"
)

func browserCfg() config.Browser {
	return config.Browser{
		Kind:              config.BrowserChrome,
		Window:            config.WindowSize{Width: 1280, Height: 720},
		UseManagedDrivers: true,
		DriverPath:        "drivers",
	}
}

func TestBuildLaunchOptionsChrome(t *testing.T) {
	cfg := browserCfg()
	cfg.Headless = true

	opts, err := BuildLaunchOptions(cfg, "")
	require.NoError(t, err)

	assert.Equal(t, config.BrowserChrome, opts.Kind)
	assert.Equal(t, EngineChromium, opts.Engine)
	assert.Empty(t, opts.Channel)
	assert.True(t, opts.Headless)
	assert.Equal(t, []string{"--window-size=1280,720", "--no-sandbox", "--disable-dev-shm-usage"}, opts.Args)
	assert.True(t, opts.Managed)
	assert.Empty(t, opts.ExecutablePath)
}

func TestBuildLaunchOptionsFirefox(t *testing.T) {
	opts, err := BuildLaunchOptions(browserCfg(), "firefox")
	require.NoError(t, err)

	assert.Equal(t, EngineFirefox, opts.Engine)
	assert.Empty(t, opts.Args)
}

func TestBuildLaunchOptionsEdge(t *testing.T) {
	opts, err := BuildLaunchOptions(browserCfg(), "edge")
	require.NoError(t, err)

	assert.Equal(t, EngineChromium, opts.Engine)
	assert.Equal(t, "msedge", opts.Channel)
	assert.Equal(t, "msedge", opts.InstallName)
	assert.Equal(t, []string{"--window-size=1280,720"}, opts.Args)
}

func TestBuildLaunchOptionsLocalBinary(t *testing.T) {
	cfg := browserCfg()
	cfg.UseManagedDrivers = false

	opts, err := BuildLaunchOptions(cfg, "edge")
	require.NoError(t, err)

	want := filepath.Join("drivers", "msedge")
	if runtime.GOOS == "windows" {
		want += ".exe"
	}
	assert.Equal(t, want, opts.ExecutablePath)
	assert.Empty(t, opts.Channel)
	assert.False(t, opts.Managed)
}

func TestBuildLaunchOptionsUnsupported(t *testing.T) {
	_, err := BuildLaunchOptions(browserCfg(), "safari")
	assert.ErrorIs(t, err, ErrUnsupportedBrowser)
}
