package browser

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"uiTest/internal/config"
)

// BuildLaunchOptions собирает опции запуска для конкретного браузера.
func BuildLaunchOptions(cfg config.Browser, kind string) (LaunchOptions, error) {
	kind = strings.ToLower(strings.TrimSpace(kind))
	if kind == "" {
		kind = cfg.Kind
	}

	opts := LaunchOptions{
		Kind:     kind,
		Headless: cfg.Headless,
		Managed:  cfg.UseManagedDrivers,
		Window:   cfg.Window,
	}
	windowArg := fmt.Sprintf("--window-size=%d,%d", cfg.Window.Width, cfg.Window.Height)

	var binary string
	switch kind {
	case config.BrowserChrome:
		opts.Engine = EngineChromium
		opts.InstallName = EngineChromium
		opts.Args = []string{windowArg, "--no-sandbox", "--disable-dev-shm-usage"}
		binary = "chrome"
	case config.BrowserFirefox:
		opts.Engine = EngineFirefox
		opts.InstallName = EngineFirefox
		binary = "firefox"
	case config.BrowserEdge:
		opts.Engine = EngineChromium
		opts.Channel = "msedge"
		opts.InstallName = "msedge"
		opts.Args = []string{windowArg}
		binary = "msedge"
	default:
		return LaunchOptions{}, fmt.Errorf("%w: %q", ErrUnsupportedBrowser, kind)
	}

	if !opts.Managed {
		if runtime.GOOS == "windows" {
			binary += ".exe"
		}
		// локальный бинарник заменяет канал
		opts.Channel = ""
		opts.ExecutablePath = filepath.Join(cfg.DriverPath, binary)
	}

	return opts, nil
}
