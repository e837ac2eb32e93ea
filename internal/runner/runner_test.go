package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiTest/internal/browser"
	"uiTest/internal/browser/browsertest"
	"uiTest/internal/config"
	"uiTest/internal/fixtures"
	"uiTest/internal/hooks"
	"uiTest/internal/logger"
)

const stableFeature = `Feature: Stable
  Scenario: Always green
    Given a stable step
`

const flakyFeature = `Feature: Flaky
  Scenario: Green on the n-th try
    Given a flaky step
`

type env struct {
	runner   *Runner
	launcher *browsertest.Launcher
	flaky    string
}

// setup пишет две фичи; flaky-шаг падает первые failures раз.
func setup(t *testing.T, retry bool, maxRetries, failures int) *env {
	t.Helper()
	dir := t.TempDir()
	features := filepath.Join(dir, "features")
	require.NoError(t, os.MkdirAll(features, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(features, "stable.feature"), []byte(stableFeature), 0o644))
	flaky := filepath.Join(features, "flaky.feature")
	require.NoError(t, os.WriteFile(flaky, []byte(flakyFeature), 0o644))

	cfg := &config.Cfg{
		Browser: config.Browser{Kind: config.BrowserChrome, Headless: true, UseManagedDrivers: true},
		Run:     config.Run{RetryOnFailure: retry, MaxRetries: maxRetries},
		Report:  config.Report{Dir: filepath.Join(dir, "reports"), ScreenshotDir: filepath.Join(dir, "reports", "screenshots")},
		BDD:     config.BDD{FeaturesPath: features, Format: "progress"},
	}
	store, err := fixtures.Default()
	require.NoError(t, err)

	launcher := &browsertest.Launcher{}
	suite := hooks.NewSuite(cfg, browser.NewManager(cfg.Browser, launcher, logger.Nop()), store, nil, logger.Nop())

	calls := 0
	steps := func(sc *godog.ScenarioContext) {
		sc.Step(`^a stable step$`, func() error { return nil })
		sc.Step(`^a flaky step$`, func(ctx context.Context) error {
			calls++
			if calls <= failures {
				return errors.New("flaky")
			}
			return nil
		})
	}

	r := New(cfg, suite, steps, logger.Nop())
	r.Output = io.Discard
	return &env{runner: r, launcher: launcher, flaky: flaky}
}

func TestRunPasses(t *testing.T) {
	e := setup(t, true, 2, 0)

	assert.Equal(t, StatusPassed, e.runner.Run(context.Background()))
	assert.Len(t, e.launcher.Launched, 2)
}

func TestRerunOnlyFailedFeatures(t *testing.T) {
	e := setup(t, true, 2, 1)

	assert.Equal(t, StatusPassed, e.runner.Run(context.Background()))
	assert.Len(t, e.launcher.Launched, 3, "второй прогон запускает только flaky.feature")
	assert.Empty(t, e.runner.suite.FailedFeatures())
}

func TestRerunStopsAtMaxRetries(t *testing.T) {
	e := setup(t, true, 2, 100)

	assert.Equal(t, StatusFailed, e.runner.Run(context.Background()))
	assert.Len(t, e.launcher.Launched, 2+2)
	assert.Equal(t, []string{e.flaky}, e.runner.suite.FailedFeatures())
}

func TestNoRerunWhenDisabled(t *testing.T) {
	e := setup(t, false, 2, 1)

	assert.Equal(t, StatusFailed, e.runner.Run(context.Background()))
	assert.Len(t, e.launcher.Launched, 2)
}

func TestBrowsersAreReleased(t *testing.T) {
	e := setup(t, true, 1, 100)
	e.runner.Run(context.Background())

	for _, d := range e.launcher.Drivers {
		assert.Equal(t, 1, d.QuitCount)
	}
}
