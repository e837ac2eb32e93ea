package hooks

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uiTest/internal/browser"
	"uiTest/internal/browser/browsertest"
	"uiTest/internal/config"
	"uiTest/internal/database"
	"uiTest/internal/fixtures"
	"uiTest/internal/logger"
)

type memRecorder struct {
	runs []database.ScenarioRun
	err  error
}

func (r *memRecorder) Create(ctx context.Context, run *database.ScenarioRun) error {
	if r.err != nil {
		return r.err
	}
	r.runs = append(r.runs, *run)
	return nil
}

var clock = time.Date(2026, 6, 1, 10, 30, 0, 0, time.UTC)

func newSuite(t *testing.T, launcher *browsertest.Launcher, rec Recorder) (*Suite, *config.Cfg) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Cfg{
		Browser: config.Browser{
			Kind:              config.BrowserChrome,
			Headless:          true,
			ImplicitWait:      10 * time.Second,
			PageLoadTimeout:   30 * time.Second,
			BaseURL:           "https://app.test",
			UseManagedDrivers: true,
			Window:            config.WindowSize{Width: 1920, Height: 1080},
		},
		Run:    config.Run{ScreenshotOnFailure: true},
		Report: config.Report{Dir: filepath.Join(dir, "reports"), ScreenshotDir: filepath.Join(dir, "reports", "screenshots")},
	}
	store, err := fixtures.Default()
	require.NoError(t, err)

	manager := browser.NewManager(cfg.Browser, launcher, logger.Nop())
	s := NewSuite(cfg, manager, store, rec, logger.Nop())
	s.now = func() time.Time { return clock }
	require.NoError(t, s.BeforeAll())
	return s, cfg
}

func TestBeforeAllCreatesDirsAndRunID(t *testing.T) {
	s, cfg := newSuite(t, &browsertest.Launcher{}, nil)

	assert.DirExists(t, cfg.Report.Dir)
	assert.DirExists(t, cfg.Report.ScreenshotDir)
	assert.Len(t, s.RunID(), 36)
}

func TestScenarioLifecycle(t *testing.T) {
	launcher := &browsertest.Launcher{}
	rec := &memRecorder{}
	s, _ := newSuite(t, launcher, rec)
	sc := Scenario{Feature: "features/login.feature", Name: "Successful login"}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)

	w, ok := WorldFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, browser.StateActive, w.Handle.State())
	assert.Equal(t, "https://app.test", w.BaseURL)
	assert.NotNil(t, w.Data)
	assert.Same(t, launcher.Last(), w.Driver())

	require.NoError(t, s.AfterScenario(ctx, sc, nil))

	assert.Equal(t, browser.StateReleased, w.Handle.State())
	assert.Equal(t, 1, launcher.Last().QuitCount)
	assert.Empty(t, launcher.Last().Screenshots)
	assert.Empty(t, s.FailedFeatures())

	require.Len(t, rec.runs, 1)
	assert.Equal(t, database.StatusPassed, rec.runs[0].Status)
	assert.Equal(t, s.RunID(), rec.runs[0].RunID)
	assert.Equal(t, "chrome", rec.runs[0].Browser)
}

func TestFailedScenarioTakesOneScreenshot(t *testing.T) {
	launcher := &browsertest.Launcher{}
	rec := &memRecorder{}
	s, cfg := newSuite(t, launcher, rec)
	sc := Scenario{Feature: "features/login.feature", Name: "Login With Bad Password"}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	stepErr := fmt.Errorf("wait visible: %w", browser.ErrElementTimeout)

	require.NoError(t, s.AfterScenario(ctx, sc, stepErr))

	d := launcher.Last()
	require.Len(t, d.Screenshots, 1)
	assert.Equal(t, filepath.Join(cfg.Report.ScreenshotDir, "failed_login_with_bad_password_20260601_103000.png"), d.Screenshots[0])
	assert.Equal(t, 1, d.QuitCount)
	assert.Equal(t, []string{"features/login.feature"}, s.FailedFeatures())

	require.Len(t, rec.runs, 1)
	assert.Equal(t, database.StatusFailed, rec.runs[0].Status)
	assert.Equal(t, d.Screenshots[0], rec.runs[0].ScreenshotPath)
	assert.Contains(t, rec.runs[0].Error, "wait visible")
}

func TestScreenshotDisabled(t *testing.T) {
	launcher := &browsertest.Launcher{}
	s, cfg := newSuite(t, launcher, nil)
	cfg.Run.ScreenshotOnFailure = false
	sc := Scenario{Feature: "f", Name: "x"}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	require.NoError(t, s.AfterScenario(ctx, sc, errors.New("boom")))

	assert.Empty(t, launcher.Last().Screenshots)
	assert.Equal(t, 1, launcher.Last().QuitCount)
}

func TestScreenshotFailureDoesNotMaskRelease(t *testing.T) {
	launcher := &browsertest.Launcher{New: func() *browsertest.Driver {
		d := browsertest.NewDriver()
		d.ScreenshotErr = errors.New("page crashed")
		d.QuitErr = errors.New("already gone")
		return d
	}}
	rec := &memRecorder{err: errors.New("db down")}
	s, _ := newSuite(t, launcher, rec)
	sc := Scenario{Feature: "f", Name: "x"}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	w, _ := WorldFrom(ctx)

	assert.NoError(t, s.AfterScenario(ctx, sc, errors.New("boom")))
	assert.Equal(t, browser.StateReleased, w.Handle.State())
	assert.Equal(t, 1, launcher.Last().QuitCount)
}

func TestBrowserTagSelectsKind(t *testing.T) {
	launcher := &browsertest.Launcher{}
	s, _ := newSuite(t, launcher, nil)
	sc := Scenario{Feature: "f", Name: "x", Tags: []string{"@smoke", "@browser:firefox"}}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	require.NoError(t, s.AfterScenario(ctx, sc, nil))

	require.Len(t, launcher.Launched, 1)
	assert.Equal(t, "firefox", launcher.Launched[0].Kind)
}

func TestUnsupportedBrowserFailsScenario(t *testing.T) {
	launcher := &browsertest.Launcher{}
	s, _ := newSuite(t, launcher, nil)
	sc := Scenario{Feature: "features/ie.feature", Name: "x", Tags: []string{"@browser:ie"}}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	assert.ErrorIs(t, err, browser.ErrUnsupportedBrowser)
	assert.Empty(t, launcher.Launched)

	assert.NoError(t, s.AfterScenario(ctx, sc, err))
	assert.Equal(t, []string{"features/ie.feature"}, s.FailedFeatures())
}

func TestAfterAllReleasesLiveHandles(t *testing.T) {
	launcher := &browsertest.Launcher{}
	s, _ := newSuite(t, launcher, nil)

	ctx, err := s.BeforeScenario(context.Background(), Scenario{Feature: "f", Name: "x"})
	require.NoError(t, err)
	w, _ := WorldFrom(ctx)

	s.AfterAll()

	assert.Equal(t, browser.StateReleased, w.Handle.State())
	assert.Equal(t, 1, launcher.Last().QuitCount)
}

func TestStatus(t *testing.T) {
	assert.Equal(t, database.StatusPassed, Status(nil))
	assert.Equal(t, database.StatusFailed, Status(errors.New("x")))
	assert.Equal(t, database.StatusSkipped, Status(godog.ErrSkip))
	assert.Equal(t, database.StatusUndefined, Status(fmt.Errorf("step: %w", godog.ErrUndefined)))
	assert.Equal(t, database.StatusPending, Status(godog.ErrPending))
}

func TestWorldFromEmptyContext(t *testing.T) {
	_, ok := WorldFrom(context.Background())
	assert.False(t, ok)
}

func TestScreenshotPanicStillReleases(t *testing.T) {
	launcher := &browsertest.Launcher{New: func() *browsertest.Driver {
		d := browsertest.NewDriver()
		d.ScreenshotPanic = "target closed"
		return d
	}}
	rec := &memRecorder{}
	s, _ := newSuite(t, launcher, rec)
	sc := Scenario{Feature: "features/login.feature", Name: "x"}

	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	w, _ := WorldFrom(ctx)

	assert.NotPanics(t, func() {
		assert.NoError(t, s.AfterScenario(ctx, sc, errors.New("boom")))
	})
	assert.Equal(t, browser.StateReleased, w.Handle.State())
	assert.Equal(t, 1, launcher.Last().QuitCount)

	require.Len(t, rec.runs, 1)
	assert.Equal(t, database.StatusFailed, rec.runs[0].Status)
	assert.Empty(t, rec.runs[0].ScreenshotPath)

	path, err := s.screenshot(launcher.Last(), "y")
	assert.Empty(t, path)
	assert.ErrorIs(t, err, browser.ErrScreenshot)
}

func TestUnsupportedDefaultBrowserFailsEachScenario(t *testing.T) {
	launcher := &browsertest.Launcher{}
	rec := &memRecorder{}
	s, cfg := newSuite(t, launcher, rec)
	cfg.Browser.Kind = "opera"
	s.manager = browser.NewManager(cfg.Browser, launcher, logger.Nop())

	for _, name := range []string{"first", "second"} {
		sc := Scenario{Feature: "features/login.feature", Name: name}
		ctx, err := s.BeforeScenario(context.Background(), sc)
		assert.ErrorIs(t, err, browser.ErrUnsupportedBrowser)
		assert.NoError(t, s.AfterScenario(ctx, sc, err))
	}

	sc := Scenario{Feature: "features/profile.feature", Name: "tagged", Tags: []string{"@browser:firefox"}}
	ctx, err := s.BeforeScenario(context.Background(), sc)
	require.NoError(t, err)
	require.NoError(t, s.AfterScenario(ctx, sc, nil))

	assert.Len(t, launcher.Launched, 1)
	assert.Equal(t, []string{"features/login.feature"}, s.FailedFeatures())

	require.Len(t, rec.runs, 3)
	for _, r := range rec.runs[:2] {
		assert.Equal(t, database.StatusFailed, r.Status)
		assert.Equal(t, "opera", r.Browser)
		assert.Contains(t, r.Error, "opera")
		assert.Equal(t, clock, r.StartedAt)
	}
	assert.Equal(t, database.StatusPassed, rec.runs[2].Status)
}
