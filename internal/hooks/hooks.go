// Package hooks управляет жизненным циклом прогона: каталоги отчетов,
// браузер на каждый сценарий, скриншот при падении и запись истории.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"uiTest/internal/browser"
	"uiTest/internal/config"
	"uiTest/internal/database"
	"uiTest/internal/fixtures"
	"uiTest/internal/logger"
	"uiTest/internal/pages"
)

// BrowserTagPrefix выбирает браузер для сценария: @browser:firefox.
const BrowserTagPrefix = "@browser:"

// Scenario описывает сценарий для хуков.
type Scenario struct {
	Feature string
	Name    string
	Tags    []string
}

// Browser возвращает браузер из тега или пустую строку.
func (s Scenario) Browser() string {
	for _, tag := range s.Tags {
		if kind, ok := strings.CutPrefix(tag, BrowserTagPrefix); ok {
			return kind
		}
	}
	return ""
}

// Recorder сохраняет результат сценария. При nil история не ведется.
type Recorder interface {
	Create(ctx context.Context, run *database.ScenarioRun) error
}

type Suite struct {
	cfg     *config.Cfg
	manager *browser.Manager
	data    *fixtures.Store
	runs    Recorder
	log     *logger.Zap
	now     func() time.Time

	mu      sync.Mutex
	runID   string
	feature string
	failed  []string
	live    map[*browser.Handle]struct{}
}

func NewSuite(cfg *config.Cfg, manager *browser.Manager, data *fixtures.Store, runs Recorder, log *logger.Zap) *Suite {
	if log == nil {
		log = logger.Nop()
	}
	return &Suite{
		cfg:     cfg,
		manager: manager,
		data:    data,
		runs:    runs,
		log:     log,
		now:     time.Now,
		live:    make(map[*browser.Handle]struct{}),
	}
}

func (s *Suite) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// FailedFeatures возвращает файлы фич, в которых упал хотя бы один сценарий.
func (s *Suite) FailedFeatures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.failed)
}

func (s *Suite) BeforeAll() error {
	if err := config.EnsureDirs(s.cfg.Report); err != nil {
		return err
	}

	s.mu.Lock()
	s.runID = uuid.NewString()
	s.feature = ""
	s.failed = nil
	runID := s.runID
	s.mu.Unlock()

	s.log.Info("Старт прогона",
		zap.String("run_id", runID),
		zap.String("browser", s.cfg.Browser.Kind),
		zap.String("base_url", s.cfg.Browser.BaseURL),
	)
	if !config.IsSupportedBrowser(s.cfg.Browser.Kind) {
		s.log.Warn("Браузер по умолчанию не поддерживается, сценарии без тега @browser упадут",
			zap.String("browser", s.cfg.Browser.Kind),
			zap.Strings("supported", config.SupportedBrowsers),
		)
	}
	return nil
}

func (s *Suite) BeforeFeature(name string) {
	s.log.Info("Фича", zap.String("feature", name))
}

func (s *Suite) AfterFeature(name string) {
	s.log.Info("Фича завершена", zap.String("feature", name))
}

// switchFeature вызывает хуки фич, когда очередной сценарий из другого файла.
func (s *Suite) switchFeature(name string) {
	s.mu.Lock()
	prev := s.feature
	s.feature = name
	s.mu.Unlock()

	if prev == name {
		return
	}
	if prev != "" {
		s.AfterFeature(prev)
	}
	s.BeforeFeature(name)
}

// BeforeScenario открывает браузер и кладет World в context.
func (s *Suite) BeforeScenario(ctx context.Context, sc Scenario) (context.Context, error) {
	s.switchFeature(sc.Feature)
	s.log.Info("Сценарий", zap.String("scenario", sc.Name))

	started := s.now()
	h, err := s.manager.Acquire(ctx, sc.Browser())
	if err != nil {
		s.markFailed(sc.Feature)
		s.record(ctx, scenarioRun{
			scenario: sc,
			browser:  s.kindOf(sc),
			started:  started,
			status:   database.StatusFailed,
			err:      err,
		})
		return ctx, err
	}

	s.mu.Lock()
	s.live[h] = struct{}{}
	s.mu.Unlock()

	w := &World{
		Handle:    h,
		Data:      s.data,
		BaseURL:   s.cfg.Browser.BaseURL,
		Scenario:  sc,
		StartedAt: started,
		Values:    make(map[string]any),
	}
	w.Page = pages.NewSessionBase(h, pages.Options{
		BaseURL:       s.cfg.Browser.BaseURL,
		ScreenshotDir: s.cfg.Report.ScreenshotDir,
		Data:          s.data,
		Log:           s.log,
		Now:           s.now,
	})
	return withWorld(ctx, w), nil
}

// AfterScenario делает скриншот упавшего сценария, закрывает браузер
// и пишет историю. Ошибки уборки только логируются.
func (s *Suite) AfterScenario(ctx context.Context, sc Scenario, stepErr error) error {
	status := Status(stepErr)
	if status == database.StatusFailed {
		s.markFailed(sc.Feature)
	}

	w, ok := WorldFrom(ctx)
	if !ok {
		return nil
	}

	run := scenarioRun{
		scenario: w.Scenario,
		browser:  w.Handle.Kind(),
		started:  w.StartedAt,
		status:   status,
		err:      stepErr,
	}
	defer func() {
		s.release(w.Handle)
		s.record(ctx, run)
	}()

	if status == database.StatusFailed && s.cfg.Run.ScreenshotOnFailure && w.Handle.State() == browser.StateActive {
		path, err := s.screenshot(w.Driver(), sc.Name)
		if err != nil {
			s.log.Warn("Не удалось сделать скриншот", zap.String("scenario", sc.Name), zap.Error(err))
		} else {
			run.screenshot = path
			s.log.Info("Скриншот сохранен", zap.String("path", path))
		}
	}
	return nil
}

// screenshot превращает панику драйвера в ErrScreenshot.
func (s *Suite) screenshot(d browser.Driver, scenario string) (path string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", browser.ErrScreenshot, r)
		}
	}()
	return browser.CaptureScreenshot(d, s.cfg.Report.ScreenshotDir, browser.ScenarioScreenshotName(scenario), s.now())
}

// kindOf возвращает браузер, который пытались запустить для сценария.
func (s *Suite) kindOf(sc Scenario) string {
	if kind := sc.Browser(); kind != "" {
		return strings.ToLower(kind)
	}
	return s.cfg.Browser.Kind
}

func (s *Suite) release(h *browser.Handle) {
	s.mu.Lock()
	delete(s.live, h)
	s.mu.Unlock()

	if err := s.manager.Release(h); err != nil {
		s.log.Warn("Ошибка при закрытии браузера", zap.Error(err))
	}
}

type scenarioRun struct {
	scenario   Scenario
	browser    string
	started    time.Time
	status     string
	err        error
	screenshot string
}

func (s *Suite) record(ctx context.Context, r scenarioRun) {
	if s.runs == nil {
		return
	}
	run := &database.ScenarioRun{
		RunID:          s.RunID(),
		Feature:        r.scenario.Feature,
		Scenario:       r.scenario.Name,
		Browser:        r.browser,
		Status:         r.status,
		ScreenshotPath: r.screenshot,
		StartedAt:      r.started,
		DurationMs:     s.now().Sub(r.started).Milliseconds(),
	}
	if r.err != nil {
		run.Error = r.err.Error()
	}
	if err := s.runs.Create(context.WithoutCancel(ctx), run); err != nil {
		s.log.Warn("Не удалось сохранить результат сценария", zap.String("scenario", r.scenario.Name), zap.Error(err))
	}
}

func (s *Suite) markFailed(feature string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if feature != "" && !slices.Contains(s.failed, feature) {
		s.failed = append(s.failed, feature)
	}
}

// AfterAll закрывает браузеры, которые остались открытыми.
func (s *Suite) AfterAll() {
	s.mu.Lock()
	handles := make([]*browser.Handle, 0, len(s.live))
	for h := range s.live {
		handles = append(handles, h)
	}
	feature := s.feature
	s.feature = ""
	s.mu.Unlock()

	for _, h := range handles {
		s.release(h)
	}
	if feature != "" {
		s.AfterFeature(feature)
	}

	s.log.Info("Прогон завершен", zap.String("run_id", s.RunID()), zap.Int("failed_features", len(s.FailedFeatures())))
	_ = s.log.Sync()
}

// Status переводит ошибку шага godog в статус сценария.
func Status(stepErr error) string {
	switch {
	case stepErr == nil:
		return database.StatusPassed
	case errors.Is(stepErr, godog.ErrSkip):
		return database.StatusSkipped
	case errors.Is(stepErr, godog.ErrUndefined):
		return database.StatusUndefined
	case errors.Is(stepErr, godog.ErrPending):
		return database.StatusPending
	default:
		return database.StatusFailed
	}
}
