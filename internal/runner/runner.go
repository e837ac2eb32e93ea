// Package runner запускает godog над каталогом фич и перезапускает упавшие фичи.
package runner

import (
	"context"
	"io"
	"os"

	"github.com/cucumber/godog"
	"go.uber.org/zap"

	"uiTest/internal/config"
	"uiTest/internal/hooks"
	"uiTest/internal/logger"
)

// Коды завершения godog.
const (
	StatusPassed  = 0
	StatusFailed  = 1
	StatusBadArgs = 2
)

type Runner struct {
	cfg   *config.Cfg
	suite *hooks.Suite
	steps func(*godog.ScenarioContext)
	log   *logger.Zap

	// Output принимает отчет форматтера, по умолчанию stdout.
	Output io.Writer
}

func New(cfg *config.Cfg, suite *hooks.Suite, steps func(*godog.ScenarioContext), log *logger.Zap) *Runner {
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		cfg:    cfg,
		suite:  suite,
		steps:  steps,
		log:    log,
		Output: os.Stdout,
	}
}

// Run прогоняет фичи. При падении и включенном RERUN_FAILED_TESTS повторяет
// только упавшие файлы, не больше MaxRetries раз. Возвращает код последнего прогона.
func (r *Runner) Run(ctx context.Context) int {
	status := r.runOnce(ctx, []string{r.cfg.BDD.FeaturesPath})

	if !r.cfg.Run.RetryOnFailure {
		return status
	}

	for attempt := 1; status == StatusFailed && attempt <= r.cfg.Run.MaxRetries; attempt++ {
		failed := r.suite.FailedFeatures()
		if len(failed) == 0 {
			break
		}
		r.log.Warn("Повторный прогон упавших фич",
			zap.Int("attempt", attempt),
			zap.Int("max_retries", r.cfg.Run.MaxRetries),
			zap.Strings("features", failed),
		)
		status = r.runOnce(ctx, failed)
	}

	if status != StatusPassed {
		r.log.Error("Прогон завершился с ошибками", zap.Int("status", status))
	}
	return status
}

func (r *Runner) runOnce(ctx context.Context, paths []string) int {
	return godog.TestSuite{
		Name:                 "uitest",
		TestSuiteInitializer: r.suite.Register,
		ScenarioInitializer: func(sc *godog.ScenarioContext) {
			r.suite.RegisterScenario(sc)
			if r.steps != nil {
				r.steps(sc)
			}
		},
		Options: &godog.Options{
			Format:         r.cfg.BDD.Format,
			Tags:           r.cfg.BDD.Tags,
			Paths:          paths,
			Output:         r.Output,
			Strict:         true,
			DefaultContext: ctx,
		},
	}.Run()
}
