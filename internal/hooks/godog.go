package hooks

import (
	"context"

	"github.com/cucumber/godog"
	"go.uber.org/zap"
)

// Register подключает хуки всего прогона.
func (s *Suite) Register(tsc *godog.TestSuiteContext) {
	tsc.BeforeSuite(func() {
		if err := s.BeforeAll(); err != nil {
			s.log.Error("Подготовка прогона", zap.Error(err))
		}
	})
	tsc.AfterSuite(s.AfterAll)
}

// RegisterScenario подключает хуки сценария.
func (s *Suite) RegisterScenario(sc *godog.ScenarioContext) {
	sc.Before(func(ctx context.Context, p *godog.Scenario) (context.Context, error) {
		return s.BeforeScenario(ctx, scenarioOf(p))
	})
	sc.After(func(ctx context.Context, p *godog.Scenario, err error) (context.Context, error) {
		return ctx, s.AfterScenario(ctx, scenarioOf(p), err)
	})
}

func scenarioOf(p *godog.Scenario) Scenario {
	sc := Scenario{Feature: p.Uri, Name: p.Name}
	for _, tag := range p.Tags {
		sc.Tags = append(sc.Tags, tag.Name)
	}
	return sc
}
