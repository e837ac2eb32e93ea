package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"uiTest/internal/browser"
	"uiTest/internal/cli"
	"uiTest/internal/config"
	"uiTest/internal/database"
	"uiTest/internal/fixtures"
	"uiTest/internal/hooks"
	"uiTest/internal/logger"
	"uiTest/internal/migrations"
	"uiTest/internal/runner"
	"uiTest/internal/steps"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка конфигурации:", err)
		return runner.StatusBadArgs
	}

	log, err := logger.New(cfg.Logger.Env, cfg.Logger.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка логгера:", err)
		return runner.StatusBadArgs
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := fixtures.Open(cfg.TestData.File)
	if err != nil {
		log.Error("Ошибка загрузки тестовых данных", zap.Error(err))
		return runner.StatusBadArgs
	}

	var (
		history  *database.ScenarioRunRepository
		recorder hooks.Recorder
		reader   cli.History
	)
	if err := migrations.Run(cfg, log); err != nil {
		log.Warn("Ошибка миграций, история не ведется", zap.Error(err))
	} else {
		db, err := database.New(cfg, log)
		switch {
		case errors.Is(err, database.ErrDisabled):
			log.Debug("История прогонов отключена")
		case err != nil:
			log.Warn("Ошибка подключения к БД, история не ведется", zap.Error(err))
		default:
			defer db.Close(log)
			history = database.NewScenarioRunRepository(db.DB)
			recorder, reader = history, history
		}
	}

	manager := browser.NewManager(cfg.Browser, browser.NewPlaywrightLauncher(log), log)
	suite := hooks.NewSuite(cfg, manager, data, recorder, log)
	r := runner.New(cfg, suite, steps.Register, log)

	root := cli.NewRootCmd(cli.Deps{
		Cfg:     cfg,
		Log:     log,
		Data:    data,
		History: reader,
		Run:     r.Run,
	})
	return cli.Execute(ctx, root, os.Stderr)
}
