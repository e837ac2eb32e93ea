// Package cli содержит команды uitest для прогона, тестовых данных, настроек и истории.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uiTest/internal/cli/ui"
	"uiTest/internal/config"
	"uiTest/internal/database"
	"uiTest/internal/fixtures"
	"uiTest/internal/logger"
)

// History читает историю прогонов.
type History interface {
	ListByRun(ctx context.Context, runID string) ([]database.ScenarioRun, error)
	ListFailed(ctx context.Context, limit int) ([]database.ScenarioRun, error)
}

type Deps struct {
	Cfg  *config.Cfg
	Log  *logger.Zap
	Data *fixtures.Store
	// History nil, если RESULTS_DB_DRIVER=none или БД недоступна.
	History History
	// Run запускает прогон и возвращает код godog.
	Run func(ctx context.Context) int
}

// ExitError передает ненулевой код завершения наружу.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("код завершения %d", e.Code)
}

func NewRootCmd(d Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "uitest",
		Short:         "BDD-прогон UI тестов",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(d),
		newDataCmd(d),
		newConfigCmd(d),
		newHistoryCmd(d),
	)
	return root
}

// Execute выполняет команду и возвращает код завершения процесса.
func Execute(ctx context.Context, root *cobra.Command, stderr io.Writer) int {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	ui.Errorf(stderr, "%v", err)
	return 1
}

func newRunCmd(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Прогнать фичи из FEATURES_PATH",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ui.PrintBanner(cmd.OutOrStdout(), d.Cfg.Browser.Kind, d.Cfg.Browser.BaseURL, d.Cfg.BDD.FeaturesPath)
			code := d.Run(cmd.Context())
			d.Log.Info("Прогон завершен", zap.Int("status", code))
			if code != 0 {
				return &ExitError{Code: code}
			}
			return nil
		},
	}
}
