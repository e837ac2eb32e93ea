package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"uiTest/internal/cli/ui"
	"uiTest/internal/database"
)

var errNoHistory = errors.New("история прогонов отключена (RESULTS_DB_DRIVER=none) или БД недоступна")

func newHistoryCmd(d Deps) *cobra.Command {
	var (
		limit int
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Упавшие сценарии или все сценарии одного прогона",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if d.History == nil {
				return errNoHistory
			}

			var (
				runs []database.ScenarioRun
				err  error
			)
			if runID != "" {
				runs, err = d.History.ListByRun(cmd.Context(), runID)
			} else {
				runs, err = d.History.ListFailed(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("чтение истории: %w", err)
			}

			w := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(w, ui.ColorGray+"Записей нет"+ui.ColorReset)
				return nil
			}
			for _, r := range runs {
				icon, color, text := ui.FormatStatus(r.Status)
				fmt.Fprintf(w, "%s%s %-9s%s %s "+ui.ColorGray+"(%s, %s, %s)"+ui.ColorReset+"\n",
					color, icon, text, ui.ColorReset,
					r.Scenario, r.Feature, r.Browser, r.StartedAt.Format("2006-01-02 15:04:05"))
				if r.Error != "" {
					fmt.Fprintf(w, "    %s\n", r.Error)
				}
				if r.ScreenshotPath != "" {
					fmt.Fprintf(w, "    %s %s\n", ui.IconCamera, r.ScreenshotPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "сколько последних упавших сценариев показать")
	cmd.Flags().StringVar(&runID, "run", "", "показать все сценарии прогона с этим id")
	return cmd
}
