package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"uiTest/internal/cli/ui"
	"uiTest/internal/sanitizer"
)

func newConfigCmd(d Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Показать итоговые настройки",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			c := d.Cfg
			s := sanitizer.New()

			fmt.Fprintln(w, ui.ColorBold+ui.IconCog+" Браузер"+ui.ColorReset)
			ui.KV(w, "BROWSER", c.Browser.Kind)
			ui.KV(w, "HEADLESS", c.Browser.Headless)
			ui.KV(w, "BROWSER_WINDOW_SIZE", c.Browser.Window)
			ui.KV(w, "IMPLICIT_WAIT", c.Browser.ImplicitWait)
			ui.KV(w, "PAGE_LOAD_TIMEOUT", c.Browser.PageLoadTimeout)
			ui.KV(w, "BASE_URL", c.Browser.BaseURL)
			ui.KV(w, "USE_WEBDRIVER_MANAGER", c.Browser.UseManagedDrivers)
			ui.KV(w, "DRIVER_PATH", c.Browser.DriverPath)

			fmt.Fprintln(w, ui.ColorBold+ui.IconList+" Прогон"+ui.ColorReset)
			ui.KV(w, "SCREENSHOT_ON_FAILURE", c.Run.ScreenshotOnFailure)
			ui.KV(w, "RERUN_FAILED_TESTS", c.Run.RetryOnFailure)
			ui.KV(w, "MAX_RETRIES", c.Run.MaxRetries)
			ui.KV(w, "REPORT_DIR", c.Report.Dir)
			ui.KV(w, "SCREENSHOT_DIR", c.Report.ScreenshotDir)
			ui.KV(w, "FEATURES_PATH", c.BDD.FeaturesPath)
			ui.KV(w, "BDD_FORMAT", c.BDD.Format)
			ui.KV(w, "BDD_TAGS", c.BDD.Tags)

			fmt.Fprintln(w, ui.ColorBold+ui.IconGlobe+" Данные"+ui.ColorReset)
			ui.KV(w, "TEST_ENV", envLine(d))
			ui.KV(w, "TEST_DATA_FILE", orEmbedded(c.TestData.File))
			ui.KV(w, "RESULTS_DB_DRIVER", c.Database.Driver)
			ui.KV(w, "RESULTS_DB_DSN", s.SanitizeField("dsn", c.Database.DSN))
			ui.KV(w, "MIGRATIONS_PATH", orEmbedded(c.Database.MigrationsPath))
			ui.KV(w, "LOG_LEVEL", c.Logger.Level)
			return nil
		},
	}
}

func envLine(d Deps) string {
	if d.Data == nil {
		return d.Cfg.TestData.Env
	}
	env, err := d.Data.Environment(d.Cfg.TestData.Env)
	if err != nil || env.URL == "" {
		return d.Cfg.TestData.Env
	}
	return fmt.Sprintf("%s (%s)", d.Cfg.TestData.Env, env.URL)
}

func orEmbedded(v string) string {
	if v == "" {
		return "(встроенные)"
	}
	return v
}
