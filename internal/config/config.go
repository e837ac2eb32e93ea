package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Поддерживаемые браузеры, первый используется по умолчанию
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserEdge    = "edge"
)

var SupportedBrowsers = []string{BrowserChrome, BrowserFirefox, BrowserEdge}

type Cfg struct {
	Browser  Browser
	Run      Run
	Report   Report
	BDD      BDD
	TestData TestData
	Logger   Logger
	Database Database
}

type Browser struct {
	Kind              string
	Headless          bool
	Window            WindowSize
	ImplicitWait      time.Duration
	PageLoadTimeout   time.Duration
	BaseURL           string
	UseManagedDrivers bool
	DriverPath        string
}

type WindowSize struct {
	Width  int
	Height int
}

func (w WindowSize) String() string {
	return fmt.Sprintf("%dx%d", w.Width, w.Height)
}

type Run struct {
	ScreenshotOnFailure bool
	RetryOnFailure      bool
	MaxRetries          int
}

type Report struct {
	Dir           string
	ScreenshotDir string
}

type BDD struct {
	FeaturesPath string
	Format       string
	Tags         string
}

type TestData struct {
	Env  string
	File string
}

type Logger struct {
	Env   string
	Level string
}

type Database struct {
	Driver         string
	DSN            string
	MigrationsPath string
}

// Error описывает некорректное значение переменной окружения.
type Error struct {
	Key   string
	Value string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: invalid %s=%q: %v", e.Key, e.Value, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Load читает .env (если есть) и собирает настройки из окружения процесса.
func Load() (*Cfg, error) {
	_ = godotenv.Load()
	return Resolve(os.LookupEnv)
}

// Resolve собирает настройки через lookup и создает каталоги отчетов.
// При одинаковом окружении результат одинаковый.
func Resolve(lookup func(string) (string, bool)) (*Cfg, error) {
	r := resolver{lookup: lookup}

	reportDir := r.str("REPORT_DIR", "reports")

	cfg := &Cfg{
		Browser: Browser{
			Kind:              r.browserKind("BROWSER", BrowserChrome),
			Headless:          r.boolean("HEADLESS", false),
			Window:            r.window("BROWSER_WINDOW_SIZE", WindowSize{Width: 1920, Height: 1080}),
			ImplicitWait:      r.seconds("IMPLICIT_WAIT", 10),
			PageLoadTimeout:   r.seconds("PAGE_LOAD_TIMEOUT", 30),
			BaseURL:           strings.TrimRight(r.str("BASE_URL", "https://example.com"), "/"),
			UseManagedDrivers: r.boolean("USE_WEBDRIVER_MANAGER", true),
			DriverPath:        r.str("DRIVER_PATH", "drivers"),
		},
		Run: Run{
			ScreenshotOnFailure: r.boolean("SCREENSHOT_ON_FAILURE", true),
			RetryOnFailure:      r.boolean("RERUN_FAILED_TESTS", true),
			MaxRetries:          r.nonNegative("MAX_RETRIES", 2),
		},
		Report: Report{
			Dir:           reportDir,
			ScreenshotDir: filepath.Join(reportDir, "screenshots"),
		},
		BDD: BDD{
			FeaturesPath: r.str("FEATURES_PATH", "features"),
			Format:       r.str("BDD_FORMAT", "pretty"),
			Tags:         r.str("BDD_TAGS", ""),
		},
		TestData: TestData{
			Env:  r.str("TEST_ENV", "dev"),
			File: r.str("TEST_DATA_FILE", ""),
		},
		Logger: Logger{
			Env:   r.str("ENV", "dev"),
			Level: r.str("LOG_LEVEL", "info"),
		},
		Database: Database{
			Driver:         strings.ToLower(r.str("RESULTS_DB_DRIVER", "sqlite")),
			DSN:            r.str("RESULTS_DB_DSN", filepath.Join(reportDir, "results.db")),
			MigrationsPath: r.str("MIGRATIONS_PATH", ""),
		},
	}

	if r.err != nil {
		return nil, r.err
	}

	if err := EnsureDirs(cfg.Report); err != nil {
		return nil, err
	}

	return cfg, nil
}

// EnsureDirs создает каталоги отчетов и скриншотов, существующие не трогает.
func EnsureDirs(r Report) error {
	for _, dir := range []string{r.Dir, r.ScreenshotDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
		}
	}
	return nil
}

// resolver запоминает первую ошибку, остальные значения читаются дальше с дефолтами.
type resolver struct {
	lookup func(string) (string, bool)
	err    error
}

func (r *resolver) raw(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func (r *resolver) fail(key, value string, err error) {
	if r.err == nil {
		r.err = &Error{Key: key, Value: value, Err: err}
	}
}

func (r *resolver) str(key, defaultValue string) string {
	if v, ok := r.raw(key); ok {
		return v
	}
	return defaultValue
}

func (r *resolver) boolean(key string, defaultValue bool) bool {
	v, ok := r.raw(key)
	if !ok {
		return defaultValue
	}
	b, err := ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return defaultValue
	}
	return b
}

func (r *resolver) nonNegative(key string, defaultValue int) int {
	v, ok := r.raw(key)
	if !ok {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, fmt.Errorf("ожидается целое число"))
		return defaultValue
	}
	if n < 0 {
		r.fail(key, v, fmt.Errorf("значение не может быть отрицательным"))
		return defaultValue
	}
	return n
}

func (r *resolver) seconds(key string, defaultValue int) time.Duration {
	return time.Duration(r.nonNegative(key, defaultValue)) * time.Second
}

func (r *resolver) window(key string, defaultValue WindowSize) WindowSize {
	v, ok := r.raw(key)
	if !ok {
		return defaultValue
	}
	w, err := ParseWindowSize(v)
	if err != nil {
		r.fail(key, v, err)
		return defaultValue
	}
	return w
}

// browserKind не проверяет значение: неизвестный браузер роняет сценарий при запуске, а не весь прогон.
func (r *resolver) browserKind(key, defaultValue string) string {
	return strings.ToLower(r.str(key, defaultValue))
}

// ParseBool принимает true/false, 1/0, yes/no без учета регистра.
func ParseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	}
	return false, fmt.Errorf("ожидается true/false")
}

// ParseWindowSize разбирает "1920x1080" или "1920,1080".
func ParseWindowSize(v string) (WindowSize, error) {
	sep := "x"
	if strings.Contains(v, ",") {
		sep = ","
	}
	parts := strings.Split(strings.ToLower(v), sep)
	if len(parts) != 2 {
		return WindowSize{}, fmt.Errorf("ожидается формат WxH")
	}

	width, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || width <= 0 {
		return WindowSize{}, fmt.Errorf("некорректная ширина %q", parts[0])
	}
	height, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || height <= 0 {
		return WindowSize{}, fmt.Errorf("некорректная высота %q", parts[1])
	}

	return WindowSize{Width: width, Height: height}, nil
}

func IsSupportedBrowser(kind string) bool {
	return slices.Contains(SupportedBrowsers, kind)
}
