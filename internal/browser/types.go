package browser

import (
	"context"
	"time"

	"uiTest/internal/config"
)

// Driver описывает возможности браузерной сессии, которыми пользуются page objects.
// Нулевой timeout означает таймаут сессии по умолчанию.
type Driver interface {
	Open(ctx context.Context, url string) error
	WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error
	WaitClickable(ctx context.Context, loc Locator, timeout time.Duration) error
	WaitURLContains(ctx context.Context, text string, timeout time.Duration) error
	Click(ctx context.Context, loc Locator) error
	Fill(ctx context.Context, loc Locator, text string) error
	Text(ctx context.Context, loc Locator) (string, error)
	Attribute(ctx context.Context, loc Locator, name string) (string, error)
	IsVisible(ctx context.Context, loc Locator) (bool, error)
	Hover(ctx context.Context, loc Locator) error
	ScrollTo(ctx context.Context, loc Locator) error
	Press(ctx context.Context, loc Locator, key string) error
	Evaluate(ctx context.Context, script string, arg any) (any, error)
	Title(ctx context.Context) (string, error)
	URL() string
	Reload(ctx context.Context) error
	Back(ctx context.Context) error
	Forward(ctx context.Context) error
	SetTimeouts(implicitWait, pageLoad time.Duration)
	SetWindowSize(width, height int) error
	SaveScreenshot(path string) error
	Quit() error
}

// Launcher запускает новую сессию по готовым опциям.
type Launcher interface {
	Launch(ctx context.Context, opts LaunchOptions) (Driver, error)
}

// Движки Playwright
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
)

type LaunchOptions struct {
	Kind           string
	Engine         string
	Channel        string
	InstallName    string
	Headless       bool
	Args           []string
	Managed        bool
	ExecutablePath string
	Window         config.WindowSize
}
