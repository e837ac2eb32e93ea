// Package pages описывает страницы тестируемого приложения поверх browser.Driver.
package pages

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"uiTest/internal/browser"
	"uiTest/internal/fixtures"
	"uiTest/internal/logger"
	"uiTest/internal/sanitizer"
)

// DisplayTimeout используется в IsElementDisplayed, если timeout не задан.
const DisplayTimeout = 5 * time.Second

type Options struct {
	BaseURL       string
	ScreenshotDir string
	Data          *fixtures.Store
	Log           *logger.Zap
	// Now нужен тестам для стабильных имен скриншотов.
	Now func() time.Time
}

// Base содержит общие действия над страницей. Все ожидания с нулевым timeout
// используют таймаут сессии.
type Base struct {
	driver        func() browser.Driver
	baseURL       string
	screenshotDir string
	data          *fixtures.Store
	log           *logger.Zap
	san           *sanitizer.DataSanitizer
	now           func() time.Time
}

func NewBase(d browser.Driver, opts Options) *Base {
	return newBase(func() browser.Driver { return d }, opts)
}

// NewSessionBase берет драйвер из хэндла на каждом действии, поэтому
// страница сценария перестает работать после Release.
func NewSessionBase(h *browser.Handle, opts Options) *Base {
	return newBase(h.Driver, opts)
}

func newBase(driver func() browser.Driver, opts Options) *Base {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Base{
		driver:        driver,
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		screenshotDir: opts.ScreenshotDir,
		data:          opts.Data,
		log:           opts.Log,
		san:           sanitizer.New(),
		now:           opts.Now,
	}
}

func (b *Base) Driver() browser.Driver {
	return b.driver()
}

func (b *Base) BaseURL() string {
	return b.baseURL
}

// URLFor склеивает базовый адрес и относительный путь.
func (b *Base) URLFor(path string) string {
	if path == "" {
		return b.baseURL
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// Open открывает url, пустой url означает базовый адрес.
func (b *Base) Open(ctx context.Context, url string) error {
	if url == "" {
		url = b.baseURL
	}
	b.log.Debug("Открытие страницы", zap.String("url", url))
	return b.driver().Open(ctx, url)
}

func (b *Base) Click(ctx context.Context, loc browser.Locator) error {
	if err := b.driver().WaitClickable(ctx, loc, 0); err != nil {
		return err
	}
	b.log.Debug("Клик", zap.Stringer("locator", loc))
	return b.driver().Click(ctx, loc)
}

// InputText заменяет содержимое поля на text.
func (b *Base) InputText(ctx context.Context, loc browser.Locator, text string) error {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return err
	}
	b.log.Debug("Ввод текста",
		zap.Stringer("locator", loc),
		zap.String("text", b.san.SanitizeField(loc.Value, text)),
	)
	return b.driver().Fill(ctx, loc, text)
}

func (b *Base) Text(ctx context.Context, loc browser.Locator) (string, error) {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return "", err
	}
	return b.driver().Text(ctx, loc)
}

func (b *Base) Attribute(ctx context.Context, loc browser.Locator, name string) (string, error) {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return "", err
	}
	return b.driver().Attribute(ctx, loc, name)
}

// IsElementDisplayed ждет появления элемента не дольше timeout (0 означает DisplayTimeout).
// Истекшее ожидание дает false, а не ошибку.
func (b *Base) IsElementDisplayed(ctx context.Context, loc browser.Locator, timeout time.Duration) (bool, error) {
	if timeout <= 0 {
		timeout = DisplayTimeout
	}
	err := b.driver().WaitVisible(ctx, loc, timeout)
	switch {
	case err == nil:
		return true, nil
	case browser.IsTimeout(err):
		return false, nil
	default:
		return false, err
	}
}

func (b *Base) WaitForElement(ctx context.Context, loc browser.Locator, timeout time.Duration) error {
	return b.driver().WaitVisible(ctx, loc, timeout)
}

func (b *Base) WaitForElementClickable(ctx context.Context, loc browser.Locator, timeout time.Duration) error {
	return b.driver().WaitClickable(ctx, loc, timeout)
}

func (b *Base) WaitForURLContains(ctx context.Context, text string, timeout time.Duration) error {
	return b.driver().WaitURLContains(ctx, text, timeout)
}

func (b *Base) Hover(ctx context.Context, loc browser.Locator) error {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return err
	}
	return b.driver().Hover(ctx, loc)
}

func (b *Base) ScrollTo(ctx context.Context, loc browser.Locator) error {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return err
	}
	return b.driver().ScrollTo(ctx, loc)
}

// TakeScreenshot сохраняет скриншот в каталог скриншотов и возвращает путь.
func (b *Base) TakeScreenshot(name string) (string, error) {
	if name == "" {
		name = "screenshot"
	}
	path, err := browser.CaptureScreenshot(b.driver(), b.screenshotDir, name, b.now())
	if err != nil {
		return "", err
	}
	b.log.Info("Скриншот сохранен", zap.String("path", path))
	return path, nil
}

func (b *Base) Title(ctx context.Context) (string, error) {
	return b.driver().Title(ctx)
}

func (b *Base) URL() string {
	return b.driver().URL()
}

func (b *Base) Refresh(ctx context.Context) error {
	return b.driver().Reload(ctx)
}

func (b *Base) Back(ctx context.Context) error {
	return b.driver().Back(ctx)
}

func (b *Base) Forward(ctx context.Context) error {
	return b.driver().Forward(ctx)
}

func (b *Base) ExecuteScript(ctx context.Context, script string, arg any) (any, error) {
	return b.driver().Evaluate(ctx, script, arg)
}

func (b *Base) PressKey(ctx context.Context, loc browser.Locator, key string) error {
	if err := b.driver().WaitVisible(ctx, loc, 0); err != nil {
		return err
	}
	return b.driver().Press(ctx, loc, key)
}

func (b *Base) PressEnter(ctx context.Context, loc browser.Locator) error {
	return b.PressKey(ctx, loc, "Enter")
}

func (b *Base) PressEscape(ctx context.Context, loc browser.Locator) error {
	return b.PressKey(ctx, loc, "Escape")
}
