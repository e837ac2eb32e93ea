package browser

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uiTest/internal/logger"
)

// PlaywrightLauncher запускает сессии через Playwright.
// Установка браузеров выполняется не более одного раза на движок за процесс.
type PlaywrightLauncher struct {
	mu        sync.Mutex
	installed map[string]bool
	log       *logger.Zap
}

func NewPlaywrightLauncher(log *logger.Zap) *PlaywrightLauncher {
	if log == nil {
		log = logger.Nop()
	}
	return &PlaywrightLauncher{
		installed: make(map[string]bool),
		log:       log,
	}
}

func (l *PlaywrightLauncher) install(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.installed[name] {
		return nil
	}

	l.log.Info("Установка браузера Playwright", zap.String("browser", name))
	if err := playwright.Install(&playwright.RunOptions{Browsers: []string{name}}); err != nil {
		return fmt.Errorf("установка %s: %w", name, err)
	}
	l.installed[name] = true
	return nil
}

func (l *PlaywrightLauncher) Launch(ctx context.Context, opts LaunchOptions) (Driver, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.Managed {
		if err := l.install(opts.InstallName); err != nil {
			return nil, err
		}
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("запуск playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch opts.Engine {
	case EngineChromium:
		bt = pw.Chromium
	case EngineFirefox:
		bt = pw.Firefox
	default:
		return nil, multierr.Append(fmt.Errorf("%w: движок %q", ErrUnsupportedBrowser, opts.Engine), pw.Stop())
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	}
	if opts.Channel != "" {
		launchOpts.Channel = playwright.String(opts.Channel)
	}
	if opts.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ExecutablePath)
	}

	browser, err := bt.Launch(launchOpts)
	if err != nil {
		return nil, multierr.Append(err, pw.Stop())
	}

	browserContext, err := browser.NewContext()
	if err != nil {
		return nil, multierr.Combine(err, browser.Close(), pw.Stop())
	}

	page, err := browserContext.NewPage()
	if err != nil {
		return nil, multierr.Combine(err, browserContext.Close(), browser.Close(), pw.Stop())
	}

	return &PlaywrightDriver{
		pw:      pw,
		browser: browser,
		context: browserContext,
		page:    page,
	}, nil
}

// PlaywrightDriver реализует Driver поверх одной страницы Playwright.
type PlaywrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

func ms(d time.Duration) *float64 {
	if d <= 0 {
		return nil
	}
	return playwright.Float(float64(d.Milliseconds()))
}

func (b *PlaywrightDriver) locate(loc Locator) (playwright.Locator, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	return b.page.Locator(loc.Selector()).First(), nil
}

func (b *PlaywrightDriver) SetTimeouts(implicitWait, pageLoad time.Duration) {
	if implicitWait > 0 {
		b.page.SetDefaultTimeout(float64(implicitWait.Milliseconds()))
	}
	if pageLoad > 0 {
		b.page.SetDefaultNavigationTimeout(float64(pageLoad.Milliseconds()))
	}
}

func (b *PlaywrightDriver) SetWindowSize(width, height int) error {
	return b.page.SetViewportSize(width, height)
}

func (b *PlaywrightDriver) Open(ctx context.Context, url string) error {
	errChan := make(chan error, 1)
	go func() {
		_, err := b.page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateLoad,
		})
		errChan <- err
	}()

	select {
	case <-ctx.Done():
		return classifyError("open", url, ctx.Err())
	case err := <-errChan:
		return classifyError("open", url, err)
	}
}

func (b *PlaywrightDriver) WaitVisible(ctx context.Context, loc Locator, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	err = l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: ms(timeout),
	})
	return classifyError("wait visible", loc.String(), err)
}

// WaitClickable ждет видимости и проверяет кликабельность пробным кликом.
func (b *PlaywrightDriver) WaitClickable(ctx context.Context, loc Locator, timeout time.Duration) error {
	if err := b.WaitVisible(ctx, loc, timeout); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	err = l.Click(playwright.LocatorClickOptions{
		Trial:   playwright.Bool(true),
		Timeout: ms(timeout),
	})
	return classifyError("wait clickable", loc.String(), err)
}

func (b *PlaywrightDriver) WaitURLContains(ctx context.Context, text string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.page.WaitForURL(regexp.MustCompile(regexp.QuoteMeta(text)), playwright.PageWaitForURLOptions{
		Timeout: ms(timeout),
	})
	return classifyError("wait url", text, err)
}

func (b *PlaywrightDriver) Click(ctx context.Context, loc Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	return classifyError("click", loc.String(), l.Click())
}

// Fill очищает поле и вводит текст.
func (b *PlaywrightDriver) Fill(ctx context.Context, loc Locator, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	return classifyError("fill", loc.String(), l.Fill(text))
}

func (b *PlaywrightDriver) Text(ctx context.Context, loc Locator) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l, err := b.locate(loc)
	if err != nil {
		return "", err
	}
	text, err := l.InnerText()
	return text, classifyError("text", loc.String(), err)
}

// Attribute для "value" читает текущее значение поля, а не исходный атрибут.
func (b *PlaywrightDriver) Attribute(ctx context.Context, loc Locator, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l, err := b.locate(loc)
	if err != nil {
		return "", err
	}

	var v string
	if name == "value" {
		v, err = l.InputValue()
	} else {
		v, err = l.GetAttribute(name)
	}
	return v, classifyError("attribute "+name, loc.String(), err)
}

func (b *PlaywrightDriver) IsVisible(ctx context.Context, loc Locator) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l, err := b.locate(loc)
	if err != nil {
		return false, err
	}
	visible, err := l.IsVisible()
	return visible, classifyError("visible", loc.String(), err)
}

func (b *PlaywrightDriver) Hover(ctx context.Context, loc Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	return classifyError("hover", loc.String(), l.Hover())
}

func (b *PlaywrightDriver) ScrollTo(ctx context.Context, loc Locator) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	return classifyError("scroll", loc.String(), l.ScrollIntoViewIfNeeded())
}

func (b *PlaywrightDriver) Press(ctx context.Context, loc Locator, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l, err := b.locate(loc)
	if err != nil {
		return err
	}
	return classifyError("press "+key, loc.String(), l.Press(key))
}

func (b *PlaywrightDriver) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		res any
		err error
	)
	if arg == nil {
		res, err = b.page.Evaluate(script)
	} else {
		res, err = b.page.Evaluate(script, arg)
	}
	return res, classifyError("evaluate", "", err)
}

func (b *PlaywrightDriver) Title(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return b.page.Title()
}

func (b *PlaywrightDriver) URL() string {
	return b.page.URL()
}

func (b *PlaywrightDriver) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.Reload()
	return classifyError("reload", "", err)
}

func (b *PlaywrightDriver) Back(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.GoBack()
	return classifyError("back", "", err)
}

func (b *PlaywrightDriver) Forward(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := b.page.GoForward()
	return classifyError("forward", "", err)
}

func (b *PlaywrightDriver) SaveScreenshot(path string) error {
	_, err := b.page.Screenshot(playwright.PageScreenshotOptions{
		Path: playwright.String(path),
	})
	return err
}

// Quit закрывает контекст, браузер и драйвер Playwright, собирая все ошибки.
func (b *PlaywrightDriver) Quit() error {
	var err error
	if b.context != nil {
		err = multierr.Append(err, b.context.Close())
	}
	if b.browser != nil {
		err = multierr.Append(err, b.browser.Close())
	}
	if b.pw != nil {
		err = multierr.Append(err, b.pw.Stop())
	}
	return err
}
