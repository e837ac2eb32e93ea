// Package browsertest содержит поддельный драйвер для тестов без настоящего браузера.
package browsertest

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"uiTest/internal/browser"
)

// Element описывает элемент на поддельной странице.
type Element struct {
	Text       string
	Value      string
	Attributes map[string]string
	Visible    bool
	Disabled   bool
}

// Driver хранит страницу как словарь селектор -> элемент и записывает все вызовы.
type Driver struct {
	mu sync.Mutex

	Elements      map[string]*Element
	CurrentURL    string
	PageTitle     string
	Calls         []string
	ImplicitWait  time.Duration
	PageLoad      time.Duration
	Width, Height int

	// OnClick позволяет сценарию менять страницу после клика.
	OnClick       func(d *Driver, loc browser.Locator)
	ScreenshotErr error
	// ScreenshotPanic эмулирует падение драйвера внутри SaveScreenshot.
	ScreenshotPanic any
	QuitErr         error
	QuitCount       int
	Screenshots     []string
	EvalResult      any
}

func NewDriver() *Driver {
	return &Driver{Elements: make(map[string]*Element)}
}

// Set добавляет видимый элемент.
func (d *Driver) Set(loc browser.Locator, el Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	el.Visible = true
	d.Elements[loc.String()] = &el
}

func (d *Driver) Element(loc browser.Locator) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Elements[loc.String()]
}

func (d *Driver) record(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Driver) visible(loc browser.Locator) (*Element, error) {
	el := d.Element(loc)
	if el == nil || !el.Visible {
		return nil, &browser.ActionError{
			Action:   "wait visible",
			Selector: loc.String(),
			Err:      browser.ErrElementTimeout,
		}
	}
	return el, nil
}

func (d *Driver) Open(ctx context.Context, url string) error {
	d.record("open %s", url)
	d.CurrentURL = url
	return nil
}

func (d *Driver) WaitVisible(ctx context.Context, loc browser.Locator, timeout time.Duration) error {
	d.record("wait visible %s", loc)
	_, err := d.visible(loc)
	return err
}

func (d *Driver) WaitClickable(ctx context.Context, loc browser.Locator, timeout time.Duration) error {
	d.record("wait clickable %s", loc)
	el, err := d.visible(loc)
	if err != nil {
		return err
	}
	if el.Disabled {
		return &browser.ActionError{Action: "wait clickable", Selector: loc.String(), Err: browser.ErrElementTimeout}
	}
	return nil
}

func (d *Driver) WaitURLContains(ctx context.Context, text string, timeout time.Duration) error {
	d.record("wait url %s", text)
	if !strings.Contains(d.CurrentURL, text) {
		return &browser.ActionError{Action: "wait url", Selector: text, Err: browser.ErrElementTimeout}
	}
	return nil
}

func (d *Driver) Click(ctx context.Context, loc browser.Locator) error {
	d.record("click %s", loc)
	if _, err := d.visible(loc); err != nil {
		return err
	}
	if d.OnClick != nil {
		d.OnClick(d, loc)
	}
	return nil
}

func (d *Driver) Fill(ctx context.Context, loc browser.Locator, text string) error {
	d.record("fill %s %s", loc, text)
	el, err := d.visible(loc)
	if err != nil {
		return err
	}
	el.Value = text
	return nil
}

func (d *Driver) Text(ctx context.Context, loc browser.Locator) (string, error) {
	d.record("text %s", loc)
	el, err := d.visible(loc)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (d *Driver) Attribute(ctx context.Context, loc browser.Locator, name string) (string, error) {
	d.record("attribute %s %s", loc, name)
	el, err := d.visible(loc)
	if err != nil {
		return "", err
	}
	if name == "value" {
		return el.Value, nil
	}
	return el.Attributes[name], nil
}

func (d *Driver) IsVisible(ctx context.Context, loc browser.Locator) (bool, error) {
	d.record("visible %s", loc)
	el := d.Element(loc)
	return el != nil && el.Visible, nil
}

func (d *Driver) Hover(ctx context.Context, loc browser.Locator) error {
	d.record("hover %s", loc)
	_, err := d.visible(loc)
	return err
}

func (d *Driver) ScrollTo(ctx context.Context, loc browser.Locator) error {
	d.record("scroll %s", loc)
	_, err := d.visible(loc)
	return err
}

func (d *Driver) Press(ctx context.Context, loc browser.Locator, key string) error {
	d.record("press %s %s", loc, key)
	_, err := d.visible(loc)
	return err
}

func (d *Driver) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	d.record("evaluate %s", script)
	return d.EvalResult, nil
}

func (d *Driver) Title(ctx context.Context) (string, error) {
	return d.PageTitle, nil
}

func (d *Driver) URL() string {
	return d.CurrentURL
}

func (d *Driver) Reload(ctx context.Context) error {
	d.record("reload")
	return nil
}

func (d *Driver) Back(ctx context.Context) error {
	d.record("back")
	return nil
}

func (d *Driver) Forward(ctx context.Context) error {
	d.record("forward")
	return nil
}

func (d *Driver) SetTimeouts(implicitWait, pageLoad time.Duration) {
	d.ImplicitWait = implicitWait
	d.PageLoad = pageLoad
}

func (d *Driver) SetWindowSize(width, height int) error {
	d.Width, d.Height = width, height
	return nil
}

// SaveScreenshot пишет пустой PNG-файл, чтобы тесты могли проверить путь.
func (d *Driver) SaveScreenshot(path string) error {
	d.record("screenshot %s", path)
	if d.ScreenshotPanic != nil {
		panic(d.ScreenshotPanic)
	}
	if d.ScreenshotErr != nil {
		return d.ScreenshotErr
	}
	if err := os.WriteFile(path, []byte("\x89PNG"), 0o644); err != nil {
		return err
	}
	d.Screenshots = append(d.Screenshots, path)
	return nil
}

func (d *Driver) Quit() error {
	d.record("quit")
	d.QuitCount++
	return d.QuitErr
}

// Launcher отдает заранее подготовленные драйверы и запоминает опции запуска.
type Launcher struct {
	mu       sync.Mutex
	Launched []browser.LaunchOptions
	Err      error
	// New создает драйвер для очередного запуска, по умолчанию NewDriver.
	New     func() *Driver
	Drivers []*Driver
}

func (l *Launcher) Launch(ctx context.Context, opts browser.LaunchOptions) (browser.Driver, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Err != nil {
		return nil, l.Err
	}
	l.Launched = append(l.Launched, opts)

	d := NewDriver()
	if l.New != nil {
		d = l.New()
	}
	l.Drivers = append(l.Drivers, d)
	return d, nil
}

// Last возвращает последний выданный драйвер.
func (l *Launcher) Last() *Driver {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.Drivers) == 0 {
		return nil
	}
	return l.Drivers[len(l.Drivers)-1]
}
