package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

var (
	ErrUnsupportedBrowser = errors.New("unsupported browser")
	ErrElementTimeout     = errors.New("element wait timed out")
	ErrScreenshot         = errors.New("screenshot capture failed")
)

// ActionError описывает неудачное действие над элементом страницы.
type ActionError struct {
	Action   string
	Selector string
	Err      error
}

func (e *ActionError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Action, e.Selector, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// IsTimeout сообщает, что ошибка вызвана истечением ожидания.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrElementTimeout)
}

func classifyError(action, selector string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		err = fmt.Errorf("%w: %w", ErrElementTimeout, err)
	}
	return &ActionError{Action: action, Selector: selector, Err: err}
}
