package browser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// By задает способ поиска элемента на странице.
type By int

const (
	ByID By = iota
	ByCSS
	ByXPath
	ByName
	ByText
	ByTestID
)

func (b By) String() string {
	switch b {
	case ByID:
		return "id"
	case ByCSS:
		return "css"
	case ByXPath:
		return "xpath"
	case ByName:
		return "name"
	case ByText:
		return "text"
	case ByTestID:
		return "test-id"
	default:
		return "unknown"
	}
}

// Locator представляет пару (стратегия, селектор), передается по значению.
type Locator struct {
	By    By
	Value string
}

func ID(v string) Locator     { return Locator{By: ByID, Value: v} }
func CSS(v string) Locator    { return Locator{By: ByCSS, Value: v} }
func XPath(v string) Locator  { return Locator{By: ByXPath, Value: v} }
func Name(v string) Locator   { return Locator{By: ByName, Value: v} }
func Text(v string) Locator   { return Locator{By: ByText, Value: v} }
func TestID(v string) Locator { return Locator{By: ByTestID, Value: v} }

func (l Locator) String() string {
	return l.By.String() + "=" + l.Value
}

// Selector переводит локатор в селектор Playwright.
func (l Locator) Selector() string {
	switch l.By {
	case ByID:
		return "id=" + l.Value
	case ByCSS:
		sel, _ := NormalizeSelector(l.Value)
		return "css=" + sel
	case ByXPath:
		return "xpath=" + l.Value
	case ByName:
		return "css=[name=" + strconv.Quote(l.Value) + "]"
	case ByText:
		return "text=" + l.Value
	case ByTestID:
		return "data-testid=" + l.Value
	default:
		return l.Value
	}
}

// Validate отсекает пустые селекторы и URL, переданные вместо селектора.
func (l Locator) Validate() error {
	v := strings.TrimSpace(l.Value)
	if v == "" {
		return fmt.Errorf("селектор не может быть пустым")
	}
	if l.By < ByID || l.By > ByTestID {
		return fmt.Errorf("неизвестная стратегия поиска %d", int(l.By))
	}
	if l.By != ByText && strings.Contains(v, "://") {
		return fmt.Errorf("селектор не может быть URL: %s", l.Value)
	}
	return nil
}

var (
	containsDouble = regexp.MustCompile(`:contains\("([^"]*)"\)`)
	containsSingle = regexp.MustCompile(`:contains\('([^']*)'\)`)
)

// NormalizeSelector заменяет jQuery :contains() на :has-text() Playwright.
func NormalizeSelector(selector string) (string, bool) {
	if !strings.Contains(selector, ":contains(") {
		return selector, false
	}

	normalized := containsDouble.ReplaceAllString(selector, `:has-text("$1")`)
	normalized = containsSingle.ReplaceAllString(normalized, `:has-text('$1')`)

	return normalized, normalized != selector
}
