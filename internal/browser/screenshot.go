package browser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const timestampLayout = "20060102_150405"

// SanitizeName оставляет только буквы, цифры, '_', '-' и '.'.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '_', r == '-', r == '.':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ScreenshotFileName строит имя вида {name}_{YYYYMMDD_HHMMSS}.png.
func ScreenshotFileName(name string, now time.Time) string {
	name = SanitizeName(name)
	if name == "" {
		name = "screenshot"
	}
	return fmt.Sprintf("%s_%s.png", name, now.Format(timestampLayout))
}

// ScenarioScreenshotName строит базовое имя скриншота упавшего сценария.
func ScenarioScreenshotName(scenario string) string {
	return "failed_" + strings.ToLower(strings.ReplaceAll(scenario, " ", "_"))
}

// CaptureScreenshot сохраняет скриншот в dir и возвращает путь к файлу.
func CaptureScreenshot(d Driver, dir, name string, now time.Time) (string, error) {
	path := filepath.Join(dir, ScreenshotFileName(name, now))
	if err := d.SaveScreenshot(path); err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrScreenshot, path, err)
	}
	return path, nil
}
