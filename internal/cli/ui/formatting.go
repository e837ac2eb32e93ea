package ui

import (
	"fmt"
	"io"
)

// FormatStatus возвращает иконку, цвет и текст для статуса сценария
func FormatStatus(status string) (icon, color, text string) {
	switch status {
	case "passed":
		return IconCheckmark, ColorGreen, "пройден"
	case "failed":
		return IconCross, ColorRed, "упал"
	case "skipped":
		return IconSkip, ColorGray, "пропущен"
	case "undefined":
		return IconQuestion, ColorYellow, "нет шагов"
	case "pending":
		return IconClock, ColorYellow, "в работе"
	default:
		return IconClock, ColorYellow, status
	}
}

// KV печатает строку "ключ: значение" с подсвеченным ключом.
func KV(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  "+ColorCyan+"%-22s"+ColorReset+" %v\n", key+":", value)
}

func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ColorRed+IconCross+" "+format+ColorReset+"\n", args...)
}
