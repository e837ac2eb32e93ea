package ui

import (
	"fmt"
	"io"
)

// PrintBanner выводит заголовок перед прогоном
func PrintBanner(w io.Writer, browser, baseURL, features string) {
	fmt.Fprintln(w, ColorBold+IconGlobe+" uitest"+ColorReset)
	fmt.Fprintln(w, ColorGray+"BDD-прогон UI тестов через Playwright"+ColorReset)
	fmt.Fprintf(w, ColorGray+"Браузер: %s, сайт: %s, фичи: %s"+ColorReset+"\n\n", browser, baseURL, features)
}
