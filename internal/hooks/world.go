package hooks

import (
	"context"
	"time"

	"uiTest/internal/browser"
	"uiTest/internal/fixtures"
	"uiTest/internal/pages"
)

// World хранит состояние сценария, доступное шагам через context.
type World struct {
	Handle    *browser.Handle
	Data      *fixtures.Store
	BaseURL   string
	Scenario  Scenario
	StartedAt time.Time
	Page      *pages.Base

	// Values передает произвольные данные между шагами.
	Values map[string]any
}

type worldKey struct{}

func withWorld(ctx context.Context, w *World) context.Context {
	return context.WithValue(ctx, worldKey{}, w)
}

// WorldFrom достает World текущего сценария.
func WorldFrom(ctx context.Context) (*World, bool) {
	w, ok := ctx.Value(worldKey{}).(*World)
	return w, ok && w != nil
}

func (w *World) Driver() browser.Driver {
	return w.Handle.Driver()
}
