package browser

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"uiTest/internal/config"
	"uiTest/internal/logger"
)

type State int

const (
	StateUninitialized State = iota
	StateActive
	StateReleased
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateActive:
		return "active"
	case StateReleased:
		return "released"
	default:
		return "unknown"
	}
}

// Handle представляет браузерную сессию одного сценария.
type Handle struct {
	mu     sync.Mutex
	state  State
	kind   string
	driver Driver
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Handle) Kind() string {
	return h.kind
}

// Driver возвращает сессию. Обращение к неактивному хэндлу считается ошибкой программиста и паникует.
func (h *Handle) Driver() Driver {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateActive {
		panic(fmt.Sprintf("browser: driver used in state %s", h.state))
	}
	return h.driver
}

type Manager struct {
	cfg      config.Browser
	launcher Launcher
	log      *logger.Zap
}

func NewManager(cfg config.Browser, launcher Launcher, log *logger.Zap) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		cfg:      cfg,
		launcher: launcher,
		log:      log,
	}
}

// Acquire запускает сессию. Пустой kind берется из настроек.
func (m *Manager) Acquire(ctx context.Context, kind string) (*Handle, error) {
	opts, err := BuildLaunchOptions(m.cfg, kind)
	if err != nil {
		return nil, err
	}

	m.log.Info("Запуск браузера",
		zap.String("browser", opts.Kind),
		zap.Bool("headless", opts.Headless),
		zap.Bool("managed", opts.Managed),
	)

	d, err := m.launcher.Launch(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("запуск %s: %w", opts.Kind, err)
	}

	if err := m.configure(d); err != nil {
		return nil, multierr.Append(fmt.Errorf("настройка %s: %w", opts.Kind, err), d.Quit())
	}

	return &Handle{state: StateActive, kind: opts.Kind, driver: d}, nil
}

func (m *Manager) configure(d Driver) error {
	d.SetTimeouts(m.cfg.ImplicitWait, m.cfg.PageLoadTimeout)

	if !m.cfg.Headless {
		return d.SetWindowSize(m.cfg.Window.Width, m.cfg.Window.Height)
	}
	return nil
}

// Release закрывает сессию. Для nil и уже закрытого хэндла ничего не делает.
func (m *Manager) Release(h *Handle) error {
	if h == nil {
		return nil
	}

	h.mu.Lock()
	if h.state != StateActive {
		h.mu.Unlock()
		return nil
	}
	h.state = StateReleased
	d := h.driver
	h.driver = nil
	h.mu.Unlock()

	if err := d.Quit(); err != nil {
		m.log.Warn("Ошибка закрытия браузера", zap.String("browser", h.kind), zap.Error(err))
		return err
	}
	m.log.Debug("Браузер закрыт", zap.String("browser", h.kind))
	return nil
}
