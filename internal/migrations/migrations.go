// Package migrations накатывает схему истории прогонов на postgres.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"uiTest/internal/config"
	"uiTest/internal/logger"
)

//go:embed sql/*.sql
var files embed.FS

// Run применяет миграции. Для sqlite и none ничего не делает:
// там схема создается через AutoMigrate или не нужна вовсе.
func Run(cfg *config.Cfg, log *logger.Zap) error {
	if cfg.Database.Driver != "postgres" {
		log.Debug("Миграции пропущены", zap.String("driver", cfg.Database.Driver))
		return nil
	}

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("открытие БД: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("проверка соединения: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("драйвер миграций: %w", err)
	}

	m, err := newMigrate(cfg.Database.MigrationsPath, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("применение миграций: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("версия схемы: %w", err)
	}
	log.Info("Миграции применены", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// newMigrate берет миграции из sourceURL, при пустом используются встроенные.
func newMigrate(sourceURL string, driver database.Driver) (*migrate.Migrate, error) {
	if sourceURL != "" {
		m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
		if err != nil {
			return nil, fmt.Errorf("источник миграций %s: %w", sourceURL, err)
		}
		return m, nil
	}

	src, err := Source()
	if err != nil {
		return nil, err
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("инициализация миграций: %w", err)
	}
	return m, nil
}

// Source отдает встроенные миграции как источник golang-migrate.
func Source() (source.Driver, error) {
	d, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("встроенные миграции: %w", err)
	}
	return d, nil
}
