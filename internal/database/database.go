package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"uiTest/internal/config"
	"uiTest/internal/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNone     = "none"
)

// ErrDisabled возвращается, когда история прогонов выключена.
var ErrDisabled = errors.New("история прогонов отключена")

type DB struct {
	*gorm.DB
	Driver string
}

// New открывает хранилище истории. Для sqlite схема создается сразу,
// для postgres ее накатывает migrations.Run.
func New(cfg *config.Cfg, log *logger.Zap) (*DB, error) {
	dbCfg := cfg.Database

	var dialector gorm.Dialector
	switch dbCfg.Driver {
	case DriverNone, "":
		return nil, ErrDisabled
	case DriverSQLite:
		if err := ensureSQLiteDir(dbCfg.DSN); err != nil {
			return nil, err
		}
		dialector = sqlite.Open(dbCfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(dbCfg.DSN)
	default:
		return nil, fmt.Errorf("неподдерживаемый драйвер БД: %s", dbCfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("подключение к БД: %w", err)
	}

	if dbCfg.Driver == DriverSQLite {
		if err := db.AutoMigrate(&ScenarioRun{}); err != nil {
			return nil, fmt.Errorf("создание схемы: %w", err)
		}
	}

	log.Info("БД подключена", zap.String("driver", dbCfg.Driver))
	return &DB{DB: db, Driver: dbCfg.Driver}, nil
}

func ensureSQLiteDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, "file:") || strings.Contains(dsn, ":memory:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог %s: %w", dir, err)
	}
	return nil
}

func (d *DB) Close(log *logger.Zap) {
	if d == nil || d.DB == nil {
		return
	}
	sqlDB, err := d.DB.DB()
	if err != nil {
		log.Warn("Не удалось получить соединение БД", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Warn("Ошибка закрытия БД", zap.Error(err))
	}
}
