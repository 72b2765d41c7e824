package database

import (
	"fmt"
	"time"

	"kpi-api/internal/config"
	"kpi-api/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// пауза между попытками подключения при старте
var retryDelay = 2 * time.Second

// Open подключается к Postgres. Повторы подключения только здесь, при старте;
// запросы потом не повторяются
func Open(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	return open(postgres.Open(cfg.PostgresDSN()), cfg, log)
}

func open(dialector gorm.Dialector, cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var (
		db  *gorm.DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		log.Info("trying to connect to DB", zap.Int("attempt", i), zap.Int("max_attempts", attempts))

		db, err = gorm.Open(dialector, &gorm.Config{Logger: NewGormLogger(log)})
		if err == nil {
			log.Info("connected to DB successfully")
			break
		}

		log.Warn("failed to connect to DB", zap.Error(err))
		if i < attempts {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("connect to db after %d attempts: %w", attempts, err)
	}

	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("schema migrated")
	}
	return db, nil
}

// ConfigurePool задаёт лимиты пула, лишние запросы ждут в очереди database/sql
func ConfigurePool(db *gorm.DB, cfg config.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.MaxOpenConns)
	}
	if cfg.IdleTimeout > 0 {
		sqlDB.SetConnMaxIdleTime(cfg.IdleTimeout)
	}
	return nil
}

// таблицы ведутся снаружи: создаём только отсутствующие, существующие не трогаем
func Migrate(db *gorm.DB) error {
	m := db.Migrator()
	for _, model := range []any{&models.User{}, &models.Round{}} {
		if m.HasTable(model) {
			continue
		}
		if err := m.CreateTable(model); err != nil {
			return err
		}
	}
	return nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// логи gorm идут через zap
func NewGormLogger(log *zap.Logger) gormlogger.Interface {
	return gormlogger.New(
		zap.NewStdLog(log.Named("gorm")),
		gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}
