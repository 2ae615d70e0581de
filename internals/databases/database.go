package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/shaunchuang/DtxEx/internals/configs"
)

// ConnectDB opens the configured database.
func ConnectDB(cfg configs.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("🔌 connecting to database", zap.String("driver", cfg.Driver))

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         configs.NewGormLogger(log, cfg),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Driver, err)
	}
	if cfg.Driver == "sqlite" {
		// sqlite serialises writers; one connection keeps transactions from
		// tripping over "database is locked"
		cfg.MaxOpenConns, cfg.MaxIdleConns = 1, 1
	}
	if err := TunePool(db, cfg); err != nil {
		return nil, err
	}

	log.Info("✅ DB connected")
	return db, nil
}

func dialectorFor(cfg configs.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.New(postgres.Config{
			DSN:                  cfg.PostgresDSN(),
			PreferSimpleProtocol: true,
		}), nil
	case "sqlite":
		return sqlite.Open(SQLiteDSN(cfg.SQLitePath)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// SQLiteDSN enables foreign keys, which the cascades depend on.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_foreign_keys=on&_busy_timeout=5000"
}

// OpenSQLite opens a sqlite database with the same gorm settings as ConnectDB.
func OpenSQLite(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         configs.NewGormLogger(log, configs.DatabaseConfig{LogLevel: "silent"}).LogMode(gormLogger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func TunePool(db *gorm.DB, cfg configs.DatabaseConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("pool tune: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return nil
}

// WarmUpQueries fills the pool in the background once the server is up.
func WarmUpQueries(db *gorm.DB, log *zap.Logger) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := Ping(ctx, db); err != nil {
			log.Warn("warm-up ping failed", zap.Error(err))
		}
	}()
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
