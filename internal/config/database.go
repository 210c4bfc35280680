package config

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DB متغیر برای دسترسی به دیتابیس
var DB *gorm.DB

// InitDB اتصال به دیتابیس را راه‌اندازی می‌کند
func InitDB(cfg *Config) {
	db, err := OpenDatabase(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	DB = db
	Logger.Info("Database connected", zap.String("driver", cfg.DBDriver))
}

// OpenDatabase opens a gorm connection for the given driver. Driver errors are
// translated into gorm's ErrDuplicatedKey and ErrForeignKeyViolated.
func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newGormLogger(),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer; a single connection also keeps an
		// in-memory database and its pragmas alive.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// CloseDB بستن اتصال دیتابیس
func CloseDB(db *gorm.DB) error {
	sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormWriter feeds gorm's log lines into zap.
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}

// newGormLogger logs slow queries and failed statements through the global
// logger. Lookups that find no row are an expected outcome and stay silent.
func newGormLogger() logger.Interface {
	l := Logger
	if l == nil {
		l = zap.NewNop()
	}
	return logger.New(gormWriter{log: l.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
