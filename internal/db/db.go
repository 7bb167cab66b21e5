package db

import (
	"strings" // DSN parameters

	"storefront/internal/config" // Application configuration
	"storefront/internal/domain" // Importing domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM logger
)

// Driver names accepted in DB_DRIVER
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Open connects to the database selected by the configuration
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector // Dialect for the selected driver
	switch cfg.DBDriver {
	case DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN())
	case DriverSQLite:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBPath))
	default:
		return nil, errors.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	level := logger.Warn // Only slow queries and errors outside development
	if !cfg.IsProd {
		level = logger.Info
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // Map unique violations to gorm.ErrDuplicatedKey
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.DBDriver)
	}
	if cfg.DBDriver == DriverSQLite {
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, errors.Wrap(err, "sqlite pool")
		}
		sqlDB.SetMaxOpenConns(1) // Single writer, requests queue in the pool
	}
	return conn, nil
}

// SQLiteDSN adds a busy timeout and immediate write transactions to a SQLite path or URI
func SQLiteDSN(path string) string {
	sep := "?" // First query parameter
	if strings.Contains(path, "?") {
		sep = "&" // Path already carries parameters
	}
	return path + sep + "_busy_timeout=5000&_txlock=immediate"
}

// Models lists every persisted collection in migration order
func Models() []any {
	return []any{&domain.User{}, &domain.Product{}, &domain.Order{}, &domain.WalletHistory{}, &domain.StoreSettings{}}
}

// Migrate performs automatic migration for the database schema
func Migrate(conn *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	if err := conn.AutoMigrate(Models()...); err != nil {
		return errors.Wrap(err, "migrate schema")
	}
	return nil
}
