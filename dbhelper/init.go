package dbhelper

import (
	"fmt"
	"time"

	"atelierapi/config"
	"atelierapi/store"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB opens the configured database and migrates the record table. The
// default is an embedded sqlite file next to the process.
func SetupDB(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case config.DriverPostgres:
		dialector = postgres.Open(dsn)
	case config.DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("dbhelper: unsupported driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("dbhelper: open %s: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if driver == config.DriverSQLite {
		// one writer; sqlite serializes anyway
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetMaxOpenConns(10)
		sqlDB.SetConnMaxLifetime(time.Minute * 5)
	}

	if err := Migrate(db, &store.Record{}); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// SetupTestDB returns a fresh in-memory sqlite database.
func SetupTestDB() *gorm.DB {
	db, err := SetupDB(config.DriverSQLite, ":memory:")
	if err != nil {
		panic(err)
	}
	return db
}
