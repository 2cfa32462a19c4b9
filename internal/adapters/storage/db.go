// Package storage implements the collection store on top of gorm.
// All three collections share one table partitioned by collection name;
// a record's payload is its JSON encoding.
package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Supported drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// ErrUnknownDriver is returned by Open for a driver other than sqlite or postgres.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Limits caps the encoded payload size per collection. Zero disables the cap.
type Limits struct {
	Users    int
	Quotes   int
	Comments int
}

// Options configures Open.
type Options struct {
	Driver string
	// Path is the sqlite database file. ":memory:" keeps everything in process.
	Path string
	// DSN is the postgres connection string.
	DSN    string
	Limits Limits
	Logger *slog.Logger
}

func dialector(opts Options) (gorm.Dialector, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		if opts.Path == "" {
			return nil, errors.New("sqlite path is required")
		}

		return sqlite.Open(opts.Path), nil
	case DriverPostgres:
		if opts.DSN == "" {
			return nil, errors.New("postgres dsn is required")
		}

		return postgres.Open(opts.DSN), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}

// Open connects to the configured database, migrates the record table and returns the store.
func Open(opts Options) (*Store, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	dial, err := dialector(opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: gormlogger.NewSlogLogger(logger, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", dial.Name(), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting connection pool: %w", err)
	}

	if dial.Name() == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating records: %w", err)
	}

	logger.Info("storage initialized",
		slog.String("driver", dial.Name()),
		slog.String("path", opts.Path),
	)

	return &Store{db: db, driver: dial.Name(), limits: opts.Limits}, nil
}
