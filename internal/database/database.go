package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Now is the SQL expression every timestamp column is written with.
const Now = "strftime('%Y-%m-%d %H:%M:%f','now')"

const defaultMaxOpenConns = 4

type Database struct {
	DB   *gorm.DB
	Path string
}

type options struct {
	logger       *zap.Logger
	logQueries   bool
	maxOpenConns int
}

// Option configures NewDatabase.
type Option func(*options)

// WithLogger routes gorm's logger through zap.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithQueryLogging logs every statement at info level.
func WithQueryLogging(enabled bool) Option {
	return func(o *options) { o.logQueries = enabled }
}

func WithMaxOpenConns(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxOpenConns = n
		}
	}
}

// NewDatabase opens (creating if needed) the SQLite file at dbPath and applies
// pending migrations.
func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logger: zap.NewNop(), maxOpenConns: defaultMaxOpenConns}
	for _, opt := range opts {
		opt(&o)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: newGormLogger(o.logger, o.logQueries),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(o.maxOpenConns)

	database := &Database{DB: db, Path: dbPath}

	applied, err := database.Migrate(context.Background())
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	for _, version := range applied {
		o.logger.Info("applied migration", zap.String("version", version))
	}

	o.logger.Info("database initialized", zap.String("path", dbPath))

	return database, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks connectivity with the pool.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// dsn takes the write lock at BEGIN so read-then-write transactions wait on
// the busy timeout instead of failing to upgrade their lock.
func dsn(path string) string {
	return path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate"
}

// zapWriter adapts zap to gorm's logger.Writer.
type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}

func newGormLogger(l *zap.Logger, logQueries bool) logger.Interface {
	level := logger.Silent
	if logQueries {
		level = logger.Info
	}
	return logger.New(zapWriter{sugar: l.Named("gorm").Sugar()}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
