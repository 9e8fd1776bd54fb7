// Package database is the tool's connection layer. It opens the
// configured database through gorm (pgx-backed for PostgreSQL, file
// driver for SQLite), runs the connection check battery, and performs
// schema initialization via auto-migration.
package database

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mmr-tortoise/envfix/internal/dsn"
	"github.com/mmr-tortoise/envfix/internal/model"
)

// connectTimeout bounds the initial reachability ping. Hosted databases
// that take longer than this are indistinguishable from unreachable ones
// for diagnostic purposes.
const connectTimeout = 10 * time.Second

// Engine wraps a gorm connection opened from a parsed DATABASE_URL.
type Engine struct {
	db   *gorm.DB
	info *dsn.Info
}

// Open connects to the database addressed by info and verifies
// reachability with a bounded ping. gorm's own SQL logging is silenced;
// diagnostics go through logrus at debug level instead.
func Open(ctx context.Context, info *dsn.Info) (*Engine, error) {
	var dialector gorm.Dialector
	switch info.Scheme {
	case model.SchemePostgres:
		dialector = postgres.Open(info.Raw)
	case model.SchemeSQLite:
		dialector = sqlite.Open(info.SQLiteFile())
	default:
		return nil, model.NewCLIError(model.ExitEnvError,
			fmt.Sprintf("unsupported database scheme %q", info.Scheme))
	}

	log.WithField("scheme", info.Scheme.String()).Debug("opening database connection")

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, model.WrapCLIError(model.ExitDatabaseUnreachable,
			"failed to open database", err)
	}

	e := &Engine{db: db, info: info}
	if err := e.Ping(ctx); err != nil {
		_ = e.Close()
		return nil, err
	}

	log.Debug("database connection established")
	return e, nil
}

// Ping verifies the connection is alive within the connect timeout.
func (e *Engine) Ping(ctx context.Context) error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return model.WrapCLIError(model.ExitDatabaseUnreachable,
			"failed to access connection pool", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		return model.WrapCLIError(model.ExitDatabaseUnreachable,
			"database is not reachable", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (e *Engine) Close() error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Scheme returns the engine flavor this connection addresses.
func (e *Engine) Scheme() model.Scheme {
	return e.info.Scheme
}

// Migrate creates or updates the application tables. Existing tables
// are altered in place by gorm's AutoMigrate; data is preserved.
func (e *Engine) Migrate() error {
	log.WithField("tables", len(model.SchemaModels())).Debug("running auto-migration")
	if err := e.db.AutoMigrate(model.SchemaModels()...); err != nil {
		return model.WrapCLIError(model.ExitMigrationFailed,
			"schema migration failed", err)
	}
	return nil
}

// Tables returns the user tables currently present, with column counts.
func (e *Engine) Tables() ([]model.TableInfo, error) {
	switch e.info.Scheme {
	case model.SchemePostgres:
		return e.postgresTables()
	case model.SchemeSQLite:
		return e.sqliteTables()
	}
	return nil, fmt.Errorf("unsupported scheme %q", e.info.Scheme)
}

func (e *Engine) postgresTables() ([]model.TableInfo, error) {
	var tables []model.TableInfo
	err := e.db.Raw(`
		SELECT t.table_name AS name,
		       (SELECT COUNT(*)
		        FROM information_schema.columns c
		        WHERE c.table_schema = 'public'
		          AND c.table_name = t.table_name) AS column_count
		FROM information_schema.tables t
		WHERE t.table_schema = 'public'
		ORDER BY t.table_name`).Scan(&tables).Error
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	return tables, nil
}

func (e *Engine) sqliteTables() ([]model.TableInfo, error) {
	var names []string
	err := e.db.Raw(`
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`).Scan(&names).Error
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}

	tables := make([]model.TableInfo, 0, len(names))
	for _, name := range names {
		var count int
		if err := e.db.Raw(`SELECT COUNT(*) FROM pragma_table_info(?)`, name).Scan(&count).Error; err != nil {
			return nil, fmt.Errorf("inspecting table %s: %w", name, err)
		}
		tables = append(tables, model.TableInfo{Name: name, ColumnCount: count})
	}
	return tables, nil
}
