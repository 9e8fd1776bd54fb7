package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/mmr-tortoise/envfix/internal/model"
)

// versionDisplayLimit truncates very long server version banners
// (hosted PostgreSQL reports compiler and platform details).
const versionDisplayLimit = 80

// RunChecks executes the connection check battery and returns a report
// with one step per probe. The battery keeps going after a failed step
// so the report shows everything that is wrong, not just the first hit.
func (e *Engine) RunChecks(ctx context.Context) *model.CheckReport {
	report := &model.CheckReport{
		MaskedURL: e.info.Masked(),
		Scheme:    e.info.Scheme,
		StartedAt: time.Now().UTC(),
	}

	steps := []struct {
		name string
		run  func(context.Context) (string, error)
	}{
		{"Database Version", e.checkVersion},
		{"Current Database", e.checkCurrentDatabase},
		{"Server Time", e.checkServerTime},
		{"Basic Query", e.checkArithmetic},
		{"Existing Tables", e.checkTableInventory},
		{"Connected User", e.checkCurrentUser},
		{"Write Permissions", e.checkWritePermissions},
	}

	for _, step := range steps {
		detail, err := step.run(ctx)
		if err != nil {
			log.WithField("step", step.name).WithError(err).Debug("check step failed")
		}
		report.AddStep(step.name, detail, err)
	}
	return report
}

func (e *Engine) checkVersion(ctx context.Context) (string, error) {
	var version string
	query := `SELECT version()`
	if e.info.Scheme == model.SchemeSQLite {
		query = `SELECT 'SQLite ' || sqlite_version()`
	}
	if err := e.db.WithContext(ctx).Raw(query).Scan(&version).Error; err != nil {
		return "", err
	}
	if len(version) > versionDisplayLimit {
		version = version[:versionDisplayLimit] + "..."
	}
	return version, nil
}

func (e *Engine) checkCurrentDatabase(ctx context.Context) (string, error) {
	if e.info.Scheme == model.SchemeSQLite {
		return e.info.SQLiteFile(), nil
	}
	var name string
	if err := e.db.WithContext(ctx).Raw(`SELECT current_database()`).Scan(&name).Error; err != nil {
		return "", err
	}
	return name, nil
}

func (e *Engine) checkServerTime(ctx context.Context) (string, error) {
	query := `SELECT NOW()::text`
	if e.info.Scheme == model.SchemeSQLite {
		query = `SELECT datetime('now')`
	}
	var now string
	if err := e.db.WithContext(ctx).Raw(query).Scan(&now).Error; err != nil {
		return "", err
	}
	return now, nil
}

func (e *Engine) checkArithmetic(ctx context.Context) (string, error) {
	var answer int
	if err := e.db.WithContext(ctx).Raw(`SELECT 42`).Scan(&answer).Error; err != nil {
		return "", err
	}
	if answer != 42 {
		return "", fmt.Errorf("expected 42, got %d", answer)
	}
	return "42", nil
}

func (e *Engine) checkTableInventory(ctx context.Context) (string, error) {
	tables, err := e.Tables()
	if err != nil {
		return "", err
	}
	if len(tables) == 0 {
		return "no tables found (database is empty)", nil
	}

	parts := make([]string, 0, len(tables))
	for _, t := range tables {
		parts = append(parts, fmt.Sprintf("%s (%d columns)", t.Name, t.ColumnCount))
	}
	return fmt.Sprintf("%d table(s): %s", len(tables), strings.Join(parts, ", ")), nil
}

func (e *Engine) checkCurrentUser(ctx context.Context) (string, error) {
	if e.info.Scheme == model.SchemeSQLite {
		return "n/a (file database)", nil
	}
	var user string
	if err := e.db.WithContext(ctx).Raw(`SELECT current_user`).Scan(&user).Error; err != nil {
		return "", err
	}
	return user, nil
}

// checkWritePermissions creates a temporary table, round-trips one row,
// and drops it. On PostgreSQL TEMP tables live in the session; on SQLite
// TEMP tables live in a separate temp database, so neither engine leaves
// anything behind even if the drop fails.
func (e *Engine) checkWritePermissions(ctx context.Context) (string, error) {
	db := e.db.WithContext(ctx)

	if err := db.Exec(`CREATE TEMP TABLE envfix_write_check (test_value TEXT)`).Error; err != nil {
		return "", fmt.Errorf("create temp table: %w", err)
	}
	defer db.Exec(`DROP TABLE IF EXISTS envfix_write_check`)

	const probe = "write check ok"
	if err := db.Exec(`INSERT INTO envfix_write_check (test_value) VALUES (?)`, probe).Error; err != nil {
		return "", fmt.Errorf("insert: %w", err)
	}

	var got string
	if err := db.Raw(`SELECT test_value FROM envfix_write_check`).Scan(&got).Error; err != nil {
		return "", fmt.Errorf("read back: %w", err)
	}
	if got != probe {
		return "", fmt.Errorf("read back %q, expected %q", got, probe)
	}
	return "temp table created, written, read, and dropped", nil
}
