package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Dialect selects the SQL flavor a repository speaks.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps a configured driver name onto a Dialect.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(strings.TrimSpace(driver))); d {
	case DialectSQLite, DialectPostgres:
		return d, nil
	default:
		return "", fmt.Errorf("parse dialect: unsupported driver %q", driver)
	}
}

// rebind rewrites ? placeholders to $n for postgres.
func (d Dialect) rebind(q string) string {
	if d != DialectPostgres {
		return q
	}

	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func (d Dialect) schema() []string {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	createdAt := "created_at TEXT NOT NULL"
	floatType := "REAL"
	if d == DialectPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
		createdAt = "created_at TIMESTAMPTZ NOT NULL"
		floatType = "DOUBLE PRECISION"
	}

	return []string{
		`
	CREATE TABLE IF NOT EXISTS comparisons (
		` + idColumn + `,
		` + createdAt + `,
		best TEXT NOT NULL DEFAULT ''
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS comparison_details (
		comparison_id BIGINT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		distance_km ` + floatType + ` NOT NULL,
		duration_min ` + floatType + ` NOT NULL,
		PRIMARY KEY (comparison_id, position)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS comparison_summaries (
		comparison_id BIGINT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		destination TEXT NOT NULL,
		total_distance_km ` + floatType + ` NOT NULL,
		total_duration_min ` + floatType + ` NOT NULL,
		PRIMARY KEY (comparison_id, position)
	);
	`,
		`
	CREATE TABLE IF NOT EXISTS comparison_errors (
		comparison_id BIGINT NOT NULL REFERENCES comparisons(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		destination TEXT NOT NULL,
		message TEXT NOT NULL,
		PRIMARY KEY (comparison_id, position)
	);
	`,
	}
}

// InitSchema creates the comparison history tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range dialect.schema() {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
