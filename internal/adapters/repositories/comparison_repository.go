package repositories

import (
	"context"
	"database/sql"
	"distance-compare-service/internal/domain"
	"distance-compare-service/internal/platform/obs"
	"distance-compare-service/internal/ports"
	"errors"
	"fmt"
	"time"
)

// SQLComparisonRepository stores comparison runs in SQLite or Postgres.
// Child rows keep their slice position so ranked order survives a round trip.
type SQLComparisonRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLComparisonRepository(db *sql.DB, dialect Dialect) *SQLComparisonRepository {
	return &SQLComparisonRepository{DB: db, Dialect: dialect}
}

// Persist a comparison with all of its rows and return its new id.
func (s *SQLComparisonRepository) SaveComparison(ctx context.Context, c *domain.Comparison) (_ int64, err error) {
	defer obs.Time(ctx, "comparisons.Save")(&err)

	if s.DB == nil {
		return 0, errors.New("comparison repository: DB is nil")
	}
	if c == nil {
		return 0, errors.New("save comparison: comparison is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("save comparison: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRowContext(ctx,
		s.Dialect.rebind(`INSERT INTO comparisons (created_at, best) VALUES (?, ?) RETURNING id;`),
		s.timeArg(c.CreatedAt), c.Best,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("save comparison: insert comparisons row: %w", err)
	}

	if err := s.insertDetails(ctx, tx, id, c.Details); err != nil {
		return 0, err
	}
	if err := s.insertSummaries(ctx, tx, id, c.Summaries); err != nil {
		return 0, err
	}
	if err := s.insertErrors(ctx, tx, id, c.Errors); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("save comparison: commit tx: %w", err)
	}

	return id, nil
}

func (s *SQLComparisonRepository) insertDetails(ctx context.Context, tx *sql.Tx, id int64, rows []domain.DetailRow) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO comparison_details (comparison_id, position, origin, destination, distance_km, duration_min)
	VALUES (?, ?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save comparison: prepare details: %w", err)
	}
	defer stmt.Close()

	for i, d := range rows {
		if _, err := stmt.ExecContext(ctx, id, i, d.Origin, d.Destination, d.DistanceKm, d.DurationMin); err != nil {
			return fmt.Errorf("save comparison: insert detail %q -> %q: %w", d.Origin, d.Destination, err)
		}
	}
	return nil
}

func (s *SQLComparisonRepository) insertSummaries(ctx context.Context, tx *sql.Tx, id int64, rows []domain.SummaryRow) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO comparison_summaries (comparison_id, position, destination, total_distance_km, total_duration_min)
	VALUES (?, ?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save comparison: prepare summaries: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		if _, err := stmt.ExecContext(ctx, id, i, r.Destination, r.TotalDistanceKm, r.TotalDurationMin); err != nil {
			return fmt.Errorf("save comparison: insert summary %q: %w", r.Destination, err)
		}
	}
	return nil
}

func (s *SQLComparisonRepository) insertErrors(ctx context.Context, tx *sql.Tx, id int64, rows []domain.DestinationError) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, s.Dialect.rebind(`
	INSERT INTO comparison_errors (comparison_id, position, destination, message)
	VALUES (?, ?, ?, ?);
	`))
	if err != nil {
		return fmt.Errorf("save comparison: prepare errors: %w", err)
	}
	defer stmt.Close()

	for i, e := range rows {
		if _, err := stmt.ExecContext(ctx, id, i, e.Destination, e.Message); err != nil {
			return fmt.Errorf("save comparison: insert error %q: %w", e.Destination, err)
		}
	}
	return nil
}

// Load one comparison with its rows. Missing ids wrap ports.ErrComparisonNotFound.
func (s *SQLComparisonRepository) GetComparison(ctx context.Context, id int64) (_ *domain.Comparison, err error) {
	defer obs.Time(ctx, "comparisons.Get")(&err)

	if s.DB == nil {
		return nil, errors.New("comparison repository: DB is nil")
	}

	c := &domain.Comparison{ID: id}
	var created timeScanner
	err = s.DB.QueryRowContext(ctx,
		s.Dialect.rebind(`SELECT created_at, best FROM comparisons WHERE id = ?;`), id,
	).Scan(&created, &c.Best)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get comparison id=%d: %w", id, ports.ErrComparisonNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get comparison id=%d: query comparisons table: %w", id, err)
	}
	c.CreatedAt = created.Time

	if c.Details, err = s.loadDetails(ctx, id); err != nil {
		return nil, err
	}
	if c.Summaries, err = s.loadSummaries(ctx, id); err != nil {
		return nil, err
	}
	if c.Errors, err = s.loadErrors(ctx, id); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *SQLComparisonRepository) loadDetails(ctx context.Context, id int64) ([]domain.DetailRow, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(`
	SELECT origin, destination, distance_km, duration_min
	FROM comparison_details
	WHERE comparison_id = ?
	ORDER BY position;
	`), id)
	if err != nil {
		return nil, fmt.Errorf("get comparison id=%d: query details: %w", id, err)
	}
	defer rows.Close()

	out := []domain.DetailRow{}
	for rows.Next() {
		var d domain.DetailRow
		if err := rows.Scan(&d.Origin, &d.Destination, &d.DistanceKm, &d.DurationMin); err != nil {
			return nil, fmt.Errorf("get comparison id=%d: scan detail: %w", id, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get comparison id=%d: detail iteration: %w", id, err)
	}
	return out, nil
}

func (s *SQLComparisonRepository) loadSummaries(ctx context.Context, id int64) ([]domain.SummaryRow, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(`
	SELECT destination, total_distance_km, total_duration_min
	FROM comparison_summaries
	WHERE comparison_id = ?
	ORDER BY position;
	`), id)
	if err != nil {
		return nil, fmt.Errorf("get comparison id=%d: query summaries: %w", id, err)
	}
	defer rows.Close()

	out := []domain.SummaryRow{}
	for rows.Next() {
		var r domain.SummaryRow
		if err := rows.Scan(&r.Destination, &r.TotalDistanceKm, &r.TotalDurationMin); err != nil {
			return nil, fmt.Errorf("get comparison id=%d: scan summary: %w", id, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get comparison id=%d: summary iteration: %w", id, err)
	}
	return out, nil
}

func (s *SQLComparisonRepository) loadErrors(ctx context.Context, id int64) ([]domain.DestinationError, error) {
	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(`
	SELECT destination, message
	FROM comparison_errors
	WHERE comparison_id = ?
	ORDER BY position;
	`), id)
	if err != nil {
		return nil, fmt.Errorf("get comparison id=%d: query errors: %w", id, err)
	}
	defer rows.Close()

	out := []domain.DestinationError{}
	for rows.Next() {
		var e domain.DestinationError
		if err := rows.Scan(&e.Destination, &e.Message); err != nil {
			return nil, fmt.Errorf("get comparison id=%d: scan error row: %w", id, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get comparison id=%d: error iteration: %w", id, err)
	}
	return out, nil
}

// List the most recent comparisons, newest first. Only ID, CreatedAt and Best are filled.
func (s *SQLComparisonRepository) ListComparisons(ctx context.Context, limit int) (_ []*domain.Comparison, err error) {
	defer obs.Time(ctx, "comparisons.List")(&err)

	if s.DB == nil {
		return nil, errors.New("comparison repository: DB is nil")
	}
	if limit <= 0 {
		return []*domain.Comparison{}, nil
	}

	rows, err := s.DB.QueryContext(ctx, s.Dialect.rebind(`
	SELECT id, created_at, best
	FROM comparisons
	ORDER BY id DESC
	LIMIT ?;
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("list comparisons: query comparisons table: %w", err)
	}
	defer rows.Close()

	out := make([]*domain.Comparison, 0, limit)
	for rows.Next() {
		c := &domain.Comparison{}
		var created timeScanner
		if err := rows.Scan(&c.ID, &created, &c.Best); err != nil {
			return nil, fmt.Errorf("list comparisons: scan row: %w", err)
		}
		c.CreatedAt = created.Time
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list comparisons: row iteration: %w", err)
	}

	return out, nil
}

// SQLite has no timestamp type; store RFC 3339 text there.
func (s *SQLComparisonRepository) timeArg(t time.Time) any {
	t = t.UTC()
	if s.Dialect == DialectSQLite {
		return t.Format(time.RFC3339Nano)
	}
	return t
}

// timeScanner accepts native timestamps as well as RFC 3339 text.
type timeScanner struct {
	Time time.Time
}

func (ts *timeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (ts *timeScanner) parse(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("scan timestamp %q: %w", s, err)
	}
	ts.Time = t.UTC()
	return nil
}
