package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/umputun/logos/pkg/domain"
)

// healthRow is the db representation of domain.SourceHealth
type healthRow struct {
	Name         string       `db:"name"`
	LastFetched  sql.NullTime `db:"last_fetched"`
	LastSuccess  sql.NullTime `db:"last_success"`
	SuccessCount int          `db:"success_count"`
	ErrorCount   int          `db:"error_count"`
	LastError    string       `db:"last_error"`
	LastItems    int          `db:"last_items"`
}

// RecordSuccess bumps success counter of the source, stores item count and clears the last error
func (r *SourceRepository) RecordSuccess(ctx context.Context, name string, items int) error {
	ts := r.now().UTC()
	query := `
		INSERT INTO source_health (name, last_fetched, last_success, success_count, last_items)
		VALUES (?, ?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			last_fetched = excluded.last_fetched,
			last_success = excluded.last_success,
			success_count = source_health.success_count + 1,
			last_error = '',
			last_items = excluded.last_items
	`
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, name, ts, ts, items)
		return err
	})
	if err != nil {
		return fmt.Errorf("record success of %s: %w", name, err)
	}
	return nil
}

// RecordFailure bumps error counter of the source and stores the error message
func (r *SourceRepository) RecordFailure(ctx context.Context, name, errMsg string) error {
	ts := r.now().UTC()
	query := `
		INSERT INTO source_health (name, last_fetched, error_count, last_error)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(name) DO UPDATE SET
			last_fetched = excluded.last_fetched,
			error_count = source_health.error_count + 1,
			last_error = excluded.last_error
	`
	err := retryOnLock(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, name, ts, errMsg)
		return err
	})
	if err != nil {
		return fmt.Errorf("record failure of %s: %w", name, err)
	}
	return nil
}

// List returns health records of all sources seen so far, ordered by name
func (r *SourceRepository) List(ctx context.Context) ([]domain.SourceHealth, error) {
	var rows []healthRow
	if err := r.db.SelectContext(ctx, &rows, "SELECT * FROM source_health ORDER BY name"); err != nil {
		return nil, fmt.Errorf("list source health: %w", err)
	}
	res := make([]domain.SourceHealth, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.toDomain())
	}
	return res, nil
}

func (h healthRow) toDomain() domain.SourceHealth {
	res := domain.SourceHealth{
		Name:         h.Name,
		SuccessCount: h.SuccessCount,
		ErrorCount:   h.ErrorCount,
		LastError:    h.LastError,
		LastItems:    h.LastItems,
	}
	if h.LastFetched.Valid {
		t := h.LastFetched.Time
		res.LastFetched = &t
	}
	if h.LastSuccess.Valid {
		t := h.LastSuccess.Time
		res.LastSuccess = &t
	}
	return res
}
