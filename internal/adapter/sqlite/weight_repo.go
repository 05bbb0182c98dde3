package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"weighttrack/internal/domain"
)

func orderBy(key domain.SortKey) string {
	switch key {
	case domain.DateOldest:
		return "entry_date ASC, id ASC"
	case domain.WeightHighest:
		return "weight DESC, id DESC"
	case domain.WeightLowest:
		return "weight ASC, id ASC"
	default:
		return "entry_date DESC, id DESC"
	}
}

const entryColumns = "id, entry_date, weight, created_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner, accountID int64) (domain.WeightEntry, error) {
	e := domain.WeightEntry{AccountID: accountID}
	var created int64
	if err := s.Scan(&e.ID, &e.Date, &e.Weight, &created); err != nil {
		return e, err
	}
	e.CreatedAt = fromUnixMilli(created)
	return e, nil
}

// AddWeightEntry inserts a new weight entry.
func (d *DB) AddWeightEntry(ctx context.Context, accountID int64, date string, weight float64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO weights (user_id, entry_date, weight, created_at) VALUES (?, ?, ?, ?)",
		accountID, date, weight, unixMilli(time.Now()))
	if err != nil {
		return 0, mapError(err)
	}
	return res.LastInsertId()
}

// MostRecentWeightEntry returns the entry with the latest date for an account.
func (d *DB) MostRecentWeightEntry(ctx context.Context, accountID int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM weights WHERE user_id = ? ORDER BY "+orderBy(domain.DateNewest)+" LIMIT 1",
		accountID)
	e, err := scanEntry(row, accountID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListWeightEntries returns every entry of an account in the order named by key.
func (d *DB) ListWeightEntries(ctx context.Context, accountID int64, key domain.SortKey) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM weights WHERE user_id = ? ORDER BY "+orderBy(key), accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows, accountID)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// DeleteWeightEntries removes the listed entries of an account in one statement.
func (d *DB) DeleteWeightEntries(ctx context.Context, accountID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, 0, len(ids)+1)
	args = append(args, accountID)
	for _, id := range ids {
		args = append(args, id)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")

	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM weights WHERE user_id = ? AND id IN ("+placeholders+")", args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
