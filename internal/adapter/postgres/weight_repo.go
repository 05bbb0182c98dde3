package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"

	"github.com/lib/pq"
)

// orderBy maps a sort key to an ORDER BY clause. Paired id tie-breakers
// keep ascending and descending listings exact reverses of each other.
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

// AddWeightEntry inserts a new weight entry.
func (d *DB) AddWeightEntry(ctx context.Context, accountID int64, date string, weight float64) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weights(user_id, entry_date, weight, created_at) VALUES($1, $2, $3, $4) RETURNING id;",
		accountID, date, weight, time.Now().UTC(),
	).Scan(&id)
	if err != nil {
		return 0, mapError(err)
	}
	return id, nil
}

// MostRecentWeightEntry returns the entry with the latest date for an account.
func (d *DB) MostRecentWeightEntry(ctx context.Context, accountID int64) (*domain.WeightEntry, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT id, entry_date, weight, created_at FROM weights WHERE user_id=$1 ORDER BY "+orderBy(domain.DateNewest)+" LIMIT 1;",
		accountID,
	)

	e := domain.WeightEntry{AccountID: accountID}
	if err := row.Scan(&e.ID, &e.Date, &e.Weight, &e.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListWeightEntries returns every entry of an account in the order named by key.
func (d *DB) ListWeightEntries(ctx context.Context, accountID int64, key domain.SortKey) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, entry_date, weight, created_at FROM weights WHERE user_id=$1 ORDER BY "+orderBy(key)+";", accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WeightEntry, 0)
	for rows.Next() {
		e := domain.WeightEntry{AccountID: accountID}
		if err := rows.Scan(&e.ID, &e.Date, &e.Weight, &e.CreatedAt); err != nil {
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
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.sql.ExecContext(ctx, "DELETE FROM weights WHERE user_id=$1 AND id = ANY($2);", accountID, pq.Array(ids))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
