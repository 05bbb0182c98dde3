// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

const accountColumns = "id, username, password_hash, phone_number, weight_goal, created_at"

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		a     domain.Account
		phone sql.NullString
		goal  sql.NullFloat64
	)
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &phone, &goal, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if phone.Valid {
		a.Phone = &phone.String
	}
	if goal.Valid {
		a.Goal = &goal.Float64
	}
	return &a, nil
}

// AccountByUsername retrieves an account by username.
func (d *DB) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE username = $1",
		username,
	))
}

// AccountByID retrieves an account by ID.
func (d *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id = $1",
		id,
	))
}

// CreateAccount creates a new account.
func (d *DB) CreateAccount(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, err := scanAccount(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES ($1, $2, $3) RETURNING "+accountColumns,
		username, passwordHash, time.Now(),
	))
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

// UpdateGoal sets the account's weight goal.
func (d *DB) UpdateGoal(ctx context.Context, id int64, goal float64) error {
	return d.updateAccount(ctx, "UPDATE users SET weight_goal = $1 WHERE id = $2", goal, id)
}

// UpdatePhone sets the account's phone number.
func (d *DB) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return d.updateAccount(ctx, "UPDATE users SET phone_number = $1 WHERE id = $2", phone, id)
}

func (d *DB) updateAccount(ctx context.Context, query string, value any, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.sql.ExecContext(ctx, query, value, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SessionRepo implements session repository operations on DB.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo wraps a DB as a SessionRepository.
func NewSessionRepo(db *DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token, expires_at, created_at) VALUES ($1, $2, $3, $4)",
		accountID, token, expiresAt, time.Now(),
	)
	return mapError(err)
}

// GetByToken retrieves a session by token.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = $1",
		token,
	).Scan(&s.Token, &s.AccountID, &s.ExpiresAt, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = $1", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < $1", time.Now())
	return err
}
