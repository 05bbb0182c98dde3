package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"weighttrack/internal/domain"
)

var (
	_ domain.AccountRepository = (*DB)(nil)
	_ domain.WeightRepository  = (*DB)(nil)
	_ domain.SessionRepository = (*SessionRepo)(nil)
)

const accountColumns = "id, username, password_hash, phone_number, weight_goal, created_at"

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var (
		a       domain.Account
		phone   sql.NullString
		goal    sql.NullFloat64
		created int64
	)
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &phone, &goal, &created)
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
	a.CreatedAt = fromUnixMilli(created)
	return &a, nil
}

// AccountByUsername retrieves an account by username.
func (d *DB) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE username = ?", username))
}

// AccountByID retrieves an account by ID.
func (d *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	return scanAccount(d.sql.QueryRowContext(ctx,
		"SELECT "+accountColumns+" FROM users WHERE id = ?", id))
}

// CreateAccount creates a new account.
func (d *DB) CreateAccount(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := time.Now().UTC()
	res, err := d.sql.ExecContext(ctx,
		"INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)",
		username, passwordHash, unixMilli(now))
	if err != nil {
		return nil, mapError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &domain.Account{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    fromUnixMilli(unixMilli(now)),
	}, nil
}

// UpdateGoal sets the account's weight goal.
func (d *DB) UpdateGoal(ctx context.Context, id int64, goal float64) error {
	return d.updateAccount(ctx, "UPDATE users SET weight_goal = ? WHERE id = ?", goal, id)
}

// UpdatePhone sets the account's phone number.
func (d *DB) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return d.updateAccount(ctx, "UPDATE users SET phone_number = ? WHERE id = ?", phone, id)
}

func (d *DB) updateAccount(ctx context.Context, query string, value any, id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	res, err := d.sql.ExecContext(ctx, query, value, id)
	if err != nil {
		return mapError(err)
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

// Create stores a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES (?, ?, ?, ?)",
		token, accountID, unixMilli(expiresAt), unixMilli(time.Now()))
	return mapError(err)
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	var s domain.Session
	var expires, created int64
	err := r.db.sql.QueryRowContext(ctx,
		"SELECT token, user_id, expires_at, created_at FROM sessions WHERE token = ?", token,
	).Scan(&s.Token, &s.AccountID, &expires, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	s.ExpiresAt = fromUnixMilli(expires)
	s.CreatedAt = fromUnixMilli(created)
	return &s, nil
}

// Delete deletes a session by token.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	_, err := r.db.sql.ExecContext(ctx, "DELETE FROM sessions WHERE expires_at < ?", unixMilli(time.Now()))
	return err
}
