// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"time"
)

// Account represents a registered user of the tracker.
type Account struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	Goal         *float64  `json:"goal,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Session is the authenticated context every account-scoped operation runs
// under. A nil session, or one without an account, is unauthenticated.
type Session struct {
	Token     string
	AccountID int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Authenticated reports whether s identifies an account.
func (s *Session) Authenticated() bool {
	return s != nil && s.AccountID > 0
}

// AccountRepository defines the port for account persistence operations.
// Lookups return (nil, nil) when no account matches.
type AccountRepository interface {
	CreateAccount(ctx context.Context, username, passwordHash string) (*Account, error)
	AccountByUsername(ctx context.Context, username string) (*Account, error)
	AccountByID(ctx context.Context, id int64) (*Account, error)
	UpdateGoal(ctx context.Context, id int64, goal float64) error
	UpdatePhone(ctx context.Context, id int64, phone string) error
}

// SessionRepository defines the port for session persistence operations.
type SessionRepository interface {
	Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	GetByToken(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
