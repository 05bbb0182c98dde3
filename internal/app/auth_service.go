// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"weighttrack/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

var (
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", domain.ErrNotFound)
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = fmt.Errorf("%w: session not found", domain.ErrNotAuthenticated)
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = fmt.Errorf("%w: session expired", domain.ErrNotAuthenticated)
	// ErrSSOConflict indicates that an SSO identity resolved to a password account.
	ErrSSOConflict = fmt.Errorf("%w: account is not managed by single sign-on", domain.ErrDuplicateUsername)
)

// AuthService handles registration, credential checks and session management.
type AuthService struct {
	accounts domain.AccountRepository
	sessions domain.SessionRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(accounts domain.AccountRepository, sessions domain.SessionRepository) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register validates the credentials and creates an account with a bcrypt
// hash of the password.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.accounts.CreateAccount(ctx, username, string(hash))
}

// Authenticate returns the account matching both username and password.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	}

	acct, err := s.accounts.AccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	// Accounts provisioned through SSO carry no password hash.
	if acct == nil || acct.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

// Login authenticates an account and creates a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	acct, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.startSession(ctx, acct.ID)
}

// LoginWithSSO creates a session for an identity provider subject. The
// account is named by issuer and subject, so it never collides with a
// registered username, and accounts holding a password are never attached.
func (s *AuthService) LoginWithSSO(ctx context.Context, issuer, subject string) (*domain.Session, error) {
	issuer = strings.TrimSpace(issuer)
	subject = strings.TrimSpace(subject)
	if issuer == "" || subject == "" {
		return nil, fmt.Errorf("%w: issuer and subject are required", domain.ErrInvalidInput)
	}
	username := domain.SSOUsername(issuer, subject)

	acct, err := s.accounts.AccountByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		// Auto-provision with an empty hash so password login stays closed.
		acct, err = s.accounts.CreateAccount(ctx, username, "")
		if errors.Is(err, domain.ErrDuplicateUsername) {
			// Lost a race with a concurrent callback for the same subject.
			acct, err = s.accounts.AccountByUsername(ctx, username)
		}
		if err != nil {
			return nil, err
		}
		if acct == nil {
			return nil, domain.ErrNotFound
		}
	}
	if acct.PasswordHash != "" {
		return nil, ErrSSOConflict
	}
	return s.startSession(ctx, acct.ID)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession resolves a session token, dropping it when it has expired
// or its account no longer exists.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	acct, err := s.accounts.AccountByID(ctx, session.AccountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// PurgeExpired removes every expired session.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) startSession(ctx context.Context, accountID int64) (*domain.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, accountID, token, session.ExpiresAt); err != nil {
		return nil, err
	}
	return session, nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
