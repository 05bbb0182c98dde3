// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"weighttrack/internal/domain"
)

// DB implements an in-memory database storage.
type DB struct {
	mu       sync.Mutex
	accounts []*domain.Account
	weights  []domain.WeightEntry
	sessions map[string]*domain.Session

	accountIDCounter int64
	weightIDCounter  int64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		sessions: make(map[string]*domain.Session),
	}
}

// Close is a no-op; it lets DB stand in wherever a store is closed.
func (db *DB) Close() error { return nil }

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.AccountRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- AccountRepository ---

// CreateAccount creates a new account.
func (db *DB) CreateAccount(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return nil, domain.ErrDuplicateUsername
		}
	}

	db.accountIDCounter++
	a := &domain.Account{
		ID:           db.accountIDCounter,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	db.accounts = append(db.accounts, a)
	return cloneAccount(a), nil
}

// AccountByUsername retrieves an account by username.
func (db *DB) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, a := range db.accounts {
		if a.Username == username {
			return cloneAccount(a), nil
		}
	}
	return nil, nil
}

// AccountByID retrieves an account by ID.
func (db *DB) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if a := db.findAccount(id); a != nil {
		return cloneAccount(a), nil
	}
	return nil, nil
}

// UpdateGoal sets the account's weight goal.
func (db *DB) UpdateGoal(ctx context.Context, id int64, goal float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	a := db.findAccount(id)
	if a == nil {
		return domain.ErrNotFound
	}
	a.Goal = &goal
	return nil
}

// UpdatePhone sets the account's phone number.
func (db *DB) UpdatePhone(ctx context.Context, id int64, phone string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	a := db.findAccount(id)
	if a == nil {
		return domain.ErrNotFound
	}
	a.Phone = &phone
	return nil
}

// findAccount must be called with mu held.
func (db *DB) findAccount(id int64) *domain.Account {
	for _, a := range db.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Callers get copies so they cannot mutate stored goal/phone pointers.
func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	if a.Goal != nil {
		g := *a.Goal
		c.Goal = &g
	}
	if a.Phone != nil {
		p := *a.Phone
		c.Phone = &p
	}
	return &c
}

// --- WeightRepository ---

// AddWeightEntry adds a weight entry for an existing account.
func (db *DB) AddWeightEntry(ctx context.Context, accountID int64, date string, weight float64) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.findAccount(accountID) == nil {
		return 0, domain.ErrConstraintViolation
	}

	db.weightIDCounter++
	id := db.weightIDCounter

	db.weights = append(db.weights, domain.WeightEntry{
		ID:        id,
		AccountID: accountID,
		Date:      date,
		Weight:    weight,
		CreatedAt: time.Now().UTC(),
	})
	return id, nil
}

// MostRecentWeightEntry returns the entry with the latest date.
func (db *DB) MostRecentWeightEntry(ctx context.Context, accountID int64) (*domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var latest *domain.WeightEntry
	for i := range db.weights {
		w := &db.weights[i]
		if w.AccountID != accountID {
			continue
		}
		if latest == nil || compareDate(*w, *latest) > 0 {
			latest = w
		}
	}
	if latest == nil {
		return nil, nil
	}
	ret := *latest
	return &ret, nil
}

// ListWeightEntries lists the account's entries in the order named by key.
func (db *DB) ListWeightEntries(ctx context.Context, accountID int64, key domain.SortKey) ([]domain.WeightEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := make([]domain.WeightEntry, 0)
	for _, w := range db.weights {
		if w.AccountID == accountID {
			result = append(result, w)
		}
	}

	var order func(a, b domain.WeightEntry) int
	switch key {
	case domain.DateOldest:
		order = compareDate
	case domain.WeightHighest:
		order = func(a, b domain.WeightEntry) int { return -compareWeight(a, b) }
	case domain.WeightLowest:
		order = compareWeight
	default:
		order = func(a, b domain.WeightEntry) int { return -compareDate(a, b) }
	}
	slices.SortFunc(result, order)
	return result, nil
}

// DeleteWeightEntries deletes the listed entries owned by accountID.
func (db *DB) DeleteWeightEntries(ctx context.Context, accountID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	before := len(db.weights)
	db.weights = slices.DeleteFunc(db.weights, func(w domain.WeightEntry) bool {
		return w.AccountID == accountID && slices.Contains(ids, w.ID)
	})
	return int64(before - len(db.weights)), nil
}

// Dates are YYYY-MM-DD so string order is chronological; id breaks ties.
func compareDate(a, b domain.WeightEntry) int {
	if c := cmp.Compare(a.Date, b.Date); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func compareWeight(a, b domain.WeightEntry) int {
	if c := cmp.Compare(a.Weight, b.Weight); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// --- SessionRepository ---

// SessionRepo implements session persistence.
type SessionRepo struct {
	db *DB
}

// NewSessionRepo creates a new session repository.
func (db *DB) NewSessionRepo() *SessionRepo {
	return &SessionRepo{db: db}
}

// Create creates a new session.
func (r *SessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.sessions[token] = &domain.Session{
		Token:     token,
		AccountID: accountID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

// GetByToken retrieves a session by token. Expiry is left to the caller.
func (r *SessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if s, ok := r.db.sessions[token]; ok {
		ret := *s
		return &ret, nil
	}
	return nil, nil
}

// Delete deletes a session.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.sessions, token)
	return nil
}

// DeleteExpired deletes all expired sessions.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	now := time.Now()
	for k, v := range r.db.sessions {
		if now.After(v.ExpiresAt) {
			delete(r.db.sessions, k)
		}
	}
	return nil
}
