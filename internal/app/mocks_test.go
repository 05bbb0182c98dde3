package app_test

import (
	"context"
	"time"

	"weighttrack/internal/domain"
)

type mockAccountRepo struct {
	createFn      func(ctx context.Context, username, passwordHash string) (*domain.Account, error)
	byUsernameFn  func(ctx context.Context, username string) (*domain.Account, error)
	byIDFn        func(ctx context.Context, id int64) (*domain.Account, error)
	updateGoalFn  func(ctx context.Context, id int64, goal float64) error
	updatePhoneFn func(ctx context.Context, id int64, phone string) error
}

func (m *mockAccountRepo) CreateAccount(ctx context.Context, username, passwordHash string) (*domain.Account, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.Account{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockAccountRepo) AccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.byUsernameFn != nil {
		return m.byUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockAccountRepo) AccountByID(ctx context.Context, id int64) (*domain.Account, error) {
	if m.byIDFn != nil {
		return m.byIDFn(ctx, id)
	}
	return &domain.Account{ID: id, Username: "alice"}, nil
}

func (m *mockAccountRepo) UpdateGoal(ctx context.Context, id int64, goal float64) error {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(ctx, id, goal)
	}
	return nil
}

func (m *mockAccountRepo) UpdatePhone(ctx context.Context, id int64, phone string) error {
	if m.updatePhoneFn != nil {
		return m.updatePhoneFn(ctx, id, phone)
	}
	return nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, accountID int64, token string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, accountID int64, token string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, accountID, token, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockWeightRepo struct {
	addFn    func(ctx context.Context, accountID int64, date string, weight float64) (int64, error)
	latestFn func(ctx context.Context, accountID int64) (*domain.WeightEntry, error)
	listFn   func(ctx context.Context, accountID int64, key domain.SortKey) ([]domain.WeightEntry, error)
	deleteFn func(ctx context.Context, accountID int64, ids []int64) (int64, error)
}

func (m *mockWeightRepo) AddWeightEntry(ctx context.Context, accountID int64, date string, weight float64) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, accountID, date, weight)
	}
	return 1, nil
}

func (m *mockWeightRepo) MostRecentWeightEntry(ctx context.Context, accountID int64) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, accountID)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListWeightEntries(ctx context.Context, accountID int64, key domain.SortKey) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, accountID, key)
	}
	return nil, nil
}

func (m *mockWeightRepo) DeleteWeightEntries(ctx context.Context, accountID int64, ids []int64) (int64, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, accountID, ids)
	}
	return int64(len(ids)), nil
}

type mockNotifier struct {
	calls []float64
	err   error
}

func (m *mockNotifier) GoalCrossed(_ context.Context, _ *domain.Account, weight float64) error {
	m.calls = append(m.calls, weight)
	return m.err
}

func floatPtr(v float64) *float64 { return &v }

var session = &domain.Session{Token: "tok", AccountID: 1}
