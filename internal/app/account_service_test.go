package app_test

import (
	"context"
	"errors"
	"testing"

	"weighttrack/internal/app"
	"weighttrack/internal/domain"
)

func TestAccountService_SetGoal(t *testing.T) {
	var got float64
	repo := &mockAccountRepo{
		updateGoalFn: func(_ context.Context, id int64, goal float64) error {
			if id != 1 {
				t.Errorf("expected account 1, got %d", id)
			}
			got = goal
			return nil
		},
	}
	svc := app.NewAccountService(repo)
	ctx := context.Background()

	if err := svc.SetGoal(ctx, session, 145.5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 145.5 {
		t.Errorf("expected goal 145.5, got %v", got)
	}
	if err := svc.SetGoal(ctx, session, 0); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
	if err := svc.SetGoal(ctx, nil, 140); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestAccountService_SetGoal_NotFound(t *testing.T) {
	repo := &mockAccountRepo{
		updateGoalFn: func(_ context.Context, _ int64, _ float64) error { return domain.ErrNotFound },
	}
	svc := app.NewAccountService(repo)
	if err := svc.SetGoal(context.Background(), session, 150); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAccountService_Goal(t *testing.T) {
	repo := &mockAccountRepo{
		byIDFn: func(_ context.Context, id int64) (*domain.Account, error) {
			if id == 1 {
				return &domain.Account{ID: 1, Goal: floatPtr(150)}, nil
			}
			return nil, nil
		},
	}
	svc := app.NewAccountService(repo)
	ctx := context.Background()

	goal, err := svc.Goal(ctx, session)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal == nil || *goal != 150 {
		t.Errorf("expected goal 150, got %v", goal)
	}

	_, err = svc.Goal(ctx, &domain.Session{AccountID: 2})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing account, got %v", err)
	}
}

func TestAccountService_Phone(t *testing.T) {
	var stored string
	repo := &mockAccountRepo{
		updatePhoneFn: func(_ context.Context, _ int64, phone string) error {
			stored = phone
			return nil
		},
		byIDFn: func(_ context.Context, id int64) (*domain.Account, error) {
			if stored == "" {
				return &domain.Account{ID: id}, nil
			}
			p := stored
			return &domain.Account{ID: id, Phone: &p}, nil
		},
	}
	svc := app.NewAccountService(repo)
	ctx := context.Background()

	phone, err := svc.Phone(ctx, session)
	if err != nil || phone != nil {
		t.Fatalf("expected no phone, got %v err=%v", phone, err)
	}
	if err := svc.SetPhone(ctx, session, "  555-123-4567 "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	phone, err = svc.Phone(ctx, session)
	if err != nil || phone == nil || *phone != "555-123-4567" {
		t.Fatalf("expected trimmed phone, got %v err=%v", phone, err)
	}
	if err := svc.SetPhone(ctx, session, "call me"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
