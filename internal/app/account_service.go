package app

import (
	"context"
	"strings"

	"weighttrack/internal/domain"
)

// AccountService covers the profile settings of the signed-in account: the
// weight goal and the notification phone number.
type AccountService struct {
	repo domain.AccountRepository
}

// NewAccountService creates an AccountService backed by the given repository.
func NewAccountService(repo domain.AccountRepository) *AccountService {
	return &AccountService{repo: repo}
}

// Me returns the session's account.
func (s *AccountService) Me(ctx context.Context, sess *domain.Session) (*domain.Account, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return lookupAccount(ctx, s.repo, sess.AccountID)
}

// SetGoal stores a new weight goal.
func (s *AccountService) SetGoal(ctx context.Context, sess *domain.Session, goal float64) error {
	if !sess.Authenticated() {
		return domain.ErrNotAuthenticated
	}
	if err := domain.ValidateWeight(goal); err != nil {
		return err
	}
	return s.repo.UpdateGoal(ctx, sess.AccountID, goal)
}

// Goal returns the weight goal, or nil when none is set.
func (s *AccountService) Goal(ctx context.Context, sess *domain.Session) (*float64, error) {
	acct, err := s.Me(ctx, sess)
	if err != nil {
		return nil, err
	}
	return acct.Goal, nil
}

// SetPhone stores the number goal notifications go to.
func (s *AccountService) SetPhone(ctx context.Context, sess *domain.Session, phone string) error {
	if !sess.Authenticated() {
		return domain.ErrNotAuthenticated
	}
	phone = strings.TrimSpace(phone)
	if err := domain.ValidatePhone(phone); err != nil {
		return err
	}
	return s.repo.UpdatePhone(ctx, sess.AccountID, phone)
}

// Phone returns the notification phone number, or nil when none is set.
func (s *AccountService) Phone(ctx context.Context, sess *domain.Session) (*string, error) {
	acct, err := s.Me(ctx, sess)
	if err != nil {
		return nil, err
	}
	return acct.Phone, nil
}

func lookupAccount(ctx context.Context, repo domain.AccountRepository, id int64) (*domain.Account, error) {
	acct, err := repo.AccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, domain.ErrNotFound
	}
	return acct, nil
}
