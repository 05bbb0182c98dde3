package app

import (
	"context"
	"strings"

	"weighttrack/internal/domain"
	"weighttrack/internal/logger"
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	weights  domain.WeightRepository
	accounts domain.AccountRepository
	notifier domain.GoalNotifier
}

// NewWeightService creates a WeightService. notifier may be nil.
func NewWeightService(weights domain.WeightRepository, accounts domain.AccountRepository, notifier domain.GoalNotifier) *WeightService {
	return &WeightService{weights: weights, accounts: accounts, notifier: notifier}
}

// AddResult describes a recorded entry.
type AddResult struct {
	ID          int64 `json:"id"`
	GoalCrossed bool  `json:"goalCrossed"`
}

// EntryList is an ordered listing of an account's entries. Sort is the
// order actually applied; GoalMissing is set when distance-from-goal was
// requested without a goal and the listing fell back to newest first.
type EntryList struct {
	Items       []domain.WeightEntry `json:"items"`
	Sort        domain.SortKey       `json:"-"`
	GoalMissing bool                 `json:"goalMissing"`
}

// AddEntry validates and stores a new weight measurement. When the account
// has a goal and weight is below it, the goal notifier is invoked; its
// failures are logged and do not fail the insert.
func (s *WeightService) AddEntry(ctx context.Context, sess *domain.Session, date string, weight float64) (*AddResult, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	date = strings.TrimSpace(date)
	if err := domain.ValidateDate(date); err != nil {
		return nil, err
	}
	if err := domain.ValidateWeight(weight); err != nil {
		return nil, err
	}

	id, err := s.weights.AddWeightEntry(ctx, sess.AccountID, date, weight)
	if err != nil {
		return nil, err
	}
	res := &AddResult{ID: id}

	acct, err := lookupAccount(ctx, s.accounts, sess.AccountID)
	if err != nil {
		logger.Warn("goal lookup failed", "account", sess.AccountID, "err", err)
		return res, nil
	}
	if !domain.GoalCrossed(acct.Goal, weight) {
		return res, nil
	}
	res.GoalCrossed = true
	if s.notifier != nil {
		if err := s.notifier.GoalCrossed(ctx, acct, weight); err != nil {
			logger.Warn("goal notification failed", "account", acct.ID, "err", err)
		}
	}
	return res, nil
}

// ListEntries returns the account's entries in the requested order.
func (s *WeightService) ListEntries(ctx context.Context, sess *domain.Session, key domain.SortKey) (*EntryList, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	if !key.Valid() {
		key = domain.DateNewest
	}
	if key != domain.DistanceFromGoal {
		items, err := s.weights.ListWeightEntries(ctx, sess.AccountID, key)
		if err != nil {
			return nil, err
		}
		return &EntryList{Items: items, Sort: key}, nil
	}

	acct, err := lookupAccount(ctx, s.accounts, sess.AccountID)
	if err != nil {
		return nil, err
	}
	items, err := s.weights.ListWeightEntries(ctx, sess.AccountID, domain.DateNewest)
	if err != nil {
		return nil, err
	}
	if acct.Goal == nil {
		return &EntryList{Items: items, Sort: domain.DateNewest, GoalMissing: true}, nil
	}
	return &EntryList{Items: domain.SortByDistanceFromGoal(items, *acct.Goal), Sort: domain.DistanceFromGoal}, nil
}

// DeleteEntries removes the given entries of the account. An empty id list
// is a no-op.
func (s *WeightService) DeleteEntries(ctx context.Context, sess *domain.Session, ids []int64) (int64, error) {
	if !sess.Authenticated() {
		return 0, domain.ErrNotAuthenticated
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return s.weights.DeleteWeightEntries(ctx, sess.AccountID, ids)
}

// MostRecent returns the entry with the latest date, or nil when the
// account has none.
func (s *WeightService) MostRecent(ctx context.Context, sess *domain.Session) (*domain.WeightEntry, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	return s.weights.MostRecentWeightEntry(ctx, sess.AccountID)
}
