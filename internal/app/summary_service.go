package app

import (
	"context"

	"weighttrack/internal/domain"
)

// SummaryService assembles the home view: latest weight against the goal.
type SummaryService struct {
	weights  domain.WeightRepository
	accounts domain.AccountRepository
}

// NewSummaryService creates a SummaryService backed by the given repositories.
func NewSummaryService(wr domain.WeightRepository, ar domain.AccountRepository) *SummaryService {
	return &SummaryService{weights: wr, accounts: ar}
}

// Summary is the result of Get. Remaining is latest minus goal and is only
// set when both exist. GoalMet uses the same rule as the goal notification.
type Summary struct {
	Username   string              `json:"username"`
	MostRecent *domain.WeightEntry `json:"mostRecent"`
	Goal       *float64            `json:"goal"`
	Remaining  *float64            `json:"remaining"`
	GoalMet    bool                `json:"goalMet"`
}

// Get returns the account's summary.
func (s *SummaryService) Get(ctx context.Context, sess *domain.Session) (*Summary, error) {
	if !sess.Authenticated() {
		return nil, domain.ErrNotAuthenticated
	}
	acct, err := lookupAccount(ctx, s.accounts, sess.AccountID)
	if err != nil {
		return nil, err
	}
	latest, err := s.weights.MostRecentWeightEntry(ctx, sess.AccountID)
	if err != nil {
		return nil, err
	}

	sum := &Summary{Username: acct.Username, MostRecent: latest, Goal: acct.Goal}
	if latest != nil && acct.Goal != nil {
		r := latest.Weight - *acct.Goal
		sum.Remaining = &r
		sum.GoalMet = domain.GoalCrossed(acct.Goal, latest.Weight)
	}
	return sum, nil
}
