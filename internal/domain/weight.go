package domain

import (
	"context"
	"time"
)

// WeightEntry represents a single dated weight measurement.
type WeightEntry struct {
	ID        int64     `json:"id"`
	AccountID int64     `json:"accountId"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

// WeightRepository is the port for weight entry persistence.
type WeightRepository interface {
	AddWeightEntry(ctx context.Context, accountID int64, date string, weight float64) (int64, error)
	MostRecentWeightEntry(ctx context.Context, accountID int64) (*WeightEntry, error)
	// ListWeightEntries returns every entry of the account in the order
	// named by key. Keys the store cannot express fall back to DateNewest.
	ListWeightEntries(ctx context.Context, accountID int64, key SortKey) ([]WeightEntry, error)
	// DeleteWeightEntries removes the listed entries owned by accountID and
	// reports how many rows went away. An empty ids slice is a no-op.
	DeleteWeightEntries(ctx context.Context, accountID int64, ids []int64) (int64, error)
}

// GoalCrossed reports whether weight is below a set goal.
func GoalCrossed(goal *float64, weight float64) bool {
	return goal != nil && weight < *goal
}

// GoalNotifier is told when a freshly recorded weight lands below the
// account's goal. Delivery (SMS or otherwise) is up to the implementation.
type GoalNotifier interface {
	GoalCrossed(ctx context.Context, account *Account, weight float64) error
}
