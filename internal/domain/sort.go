package domain

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// SortKey selects the order of an entry listing.
type SortKey int

// Sort keys, numbered in the order the progress screen offers them.
const (
	DateNewest SortKey = iota
	DateOldest
	WeightHighest
	WeightLowest
	DistanceFromGoal
)

var sortKeyNames = [...]string{
	DateNewest:       "date_newest",
	DateOldest:       "date_oldest",
	WeightHighest:    "weight_highest",
	WeightLowest:     "weight_lowest",
	DistanceFromGoal: "distance_from_goal",
}

// Valid reports whether k is one of the declared keys.
func (k SortKey) Valid() bool {
	return k >= DateNewest && k <= DistanceFromGoal
}

// String returns the wire name of k. Unknown keys print as date_newest.
func (k SortKey) String() string {
	if !k.Valid() {
		return sortKeyNames[DateNewest]
	}
	return sortKeyNames[k]
}

// ParseSortKey accepts a key name or its numeric position. Anything it
// does not recognise, including the empty string, yields DateNewest.
func ParseSortKey(s string) SortKey {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 0 && n < len(sortKeyNames) {
			return SortKey(n)
		}
		return DateNewest
	}
	for i, name := range sortKeyNames {
		if name == s {
			return SortKey(i)
		}
	}
	return DateNewest
}

// SortByDistanceFromGoal orders entries by ascending |weight - goal|.
// Entries at equal distance keep their input order. The input slice is
// left untouched.
func SortByDistanceFromGoal(entries []WeightEntry, goal float64) []WeightEntry {
	out := slices.Clone(entries)
	slices.SortStableFunc(out, func(a, b WeightEntry) int {
		da := math.Abs(a.Weight - goal)
		db := math.Abs(b.Weight - goal)
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return 0
	})
	return out
}
