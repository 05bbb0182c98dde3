// Package storetest holds the behaviour every storage adapter must share.
// Adapter test files call Run with a constructor for their own store.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"weighttrack/internal/domain"

	"github.com/google/uuid"
)

// Store is the union of the repository ports an adapter provides.
type Store interface {
	domain.AccountRepository
	domain.WeightRepository
}

// Factory returns a ready store and its session repository. It may hand
// out the same database to several subtests; Run namespaces usernames.
type Factory func(t *testing.T) (Store, domain.SessionRepository)

const missingAccount = int64(1) << 40

// Run executes the shared repository suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("Accounts", func(t *testing.T) { testAccounts(t, newStore) })
	t.Run("EntryOrdering", func(t *testing.T) { testEntryOrdering(t, newStore) })
	t.Run("MostRecent", func(t *testing.T) { testMostRecent(t, newStore) })
	t.Run("Delete", func(t *testing.T) { testDelete(t, newStore) })
	t.Run("ForeignKey", func(t *testing.T) { testForeignKey(t, newStore) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, newStore) })
}

func username(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func mustAccount(t *testing.T, s Store) *domain.Account {
	t.Helper()
	a, err := s.CreateAccount(context.Background(), username("user"), "hash")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	return a
}

func mustAdd(t *testing.T, s Store, accountID int64, date string, weight float64) int64 {
	t.Helper()
	id, err := s.AddWeightEntry(context.Background(), accountID, date, weight)
	if err != nil {
		t.Fatalf("AddWeightEntry(%s, %v): %v", date, weight, err)
	}
	if id == 0 {
		t.Fatal("expected non-zero ID")
	}
	return id
}

func entryIDs(entries []domain.WeightEntry) []int64 {
	out := make([]int64, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sameIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testAccounts(t *testing.T, newStore Factory) {
	s, _ := newStore(t)
	ctx := context.Background()
	name := username("alice")

	a, err := s.CreateAccount(ctx, name, "hash")
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if a.ID == 0 || a.Username != name {
		t.Fatalf("unexpected account: %+v", a)
	}
	if a.Goal != nil || a.Phone != nil {
		t.Errorf("new account should have no goal or phone: %+v", a)
	}

	if _, err := s.CreateAccount(ctx, name, "other"); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	byName, err := s.AccountByUsername(ctx, name)
	if err != nil || byName == nil || byName.ID != a.ID || byName.PasswordHash != "hash" {
		t.Fatalf("AccountByUsername = %+v, %v", byName, err)
	}
	missing, err := s.AccountByUsername(ctx, username("nobody"))
	if err != nil || missing != nil {
		t.Fatalf("expected (nil, nil) for unknown username, got %+v, %v", missing, err)
	}

	if err := s.UpdateGoal(ctx, a.ID, 150.5); err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if err := s.UpdatePhone(ctx, a.ID, "555-123-4567"); err != nil {
		t.Fatalf("UpdatePhone: %v", err)
	}
	byID, err := s.AccountByID(ctx, a.ID)
	if err != nil || byID == nil {
		t.Fatalf("AccountByID = %+v, %v", byID, err)
	}
	if byID.Goal == nil || *byID.Goal != 150.5 {
		t.Errorf("expected goal 150.5, got %v", byID.Goal)
	}
	if byID.Phone == nil || *byID.Phone != "555-123-4567" {
		t.Errorf("expected phone, got %v", byID.Phone)
	}

	if err := s.UpdateGoal(ctx, missingAccount, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateGoal on missing account: expected ErrNotFound, got %v", err)
	}
	if err := s.UpdatePhone(ctx, missingAccount, "5551234567"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdatePhone on missing account: expected ErrNotFound, got %v", err)
	}
	gone, err := s.AccountByID(ctx, missingAccount)
	if err != nil || gone != nil {
		t.Errorf("expected (nil, nil) for missing id, got %+v, %v", gone, err)
	}
}

func testEntryOrdering(t *testing.T, newStore Factory) {
	s, _ := newStore(t)
	ctx := context.Background()
	a := mustAccount(t, s)
	other := mustAccount(t, s)

	id1 := mustAdd(t, s, a.ID, "2024-01-03", 151)
	id2 := mustAdd(t, s, a.ID, "2024-01-01", 155)
	id3 := mustAdd(t, s, a.ID, "2024-01-03", 149)
	id4 := mustAdd(t, s, a.ID, "2024-01-02", 152)
	mustAdd(t, s, other.ID, "2024-01-09", 200)

	tests := []struct {
		key  domain.SortKey
		want []int64
	}{
		{domain.DateNewest, []int64{id3, id1, id4, id2}},
		{domain.DateOldest, []int64{id2, id4, id1, id3}},
		{domain.WeightHighest, []int64{id2, id4, id1, id3}},
		{domain.WeightLowest, []int64{id3, id1, id4, id2}},
		{domain.DistanceFromGoal, []int64{id3, id1, id4, id2}},
		{domain.SortKey(42), []int64{id3, id1, id4, id2}},
	}
	for _, tc := range tests {
		got, err := s.ListWeightEntries(ctx, a.ID, tc.key)
		if err != nil {
			t.Fatalf("ListWeightEntries(%v): %v", tc.key, err)
		}
		if !sameIDs(entryIDs(got), tc.want) {
			t.Errorf("ListWeightEntries(%v) = %v; want %v", tc.key, entryIDs(got), tc.want)
		}
		for _, e := range got {
			if e.AccountID != a.ID {
				t.Errorf("entry %d leaked from account %d", e.ID, e.AccountID)
			}
		}
	}

	newest, _ := s.ListWeightEntries(ctx, a.ID, domain.DateNewest)
	oldest, _ := s.ListWeightEntries(ctx, a.ID, domain.DateOldest)
	for i := range newest {
		if newest[i].ID != oldest[len(oldest)-1-i].ID {
			t.Fatalf("date_oldest is not the reverse of date_newest: %v vs %v", entryIDs(newest), entryIDs(oldest))
		}
	}
	for i := 1; i < len(newest); i++ {
		if newest[i].Date > newest[i-1].Date {
			t.Fatalf("date_newest not non-increasing at %d: %v", i, newest)
		}
	}
	if newest[0].Date != "2024-01-03" || newest[0].Weight != 149 {
		t.Errorf("unexpected first entry: %+v", newest[0])
	}

	empty, err := s.ListWeightEntries(ctx, mustAccount(t, s).ID, domain.DateNewest)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected no entries for fresh account, got %v, %v", empty, err)
	}
}

func testMostRecent(t *testing.T, newStore Factory) {
	s, _ := newStore(t)
	ctx := context.Background()
	a := mustAccount(t, s)

	none, err := s.MostRecentWeightEntry(ctx, a.ID)
	if err != nil || none != nil {
		t.Fatalf("expected (nil, nil) without entries, got %+v, %v", none, err)
	}

	mustAdd(t, s, a.ID, "2024-01-01", 150)
	mustAdd(t, s, a.ID, "2024-01-05", 148)
	mustAdd(t, s, a.ID, "2023-12-31", 160)

	got, err := s.MostRecentWeightEntry(ctx, a.ID)
	if err != nil {
		t.Fatalf("MostRecentWeightEntry: %v", err)
	}
	if got == nil || got.Weight != 148 || got.Date != "2024-01-05" {
		t.Fatalf("expected 148 on 2024-01-05, got %+v", got)
	}
}

func testDelete(t *testing.T, newStore Factory) {
	s, _ := newStore(t)
	ctx := context.Background()
	a := mustAccount(t, s)
	other := mustAccount(t, s)

	id1 := mustAdd(t, s, a.ID, "2024-01-01", 150)
	id2 := mustAdd(t, s, a.ID, "2024-01-02", 149)
	id3 := mustAdd(t, s, a.ID, "2024-01-03", 148)
	foreign := mustAdd(t, s, other.ID, "2024-01-03", 180)

	n, err := s.DeleteWeightEntries(ctx, a.ID, nil)
	if err != nil || n != 0 {
		t.Fatalf("empty delete: n=%d err=%v", n, err)
	}
	n, err = s.DeleteWeightEntries(ctx, a.ID, []int64{})
	if err != nil || n != 0 {
		t.Fatalf("empty delete: n=%d err=%v", n, err)
	}
	all, _ := s.ListWeightEntries(ctx, a.ID, domain.DateOldest)
	if !sameIDs(entryIDs(all), []int64{id1, id2, id3}) {
		t.Fatalf("empty delete changed the store: %v", entryIDs(all))
	}

	n, err = s.DeleteWeightEntries(ctx, a.ID, []int64{id1, id3, foreign})
	if err != nil {
		t.Fatalf("DeleteWeightEntries: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 rows deleted, got %d", n)
	}
	left, _ := s.ListWeightEntries(ctx, a.ID, domain.DateOldest)
	if !sameIDs(entryIDs(left), []int64{id2}) {
		t.Errorf("expected only %d left, got %v", id2, entryIDs(left))
	}
	theirs, _ := s.ListWeightEntries(ctx, other.ID, domain.DateOldest)
	if !sameIDs(entryIDs(theirs), []int64{foreign}) {
		t.Errorf("other account's entry was touched: %v", entryIDs(theirs))
	}
}

func testForeignKey(t *testing.T, newStore Factory) {
	s, _ := newStore(t)
	_, err := s.AddWeightEntry(context.Background(), missingAccount, "2024-01-01", 150)
	if !errors.Is(err, domain.ErrConstraintViolation) {
		t.Fatalf("expected ErrConstraintViolation, got %v", err)
	}
}

func testSessions(t *testing.T, newStore Factory) {
	s, sessions := newStore(t)
	ctx := context.Background()
	a := mustAccount(t, s)
	live := "live-" + uuid.NewString()
	stale := "stale-" + uuid.NewString()

	if err := sessions.Create(ctx, a.ID, live, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := sessions.Create(ctx, a.ID, stale, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := sessions.GetByToken(ctx, live)
	if err != nil || got == nil || got.AccountID != a.ID || got.Token != live {
		t.Fatalf("GetByToken = %+v, %v", got, err)
	}

	if err := sessions.DeleteExpired(ctx); err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if got, _ := sessions.GetByToken(ctx, stale); got != nil {
		t.Error("expired session survived DeleteExpired")
	}
	if got, _ := sessions.GetByToken(ctx, live); got == nil {
		t.Error("live session removed by DeleteExpired")
	}

	if err := sessions.Delete(ctx, live); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := sessions.GetByToken(ctx, live); got != nil {
		t.Error("expected nil (deleted)")
	}
}
