package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"apptcal/internal/appt"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenPath(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndDetail(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	draft := appt.Appointment{
		Title:       "Renewal call",
		Start:       time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC),
		Status:      "confirmed",
		ContactName: "Dana Wexler",
		Location:    "Room 2",
		Recurrence:  "FREQ=WEEKLY",
	}
	created, err := store.Create(ctx, draft)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("create did not mint an id")
	}

	got, err := store.Detail(ctx, created.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if got.Title != draft.Title || got.ContactName != draft.ContactName || got.Recurrence != draft.Recurrence {
		t.Errorf("detail = %+v", got)
	}
	if !got.Start.Equal(draft.Start) {
		t.Errorf("start = %v, want %v", got.Start, draft.Start)
	}

	if _, err := store.Detail(ctx, "nope"); !errors.Is(err, appt.ErrNotFound) {
		t.Errorf("missing detail err = %v, want ErrNotFound", err)
	}
}

func TestCreateRejectsBadDrafts(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)

	if _, err := store.Create(ctx, appt.Appointment{Start: start, End: start.Add(time.Hour)}); err == nil {
		t.Error("empty title accepted")
	}
	if _, err := store.Create(ctx, appt.Appointment{Title: "x", Start: start, End: start}); err == nil {
		t.Error("empty time range accepted")
	}
}

func TestListClosedIntervalAndAssignee(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	mk := func(title string, start time.Time, assignee string) {
		t.Helper()
		_, err := store.Create(ctx, appt.Appointment{
			Title:      title,
			Start:      start,
			End:        start.Add(time.Hour),
			AssigneeID: assignee,
		})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
	}
	mk("before", time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC), "u-1")
	mk("first day", time.Date(2024, 3, 10, 0, 30, 0, 0, time.UTC), "u-1")
	mk("midweek", time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC), "u-2")
	mk("last day", time.Date(2024, 3, 16, 23, 30, 0, 0, time.UTC), "u-1")
	mk("after", time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), "u-1")

	start := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	all, err := store.List(ctx, start, end, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("list returned %d, want 3 (both interval bounds included)", len(all))
	}
	if all[0].Title != "first day" || all[2].Title != "last day" {
		t.Errorf("order = %s..%s, want ascending start", all[0].Title, all[2].Title)
	}

	filtered, err := store.List(ctx, start, end, "u-2")
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Title != "midweek" {
		t.Errorf("filtered = %v", filtered)
	}
}
