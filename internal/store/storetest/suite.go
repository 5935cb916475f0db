package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	ownerID := "u-" + uuid.New().String()
	email := ownerID + "@example.test"

	// Users
	u := &model.User{UserID: ownerID, Email: email}
	created, err := s.Users().Create(ctx, u)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.Status != "ACTIVE" || created.CreationTime.IsZero() {
		t.Fatalf("CreateUser defaults: %+v", created)
	}
	if got, err := s.Users().Get(ctx, ownerID); err != nil || got.Email != email {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, email); err != nil || got.UserID != ownerID {
		t.Fatalf("GetUserByEmail: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Get(ctx, "u-missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetUser missing: want ErrNotFound, got %v", err)
	}
	if _, err := s.Users().Create(ctx, &model.User{UserID: ownerID, Email: email}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("CreateUser duplicate: want ErrConflict, got %v", err)
	}

	// Entries: create a normal shift and an overnight shift on two days.
	d1 := time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	notes := "night watch"
	e1, err := s.Entries().Create(ctx, &model.TimeEntry{
		OwnerID: ownerID, Date: d1,
		StartTime: "09:00", EndTime: "17:00",
		LunchMinutes: 30, GrossMinutes: 480, NetMinutes: 450,
	})
	if err != nil {
		t.Fatalf("CreateEntry e1: %v", err)
	}
	if e1.EntryID == "" || e1.CreationTime.IsZero() {
		t.Fatalf("CreateEntry e1 did not assign id/timestamp: %+v", e1)
	}
	e2, err := s.Entries().Create(ctx, &model.TimeEntry{
		OwnerID: ownerID, Date: d2,
		StartTime: "22:00", EndTime: "06:00",
		GrossMinutes: 480, NetMinutes: 480, Notes: &notes,
	})
	if err != nil {
		t.Fatalf("CreateEntry e2: %v", err)
	}

	// GetByID round-trips all fields.
	got, err := s.Entries().GetByID(ctx, e2.EntryID)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if got.OwnerID != ownerID || got.StartTime != "22:00" || got.EndTime != "06:00" {
		t.Fatalf("GetEntry round-trip: %+v", got)
	}
	if got.Notes == nil || *got.Notes != notes {
		t.Fatalf("GetEntry notes: %+v", got.Notes)
	}
	if !sameDate(got.Date, d2) {
		t.Fatalf("GetEntry date: got %v want %v", got.Date, d2)
	}
	if _, err := s.Entries().GetByID(ctx, uuid.New().String()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEntry missing: want ErrNotFound, got %v", err)
	}

	// List is owner-scoped and newest-date-first.
	lst, err := s.Entries().List(ctx, model.ListEntriesRequest{OwnerID: ownerID})
	if err != nil || len(lst) != 2 {
		t.Fatalf("ListEntries: n=%d err=%v", len(lst), err)
	}
	if !sameDate(lst[0].Date, d2) || !sameDate(lst[1].Date, d1) {
		t.Fatalf("ListEntries order: %v, %v", lst[0].Date, lst[1].Date)
	}
	if lst, err := s.Entries().List(ctx, model.ListEntriesRequest{OwnerID: "u-other"}); err != nil || len(lst) != 0 {
		t.Fatalf("ListEntries foreign owner: n=%d err=%v", len(lst), err)
	}

	// Range filter is inclusive on both ends.
	lst, err = s.Entries().List(ctx, model.ListEntriesRequest{OwnerID: ownerID, From: &d1, To: &d1})
	if err != nil || len(lst) != 1 || lst[0].EntryID != e1.EntryID {
		t.Fatalf("ListEntries range d1: n=%d err=%v", len(lst), err)
	}

	// Update rewrites clock pair and durations together.
	e1.StartTime, e1.EndTime = "08:00", "12:00"
	e1.LunchMinutes, e1.GrossMinutes, e1.NetMinutes = 0, 240, 240
	upd, err := s.Entries().Update(ctx, e1)
	if err != nil {
		t.Fatalf("UpdateEntry: %v", err)
	}
	if upd.GrossMinutes != 240 || upd.NetMinutes != 240 || upd.EndTime != "12:00" {
		t.Fatalf("UpdateEntry round-trip: %+v", upd)
	}

	// Update and Delete are owner-keyed.
	foreign := *e2
	foreign.OwnerID = "u-other"
	if _, err := s.Entries().Update(ctx, &foreign); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateEntry foreign owner: want ErrNotFound, got %v", err)
	}
	if err := s.Entries().Delete(ctx, "u-other", e2.EntryID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteEntry foreign owner: want ErrNotFound, got %v", err)
	}
	if err := s.Entries().Delete(ctx, ownerID, e2.EntryID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if _, err := s.Entries().GetByID(ctx, e2.EntryID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetEntry after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Entries().Delete(ctx, ownerID, e2.EntryID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteEntry twice: want ErrNotFound, got %v", err)
	}
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
