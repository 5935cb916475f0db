package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/store"
	"github.com/rappy1999/workhours/internal/timeclock"
)

// CreateEntryRequest carries the user-supplied fields of a new time entry.
// Durations are never accepted from the caller; they are computed here.
type CreateEntryRequest struct {
	OwnerID      string
	Date         time.Time
	StartTime    string
	EndTime      string
	LunchMinutes int
	Notes        *string
}

// UpdateEntryRequest patches an existing entry. Nil fields are left as
// stored. Any change to the clock pair or the lunch deduction recomputes
// both derived durations.
type UpdateEntryRequest struct {
	Date         *time.Time
	StartTime    *string
	EndTime      *string
	LunchMinutes *int
	Notes        *string
}

// RangeSummary is the aggregated view of a date range: day groups newest
// first, entries the aggregator had to skip, and exact range totals.
type RangeSummary struct {
	Days         []timeclock.DaySummary  `json:"days"`
	Skipped      []timeclock.SkippedEntry `json:"skipped,omitempty"`
	GrossMinutes int                     `json:"grossDuration"`
	NetMinutes   int                     `json:"netDuration"`
	LunchMinutes int                     `json:"lunchDuration"`
}

// EntryService owns the time-entry lifecycle: validation and duration
// computation before any persistence attempt, ownership checks on mutation,
// and range aggregation for display.
type EntryService struct {
	store store.Store
}

func NewEntryService(s store.Store) *EntryService { return &EntryService{store: s} }

func (s *EntryService) CreateEntry(ctx context.Context, req CreateEntryRequest) (*model.TimeEntry, error) {
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", model.ErrValidation)
	}
	gross, _, err := timeclock.ComputeGross(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	net, err := timeclock.ComputeNet(gross, req.LunchMinutes)
	if err != nil {
		return nil, err
	}
	return s.store.Entries().Create(ctx, &model.TimeEntry{
		OwnerID:      req.OwnerID,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		LunchMinutes: req.LunchMinutes,
		GrossMinutes: gross,
		NetMinutes:   net,
		Notes:        req.Notes,
	})
}

func (s *EntryService) GetEntry(ctx context.Context, callerID, entryID string) (*model.TimeEntry, error) {
	e, err := s.store.Entries().GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != callerID {
		return nil, model.ErrNotAuthorized
	}
	return e, nil
}

// UpdateEntry applies the patch and recomputes gross and net minutes from
// the resulting clock pair and lunch deduction, so the stored durations can
// never drift from their inputs. The caller must own the entry.
func (s *EntryService) UpdateEntry(ctx context.Context, callerID, entryID string, req UpdateEntryRequest) (*model.TimeEntry, error) {
	e, err := s.store.Entries().GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID != callerID {
		return nil, model.ErrNotAuthorized
	}

	if req.Date != nil {
		if req.Date.IsZero() {
			return nil, fmt.Errorf("%w: date is required", model.ErrValidation)
		}
		e.Date = *req.Date
	}
	if req.StartTime != nil {
		e.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		e.EndTime = *req.EndTime
	}
	if req.LunchMinutes != nil {
		e.LunchMinutes = *req.LunchMinutes
	}
	if req.Notes != nil {
		e.Notes = req.Notes
	}

	gross, _, err := timeclock.ComputeGross(e.StartTime, e.EndTime)
	if err != nil {
		return nil, err
	}
	net, err := timeclock.ComputeNet(gross, e.LunchMinutes)
	if err != nil {
		return nil, err
	}
	e.GrossMinutes = gross
	e.NetMinutes = net

	return s.store.Entries().Update(ctx, e)
}

// DeleteEntry permanently removes an entry owned by the caller.
func (s *EntryService) DeleteEntry(ctx context.Context, callerID, entryID string) error {
	e, err := s.store.Entries().GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if e.OwnerID != callerID {
		return model.ErrNotAuthorized
	}
	return s.store.Entries().Delete(ctx, callerID, entryID)
}

func (s *EntryService) ListEntries(ctx context.Context, ownerID string) ([]*model.TimeEntry, error) {
	return s.store.Entries().List(ctx, model.ListEntriesRequest{OwnerID: ownerID})
}

// EntriesForDate returns the entries logged against one calendar day.
func (s *EntryService) EntriesForDate(ctx context.Context, ownerID string, date time.Time) ([]*model.TimeEntry, error) {
	return s.store.Entries().List(ctx, model.ListEntriesRequest{OwnerID: ownerID, From: &date, To: &date})
}

// RangeSummary fetches the owner's entries between start and end (inclusive
// at day granularity) and aggregates them by day.
func (s *EntryService) RangeSummary(ctx context.Context, ownerID string, start, end time.Time) (*RangeSummary, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("%w: start date must be before end date", model.ErrValidation)
	}
	entries, err := s.store.Entries().List(ctx, model.ListEntriesRequest{OwnerID: ownerID, From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	days, skipped := timeclock.GroupByDay(timeclock.EntriesInRange(entries, start, end))

	out := &RangeSummary{Days: days, Skipped: skipped}
	for _, d := range days {
		out.GrossMinutes += d.GrossMinutes
		out.NetMinutes += d.NetMinutes
		out.LunchMinutes += d.LunchMinutes
	}
	return out, nil
}
