package services

import (
	"context"
	"time"

	"github.com/rappy1999/workhours/internal/model"
	"github.com/rappy1999/workhours/internal/store"
	"github.com/rappy1999/workhours/internal/timeclock"
)

// PeriodTotal is the net minutes worked inside one period, with the period
// rendered for display.
type PeriodTotal struct {
	Minutes   int    `json:"duration"`
	Display   string `json:"display"`
	DateRange string `json:"dateRange"`
}

// Stats summarizes the week and pay period containing a reference time.
type Stats struct {
	Weekly         PeriodTotal `json:"weekly"`
	PayPeriod      PeriodTotal `json:"payPeriod"`
	PayPeriodIndex int         `json:"payPeriodIndex"`
}

// StatsService computes rolling weekly and pay-period totals. The reference
// time is always supplied by the caller; nothing here reads the wall clock.
type StatsService struct {
	store    store.Store
	resolver timeclock.Resolver
}

func NewStatsService(s store.Store, r timeclock.Resolver) *StatsService {
	return &StatsService{store: s, resolver: r}
}

// Stats returns net totals for the week and pay period containing now.
func (s *StatsService) Stats(ctx context.Context, ownerID string, now time.Time) (*Stats, error) {
	week := s.resolver.CurrentWeek(now)
	pp := s.resolver.CurrentPayPeriod(now)

	weekTotal, err := s.totalNet(ctx, ownerID, week)
	if err != nil {
		return nil, err
	}
	ppTotal, err := s.totalNet(ctx, ownerID, pp.Period)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Weekly: PeriodTotal{
			Minutes:   weekTotal,
			Display:   timeclock.FormatDuration(weekTotal),
			DateRange: week.DateRange(),
		},
		PayPeriod: PeriodTotal{
			Minutes:   ppTotal,
			Display:   timeclock.FormatDuration(ppTotal),
			DateRange: pp.DateRange(),
		},
		PayPeriodIndex: pp.Index,
	}, nil
}

// PayPeriods collects count consecutive pay periods starting with the one
// containing now, for browsing forward through the payroll calendar.
func (s *StatsService) PayPeriods(now time.Time, count int) []timeclock.PayPeriod {
	out := make([]timeclock.PayPeriod, 0, count)
	for p := range s.resolver.PayPeriodsFrom(now, count) {
		out = append(out, p)
	}
	return out
}

func (s *StatsService) totalNet(ctx context.Context, ownerID string, p timeclock.Period) (int, error) {
	entries, err := s.store.Entries().List(ctx, model.ListEntriesRequest{
		OwnerID: ownerID,
		From:    &p.Start,
		To:      &p.End,
	})
	if err != nil {
		return 0, err
	}
	return timeclock.TotalNet(entries), nil
}
