package timeclock

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCurrentWeekRunsSaturdayThroughFriday(t *testing.T) {
	r := NewResolver(time.Time{})

	// 2025-01-15 is a Wednesday; its week starts Saturday 2025-01-11.
	wantStart := day(2025, time.January, 11)
	for d := 11; d <= 17; d++ {
		now := time.Date(2025, time.January, d, 14, 30, 0, 0, time.UTC)
		w := r.CurrentWeek(now)
		if !w.Start.Equal(wantStart) {
			t.Errorf("day %d: week start = %v, want %v", d, w.Start, wantStart)
		}
		if w.End.Day() != 17 || w.End.Hour() != 23 || w.End.Minute() != 59 || w.End.Second() != 59 {
			t.Errorf("day %d: week end = %v, want Friday 23:59:59", d, w.End)
		}
		if !w.Contains(now) {
			t.Errorf("day %d: week %v does not contain now", d, w)
		}
	}

	// The following Saturday starts a fresh week.
	next := r.CurrentWeek(day(2025, time.January, 18))
	if !next.Start.Equal(day(2025, time.January, 18)) {
		t.Errorf("saturday start = %v, want itself", next.Start)
	}
}

func TestCurrentPayPeriodAtAnchor(t *testing.T) {
	r := NewResolver(time.Time{})

	p := r.CurrentPayPeriod(DefaultAnchor)
	if p.Index != 0 {
		t.Fatalf("index at anchor = %d, want 0", p.Index)
	}
	if !p.Start.Equal(DefaultAnchor) {
		t.Fatalf("start at anchor = %v, want %v", p.Start, DefaultAnchor)
	}

	p = r.CurrentPayPeriod(DefaultAnchor.AddDate(0, 0, 14))
	if p.Index != 1 {
		t.Fatalf("index at anchor+14d = %d, want 1", p.Index)
	}

	// Last day of period zero still belongs to period zero.
	p = r.CurrentPayPeriod(DefaultAnchor.AddDate(0, 0, 13))
	if p.Index != 0 {
		t.Fatalf("index at anchor+13d = %d, want 0", p.Index)
	}
}

func TestCurrentPayPeriodBeforeAnchor(t *testing.T) {
	r := NewResolver(time.Time{})

	p := r.CurrentPayPeriod(DefaultAnchor.AddDate(0, 0, -1))
	if p.Index != -1 {
		t.Fatalf("index the day before the anchor = %d, want -1", p.Index)
	}
	if !p.End.Truncate(24 * time.Hour).Equal(day(2023, time.January, 6)) {
		t.Fatalf("period -1 should end the day before the anchor, got %v", p.End)
	}
}

func TestCurrentPayPeriodContainsNow(t *testing.T) {
	r := NewResolver(time.Time{})
	for _, now := range []time.Time{
		time.Date(2025, time.June, 3, 9, 15, 0, 0, time.UTC),
		day(2023, time.January, 7),
		day(2023, time.January, 20),
		day(2023, time.January, 21),
		day(2022, time.December, 25),
	} {
		p := r.CurrentPayPeriod(now)
		if !p.Contains(now) {
			t.Errorf("period %v (index %d) does not contain %v", p.Period, p.Index, now)
		}
	}
}

func TestPayPeriodsFrom(t *testing.T) {
	r := NewResolver(time.Time{})
	now := day(2025, time.March, 10)

	var got []PayPeriod
	for p := range r.PayPeriodsFrom(now, 6) {
		got = append(got, p)
	}
	if len(got) != 6 {
		t.Fatalf("got %d periods, want 6", len(got))
	}
	if !got[0].Contains(now) {
		t.Fatalf("first period %v does not contain now", got[0].Period)
	}
	for i, p := range got {
		days := int(startOfDay(p.End).Sub(p.Start) / (24 * time.Hour))
		if days != 13 {
			t.Errorf("period %d spans %d days, want 14 inclusive", i, days+1)
		}
		if i == 0 {
			continue
		}
		if p.Index != got[i-1].Index+1 {
			t.Errorf("period %d index %d not consecutive after %d", i, p.Index, got[i-1].Index)
		}
		wantStart := startOfDay(got[i-1].End).AddDate(0, 0, 1)
		if !p.Start.Equal(wantStart) {
			t.Errorf("period %d start %v, want day after previous end %v", i, p.Start, wantStart)
		}
	}

	// The sequence is restartable.
	count := 0
	seq := r.PayPeriodsFrom(now, 3)
	for range seq {
		count++
	}
	for range seq {
		count++
	}
	if count != 6 {
		t.Fatalf("re-ranging the sequence visited %d periods, want 6", count)
	}
}

func TestResolverHonorsCustomAnchor(t *testing.T) {
	anchor := day(2024, time.June, 1) // a Saturday
	r := NewResolver(anchor)

	p := r.CurrentPayPeriod(anchor.AddDate(0, 0, 20))
	if p.Index != 1 {
		t.Fatalf("index = %d, want 1", p.Index)
	}
	if !p.Start.Equal(anchor.AddDate(0, 0, 14)) {
		t.Fatalf("start = %v, want anchor+14d", p.Start)
	}
}

func TestPeriodDateRange(t *testing.T) {
	p := Period{Start: day(2025, time.January, 4), End: endOfDay(day(2025, time.January, 17))}
	if got := p.DateRange(); got != "2025-01-04 - 2025-01-17" {
		t.Fatalf("DateRange() = %q", got)
	}
}
