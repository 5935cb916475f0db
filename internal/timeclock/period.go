package timeclock

import (
	"iter"
	"time"
)

// Weeks run Saturday through Friday, matching the payroll calendar the
// tracker was built around.
const weekStart = time.Saturday

// DefaultAnchor is the first day of pay period zero: Saturday, 7 January
// 2023. Periods are 14 days, contiguous and non-overlapping from there.
var DefaultAnchor = time.Date(2023, time.January, 7, 0, 0, 0, 0, time.UTC)

const payPeriodDays = 14

// endOfDayNanos is the nanosecond offset for a 23:59:59.999 day boundary.
const endOfDayNanos = 999 * int(time.Millisecond)

// Period is an inclusive date range clamped to day boundaries: the start
// at 00:00:00.000 and the end at 23:59:59.999.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// DateRange renders the period as "YYYY-MM-DD - YYYY-MM-DD".
func (p Period) DateRange() string {
	return p.Start.Format("2006-01-02") + " - " + p.End.Format("2006-01-02")
}

// PayPeriod is a 14-day period with its index relative to the anchor.
type PayPeriod struct {
	Period
	Index int `json:"index"`
}

// Resolver computes week and pay-period boundaries. The zero value anchors
// pay periods at DefaultAnchor.
type Resolver struct {
	anchor time.Time
}

// NewResolver returns a Resolver anchored at the given date. Only the
// calendar date of the anchor is significant; its time of day is ignored.
func NewResolver(anchor time.Time) Resolver {
	if anchor.IsZero() {
		anchor = DefaultAnchor
	}
	return Resolver{anchor: anchor}
}

// CurrentWeek returns the Saturday-through-Friday week containing now,
// in now's location.
func (Resolver) CurrentWeek(now time.Time) Period {
	daysBack := (int(now.Weekday()) - int(weekStart) + 7) % 7
	y, m, d := now.Date()
	start := time.Date(y, m, d-daysBack, 0, 0, 0, 0, now.Location())
	return Period{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}
}

// CurrentPayPeriod returns the pay period containing now. A reference time
// exactly on an anchor-aligned boundary lands in the period whose start
// equals that boundary; dates before the anchor yield negative indexes.
func (r Resolver) CurrentPayPeriod(now time.Time) PayPeriod {
	index := floorDiv(r.daysSinceAnchor(now), payPeriodDays)
	return r.payPeriodAt(index, now.Location())
}

// PayPeriodsFrom yields count consecutive pay periods beginning with the
// one containing now. The sequence is finite and can be ranged over more
// than once.
func (r Resolver) PayPeriodsFrom(now time.Time, count int) iter.Seq[PayPeriod] {
	first := floorDiv(r.daysSinceAnchor(now), payPeriodDays)
	loc := now.Location()
	return func(yield func(PayPeriod) bool) {
		for i := 0; i < count; i++ {
			if !yield(r.payPeriodAt(first+i, loc)) {
				return
			}
		}
	}
}

func (r Resolver) payPeriodAt(index int, loc *time.Location) PayPeriod {
	y, m, d := r.anchor.Date()
	start := time.Date(y, m, d+index*payPeriodDays, 0, 0, 0, 0, loc)
	return PayPeriod{
		Period: Period{Start: start, End: endOfDay(start.AddDate(0, 0, payPeriodDays-1))},
		Index:  index,
	}
}

// daysSinceAnchor counts whole calendar days from the anchor date to now's
// date. Both are normalized to UTC midnights so the count is exact across
// DST transitions.
func (r Resolver) daysSinceAnchor(now time.Time) int {
	ay, am, ad := r.anchor.Date()
	ny, nm, nd := now.Date()
	a := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int(n.Sub(a) / (24 * time.Hour))
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, endOfDayNanos, t.Location())
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// floorDiv divides rounding toward negative infinity, so day offsets before
// the anchor resolve to the correct negative period index.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
