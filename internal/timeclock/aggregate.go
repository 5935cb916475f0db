package timeclock

import (
	"sort"
	"time"

	"github.com/rappy1999/workhours/internal/model"
)

// DaySummary is one calendar day of entries with exact minute totals.
// Entries are ordered by ascending start time.
type DaySummary struct {
	Date         time.Time          `json:"date"`
	Entries      []*model.TimeEntry `json:"entries"`
	GrossMinutes int                `json:"grossDuration"`
	NetMinutes   int                `json:"netDuration"`
	LunchMinutes int                `json:"lunchDuration"`
}

// SkippedEntry reports an entry excluded from an aggregate because its
// fields could not be interpreted. Skips never abort the aggregation:
// partial results beat total failure for a display-oriented summary.
type SkippedEntry struct {
	EntryID string `json:"entryId"`
	Reason  string `json:"reason"`
}

// EntriesInRange filters entries to those dated within [start, end],
// inclusive at day granularity. The end bound is clamped to 23:59:59.999
// of its calendar day, so start == end == D selects every entry dated D
// regardless of its time-of-day component.
func EntriesInRange(entries []*model.TimeEntry, start, end time.Time) []*model.TimeEntry {
	from := startOfDay(start)
	to := endOfDay(end)
	var out []*model.TimeEntry
	for _, e := range entries {
		if !e.Date.Before(from) && !e.Date.After(to) {
			out = append(out, e)
		}
	}
	return out
}

// GroupByDay buckets entries by their calendar date and sums gross, net and
// lunch minutes per day. Day groups come back newest first; within a day,
// entries are ordered chronologically by start time. Entries whose date is
// missing or whose start time does not parse are left out and reported in
// the skipped slice.
func GroupByDay(entries []*model.TimeEntry) ([]DaySummary, []SkippedEntry) {
	type bucket struct {
		summary DaySummary
		starts  map[*model.TimeEntry]int
	}
	buckets := make(map[string]*bucket)
	var skipped []SkippedEntry

	for _, e := range entries {
		if e.Date.IsZero() {
			skipped = append(skipped, SkippedEntry{EntryID: e.EntryID, Reason: "missing date"})
			continue
		}
		startMin, err := ParseClock(e.StartTime)
		if err != nil {
			skipped = append(skipped, SkippedEntry{EntryID: e.EntryID, Reason: err.Error()})
			continue
		}
		day := startOfDay(e.Date)
		key := day.Format("2006-01-02")
		b, ok := buckets[key]
		if !ok {
			b = &bucket{
				summary: DaySummary{Date: day},
				starts:  make(map[*model.TimeEntry]int),
			}
			buckets[key] = b
		}
		b.summary.Entries = append(b.summary.Entries, e)
		b.summary.GrossMinutes += e.GrossMinutes
		b.summary.NetMinutes += e.NetMinutes
		b.summary.LunchMinutes += e.LunchMinutes
		b.starts[e] = startMin
	}

	days := make([]DaySummary, 0, len(buckets))
	for _, b := range buckets {
		starts := b.starts
		sort.SliceStable(b.summary.Entries, func(i, j int) bool {
			return starts[b.summary.Entries[i]] < starts[b.summary.Entries[j]]
		})
		days = append(days, b.summary)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.After(days[j].Date) })
	return days, skipped
}

// TotalNet sums net minutes over all entries.
func TotalNet(entries []*model.TimeEntry) int {
	total := 0
	for _, e := range entries {
		total += e.NetMinutes
	}
	return total
}
