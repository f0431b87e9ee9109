package presence

import (
	"fmt"
	"sort"
	"time"
)

// Granularity selects the calendar bucket size for aggregation.
type Granularity string

// Supported granularities.
const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity validates a user-supplied granularity string.
func ParseGranularity(raw string) (Granularity, error) {
	switch Granularity(raw) {
	case GranularityDay, GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(raw), nil
	}
	return "", fmt.Errorf("unknown granularity %q", raw)
}

// PeriodSummary is one calendar bucket of presence time. PeriodEnd is only
// set for weekly buckets (the Sunday closing the week).
type PeriodSummary struct {
	PeriodKey    string  `json:"period"`
	PeriodEnd    string  `json:"period_end,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	BadgeCount   int     `json:"badge_count"`
	AverageHours float64 `json:"average_hours"`
}

const dayKeyLayout = "2006-01-02"

// bucketFunc maps a session's entry time to its bucket key and, for weeks,
// the bucket's closing date.
type bucketFunc func(t time.Time) (key, end string)

// Aggregate folds sessions into per-period summaries at the requested
// granularity. Only plausible sessions (matched exit, duration inside the
// 0-16h bound) contribute. Bucket assignment uses the entry timestamp alone,
// even when the exit crosses a boundary. Output is sorted ascending by
// period key and is a pure function of its input: the same sessions always
// produce the identical slice.
func Aggregate(sessions []Session, granularity Granularity) ([]PeriodSummary, error) {
	bucket, err := bucketFor(granularity)
	if err != nil {
		return nil, err
	}

	type accumulator struct {
		minutes float64
		badges  map[string]struct{}
		end     string
	}
	buckets := make(map[string]*accumulator)

	for _, session := range sessions {
		if !session.Plausible() {
			continue
		}
		key, end := bucket(session.EntryTime)
		acc := buckets[key]
		if acc == nil {
			acc = &accumulator{badges: make(map[string]struct{}), end: end}
			buckets[key] = acc
		}
		acc.minutes += session.DurationMinutes()
		acc.badges[session.BadgeID] = struct{}{}
	}

	summaries := make([]PeriodSummary, 0, len(buckets))
	for key, acc := range buckets {
		totalHours := acc.minutes / 60
		count := len(acc.badges)
		average := 0.0
		if count > 0 {
			average = totalHours / float64(count)
		}
		summaries = append(summaries, PeriodSummary{
			PeriodKey:    key,
			PeriodEnd:    acc.end,
			TotalHours:   totalHours,
			BadgeCount:   count,
			AverageHours: average,
		})
	}

	// All key formats sort lexicographically in calendar order.
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].PeriodKey < summaries[j].PeriodKey
	})
	return summaries, nil
}

func bucketFor(granularity Granularity) (bucketFunc, error) {
	switch granularity {
	case GranularityDay:
		return func(t time.Time) (string, string) {
			return t.Format(dayKeyLayout), ""
		}, nil
	case GranularityWeek:
		return func(t time.Time) (string, string) {
			start := weekStart(t)
			return start.Format(dayKeyLayout), start.AddDate(0, 0, 6).Format(dayKeyLayout)
		}, nil
	case GranularityMonth:
		return func(t time.Time) (string, string) {
			return t.Format("2006-01"), ""
		}, nil
	case GranularityYear:
		return func(t time.Time) (string, string) {
			return t.Format("2006"), ""
		}, nil
	}
	return nil, fmt.Errorf("unknown granularity %q", granularity)
}

// weekStart returns the Monday opening the ISO week containing t. Sunday
// counts as day 7, so a Sunday belongs to the week ending that Sunday.
func weekStart(t time.Time) time.Time {
	day := int(t.Weekday())
	if day == 0 {
		day = 7
	}
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return date.AddDate(0, 0, -(day - 1))
}
