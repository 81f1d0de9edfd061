// Package streak computes consecutive-day journaling runs.
package streak

import (
	"fmt"
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// DateKey formats t as a calendar date in loc.
func DateKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

// Calculate counts the unbroken run of distinct local dates ending today, or
// ending yesterday when there is no entry today yet.
func Calculate(times []time.Time, now time.Time, loc *time.Location) int {
	if len(times) == 0 {
		return 0
	}

	seen := make(map[string]struct{}, len(times))
	dates := make([]string, 0, len(times))
	for _, t := range times {
		key := DateKey(t, loc)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	today := startOfDay(now, loc)
	expected := today
	if _, ok := seen[DateKey(today, loc)]; !ok {
		expected = today.AddDate(0, 0, -1)
	}

	streak := 0
	for _, d := range dates {
		key := DateKey(expected, loc)
		if d > key {
			// future-dated entries never extend the run
			continue
		}
		if d != key {
			break
		}
		streak++
		expected = expected.AddDate(0, 0, -1)
	}
	return streak
}

// ShouldReward reports whether a streak lands on a reward milestone.
func ShouldReward(streak, interval int) bool {
	if interval <= 0 {
		return false
	}
	return streak > 0 && streak%interval == 0
}

// ParseDate parses a YYYY-MM-DD date in loc.
func ParseDate(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be formatted as YYYY-MM-DD")
	}
	return t, nil
}

// DayRange returns [start, end) of the local day containing t.
func DayRange(t time.Time, loc *time.Location) (time.Time, time.Time) {
	start := startOfDay(t, loc)
	return start, start.AddDate(0, 0, 1)
}

// MonthRange returns [start, end) of a calendar month in loc.
func MonthRange(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
