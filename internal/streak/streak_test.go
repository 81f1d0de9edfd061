package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func at(date string, hour int) time.Time {
	t, err := time.ParseInLocation(dateLayout, date, seoul)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestCalculate(t *testing.T) {
	now := at("2024-05-10", 15)

	tests := []struct {
		name  string
		times []time.Time
		want  int
	}{
		{name: "empty", times: nil, want: 0},
		{name: "single entry today", times: []time.Time{at("2024-05-10", 9)}, want: 1},
		{
			name:  "three consecutive days ending today",
			times: []time.Time{at("2024-05-08", 20), at("2024-05-09", 8), at("2024-05-10", 1)},
			want:  3,
		},
		{
			name:  "duplicates on the same day count once",
			times: []time.Time{at("2024-05-10", 1), at("2024-05-10", 12), at("2024-05-09", 23)},
			want:  2,
		},
		{
			name:  "run ending yesterday is still valid",
			times: []time.Time{at("2024-05-07", 10), at("2024-05-08", 10), at("2024-05-09", 10)},
			want:  3,
		},
		{
			name:  "gap stops the count",
			times: []time.Time{at("2024-05-10", 10), at("2024-05-09", 10), at("2024-05-06", 10), at("2024-05-05", 10)},
			want:  2,
		},
		{
			name:  "neither today nor yesterday",
			times: []time.Time{at("2024-05-08", 10), at("2024-05-07", 10)},
			want:  0,
		},
		{
			name:  "unordered input",
			times: []time.Time{at("2024-05-09", 10), at("2024-05-10", 10), at("2024-05-08", 10)},
			want:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.times, now, seoul))
		})
	}
}

func TestCalculateUsesLocalDayBoundary(t *testing.T) {
	// 2024-05-09 16:00 UTC is already 2024-05-10 in Seoul.
	now := time.Date(2024, 5, 10, 3, 0, 0, 0, time.UTC)
	times := []time.Time{
		time.Date(2024, 5, 9, 16, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 8, 16, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, 2, Calculate(times, now, seoul))
	assert.Equal(t, 1, Calculate(times[:1], now, time.UTC))
}

func TestCalculateMatchesTrailingRunLength(t *testing.T) {
	now := at("2024-05-10", 12)
	for run := 1; run <= 10; run++ {
		var withToday, withoutToday []time.Time
		for i := 0; i < run; i++ {
			withToday = append(withToday, at("2024-05-10", 12).AddDate(0, 0, -i))
			withoutToday = append(withoutToday, at("2024-05-09", 12).AddDate(0, 0, -i))
		}
		// an older disconnected entry must not change the result
		older := at("2024-05-10", 12).AddDate(0, 0, -(run + 5))

		assert.Equal(t, run, Calculate(append(withToday, older), now, seoul))
		assert.Equal(t, run, Calculate(append(withoutToday, older), now, seoul))
	}
}

func TestShouldReward(t *testing.T) {
	assert.False(t, ShouldReward(0, 3))
	assert.False(t, ShouldReward(2, 3))
	assert.True(t, ShouldReward(3, 3))
	assert.False(t, ShouldReward(4, 3))
	assert.True(t, ShouldReward(6, 3))
	assert.False(t, ShouldReward(3, 0))
}

func TestRanges(t *testing.T) {
	start, end := DayRange(at("2024-05-10", 13), seoul)
	assert.Equal(t, at("2024-05-10", 0), start)
	assert.Equal(t, at("2024-05-11", 0), end)

	start, end = MonthRange(2024, time.December, seoul)
	assert.Equal(t, at("2024-12-01", 0), start)
	assert.Equal(t, at("2025-01-01", 0), end)

	d, err := ParseDate("2024-02-29", seoul)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", DateKey(d, seoul))

	_, err = ParseDate("29/02/2024", seoul)
	assert.Error(t, err)
}
