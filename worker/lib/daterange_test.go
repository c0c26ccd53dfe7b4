package lib

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	now = func() time.Time {
		return time.Date(2022, 11, 10, 15, 4, 5, 0, time.UTC)
	}
	defer func() { now = time.Now }()

	parse := func(s string) time.Time { d, _ := time.Parse(dateFmt, s); return d }
	tests := []struct {
		s     string
		start time.Time
		end   time.Time
	}{
		{
			s:     "2022-11-01",
			start: parse("2022-11-01"),
			end:   parse("2022-11-02"),
		},
		{
			s:     "2022-11-01..",
			start: parse("2022-11-01"),
		},
		{
			s:   "..2022-11-05",
			end: parse("2022-11-05"),
		},
		{
			s:     "2022-11-01..2022-11-05",
			start: parse("2022-11-01"),
			end:   parse("2022-11-05"),
		},
		{
			s:     "today",
			start: parse("2022-11-10"),
			end:   parse("2022-11-11"),
		},
		{
			s:     "yesterday..",
			start: parse("2022-11-09"),
		},
		{
			s:     "2w..3d",
			start: parse("2022-10-27"),
			end:   parse("2022-11-07"),
		},
		{
			s:     "1m..",
			start: parse("2022-10-10"),
		},
	}

	for _, test := range tests {
		start, end, err := ParseDateRange(test.s)
		require.NoError(t, err, test.s)
		assert.True(t, start.Equal(test.start),
			"%s: wrong start date; expected %v, got %v", test.s, test.start, start)
		assert.True(t, end.Equal(test.end),
			"%s: wrong end date; expected %v, got %v", test.s, test.end, end)
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	for _, s := range []string{"..", "2022-13-01", "last-week", "2022-11-01..soon"} {
		_, _, err := ParseDateRange(s)
		assert.Error(t, err, s)
	}
}
