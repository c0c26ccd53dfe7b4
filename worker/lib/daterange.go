package lib

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const dateFmt = "2006-01-02"

// now is replaced in tests
var now = time.Now

var relativeDate = regexp.MustCompile(`^(\d+)([dwmy])$`)

// ParseDateRange parses a date range into a start and end date. Dates are
// either in the YYYY-MM-DD format, one of "today" and "yesterday", or a
// relative amount of days, weeks, months or years in the past such as "3d"
// or "2w". Dates are interpreted in UTC.
//
// Start and end dates are connected by the range operator ".." where end date
// is not included in the date range. A single date covers that whole day.
//
// ParseDateRange can also parse open-ended ranges, i.e. start.. or ..end are
// allowed.
func ParseDateRange(s string) (start, end time.Time, err error) {
	s = strings.ReplaceAll(s, " ", "")
	i := strings.Index(s, "..")
	switch {
	case i < 0:
		start, err = parseDay(s)
		if err != nil {
			return
		}
		end = start.AddDate(0, 0, 1)

	case i == 0:
		if len(s) <= 2 {
			err = errors.New("no date found")
			return
		}
		end, err = parseDay(s[2:])

	default:
		start, err = parseDay(s[:i])
		if err != nil {
			return
		}
		if len(s[i:]) <= 2 {
			return
		}
		end, err = parseDay(s[(i + 2):])
	}
	return
}

func parseDay(s string) (time.Time, error) {
	today := now().UTC().Truncate(24 * time.Hour)
	switch strings.ToLower(s) {
	case "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	if m := relativeDate.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, errors.Wrapf(err, "bad date %q", s)
		}
		switch m[2] {
		case "d":
			return today.AddDate(0, 0, -n), nil
		case "w":
			return today.AddDate(0, 0, -7*n), nil
		case "m":
			return today.AddDate(0, -n, 0), nil
		default:
			return today.AddDate(-n, 0, 0), nil
		}
	}
	t, err := time.Parse(dateFmt, s)
	if err != nil {
		return time.Time{}, errors.Wrap(err, "failed to parse date")
	}
	return t, nil
}
