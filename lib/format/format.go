package format

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ncruces/go-strftime"
)

const DefaultDateFormat = "%Y-%m-%d"

// Dates renders message dates. All dates are shown in UTC so that output
// does not depend on the local timezone.
type Dates struct {
	// Format is a strftime(3) format string.
	Format string
	// HumanizeDays is the recency window, in days, inside which dates are
	// shown relative to Now ("3 days ago").
	HumanizeDays int
	// Now returns the reference time for humanized dates. Defaults to
	// time.Now.
	Now func() time.Time
}

func NewDates(format string, humanizeDays int) *Dates {
	if format == "" {
		format = DefaultDateFormat
	}
	return &Dates{Format: format, HumanizeDays: humanizeDays, Now: time.Now}
}

// Date renders t with the configured format.
func (d *Dates) Date(t time.Time) string {
	return strftime.Format(d.Format, t.UTC())
}

// Humanize renders t relative to now when it is within the recency window
// and falls back to Date otherwise.
func (d *Dates) Humanize(t time.Time) string {
	now := time.Now()
	if d.Now != nil {
		now = d.Now()
	}
	cutoff := now.AddDate(0, 0, -d.HumanizeDays)
	if t.After(cutoff) {
		return humanize.RelTime(t, now, "ago", "from now")
	}
	return d.Date(t)
}
