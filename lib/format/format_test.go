package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	d := NewDates("", 5)
	date := time.Date(2021, 11, 9, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2021-11-09", d.Date(date))

	d.Format = "%d/%m/%Y %H:%M"
	assert.Equal(t, "09/11/2021 23:30", d.Date(date))
}

func TestHumanize(t *testing.T) {
	now := time.Date(2023, 5, 10, 12, 0, 0, 0, time.UTC)
	d := NewDates("%Y-%m-%d", 5)
	d.Now = func() time.Time { return now }

	assert.Equal(t, "3 days ago", d.Humanize(now.AddDate(0, 0, -3)))
	assert.Equal(t, "2023-04-01", d.Humanize(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)))

	d.HumanizeDays = 0
	assert.Equal(t, "2023-05-07", d.Humanize(now.AddDate(0, 0, -3)))
}
