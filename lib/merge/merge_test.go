package merge

import (
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

type thread struct {
	boundary int64
	dates    []int64
}

func run(t *testing.T, mode models.SortMode, threads []thread) []string {
	t.Helper()
	var out []string
	s := New(mode, func(show *models.Show) error {
		out = append(out, show.ID)
		return nil
	})
	for _, th := range threads {
		s.Thread(time.Unix(th.boundary, 0))
		for _, d := range th.dates {
			show := &models.Show{ID: strconv.FormatInt(d, 10)}
			require.NoError(t, s.Push(time.Unix(d, 0), show))
		}
		require.NoError(t, s.Flush())
	}
	require.NoError(t, s.Drain())
	assert.Zero(t, s.Pending())
	return out
}

func TestMergeOldestFirst(t *testing.T) {
	out := run(t, models.SortOldestFirst, []thread{
		{10, []int64{15}},
		{20, []int64{5}},
		{30, []int64{25}},
	})
	assert.Equal(t, []string{"5", "15", "25"}, out)

	out = run(t, models.SortOldestFirst, []thread{
		{1, []int64{1, 9, 4}},
		{2, []int64{2, 3}},
		{5, []int64{5, 6}},
		{8, []int64{8}},
	})
	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "8", "9"}, out)
}

func TestMergeNewestFirst(t *testing.T) {
	out := run(t, models.SortNewestFirst, []thread{
		{30, []int64{30, 12}},
		{25, []int64{18, 25}},
		{20, []int64{20}},
		{11, []int64{11, 2}},
	})
	assert.Equal(t, []string{"30", "25", "20", "18", "12", "11", "2"}, out)
}

func TestMergeEqualDates(t *testing.T) {
	var out []*models.Show
	s := New(models.SortOldestFirst, func(show *models.Show) error {
		out = append(out, show)
		return nil
	})
	s.Thread(time.Unix(1, 0))
	first := &models.Show{ID: "first"}
	second := &models.Show{ID: "second"}
	require.NoError(t, s.Push(time.Unix(5, 0), first))
	require.NoError(t, s.Push(time.Unix(5, 0), second))
	require.NoError(t, s.Drain())
	assert.Equal(t, []*models.Show{first, second}, out)
}

func TestMergeUnsorted(t *testing.T) {
	for _, mode := range []models.SortMode{models.SortUnsorted, models.SortMessageID} {
		out := run(t, mode, []thread{
			{10, []int64{15}},
			{20, []int64{5}},
			{30, []int64{25}},
		})
		assert.Equal(t, []string{"15", "5", "25"}, out, mode.String())
	}
}

func TestMergeEmitError(t *testing.T) {
	stop := errors.New("closed")
	s := New(models.SortOldestFirst, func(*models.Show) error { return stop })
	s.Thread(time.Unix(10, 0))
	require.NoError(t, s.Push(time.Unix(15, 0), &models.Show{}))
	assert.Equal(t, stop, s.Push(time.Unix(10, 0), &models.Show{}))
	assert.Equal(t, stop, s.Drain())
}
