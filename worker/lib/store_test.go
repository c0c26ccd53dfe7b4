package lib

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

func searchThreads(t *testing.T, s *Store, query string, mode models.SortMode) []models.Thread {
	t.Helper()
	var threads []models.Thread
	err := s.SearchThreads(query, mode, func(th models.Thread) error {
		threads = append(threads, th)
		return nil
	})
	require.NoError(t, err)
	return threads
}

func TestStoreSearchThreads(t *testing.T) {
	s := NewStore(fixture(t), []string{"spam"}, false)

	threads := searchThreads(t, s, "*", models.SortNewestFirst)
	require.Len(t, threads, 2)
	assert.Equal(t, "Quarterly report", threads[0].Subject())
	assert.Equal(t, "hello", threads[1].Subject())
	assert.Equal(t, 3, threads[1].MatchedMessages())

	threads = searchThreads(t, s, "*", models.SortOldestFirst)
	require.Len(t, threads, 2)
	assert.Equal(t, "hello", threads[0].Subject())

	// c is excluded, the thread stays visible through a
	threads = searchThreads(t, s, "tag:inbox", models.SortOldestFirst)
	require.Len(t, threads, 1)
	roots, err := threads[0].TopLevelMessages()
	require.NoError(t, err)
	a := roots[0].(*Message)
	assert.True(t, a.Matched())
	assert.False(t, a.Excluded())
	c := a.replies[0].replies[0]
	assert.True(t, c.Matched())
	assert.True(t, c.Excluded())

	// only an excluded message matches
	assert.Empty(t, searchThreads(t, s, "from:carol", models.SortOldestFirst))
}

func TestStoreSearchMessages(t *testing.T) {
	s := NewStore(fixture(t), nil, false)
	collect := func(mode models.SortMode) []string {
		var got []string
		err := s.SearchMessages("tag:inbox", mode, func(m models.Message) error {
			got = append(got, m.ID())
			return nil
		})
		require.NoError(t, err)
		return got
	}
	assert.Equal(t, []string{"a@x", "b@x", "c@x"}, collect(models.SortOldestFirst))
	assert.Equal(t, []string{"c@x", "b@x", "a@x"}, collect(models.SortNewestFirst))
	assert.Equal(t, []string{"a@x", "b@x", "c@x"}, collect(models.SortMessageID))
}

func TestStoreQueryError(t *testing.T) {
	s := NewStore(fixture(t), nil, false)
	err := s.SearchThreads("a or b", models.SortOldestFirst,
		func(models.Thread) error { return nil })
	var qerr *models.QueryError
	require.True(t, errors.As(err, &qerr))
	assert.Equal(t, "a or b", qerr.Query)
}

func TestStoreCallbackError(t *testing.T) {
	s := NewStore(fixture(t), nil, false)
	stop := errors.New("stop")
	calls := 0
	err := s.SearchMessages("*", models.SortOldestFirst, func(models.Message) error {
		calls++
		return stop
	})
	assert.Equal(t, stop, err)
	assert.Equal(t, 1, calls)
}
