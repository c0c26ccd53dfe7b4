package lib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

func ids(msgs []*Message) []string {
	var result []string
	for _, m := range msgs {
		result = append(result, m.ID())
	}
	return result
}

func TestBuildThreads(t *testing.T) {
	threads := BuildThreads(fixture(t), false)
	require.Len(t, threads, 2)
	SortThreads(threads, models.SortOldestFirst)

	first := threads[0]
	require.Len(t, first.roots, 1)
	a := first.roots[0]
	assert.Equal(t, "a@x", a.ID())
	assert.Equal(t, []string{"b@x"}, ids(a.replies))
	assert.Equal(t, []string{"c@x"}, ids(a.replies[0].replies))
	assert.Equal(t, 3, first.TotalMessages())
	assert.Equal(t, first.ID(), a.replies[0].replies[0].ThreadID())
	assert.Equal(t, "hello", first.Subject())
	assert.Equal(t, []string{"inbox", "spam", "unread"}, first.Tags())
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, first.Authors())

	second := threads[1]
	assert.Equal(t, []string{"d@x"}, ids(second.roots))
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Len(t, second.ID(), 16)
}

func TestBuildThreadsRepliesByDate(t *testing.T) {
	msgs := []*Message{
		read(t, "Message-ID: <root@x>\nDate: Mon, 01 Nov 2021 10:00:00 +0000\n"),
		read(t, "Message-ID: <late@x>\nIn-Reply-To: <root@x>\n"+
			"Date: Thu, 04 Nov 2021 10:00:00 +0000\n"),
		read(t, "Message-ID: <early@x>\nIn-Reply-To: <root@x>\n"+
			"Date: Tue, 02 Nov 2021 10:00:00 +0000\n"),
	}
	threads := BuildThreads(msgs, false)
	require.Len(t, threads, 1)
	require.Len(t, threads[0].roots, 1)
	assert.Equal(t, []string{"early@x", "late@x"}, ids(threads[0].roots[0].replies))
}

func TestBuildThreadsEmpty(t *testing.T) {
	assert.Empty(t, BuildThreads(nil, false))
}

func TestCleanRefs(t *testing.T) {
	refs := cleanRefs("m", "b", []string{"b", "a", "m", "a"})
	assert.Equal(t, []string{"a", "b"}, refs)
}
