package highlight

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~nmls/nm-livesearch/lib/format"
	"git.sr.ht/~nmls/nm-livesearch/models"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
)

func testMessage() *lib.Message {
	return lib.NewMessage("m1@example.org", time.Date(2021, 11, 9, 10, 0, 0, 0, time.UTC)).
		SetHeader("From", "Bob <bob@b.com>").
		SetHeader("Subject", "weekly sync").
		SetTags("inbox", "unread").
		SetMatched(true)
}

func TestParseInert(t *testing.T) {
	for _, value := range []string{"", "  ", "{}"} {
		spec, err := Parse(value, nil)
		require.NoError(t, err, value)
		assert.Nil(t, spec, value)

		ok, err := spec.Matches(testMessage(), 1, 1)
		require.NoError(t, err)
		assert.False(t, ok)
	}
}

func TestParseErrors(t *testing.T) {
	for _, value := range []string{`{"colour":"red"}`, `{"to":"bob"}`, `{"index":"one"}`, `[`} {
		_, err := Parse(value, nil)
		assert.Error(t, err, value)
	}
}

func TestMatches(t *testing.T) {
	dates := format.NewDates("%Y-%m-%d", 0)
	tests := []struct {
		spec  string
		index int
		want  bool
	}{
		{`{"tags":["inbox"]}`, 1, true},
		{`{"tags":["inbox","unread"]}`, 1, true},
		{`{"tags":["x"]}`, 1, false},
		{`{"tags":[]}`, 1, true},
		{`{"id":"m1@example.org"}`, 1, true},
		{`{"id":"m2@example.org"}`, 1, false},
		{`{"date":"2021-11"}`, 1, true},
		{`{"date":"2021-12"}`, 1, false},
		{`{"index":3}`, 3, true},
		{`{"num":3}`, 3, true},
		{`{"num":3}`, 2, false},
		{`{"total":5}`, 3, true},
		{`{"total":4}`, 3, false},
		{`{"from":"bob@b.com"}`, 1, true},
		{`{"from":"alice"}`, 1, false},
		{`{"subject":"weekly sync"}`, 1, true},
		{`{"subject":"weekly"}`, 1, false},
		{`{"matched":true}`, 1, true},
		{`{"matched":false}`, 1, false},
		{`{"excluded":false}`, 1, true},
		{`{"tags":["inbox"],"from":"alice"}`, 1, false},
		{`{"tags":["inbox"],"from":"bob","index":1}`, 1, true},
	}
	for _, test := range tests {
		spec, err := Parse(test.spec, dates)
		require.NoError(t, err, test.spec)
		require.NotNil(t, spec, test.spec)
		ok, err := spec.Matches(testMessage(), test.index, 5)
		require.NoError(t, err, test.spec)
		assert.Equal(t, test.want, ok, test.spec)
	}
}

func TestMatchesDateFormat(t *testing.T) {
	spec, err := Parse(`{"date":"09/11"}`, format.NewDates("%d/%m/%Y", 0))
	require.NoError(t, err)
	ok, err := spec.Matches(testMessage(), 1, 1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMatchesHeaderError(t *testing.T) {
	msg := testMessage().SetHeader("From", "=?x-unknown?q?bob?=")
	spec, err := Parse(`{"from":"bob"}`, nil)
	require.NoError(t, err)
	_, err = spec.Matches(msg, 1, 1)
	var herr *models.HeaderError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "From", herr.Header)

	// predicates are evaluated in order, id fails first
	spec, err = Parse(`{"id":"other","from":"bob"}`, nil)
	require.NoError(t, err)
	ok, err := spec.Matches(msg, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
