package templates

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

func testData() *Data {
	return &Data{
		Date:    time.Date(2021, 11, 9, 23, 30, 0, 0, time.UTC),
		Index:   7,
		Total:   12,
		From:    "Bob",
		Subject: "multi\r\nline",
		Tags:    []string{"inbox", "unread"},
	}
}

func TestRender(t *testing.T) {
	tmpl := New("", "", format.NewDates("", 0))
	response := "├─┬"

	tests := []struct {
		format   string
		response *string
		want     string
	}{
		{"{index:03}", nil, "007"},
		{"{index}/{total}", nil, "7/12"},
		{"{total:1}", nil, "12"},
		{"[{from:10}]", nil, "[Bob       ]"},
		{"[{from:2}]", nil, "[Bob]"},
		{"{ from :4}|", nil, "Bob |"},
		{"{subject}", nil, "multi  line"},
		{"{tags}", nil, "inbox, unread"},
		{"{date}", nil, "2021-11-09"},
		{"{response}▶", &response, "├─┬▶"},
		{"{response:5}|", &response, "├─┬  |"},
		{"no placeholders", nil, "no placeholders"},
		{"{{index}}", nil, "{7}"},
	}
	for _, test := range tests {
		data := testData()
		data.Response = test.response
		got, err := tmpl.Render(test.format, data)
		require.NoError(t, err, test.format)
		assert.Equal(t, test.want, got, test.format)
	}
}

func TestRenderWideRunes(t *testing.T) {
	tmpl := New("", "", nil)
	data := testData()
	data.From = "日本"
	got, err := tmpl.Render("{from:6}|", data)
	require.NoError(t, err)
	assert.Equal(t, "日本  |", got)
}

func TestRenderHumanized(t *testing.T) {
	dates := format.NewDates("%Y-%m-%d", 5)
	dates.Now = func() time.Time {
		return time.Date(2021, 11, 12, 23, 30, 0, 0, time.UTC)
	}
	tmpl := New("", "", dates)
	got, err := tmpl.Render("{Date}", testData())
	require.NoError(t, err)
	assert.Equal(t, "3 days ago", got)

	dates.HumanizeDays = 1
	got, err = tmpl.Render("{Date}", testData())
	require.NoError(t, err)
	assert.Equal(t, "2021-11-09", got)
}

func TestRenderErrors(t *testing.T) {
	tmpl := New("", "", nil)
	for _, format := range []string{
		"{bogus}",
		"{}",
		"{from:x}",
		"{from:}",
		"{index:-2}",
		"{index:2000000000}",
		"{from:4097}",
		"{response}",
	} {
		_, err := tmpl.Render(format, testData())
		var terr *models.TemplateError
		assert.True(t, errors.As(err, &terr), format)
	}
}

func TestRenderMaxWidth(t *testing.T) {
	tmpl := New("", "", nil)
	out, err := tmpl.Render("{index:4096}", testData())
	require.NoError(t, err)
	assert.Len(t, out, 4096)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, New("", "", nil).Validate())
	assert.Error(t, New("{response}", "", nil).Validate())
	assert.Error(t, New("", "{sender}", nil).Validate())
	assert.Error(t, New("{index:2000000000}", "", nil).Validate())
}

func TestMessageData(t *testing.T) {
	msg := lib.NewMessage("m@x", time.Unix(100, 0)).
		SetHeader("From", "Alice <alice@x.org>").
		SetHeader("Subject", "=?utf-8?q?caf=C3=A9?=").
		SetTags("inbox")
	data, err := MessageData(msg, 2, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice <alice@x.org>", data.From)
	assert.Equal(t, "café", data.Subject)
	assert.Equal(t, 2, data.Index)
	assert.Equal(t, 3, data.Total)

	bad := lib.NewMessage("bad@x", time.Unix(100, 0)).
		SetHeader("From", "=?x-unknown?q?bob?=")
	_, err = MessageData(bad, 1, 1, nil)
	var herr *models.HeaderError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, "From", herr.Header)
	assert.Equal(t, "bad@x", herr.MessageID)
}

func TestThreadData(t *testing.T) {
	a := lib.NewMessage("a@x", time.Unix(10, 0)).
		SetHeader("From", "Alice <alice@x.org>").
		SetHeader("Subject", "topic").
		SetMatched(true)
	b := lib.NewMessage("b@x", time.Unix(20, 0)).
		SetHeader("From", "Bob <bob@x.org>")
	thread := lib.NewThread("t1", a.AddReply(b))

	data := ThreadData(thread)
	assert.Equal(t, 1, data.Index)
	assert.Equal(t, 2, data.Total)
	assert.Equal(t, "Alice, Bob", data.From)
	assert.Equal(t, "topic", data.Subject)
	assert.Equal(t, time.Unix(20, 0), data.Date)
}
