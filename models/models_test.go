package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~nmls/nm-livesearch/models"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
)

func TestThreadEntryAuthors(t *testing.T) {
	reply := lib.NewMessage("b@x", time.Unix(20, 0)).
		SetHeader("From", "Bob <bob@x.org>")
	root := lib.NewMessage("a@x", time.Unix(10, 0)).
		SetHeader("From", "Alice <alice@x.org>").
		AddReply(reply)
	th := lib.NewThread("t", root)

	out, err := json.Marshal(models.NewThreadEntry(th))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"t","date":20,"tags":[],"authors":["Alice","Bob"],"subject":""}`,
		string(out))
}

func TestThreadEntryNoAuthors(t *testing.T) {
	th := lib.NewThread("t", lib.NewMessage("a@x", time.Unix(10, 0)))

	out, err := json.Marshal(models.NewThreadEntry(th))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"authors":[]`)
}

func TestMessageEntryKeys(t *testing.T) {
	msg := lib.NewMessage("a@x", time.Unix(10, 0)).
		SetHeader("From", "Alice <alice@x.org>")

	entry, err := models.NewMessageEntry(msg, 1, 1)
	require.NoError(t, err)
	out, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"keys":[]`)
	assert.Contains(t, string(out), `"filenames":[]`)
}
