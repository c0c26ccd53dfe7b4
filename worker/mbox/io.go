package mboxer

import (
	"errors"
	"io"
	"strings"

	"github.com/emersion/go-mbox"

	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
)

// Read loads the headers of every message of an mbox file. filename is
// recorded as the file of each message.
func Read(r io.Reader, filename string) ([]*lib.Message, error) {
	mbr := mbox.NewReader(r)
	messages := make([]*lib.Message, 0)
	for {
		msg, err := mbr.NextMessage()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, err
		}

		m, err := lib.ReadMessage(msg, filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(io.Discard, msg); err != nil {
			return nil, err
		}
		h := m.MessageHeader()
		m.SetTags(lib.KeywordTags(h)...)
		m.AddTags(statusTags(h.Get("Status"), h.Get("X-Status"))...)
		messages = append(messages, m)
	}
	return messages, nil
}

var xstatusToTag = map[rune]string{
	'A': "replied",
	'F': "flagged",
	'D': "deleted",
	'T': "draft",
}

// statusTags maps the Status and X-Status headers written by mbox clients
// to tags. Messages never marked as read are unread.
func statusTags(status, xstatus string) []string {
	var tags []string
	if !strings.ContainsRune(status, 'R') {
		tags = append(tags, "unread")
	}
	for _, r := range xstatus {
		if tag, ok := xstatusToTag[r]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}
