package lib

import (
	"bufio"
	"crypto/sha1"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/emersion/go-message"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-message/textproto"
	"github.com/pkg/errors"
)

// RFC 1123Z regexp
var dateRe = regexp.MustCompile(`(((Mon|Tue|Wed|Thu|Fri|Sat|Sun))[,]?\s[0-9]{1,2})\s` +
	`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s` +
	`([0-9]{4})\s([0-9]{2}):([0-9]{2})(:([0-9]{2}))?\s([\+|\-][0-9]{4})\s?`)

// ReadMessage parses the header of a raw message and wraps it. The body is
// not read. Messages without a Message-ID get a synthetic one derived from
// their header, the way notmuch does.
func ReadMessage(r io.Reader, filename string) (*Message, error) {
	th, err := textproto.ReadHeader(bufio.NewReader(r))
	if err != nil {
		return nil, errors.Wrapf(err, "%s: cannot read header", filename)
	}
	h := mail.Header{Header: message.Header{Header: th}}
	id := syntheticID(&h)
	date, dateErr := parseDate(&h)
	msg := NewMessageFromHeader(limitHeaders(&h, keptHeaders), filename, id)
	if dateErr == nil {
		msg.date = date
	}
	return msg, nil
}

func syntheticID(h *mail.Header) string {
	sum := sha1.New()
	fields := h.Fields()
	for fields.Next() {
		fmt.Fprintf(sum, "%s: %s\n", fields.Key(), fields.Value())
	}
	return fmt.Sprintf("notmuch-sha1-%x", sum.Sum(nil))
}

// parseDate extends the built-in date parser with additional layouts which are
// non-conforming but appear in the wild.
func parseDate(h *mail.Header) (time.Time, error) {
	t, parseErr := h.Date()
	if parseErr == nil {
		return t, nil
	}
	text, err := h.Text("date")
	if err != nil {
		return time.Time{}, errors.New("no date header")
	}
	// sometimes, no error occurs but the date is empty. In this case, guess time from received header field
	if text == "" {
		guess, err := h.Text("received")
		if err != nil {
			return time.Time{}, errors.New("no received header")
		}
		t, err := time.Parse(time.RFC1123Z, dateRe.FindString(guess))
		if err != nil {
			return time.Time{}, errors.Wrap(err, "no usable date")
		}
		return t, nil
	}
	layouts := []string{
		// X-Mailer: EarthLink Zoo Mail 1.0
		"Mon, _2 Jan 2006 15:04:05 -0700 (GMT-07:00)",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("unrecognized date format: %s", text)
}

// KeywordTags extracts tags from the X-Keywords, Keywords and X-Label
// headers written by mail clients that store labels in the message itself.
func KeywordTags(h *mail.Header) []string {
	var tags []string
	for _, key := range []string{"X-Keywords", "Keywords", "X-Label"} {
		fields := h.FieldsByKey(key)
		for fields.Next() {
			for _, tag := range strings.FieldsFunc(fields.Value(), func(r rune) bool {
				return r == ',' || r == ' ' || r == '\t'
			}) {
				tags = append(tags, strings.ToLower(tag))
			}
		}
	}
	return tags
}
