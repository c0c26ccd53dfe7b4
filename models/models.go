package models

import (
	"time"
)

// A Message is a read-only view of a single message of a thread. Messages
// only know their replies; there is no way back to the parent.
type Message interface {
	ID() string
	ThreadID() string
	Date() time.Time
	// Header returns the decoded value of the named header, or an empty
	// string when the message has no such header.
	Header(name string) (string, error)
	Tags() []string
	Filenames() []string
	// Matched reports whether the message satisfies the active query.
	Matched() bool
	// Excluded reports whether the message carries an excluded tag.
	Excluded() bool
	Replies() ([]Message, error)
}

// A Thread is a set of messages linked by reply relationships. It may have
// more than one top level message.
type Thread interface {
	ID() string
	Subject() string
	Authors() []string
	Tags() []string
	OldestDate() time.Time
	NewestDate() time.Time
	TotalMessages() int
	MatchedMessages() int
	TopLevelMessages() ([]Message, error)
}

type SortMode int

const (
	SortOldestFirst SortMode = iota
	SortNewestFirst
	SortMessageID
	SortUnsorted
)

func (s SortMode) String() string {
	switch s {
	case SortOldestFirst:
		return "oldest"
	case SortNewestFirst:
		return "newest"
	case SortMessageID:
		return "message-id"
	case SortUnsorted:
		return "unsorted"
	}
	return "unknown"
}

// Chronological reports whether results in this mode follow message dates.
func (s SortMode) Chronological() bool {
	return s == SortOldestFirst || s == SortNewestFirst
}

// Show is a rendered entry, the unit of output of the show-* commands.
type Show struct {
	ID        string `json:"id"`
	Entry     string `json:"entry"`
	Highlight bool   `json:"highlight"`
}

// A MessageEntry is the flat JSON form of a message.
type MessageEntry struct {
	ID        string   `json:"id"`
	Date      int64    `json:"date"`
	Filename  string   `json:"filename"`
	Filenames []string `json:"filenames"`
	Tags      []string `json:"tags"`
	From      string   `json:"from"`
	Subject   string   `json:"subject"`
	ThreadID  string   `json:"tid"`
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	// Keys holds session key properties as name/value pairs. No store
	// provides them yet so the list is always empty.
	Keys [][2]string `json:"keys"`
}

// NewMessageEntry collects the flat form of msg.
func NewMessageEntry(msg Message, index, total int) (*MessageEntry, error) {
	from, err := HeaderValue(msg, "From")
	if err != nil {
		return nil, err
	}
	subject, err := HeaderValue(msg, "Subject")
	if err != nil {
		return nil, err
	}
	filenames := msg.Filenames()
	if filenames == nil {
		filenames = []string{}
	}
	var filename string
	if len(filenames) > 0 {
		filename = filenames[0]
	}
	tags := msg.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &MessageEntry{
		ID:        msg.ID(),
		Date:      msg.Date().Unix(),
		Filename:  filename,
		Filenames: filenames,
		Tags:      tags,
		From:      from,
		Subject:   subject,
		ThreadID:  msg.ThreadID(),
		Index:     index,
		Total:     total,
		Keys:      [][2]string{},
	}, nil
}

// A ThreadEntry is the flat JSON form of a thread.
type ThreadEntry struct {
	ID      string   `json:"id"`
	Date    int64    `json:"date"`
	Tags    []string `json:"tags"`
	Authors []string `json:"authors"`
	Subject string   `json:"subject"`
}

func NewThreadEntry(t Thread) *ThreadEntry {
	tags := t.Tags()
	if tags == nil {
		tags = []string{}
	}
	authors := t.Authors()
	if authors == nil {
		authors = []string{}
	}
	return &ThreadEntry{
		ID:      t.ID(),
		Date:    t.NewestDate().Unix(),
		Tags:    tags,
		Authors: authors,
		Subject: t.Subject(),
	}
}
