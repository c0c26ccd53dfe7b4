package lib

import (
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Message is an in-memory models.Message. The file based stores load every
// message of their source into one and thread them on each search.
type Message struct {
	id       string
	threadID string
	date     time.Time
	header   mail.Header
	tags     []string
	files    []string
	matched  bool
	excluded bool
	replies  []*Message
}

// NewMessage returns a message without headers. id is the message-id
// without angle brackets.
func NewMessage(id string, date time.Time) *Message {
	return &Message{id: id, date: date}
}

// NewMessageFromHeader builds a message from its parsed header. The date and
// the id are taken from the header when present.
func NewMessageFromHeader(h mail.Header, filename string, fallbackID string) *Message {
	id, err := h.MessageID()
	if err != nil || id == "" {
		id = fallbackID
	}
	date, err := h.Date()
	if err != nil {
		date = time.Unix(0, 0)
	}
	msg := &Message{id: id, date: date, header: h}
	if filename != "" {
		msg.files = []string{filename}
	}
	return msg
}

func (m *Message) ID() string          { return m.id }
func (m *Message) ThreadID() string    { return m.threadID }
func (m *Message) Date() time.Time     { return m.date }
func (m *Message) Tags() []string      { return m.tags }
func (m *Message) Filenames() []string { return m.files }
func (m *Message) Matched() bool       { return m.matched }
func (m *Message) Excluded() bool      { return m.excluded }

func (m *Message) Header(name string) (string, error) {
	if !m.header.Has(name) {
		return "", nil
	}
	return m.header.Text(name)
}

func (m *Message) Replies() ([]models.Message, error) {
	replies := make([]models.Message, 0, len(m.replies))
	for _, r := range m.replies {
		replies = append(replies, r)
	}
	return replies, nil
}

// SetHeader sets a raw header field. Encoded words are decoded by Header.
func (m *Message) SetHeader(name, value string) *Message {
	m.header.Set(name, value)
	return m
}

// SetTags replaces the tags of the message. Tags are kept sorted.
func (m *Message) SetTags(tags ...string) *Message {
	m.tags = normalizeTags(tags)
	return m
}

func (m *Message) AddTags(tags ...string) *Message {
	return m.SetTags(append(m.tags, tags...)...)
}

func (m *Message) SetFilenames(files ...string) *Message {
	m.files = files
	return m
}

func (m *Message) SetMatched(matched bool) *Message {
	m.matched = matched
	return m
}

func (m *Message) SetExcluded(excluded bool) *Message {
	m.excluded = excluded
	return m
}

func (m *Message) SetThreadID(id string) *Message {
	m.threadID = id
	return m
}

// AddReply appends r to the replies of m.
func (m *Message) AddReply(r ...*Message) *Message {
	m.replies = append(m.replies, r...)
	return m
}

// MessageHeader gives access to the underlying header.
func (m *Message) MessageHeader() *mail.Header {
	return &m.header
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

// walk visits m and its replies in pre-order.
func (m *Message) walk(fn func(*Message)) {
	fn(m)
	for _, r := range m.replies {
		r.walk(fn)
	}
}

// Thread is an in-memory models.Thread over a forest of messages.
type Thread struct {
	id      string
	roots   []*Message
	subject string
	authors []string
	tags    []string
	oldest  time.Time
	newest  time.Time
	total   int
	matched int
}

// NewThread computes the thread aggregates from the given top level
// messages and stamps their thread id.
func NewThread(id string, roots ...*Message) *Thread {
	t := &Thread{id: id, roots: roots}
	var matchedAuthors, otherAuthors []string
	seen := make(map[string]struct{})
	var tags []string
	var first *Message
	for _, root := range roots {
		root.walk(func(m *Message) {
			m.threadID = id
			t.total++
			if t.oldest.IsZero() || m.date.Before(t.oldest) {
				t.oldest = m.date
			}
			if m.date.After(t.newest) {
				t.newest = m.date
			}
			tags = append(tags, m.tags...)
			if m.matched {
				t.matched++
				if first == nil {
					first = m
				}
			}
			author := authorName(m)
			if author == "" {
				return
			}
			if _, ok := seen[author]; ok {
				return
			}
			seen[author] = struct{}{}
			if m.matched {
				matchedAuthors = append(matchedAuthors, author)
			} else {
				otherAuthors = append(otherAuthors, author)
			}
		})
	}
	if first == nil && len(roots) > 0 {
		first = roots[0]
	}
	if first != nil {
		t.subject, _ = first.Header("Subject")
	}
	t.authors = append(matchedAuthors, otherAuthors...)
	t.tags = normalizeTags(tags)
	return t
}

// SetDates overrides the oldest and newest dates of the thread.
func (t *Thread) SetDates(oldest, newest time.Time) *Thread {
	t.oldest = oldest
	t.newest = newest
	return t
}

func (t *Thread) ID() string            { return t.id }
func (t *Thread) Subject() string       { return t.subject }
func (t *Thread) Authors() []string     { return t.authors }
func (t *Thread) Tags() []string        { return t.tags }
func (t *Thread) OldestDate() time.Time { return t.oldest }
func (t *Thread) NewestDate() time.Time { return t.newest }
func (t *Thread) TotalMessages() int    { return t.total }
func (t *Thread) MatchedMessages() int  { return t.matched }

func (t *Thread) TopLevelMessages() ([]models.Message, error) {
	msgs := make([]models.Message, 0, len(t.roots))
	for _, r := range t.roots {
		msgs = append(msgs, r)
	}
	return msgs, nil
}

// authorName returns the display name of the sender, or its address when it
// has none.
func authorName(m *Message) string {
	addrs, err := m.header.AddressList("From")
	if err == nil && len(addrs) > 0 {
		if addrs[0].Name != "" {
			return addrs[0].Name
		}
		return addrs[0].Address
	}
	from, _ := m.Header("From")
	return strings.TrimSpace(from)
}
