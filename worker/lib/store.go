package lib

import (
	"strings"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Store searches an in-memory set of messages. It backs the mbox and
// maildir stores and serves as a fixture in tests.
type Store struct {
	messages    []*Message
	excludeTags map[string]struct{}
	bySubject   bool
}

func NewStore(messages []*Message, excludeTags []string, bySubject bool) *Store {
	s := &Store{
		messages:    messages,
		excludeTags: make(map[string]struct{}, len(excludeTags)),
		bySubject:   bySubject,
	}
	for _, tag := range excludeTags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			s.excludeTags[tag] = struct{}{}
		}
	}
	return s
}

func (s *Store) Close() error {
	return nil
}

// search threads all messages and flags the ones matching query. Only
// threads with at least one matched message that is not excluded are
// returned, sorted per mode.
func (s *Store) search(query string, mode models.SortMode) ([]*Thread, error) {
	q, err := ParseQuery(query)
	if err != nil {
		return nil, &models.QueryError{Query: query, Err: err}
	}
	threads := BuildThreads(s.messages, s.bySubject)

	var result []*Thread
	for _, t := range threads {
		visible := false
		for _, root := range t.roots {
			root.walk(func(m *Message) {
				m.excluded = s.isExcluded(m)
				m.matched = q.Match(m)
				if m.matched && !m.excluded {
					visible = true
				}
			})
		}
		if visible {
			// recompute aggregates now that matches are known
			result = append(result, NewThread(t.id, t.roots...))
		}
	}
	log.Debugf("query %q: %d threads out of %d", query, len(result), len(threads))
	SortThreads(result, mode)
	return result, nil
}

func (s *Store) isExcluded(m *Message) bool {
	for _, tag := range m.tags {
		if _, ok := s.excludeTags[tag]; ok {
			return true
		}
	}
	return false
}

func (s *Store) SearchThreads(query string, mode models.SortMode,
	fn func(models.Thread) error,
) error {
	threads, err := s.search(query, mode)
	if err != nil {
		return err
	}
	for _, t := range threads {
		if err := fn(t); err != nil {
			return err
		}
	}
	return nil
}

// SearchMessages delivers matched messages. Chronological modes order them
// by date across threads, the other modes keep thread order.
func (s *Store) SearchMessages(query string, mode models.SortMode,
	fn func(models.Message) error,
) error {
	q, err := ParseQuery(query)
	if err != nil {
		return &models.QueryError{Query: query, Err: err}
	}
	threads := BuildThreads(s.messages, s.bySubject)
	SortThreads(threads, mode)

	var matched []*Message
	for _, t := range threads {
		for _, root := range t.roots {
			root.walk(func(m *Message) {
				m.excluded = s.isExcluded(m)
				m.matched = q.Match(m)
				if m.matched {
					matched = append(matched, m)
				}
			})
		}
	}
	SortMessages(matched, mode)
	for _, m := range matched {
		if err := fn(m); err != nil {
			return err
		}
	}
	return nil
}
