//go:build notmuch
// +build notmuch

package notmuch

import (
	"fmt"

	nm "github.com/zenhack/go.notmuch"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/xdg"
	"git.sr.ht/~nmls/nm-livesearch/models"
	"git.sr.ht/~nmls/nm-livesearch/worker/handlers"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
	notmuch "git.sr.ht/~nmls/nm-livesearch/worker/notmuch/lib"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

func init() {
	handlers.RegisterStoreFactory("notmuch", NewStore)
}

// store searches a notmuch database. Queries use the notmuch syntax.
type store struct {
	db          *notmuch.DB
	excludeTags map[string]struct{}
}

// NewStore opens the notmuch database the source URL points at.
func NewStore(cfg *types.StoreConfig) (types.Store, error) {
	path := xdg.ExpandHome(cfg.URL.Host, cfg.URL.Path)
	db := notmuch.NewDB(path, cfg.ExcludeTags)
	if err := db.Connect(); err != nil {
		return nil, fmt.Errorf("notmuch: %w", err)
	}
	s := &store{
		db:          db,
		excludeTags: make(map[string]struct{}, len(cfg.ExcludeTags)),
	}
	for _, tag := range cfg.ExcludeTags {
		s.excludeTags[tag] = struct{}{}
	}
	log.Debugf("notmuch: opened %s", path)
	return s, nil
}

func (s *store) Close() error {
	return s.db.Close()
}

func (s *store) SearchThreads(query string, mode models.SortMode,
	fn func(models.Thread) error,
) error {
	matched, err := s.db.MsgIDsFromQuery(query)
	if err != nil {
		return &models.QueryError{Query: query, Err: err}
	}
	var cbErr error
	err = s.db.Threads(query, mode, func(t *nm.Thread) error {
		// notmuch objects die with the query, copy the tree out of it
		msgs := t.TopLevelMessages()
		defer msgs.Close()
		var roots []*lib.Message
		var msg *nm.Message
		for msgs.Next(&msg) {
			roots = append(roots, s.convert(msg, matched))
		}
		thread := lib.NewThread(t.ID(), roots...).
			SetDates(t.OldestDate(), t.NewestDate())
		cbErr = fn(thread)
		return cbErr
	})
	if err != nil && cbErr == nil {
		return &models.QueryError{Query: query, Err: err}
	}
	return err
}

func (s *store) SearchMessages(query string, mode models.SortMode,
	fn func(models.Message) error,
) error {
	var cbErr error
	err := s.db.Messages(query, mode, func(msg *nm.Message) error {
		m := s.message(msg).SetMatched(true)
		cbErr = fn(m)
		return cbErr
	})
	if err != nil && cbErr == nil {
		return &models.QueryError{Query: query, Err: err}
	}
	return err
}

// message copies msg without its replies.
func (s *store) message(msg *nm.Message) *lib.Message {
	tags := notmuch.MsgTags(msg)
	m := lib.NewMessage(msg.ID(), msg.Date()).
		SetThreadID(msg.ThreadID()).
		SetTags(tags...).
		SetFilenames(msg.Filename())
	for _, name := range []string{"From", "To", "Cc", "Subject"} {
		if value := msg.Header(name); value != "" {
			m.SetHeader(name, value)
		}
	}
	for _, tag := range tags {
		if _, ok := s.excludeTags[tag]; ok {
			m.SetExcluded(true)
			break
		}
	}
	return m
}

func (s *store) convert(msg *nm.Message, matched map[string]struct{}) *lib.Message {
	m := s.message(msg)
	_, ok := matched[msg.ID()]
	m.SetMatched(ok)
	replies, err := msg.Replies()
	if err != nil {
		// leaf message
		return m
	}
	defer replies.Close()
	var reply *nm.Message
	for replies.Next(&reply) {
		m.AddReply(s.convert(reply, matched))
	}
	return m
}
