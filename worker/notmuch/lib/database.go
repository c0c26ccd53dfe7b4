//go:build notmuch
// +build notmuch

package lib

import (
	"fmt"
	"time"

	notmuch "github.com/zenhack/go.notmuch"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

const MAX_DB_AGE time.Duration = 10 * time.Second

type DB struct {
	path         string
	excludedTags []string
	lastOpenTime time.Time
	db           *notmuch.DB
}

func NewDB(path string, excludedTags []string) *DB {
	db := &DB{
		path:         path,
		excludedTags: excludedTags,
	}
	return db
}

func (db *DB) Connect() error {
	// used as sanity check upon initial connect
	err := db.connect()
	return err
}

func (db *DB) Close() error {
	if db.db == nil {
		return nil
	}
	err := db.db.Close()
	db.db = nil
	return err
}

func (db *DB) connect() error {
	var err error
	db.db, err = notmuch.Open(db.path, notmuch.DBReadOnly)
	if err != nil {
		return fmt.Errorf("could not connect to notmuch db: %w", err)
	}
	db.lastOpenTime = time.Now()
	return nil
}

// withConnection calls callback on the DB object. The database is reopened
// when it has been open for too long so that a long running session sees
// new mail. The error returned is from the connection attempt, if not
// successful, or from the callback otherwise.
func (db *DB) withConnection(cb func(*notmuch.DB) error) error {
	tooOld := time.Now().After(db.lastOpenTime.Add(MAX_DB_AGE))
	if db.db == nil || tooOld {
		if cerr := db.Close(); cerr != nil {
			log.Errorf("failed to close the notmuch db: %v", cerr)
		}
		err := db.connect()
		if err != nil {
			log.Errorf("failed to open the notmuch db: %v", err)
			return err
		}
	}
	return cb(db.db)
}

// newQuery returns a query based on the provided query string, configured
// with the excluded tags of the store.
func (db *DB) newQuery(ndb *notmuch.DB, query string, mode models.SortMode,
	exclude notmuch.ExcludeMode,
) (*notmuch.Query, error) {
	q := ndb.NewQuery(query)
	q.SetExcludeScheme(exclude)
	q.SetSortScheme(sortScheme(mode))
	for _, t := range db.excludedTags {
		err := q.AddTagExclude(t)
		if err != nil && err != notmuch.ErrIgnored {
			q.Close()
			return nil, err
		}
	}
	return q, nil
}

func sortScheme(mode models.SortMode) notmuch.SortMode {
	switch mode {
	case models.SortNewestFirst:
		return notmuch.SORT_NEWEST_FIRST
	case models.SortMessageID:
		return notmuch.SORT_MESSAGE_ID
	case models.SortUnsorted:
		return notmuch.SORT_UNSORTED
	}
	return notmuch.SORT_OLDEST_FIRST
}

// MsgIDsFromQuery returns the set of messages matching q, excluded ones
// included.
func (db *DB) MsgIDsFromQuery(q string) (map[string]struct{}, error) {
	msgIDs := make(map[string]struct{})
	err := db.withConnection(func(ndb *notmuch.DB) error {
		query, err := db.newQuery(ndb, q, models.SortUnsorted, notmuch.EXCLUDE_FALSE)
		if err != nil {
			return err
		}
		defer query.Close()
		msgs, err := query.Messages()
		if err != nil {
			return err
		}
		defer msgs.Close()
		var msg *notmuch.Message
		for msgs.Next(&msg) {
			msgIDs[msg.ID()] = struct{}{}
		}
		return nil
	})
	return msgIDs, err
}

// Threads calls cb for each thread matching q in the requested order. The
// notmuch objects are only valid during the call.
func (db *DB) Threads(q string, mode models.SortMode,
	cb func(*notmuch.Thread) error,
) error {
	return db.withConnection(func(ndb *notmuch.DB) error {
		query, err := db.newQuery(ndb, q, mode, notmuch.EXCLUDE_TRUE)
		if err != nil {
			return err
		}
		defer query.Close()
		threads, err := query.Threads()
		if err != nil {
			return err
		}
		defer threads.Close()
		var thread *notmuch.Thread
		for threads.Next(&thread) {
			if err := cb(thread); err != nil {
				return err
			}
		}
		return nil
	})
}

// Messages calls cb for each message matching q in the requested order.
func (db *DB) Messages(q string, mode models.SortMode,
	cb func(*notmuch.Message) error,
) error {
	return db.withConnection(func(ndb *notmuch.DB) error {
		query, err := db.newQuery(ndb, q, mode, notmuch.EXCLUDE_FALSE)
		if err != nil {
			return err
		}
		defer query.Close()
		msgs, err := query.Messages()
		if err != nil {
			return err
		}
		defer msgs.Close()
		var msg *notmuch.Message
		for msgs.Next(&msg) {
			if err := cb(msg); err != nil {
				return err
			}
		}
		return nil
	})
}

// MsgTags returns the tags of a notmuch message.
func MsgTags(msg *notmuch.Message) []string {
	var result []string
	ts := msg.Tags()
	defer ts.Close()
	var tag *notmuch.Tag
	for ts.Next(&tag) {
		result = append(result, tag.Value)
	}
	return result
}
