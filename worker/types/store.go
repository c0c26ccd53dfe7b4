package types

import (
	"net/url"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Store is a read-only mail store. Both searches call fn once per result,
// in the order requested by sort, and stop at the first error returned by
// fn, which is returned as is. Failures of the store itself are reported as
// *models.QueryError.
type Store interface {
	// SearchThreads delivers every thread that contains at least one
	// message matching query which is not excluded.
	SearchThreads(query string, sort models.SortMode,
		fn func(models.Thread) error) error
	// SearchMessages delivers every matching message, excluded ones
	// included.
	SearchMessages(query string, sort models.SortMode,
		fn func(models.Message) error) error
	Close() error
}

// StoreConfig is handed to store factories.
type StoreConfig struct {
	Source      string
	URL         *url.URL
	ExcludeTags []string
	// ThreadBySubject groups messages without references by base subject.
	// Ignored by stores that do their own threading.
	ThreadBySubject bool
}
