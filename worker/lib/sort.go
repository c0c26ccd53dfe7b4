package lib

import (
	"sort"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// SortThreads orders threads by oldest date, newest date first, or thread
// id. Unsorted leaves the order untouched.
func SortThreads(threads []*Thread, mode models.SortMode) {
	switch mode {
	case models.SortOldestFirst:
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].oldest.Before(threads[j].oldest)
		})
	case models.SortNewestFirst:
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].newest.After(threads[j].newest)
		})
	case models.SortMessageID:
		sort.SliceStable(threads, func(i, j int) bool {
			return threads[i].id < threads[j].id
		})
	}
}

// SortMessages orders a flat message list the same way.
func SortMessages(msgs []*Message, mode models.SortMode) {
	switch mode {
	case models.SortOldestFirst:
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].date.Before(msgs[j].date)
		})
	case models.SortNewestFirst:
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].date.After(msgs[j].date)
		})
	case models.SortMessageID:
		sort.SliceStable(msgs, func(i, j int) bool {
			return msgs[i].id < msgs[j].id
		})
	}
}
