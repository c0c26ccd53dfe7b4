package sort

import (
	"fmt"
	"strings"
	"time"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Parse reads a sort mode name.
func Parse(arg string) (models.SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "oldest", "oldest-first":
		return models.SortOldestFirst, nil
	case "newest", "newest-first":
		return models.SortNewestFirst, nil
	case "message-id", "messageid":
		return models.SortMessageID, nil
	case "unsorted":
		return models.SortUnsorted, nil
	default:
		return models.SortNewestFirst,
			fmt.Errorf("%v is not a valid sort mode", arg)
	}
}

// Comparator returns the "comes first" relation of a chronological mode:
// ascending dates for oldest-first, descending for newest-first. Other modes
// have no comparator.
func Comparator(mode models.SortMode) func(a, b time.Time) bool {
	switch mode {
	case models.SortOldestFirst:
		return func(a, b time.Time) bool { return a.Before(b) }
	case models.SortNewestFirst:
		return func(a, b time.Time) bool { return a.After(b) }
	}
	return nil
}

// Boundary is the date at which a thread enters the result list: its
// oldest date when sorting oldest-first and its newest date otherwise.
func Boundary(t models.Thread, mode models.SortMode) time.Time {
	if mode == models.SortOldestFirst {
		return t.OldestDate()
	}
	return t.NewestDate()
}
