// Package merge re-sequences the matched messages of consecutive threads
// into one chronological stream while holding back as few entries as
// possible.
//
// Threads must arrive ordered by their boundary date: the oldest date of
// each thread when sorting oldest first, the newest date otherwise. Output
// is only guaranteed to be ordered when they do.
package merge

import (
	"container/heap"
	"time"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/sort"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

var logger = log.NewLogger("merge", 3)

// Entry is a rendered message waiting for its turn.
type Entry struct {
	Date time.Time
	Show *models.Show
	seq  uint64
}

type Scheduler struct {
	before   func(a, b time.Time) bool
	emit     func(*models.Show) error
	pending  entries
	boundary time.Time
	seq      uint64
}

// New returns a scheduler for the given mode. Modes without chronology
// pass everything straight to emit.
func New(mode models.SortMode, emit func(*models.Show) error) *Scheduler {
	s := &Scheduler{before: sort.Comparator(mode), emit: emit}
	s.pending.before = s.before
	return s
}

// Thread starts a new thread with the given boundary date.
func (s *Scheduler) Thread(boundary time.Time) {
	s.boundary = boundary
}

// Push emits show right away when nothing still to come can precede it,
// otherwise it is held back.
func (s *Scheduler) Push(date time.Time, show *models.Show) error {
	if s.before == nil {
		return s.emit(show)
	}
	ahead := s.before(s.boundary, date)
	blocked := s.pending.Len() > 0 && s.before(s.pending.items[0].Date, date)
	if ahead || blocked {
		s.seq++
		heap.Push(&s.pending, &Entry{Date: date, Show: show, seq: s.seq})
		return nil
	}
	return s.emit(show)
}

// Flush emits the held back entries that sort at or before the boundary of
// the current thread. It is called once the thread has been walked.
func (s *Scheduler) Flush() error {
	for s.pending.Len() > 0 && !s.before(s.boundary, s.pending.items[0].Date) {
		e := heap.Pop(&s.pending).(*Entry)
		if err := s.emit(e.Show); err != nil {
			return err
		}
	}
	return nil
}

// Drain emits everything still held back, in order.
func (s *Scheduler) Drain() error {
	logger.Tracef("draining %d entries", s.pending.Len())
	for s.pending.Len() > 0 {
		e := heap.Pop(&s.pending).(*Entry)
		if err := s.emit(e.Show); err != nil {
			return err
		}
	}
	return nil
}

// Pending returns the number of held back entries.
func (s *Scheduler) Pending() int {
	return s.pending.Len()
}

// entries implements heap.Interface. Equal dates keep their arrival order.
type entries struct {
	items  []*Entry
	before func(a, b time.Time) bool
}

func (e *entries) Len() int { return len(e.items) }

func (e *entries) Less(i, j int) bool {
	a, b := e.items[i], e.items[j]
	if a.Date.Equal(b.Date) {
		return a.seq < b.seq
	}
	return e.before(a.Date, b.Date)
}

func (e *entries) Swap(i, j int) { e.items[i], e.items[j] = e.items[j], e.items[i] }

func (e *entries) Push(x any) {
	e.items = append(e.items, x.(*Entry))
}

func (e *entries) Pop() any {
	old := e.items
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	e.items = old[:n-1]
	return item
}
