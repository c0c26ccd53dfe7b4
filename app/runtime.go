package app

import (
	"io"

	"git.sr.ht/~nmls/nm-livesearch/lib/highlight"
	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/merge"
	"git.sr.ht/~nmls/nm-livesearch/lib/render"
	"git.sr.ht/~nmls/nm-livesearch/lib/sort"
	"git.sr.ht/~nmls/nm-livesearch/lib/templates"
	"git.sr.ht/~nmls/nm-livesearch/models"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

// Runtime runs searches against a store and writes the results as JSON
// lines.
type Runtime struct {
	store    types.Store
	sort     models.SortMode
	renderer *render.Renderer
}

func NewRuntime(store types.Store, mode models.SortMode,
	tmpl *templates.Template, hl *highlight.Spec,
) *Runtime {
	return &Runtime{
		store:    store,
		sort:     mode,
		renderer: render.New(tmpl, hl),
	}
}

// Messages writes the flat form of every matching message.
func (rt *Runtime) Messages(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	return rt.store.SearchMessages(query, rt.sort, func(msg models.Message) error {
		entry, err := models.NewMessageEntry(msg, 1, 1)
		if err != nil {
			return err
		}
		return out.Write(entry)
	})
}

// Threads writes the flat form of every matching thread.
func (rt *Runtime) Threads(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	return rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		return out.Write(models.NewThreadEntry(t))
	})
}

// ShowMessages writes one entry per matched message, merged across
// threads in date order.
func (rt *Runtime) ShowMessages(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	scheduler := merge.New(rt.sort, func(show *models.Show) error {
		return out.Write(show)
	})
	err := rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		scheduler.Thread(sort.Boundary(t, rt.sort))
		err := rt.renderer.Matched(t, func(msg models.Message, show *models.Show) error {
			return scheduler.Push(msg.Date(), show)
		})
		if err != nil {
			return err
		}
		return scheduler.Flush()
	})
	if err != nil {
		return err
	}
	log.Debugf("draining %d held back entries", scheduler.Pending())
	return scheduler.Drain()
}

// ShowThreads writes one summary entry per thread.
func (rt *Runtime) ShowThreads(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	return rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		show, err := rt.renderer.ShowThread(t)
		if err != nil {
			return err
		}
		return out.Write(show)
	})
}

// ShowTree writes each thread as a JSON array of entries.
func (rt *Runtime) ShowTree(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	return rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		shows := make([]*models.Show, 0, t.TotalMessages())
		err := rt.renderer.Tree(t, func(_ models.Message, show *models.Show) error {
			shows = append(shows, show)
			return nil
		})
		if err != nil {
			return err
		}
		return out.Write(shows)
	})
}

// ShowSingle writes the first matched message of each thread.
func (rt *Runtime) ShowSingle(query string, w io.Writer) error {
	out := NewRecordWriter(w)
	return rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		return rt.renderer.Single(t, func(_ models.Message, show *models.Show) error {
			return out.Write(show)
		})
	})
}

// ShowBefore writes the messages leading to id in its thread, from the
// top level message down to the direct parent.
func (rt *Runtime) ShowBefore(id, filter string, w io.Writer) error {
	return rt.path(id, filter, w, render.Before)
}

// ShowAfter writes the replies below id in pre-order.
func (rt *Runtime) ShowAfter(id, filter string, w io.Writer) error {
	return rt.path(id, filter, w, render.After)
}

type pathFunc func(models.Thread, string, func(models.Message) error) error

func (rt *Runtime) path(id, filter string, w io.Writer, walk pathFunc) error {
	out := NewRecordWriter(w)
	query := "mid:" + id
	if filter != "" {
		query += " and " + filter
	}
	first := true
	return rt.store.SearchThreads(query, rt.sort, func(t models.Thread) error {
		if !first {
			return nil
		}
		first = false
		return walk(t, id, func(msg models.Message) error {
			entry, err := models.NewMessageEntry(msg, 1, 1)
			if err != nil {
				return err
			}
			return out.Write(entry)
		})
	})
}
