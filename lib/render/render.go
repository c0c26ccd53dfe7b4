// Package render turns message trees into numbered entries decorated with
// box drawing connectors:
//
//	2021-11-01 [01/04] Alice    │ hello
//	2021-11-02 [02/04] Bob      │ ├─┬▶
//	2021-11-03 [03/04] Carol    │ │ └─▶
//	2021-11-04 [04/04] Dave     │ └─▶
package render

import (
	"github.com/pkg/errors"

	"git.sr.ht/~nmls/nm-livesearch/lib/highlight"
	"git.sr.ht/~nmls/nm-livesearch/lib/templates"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

// errFound unwinds a walk once the wanted message has been handled.
var errFound = errors.New("found")

// EmitFunc receives each rendered entry along with the message it was
// rendered from.
type EmitFunc func(msg models.Message, show *models.Show) error

type Renderer struct {
	tmpl      *templates.Template
	highlight *highlight.Spec
}

// New returns a renderer. hl may be nil, nothing is highlighted then.
func New(tmpl *templates.Template, hl *highlight.Spec) *Renderer {
	return &Renderer{tmpl: tmpl, highlight: highlight.Normalize(hl)}
}

// Show renders msg with the entry template, or with the response template
// when response is not nil.
func (r *Renderer) Show(msg models.Message, index, total int, response *string) (*models.Show, error) {
	format := r.tmpl.Entry
	if response != nil {
		format = r.tmpl.Response
	}
	data, err := templates.MessageData(msg, index, total, response)
	if err != nil {
		return nil, err
	}
	entry, err := r.tmpl.Render(format, data)
	if err != nil {
		return nil, err
	}
	hl, err := r.highlight.Matches(msg, index, total)
	if err != nil {
		return nil, err
	}
	return &models.Show{ID: msg.ID(), Entry: entry, Highlight: hl}, nil
}

// ShowThread renders a thread summary with the entry template. Summaries
// are never highlighted.
func (r *Renderer) ShowThread(t models.Thread) (*models.Show, error) {
	entry, err := r.tmpl.Render(r.tmpl.Entry, templates.ThreadData(t))
	if err != nil {
		return nil, err
	}
	return &models.Show{ID: t.ID(), Entry: entry}, nil
}

// Tree renders every message of t in pre-order.
func (r *Renderer) Tree(t models.Thread, emit EmitFunc) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	w := &walker{r: r, total: t.TotalMessages(), emit: emit}
	_, err = w.tree(msgs, 0, "", 0)
	return err
}

// Single renders the first matched message of t in pre-order, with the
// position and connector it has in the full tree, and nothing else.
func (r *Renderer) Single(t models.Thread, emit EmitFunc) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	w := &walker{r: r, total: t.TotalMessages(), emit: emit, single: true}
	_, err = w.tree(msgs, 0, "", 0)
	if err == errFound {
		return nil
	}
	return err
}

// Matched renders the matched messages of t in pre-order with the entry
// template. Positions count every message, matched or not.
func (r *Renderer) Matched(t models.Thread, emit EmitFunc) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	w := &walker{r: r, total: t.TotalMessages(), emit: emit}
	_, err = w.matched(msgs, 0)
	return err
}

type walker struct {
	r      *Renderer
	total  int
	emit   EmitFunc
	single bool
}

// tree walks msgs at the given depth. counter is the number of messages
// visited so far in the thread; the updated value is returned.
func (w *walker) tree(msgs []models.Message, level int, prefix string, counter int) (int, error) {
	for i, msg := range msgs {
		last := i == len(msgs)-1
		replies, err := msg.Replies()
		if err != nil {
			return counter, err
		}

		// the very first message of a thread has no connector
		connector := prefix
		if counter > 0 {
			if last {
				connector += "└─"
			} else {
				connector += "├─"
			}
		}
		if len(replies) > 0 {
			connector += "┬"
		} else {
			connector += "─"
		}

		if !w.single || msg.Matched() {
			var response *string
			if level > 0 && counter > 0 {
				response = &connector
			}
			show, err := w.r.Show(msg, counter+1, w.total, response)
			if err != nil {
				return counter, err
			}
			if err := w.emit(msg, show); err != nil {
				return counter, err
			}
			if w.single {
				return counter, errFound
			}
		}

		childPrefix := prefix
		switch {
		case counter == 0:
		case last:
			childPrefix += "  "
		default:
			childPrefix += "│ "
		}
		counter, err = w.tree(replies, level+1, childPrefix, counter+1)
		if err != nil {
			return counter, err
		}
	}
	return counter, nil
}

func (w *walker) matched(msgs []models.Message, counter int) (int, error) {
	for _, msg := range msgs {
		counter++
		if msg.Matched() {
			show, err := w.r.Show(msg, counter, w.total, nil)
			if err != nil {
				return counter, err
			}
			if err := w.emit(msg, show); err != nil {
				return counter, err
			}
		}
		replies, err := msg.Replies()
		if err != nil {
			return counter, err
		}
		counter, err = w.matched(replies, counter)
		if err != nil {
			return counter, err
		}
	}
	return counter, nil
}
