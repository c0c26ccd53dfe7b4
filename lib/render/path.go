package render

import (
	"git.sr.ht/~nmls/nm-livesearch/models"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

// Before calls fn for each ancestor of the message with the given id, from
// the top level message down to its parent. Nothing happens when the
// message is not part of t.
func Before(t models.Thread, id string, fn func(models.Message) error) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	path, found, err := ancestors(msgs, id)
	if err != nil || !found {
		return err
	}
	for _, msg := range path {
		if err := fn(msg); err != nil {
			return err
		}
	}
	return nil
}

// ancestors returns the chain leading to id, outermost first.
func ancestors(msgs []models.Message, id string) ([]models.Message, bool, error) {
	for _, msg := range msgs {
		if msg.ID() == id {
			return nil, true, nil
		}
		replies, err := msg.Replies()
		if err != nil {
			return nil, false, err
		}
		path, found, err := ancestors(replies, id)
		if err != nil {
			return nil, false, err
		}
		if found {
			return append([]models.Message{msg}, path...), true, nil
		}
	}
	return nil, false, nil
}

// After calls fn for every reply below the message with the given id, in
// pre-order. Nothing happens when the message is not part of t.
func After(t models.Thread, id string, fn func(models.Message) error) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	target, err := find(msgs, id)
	if err != nil || target == nil {
		return err
	}
	replies, err := target.Replies()
	if err != nil {
		return err
	}
	return types.Walk(replies, func(msg models.Message, _ int) error {
		return fn(msg)
	})
}

func find(msgs []models.Message, id string) (models.Message, error) {
	var found models.Message
	err := types.Walk(msgs, func(msg models.Message, _ int) error {
		if msg.ID() == id {
			found = msg
			return types.ErrStopWalk
		}
		return nil
	})
	return found, err
}
