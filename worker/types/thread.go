package types

import (
	"errors"

	"git.sr.ht/~nmls/nm-livesearch/models"
)

// ErrSkipThread can be returned by a WalkFn to stop descending into the
// replies of the current message. Walk itself never returns it.
var ErrSkipThread = errors.New("skip this Thread")

// ErrStopWalk ends a Walk early without error.
var ErrStopWalk = errors.New("stop walking")

type WalkFn func(msg models.Message, level int) error

// Walk visits msgs and all their replies in pre-order. Top level messages
// are at level 0.
func Walk(msgs []models.Message, walkFn WalkFn) error {
	err := walkLevel(msgs, walkFn, 0)
	if err == ErrStopWalk {
		return nil
	}
	return err
}

// WalkThread walks all messages of t.
func WalkThread(t models.Thread, walkFn WalkFn) error {
	msgs, err := t.TopLevelMessages()
	if err != nil {
		return err
	}
	return Walk(msgs, walkFn)
}

func walkLevel(msgs []models.Message, walkFn WalkFn, lvl int) error {
	for _, msg := range msgs {
		err := walkFn(msg, lvl)
		if err == ErrSkipThread {
			continue
		} else if err != nil {
			return err
		}
		replies, err := msg.Replies()
		if err != nil {
			return err
		}
		if err := walkLevel(replies, walkFn, lvl+1); err != nil {
			return err
		}
	}
	return nil
}
