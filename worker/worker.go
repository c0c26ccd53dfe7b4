package worker

import (
	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/worker/handlers"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

// NewStore guesses the appropriate store type based on the given source
// string
func NewStore(source string, excludeTags []string, bySubject bool) (types.Store, error) {
	log.Debugf("opening %s (backends: %v)", source, handlers.Schemes())
	return handlers.NewStore(source, excludeTags, bySubject)
}
