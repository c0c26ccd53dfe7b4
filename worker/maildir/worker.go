package maildir

import (
	"fmt"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/xdg"
	"git.sr.ht/~nmls/nm-livesearch/worker/handlers"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

func init() {
	handlers.RegisterStoreFactory("maildir", NewStore)
	handlers.RegisterStoreFactory("maildirpp", NewMaildirppStore)
}

// NewStore loads a tree of maildirs.
func NewStore(cfg *types.StoreConfig) (types.Store, error) {
	return newStore(cfg, false)
}

// NewMaildirppStore loads a tree of maildirs in the Maildir++ layout.
func NewMaildirppStore(cfg *types.StoreConfig) (types.Store, error) {
	return newStore(cfg, true)
}

func newStore(cfg *types.StoreConfig, maildirpp bool) (types.Store, error) {
	dir := xdg.ExpandHome(cfg.URL.Host, cfg.URL.Path)
	if len(dir) == 0 {
		return nil, fmt.Errorf("could not resolve maildir from URL '%s'", cfg.Source)
	}
	c, err := NewContainer(dir, maildirpp)
	if err != nil {
		log.Errorf("could not configure maildir: %s", dir)
		return nil, err
	}
	messages, err := c.Messages()
	if err != nil {
		return nil, err
	}
	log.Infof("configured base maildir: %s: %d messages", dir, len(messages))
	return lib.NewStore(messages, cfg.ExcludeTags, cfg.ThreadBySubject), nil
}
