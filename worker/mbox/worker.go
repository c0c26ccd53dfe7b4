package mboxer

import (
	"os"
	"path/filepath"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/xdg"
	"git.sr.ht/~nmls/nm-livesearch/worker/handlers"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

func init() {
	handlers.RegisterStoreFactory("mbox", NewStore)
}

// NewStore loads an mbox file, or every file of a directory of mbox files.
func NewStore(cfg *types.StoreConfig) (types.Store, error) {
	path := xdg.ExpandHome(cfg.URL.Host, cfg.URL.Path)
	messages, err := load(path)
	if err != nil {
		return nil, err
	}
	log.Infof("configured with mbox file %s: %d messages", path, len(messages))
	return lib.NewStore(messages, cfg.ExcludeTags, cfg.ThreadBySubject), nil
}

func load(path string) ([]*lib.Message, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		return readFile(path)
	}
	files, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var messages []*lib.Message
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		msgs, err := readFile(filepath.Join(path, f.Name()))
		if err != nil {
			return nil, err
		}
		messages = append(messages, msgs...)
	}
	return messages, nil
}

func readFile(path string) ([]*lib.Message, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file, path)
}
