package maildir

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/emersion/go-maildir"
	"github.com/pkg/errors"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/worker/lib"
)

// A Container is a directory which contains other directories which adhere to
// the Maildir spec
type Container struct {
	store *lib.MaildirStore
}

// NewContainer creates a new container at the specified directory
func NewContainer(dir string, maildirpp bool) (*Container, error) {
	store, err := lib.NewMaildirStore(dir, maildirpp)
	if err != nil {
		return nil, err
	}
	return &Container{store: store}, nil
}

// Messages loads the headers of every message of every folder, sorted by
// folder name.
func (c *Container) Messages() ([]*lib.Message, error) {
	folders, err := c.store.FolderMap()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)

	var messages []*lib.Message
	for _, name := range names {
		msgs, err := c.folderMessages(folders[name])
		if err != nil {
			return nil, errors.Wrapf(err, "folder %s", name)
		}
		log.Tracef("maildir: %s: %d messages", name, len(msgs))
		messages = append(messages, msgs...)
	}
	return messages, nil
}

// folderMessages reads cur/ through go-maildir and new/ by hand. Messages
// are not moved to cur/, the store is read-only.
func (c *Container) folderMessages(d maildir.Dir) ([]*lib.Message, error) {
	keys, err := d.Keys()
	if err != nil {
		return nil, err
	}
	messages := make([]*lib.Message, 0, len(keys))
	for _, key := range keys {
		msg, err := readKey(d, key)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	entries, err := os.ReadDir(filepath.Join(string(d), "new"))
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		msg, err := readFile(filepath.Join(string(d), "new", entry.Name()))
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg.AddTags("unread"))
	}
	return messages, nil
}

func readKey(d maildir.Dir, key string) (*lib.Message, error) {
	flags, err := d.Flags(key)
	if err != nil {
		return nil, err
	}
	filename, err := d.Filename(key)
	if err != nil {
		return nil, err
	}
	msg, err := readFile(filename)
	if err != nil {
		return nil, err
	}
	return msg.AddTags(lib.MaildirTags(flags)...), nil
}

func readFile(filename string) (*lib.Message, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	msg, err := lib.ReadMessage(f, filename)
	if err != nil {
		return nil, err
	}
	return msg.SetTags(lib.KeywordTags(msg.MessageHeader())...), nil
}
