package lib

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/emersion/go-maildir"
	"github.com/pkg/errors"
)

// MaildirStore locates the folders of a maildir tree.
type MaildirStore struct {
	root      string
	maildirpp bool // whether to use Maildir++ directory layout
}

func NewMaildirStore(root string, maildirpp bool) (*MaildirStore, error) {
	f, err := os.Open(root)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	s, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if !s.IsDir() {
		return nil, errors.Errorf("given maildir '%s' not a directory", root)
	}
	return &MaildirStore{
		root: root, maildirpp: maildirpp,
	}, nil
}

// FolderMap returns every folder of the tree by name. The root itself is
// the INBOX folder when it is a maildir.
func (s *MaildirStore) FolderMap() (map[string]maildir.Dir, error) {
	folders := make(map[string]maildir.Dir)
	if s.maildirpp || isMaildir(s.root) {
		folders["INBOX"] = maildir.Dir(s.root)
	}
	err := filepath.Walk(s.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, "invalid path '%s'", path)
		}
		if !info.IsDir() {
			return nil
		}

		// Skip maildir's default directories
		n := info.Name()
		if n == "new" || n == "tmp" || n == "cur" {
			return filepath.SkipDir
		}

		// Get the relative path from the parent directory
		dirPath, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}

		// Skip the parent directory
		if dirPath == "." {
			return nil
		}

		// Drop dirs that lack {new,tmp,cur} subdirs
		if !isMaildir(path) {
			return nil
		}

		if s.maildirpp {
			// In Maildir++ layout, mailboxes are stored in a single directory
			// and prefixed with a dot, and subfolders are separated by dots.
			if !strings.HasPrefix(dirPath, ".") {
				return filepath.SkipDir
			}
			dirPath = strings.TrimPrefix(dirPath, ".")
			dirPath = strings.ReplaceAll(dirPath, ".", "/")
			folders[dirPath] = maildir.Dir(path)

			// Since all mailboxes are stored in a single directory, don't
			// recurse into subdirectories
			return filepath.SkipDir
		}

		folders[dirPath] = maildir.Dir(path)
		return nil
	})
	return folders, err
}

// MaildirTags translates maildir flags into notmuch style tags. Messages
// without the seen flag are unread.
func MaildirTags(flags []maildir.Flag) []string {
	tags := make([]string, 0, len(flags)+1)
	seen := false
	for _, flag := range flags {
		if flag == maildir.FlagSeen {
			seen = true
			continue
		}
		if tag, ok := maildirToTag[flag]; ok {
			tags = append(tags, tag)
		}
	}
	if !seen {
		tags = append(tags, "unread")
	}
	return tags
}

var maildirToTag = map[maildir.Flag]string{
	maildir.FlagReplied: "replied",
	maildir.FlagTrashed: "deleted",
	maildir.FlagFlagged: "flagged",
	maildir.FlagDraft:   "draft",
	maildir.FlagPassed:  "passed",
}

func isMaildir(path string) bool {
	for _, sub := range []string{"new", "tmp", "cur"} {
		if _, err := os.Stat(filepath.Join(path, sub)); err != nil {
			return false
		}
	}
	return true
}
