package worker

// the following stores are always enabled
import (
	_ "git.sr.ht/~nmls/nm-livesearch/worker/maildir"
	_ "git.sr.ht/~nmls/nm-livesearch/worker/mbox"
)
