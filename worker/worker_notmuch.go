//go:build notmuch
// +build notmuch

package worker

// enable the notmuch store if we have build support for it
import _ "git.sr.ht/~nmls/nm-livesearch/worker/notmuch"
