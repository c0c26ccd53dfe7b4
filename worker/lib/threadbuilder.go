package lib

import (
	"fmt"
	"hash/fnv"
	"sort"
	"time"

	sortthread "github.com/emersion/go-imap-sortthread"
	"github.com/gatherstars-com/jwz"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
)

// BuildThreads links msgs into threads using their Message-ID, In-Reply-To
// and References headers. Replies are ordered by date. When bySubject is
// set, messages without references are also grouped by base subject.
//
// Existing reply links of msgs are discarded.
func BuildThreads(msgs []*Message, bySubject bool) []*Thread {
	if len(msgs) == 0 {
		return nil
	}
	blocks := make([]jwz.Threadable, 0, len(msgs))
	for _, msg := range msgs {
		msg.replies = nil
		blocks = append(blocks, &threadable{msg: msg, bySubject: bySubject})
	}

	threader := jwz.NewThreader()
	structure, err := threader.ThreadSlice(blocks)
	if err != nil {
		log.Errorf("failed slicing threads: %v", err)
		threads := make([]*Thread, 0, len(msgs))
		for _, msg := range msgs {
			threads = append(threads, NewThread(threadID(msg.id), msg))
		}
		return threads
	}

	var threads []*Thread
	for node := structure; node != nil; node = node.GetNext() {
		roots := buildTree(node)
		if len(roots) == 0 {
			continue
		}
		sortByDate(roots)
		threads = append(threads, NewThread(threadID(roots[0].id), roots...))
	}
	return threads
}

// buildTree translates a jwz node into messages. Dummy containers vanish and
// their children move up one level.
func buildTree(node jwz.Threadable) []*Message {
	var children []*Message
	for c := node.GetChild(); c != nil; c = c.GetNext() {
		children = append(children, buildTree(c)...)
	}
	t, ok := node.(*threadable)
	if !ok || t.IsDummy() || t.msg == nil {
		return children
	}
	sortByDate(children)
	t.msg.replies = children
	return []*Message{t.msg}
}

func sortByDate(msgs []*Message) {
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].date.Before(msgs[j].date)
	})
}

// threadID derives a stable 16 digit hexadecimal thread id from the id of
// the first top level message.
func threadID(rootID string) string {
	h := fnv.New64a()
	h.Write([]byte(rootID)) //nolint:errcheck // never fails
	return fmt.Sprintf("%016x", h.Sum64())
}

// threadable implements the jwz.Threadable interface which is required for
// the jwz threading algorithm
type threadable struct {
	msg       *Message
	id        string
	next      jwz.Threadable
	parent    jwz.Threadable
	child     jwz.Threadable
	dummy     bool
	bySubject bool
}

func (t *threadable) MessageThreadID() string {
	if t.msg != nil {
		return t.msg.id
	}
	return t.id
}

func (t *threadable) MessageThreadReferences() []string {
	if t.IsDummy() || t.msg == nil {
		return nil
	}
	h := t.msg.MessageHeader()
	irp, err := h.MsgIDList("In-Reply-To")
	if err != nil {
		irp = nil
	}
	var inReplyTo string
	if len(irp) > 0 {
		inReplyTo = irp[0]
	}
	refs, err := h.MsgIDList("References")
	if err != nil || len(refs) == 0 {
		if inReplyTo == "" {
			return nil
		}
		refs = []string{inReplyTo}
	}
	return cleanRefs(t.MessageThreadID(), inReplyTo, refs)
}

// cleanRefs cleans up the references headers for threading
// 1) message-id should not be part of the references
// 2) no message-id should occur twice (avoid circularities)
// 3) in-reply-to header should not be at the beginning
func cleanRefs(m, irp string, refs []string) []string {
	considered := make(map[string]any)
	cleaned := make([]string, 0, len(refs))
	for _, r := range refs {
		if _, seen := considered[r]; r != m && !seen {
			considered[r] = nil
			cleaned = append(cleaned, r)
		}
	}
	if irp != "" && len(cleaned) > 0 {
		if cleaned[0] == irp {
			cleaned = append(cleaned[1:], irp)
		}
	}
	return cleaned
}

func (t *threadable) Subject() string {
	if !t.bySubject || t.msg == nil {
		return ""
	}
	subject, _ := t.msg.Header("Subject")
	return subject
}

func (t *threadable) SimplifiedSubject() string {
	if t.bySubject {
		subject, _ := sortthread.GetBaseSubject(t.Subject())
		return subject
	}
	return ""
}

func (t *threadable) SubjectIsReply() bool {
	if t.bySubject {
		_, replyOrForward := sortthread.GetBaseSubject(t.Subject())
		return replyOrForward
	}
	return false
}

func (t *threadable) SetNext(next jwz.Threadable) {
	t.next = next
}

func (t *threadable) SetChild(kid jwz.Threadable) {
	t.child = kid
	if kid != nil {
		kid.SetParent(t)
	}
}

func (t *threadable) SetParent(parent jwz.Threadable) {
	t.parent = parent
}

func (t *threadable) GetNext() jwz.Threadable {
	return t.next
}

func (t *threadable) GetChild() jwz.Threadable {
	return t.child
}

func (t *threadable) GetParent() jwz.Threadable {
	return t.parent
}

func (t *threadable) GetDate() time.Time {
	if t.IsDummy() {
		if t.GetChild() != nil {
			return t.GetChild().GetDate()
		}
		return time.Unix(0, 0)
	}
	if t.msg == nil {
		return time.Unix(0, 0)
	}
	return t.msg.date
}

func (t *threadable) MakeDummy(forID string) jwz.Threadable {
	return &threadable{
		id:    forID,
		dummy: true,
	}
}

func (t *threadable) IsDummy() bool {
	return t.dummy
}
