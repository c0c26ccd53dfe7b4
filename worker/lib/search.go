package lib

import (
	"strings"
	"time"
	"unicode"

	"github.com/danwakefield/fnmatch"
	"github.com/google/shlex"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
)

type termKind int

const (
	termAll termKind = iota
	termText
	termID
	termThread
	termFrom
	termTo
	termSubject
	termTag
	termDate
	termFuzzy
)

var prefixes = map[string]termKind{
	"id":      termID,
	"mid":     termID,
	"thread":  termThread,
	"from":    termFrom,
	"to":      termTo,
	"subject": termSubject,
	"tag":     termTag,
	"date":    termDate,
}

type term struct {
	kind   termKind
	value  string
	negate bool
	start  time.Time
	end    time.Time
}

// Query is a conjunction of search terms understood by the file based
// stores.
type Query struct {
	terms []term
}

// ParseQuery compiles a search string. Terms are separated by blanks and
// may be quoted; all of them must match. An empty query matches
// everything.
func ParseQuery(s string) (*Query, error) {
	words, err := shlex.Split(s)
	if err != nil {
		return nil, errors.Wrap(err, "cannot split query")
	}
	q := &Query{}
	negate := false
	for _, word := range words {
		switch strings.ToLower(word) {
		case "and":
			continue
		case "not":
			negate = !negate
			continue
		case "or":
			return nil, errors.New("OR is not supported")
		}
		for strings.HasPrefix(word, "-") && len(word) > 1 {
			negate = !negate
			word = word[1:]
		}
		t, err := parseTerm(word)
		if err != nil {
			return nil, err
		}
		t.negate = negate
		negate = false
		q.terms = append(q.terms, t)
	}
	if negate {
		return nil, errors.New("dangling negation")
	}
	return q, nil
}

func parseTerm(word string) (term, error) {
	if word == "*" {
		return term{kind: termAll}, nil
	}
	if strings.HasPrefix(word, "~") && len(word) > 1 {
		return term{kind: termFuzzy, value: word[1:]}, nil
	}
	prefix, value, found := strings.Cut(word, ":")
	if !found {
		return term{kind: termText, value: word}, nil
	}
	kind, ok := prefixes[strings.ToLower(prefix)]
	if !ok {
		return term{kind: termText, value: word}, nil
	}
	if value == "" {
		return term{}, errors.Errorf("%s: missing value", prefix)
	}
	t := term{kind: kind, value: value}
	switch kind {
	case termID:
		t.value = strings.Trim(value, "<>")
	case termDate:
		start, end, err := ParseDateRange(value)
		if err != nil {
			return term{}, errors.Wrapf(err, "%s", word)
		}
		t.start, t.end = start, end
	}
	return t, nil
}

// Match reports whether msg satisfies every term of the query.
func (q *Query) Match(msg *Message) bool {
	for _, t := range q.terms {
		if t.match(msg) == t.negate {
			return false
		}
	}
	return true
}

func (t *term) match(msg *Message) bool {
	switch t.kind {
	case termAll:
		return true
	case termID:
		return msg.id == t.value
	case termThread:
		return msg.threadID == t.value
	case termFrom:
		return containsSmartCase(header(msg, "From"), t.value)
	case termTo:
		return containsSmartCase(header(msg, "To"), t.value) ||
			containsSmartCase(header(msg, "Cc"), t.value)
	case termSubject:
		return containsSmartCase(header(msg, "Subject"), t.value)
	case termTag:
		for _, tag := range msg.tags {
			if fnmatch.Match(t.value, tag, 0) {
				return true
			}
		}
		return false
	case termDate:
		date := msg.date.UTC()
		if !t.start.IsZero() && date.Before(t.start) {
			return false
		}
		if !t.end.IsZero() && !date.Before(t.end) {
			return false
		}
		return true
	case termFuzzy:
		return fuzzy.MatchFold(t.value, header(msg, "Subject"))
	default:
		return containsSmartCase(header(msg, "Subject"), t.value) ||
			containsSmartCase(header(msg, "From"), t.value)
	}
}

// header returns the decoded header, falling back to the raw value when it
// cannot be decoded.
func header(msg *Message, name string) string {
	value, err := msg.Header(name)
	if err != nil {
		return msg.header.Get(name)
	}
	return value
}

// containsSmartCase is a smarter version of strings.Contains for searching.
// Is case-insensitive unless substr contains an upper case character
func containsSmartCase(s string, substr string) bool {
	if hasUpper(substr) {
		return strings.Contains(s, substr)
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
