// Package highlight decides whether a rendered message should be marked for
// emphasis. Highlighting never filters anything out.
package highlight

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"git.sr.ht/~nmls/nm-livesearch/lib/format"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

// Spec is a set of predicates. Every non-nil field must match for a message
// to be highlighted.
type Spec struct {
	ID       *string  `json:"id"`
	Date     *string  `json:"date"`
	Index    *int     `json:"index"`
	Num      *int     `json:"num"`
	Total    *int     `json:"total"`
	From     *string  `json:"from"`
	Subject  *string  `json:"subject"`
	Tags     []string `json:"tags"`
	Matched  *bool    `json:"matched"`
	Excluded *bool    `json:"excluded"`

	dates *format.Dates
}

// Parse decodes a JSON predicate set such as {"tags":["inbox"],"from":"bob"}.
// The returned spec is nil when no predicate is set.
func Parse(value string, dates *format.Dates) (*Spec, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	var spec Spec
	dec := json.NewDecoder(strings.NewReader(value))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, errors.Wrap(err, "highlight")
	}
	if spec.Index == nil {
		spec.Index = spec.Num
	}
	spec.Num = nil
	spec.dates = dates
	return Normalize(&spec), nil
}

// Normalize returns nil for a spec without any predicate so that callers
// skip evaluation entirely.
func Normalize(spec *Spec) *Spec {
	if spec == nil {
		return nil
	}
	if spec.ID == nil && spec.Date == nil && spec.Index == nil &&
		spec.Num == nil && spec.Total == nil && spec.From == nil &&
		spec.Subject == nil && spec.Tags == nil && spec.Matched == nil &&
		spec.Excluded == nil {
		return nil
	}
	return spec
}

// SetDates sets the formatter used to render dates for the date predicate.
func (s *Spec) SetDates(dates *format.Dates) {
	if s != nil {
		s.dates = dates
	}
}

// Matches reports whether msg at position index of total in its thread
// satisfies every predicate of the spec. A nil spec never matches.
func (s *Spec) Matches(msg models.Message, index, total int) (bool, error) {
	if s == nil {
		return false, nil
	}
	if s.ID != nil && *s.ID != msg.ID() {
		return false, nil
	}
	// rendered first so that 2021-11 matches 2021-11-09
	if s.Date != nil {
		dates := s.dates
		if dates == nil {
			dates = format.NewDates("", 0)
		}
		if !strings.Contains(dates.Date(msg.Date()), *s.Date) {
			return false, nil
		}
	}
	want := s.Index
	if want == nil {
		want = s.Num
	}
	if want != nil && *want != index {
		return false, nil
	}
	if s.Total != nil && *s.Total != total {
		return false, nil
	}
	// raw header on purpose: "bob@b.com" also matches "Bob <bob@b.com>"
	if s.From != nil {
		from, err := models.HeaderValue(msg, "From")
		if err != nil {
			return false, err
		}
		if !strings.Contains(from, *s.From) {
			return false, nil
		}
	}
	if s.Subject != nil {
		subject, err := models.HeaderValue(msg, "Subject")
		if err != nil {
			return false, err
		}
		if subject != *s.Subject {
			return false, nil
		}
	}
	if s.Tags != nil && !hasAll(msg.Tags(), s.Tags) {
		return false, nil
	}
	if s.Matched != nil && *s.Matched != msg.Matched() {
		return false, nil
	}
	if s.Excluded != nil && *s.Excluded != msg.Excluded() {
		return false, nil
	}
	return true, nil
}

func hasAll(tags []string, wanted []string) bool {
	set := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	for _, tag := range wanted {
		if _, ok := set[tag]; !ok {
			return false
		}
	}
	return true
}
