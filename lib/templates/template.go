package templates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"git.sr.ht/~nmls/nm-livesearch/lib/format"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

const (
	DefaultEntry    = "{date} [{index:02}/{total:02}] {from:25}│ {subject} ({tags})"
	DefaultResponse = "{date} [{index:02}/{total:02}] {from:25}│ {response}▶ ({tags})"
)

// maxWidth bounds field widths so a bad format cannot allocate huge padding.
const maxWidth = 4096

var placeholder = regexp.MustCompile(`\{([^{}]*)\}`)

// Template holds the entry and response formats. A Template is immutable
// once built and safe to share.
type Template struct {
	// Entry renders top level messages, flat lists and thread summaries.
	Entry string
	// Response renders nested replies; it may reference {response}.
	Response string

	dates *format.Dates
}

func New(entry, response string, dates *format.Dates) *Template {
	if entry == "" {
		entry = DefaultEntry
	}
	if response == "" {
		response = DefaultResponse
	}
	if dates == nil {
		dates = format.NewDates("", 0)
	}
	return &Template{Entry: entry, Response: response, dates: dates}
}

// Dates returns the date formatter used by the template.
func (t *Template) Dates() *format.Dates {
	return t.dates
}

// Validate renders both formats against dummy data so that configuration
// mistakes surface before any output is produced.
func (t *Template) Validate() error {
	if _, err := t.Render(t.Entry, DummyData(false)); err != nil {
		return err
	}
	_, err := t.Render(t.Response, DummyData(true))
	return err
}

// Render substitutes every {field} or {field:width} placeholder of tmpl.
func (t *Template) Render(tmpl string, data *Data) (string, error) {
	var sb strings.Builder
	last := 0
	for _, loc := range placeholder.FindAllStringSubmatchIndex(tmpl, -1) {
		sb.WriteString(tmpl[last:loc[0]])
		value, err := t.field(tmpl, tmpl[loc[2]:loc[3]], data)
		if err != nil {
			return "", err
		}
		sb.WriteString(value)
		last = loc[1]
	}
	sb.WriteString(tmpl[last:])
	return sb.String(), nil
}

func (t *Template) field(tmpl string, spec string, data *Data) (string, error) {
	name, w, hasWidth := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	width := 0
	if hasWidth {
		n, err := strconv.Atoi(w)
		if err != nil || n < 0 || n > maxWidth || strings.ContainsAny(w, "+-") {
			return "", &models.TemplateError{
				Template: tmpl,
				Reason:   fmt.Sprintf("invalid width in {%s}", spec),
			}
		}
		width = n
	}

	var value string
	switch name {
	case "Date":
		value = t.dates.Humanize(data.Date)
	case "date":
		value = t.dates.Date(data.Date)
	case "index":
		return zeroPad(data.Index, width), nil
	case "total":
		return zeroPad(data.Total, width), nil
	case "from":
		value = data.From
	case "subject":
		value = fixSubject(data.Subject)
	case "tags":
		value = strings.Join(data.Tags, ", ")
	case "response":
		if data.Response == nil {
			return "", &models.TemplateError{
				Template: tmpl,
				Reason:   "{response} is only available for replies",
			}
		}
		value = *data.Response
	case "":
		return "", &models.TemplateError{
			Template: tmpl,
			Reason:   fmt.Sprintf("empty placeholder {%s}", spec),
		}
	default:
		return "", &models.TemplateError{
			Template: tmpl,
			Reason:   fmt.Sprintf("unknown field %q", name),
		}
	}
	return pad(value, width), nil
}
