package config

import (
	"github.com/go-ini/ini"

	"git.sr.ht/~nmls/nm-livesearch/lib/format"
	"git.sr.ht/~nmls/nm-livesearch/lib/highlight"
	"git.sr.ht/~nmls/nm-livesearch/lib/log"
	"git.sr.ht/~nmls/nm-livesearch/lib/sort"
	"git.sr.ht/~nmls/nm-livesearch/lib/templates"
	"git.sr.ht/~nmls/nm-livesearch/models"
)

type UIConfig struct {
	Sort           models.SortMode `ini:"sort" default:"newest" parse:"ParseSort"`
	EntryFormat    string          `ini:"entry-format"`
	ResponseFormat string          `ini:"response-format"`
	DateFormat     string          `ini:"date-format" default:"%Y-%m-%d"`
	// number of days during which dates are shown relative to now
	HumanizeLimit int    `ini:"humanize-limit" default:"5"`
	Highlight     string `ini:"highlight"`
}

func parseUi(file *ini.File) (*UIConfig, error) {
	conf := new(UIConfig)
	if err := MapToStruct(file.Section("ui"), conf, true); err != nil {
		return nil, err
	}
	log.Debugf("nm-livesearch.conf: [ui] %#v", conf)
	return conf, nil
}

func (ui *UIConfig) ParseSort(sec *ini.Section, key *ini.Key) (models.SortMode, error) {
	return sort.Parse(key.String())
}

func (ui *UIConfig) Dates() *format.Dates {
	return format.NewDates(ui.DateFormat, ui.HumanizeLimit)
}

// Template builds the entry templates. We want to fail before any output
// is written if they are not ok, hence the dummy renders.
func (ui *UIConfig) Template() (*templates.Template, error) {
	t := templates.New(ui.EntryFormat, ui.ResponseFormat, ui.Dates())
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// HighlightSpec parses the highlight predicates. It is nil when none is
// configured.
func (ui *UIConfig) HighlightSpec() (*highlight.Spec, error) {
	return highlight.Parse(ui.Highlight, ui.Dates())
}
