package config

import (
	"github.com/go-ini/ini"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
)

type GeneralConfig struct {
	Source          string       `ini:"source" default:"notmuch://~/mail"`
	ExcludeTags     []string     `ini:"exclude-tags" delim:"," default:"deleted,spam"`
	ThreadBySubject bool         `ini:"thread-by-subject" default:"false"`
	QueryMap        string       `ini:"query-map"`
	LogFile         string       `ini:"log-file"`
	LogLevel        log.LogLevel `ini:"log-level" default:"info" parse:"ParseLogLevel"`
}

func parseGeneral(file *ini.File) (*GeneralConfig, error) {
	conf := new(GeneralConfig)
	if err := MapToStruct(file.Section("general"), conf, true); err != nil {
		return nil, err
	}
	log.Debugf("nm-livesearch.conf: [general] %#v", conf)
	return conf, nil
}

func (gen *GeneralConfig) ParseLogLevel(sec *ini.Section, key *ini.Key) (log.LogLevel, error) {
	return log.ParseLevel(key.String())
}
