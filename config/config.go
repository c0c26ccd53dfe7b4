package config

import (
	"errors"
	"io/fs"
	"os"
	"unicode"

	"github.com/go-ini/ini"

	"git.sr.ht/~nmls/nm-livesearch/lib/log"
)

type Config struct {
	General *GeneralConfig
	Ui      *UIConfig
}

// Input: ThreadBySubject
// Output: thread-by-subject
func mapName(raw string) string {
	newstr := make([]rune, 0, len(raw))
	for i, chr := range raw {
		if isUpper := 'A' <= chr && chr <= 'Z'; isUpper {
			if i > 0 {
				newstr = append(newstr, '-')
			}
		}
		newstr = append(newstr, unicode.ToLower(chr))
	}
	return string(newstr)
}

// Load reads the configuration file at path. A missing file yields the
// default configuration.
func Load(path string) (*Config, error) {
	var file *ini.File
	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Debugf("%s not found, using defaults", path)
		file = ini.Empty()
	case err != nil:
		return nil, err
	default:
		file, err = ini.LoadSources(ini.LoadOptions{
			KeyValueDelimiters: "=",
			// templates may contain '#' and ';'
			IgnoreInlineComment: true,
		}, path)
		if err != nil {
			return nil, err
		}
	}
	file.NameMapper = mapName
	return parse(file)
}

func parse(file *ini.File) (*Config, error) {
	general, err := parseGeneral(file)
	if err != nil {
		return nil, err
	}
	ui, err := parseUi(file)
	if err != nil {
		return nil, err
	}
	conf := &Config{General: general, Ui: ui}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks the templates and highlight predicates. It must be called
// again after overriding values.
func (c *Config) Validate() error {
	if _, err := c.Ui.Template(); err != nil {
		return err
	}
	_, err := c.Ui.HighlightSpec()
	return err
}
