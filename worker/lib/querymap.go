package lib

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// QueryMap holds named searches read from a file of "name = query" lines:
//
//	inbox = tag:inbox and not tag:archived
//	todo = tag:flagged
type QueryMap struct {
	queries map[string]string
	order   []string
}

func ParseQueryMap(r io.Reader) (*QueryMap, error) {
	cfg, err := ini.Load(r)
	if err != nil {
		return nil, err
	}

	sec, err := cfg.GetSection("")
	if err != nil {
		return nil, err
	}

	order := sec.KeyStrings()

	for _, k := range order {
		v, err := sec.GetKey(k)
		switch {
		case err != nil:
			return nil, err
		case v.String() == "":
			return nil, fmt.Errorf("no value for key '%s'", k)
		}
	}

	return &QueryMap{queries: sec.KeysHash(), order: order}, nil
}

func LoadQueryMap(path string) (*QueryMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseQueryMap(f)
}

// Names returns the query names in file order.
func (m *QueryMap) Names() []string {
	if m == nil {
		return nil
	}
	return m.order
}

// Expand returns the query named search, or search itself when it is not
// a known name.
func (m *QueryMap) Expand(search string) string {
	if m == nil {
		return search
	}
	if query, ok := m.queries[strings.TrimSpace(search)]; ok {
		return query
	}
	return search
}
