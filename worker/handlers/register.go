package handlers

import (
	"fmt"
	"net/url"
	"strings"

	"git.sr.ht/~nmls/nm-livesearch/worker/types"
)

type FactoryFunc func(*types.StoreConfig) (types.Store, error)

var storeFactories map[string]FactoryFunc = make(map[string]FactoryFunc)

func RegisterStoreFactory(scheme string, factory FactoryFunc) {
	storeFactories[scheme] = factory
}

// Schemes lists the registered store schemes.
func Schemes() []string {
	var schemes []string
	for scheme := range storeFactories {
		schemes = append(schemes, scheme)
	}
	return schemes
}

func GetHandlerForScheme(scheme string, cfg *types.StoreConfig) (types.Store, error) {
	factory, ok := storeFactories[scheme]
	if !ok {
		return nil, fmt.Errorf("Unknown backend %s", scheme)
	}
	store, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}

// NewStore guesses the appropriate store type based on the given source
// string. Anything after a '+' in the scheme is ignored.
func NewStore(source string, excludeTags []string, bySubject bool) (types.Store, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, err
	}
	scheme := u.Scheme
	if i := strings.IndexRune(scheme, '+'); i >= 0 {
		scheme = scheme[:i]
	}
	return GetHandlerForScheme(scheme, &types.StoreConfig{
		Source:          source,
		URL:             u,
		ExcludeTags:     excludeTags,
		ThreadBySubject: bySubject,
	})
}
