package db

import (
	"errors"
	"sort"

	"github.com/cbsinteractive/footage-timecode/config"
)

var stores = map[string]Factory{}

var (
	ErrRegistered    = errors.New("report store is already registered")
	ErrStoreNotFound = errors.New("report store not found")
)

// Factory is the function responsible for creating the instance of a
// report store.
type Factory func(cfg *config.Config) (Repository, error)

// Register adds a report store to the internal list of stores.
func Register(name string, store Factory) error {
	if _, ok := stores[name]; ok {
		return ErrRegistered
	}
	stores[name] = store
	return nil
}

// GetFactory returns the factory function for the given store name, if
// it's available.
func GetFactory(name string) (Factory, error) {
	factory, ok := stores[name]
	if !ok {
		return nil, ErrStoreNotFound
	}
	return factory, nil
}

// Open creates the store named by cfg.ReportStore
func Open(cfg *config.Config) (Repository, error) {
	factory, err := GetFactory(cfg.ReportStore)
	if err != nil {
		return nil, err
	}
	return factory(cfg)
}

// List returns the registered store names, alphabetically ordered.
func List() []string {
	names := make([]string, 0, len(stores))
	for name := range stores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
