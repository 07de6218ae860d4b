package main

import (
	"fmt"

	"github.com/kalambet/calico/internal/platform"
	"github.com/kalambet/calico/internal/sdlkey"
	"github.com/kalambet/calico/internal/setup"
	"github.com/kalambet/calico/internal/storage"
)

func paths() platform.Paths {
	if dataDir != "" {
		return platform.Paths{Dir: dataDir}
	}
	return platform.DefaultPaths()
}

// openSession loads the write directory. A damaged config file is
// reported as a warning and the session carries on with what it could
// read.
func openSession() *setup.Session {
	s := setup.New(paths(), sdlkey.Namer{})
	if err := s.Load(); err != nil {
		printWarning("%v", err)
	}
	return s
}

func openStore(p platform.Paths) (*storage.Store, error) {
	if err := p.Ensure(); err != nil {
		return nil, err
	}
	store, err := storage.Open(p.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening profile store: %w", err)
	}
	return store, nil
}
