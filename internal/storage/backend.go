package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/vovakirdan/arcade-portal/internal/config"
)

// Backend bundles the KV used by analytics with the optional score table.
type Backend struct {
	KV     KV
	Scores *Store // nil when scores are not persisted

	closers []func() error
}

// Open builds the backend selected by cfg.Driver.
//
//	sqlite - KV and scores in one SQLite file
//	valkey - KV on a Redis-protocol server, scores in the SQLite file
//	memory - KV in memory, no scores
func Open(ctx context.Context, cfg config.StorageConfig) (*Backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return &Backend{KV: NewMemory()}, nil

	case config.DriverSQLite, "":
		store, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return &Backend{KV: store, Scores: store, closers: []func() error{store.Close}}, nil

	case config.DriverValkey:
		kv, err := OpenValkey(ctx, cfg.ValkeyAddr)
		if err != nil {
			return nil, err
		}
		store, err := OpenSQLite(cfg.Path)
		if err != nil {
			kv.Close()
			return nil, err
		}
		return &Backend{KV: kv, Scores: store, closers: []func() error{kv.Close, store.Close}}, nil

	default:
		return nil, fmt.Errorf("storage: unknown driver %q", cfg.Driver)
	}
}

// Close releases every underlying connection.
func (b *Backend) Close() error {
	var errs []error
	for _, c := range b.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	b.closers = nil
	return errors.Join(errs...)
}

// SaveScore records a score when a score table is configured.
func (b *Backend) SaveScore(gameID string, score int) error {
	if b == nil || b.Scores == nil {
		return nil
	}
	_, err := b.Scores.SaveScore(gameID, score)
	return err
}
