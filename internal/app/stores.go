// Package app wires configuration to the storage backends shared by the
// server and the CLI.
package app

import (
	"context"
	"fmt"

	"github.com/dvloznov/spendwise/internal/config"
	infraBQ "github.com/dvloznov/spendwise/internal/infra/bigquery"
	"github.com/dvloznov/spendwise/internal/storage"
)

// Stores holds the repositories for one process.
type Stores struct {
	Transactions  storage.TransactionRepository
	Bills         storage.BillRepository
	Subscriptions storage.SubscriptionRepository

	closers []func() error
}

// OpenStores opens the SQLite database and, for the bigquery backend, the
// BigQuery transaction repository. Bills and subscriptions always live in
// SQLite.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	db, err := storage.NewDatabase(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("OpenStores: %w", err)
	}

	s := &Stores{
		Transactions:  db,
		Bills:         db,
		Subscriptions: db,
		closers:       []func() error{db.Close},
	}

	if cfg.StorageBackend == config.BackendBigQuery {
		bq, err := infraBQ.NewTransactionRepository(ctx, cfg.BigQueryProject, cfg.BigQueryDataset)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("OpenStores: %w", err)
		}
		s.Transactions = bq
		s.closers = append(s.closers, bq.Close)
	}

	return s, nil
}

// Close releases every backend, returning the first error.
func (s *Stores) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}
