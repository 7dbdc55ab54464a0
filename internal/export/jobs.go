package export

import (
	"context"
	"fmt"

	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/jobs"
	"github.com/dvloznov/spendwise/internal/storage"
)

// TransactionLister loads an owner's records.
type TransactionLister interface {
	ListTransactions(ctx context.Context, ownerID string, filter storage.TransactionFilter) ([]domain.TransactionRecord, error)
}

// JobHandler returns the queue handler that exports all of a job owner's
// transactions and records the resulting URI on the job.
func (e *Exporter) JobHandler(lister TransactionLister) jobs.JobHandler {
	return func(ctx context.Context, job *jobs.ExportJob) error {
		records, err := lister.ListTransactions(ctx, job.OwnerID, storage.TransactionFilter{})
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}

		uri, err := e.ExportTransactions(ctx, job.OwnerID, records)
		if err != nil {
			return err
		}

		job.GCSURI = uri
		job.RecordCount = len(records)
		return nil
	}
}
