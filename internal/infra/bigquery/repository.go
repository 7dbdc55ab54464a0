package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/spendwise/internal/storage"
)

const transactionsTable = "transactions"

// TransactionRepository is the BigQuery implementation of
// storage.TransactionRepository. It holds a shared BigQuery client to avoid
// creating a new connection for each operation.
type TransactionRepository struct {
	client    *bigquery.Client
	projectID string
	datasetID string
}

// NewTransactionRepository creates a repository bound to projectID.datasetID.
func NewTransactionRepository(ctx context.Context, projectID, datasetID string) (*TransactionRepository, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("NewTransactionRepository: creating client: %w", err)
	}
	return &TransactionRepository{
		client:    client,
		projectID: projectID,
		datasetID: datasetID,
	}, nil
}

// Close closes the BigQuery client connection.
func (r *TransactionRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// tableRef is the fully qualified, backtick-quoted table name for SQL.
func (r *TransactionRepository) tableRef() string {
	return fmt.Sprintf("`%s.%s.%s`", r.projectID, r.datasetID, transactionsTable)
}

// Ensure TransactionRepository implements storage.TransactionRepository.
var _ storage.TransactionRepository = (*TransactionRepository)(nil)
