package bigquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
)

// CreateTransaction implements storage.TransactionRepository.
func (r *TransactionRepository) CreateTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	if rec.OwnerID == "" {
		return fmt.Errorf("CreateTransaction: owner ID is required")
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	row, err := rowFromRecord(rec)
	if err != nil {
		return fmt.Errorf("CreateTransaction: %w", err)
	}

	inserter := r.client.DatasetInProject(r.projectID, r.datasetID).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, row); err != nil {
		return fmt.Errorf("CreateTransaction: inserting row: %w", err)
	}
	return nil
}

// ListTransactions implements storage.TransactionRepository.
func (r *TransactionRepository) ListTransactions(ctx context.Context, ownerID string, filter storage.TransactionFilter) ([]domain.TransactionRecord, error) {
	sql, params := buildListQuery(r.tableRef(), ownerID, filter)
	q := r.client.Query(sql)
	q.Parameters = params

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: query read: %w", err)
	}

	var out []domain.TransactionRecord
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iter next: %w", err)
		}
		out = append(out, row.toRecord())
	}
	return out, nil
}

// DeleteTransaction implements storage.TransactionRepository.
func (r *TransactionRepository) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	q := r.client.Query(`DELETE FROM ` + r.tableRef() + `
		WHERE transaction_id = @transaction_id AND owner_id = @owner_id`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "transaction_id", Value: id},
		{Name: "owner_id", Value: ownerID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: run query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("DeleteTransaction: wait for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("DeleteTransaction: job error: %w", err)
	}

	if status.Statistics != nil {
		if qs, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok && qs.NumDMLAffectedRows == 0 {
			return storage.ErrNotFound
		}
	}
	return nil
}

// buildListQuery renders the SELECT for ListTransactions and its parameters.
func buildListQuery(table, ownerID string, filter storage.TransactionFilter) (string, []bigquery.QueryParameter) {
	var b strings.Builder
	b.WriteString(`SELECT
			transaction_id,
			owner_id,
			transaction_date,
			amount,
			kind,
			purpose,
			category,
			description,
			created_ts
		FROM ` + table + `
		WHERE owner_id = @owner_id`)

	params := []bigquery.QueryParameter{{Name: "owner_id", Value: ownerID}}

	if filter.Category != "" {
		b.WriteString("\n\t\t  AND category = @category")
		params = append(params, bigquery.QueryParameter{Name: "category", Value: filter.Category})
	}
	if filter.Search != "" {
		b.WriteString("\n\t\t  AND LOWER(purpose) LIKE @search")
		params = append(params, bigquery.QueryParameter{Name: "search", Value: "%" + strings.ToLower(filter.Search) + "%"})
	}

	b.WriteString("\n\t\tORDER BY transaction_date DESC, created_ts DESC")

	if filter.Limit > 0 {
		b.WriteString("\n\t\tLIMIT @limit")
		params = append(params, bigquery.QueryParameter{Name: "limit", Value: filter.Limit})
		if filter.Offset > 0 {
			b.WriteString(" OFFSET @offset")
			params = append(params, bigquery.QueryParameter{Name: "offset", Value: filter.Offset})
		}
	}

	return b.String(), params
}
