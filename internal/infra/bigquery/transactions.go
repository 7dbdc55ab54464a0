package bigquery

import (
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/spendwise/internal/domain"
)

// TransactionRow mirrors the finance.transactions table.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	OwnerID       string `bigquery:"owner_id"`       // REQUIRED

	TransactionDate civil.Date `bigquery:"transaction_date"` // REQUIRED
	Amount          *big.Rat   `bigquery:"amount"`           // REQUIRED NUMERIC
	Kind            string     `bigquery:"kind"`             // REQUIRED: income | expense

	Purpose     bigquery.NullString `bigquery:"purpose"`
	Category    bigquery.NullString `bigquery:"category"`
	Description bigquery.NullString `bigquery:"description"`

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}

// rowFromRecord converts a domain record into a row. The record's date must be YYYY-MM-DD.
func rowFromRecord(rec *domain.TransactionRecord) (*TransactionRow, error) {
	date, err := civil.ParseDate(rec.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", rec.Date, err)
	}
	return &TransactionRow{
		TransactionID:   rec.ID,
		OwnerID:         rec.OwnerID,
		TransactionDate: date,
		Amount:          new(big.Rat).SetFloat64(rec.Amount),
		Kind:            string(rec.Kind),
		Purpose:         nullString(rec.Purpose),
		Category:        nullString(rec.Category),
		Description:     nullString(rec.Description),
		CreatedTS:       rec.CreatedAt,
	}, nil
}

func (r *TransactionRow) toRecord() domain.TransactionRecord {
	var amount float64
	if r.Amount != nil {
		amount, _ = r.Amount.Float64()
	}
	return domain.TransactionRecord{
		ID:          r.TransactionID,
		OwnerID:     r.OwnerID,
		Purpose:     r.Purpose.StringVal,
		Category:    r.Category.StringVal,
		Amount:      amount,
		Date:        r.TransactionDate.String(),
		Kind:        domain.TransactionKind(r.Kind),
		Description: r.Description.StringVal,
		CreatedAt:   r.CreatedTS,
	}
}

func nullString(s string) bigquery.NullString {
	return bigquery.NullString{StringVal: s, Valid: s != ""}
}
