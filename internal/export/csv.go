package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dvloznov/spendwise/internal/domain"
)

var csvHeader = []string{"id", "date", "type", "category", "purpose", "amount", "description"}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []domain.TransactionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("WriteCSV: header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.ID,
			r.Date,
			string(r.Kind),
			r.Category,
			r.Purpose,
			strconv.FormatFloat(r.Amount, 'f', 2, 64),
			r.Description,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("WriteCSV: record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
