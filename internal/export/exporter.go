package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dvloznov/spendwise/internal/domain"
)

// ErrDisabled is returned when no export bucket is configured.
var ErrDisabled = errors.New("export bucket not configured")

// Exporter writes an owner's transactions to object storage as CSV.
type Exporter struct {
	uploader Uploader
	bucket   string
	now      func() time.Time
}

// NewExporter creates an exporter. An empty bucket disables exports.
func NewExporter(uploader Uploader, bucket string) *Exporter {
	return &Exporter{
		uploader: uploader,
		bucket:   bucket,
		now:      time.Now,
	}
}

// Enabled reports whether exports can be written.
func (e *Exporter) Enabled() bool {
	return e != nil && e.uploader != nil && e.bucket != ""
}

// ExportTransactions uploads records as
// exports/{owner}/{YYYY/MM/DD}/{uuid}.csv and returns the gs:// URI.
func (e *Exporter) ExportTransactions(ctx context.Context, ownerID string, records []domain.TransactionRecord) (string, error) {
	if !e.Enabled() {
		return "", ErrDisabled
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return "", fmt.Errorf("ExportTransactions: %w", err)
	}

	object := objectName(ownerID, e.now())
	if err := e.uploader.Upload(ctx, e.bucket, object, "text/csv", &buf); err != nil {
		return "", fmt.Errorf("ExportTransactions: upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", e.bucket, object), nil
}

func objectName(ownerID string, at time.Time) string {
	return fmt.Sprintf("exports/%s/%s/%s.csv", ownerID, at.Format("2006/01/02"), uuid.NewString())
}
