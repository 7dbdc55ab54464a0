package export

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/jobs"
	"github.com/dvloznov/spendwise/internal/storage"
)

// mockUploader captures the last upload.
type mockUploader struct {
	bucket, object, contentType string
	body                        []byte
	err                         error
}

func (m *mockUploader) Upload(ctx context.Context, bucket, object, contentType string, r io.Reader) error {
	if m.err != nil {
		return m.err
	}
	m.bucket, m.object, m.contentType = bucket, object, contentType
	b, err := io.ReadAll(r)
	m.body = b
	return err
}

func TestWriteCSV(t *testing.T) {
	records := []domain.TransactionRecord{
		{ID: "1", Date: "2025-06-01", Kind: domain.KindExpense, Category: "Food", Purpose: "Lunch, with team", Amount: 12.5},
		{ID: "2", Date: "2025-06-02", Kind: domain.KindIncome, Category: "Income", Purpose: "Salary", Amount: 3000},
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	want := "id,date,type,category,purpose,amount,description\n" +
		"1,2025-06-01,expense,Food,\"Lunch, with team\",12.50,\n" +
		"2,2025-06-02,income,Income,Salary,3000.00,\n"
	if buf.String() != want {
		t.Errorf("WriteCSV output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestExporter_ExportTransactions(t *testing.T) {
	up := &mockUploader{}
	exp := NewExporter(up, "my-bucket")
	exp.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	uri, err := exp.ExportTransactions(context.Background(), "alice", []domain.TransactionRecord{{ID: "1", Amount: 1}})
	if err != nil {
		t.Fatalf("ExportTransactions failed: %v", err)
	}

	if !strings.HasPrefix(up.object, "exports/alice/2025/06/01/") || !strings.HasSuffix(up.object, ".csv") {
		t.Errorf("Unexpected object name: %s", up.object)
	}
	if uri != "gs://my-bucket/"+up.object {
		t.Errorf("URI = %q, want gs://my-bucket/%s", uri, up.object)
	}
	if up.contentType != "text/csv" {
		t.Errorf("contentType = %q, want text/csv", up.contentType)
	}
	if !bytes.HasPrefix(up.body, []byte("id,date,type")) {
		t.Errorf("Expected CSV body, got %q", up.body)
	}
}

func TestExporter_Disabled(t *testing.T) {
	exp := NewExporter(&mockUploader{}, "")
	if _, err := exp.ExportTransactions(context.Background(), "alice", nil); !errors.Is(err, ErrDisabled) {
		t.Errorf("Expected ErrDisabled, got: %v", err)
	}
}

func TestExporter_UploadError(t *testing.T) {
	exp := NewExporter(&mockUploader{err: errors.New("denied")}, "my-bucket")
	if _, err := exp.ExportTransactions(context.Background(), "alice", nil); err == nil {
		t.Error("Expected upload error to propagate")
	}
}

type stubLister struct {
	records []domain.TransactionRecord
	err     error
	owner   string
}

func (s *stubLister) ListTransactions(ctx context.Context, ownerID string, filter storage.TransactionFilter) ([]domain.TransactionRecord, error) {
	s.owner = ownerID
	return s.records, s.err
}

func TestExporter_JobHandler(t *testing.T) {
	up := &mockUploader{}
	e := NewExporter(up, "exports-bucket")
	lister := &stubLister{records: []domain.TransactionRecord{
		{ID: "1", Date: "2025-06-01", Kind: domain.KindExpense, Amount: 4},
		{ID: "2", Date: "2025-06-02", Kind: domain.KindExpense, Amount: 6},
	}}

	job := &jobs.ExportJob{JobID: "j1", OwnerID: "alice"}
	if err := e.JobHandler(lister)(context.Background(), job); err != nil {
		t.Fatalf("JobHandler failed: %v", err)
	}
	if lister.owner != "alice" {
		t.Errorf("Expected records loaded for alice, got %q", lister.owner)
	}
	if job.RecordCount != 2 || !strings.HasPrefix(job.GCSURI, "gs://exports-bucket/exports/alice/") {
		t.Errorf("Unexpected job result: %+v", job)
	}

	lister.err = errors.New("db down")
	if err := e.JobHandler(lister)(context.Background(), &jobs.ExportJob{OwnerID: "alice"}); err == nil {
		t.Error("Expected error when records cannot be loaded")
	}
}
