package assembler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dvloznov/spendwise/internal/domain"
	"github.com/dvloznov/spendwise/internal/storage"
)

// InsightsPath is the route the insight service is mounted on.
const InsightsPath = "/api/getInsights"

// ErrNoRecords is returned, without any request being made, when there is
// nothing to send.
var ErrNoRecords = errors.New("no transaction records to analyze")

// RequestError is a non-2xx answer from the insight service.
type RequestError struct {
	Status  int
	Message string
	Details string
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("insight request failed with status %d", e.Status)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

// TransactionLister loads an owner's records.
type TransactionLister interface {
	ListTransactions(ctx context.Context, ownerID string, filter storage.TransactionFilter) ([]domain.TransactionRecord, error)
}

// Client submits transaction records to the insight service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewClient creates a client for the service at baseURL. A nil hc uses
// http.DefaultClient.
func NewClient(baseURL string, hc *http.Client, log zerolog.Logger) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: hc,
		log:        log,
	}
}

type insightsRequest struct {
	Expenses []domain.TransactionRecord `json:"expenses"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// FetchInsights sends every record in one request and waits for the full
// response. No retry is attempted.
func (c *Client) FetchInsights(ctx context.Context, records []domain.TransactionRecord) ([]domain.Insight, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	body, err := json.Marshal(insightsRequest{Expenses: records})
	if err != nil {
		return nil, fmt.Errorf("FetchInsights: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+InsightsPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("FetchInsights: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug().Int("records", len(records)).Msg("Sending insight request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("FetchInsights: send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("FetchInsights: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reqErr := &RequestError{Status: resp.StatusCode}
		var eb errorBody
		if json.Unmarshal(data, &eb) == nil {
			reqErr.Message = eb.Error
			reqErr.Details = eb.Details
		}
		return nil, reqErr
	}

	var insights []domain.Insight
	if err := json.Unmarshal(data, &insights); err != nil {
		return nil, fmt.Errorf("FetchInsights: decode response: %w", err)
	}

	c.log.Debug().Int("insights", len(insights)).Msg("Received insights")
	return insights, nil
}

// Insights loads all of the owner's records, unfiltered, and submits them.
func (c *Client) Insights(ctx context.Context, lister TransactionLister, ownerID string) ([]domain.Insight, error) {
	records, err := lister.ListTransactions(ctx, ownerID, storage.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("Insights: load records: %w", err)
	}
	return c.FetchInsights(ctx, records)
}
