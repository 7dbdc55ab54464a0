package storage

import (
	"context"
	"errors"

	"github.com/dvloznov/spendwise/internal/domain"
)

// ErrNotFound is returned when a record does not exist for the given owner.
var ErrNotFound = errors.New("record not found")

// TransactionFilter narrows a transaction listing. Zero values mean no filter.
type TransactionFilter struct {
	// Category matches exactly.
	Category string
	// Search matches a substring of the purpose.
	Search string
	// Limit caps the number of results.
	Limit int
	// Offset for pagination.
	Offset int
}

// TransactionRepository stores income and expense records keyed by owner.
type TransactionRepository interface {
	// CreateTransaction assigns an ID and creation time and stores the record.
	CreateTransaction(ctx context.Context, rec *domain.TransactionRecord) error

	// ListTransactions returns the owner's records, newest date first.
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]domain.TransactionRecord, error)

	// DeleteTransaction removes one record. Returns ErrNotFound if the owner has no such record.
	DeleteTransaction(ctx context.Context, ownerID, id string) error
}

// BillRepository stores bill reminders keyed by owner.
type BillRepository interface {
	CreateBill(ctx context.Context, bill *domain.Bill) error
	ListBills(ctx context.Context, ownerID string) ([]domain.Bill, error)
	DeleteBill(ctx context.Context, ownerID, id string) error
}

// SubscriptionRepository stores subscriptions keyed by owner.
type SubscriptionRepository interface {
	CreateSubscription(ctx context.Context, sub *domain.Subscription) error

	// ListSubscriptions returns the owner's subscriptions ordered by next billing date.
	ListSubscriptions(ctx context.Context, ownerID string) ([]domain.Subscription, error)

	UpdateSubscriptionStatus(ctx context.Context, ownerID, id string, status domain.SubscriptionStatus) error
	DeleteSubscription(ctx context.Context, ownerID, id string) error
}
