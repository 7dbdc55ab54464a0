package domain

import (
	"time"
)

// TransactionKind distinguishes money coming in from money going out.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// Valid reports whether k is one of the known kinds.
func (k TransactionKind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// TransactionRecord is a single income or expense entry owned by a user.
// Amount is always positive; Kind carries the direction.
type TransactionRecord struct {
	ID          string          `json:"id"`
	OwnerID     string          `json:"owner_id,omitempty"`
	Purpose     string          `json:"purpose"`
	Category    string          `json:"category"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Kind        TransactionKind `json:"type"`
	Description string          `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DateLayout is the layout used for every date-only field in the domain.
const DateLayout = "2006-01-02"
