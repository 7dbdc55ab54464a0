package storage

import (
	"time"

	"github.com/dvloznov/spendwise/internal/domain"
)

// Transaction is the stored form of a domain.TransactionRecord.
type Transaction struct {
	ID          string `gorm:"primaryKey"`
	OwnerID     string `gorm:"index;not null"`
	Purpose     string
	Category    string `gorm:"index"`
	Amount      float64
	Date        string `gorm:"index"`
	Kind        string
	Description string
	CreatedAt   time.Time
}

func (t Transaction) toDomain() domain.TransactionRecord {
	return domain.TransactionRecord{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Purpose:     t.Purpose,
		Category:    t.Category,
		Amount:      t.Amount,
		Date:        t.Date,
		Kind:        domain.TransactionKind(t.Kind),
		Description: t.Description,
		CreatedAt:   t.CreatedAt,
	}
}

// Bill is the stored form of a domain.Bill.
type Bill struct {
	ID        string `gorm:"primaryKey"`
	OwnerID   string `gorm:"index;not null"`
	Name      string
	Amount    float64
	DueDate   string
	Frequency string
	Status    string
	CreatedAt time.Time
}

func (b Bill) toDomain() domain.Bill {
	return domain.Bill{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Amount:    b.Amount,
		DueDate:   b.DueDate,
		Frequency: b.Frequency,
		Status:    domain.BillStatus(b.Status),
	}
}

// Subscription is the stored form of a domain.Subscription.
type Subscription struct {
	ID          string `gorm:"primaryKey"`
	OwnerID     string `gorm:"index;not null"`
	Name        string
	Category    string
	Amount      float64
	Billing     string
	NextBilling string `gorm:"index"`
	Status      string
	CreatedAt   time.Time
}

func (s Subscription) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:          s.ID,
		OwnerID:     s.OwnerID,
		Name:        s.Name,
		Category:    s.Category,
		Amount:      s.Amount,
		Billing:     domain.BillingCycle(s.Billing),
		NextBilling: s.NextBilling,
		Status:      domain.SubscriptionStatus(s.Status),
	}
}
