package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dvloznov/spendwise/internal/domain"
)

func newTestDatabase(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDatabase failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabase_Transactions(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	records := []*domain.TransactionRecord{
		{OwnerID: "alice", Purpose: "Groceries", Category: "Food", Amount: 42, Date: "2025-06-01", Kind: domain.KindExpense},
		{OwnerID: "alice", Purpose: "Salary", Category: "Income", Amount: 3000, Date: "2025-06-03", Kind: domain.KindIncome},
		{OwnerID: "alice", Purpose: "Dinner out", Category: "Food", Amount: 60, Date: "2025-06-02", Kind: domain.KindExpense},
		{OwnerID: "bob", Purpose: "Bus", Category: "Transport", Amount: 3, Date: "2025-06-01", Kind: domain.KindExpense},
	}
	for _, r := range records {
		if err := db.CreateTransaction(ctx, r); err != nil {
			t.Fatalf("CreateTransaction failed: %v", err)
		}
		if r.ID == "" {
			t.Fatal("Expected ID to be assigned")
		}
	}

	all, err := db.ListTransactions(ctx, "alice", TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 records for alice, got %d", len(all))
	}
	if all[0].Date != "2025-06-03" || all[2].Date != "2025-06-01" {
		t.Errorf("Expected newest first, got %s ... %s", all[0].Date, all[2].Date)
	}

	food, err := db.ListTransactions(ctx, "alice", TransactionFilter{Category: "Food"})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(food) != 2 {
		t.Errorf("Expected 2 food records, got %d", len(food))
	}

	search, err := db.ListTransactions(ctx, "alice", TransactionFilter{Search: "dinner"})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(search) != 1 || search[0].Purpose != "Dinner out" {
		t.Errorf("Expected case-insensitive search hit, got %+v", search)
	}

	page, err := db.ListTransactions(ctx, "alice", TransactionFilter{Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("ListTransactions failed: %v", err)
	}
	if len(page) != 1 || page[0].Date != "2025-06-02" {
		t.Errorf("Unexpected page: %+v", page)
	}

	if err := db.DeleteTransaction(ctx, "bob", records[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting another owner's record, got: %v", err)
	}
	if err := db.DeleteTransaction(ctx, "alice", records[0].ID); err != nil {
		t.Fatalf("DeleteTransaction failed: %v", err)
	}
	if err := db.DeleteTransaction(ctx, "alice", records[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestDatabase_CreateTransactionRequiresOwner(t *testing.T) {
	db := newTestDatabase(t)
	err := db.CreateTransaction(context.Background(), &domain.TransactionRecord{Amount: 1})
	if err == nil {
		t.Error("Expected error for missing owner")
	}
}

func TestDatabase_Bills(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	later := &domain.Bill{OwnerID: "alice", Name: "Rent", Amount: 1200, DueDate: "2025-07-01", Frequency: "Monthly", Status: domain.BillUpcoming}
	sooner := &domain.Bill{OwnerID: "alice", Name: "Power", Amount: 80, DueDate: "2025-06-10", Frequency: "Monthly", Status: domain.BillDueSoon}
	for _, b := range []*domain.Bill{later, sooner} {
		if err := db.CreateBill(ctx, b); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	bills, err := db.ListBills(ctx, "alice")
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(bills) != 2 || bills[0].Name != "Power" {
		t.Errorf("Expected bills ordered by due date, got %+v", bills)
	}

	if err := db.DeleteBill(ctx, "alice", later.ID); err != nil {
		t.Fatalf("DeleteBill failed: %v", err)
	}
	bills, _ = db.ListBills(ctx, "alice")
	if len(bills) != 1 {
		t.Errorf("Expected 1 bill after delete, got %d", len(bills))
	}
}

func TestDatabase_Subscriptions(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()

	sub := &domain.Subscription{OwnerID: "alice", Name: "Music", Category: "Entertainment", Amount: 10, Billing: domain.BillingMonthly, NextBilling: "2025-06-15"}
	if err := db.CreateSubscription(ctx, sub); err != nil {
		t.Fatalf("CreateSubscription failed: %v", err)
	}
	if sub.Status != domain.SubscriptionActive {
		t.Errorf("Expected default status active, got %q", sub.Status)
	}

	if err := db.UpdateSubscriptionStatus(ctx, "alice", sub.ID, domain.SubscriptionPaused); err != nil {
		t.Fatalf("UpdateSubscriptionStatus failed: %v", err)
	}
	subs, err := db.ListSubscriptions(ctx, "alice")
	if err != nil {
		t.Fatalf("ListSubscriptions failed: %v", err)
	}
	if len(subs) != 1 || subs[0].Status != domain.SubscriptionPaused {
		t.Errorf("Expected paused subscription, got %+v", subs)
	}

	if err := db.UpdateSubscriptionStatus(ctx, "alice", "missing", domain.SubscriptionActive); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
	if err := db.DeleteSubscription(ctx, "alice", sub.ID); err != nil {
		t.Fatalf("DeleteSubscription failed: %v", err)
	}
}
