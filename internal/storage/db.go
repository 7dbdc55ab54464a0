package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dvloznov/spendwise/internal/domain"
)

// Database is the SQLite-backed implementation of every repository in this package.
type Database struct {
	db *gorm.DB
}

// NewDatabase opens (or creates) the SQLite database at dbPath and migrates the schema.
func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&Transaction{}, &Bill{}, &Subscription{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return &Database{db: db}, nil
}

// Close releases the underlying connection pool.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateTransaction implements TransactionRepository.
func (d *Database) CreateTransaction(ctx context.Context, rec *domain.TransactionRecord) error {
	if rec.OwnerID == "" {
		return fmt.Errorf("CreateTransaction: owner ID is required")
	}
	rec.ID = uuid.NewString()
	rec.CreatedAt = time.Now().UTC()

	row := Transaction{
		ID:          rec.ID,
		OwnerID:     rec.OwnerID,
		Purpose:     rec.Purpose,
		Category:    rec.Category,
		Amount:      rec.Amount,
		Date:        rec.Date,
		Kind:        string(rec.Kind),
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
	}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save transaction: %w", err)
	}
	return nil
}

// ListTransactions implements TransactionRepository.
func (d *Database) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]domain.TransactionRecord, error) {
	q := d.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		q = q.Where("purpose LIKE ?", "%"+filter.Search+"%")
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var rows []Transaction
	if err := q.Order("date DESC").Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	out := make([]domain.TransactionRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteTransaction implements TransactionRepository.
func (d *Database) DeleteTransaction(ctx context.Context, ownerID, id string) error {
	return d.deleteOwned(ctx, &Transaction{}, ownerID, id)
}

// CreateBill implements BillRepository.
func (d *Database) CreateBill(ctx context.Context, bill *domain.Bill) error {
	if bill.OwnerID == "" {
		return fmt.Errorf("CreateBill: owner ID is required")
	}
	bill.ID = uuid.NewString()

	row := Bill{
		ID:        bill.ID,
		OwnerID:   bill.OwnerID,
		Name:      bill.Name,
		Amount:    bill.Amount,
		DueDate:   bill.DueDate,
		Frequency: bill.Frequency,
		Status:    string(bill.Status),
	}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}
	return nil
}

// ListBills implements BillRepository.
func (d *Database) ListBills(ctx context.Context, ownerID string) ([]domain.Bill, error) {
	var rows []Bill
	if err := d.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	out := make([]domain.Bill, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteBill implements BillRepository.
func (d *Database) DeleteBill(ctx context.Context, ownerID, id string) error {
	return d.deleteOwned(ctx, &Bill{}, ownerID, id)
}

// CreateSubscription implements SubscriptionRepository.
func (d *Database) CreateSubscription(ctx context.Context, sub *domain.Subscription) error {
	if sub.OwnerID == "" {
		return fmt.Errorf("CreateSubscription: owner ID is required")
	}
	sub.ID = uuid.NewString()
	if sub.Status == "" {
		sub.Status = domain.SubscriptionActive
	}

	row := Subscription{
		ID:          sub.ID,
		OwnerID:     sub.OwnerID,
		Name:        sub.Name,
		Category:    sub.Category,
		Amount:      sub.Amount,
		Billing:     string(sub.Billing),
		NextBilling: sub.NextBilling,
		Status:      string(sub.Status),
	}
	if err := d.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save subscription: %w", err)
	}
	return nil
}

// ListSubscriptions implements SubscriptionRepository.
func (d *Database) ListSubscriptions(ctx context.Context, ownerID string) ([]domain.Subscription, error) {
	var rows []Subscription
	if err := d.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("next_billing ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	out := make([]domain.Subscription, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// UpdateSubscriptionStatus implements SubscriptionRepository.
func (d *Database) UpdateSubscriptionStatus(ctx context.Context, ownerID, id string, status domain.SubscriptionStatus) error {
	res := d.db.WithContext(ctx).
		Model(&Subscription{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Update("status", string(status))
	if res.Error != nil {
		return fmt.Errorf("failed to update subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteSubscription implements SubscriptionRepository.
func (d *Database) DeleteSubscription(ctx context.Context, ownerID, id string) error {
	return d.deleteOwned(ctx, &Subscription{}, ownerID, id)
}

func (d *Database) deleteOwned(ctx context.Context, model interface{}, ownerID, id string) error {
	res := d.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(model)
	if res.Error != nil {
		return fmt.Errorf("failed to delete record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Ensure Database implements the repository interfaces.
var (
	_ TransactionRepository  = (*Database)(nil)
	_ BillRepository         = (*Database)(nil)
	_ SubscriptionRepository = (*Database)(nil)
)
