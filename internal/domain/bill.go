package domain

// BillStatus is derived from how many days are left until the due date.
type BillStatus string

const (
	BillOverdue  BillStatus = "overdue"
	BillDueSoon  BillStatus = "due-soon"
	BillUpcoming BillStatus = "upcoming"
)

// Bill is a recurring payment reminder.
type Bill struct {
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id,omitempty"`
	Name      string     `json:"name"`
	Amount    float64    `json:"amount"`
	DueDate   string     `json:"due_date"` // YYYY-MM-DD
	Frequency string     `json:"frequency"`
	Status    BillStatus `json:"status"`
	DaysLeft  int        `json:"days_left"`
}
