package domain

// BillingCycle is how often a subscription charges.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// SubscriptionStatus toggles whether a subscription counts towards totals.
type SubscriptionStatus string

const (
	SubscriptionActive SubscriptionStatus = "active"
	SubscriptionPaused SubscriptionStatus = "paused"
)

// Subscription is a recurring service charge.
type Subscription struct {
	ID          string             `json:"id"`
	OwnerID     string             `json:"owner_id,omitempty"`
	Name        string             `json:"name"`
	Category    string             `json:"category"`
	Amount      float64            `json:"amount"`
	Billing     BillingCycle       `json:"billing"`
	NextBilling string             `json:"next_billing"` // YYYY-MM-DD
	Status      SubscriptionStatus `json:"status"`
}
