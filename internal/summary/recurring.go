package summary

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/spendwise/internal/domain"
)

// DueSoonDays is the window in which an unpaid bill is flagged as due soon.
const DueSoonDays = 7

var twelve = decimal.NewFromInt(12)

// BillStatusFor returns the whole days until due (rounded up) and the status
// that goes with it.
func BillStatusFor(due, now time.Time) (int, domain.BillStatus) {
	days := int(math.Ceil(due.Sub(now).Hours() / 24))
	switch {
	case days < 0:
		return days, domain.BillOverdue
	case days <= DueSoonDays:
		return days, domain.BillDueSoon
	default:
		return days, domain.BillUpcoming
	}
}

// RefreshBills recomputes DaysLeft and Status for every bill with a parseable
// due date. Bills are updated in place.
func RefreshBills(bills []domain.Bill, now time.Time) {
	for i := range bills {
		due, err := time.ParseInLocation(domain.DateLayout, bills[i].DueDate, now.Location())
		if err != nil {
			continue
		}
		bills[i].DaysLeft, bills[i].Status = BillStatusFor(due, now)
	}
}

// BillsOverview is the header of the bills view.
type BillsOverview struct {
	TotalUpcoming decimal.Decimal `json:"total_upcoming"`
	Overdue       int             `json:"overdue"`
	DueSoon       int             `json:"due_soon"`
}

// SummarizeBills totals every bill and counts them by status.
func SummarizeBills(bills []domain.Bill) BillsOverview {
	var o BillsOverview
	for _, b := range bills {
		o.TotalUpcoming = o.TotalUpcoming.Add(decimal.NewFromFloat(b.Amount))
		switch b.Status {
		case domain.BillOverdue:
			o.Overdue++
		case domain.BillDueSoon:
			o.DueSoon++
		}
	}
	return o
}

// SubscriptionTotals is what active subscriptions cost.
type SubscriptionTotals struct {
	Active  int             `json:"active"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// SummarizeSubscriptions spreads yearly charges over 12 months and ignores
// paused subscriptions.
func SummarizeSubscriptions(subs []domain.Subscription) SubscriptionTotals {
	var t SubscriptionTotals
	for _, s := range subs {
		if s.Status != domain.SubscriptionActive {
			continue
		}
		t.Active++
		amount := decimal.NewFromFloat(s.Amount)
		if s.Billing == domain.BillingMonthly {
			t.Monthly = t.Monthly.Add(amount)
		} else {
			t.Monthly = t.Monthly.Add(amount.Div(twelve))
		}
	}
	t.Yearly = t.Monthly.Mul(twelve).Round(2)
	t.Monthly = t.Monthly.Round(2)
	return t
}
