package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/spendwise/internal/domain"
)

// RecentLimit is how many records the dashboard lists.
const RecentLimit = 10

var hundred = decimal.NewFromInt(100)

// DashboardSummary is the headline view of an owner's records.
type DashboardSummary struct {
	TotalExpense    decimal.Decimal            `json:"total_expense"`
	TotalIncome     decimal.Decimal            `json:"total_income"`
	DailySpend      decimal.Decimal            `json:"daily_spend"`
	BudgetLimit     decimal.Decimal            `json:"budget_limit"`
	BudgetUsedPct   decimal.Decimal            `json:"budget_used_pct"`
	RemainingBudget decimal.Decimal            `json:"remaining_budget"`
	Recent          []domain.TransactionRecord `json:"recent"`
}

// Dashboard totals the records. The budget limit is total income, or
// fallbackBudget when there is no income. Daily spend divides total expense by
// the number of distinct dates across all records.
func Dashboard(records []domain.TransactionRecord, fallbackBudget float64) DashboardSummary {
	var expense, income decimal.Decimal
	dates := make(map[string]struct{})

	for _, r := range records {
		amount := decimal.NewFromFloat(r.Amount)
		if r.Kind == domain.KindIncome {
			income = income.Add(amount)
		} else if r.Kind == domain.KindExpense {
			expense = expense.Add(amount)
		}
		dates[r.Date] = struct{}{}
	}

	daily := decimal.Zero
	if len(dates) > 0 {
		daily = expense.Div(decimal.NewFromInt(int64(len(dates)))).Round(2)
	}

	limit := income
	if !limit.IsPositive() {
		limit = decimal.NewFromFloat(fallbackBudget)
	}

	used := decimal.Zero
	if limit.IsPositive() {
		used = decimal.Min(expense.Div(limit).Mul(hundred), hundred).Round(2)
	}

	return DashboardSummary{
		TotalExpense:    expense,
		TotalIncome:     income,
		DailySpend:      daily,
		BudgetLimit:     limit,
		BudgetUsedPct:   used,
		RemainingBudget: decimal.Max(limit.Sub(expense), decimal.Zero),
		Recent:          recent(records, RecentLimit),
	}
}

// recent returns up to n records sorted by date, newest first, without
// reordering the caller's slice.
func recent(records []domain.TransactionRecord, n int) []domain.TransactionRecord {
	sorted := make([]domain.TransactionRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
