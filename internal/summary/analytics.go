package summary

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/dvloznov/spendwise/internal/domain"
)

// MonthStat is income and expense for one YYYY-MM month.
type MonthStat struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category string          `json:"name"`
	Total    decimal.Decimal `json:"value"`
}

// Analytics bundles the chart data for the analytics view.
type Analytics struct {
	Monthly    []MonthStat     `json:"monthly"`
	Categories []CategoryTotal `json:"categories"`
}

// BuildAnalytics computes both monthly stats and the category breakdown.
func BuildAnalytics(records []domain.TransactionRecord) Analytics {
	return Analytics{
		Monthly:    MonthlyStats(records),
		Categories: CategoryBreakdown(records),
	}
}

// MonthlyStats buckets records by the first seven characters of their date.
// Anything that is not income counts as expense. Months are sorted ascending.
func MonthlyStats(records []domain.TransactionRecord) []MonthStat {
	byMonth := make(map[string]*MonthStat)
	for _, r := range records {
		month := r.Date
		if len(month) > 7 {
			month = month[:7]
		}
		stat, ok := byMonth[month]
		if !ok {
			stat = &MonthStat{Month: month}
			byMonth[month] = stat
		}
		amount := decimal.NewFromFloat(r.Amount)
		if r.Kind == domain.KindIncome {
			stat.Income = stat.Income.Add(amount)
		} else {
			stat.Expense = stat.Expense.Add(amount)
		}
	}

	out := make([]MonthStat, 0, len(byMonth))
	for _, s := range byMonth {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// CategoryBreakdown totals expenses per category, largest first.
func CategoryBreakdown(records []domain.TransactionRecord) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, r := range records {
		if r.Kind != domain.KindExpense {
			continue
		}
		totals[r.Category] = totals[r.Category].Add(decimal.NewFromFloat(r.Amount))
	}

	out := make([]CategoryTotal, 0, len(totals))
	for cat, total := range totals {
		out = append(out, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
