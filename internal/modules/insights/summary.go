package insights

import (
	"sort"
	"time"

	"github.com/finobai/finobai/internal/domain"
)

// BuildMonthlySummary aggregates categorized transactions into the
// month's summary. The daily average divides by the actual number of
// days in that calendar month.
func BuildMonthlySummary(txns []domain.Transaction, year int, month time.Month) MonthlySummary {
	summary := MonthlySummary{
		Year:  year,
		Month: int(month),
	}

	byCategory := make(map[domain.ExpenseCategory]*CategoryBreakdown)
	for _, txn := range txns {
		summary.TotalAmount += txn.Amount
		summary.TransactionCount++

		breakdown, ok := byCategory[txn.Category]
		if !ok {
			breakdown = &CategoryBreakdown{Category: txn.Category}
			byCategory[txn.Category] = breakdown
		}
		breakdown.Amount += txn.Amount
		breakdown.Count++
	}

	categories := make([]CategoryBreakdown, 0, len(byCategory))
	for _, breakdown := range byCategory {
		if summary.TotalAmount > 0 {
			breakdown.Percentage = breakdown.Amount / summary.TotalAmount * 100
		}
		categories = append(categories, *breakdown)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Amount != categories[j].Amount {
			return categories[i].Amount > categories[j].Amount
		}
		return categories[i].Category < categories[j].Category
	})
	summary.Categories = categories

	if len(categories) > 0 {
		summary.TopCategory = categories[0].Category
		summary.TopCategoryShare = categories[0].Percentage
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	summary.AveragePerDay = summary.TotalAmount / float64(daysInMonth)
	if summary.TransactionCount > 0 {
		summary.AverageTransaction = summary.TotalAmount / float64(summary.TransactionCount)
	}

	return summary
}
