package insights

import (
	"fmt"
	"math"
	"sort"
)

const (
	budgetWarnUsage     = 80.0
	trendThresholdPct   = 20.0
	dominanceWarnShare  = 40.0
	dominanceInfoShare  = 25.0
	largeTransactionAvg = 500.0
	highMonthlyTotal    = 15000.0
	lowMonthlyTotal     = 5000.0
	busyMonthCount      = 50
	maxInsights         = 5
)

// Generate evaluates every insight rule independently against the current
// month, the previous month and the configured budgets. The result is
// capped at five insights, highest priority first; equal priorities keep
// rule order.
func Generate(current MonthlySummary, previous *MonthlySummary, budgets []Budget) []Insight {
	var out []Insight

	// Rule 1: budget usage per category
	for _, budget := range budgets {
		if budget.MonthlyLimit <= 0 {
			continue
		}
		spent := 0.0
		for _, breakdown := range current.Categories {
			if breakdown.Category == budget.Category {
				spent = breakdown.Amount
				break
			}
		}
		usage := spent / budget.MonthlyLimit * 100
		if usage <= budgetWarnUsage {
			continue
		}

		remaining := budget.MonthlyLimit - spent
		priority := 3
		if usage > 100 {
			priority = 5
		}
		out = append(out, Insight{
			Type:     TypeWarning,
			Priority: priority,
			Title:    "Budget alert",
			Message: fmt.Sprintf("%s spending used %.0f%% of its budget, %.2f TRY remaining",
				budget.Category, usage, remaining),
			Category: budget.Category,
		})
	}

	// Rule 2: month-over-month trend, needs a prior month with spending
	if previous != nil && previous.TotalAmount > 0 {
		change := (current.TotalAmount - previous.TotalAmount) / previous.TotalAmount * 100
		if math.Abs(change) > trendThresholdPct {
			if change > 0 {
				out = append(out, Insight{
					Type:     TypeWarning,
					Priority: 2,
					Title:    "Spending is up",
					Message:  fmt.Sprintf("Total spending rose %.1f%% compared to last month", change),
				})
			} else {
				out = append(out, Insight{
					Type:     TypeAchievement,
					Priority: 2,
					Title:    "Spending is down",
					Message:  fmt.Sprintf("Total spending fell %.1f%% compared to last month", -change),
				})
			}
		}
	}

	// Rule 3: top-category dominance, tiers are mutually exclusive
	if current.TopCategory != "" {
		if current.TopCategoryShare > dominanceWarnShare {
			out = append(out, Insight{
				Type:     TypeWarning,
				Priority: 4,
				Title:    "One category dominates",
				Message: fmt.Sprintf("%.1f%% of the month went to %s",
					current.TopCategoryShare, current.TopCategory),
				Category: current.TopCategory,
			})
		} else if current.TopCategoryShare > dominanceInfoShare {
			out = append(out, Insight{
				Type:     TypeInfo,
				Priority: 2,
				Title:    "Largest category",
				Message: fmt.Sprintf("%s leads this month with %.1f%% of spending",
					current.TopCategory, current.TopCategoryShare),
				Category: current.TopCategory,
			})
		}
	}

	// Rule 4: large average transaction
	if current.AverageTransaction > largeTransactionAvg {
		out = append(out, Insight{
			Type:     TypeSuggestion,
			Priority: 3,
			Title:    "Large transactions",
			Message: fmt.Sprintf("Average transaction is %.2f TRY, consider reviewing big purchases",
				current.AverageTransaction),
		})
	}

	// Rule 5: total volume tiers
	if current.TotalAmount > highMonthlyTotal {
		out = append(out, Insight{
			Type:     TypeWarning,
			Priority: 4,
			Title:    "High monthly total",
			Message:  fmt.Sprintf("Spending reached %.2f TRY this month", current.TotalAmount),
		})
	} else if current.TotalAmount > 0 && current.TotalAmount < lowMonthlyTotal {
		out = append(out, Insight{
			Type:     TypeAchievement,
			Priority: 1,
			Title:    "Frugal month",
			Message:  fmt.Sprintf("Spending stayed under %.0f TRY", lowMonthlyTotal),
		})
	}

	// Rule 6: many transactions
	if current.TransactionCount > busyMonthCount {
		out = append(out, Insight{
			Type:     TypeInfo,
			Priority: 2,
			Title:    "Busy month",
			Message:  fmt.Sprintf("%d transactions recorded this month", current.TransactionCount),
		})
	}

	// Rule 7: keep the feed from feeling empty
	if len(out) < 2 && current.TransactionCount > 0 {
		out = append(out, Insight{
			Type:     TypeAchievement,
			Priority: 1,
			Title:    "Analysis complete",
			Message:  "Your spending looks balanced this month",
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority > out[j].Priority
	})

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}
