package goals

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/finobai/finobai/internal/domain"
)

// SavingsPlanEntry is one goal's slot in the multi-goal savings plan.
type SavingsPlanEntry struct {
	GoalID          string    `json:"goal_id"`
	GoalName        string    `json:"goal_name"`
	Priority        int       `json:"priority"`
	TargetDate      time.Time `json:"target_date"`
	MonthsRemaining int       `json:"months_remaining"`
	RequiredMonthly float64   `json:"required_monthly"`
	PlannedMonthly  float64   `json:"planned_monthly"`
	Adjustment      float64   `json:"adjustment"`  // required - planned
	Feasibility     string    `json:"feasibility"` // possible | needs_adjustment
}

// SavingsPlan orders all goals and checks the combined monthly load.
type SavingsPlan struct {
	Entries              []SavingsPlanEntry `json:"entries"`
	TotalRequiredMonthly float64            `json:"total_required_monthly"`
	TotalPlannedMonthly  float64            `json:"total_planned_monthly"`
	SavingsCapacity      float64            `json:"savings_capacity"`
	WithinCapacity       bool               `json:"within_capacity"`
}

// BuildSavingsPlan orders goals by priority then target date and computes
// the required monthly saving for each against its planned contribution.
func BuildSavingsPlan(goals []FinancialGoal, capacity float64, now time.Time) SavingsPlan {
	ordered := make([]FinancialGoal, len(goals))
	copy(ordered, goals)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].TargetDate.Before(ordered[j].TargetDate)
	})

	plan := SavingsPlan{SavingsCapacity: capacity}
	for _, goal := range ordered {
		months := goal.MonthsRemaining(now)
		divMonths := months
		if divMonths < 1 {
			divMonths = 1
		}
		required := goal.Remaining() / float64(divMonths)

		entry := SavingsPlanEntry{
			GoalID:          goal.ID,
			GoalName:        goal.Name,
			Priority:        goal.Priority,
			TargetDate:      goal.TargetDate,
			MonthsRemaining: months,
			RequiredMonthly: required,
			PlannedMonthly:  goal.MonthlyContribution,
			Adjustment:      required - goal.MonthlyContribution,
		}
		if entry.Adjustment <= 0 {
			entry.Feasibility = "possible"
		} else {
			entry.Feasibility = "needs_adjustment"
		}

		plan.Entries = append(plan.Entries, entry)
		plan.TotalRequiredMonthly += required
		plan.TotalPlannedMonthly += goal.MonthlyContribution
	}

	plan.WithinCapacity = plan.TotalRequiredMonthly <= capacity
	return plan
}

// RiskyCategory is a discretionary category that threatens goal savings.
type RiskyCategory struct {
	Category       string  `json:"category"`
	MonthlyAverage float64 `json:"monthly_average"`
}

// CompatibilityReport scores how well goals fit observed spending.
type CompatibilityReport struct {
	Score           int             `json:"score"` // 0..10
	MonthlyGoalNeed float64         `json:"monthly_goal_need"`
	SavingPotential float64         `json:"saving_potential"`
	RiskyCategories []RiskyCategory `json:"risky_categories,omitempty"`
	Timeline        string          `json:"timeline"`
	TimelineMonths  float64         `json:"timeline_months"`
	Notes           []string        `json:"notes"`
}

// BuildCompatibilityReport relates the combined goal load to spending.
// The need spreads total targets over a 24 month planning horizon; the
// saving potential assumes 20% of expenses can be redirected.
func BuildCompatibilityReport(goals []FinancialGoal, expenses ExpenseContext) CompatibilityReport {
	var totalTarget, totalRemaining float64
	for _, goal := range goals {
		totalTarget += goal.TargetAmount
		totalRemaining += goal.Remaining()
	}

	monthlyExpense := expenses.MonthlyExpense()
	report := CompatibilityReport{
		MonthlyGoalNeed: totalTarget / 24,
		SavingPotential: monthlyExpense * 0.2,
	}

	switch {
	case report.MonthlyGoalNeed <= report.SavingPotential*0.5:
		report.Score = 9
	case report.MonthlyGoalNeed <= report.SavingPotential:
		report.Score = 7
	case report.MonthlyGoalNeed <= report.SavingPotential*1.5:
		report.Score = 5
	default:
		report.Score = 3
	}

	for _, category := range []domain.ExpenseCategory{domain.CategoryEntertainment, domain.CategoryShopping} {
		monthly := expenses.CategoryMonthly(string(category))
		if monthly > 500 {
			report.RiskyCategories = append(report.RiskyCategories, RiskyCategory{
				Category:       string(category),
				MonthlyAverage: monthly,
			})
		}
	}

	if report.SavingPotential <= 0 {
		report.Timeline = "unreachable"
	} else {
		months := totalRemaining / report.SavingPotential
		report.TimelineMonths = math.Ceil(months)
		switch {
		case months <= 12:
			report.Timeline = "short_term"
		case months <= 36:
			report.Timeline = "medium_term"
		default:
			report.Timeline = "long_term"
		}
	}

	report.Notes = append(report.Notes, fmt.Sprintf(
		"Goals need %.0f TRY per month over two years against a saving potential of %.0f TRY",
		report.MonthlyGoalNeed, report.SavingPotential))
	for _, risky := range report.RiskyCategories {
		report.Notes = append(report.Notes, fmt.Sprintf(
			"%s averages %.0f TRY per month and competes with your goals",
			risky.Category, risky.MonthlyAverage))
	}

	return report
}
