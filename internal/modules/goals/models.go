// Package goals persists financial goals and scores their feasibility
// against observed spending.
package goals

import (
	"math"
	"time"
)

// Category is the closed set of goal types.
type Category string

const (
	GoalEmergency  Category = "emergency"
	GoalHouse      Category = "house"
	GoalVacation   Category = "vacation"
	GoalCar        Category = "car"
	GoalWedding    Category = "wedding"
	GoalEducation  Category = "education"
	GoalRetirement Category = "retirement"
	GoalHealth     Category = "health"
	GoalInvestment Category = "investment"
	GoalCustom     Category = "custom"
)

// Valid reports whether c is a known goal category.
func (c Category) Valid() bool {
	switch c {
	case GoalEmergency, GoalHouse, GoalVacation, GoalCar, GoalWedding,
		GoalEducation, GoalRetirement, GoalHealth, GoalInvestment, GoalCustom:
		return true
	}
	return false
}

// FinancialGoal is a savings goal with a target amount and date.
type FinancialGoal struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Category            Category  `json:"category"`
	TargetAmount        float64   `json:"target_amount"`
	CurrentAmount       float64   `json:"current_amount"`
	MonthlyContribution float64   `json:"monthly_contribution"` // Planned
	Priority            int       `json:"priority"`             // 1 = highest
	TargetDate          time.Time `json:"target_date"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Progress returns completion as a percentage clamped to [0, 100].
func (g FinancialGoal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount * 100
	return math.Min(100, math.Max(0, p))
}

// MonthsRemaining returns whole months until the target date, never
// negative. A past target date counts as zero.
func (g FinancialGoal) MonthsRemaining(now time.Time) int {
	if !g.TargetDate.After(now) {
		return 0
	}
	months := 0
	cursor := now
	for cursor.AddDate(0, 1, 0).Before(g.TargetDate) || cursor.AddDate(0, 1, 0).Equal(g.TargetDate) {
		cursor = cursor.AddDate(0, 1, 0)
		months++
	}
	return months
}

// Remaining returns the amount still to be saved, floored at zero.
func (g FinancialGoal) Remaining() float64 {
	return math.Max(0, g.TargetAmount-g.CurrentAmount)
}

// Contribution is one payment applied to a goal.
type Contribution struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goal_id"`
	Amount    float64   `json:"amount"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile carries the optional user attributes strategies consult.
type Profile struct {
	Age           int    `json:"age"`
	RiskTolerance string `json:"risk_tolerance"` // low, medium, high
}

// DefaultProfile is used when the caller supplies no profile.
func DefaultProfile() Profile {
	return Profile{Age: 30, RiskTolerance: "medium"}
}

// ExpenseContext summarizes recent spending for feasibility analysis.
// MonthlyTotals covers the trailing months, oldest first. CategoryTotals
// aggregates the same window per category.
type ExpenseContext struct {
	MonthlyTotals  []float64          `json:"monthly_totals"`
	CategoryTotals map[string]float64 `json:"category_totals"`
	Months         int                `json:"months"` // Window size
}

// MonthlyExpense returns the average spending per month over the window.
func (e ExpenseContext) MonthlyExpense() float64 {
	if e.Months <= 0 {
		return 0
	}
	var sum float64
	for _, total := range e.MonthlyTotals {
		sum += total
	}
	return sum / float64(e.Months)
}

// CategoryMonthly returns the average monthly spend for one category.
func (e ExpenseContext) CategoryMonthly(category string) float64 {
	if e.Months <= 0 {
		return 0
	}
	return e.CategoryTotals[category] / float64(e.Months)
}
