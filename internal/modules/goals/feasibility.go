package goals

import (
	"math"
	"time"

	"github.com/rs/zerolog"
)

const (
	timeFactorWeight    = 0.3
	progressWeight      = 0.3
	savingsWeight       = 0.4
	monthsToFullTime    = 50 // months*2 saturates at 100
	downPaymentFraction = 0.25
)

// Factors are the three components of the feasibility blend.
type Factors struct {
	Time     float64 `json:"time"`
	Progress float64 `json:"progress"`
	Savings  float64 `json:"savings"`
}

// Analysis is the feasibility verdict for one goal.
type Analysis struct {
	GoalID              string   `json:"goal_id"`
	GoalName            string   `json:"goal_name"`
	Category            Category `json:"category"`
	Feasibility         float64  `json:"feasibility"` // 0..100, one decimal
	Factors             Factors  `json:"factors"`
	MonthsRemaining     int      `json:"months_remaining"`
	MonthlyTargetNeeded float64  `json:"monthly_target_needed"`
	MonthlyExpense      float64  `json:"monthly_expense"`
	EstimatedIncome     float64  `json:"estimated_income"`
	SavingsCapacity     float64  `json:"savings_capacity"`
	Strategy            Strategy `json:"strategy"`
}

// Engine scores goal feasibility. Income is estimated from expenses via
// configurable multipliers since the service has no income data.
type Engine struct {
	incomeMultiplier      float64
	houseIncomeMultiplier float64
	log                   zerolog.Logger
}

// NewEngine creates a new feasibility engine
func NewEngine(incomeMultiplier, houseIncomeMultiplier float64, log zerolog.Logger) *Engine {
	return &Engine{
		incomeMultiplier:      incomeMultiplier,
		houseIncomeMultiplier: houseIncomeMultiplier,
		log:                   log.With().Str("component", "goal_engine").Logger(),
	}
}

// Analyze scores one goal against recent spending. A nil profile uses
// DefaultProfile. The result is always in [0, 100].
func (e *Engine) Analyze(goal FinancialGoal, expenses ExpenseContext, profile *Profile, now time.Time) Analysis {
	p := DefaultProfile()
	if profile != nil {
		p = *profile
	}

	months := goal.MonthsRemaining(now)
	timeFactor := math.Min(100, float64(months)*2)

	progress := goal.Progress()

	monthlyExpense := expenses.MonthlyExpense()
	income := monthlyExpense * e.incomeMultiplier
	capacity := math.Max(0, income-monthlyExpense)

	divMonths := months
	if divMonths < 1 {
		divMonths = 1
	}
	required := goal.TargetAmount / float64(divMonths)

	var savingsFactor float64
	if required <= 0 {
		savingsFactor = 100
	} else {
		savingsFactor = math.Min(100, capacity/math.Max(required, 1)*100)
	}

	feasibility := round1(timeFactorWeight*timeFactor +
		progressWeight*progress +
		savingsWeight*savingsFactor)

	return Analysis{
		GoalID:              goal.ID,
		GoalName:            goal.Name,
		Category:            goal.Category,
		Feasibility:         feasibility,
		Factors:             Factors{Time: timeFactor, Progress: progress, Savings: savingsFactor},
		MonthsRemaining:     months,
		MonthlyTargetNeeded: required,
		MonthlyExpense:      monthlyExpense,
		EstimatedIncome:     income,
		SavingsCapacity:     capacity,
		Strategy:            e.buildStrategy(goal, expenses, p, months, monthlyExpense, capacity),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
