package goals

import (
	"fmt"
	"math"

	"github.com/finobai/finobai/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// Priority levels for strategies.
const (
	PriorityCritical = "critical"
	PriorityHigh     = "high"
	PriorityMedium   = "medium"
)

// Strategy is the goal-type-specific plan attached to an analysis.
// Exactly one of the plan pointers is set, matching Type.
type Strategy struct {
	Type            string   `json:"type"`
	PriorityLevel   string   `json:"priority_level"`
	Recommendations []string `json:"recommendations"`

	Emergency  *EmergencyPlan  `json:"emergency,omitempty"`
	House      *HousePlan      `json:"house,omitempty"`
	Vacation   *VacationPlan   `json:"vacation,omitempty"`
	Car        *CarPlan        `json:"car,omitempty"`
	Wedding    *WeddingPlan    `json:"wedding,omitempty"`
	Education  *EducationPlan  `json:"education,omitempty"`
	Retirement *RetirementPlan `json:"retirement,omitempty"`
	Investment *InvestmentPlan `json:"investment,omitempty"`
}

// EmergencyPlan sizes an emergency fund against monthly spending.
type EmergencyPlan struct {
	IdealMin          float64             `json:"ideal_min"` // 6x monthly expense
	IdealMax          float64             `json:"ideal_max"` // 12x monthly expense
	CoverageMonths    float64             `json:"coverage_months"`
	VolatilityScore   float64             `json:"volatility_score"` // 0..1
	ReducibleSpending []ReducibleCategory `json:"reducible_spending,omitempty"`
}

// ReducibleCategory is a non-essential category worth trimming.
type ReducibleCategory struct {
	Category       string  `json:"category"`
	MonthlyAverage float64 `json:"monthly_average"`
	SuggestedCut   float64 `json:"suggested_cut"` // 30% of the average
}

// HousePlan reads the goal target as a down payment.
type HousePlan struct {
	EstimatedPrice    float64 `json:"estimated_price"` // target / 0.25
	EstimatedIncome   float64 `json:"estimated_income"`
	MaxMonthlyPayment float64 `json:"max_monthly_payment"` // 30% of income
	EstimatedRent     float64 `json:"estimated_rent"`
	AnnualRentCost    float64 `json:"annual_rent_cost"`
}

// VacationPlan classifies the trip by budget.
type VacationPlan struct {
	Class         string  `json:"class"` // local, domestic, international
	DurationDays  string  `json:"duration_days"`
	Accommodation float64 `json:"accommodation"`
	Transport     float64 `json:"transport"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
}

// CarPlan compares current transport spending with ownership cost.
type CarPlan struct {
	Class                 string  `json:"class"`
	AgeRange              string  `json:"age_range"`
	MonthlyTransportCost  float64 `json:"monthly_transport_cost"`
	MonthlyInsurance      float64 `json:"monthly_insurance"`    // 2% of value per year
	MonthlyMaintenance    float64 `json:"monthly_maintenance"`  // Flat estimate
	MonthlyFuel           float64 `json:"monthly_fuel"`         // Flat estimate
	MonthlyDepreciation   float64 `json:"monthly_depreciation"` // 15% of value per year
	TotalOwnershipMonthly float64 `json:"total_ownership_monthly"`
	BreakEvenMonths       float64 `json:"break_even_months"`
}

// WeddingPlan scales by guest count.
type WeddingPlan struct {
	EstimatedGuests int     `json:"estimated_guests"` // target / 150 per guest
	Scale           string  `json:"scale"`
	Venue           float64 `json:"venue"`
	Photography     float64 `json:"photography"`
	Attire          float64 `json:"attire"`
	Decor           float64 `json:"decor"`
	Contingency     float64 `json:"contingency"`
}

// EducationPlan estimates the return on the program cost.
type EducationPlan struct {
	ProgramType       string  `json:"program_type"`
	IncomeIncreasePct float64 `json:"income_increase_pct"`
	PaybackYears      int     `json:"payback_years"`
	AnnualReturn      float64 `json:"annual_return"`
	LifetimeValue     float64 `json:"lifetime_value"`
	CareerImpact      string  `json:"career_impact"`
}

// RetirementPlan projects long-horizon growth.
type RetirementPlan struct {
	ProjectedValue float64 `json:"projected_value"`
	GrowthRate     float64 `json:"growth_rate"`
	RealValue      float64 `json:"real_value"` // Inflation adjusted
	InflationRate  float64 `json:"inflation_rate"`
}

// InvestmentPlan maps risk tolerance to an allocation.
type InvestmentPlan struct {
	Risk         string  `json:"risk"`
	StocksWeight float64 `json:"stocks_weight"`
	BondsWeight  float64 `json:"bonds_weight"`
}

// buildStrategy dispatches on the goal category. Unknown categories get
// the custom plan, never an error.
func (e *Engine) buildStrategy(goal FinancialGoal, expenses ExpenseContext, profile Profile, months int, monthlyExpense, capacity float64) Strategy {
	switch goal.Category {
	case GoalEmergency:
		return emergencyStrategy(goal, expenses, monthlyExpense)
	case GoalHouse:
		return e.houseStrategy(goal, monthlyExpense)
	case GoalVacation:
		return vacationStrategy(goal)
	case GoalCar:
		return carStrategy(goal, expenses, capacity)
	case GoalWedding:
		return weddingStrategy(goal)
	case GoalEducation:
		return educationStrategy(goal)
	case GoalRetirement:
		return retirementStrategy(goal, profile)
	case GoalHealth:
		return healthStrategy()
	case GoalInvestment:
		return investmentStrategy(profile)
	default:
		return customStrategy(goal, months)
	}
}

func emergencyStrategy(goal FinancialGoal, expenses ExpenseContext, monthlyExpense float64) Strategy {
	plan := &EmergencyPlan{
		IdealMin: monthlyExpense * 6,
		IdealMax: monthlyExpense * 12,
	}

	if monthlyExpense > 0 {
		plan.CoverageMonths = round1(goal.CurrentAmount / monthlyExpense)
	}

	// Spending volatility: unstable months justify a bigger fund.
	// Fewer than three observations is too thin to judge, use 0.5.
	if len(expenses.MonthlyTotals) < 3 {
		plan.VolatilityScore = 0.5
	} else {
		mean := stat.Mean(expenses.MonthlyTotals, nil)
		if mean > 0 {
			ratio := stat.StdDev(expenses.MonthlyTotals, nil) / mean
			plan.VolatilityScore = math.Min(1, math.Max(0, ratio))
		}
	}

	// Non-essential categories above 500/month are fair game for a 30% cut
	for _, category := range []domain.ExpenseCategory{domain.CategoryEntertainment, domain.CategoryShopping} {
		monthly := expenses.CategoryMonthly(string(category))
		if monthly > 500 {
			plan.ReducibleSpending = append(plan.ReducibleSpending, ReducibleCategory{
				Category:       string(category),
				MonthlyAverage: monthly,
				SuggestedCut:   monthly * 0.3,
			})
		}
	}

	recs := []string{
		fmt.Sprintf("Target %.0f to %.0f TRY (6 to 12 months of expenses)", plan.IdealMin, plan.IdealMax),
		"Keep the fund in an instantly accessible deposit account",
		"Automate a transfer right after each payday",
	}
	for _, reducible := range plan.ReducibleSpending {
		recs = append(recs, fmt.Sprintf("Cutting %s by 30%% frees %.0f TRY per month",
			reducible.Category, reducible.SuggestedCut))
	}

	return Strategy{
		Type:            "emergency_fund",
		PriorityLevel:   PriorityCritical,
		Recommendations: recs,
		Emergency:       plan,
	}
}

func (e *Engine) houseStrategy(goal FinancialGoal, monthlyExpense float64) Strategy {
	income := monthlyExpense * e.houseIncomeMultiplier
	const estimatedRent = 2000 // Coarse market placeholder

	plan := &HousePlan{
		EstimatedPrice:    goal.TargetAmount / downPaymentFraction,
		EstimatedIncome:   income,
		MaxMonthlyPayment: income * 0.3,
		EstimatedRent:     estimatedRent,
		AnnualRentCost:    estimatedRent * 12,
	}

	return Strategy{
		Type:          "house_purchase",
		PriorityLevel: PriorityHigh,
		Recommendations: []string{
			fmt.Sprintf("A %.0f TRY down payment supports a home around %.0f TRY", goal.TargetAmount, plan.EstimatedPrice),
			fmt.Sprintf("Keep mortgage payments under %.0f TRY per month (30%% of estimated income)", plan.MaxMonthlyPayment),
			fmt.Sprintf("Annual rent of roughly %.0f TRY is the cost of waiting", plan.AnnualRentCost),
		},
		House: plan,
	}
}

func vacationStrategy(goal FinancialGoal) Strategy {
	plan := &VacationPlan{}
	target := goal.TargetAmount

	switch {
	case target <= 5000:
		plan.Class = "local"
		plan.DurationDays = "2-4"
		plan.Accommodation = target * 0.4
		plan.Transport = target * 0.3
		plan.Food = target * 0.2
		plan.Activities = target * 0.1
	case target <= 15000:
		plan.Class = "domestic"
		plan.DurationDays = "5-7"
		plan.Accommodation = target * 0.35
		plan.Transport = target * 0.25
		plan.Food = target * 0.25
		plan.Activities = target * 0.15
	default:
		plan.Class = "international"
		plan.DurationDays = "7-14"
		plan.Accommodation = target * 0.3
		plan.Transport = target * 0.2
		plan.Food = target * 0.2
		plan.Activities = target * 0.3
	}

	return Strategy{
		Type:          "vacation",
		PriorityLevel: PriorityMedium,
		Recommendations: []string{
			fmt.Sprintf("Budget fits a %s trip of %s days", plan.Class, plan.DurationDays),
			fmt.Sprintf("Reserve %.0f TRY for accommodation and %.0f TRY for transport", plan.Accommodation, plan.Transport),
			"Book early, off-season prices can stretch the same budget further",
		},
		Vacation: plan,
	}
}

func carStrategy(goal FinancialGoal, expenses ExpenseContext, capacity float64) Strategy {
	value := goal.TargetAmount

	plan := &CarPlan{
		MonthlyTransportCost: expenses.CategoryMonthly(string(domain.CategoryTransport)),
		MonthlyInsurance:     value * 0.02 / 12,
		MonthlyMaintenance:   300,
		MonthlyFuel:          800,
		MonthlyDepreciation:  value * 0.15 / 12,
	}
	plan.TotalOwnershipMonthly = plan.MonthlyInsurance + plan.MonthlyMaintenance +
		plan.MonthlyFuel + plan.MonthlyDepreciation
	plan.BreakEvenMonths = round1(value / math.Max(capacity, 1))

	switch {
	case value <= 100000:
		plan.Class = "economy"
		plan.AgeRange = "3-7 years used"
	case value <= 300000:
		plan.Class = "mid-range"
		plan.AgeRange = "0-3 years"
	default:
		plan.Class = "premium"
		plan.AgeRange = "new"
	}

	return Strategy{
		Type:          "car_purchase",
		PriorityLevel: PriorityHigh,
		Recommendations: []string{
			fmt.Sprintf("A %s class car in this budget is typically %s", plan.Class, plan.AgeRange),
			fmt.Sprintf("Ownership will run about %.0f TRY per month on top of the purchase", plan.TotalOwnershipMonthly),
			fmt.Sprintf("Current transport spending is %.0f TRY per month, compare before committing", plan.MonthlyTransportCost),
		},
		Car: plan,
	}
}

func weddingStrategy(goal FinancialGoal) Strategy {
	target := goal.TargetAmount

	plan := &WeddingPlan{
		EstimatedGuests: int(target / 150),
		Venue:           target * 0.5,
		Photography:     target * 0.2,
		Attire:          target * 0.1,
		Decor:           target * 0.1,
		Contingency:     target * 0.1,
	}

	switch {
	case target <= 50000:
		plan.Scale = "intimate (20-50 guests)"
	case target <= 150000:
		plan.Scale = "mid-size (50-150 guests)"
	default:
		plan.Scale = "large (150+ guests)"
	}

	return Strategy{
		Type:          "wedding",
		PriorityLevel: PriorityHigh,
		Recommendations: []string{
			fmt.Sprintf("Budget supports a %s celebration", plan.Scale),
			fmt.Sprintf("Plan around %.0f TRY for the venue, it dominates the budget", plan.Venue),
			"Keep the 10% contingency untouched until the final month",
		},
		Wedding: plan,
	}
}

func educationStrategy(goal FinancialGoal) Strategy {
	target := goal.TargetAmount
	plan := &EducationPlan{}

	switch {
	case target <= 20000:
		plan.IncomeIncreasePct = 0.30
		plan.PaybackYears = 3
	case target <= 100000:
		plan.IncomeIncreasePct = 0.40
		plan.PaybackYears = 4
	default:
		plan.IncomeIncreasePct = 0.50
		plan.PaybackYears = 5
	}

	increase := target * plan.IncomeIncreasePct
	plan.AnnualReturn = increase / float64(plan.PaybackYears)
	plan.LifetimeValue = increase * 10

	switch {
	case target <= 30000:
		plan.ProgramType = "certification"
	case target <= 100000:
		plan.ProgramType = "graduate program"
	default:
		plan.ProgramType = "study abroad"
	}

	if target > 50000 {
		plan.CareerImpact = "high"
	} else {
		plan.CareerImpact = "medium"
	}

	return Strategy{
		Type:          "education",
		PriorityLevel: PriorityHigh,
		Recommendations: []string{
			fmt.Sprintf("This budget matches a %s", plan.ProgramType),
			fmt.Sprintf("Expected payback is about %d years", plan.PaybackYears),
			fmt.Sprintf("Estimated lifetime value around %.0f TRY", plan.LifetimeValue),
		},
		Education: plan,
	}
}

func retirementStrategy(goal FinancialGoal, profile Profile) Strategy {
	plan := &RetirementPlan{
		ProjectedValue: goal.TargetAmount * 2,
		GrowthRate:     0.07,
		InflationRate:  0.05,
	}
	plan.RealValue = plan.ProjectedValue * 0.7

	recs := []string{
		fmt.Sprintf("At 7%% growth the target could roughly double to %.0f TRY", plan.ProjectedValue),
		fmt.Sprintf("Inflation-adjusted that is about %.0f TRY in today's money", plan.RealValue),
		"Increase contributions with every salary raise",
	}
	if profile.Age < 40 {
		recs = append(recs, "Decades of compounding favor equity-heavy allocations at your age")
	}

	return Strategy{
		Type:            "retirement",
		PriorityLevel:   PriorityMedium,
		Recommendations: recs,
		Retirement:      plan,
	}
}

func healthStrategy() Strategy {
	return Strategy{
		Type:          "health",
		PriorityLevel: PriorityCritical,
		Recommendations: []string{
			"Health spending cannot wait, fund this goal first",
			"Check what private insurance already covers before paying out of pocket",
			"Preventive care is cheaper than treatment, schedule checkups now",
		},
	}
}

func investmentStrategy(profile Profile) Strategy {
	plan := &InvestmentPlan{}

	switch profile.RiskTolerance {
	case "low":
		plan.Risk = "conservative"
		plan.StocksWeight = 0.4
		plan.BondsWeight = 0.6
	case "high":
		plan.Risk = "aggressive"
		plan.StocksWeight = 0.8
		plan.BondsWeight = 0.2
	default:
		plan.Risk = "moderate"
		plan.StocksWeight = 0.6
		plan.BondsWeight = 0.4
	}

	return Strategy{
		Type:          "investment",
		PriorityLevel: PriorityMedium,
		Recommendations: []string{
			fmt.Sprintf("A %s split of %.0f%% stocks / %.0f%% bonds fits your risk tolerance",
				plan.Risk, plan.StocksWeight*100, plan.BondsWeight*100),
			"Invest in fixed monthly installments instead of lump sums",
			"Rebalance the allocation once a year",
		},
		Investment: plan,
	}
}

func customStrategy(goal FinancialGoal, months int) Strategy {
	divMonths := months
	if divMonths < 1 {
		divMonths = 1
	}
	return Strategy{
		Type:          "custom",
		PriorityLevel: PriorityMedium,
		Recommendations: []string{
			fmt.Sprintf("Saving %.0f TRY per month reaches the goal on schedule", goal.Remaining()/float64(divMonths)),
			"Split the goal into smaller milestones to keep momentum",
			"Review the target date every quarter and adjust contributions",
		},
	}
}
