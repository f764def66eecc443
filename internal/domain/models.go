// Package domain provides core domain models and types.
package domain

import "time"

// ExpenseCategory is the closed set of spending categories.
type ExpenseCategory string

const (
	CategoryFood          ExpenseCategory = "food"
	CategoryTransport     ExpenseCategory = "transport"
	CategoryEntertainment ExpenseCategory = "entertainment"
	CategoryBills         ExpenseCategory = "bills"
	CategoryShopping      ExpenseCategory = "shopping"
	CategoryHealth        ExpenseCategory = "health"
	CategoryEducation     ExpenseCategory = "education"
	CategoryHousing       ExpenseCategory = "housing"
	CategoryInvestment    ExpenseCategory = "investment"
	CategoryOther         ExpenseCategory = "other"
)

// AllCategories lists every category in presentation order.
func AllCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFood,
		CategoryTransport,
		CategoryEntertainment,
		CategoryBills,
		CategoryShopping,
		CategoryHealth,
		CategoryEducation,
		CategoryHousing,
		CategoryInvestment,
		CategoryOther,
	}
}

// Valid reports whether c is a known category.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryEntertainment, CategoryBills,
		CategoryShopping, CategoryHealth, CategoryEducation, CategoryHousing,
		CategoryInvestment, CategoryOther:
		return true
	}
	return false
}

// CategoryMeta carries display metadata for a category.
type CategoryMeta struct {
	Code      ExpenseCategory `json:"code"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Necessary bool            `json:"necessary"`
}

// Transaction is one expense row extracted from a bank statement.
type Transaction struct {
	ID          string          `json:"id"`
	StatementID string          `json:"statement_id,omitempty"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"` // Always positive, TRY
	Merchant    string          `json:"merchant,omitempty"`
	RawType     string          `json:"raw_type,omitempty"`
	Category    ExpenseCategory `json:"category,omitempty"`
	Confidence  float64         `json:"confidence,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// Candle is one OHLCV bar.
type Candle struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Closes extracts the close series from a slice of candles.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}

// Fundamentals holds the fundamental figures for one symbol.
// Pointers distinguish "missing" from zero.
type Fundamentals struct {
	Symbol        string   `json:"symbol"`
	PERatio       *float64 `json:"pe_ratio,omitempty"`
	PBRatio       *float64 `json:"pb_ratio,omitempty"`
	ROE           *float64 `json:"roe,omitempty"` // Fraction, 0.15 = 15%
	DebtToEquity  *float64 `json:"debt_to_equity,omitempty"`
	ProfitMargin  *float64 `json:"profit_margin,omitempty"`  // Fraction
	RevenueGrowth *float64 `json:"revenue_growth,omitempty"` // Percent, 12.5 = 12.5%
}

// RiskTolerance is an investor's declared appetite for risk.
type RiskTolerance string

const (
	RiskConservative   RiskTolerance = "CONSERVATIVE"
	RiskModerate       RiskTolerance = "MODERATE"
	RiskAggressive     RiskTolerance = "AGGRESSIVE"
	RiskVeryAggressive RiskTolerance = "VERY_AGGRESSIVE"
)

// InvestmentGoal is the investor's stated objective.
type InvestmentGoal string

const (
	GoalCapitalPreservation InvestmentGoal = "CAPITAL_PRESERVATION"
	GoalBalancedGrowth      InvestmentGoal = "BALANCED_GROWTH"
	GoalAggressiveGrowth    InvestmentGoal = "AGGRESSIVE_GROWTH"
	GoalIncome              InvestmentGoal = "INCOME"
)

// UserRiskProfile describes the investor evaluating a stock.
// A nil profile means suitability analysis is skipped.
type UserRiskProfile struct {
	RiskTolerance   RiskTolerance  `json:"risk_tolerance"`
	Goal            InvestmentGoal `json:"investment_goal"`
	HorizonMonths   int            `json:"investment_horizon_months"`
	MonthlyBudget   float64        `json:"monthly_budget"` // TRY available per month
	ExperienceYears int            `json:"experience_years"`
}

// Recommendation is the final verdict on a stock.
type Recommendation string

const (
	StrongBuy  Recommendation = "STRONG_BUY"
	Buy        Recommendation = "BUY"
	Hold       Recommendation = "HOLD"
	Sell       Recommendation = "SELL"
	StrongSell Recommendation = "STRONG_SELL"
)

// Signal is a directional trading signal.
type Signal string

const (
	SignalBuy     Signal = "BUY"
	SignalSell    Signal = "SELL"
	SignalHold    Signal = "HOLD"
	SignalNeutral Signal = "NEUTRAL"
)

// Trend is a price direction classification.
type Trend string

const (
	TrendBullish Trend = "BULLISH"
	TrendBearish Trend = "BEARISH"
	TrendNeutral Trend = "NEUTRAL"
)

// RiskLevel buckets annualized volatility.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)
