// Package insights builds monthly spending summaries and rule-based
// insight feeds from categorized transactions.
package insights

import (
	"github.com/finobai/finobai/internal/domain"
)

// InsightType classifies the tone of an insight.
type InsightType string

const (
	TypeWarning     InsightType = "warning"
	TypeInfo        InsightType = "info"
	TypeSuggestion  InsightType = "suggestion"
	TypeAchievement InsightType = "achievement"
)

// Insight is one generated observation about a month's spending.
type Insight struct {
	Type     InsightType            `json:"type"`
	Priority int                    `json:"priority"` // 1 lowest, 5 highest
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Category domain.ExpenseCategory `json:"category,omitempty"`
}

// CategoryBreakdown aggregates one category inside a monthly summary.
type CategoryBreakdown struct {
	Category   domain.ExpenseCategory `json:"category"`
	Amount     float64                `json:"amount"`
	Count      int                    `json:"count"`
	Percentage float64                `json:"percentage"`
}

// MonthlySummary is the aggregate view of one calendar month.
type MonthlySummary struct {
	Year               int                    `json:"year"`
	Month              int                    `json:"month"`
	TotalAmount        float64                `json:"total_amount"`
	TransactionCount   int                    `json:"transaction_count"`
	Categories         []CategoryBreakdown    `json:"categories"`
	TopCategory        domain.ExpenseCategory `json:"top_category,omitempty"`
	TopCategoryShare   float64                `json:"top_category_share"` // Percent
	AveragePerDay      float64                `json:"average_per_day"`
	AverageTransaction float64                `json:"average_transaction"`
}

// Budget is a monthly spending limit for one category.
type Budget struct {
	Category     domain.ExpenseCategory `json:"category"`
	MonthlyLimit float64                `json:"monthly_limit"`
}
