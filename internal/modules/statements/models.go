package statements

import (
	"time"

	"github.com/finobai/finobai/internal/domain"
)

// Statement is the persisted header of an uploaded bank statement.
type Statement struct {
	ID               string     `json:"id"`
	Filename         string     `json:"filename"`
	UploadedAt       time.Time  `json:"uploaded_at"`
	TransactionCount int        `json:"transaction_count"`
	TotalAmount      float64    `json:"total_amount"`
	PeriodStart      *time.Time `json:"period_start,omitempty"`
	PeriodEnd        *time.Time `json:"period_end,omitempty"`
}

// CategorySummary aggregates spending for one category.
type CategorySummary struct {
	Category   domain.ExpenseCategory `json:"category"`
	Total      float64                `json:"total"`
	Count      int                    `json:"count"`
	Percentage float64                `json:"percentage"`
	Average    float64                `json:"average"`
}

// Analysis is the full report produced when a statement is uploaded.
type Analysis struct {
	Statement     Statement         `json:"statement"`
	Categories    []CategorySummary `json:"categories"`
	TopCategories []CategorySummary `json:"top_categories"`
	RowsParsed    int               `json:"rows_parsed"`
	RowsSkipped   int               `json:"rows_skipped"`
	Notes         []string          `json:"notes,omitempty"`
}
