package statements

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/events"
	"github.com/finobai/finobai/internal/modules/categorizer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SummaryInvalidator drops cached monthly summaries once new
// transactions land for a month. Implemented by the insights service.
type SummaryInvalidator interface {
	InvalidateMonth(year int, month time.Month)
}

// Service orchestrates statement upload: parse, categorize, analyze, persist.
type Service struct {
	parser      *Parser
	categorizer *categorizer.Service
	repo        *Repository
	invalidator SummaryInvalidator
	bus         *events.Bus
	log         zerolog.Logger
}

// NewService creates a new statement service
func NewService(
	parser *Parser,
	catSvc *categorizer.Service,
	repo *Repository,
	invalidator SummaryInvalidator,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		parser:      parser,
		categorizer: catSvc,
		repo:        repo,
		invalidator: invalidator,
		bus:         bus,
		log:         log.With().Str("component", "statements").Logger(),
	}
}

// AnalyzeUpload parses an uploaded statement, categorizes every extracted
// transaction, persists the result and returns the full analysis.
func (s *Service) AnalyzeUpload(filename string, r io.Reader) (*Analysis, error) {
	var result *ParseResult
	var err error

	if strings.HasSuffix(strings.ToLower(filename), ".csv") {
		result, err = s.parser.ParseCSV(r)
	} else {
		result, err = s.parser.ParseText(r)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	stmt := Statement{
		ID:         uuid.New().String(),
		Filename:   filename,
		UploadedAt: now,
	}

	txns := result.Transactions
	for i := range txns {
		txns[i].ID = uuid.New().String()
		txns[i].StatementID = stmt.ID
		txns[i].CreatedAt = now

		assignment, err := s.categorizer.Categorize(txns[i].Description, txns[i].Amount)
		if err != nil {
			// Parser guarantees positive amounts and non-empty descriptions,
			// so this only fires on pathological rows
			txns[i].Category = domain.CategoryOther
			txns[i].Confidence = 0
			continue
		}
		txns[i].Category = assignment.Category
		txns[i].Confidence = assignment.Confidence
	}

	analysis := buildAnalysis(stmt, txns, result)

	if err := s.repo.Save(analysis.Statement, txns); err != nil {
		return nil, fmt.Errorf("failed to persist statement: %w", err)
	}

	// Cached summaries for the covered months are now stale.
	if s.invalidator != nil {
		type yearMonth struct {
			year  int
			month time.Month
		}
		seen := make(map[yearMonth]bool)
		for _, txn := range txns {
			key := yearMonth{txn.Date.Year(), txn.Date.Month()}
			if !seen[key] {
				seen[key] = true
				s.invalidator.InvalidateMonth(key.year, key.month)
			}
		}
	}

	s.log.Info().
		Str("statement_id", stmt.ID).
		Int("transactions", len(txns)).
		Int("skipped", result.RowsSkipped).
		Msg("Statement analyzed")

	if s.bus != nil {
		s.bus.Publish(&events.StatementAnalyzedData{
			StatementID:  stmt.ID,
			Filename:     stmt.Filename,
			Transactions: len(txns),
			TotalAmount:  analysis.Statement.TotalAmount,
		})
	}

	return analysis, nil
}

// List returns all persisted statements
func (s *Service) List() ([]Statement, error) {
	return s.repo.List()
}

// Get returns one statement with its transactions
func (s *Service) Get(id string) (*Statement, []domain.Transaction, error) {
	return s.repo.Get(id)
}

// buildAnalysis aggregates per-category figures and the statement period.
func buildAnalysis(stmt Statement, txns []domain.Transaction, parse *ParseResult) *Analysis {
	totals := make(map[domain.ExpenseCategory]*CategorySummary)
	var total float64
	var minDate, maxDate time.Time

	for _, txn := range txns {
		total += txn.Amount

		summary, ok := totals[txn.Category]
		if !ok {
			summary = &CategorySummary{Category: txn.Category}
			totals[txn.Category] = summary
		}
		summary.Total += txn.Amount
		summary.Count++

		if minDate.IsZero() || txn.Date.Before(minDate) {
			minDate = txn.Date
		}
		if maxDate.IsZero() || txn.Date.After(maxDate) {
			maxDate = txn.Date
		}
	}

	categories := make([]CategorySummary, 0, len(totals))
	for _, summary := range totals {
		if total > 0 {
			summary.Percentage = summary.Total / total * 100
		}
		if summary.Count > 0 {
			summary.Average = summary.Total / float64(summary.Count)
		}
		categories = append(categories, *summary)
	}

	// Largest spend first, category code breaks ties deterministically
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Total != categories[j].Total {
			return categories[i].Total > categories[j].Total
		}
		return categories[i].Category < categories[j].Category
	})

	top := categories
	if len(top) > 5 {
		top = top[:5]
	}

	stmt.TransactionCount = len(txns)
	stmt.TotalAmount = total
	if !minDate.IsZero() {
		stmt.PeriodStart = &minDate
	}
	if !maxDate.IsZero() {
		stmt.PeriodEnd = &maxDate
	}

	var notes []string
	if len(categories) > 0 && total > 0 {
		notes = append(notes, fmt.Sprintf(
			"%s is the largest category at %.1f%% of spending",
			categories[0].Category, categories[0].Percentage))
	}
	if len(txns) > 0 {
		notes = append(notes, fmt.Sprintf(
			"average transaction %.2f TRY over %d transactions",
			total/float64(len(txns)), len(txns)))
	}

	return &Analysis{
		Statement:     stmt,
		Categories:    categories,
		TopCategories: top,
		RowsParsed:    parse.RowsParsed,
		RowsSkipped:   parse.RowsSkipped,
		Notes:         notes,
	}
}
