package insights

import (
	"fmt"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/events"
	"github.com/rs/zerolog"
)

// TransactionSource provides the month's categorized transactions.
// Implemented by the statements repository.
type TransactionSource interface {
	TransactionsForMonth(year int, month time.Month) ([]domain.Transaction, error)
}

// Service produces monthly summaries and insight feeds, with caching.
type Service struct {
	source  TransactionSource
	cache   *SummaryCache
	budgets *BudgetRepository
	bus     *events.Bus
	log     zerolog.Logger
}

// NewService creates a new insights service
func NewService(
	source TransactionSource,
	cache *SummaryCache,
	budgets *BudgetRepository,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		source:  source,
		cache:   cache,
		budgets: budgets,
		bus:     bus,
		log:     log.With().Str("component", "insights").Logger(),
	}
}

// MonthlyReport is the summary plus its generated insights.
type MonthlyReport struct {
	Summary  MonthlySummary  `json:"summary"`
	Previous *MonthlySummary `json:"previous,omitempty"`
	Insights []Insight       `json:"insights"`
	Cached   bool            `json:"cached"`
}

// Report builds the report for a month. Summaries come from the cache
// when fresh; insights are always evaluated on the fly since budgets can
// change between requests.
func (s *Service) Report(year int, month time.Month) (*MonthlyReport, error) {
	summary, cached, err := s.summaryFor(year, month)
	if err != nil {
		return nil, err
	}

	prevYear, prevMonth := previousMonth(year, month)
	previous, _, err := s.summaryFor(prevYear, prevMonth)
	if err != nil {
		// A broken prior month should not block the current report
		s.log.Warn().Err(err).Msg("Failed to build previous month summary")
		previous = nil
	}

	budgets, err := s.budgets.List()
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}

	generated := Generate(*summary, previous, budgets)

	if s.bus != nil {
		s.bus.Publish(&events.InsightsGeneratedData{
			Year:  year,
			Month: int(month),
			Count: len(generated),
		})
	}

	report := &MonthlyReport{
		Summary:  *summary,
		Insights: generated,
		Cached:   cached,
	}
	if previous != nil && previous.TransactionCount > 0 {
		report.Previous = previous
	}
	return report, nil
}

// InvalidateMonth drops the cached summary for a month. Called when new
// transactions land for that month.
func (s *Service) InvalidateMonth(year int, month time.Month) {
	if err := s.cache.Invalidate(year, month); err != nil {
		s.log.Warn().Err(err).Int("year", year).Int("month", int(month)).
			Msg("Failed to invalidate summary cache")
	}
}

// Budgets exposes the budget repository for handlers
func (s *Service) Budgets() *BudgetRepository {
	return s.budgets
}

func (s *Service) summaryFor(year int, month time.Month) (*MonthlySummary, bool, error) {
	if cached, ok := s.cache.Get(year, month); ok {
		return cached, true, nil
	}

	txns, err := s.source.TransactionsForMonth(year, month)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := BuildMonthlySummary(txns, year, month)
	if err := s.cache.Put(year, month, summary); err != nil {
		s.log.Warn().Err(err).Msg("Failed to cache summary")
	}

	return &summary, false, nil
}

func previousMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}
