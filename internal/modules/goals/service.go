package goals

import (
	"fmt"
	"math"
	"time"

	"github.com/finobai/finobai/internal/domain"
	"github.com/finobai/finobai/internal/events"
	"github.com/rs/zerolog"
)

// TransactionSource provides categorized transactions per month.
// Implemented by the statements repository.
type TransactionSource interface {
	TransactionsForMonth(year int, month time.Month) ([]domain.Transaction, error)
}

// Window of spending history consulted by the feasibility engine.
const expenseWindowMonths = 6

// Service wires goal persistence to the feasibility engine.
type Service struct {
	repo   *Repository
	engine *Engine
	source TransactionSource
	bus    *events.Bus
	log    zerolog.Logger
}

// NewService creates a new goals service
func NewService(
	repo *Repository,
	engine *Engine,
	source TransactionSource,
	bus *events.Bus,
	log zerolog.Logger,
) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		source: source,
		bus:    bus,
		log:    log.With().Str("component", "goals").Logger(),
	}
}

// Repo exposes the repository for handlers
func (s *Service) Repo() *Repository {
	return s.repo
}

// Contribute applies a contribution and publishes the goal update
func (s *Service) Contribute(goalID string, amount float64, note string) (*FinancialGoal, *Contribution, error) {
	goal, contribution, err := s.repo.Contribute(goalID, amount, note)
	if err != nil {
		return nil, nil, err
	}

	if s.bus != nil {
		s.bus.Publish(&events.GoalUpdatedData{
			GoalID:        goal.ID,
			CurrentAmount: goal.CurrentAmount,
			Progress:      goal.Progress(),
		})
	}
	return goal, contribution, nil
}

// Analyze scores one goal against the trailing spending window
func (s *Service) Analyze(goalID string, profile *Profile) (*Analysis, error) {
	goal, err := s.repo.Get(goalID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.buildExpenseContext(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	analysis := s.engine.Analyze(*goal, expenses, profile, time.Now().UTC())
	return &analysis, nil
}

// Plan builds the multi-goal savings plan
func (s *Service) Plan() (*SavingsPlan, error) {
	goals, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	expenses, err := s.buildExpenseContext(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	capacity := s.savingsCapacity(expenses)
	plan := BuildSavingsPlan(goals, capacity, time.Now().UTC())
	return &plan, nil
}

// Compatibility builds the goal/expense compatibility report
func (s *Service) Compatibility() (*CompatibilityReport, error) {
	goals, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	expenses, err := s.buildExpenseContext(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	report := BuildCompatibilityReport(goals, expenses)
	return &report, nil
}

// savingsCapacity estimates free monthly cash from the income multiplier
func (s *Service) savingsCapacity(expenses ExpenseContext) float64 {
	monthlyExpense := expenses.MonthlyExpense()
	income := monthlyExpense * s.engine.incomeMultiplier
	return math.Max(0, income-monthlyExpense)
}

// buildExpenseContext aggregates the trailing months of transactions
func (s *Service) buildExpenseContext(now time.Time) (ExpenseContext, error) {
	ctx := ExpenseContext{
		CategoryTotals: make(map[string]float64),
		Months:         expenseWindowMonths,
	}

	for i := expenseWindowMonths - 1; i >= 0; i-- {
		ref := now.AddDate(0, -i, 0)
		txns, err := s.source.TransactionsForMonth(ref.Year(), ref.Month())
		if err != nil {
			return ExpenseContext{}, fmt.Errorf("failed to load month %d-%02d: %w",
				ref.Year(), int(ref.Month()), err)
		}

		var monthTotal float64
		for _, txn := range txns {
			monthTotal += txn.Amount
			ctx.CategoryTotals[string(txn.Category)] += txn.Amount
		}
		ctx.MonthlyTotals = append(ctx.MonthlyTotals, monthTotal)
	}

	return ctx, nil
}
