package goals

import (
	"database/sql"
	"testing"
	"time"

	"github.com/finobai/finobai/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo, err := NewRepository(db, logger.New(logger.Config{Level: "error"}))
	require.NoError(t, err)
	return repo
}

func testGoal(name string, priority int, targetDate time.Time) *FinancialGoal {
	return &FinancialGoal{
		Name:         name,
		Category:     GoalVacation,
		TargetAmount: 10000,
		Priority:     priority,
		TargetDate:   targetDate,
	}
}

func TestRepositoryCRUD(t *testing.T) {
	repo := newTestRepository(t)
	targetDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	goal := testGoal("Tatil", 2, targetDate)
	require.NoError(t, repo.Create(goal))
	require.NotEmpty(t, goal.ID)

	fetched, err := repo.Get(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tatil", fetched.Name)
	assert.Equal(t, GoalVacation, fetched.Category)
	assert.True(t, fetched.TargetDate.Equal(targetDate))

	fetched.Name = "Yaz tatili"
	fetched.Priority = 1
	require.NoError(t, repo.Update(fetched))

	updated, err := repo.Get(goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Yaz tatili", updated.Name)
	assert.Equal(t, 1, updated.Priority)

	require.NoError(t, repo.Delete(goal.ID))
	_, err = repo.Get(goal.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Update(&FinancialGoal{ID: "missing", TargetDate: time.Now()}), ErrNotFound)
	assert.ErrorIs(t, repo.Delete("missing"), ErrNotFound)

	_, _, err = repo.Contribute("missing", 100, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryListOrder(t *testing.T) {
	repo := newTestRepository(t)
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(testGoal("low", 3, now.AddDate(0, 3, 0))))
	require.NoError(t, repo.Create(testGoal("high-late", 1, now.AddDate(1, 0, 0))))
	require.NoError(t, repo.Create(testGoal("high-soon", 1, now.AddDate(0, 1, 0))))

	goals, err := repo.List()
	require.NoError(t, err)
	require.Len(t, goals, 3)
	assert.Equal(t, "high-soon", goals[0].Name)
	assert.Equal(t, "high-late", goals[1].Name)
	assert.Equal(t, "low", goals[2].Name)
}

func TestContributeUpdatesBalanceAndHistory(t *testing.T) {
	repo := newTestRepository(t)

	goal := testGoal("Araba", 2, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	goal.CurrentAmount = 1000
	require.NoError(t, repo.Create(goal))

	updated, contribution, err := repo.Contribute(goal.ID, 500, "haziran birikimi")
	require.NoError(t, err)
	assert.InDelta(t, 1500, updated.CurrentAmount, 1e-9)
	assert.Equal(t, goal.ID, contribution.GoalID)
	assert.InDelta(t, 500, contribution.Amount, 1e-9)

	_, _, err = repo.Contribute(goal.ID, 250, "")
	require.NoError(t, err)

	final, err := repo.Get(goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1750, final.CurrentAmount, 1e-9)

	history, err := repo.Contributions(goal.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, c := range history {
		assert.Equal(t, goal.ID, c.GoalID)
	}

	_, _, err = repo.Contribute(goal.ID, -10, "")
	assert.Error(t, err)
}
