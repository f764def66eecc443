package insights

import (
	"testing"

	"github.com/finobai/finobai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryWithTotal(total float64, count int) MonthlySummary {
	s := MonthlySummary{
		Year:             2024,
		Month:            5,
		TotalAmount:      total,
		TransactionCount: count,
	}
	if count > 0 {
		s.AverageTransaction = total / float64(count)
	}
	return s
}

func TestBudgetRuleBoundary(t *testing.T) {
	budgets := []Budget{{Category: domain.CategoryFood, MonthlyLimit: 1000}}

	build := func(spent float64) MonthlySummary {
		s := summaryWithTotal(spent, 10)
		s.Categories = []CategoryBreakdown{{Category: domain.CategoryFood, Amount: spent, Count: 10, Percentage: 100}}
		s.TopCategory = domain.CategoryFood
		s.TopCategoryShare = 100
		return s
	}

	// 79.99% usage stays quiet
	quiet := Generate(build(799.9), nil, budgets)
	for _, insight := range quiet {
		assert.NotEqual(t, "Budget alert", insight.Title)
	}

	// 80.01% usage warns at priority 3
	warned := Generate(build(800.1), nil, budgets)
	found := false
	for _, insight := range warned {
		if insight.Title == "Budget alert" {
			found = true
			assert.Equal(t, 3, insight.Priority)
			assert.Equal(t, TypeWarning, insight.Type)
		}
	}
	assert.True(t, found)

	// Over 100% escalates to priority 5
	over := Generate(build(1100), nil, budgets)
	found = false
	for _, insight := range over {
		if insight.Title == "Budget alert" {
			found = true
			assert.Equal(t, 5, insight.Priority)
		}
	}
	assert.True(t, found)
}

func TestTrendRuleNeedsPriorSpending(t *testing.T) {
	current := summaryWithTotal(10000, 20)

	// No previous month at all
	insights := Generate(current, nil, nil)
	for _, insight := range insights {
		assert.NotContains(t, insight.Title, "Spending is")
	}

	// Previous month with zero total must not divide by zero
	zero := summaryWithTotal(0, 0)
	insights = Generate(current, &zero, nil)
	for _, insight := range insights {
		assert.NotContains(t, insight.Title, "Spending is")
	}

	// 25% increase fires a warning
	prev := summaryWithTotal(8000, 20)
	insights = Generate(current, &prev, nil)
	found := false
	for _, insight := range insights {
		if insight.Title == "Spending is up" {
			found = true
			assert.Equal(t, TypeWarning, insight.Type)
		}
	}
	assert.True(t, found)

	// 30% decrease is an achievement
	prevHigh := summaryWithTotal(15000, 20)
	current2 := summaryWithTotal(10000, 20)
	insights = Generate(current2, &prevHigh, nil)
	found = false
	for _, insight := range insights {
		if insight.Title == "Spending is down" {
			found = true
			assert.Equal(t, TypeAchievement, insight.Type)
		}
	}
	assert.True(t, found)
}

func TestDominanceTiersAreExclusive(t *testing.T) {
	s := summaryWithTotal(10000, 30)
	s.TopCategory = domain.CategoryShopping
	s.TopCategoryShare = 45

	insights := Generate(s, nil, nil)
	warns, infos := 0, 0
	for _, insight := range insights {
		switch insight.Title {
		case "One category dominates":
			warns++
		case "Largest category":
			infos++
		}
	}
	assert.Equal(t, 1, warns)
	assert.Equal(t, 0, infos)

	s.TopCategoryShare = 30
	insights = Generate(s, nil, nil)
	warns, infos = 0, 0
	for _, insight := range insights {
		switch insight.Title {
		case "One category dominates":
			warns++
		case "Largest category":
			infos++
		}
	}
	assert.Equal(t, 0, warns)
	assert.Equal(t, 1, infos)
}

func TestGenerateCapAndOrdering(t *testing.T) {
	// Construct a month that trips many rules at once
	s := summaryWithTotal(20000, 60) // high total, busy month, avg 333
	s.TopCategory = domain.CategoryShopping
	s.TopCategoryShare = 50
	s.Categories = []CategoryBreakdown{
		{Category: domain.CategoryShopping, Amount: 10000, Count: 30, Percentage: 50},
		{Category: domain.CategoryFood, Amount: 10000, Count: 30, Percentage: 50},
	}
	prev := summaryWithTotal(10000, 40)
	budgets := []Budget{
		{Category: domain.CategoryShopping, MonthlyLimit: 5000},
		{Category: domain.CategoryFood, MonthlyLimit: 9000},
	}

	insights := Generate(s, &prev, budgets)

	require.LessOrEqual(t, len(insights), 5)
	require.NotEmpty(t, insights)

	for i := 1; i < len(insights); i++ {
		assert.GreaterOrEqual(t, insights[i-1].Priority, insights[i].Priority)
	}
	// The blown shopping budget outranks everything
	assert.Equal(t, 5, insights[0].Priority)
}

func TestGenericFallbackInsight(t *testing.T) {
	s := summaryWithTotal(6000, 20) // trips no other rules
	insights := Generate(s, nil, nil)

	require.Len(t, insights, 1)
	assert.Equal(t, "Analysis complete", insights[0].Title)
	assert.Equal(t, TypeAchievement, insights[0].Type)

	// Empty month generates nothing
	empty := summaryWithTotal(0, 0)
	assert.Empty(t, Generate(empty, nil, nil))
}
