// Package categorizer assigns expense categories to transaction descriptions
// using keyword scoring.
package categorizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/finobai/finobai/internal/domain"
	"github.com/rs/zerolog"
)

// ErrInvalidInput is returned for empty descriptions or non-positive amounts.
var ErrInvalidInput = errors.New("invalid categorization input")

const (
	baseConfidence    = 0.4
	perMatchBoost     = 0.15
	maxConfidence     = 0.85
	largeAmountCap    = 0.7
	largeAmountLimit  = 1000.0
	maxTags           = 3
	rationaleKeywords = 2
)

// Assignment is the result of categorizing one expense.
type Assignment struct {
	Category    domain.ExpenseCategory `json:"category"`
	Confidence  float64                `json:"confidence"`
	IsNecessary bool                   `json:"is_necessary"`
	Tags        []string               `json:"tags"`
	Rationale   string                 `json:"rationale"`
}

// Request is one categorization input.
type Request struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// BatchResult pairs an assignment with its per-item error.
type BatchResult struct {
	Assignment Assignment `json:"assignment"`
	Err        error      `json:"-"`
}

// Service scores descriptions against the keyword table.
type Service struct {
	log zerolog.Logger
}

// NewService creates a new categorizer service
func NewService(log zerolog.Logger) *Service {
	return &Service{
		log: log.With().Str("component", "categorizer").Logger(),
	}
}

// Categorize assigns a category to a single expense. The highest keyword
// score wins; equal scores resolve to the earlier table entry. No match
// falls through to "other".
func (s *Service) Categorize(description string, amount float64) (Assignment, error) {
	if strings.TrimSpace(description) == "" {
		return Assignment{}, fmt.Errorf("%w: empty description", ErrInvalidInput)
	}
	if amount <= 0 {
		return Assignment{}, fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	lowered := strings.ToLower(description)

	best := domain.CategoryOther
	bestScore := 0
	var bestMatches []string

	for _, entry := range keywordTable {
		score := 0
		var matches []string
		for _, kw := range entry.keywords {
			if strings.Contains(lowered, kw) {
				score++
				matches = append(matches, kw)
			}
		}
		if score > bestScore {
			best = entry.category
			bestScore = score
			bestMatches = matches
		}
	}

	confidence := baseConfidence + float64(bestScore)*perMatchBoost
	if confidence > maxConfidence {
		confidence = maxConfidence
	}
	// Large amounts are more likely to be mislabeled by keywords alone
	if amount > largeAmountLimit && confidence > largeAmountCap {
		confidence = largeAmountCap
	}

	tags := bestMatches
	if len(tags) > maxTags {
		tags = tags[:maxTags]
	}

	return Assignment{
		Category:    best,
		Confidence:  confidence,
		IsNecessary: necessaryCategories[best],
		Tags:        tags,
		Rationale:   buildRationale(best, bestMatches),
	}, nil
}

// CategorizeBatch categorizes every request, preserving input order.
// Invalid items carry their error in the result instead of aborting the batch.
func (s *Service) CategorizeBatch(requests []Request) []BatchResult {
	results := make([]BatchResult, len(requests))
	for i, req := range requests {
		assignment, err := s.Categorize(req.Description, req.Amount)
		results[i] = BatchResult{Assignment: assignment, Err: err}
	}
	return results
}

func buildRationale(category domain.ExpenseCategory, matches []string) string {
	if len(matches) == 0 {
		return "no keyword matched, defaulted to other"
	}
	shown := matches
	if len(shown) > rationaleKeywords {
		shown = shown[:rationaleKeywords]
	}
	return fmt.Sprintf("matched %s keywords: %s", category, strings.Join(shown, ", "))
}
