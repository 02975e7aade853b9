// Package match selects the best catalog candidate for a normalized query.
//
// Scoring is a weighted blend of title similarity, duration closeness and
// artist-hint agreement. The weights are configuration, not constants:
// there is no canonical weighting, so callers pin one in their settings
// and tests pin a fixture.
//
// Selection is fully deterministic: the maximum score wins, exact ties
// prefer the candidate with the higher catalog-reported quality, and
// remaining ties fall back to the catalog's result order. The
// skip-already-downloaded guarantee only holds across runs if identical
// inputs select identical candidates.
package match

import (
	"context"
	"errors"
	"fmt"

	"github.com/handiism/mploader/internal/model"
)

// ErrNoMatch is returned when the catalog offers no acceptable candidate.
var ErrNoMatch = errors.New("no acceptable catalog match")

// durationToleranceSeconds is the gap at which duration closeness bottoms
// out. Catalog and platform durations routinely differ by a few seconds;
// half a minute apart means it is probably a different edit.
const durationToleranceSeconds = 30

// Searcher is the catalog search collaborator consumed by the Matcher.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.MatchCandidate, error)
}

// Weights configures the scoring blend. They need not sum to 1; scores
// are normalized by the active weight total.
type Weights struct {
	Title    float64
	Duration float64
	Artist   float64
}

// Matcher scores and selects catalog candidates.
type Matcher struct {
	searcher Searcher
	weights  Weights
	minScore float64
}

// NewMatcher creates a Matcher.
//
// minScore is the lowest acceptable normalized score in [0, 1]; the best
// candidate below it yields ErrNoMatch.
func NewMatcher(searcher Searcher, weights Weights, minScore float64) *Matcher {
	return &Matcher{searcher: searcher, weights: weights, minScore: minScore}
}

// Match performs one catalog search for the query and selects the best
// candidate.
//
// Returns ErrNoMatch (wrapped) when the search yields zero candidates, a
// terminal search failure, or only candidates under the minimum score.
func (m *Matcher) Match(ctx context.Context, query model.NormalizedQuery) (model.MatchCandidate, error) {
	candidates, err := m.searcher.Search(ctx, query.SearchTitle)
	if err != nil {
		return model.MatchCandidate{}, fmt.Errorf("%w: search failed: %v", ErrNoMatch, err)
	}
	if len(candidates) == 0 {
		return model.MatchCandidate{}, fmt.Errorf("%w: no results for %q", ErrNoMatch, query.SearchTitle)
	}

	best := 0
	bestScore := m.Score(query, candidates[0])
	for i := 1; i < len(candidates); i++ {
		score := m.Score(query, candidates[i])
		// Strictly-greater comparisons keep the selection stable: on an
		// exact score-and-quality tie the earlier catalog result wins.
		if score > bestScore ||
			(score == bestScore && candidates[i].QualityScore > candidates[best].QualityScore) {
			best = i
			bestScore = score
		}
	}

	if bestScore < m.minScore {
		return model.MatchCandidate{}, fmt.Errorf("%w: best score %.2f below threshold %.2f for %q",
			ErrNoMatch, bestScore, m.minScore, query.SearchTitle)
	}
	return candidates[best], nil
}

// Score computes the normalized score of one candidate against a query,
// in [0, 1].
//
// The duration component only participates when both durations are known;
// otherwise its weight is excluded from normalization so unknown
// durations neither help nor hurt a candidate.
func (m *Matcher) Score(query model.NormalizedQuery, c model.MatchCandidate) float64 {
	weightTotal := m.weights.Title + m.weights.Artist
	score := m.weights.Title * titleSimilarity(query.SearchTitle, c.Title)

	if artistMatch(c.Artist, query.ArtistHints) {
		score += m.weights.Artist
	}

	if query.DurationSeconds > 0 && c.DurationSeconds > 0 {
		weightTotal += m.weights.Duration
		score += m.weights.Duration * durationCloseness(query.DurationSeconds, c.DurationSeconds, durationToleranceSeconds)
	}

	if weightTotal == 0 {
		return 0
	}
	return score / weightTotal
}
