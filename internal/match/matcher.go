// Package match pairs declaration lines with order items when the two
// collections describe the same goods but share no authoritative key. A
// four-tier cascade runs per declaration line, strongest evidence first;
// pairing is exclusive in both directions within one invocation.
package match

import (
	"fmt"

	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/similarity"
)

// DefaultFuzzyThreshold is the minimum similarity score the fuzzy tier
// accepts. Below it, a wrong pairing is likelier than a missed one.
const DefaultFuzzyThreshold = 0.40

// Tier confidences for the non-scored tiers.
const (
	identifierConfidence = 1.0
	exactNameConfidence  = 0.95
	positionConfidence   = 0.5
)

// Matcher pairs declaration lines to items. Immutable after construction
// and safe for concurrent use.
type Matcher struct {
	scorer    *similarity.Scorer
	threshold float64
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithThreshold overrides the fuzzy-tier acceptance threshold.
func WithThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.threshold = threshold
	}
}

// NewMatcher creates a Matcher using the given scorer for the fuzzy tier.
func NewMatcher(scorer *similarity.Scorer, opts ...Option) *Matcher {
	m := &Matcher{
		scorer:    scorer,
		threshold: DefaultFuzzyThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match runs the cascade over one order's declaration lines and items.
// Inputs are never mutated. The returned pairing is injective both ways;
// indices left unconsumed after all tiers land in the unmatched lists.
func (m *Matcher) Match(lines []model.DeclarationLine, items []model.Item) (model.MatchResult, error) {
	itemConsumed := make([]bool, len(items))
	result := model.MatchResult{}

	normalizedNames := make([]string, len(items))
	for i := range items {
		normalizedNames[i] = similarity.Normalize(items[i].Name)
	}

	positional := len(lines) == len(items)

	for li := range lines {
		candidate, ok := m.matchLine(li, &lines[li], items, normalizedNames, itemConsumed, positional)
		if !ok {
			result.UnmatchedDeclarations = append(result.UnmatchedDeclarations, li)
			continue
		}
		itemConsumed[candidate.ItemIndex] = true
		result.Pairs = append(result.Pairs, candidate)
	}

	for ii := range items {
		if !itemConsumed[ii] {
			result.UnmatchedItems = append(result.UnmatchedItems, ii)
		}
	}

	if err := verifyExclusive(result.Pairs); err != nil {
		return model.MatchResult{}, err
	}

	return result, nil
}

// matchLine runs the tier cascade for a single declaration line against the
// items not yet consumed.
func (m *Matcher) matchLine(li int, line *model.DeclarationLine, items []model.Item, normalizedNames []string, consumed []bool, positional bool) (model.MatchCandidate, bool) {
	// Tier 1: shared identifier.
	if line.SKU != "" {
		for ii := range items {
			if consumed[ii] {
				continue
			}
			if line.SKU == items[ii].SKU || line.SKU == items[ii].Identifier() {
				return model.MatchCandidate{
					Source:           model.MatchByIdentifier,
					DeclarationIndex: li,
					ItemIndex:        ii,
					Confidence:       identifierConfidence,
				}, true
			}
		}
	}

	// Tier 2: exact name after normalization.
	normDesc := similarity.Normalize(line.Description)
	if normDesc != "" {
		for ii := range items {
			if consumed[ii] {
				continue
			}
			if normDesc == normalizedNames[ii] {
				return model.MatchCandidate{
					Source:           model.MatchByExactName,
					DeclarationIndex: li,
					ItemIndex:        ii,
					Confidence:       exactNameConfidence,
				}, true
			}
		}
	}

	// Tier 3: fuzzy name score, best item wins, ties to the lowest index.
	bestIdx := -1
	bestScore := 0.0
	for ii := range items {
		if consumed[ii] {
			continue
		}
		score := m.scorer.Score(line.Description, items[ii].Name).Score
		if score > bestScore {
			bestScore = score
			bestIdx = ii
		}
	}
	if bestIdx >= 0 && bestScore >= m.threshold {
		return model.MatchCandidate{
			Source:           model.MatchByFuzzyName,
			DeclarationIndex: li,
			ItemIndex:        bestIdx,
			Confidence:       bestScore,
		}, true
	}

	// Tier 4: positional, last resort, only for equal-length collections.
	if positional && li < len(consumed) && !consumed[li] {
		return model.MatchCandidate{
			Source:           model.MatchByPosition,
			DeclarationIndex: li,
			ItemIndex:        li,
			Confidence:       positionConfidence,
		}, true
	}

	return model.MatchCandidate{}, false
}

// verifyExclusive guards the both-ways injectivity contract. A violation is
// a programming error, not a data-quality outcome: corrupting a pairing
// silently would corrupt the declaration downstream.
func verifyExclusive(pairs []model.MatchCandidate) error {
	seenLines := make(map[int]struct{}, len(pairs))
	seenItems := make(map[int]struct{}, len(pairs))
	for _, p := range pairs {
		if _, dup := seenLines[p.DeclarationIndex]; dup {
			return fmt.Errorf("%w: declaration index %d", common.ErrDoubleAssignment, p.DeclarationIndex)
		}
		if _, dup := seenItems[p.ItemIndex]; dup {
			return fmt.Errorf("%w: item index %d", common.ErrDoubleAssignment, p.ItemIndex)
		}
		seenLines[p.DeclarationIndex] = struct{}{}
		seenItems[p.ItemIndex] = struct{}{}
	}
	return nil
}
