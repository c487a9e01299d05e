// Package similarity scores how closely two free-text product names refer to
// the same product. It is used by the matcher's fuzzy tier and by the product
// directory's name search.
package similarity

import (
	"strings"
	"unicode"
)

// Weights for combining the two token-set measures. Coverage dominates
// because declaration descriptions are usually a subset of the richer item
// name, not the other way around.
const (
	coverageWeight = 0.7
	overlapWeight  = 0.25
)

// Result carries the combined score plus the raw measures it was built from.
type Result struct {
	Score    float64 // Combined, clamped to [0,1]
	Coverage float64 // Fraction of the query's tokens found in the candidate
	Overlap  float64 // Symmetric Jaccard over both token sets
}

// Scorer computes bounded name-similarity scores. It is immutable after
// construction and safe for concurrent use.
type Scorer struct {
	synonyms    map[string]string
	distinctive map[string]struct{}
	bonus       float64
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithSynonyms replaces the synonym-normalization table. Keys and values
// must be lower-case single tokens.
func WithSynonyms(synonyms map[string]string) Option {
	return func(s *Scorer) {
		s.synonyms = synonyms
	}
}

// WithDistinctiveTerms replaces the list of terms that earn an additive
// bonus when shared between both names.
func WithDistinctiveTerms(terms []string) Option {
	return func(s *Scorer) {
		s.distinctive = make(map[string]struct{}, len(terms))
		for _, t := range terms {
			s.distinctive[strings.ToLower(t)] = struct{}{}
		}
	}
}

// WithDistinctiveBonus sets the per-shared-term bonus.
func WithDistinctiveBonus(bonus float64) Option {
	return func(s *Scorer) {
		s.bonus = bonus
	}
}

// NewScorer creates a Scorer with the default tables, applying any options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{
		synonyms:    defaultSynonyms,
		distinctive: defaultDistinctive,
		bonus:       defaultBonus,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score compares two free-text names. It is a total function: empty or
// unparseable inputs yield a zero result, never an error.
func (s *Scorer) Score(nameA, nameB string) Result {
	tokensA := s.tokenize(nameA)
	tokensB := s.tokenize(nameB)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return Result{}
	}

	setB := make(map[string]struct{}, len(tokensB))
	for _, t := range tokensB {
		setB[t] = struct{}{}
	}

	shared := make(map[string]struct{})
	for _, t := range tokensA {
		if _, ok := setB[t]; ok {
			shared[t] = struct{}{}
		}
	}

	union := make(map[string]struct{}, len(tokensA)+len(tokensB))
	for _, t := range tokensA {
		union[t] = struct{}{}
	}
	for _, t := range tokensB {
		union[t] = struct{}{}
	}

	uniqueA := make(map[string]struct{}, len(tokensA))
	for _, t := range tokensA {
		uniqueA[t] = struct{}{}
	}

	coverage := float64(len(shared)) / float64(len(uniqueA))
	overlap := float64(len(shared)) / float64(len(union))

	score := coverageWeight*coverage + overlapWeight*overlap
	for t := range shared {
		if _, ok := s.distinctive[t]; ok {
			score += s.bonus
		}
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	return Result{Score: score, Coverage: coverage, Overlap: overlap}
}

// tokenize lower-cases, rewrites ampersands, strips punctuation, splits on
// whitespace, and canonicalizes each token through the synonym table.
func (s *Scorer) tokenize(name string) []string {
	fields := strings.Fields(Normalize(name))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if canonical, ok := s.synonyms[f]; ok {
			f = canonical
		}
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Normalize lower-cases a name, rewrites "&" to "and", replaces every
// non-alphanumeric rune with a space, and collapses repeated whitespace.
// The matcher's exact-name tier compares the output of this function.
func Normalize(name string) string {
	lowered := strings.ToLower(name)
	lowered = strings.ReplaceAll(lowered, "&", " and ")

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
