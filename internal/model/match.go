package model

// MatchSource identifies which matcher tier produced a pairing.
type MatchSource string

// Matcher tier constants, strongest first.
const (
	MatchByIdentifier MatchSource = "identifier"
	MatchByExactName  MatchSource = "exactName"
	MatchByFuzzyName  MatchSource = "fuzzyName"
	MatchByPosition   MatchSource = "position"
)

// MatchCandidate pairs one declaration line with one order item.
type MatchCandidate struct {
	Source           MatchSource
	DeclarationIndex int
	ItemIndex        int
	Confidence       float64
}

// MatchResult is the full outcome of matching one order's declaration lines
// against its items. Pairs are exclusive in both directions; any index not
// appearing in a pair is listed as unmatched.
type MatchResult struct {
	Pairs                 []MatchCandidate
	UnmatchedDeclarations []int
	UnmatchedItems        []int
}

// PairForDeclaration returns the pair consuming the given declaration index,
// if any.
func (r *MatchResult) PairForDeclaration(idx int) (MatchCandidate, bool) {
	for _, p := range r.Pairs {
		if p.DeclarationIndex == idx {
			return p, true
		}
	}
	return MatchCandidate{}, false
}

// PairForItem returns the pair consuming the given item index, if any.
func (r *MatchResult) PairForItem(idx int) (MatchCandidate, bool) {
	for _, p := range r.Pairs {
		if p.ItemIndex == idx {
			return p, true
		}
	}
	return MatchCandidate{}, false
}
