package classify

import (
	"sort"

	"github.com/inkwell-commerce/declare/internal/model"
)

// CodeEntry resolves a trade-classification code (or code prefix) to its
// canonical identity.
type CodeEntry struct {
	Code          string `yaml:"code"` // Canonical full code for this entry
	Description   string `yaml:"description"`
	OriginCountry string `yaml:"origin_country"`
}

// Tables bundles the static configuration the classifier runs against. The
// host loads these once and passes them in; the classifier never mutates
// them.
type Tables struct {
	Rules            []Rule
	CodeTable        map[string]CodeEntry // cleaned full code → entry
	PrefixTable      map[string]CodeEntry // shorter numeric prefix → entry
	CategorySynonyms map[string]string    // normalized category → canonical category
}

// Classifier is a pure, deterministic mapping from item text to a canonical
// classification. Safe for concurrent use.
type Classifier struct {
	rules            []compiledRule
	codeTable        map[string]CodeEntry
	prefixTable      map[string]CodeEntry
	categorySynonyms map[string]string
	prefixLengths    []int
}

// NewClassifier validates and compiles the given tables.
func NewClassifier(tables Tables) (*Classifier, error) {
	compiled, err := compileRules(tables.Rules)
	if err != nil {
		return nil, err
	}

	// Probe prefixes longest first so the most specific family wins.
	lengths := make(map[int]struct{})
	for prefix := range tables.PrefixTable {
		lengths[len(prefix)] = struct{}{}
	}
	prefixLengths := make([]int, 0, len(lengths))
	for l := range lengths {
		prefixLengths = append(prefixLengths, l)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(prefixLengths)))

	synonyms := make(map[string]string, len(tables.CategorySynonyms))
	for k, v := range tables.CategorySynonyms {
		synonyms[normalizeText(k)] = normalizeText(v)
	}

	return &Classifier{
		rules:            compiled,
		codeTable:        tables.CodeTable,
		prefixTable:      tables.PrefixTable,
		categorySynonyms: synonyms,
		prefixLengths:    prefixLengths,
	}, nil
}

// Classify resolves a title, optional category, and optional stored code to
// a classification. A free-text rule match is authoritative and overrides
// any stored code; only when no rule matches does the stored code get a
// chance, first as an exact table lookup, then by progressively shorter
// numeric prefixes. Unresolvable input yields an UNCLASSIFIED result, never
// an error: routing to manual review is the caller's policy.
func (c *Classifier) Classify(title, category, existingCode string) model.Classification {
	normTitle := normalizeText(title)
	normCategory := normalizeText(category)
	if canonical, ok := c.categorySynonyms[normCategory]; ok {
		normCategory = canonical
	}

	for i := range c.rules {
		if c.rules[i].matches(normTitle, normCategory) {
			return model.Classification{
				Code:          c.rules[i].Code,
				Description:   c.rules[i].Description,
				OriginCountry: c.rules[i].OriginCountry,
				Status:        model.StatusClassifiedByRule,
			}
		}
	}

	if entry, ok := c.lookupCode(existingCode); ok {
		return model.Classification{
			Code:          entry.Code,
			Description:   entry.Description,
			OriginCountry: entry.OriginCountry,
			Status:        model.StatusClassifiedByCode,
		}
	}

	return model.Classification{Status: model.StatusUnclassified}
}

// lookupCode resolves a stored code through the exact table and then the
// prefix table. The code is cleaned and structurally repaired first; a code
// that still fails to decode stays unresolved rather than defaulting to an
// arbitrary product type.
func (c *Classifier) lookupCode(existingCode string) (CodeEntry, bool) {
	code := RepairCode(model.CleanCode(existingCode))
	if code == "" {
		return CodeEntry{}, false
	}

	if entry, ok := c.codeTable[code]; ok {
		return entry, true
	}

	for _, l := range c.prefixLengths {
		if l >= len(code) {
			continue
		}
		if entry, ok := c.prefixTable[code[:l]]; ok {
			return entry, true
		}
	}

	return CodeEntry{}, false
}
