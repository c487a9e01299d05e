// Package classify derives a canonical customs identity for an item from its
// free-text title, optional category, and optional stored code. The rule
// cascade is data-driven: every branch of the legacy keyword checks is one
// Rule with an explicit precedence, so ordering and coverage are testable
// independently of control flow.
package classify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Rule maps normalized free text to a fixed classification. A rule carries
// up to three predicate forms; every form that is set must pass:
//
//   - Keywords: each keyword (or phrase) must appear in the normalized title
//   - Pattern: a regular expression matched against the normalized title
//   - Category: equality with the normalized category, after synonyms
type Rule struct {
	Name          string   `yaml:"name"`
	Precedence    int      `yaml:"precedence"`
	Keywords      []string `yaml:"keywords,omitempty"`
	Pattern       string   `yaml:"pattern,omitempty"`
	Category      string   `yaml:"category,omitempty"`
	Code          string   `yaml:"code"`
	Description   string   `yaml:"description"`
	OriginCountry string   `yaml:"origin_country"`
}

// compiledRule is a Rule with its regex compiled once at construction.
type compiledRule struct {
	Rule
	re *regexp.Regexp
}

func (r *compiledRule) matches(title, category string) bool {
	hasPredicate := false

	if len(r.Keywords) > 0 {
		hasPredicate = true
		for _, kw := range r.Keywords {
			if !strings.Contains(title, kw) {
				return false
			}
		}
	}

	if r.re != nil {
		hasPredicate = true
		if !r.re.MatchString(title) {
			return false
		}
	}

	if r.Category != "" {
		hasPredicate = true
		if category != r.Category {
			return false
		}
	}

	// A rule with no predicate never matches; it would otherwise swallow
	// every title below its precedence.
	return hasPredicate
}

// compileRules validates the rule table and orders it by descending
// precedence. Duplicate precedences are rejected so the cascade stays
// strict and total.
func compileRules(rules []Rule) ([]compiledRule, error) {
	seen := make(map[int]string, len(rules))
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		if prev, ok := seen[r.Precedence]; ok {
			return nil, fmt.Errorf("rules %q and %q share precedence %d", prev, r.Name, r.Precedence)
		}
		seen[r.Precedence] = r.Name

		cr := compiledRule{Rule: r}
		cr.Keywords = make([]string, len(r.Keywords))
		for i, kw := range r.Keywords {
			cr.Keywords[i] = normalizeText(kw)
		}
		cr.Category = normalizeText(r.Category)
		if r.Pattern != "" {
			re, err := regexp.Compile(r.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q has invalid pattern: %w", r.Name, err)
			}
			cr.re = re
		}
		compiled = append(compiled, cr)
	}

	sort.Slice(compiled, func(i, j int) bool {
		return compiled[i].Precedence > compiled[j].Precedence
	})

	return compiled, nil
}

// normalizeText lower-cases, maps punctuation to spaces, and collapses
// repeated whitespace. Rule predicates and input titles go through the same
// normalization so containment checks are stable.
func normalizeText(s string) string {
	lowered := strings.ToLower(s)

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
