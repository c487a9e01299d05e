package sku

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/inkwell-commerce/declare/internal/similarity"
)

// packTokenRE matches the optional pack-size tokens ("3PK", "12SET") that
// are the first thing sacrificed when a code runs over budget.
var packTokenRE = regexp.MustCompile(`^[0-9]+[A-Z]{1,4}$`)

// droppableFacets lists the segment categories that may be removed to meet
// the length budget, in drop order. Type and size are never dropped: they
// are what keeps a synthesized code recognizable.
var droppableFacets = []Facet{FacetMaterial, FacetColor, FacetCollection, FacetBrand, FacetSubtype}

// segmentOrder fixes the composition order of facet segments.
var segmentOrder = []Facet{FacetBrand, FacetType, FacetSize, FacetSubtype, FacetCollection, FacetColor, FacetMaterial, FacetPack}

// Generator synthesizes codes against one RuleSet. Immutable after
// construction and safe for concurrent use; the used-code set is supplied
// per call so batches control their own uniqueness scope.
type Generator struct {
	rules      RuleSet
	sortedKeys map[Facet][]string
}

// NewGenerator prepares a Generator, pre-sorting every dictionary's keys
// longest first so more specific phrases win over shorter overlapping ones.
func NewGenerator(rules RuleSet) *Generator {
	if rules.Separator == "" {
		rules.Separator = "-"
	}
	if rules.MaxLength <= 0 {
		rules.MaxLength = 20
	}
	if rules.FallbackWidth <= 0 {
		rules.FallbackWidth = 4
	}

	sorted := make(map[Facet][]string, len(rules.Dictionaries))
	for facet, dict := range rules.Dictionaries {
		keys := make([]string, 0, len(dict))
		for k := range dict {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool {
			if len(keys[i]) != len(keys[j]) {
				return len(keys[i]) > len(keys[j])
			}
			return keys[i] < keys[j]
		})
		sorted[facet] = keys
	}

	return &Generator{rules: rules, sortedKeys: sorted}
}

type segment struct {
	facet Facet
	token string
}

// Synthesize builds a unique, length-bounded code for the given attributes.
// isUsed reports whether a candidate already exists; the caller keeps that
// set consistent across one synthesis batch. The function always returns a
// non-empty string, degrading through its fallback chain rather than
// failing.
func (g *Generator) Synthesize(attrs Attributes, isUsed func(string) bool) string {
	segments := g.deriveSegments(&attrs)

	if len(segments) < 2 {
		if token := fallbackToken(&attrs, g.rules.FallbackWidth); token != "" {
			segments = append(segments, segment{facet: FacetSubtype, token: token})
		}
	}

	if attrs.Imperfect && g.rules.ImperfectToken != "" {
		segments = append(segments, segment{facet: FacetPack, token: g.rules.ImperfectToken})
	}

	base := g.fit(segments)
	if base == "" {
		base = fallbackToken(&attrs, g.rules.FallbackWidth)
		if base == "" {
			base = "ITEM"
		}
	}

	if isUsed == nil || !isUsed(base) {
		return base
	}

	// Exhaustive two-letter disambiguation, re-fitting the budget each time.
	for first := 'A'; first <= 'Z'; first++ {
		for second := 'A'; second <= 'Z'; second++ {
			candidate := g.withSuffix(base, string([]rune{first, second}))
			if !isUsed(candidate) {
				return candidate
			}
		}
	}

	// Absolute last resort: a clock-derived suffix.
	stamp := strings.ToUpper(strconv.FormatInt(time.Now().UnixNano(), 36))
	if len(stamp) > 6 {
		stamp = stamp[len(stamp)-6:]
	}
	return g.withSuffix(base, stamp)
}

// deriveSegments runs every facet dictionary against its source text,
// longest key first, in fixed segment order.
func (g *Generator) deriveSegments(attrs *Attributes) []segment {
	segments := make([]segment, 0, len(segmentOrder))
	for _, facet := range segmentOrder {
		dict := g.rules.Dictionaries[facet]
		if len(dict) == 0 {
			continue
		}
		source := similarity.Normalize(attrs.facetSource(facet))
		if source == "" {
			continue
		}
		for _, key := range g.sortedKeys[facet] {
			if strings.Contains(source, key) {
				segments = append(segments, segment{facet: facet, token: dict[key]})
				break
			}
		}
	}
	return segments
}

// fit joins the segments and enforces the length budget: drop pack tokens,
// then droppable facets from the end, then separators, then hard-truncate.
func (g *Generator) fit(segments []segment) string {
	join := func(segs []segment, sep string) string {
		parts := make([]string, 0, len(segs))
		for _, s := range segs {
			if s.token != "" {
				parts = append(parts, s.token)
			}
		}
		return strings.ToUpper(strings.Join(parts, sep))
	}

	code := join(segments, g.rules.Separator)
	if len(code) <= g.rules.MaxLength {
		return code
	}

	// (a) pack-size tokens go first.
	trimmed := make([]segment, 0, len(segments))
	for _, s := range segments {
		if s.facet == FacetPack && packTokenRE.MatchString(strings.ToUpper(s.token)) {
			continue
		}
		trimmed = append(trimmed, s)
	}
	code = join(trimmed, g.rules.Separator)
	if len(code) <= g.rules.MaxLength {
		return code
	}

	// (b) droppable categories, last segment first within each category.
	for _, facet := range droppableFacets {
		for i := len(trimmed) - 1; i >= 0; i-- {
			if trimmed[i].facet != facet {
				continue
			}
			trimmed = append(trimmed[:i], trimmed[i+1:]...)
			code = join(trimmed, g.rules.Separator)
			if len(code) <= g.rules.MaxLength {
				return code
			}
		}
	}

	// (c) separators carry no meaning once space runs out.
	code = join(trimmed, "")
	if len(code) <= g.rules.MaxLength {
		return code
	}

	// (d) hard truncate.
	return code[:g.rules.MaxLength]
}

// withSuffix appends a disambiguation suffix, shrinking the base as needed
// so the result stays within budget.
func (g *Generator) withSuffix(base, suffix string) string {
	sep := g.rules.Separator
	budget := g.rules.MaxLength - len(suffix) - len(sep)
	if budget < 1 {
		sep = ""
		budget = g.rules.MaxLength - len(suffix)
	}
	if budget < 1 {
		// Budget too small for any base; the suffix alone carries the
		// disambiguation.
		if len(suffix) > g.rules.MaxLength {
			suffix = suffix[:g.rules.MaxLength]
		}
		return suffix
	}
	if len(base) > budget {
		// Separators are the first thing to go, then the tail.
		base = strings.ReplaceAll(base, g.rules.Separator, "")
		if len(base) > budget {
			base = base[:budget]
		}
	}
	return base + sep + suffix
}

// fallbackToken derives a deterministic token from the most specific free
// text available: the first alphabetic token when it fills the width on its
// own, otherwise the initials of the name, upper-cased and padded.
func fallbackToken(attrs *Attributes, width int) string {
	source := attrs.Name
	if source == "" {
		source = strings.TrimSpace(strings.Join([]string{attrs.Brand, attrs.Type, attrs.Subtype, attrs.Collection}, " "))
	}
	fields := strings.Fields(similarity.Normalize(source))
	if len(fields) == 0 {
		return ""
	}

	var first string
	for _, f := range fields {
		if isAlphabetic(f) {
			first = f
			break
		}
	}

	token := first
	if len(token) < width {
		initials := make([]byte, 0, len(fields))
		for _, f := range fields {
			initials = append(initials, f[0])
		}
		if len(initials) > len(token) {
			token = string(initials)
		}
	}
	if token == "" {
		token = fields[0]
	}

	token = strings.ToUpper(token)
	if len(token) > width {
		token = token[:width]
	}
	for len(token) < width {
		token += "X"
	}
	return token
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}
