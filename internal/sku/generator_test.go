package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testRuleSet() RuleSet {
	return RuleSet{
		Dictionaries: map[Facet]map[string]string{
			FacetType: {
				"notebook":   "NTB",
				"planner":    "DPL",
				"washi tape": "WSH",
				"pen":        "PEN",
			},
			FacetSize: {
				"a5":     "A5",
				"pocket": "PKT",
			},
			FacetSubtype: {
				"dot":   "DOT",
				"lined": "LIN",
			},
			FacetColor: {
				"forest green": "FGR",
				"black":        "BLK",
			},
			FacetMaterial: {
				"hardcover": "HC",
				"kraft":     "KFT",
			},
			FacetPack: {
				"set of 3": "3PK",
			},
		},
		ImperfectToken: "IMP",
		Separator:      "-",
		MaxLength:      20,
		FallbackWidth:  4,
	}
}

func TestGenerator_Synthesize(t *testing.T) {
	g := NewGenerator(testRuleSet())

	tests := []struct {
		name  string
		attrs Attributes
		want  string
	}{
		{
			name:  "full facet composition",
			attrs: Attributes{Name: "A5 Dotted Notebook - Forest Green"},
			want:  "NTB-A5-DOT-FGR",
		},
		{
			name:  "pack token dropped first over budget",
			attrs: Attributes{Name: "A5 Dotted Notebook - Forest Green Hardcover Set of 3"},
			want:  "NTB-A5-DOT-FGR-HC",
		},
		{
			name:  "longest dictionary key wins, fallback pads a lone segment",
			attrs: Attributes{Name: "Washi Tape Roll"},
			want:  "WSH-WASH",
		},
		{
			name:  "structured attributes preferred over name",
			attrs: Attributes{Name: "Mystery thing", Type: "planner", Size: "pocket", Color: "black"},
			want:  "DPL-PKT-BLK",
		},
		{
			name:  "imperfect token appended last",
			attrs: Attributes{Name: "A5 Dotted Notebook", Imperfect: true},
			want:  "NTB-A5-DOT-IMP",
		},
		{
			name:  "single word fallback truncated to width",
			attrs: Attributes{Name: "Mystery Box"},
			want:  "MYST",
		},
		{
			name:  "initials when first word is short",
			attrs: Attributes{Name: "A5 Box Kit Z"},
			want:  "A5-ABKZ",
		},
		{
			name:  "no derivable text at all",
			attrs: Attributes{},
			want:  "ITEM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Synthesize(tt.attrs, nil))
		})
	}
}

func TestGenerator_LengthBudget(t *testing.T) {
	rules := testRuleSet()
	rules.MaxLength = 12
	g := NewGenerator(rules)

	// Pack drop alone leaves 17 characters; material and color segments go
	// next until the code fits.
	got := g.Synthesize(Attributes{Name: "A5 Dotted Notebook - Forest Green Hardcover Set of 3"}, nil)
	assert.Equal(t, "NTB-A5-DOT", got)
	assert.LessOrEqual(t, len(got), 12)
}

func TestGenerator_SeparatorStripAndTruncate(t *testing.T) {
	rules := RuleSet{
		Dictionaries: map[Facet]map[string]string{
			FacetType: {"notebook": "NOTEBOOK"},
			FacetSize: {"a5": "A5XX"},
		},
		Separator:     "-",
		MaxLength:     12,
		FallbackWidth: 4,
	}
	g := NewGenerator(rules)

	// Type and size are never dropped, so the separator goes instead.
	assert.Equal(t, "NOTEBOOKA5XX", g.Synthesize(Attributes{Name: "A5 Notebook"}, nil))

	rules.MaxLength = 6
	g = NewGenerator(rules)
	assert.Equal(t, "NOTEBO", g.Synthesize(Attributes{Name: "A5 Notebook"}, nil))
}

func TestGenerator_UniquenessSuffix(t *testing.T) {
	g := NewGenerator(testRuleSet())
	attrs := Attributes{Name: "A5 Dotted Notebook - Forest Green"}

	used := NewUsedSet("NTB-A5-DOT-FGR")
	got := g.Synthesize(attrs, used.Contains)
	assert.Equal(t, "NTB-A5-DOT-FGR-AA", got)

	used.Add(got)
	got = g.Synthesize(attrs, used.Contains)
	assert.Equal(t, "NTB-A5-DOT-FGR-AB", got)
}

func TestGenerator_SuffixRespectsBudget(t *testing.T) {
	rules := testRuleSet()
	rules.MaxLength = 15
	g := NewGenerator(rules)
	attrs := Attributes{Name: "A5 Dotted Notebook - Forest Green"}

	used := NewUsedSet("NTB-A5-DOT-FGR")
	got := g.Synthesize(attrs, used.Contains)
	assert.LessOrEqual(t, len(got), 15)
	assert.Equal(t, "NTBA5DOTFGR-AA", got)
}

func TestGenerator_SuffixWithTinyMaxLength(t *testing.T) {
	rules := RuleSet{Separator: "-", MaxLength: 3, FallbackWidth: 4}
	g := NewGenerator(rules)
	attrs := Attributes{Name: "Mystery Box"}

	base := g.Synthesize(attrs, nil)
	assert.Equal(t, "MYS", base)

	// No room for the separator; the suffix eats into the base instead of
	// pushing the code over budget.
	used := NewUsedSet("MYS")
	got := g.Synthesize(attrs, used.Contains)
	assert.Equal(t, "MAA", got)
	assert.LessOrEqual(t, len(got), 3)

	rules.MaxLength = 2
	g = NewGenerator(rules)
	used = NewUsedSet("MY")
	got = g.Synthesize(attrs, used.Contains)
	assert.Equal(t, "AA", got)
	assert.LessOrEqual(t, len(got), 2)
}

func TestGenerator_Deterministic(t *testing.T) {
	g := NewGenerator(testRuleSet())
	attrs := Attributes{Name: "2026 Daily Planner - Hardcover", Size: "a5"}

	first := g.Synthesize(attrs, nil)
	second := g.Synthesize(attrs, nil)
	assert.Equal(t, first, second)
	assert.Equal(t, "DPL-A5-HC", first)
}

func TestGenerator_ZeroValueRuleSetDefaults(t *testing.T) {
	g := NewGenerator(RuleSet{})

	got := g.Synthesize(Attributes{Name: "Mystery Box"}, nil)
	assert.Equal(t, "MYST", got)
	assert.LessOrEqual(t, len(got), 20)
}

func TestUsedSet(t *testing.T) {
	set := NewUsedSet("NTB-A5", "DPL-HC")

	assert.True(t, set.Contains("NTB-A5"))
	assert.False(t, set.Contains("PEN-01"))
	assert.Equal(t, 2, set.Len())

	set.Add("PEN-01")
	assert.True(t, set.Contains("PEN-01"))
	assert.Equal(t, 3, set.Len())

	set.Add("PEN-01")
	assert.Equal(t, 3, set.Len())
}
