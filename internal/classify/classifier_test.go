package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-commerce/declare/internal/model"
)

func testTables() Tables {
	return Tables{
		Rules: []Rule{
			{
				Name:          "dated planner",
				Precedence:    730,
				Keywords:      []string{"planner"},
				Pattern:       `(^| )20[0-9]{2}( |$)`,
				Code:          "4820102010",
				Description:   "Dated paper planner (diary)",
				OriginCountry: "VN",
			},
			{
				Name:          "planner insert a5",
				Precedence:    720,
				Keywords:      []string{"insert", "a5"},
				Code:          "4820102060",
				Description:   "A5 planner insert, printed paper",
				OriginCountry: "VN",
			},
			{
				Name:          "planner",
				Precedence:    590,
				Keywords:      []string{"planner"},
				Code:          "4820102010",
				Description:   "Paper planner (diary)",
				OriginCountry: "VN",
			},
			{
				Name:          "insert",
				Precedence:    580,
				Keywords:      []string{"insert"},
				Code:          "4820102060",
				Description:   "Planner insert, printed paper",
				OriginCountry: "VN",
			},
			{
				Name:          "notebook",
				Precedence:    570,
				Keywords:      []string{"notebook"},
				Code:          "4820102030",
				Description:   "Bound paper notebook",
				OriginCountry: "VN",
			},
			{
				Name:          "category planners",
				Precedence:    230,
				Category:      "planners",
				Code:          "4820102010",
				Description:   "Paper planner (diary)",
				OriginCountry: "VN",
			},
		},
		CodeTable: map[string]CodeEntry{
			"4820102030": {Code: "4820102030", Description: "Bound paper notebook", OriginCountry: "VN"},
		},
		PrefixTable: map[string]CodeEntry{
			"482010": {Code: "4820102030", Description: "Bound paper notebook", OriginCountry: "VN"},
		},
		CategorySynonyms: map[string]string{
			"diaries": "planners",
		},
	}
}

func TestClassifier_Classify(t *testing.T) {
	classifier, err := NewClassifier(testTables())
	require.NoError(t, err)

	tests := []struct {
		name         string
		title        string
		category     string
		existingCode string
		wantCode     string
		wantStatus   model.ClassificationStatus
	}{
		{
			name:         "rule match overrides stale existing code",
			title:        "2026 Daily Planner — Hardcover",
			existingCode: "4820.10.2099",
			wantCode:     "4820102010",
			wantStatus:   model.StatusClassifiedByRule,
		},
		{
			name:       "size-qualified insert outranks notebook keyword",
			title:      "Weekly Insert for A5 Notebooks",
			wantCode:   "4820102060",
			wantStatus: model.StatusClassifiedByRule,
		},
		{
			name:       "bare insert outranks bare notebook",
			title:      "Dotted insert, fits most notebooks",
			wantCode:   "4820102060",
			wantStatus: model.StatusClassifiedByRule,
		},
		{
			name:       "notebook keyword",
			title:      "A5 Dotted Notebook",
			wantCode:   "4820102030",
			wantStatus: model.StatusClassifiedByRule,
		},
		{
			name:       "category equality after synonym normalization",
			title:      "Boxed gift set",
			category:   "Diaries",
			wantCode:   "4820102010",
			wantStatus: model.StatusClassifiedByRule,
		},
		{
			name:         "code table fallback when text resolves nothing",
			title:        "Mystery bundle",
			existingCode: "4820.10.2030",
			wantCode:     "4820102030",
			wantStatus:   model.StatusClassifiedByCode,
		},
		{
			name:         "prefix fallback for truncated code",
			title:        "Mystery bundle",
			existingCode: "4820.10.93",
			wantCode:     "4820102030",
			wantStatus:   model.StatusClassifiedByCode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.title, tt.category, tt.existingCode)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.False(t, got.Unknown())
		})
	}
}

func TestClassifier_Unclassified(t *testing.T) {
	classifier, err := NewClassifier(testTables())
	require.NoError(t, err)

	tests := []struct {
		name         string
		title        string
		existingCode string
	}{
		{name: "no rule and no code", title: "Mystery bundle"},
		{name: "repaired code still unknown", title: "Mystery bundle", existingCode: "9999.99"},
		{name: "empty everything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Classify(tt.title, "", tt.existingCode)
			assert.True(t, got.Unknown())
			assert.Empty(t, got.Code)
		})
	}
}

func TestClassifier_Deterministic(t *testing.T) {
	classifier, err := NewClassifier(testTables())
	require.NoError(t, err)

	first := classifier.Classify("2026 Daily Planner — Hardcover", "Diaries", "4820.10.2099")
	second := classifier.Classify("2026 Daily Planner — Hardcover", "Diaries", "4820.10.2099")
	assert.Equal(t, first, second)
}

func TestNewClassifier_RejectsDuplicatePrecedence(t *testing.T) {
	tables := testTables()
	tables.Rules = append(tables.Rules, Rule{
		Name:        "duplicate",
		Precedence:  590,
		Keywords:    []string{"pen"},
		Code:        "9608101000",
		Description: "Ball point pen",
	})

	_, err := NewClassifier(tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "precedence")
}

func TestNewClassifier_RejectsInvalidPattern(t *testing.T) {
	tables := testTables()
	tables.Rules = append(tables.Rules, Rule{
		Name:        "broken",
		Precedence:  1,
		Pattern:     "(",
		Code:        "1111111111",
		Description: "broken",
	})

	_, err := NewClassifier(tables)
	require.Error(t, err)
}

func TestRuleWithoutPredicateNeverMatches(t *testing.T) {
	tables := Tables{
		Rules: []Rule{
			{
				Name:        "empty predicate",
				Precedence:  10,
				Code:        "1111111111",
				Description: "catch-all that must not catch",
			},
		},
	}
	classifier, err := NewClassifier(tables)
	require.NoError(t, err)

	got := classifier.Classify("anything at all", "", "")
	assert.True(t, got.Unknown())
}

func TestRepairCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "full code untouched", input: "4820102030", want: "4820102030"},
		{name: "heading pads to full width", input: "482010", want: "4820100000"},
		{name: "four digit chapter pads", input: "4820", want: "4820000000"},
		{name: "nine digits regains dropped zero", input: "482010203", want: "4820102030"},
		{name: "eleven digits left alone", input: "48201020301", want: "48201020301"},
		{name: "empty stays empty", input: "", want: ""},
		{name: "odd length left alone", input: "48201", want: "48201"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RepairCode(tt.input))
		})
	}
}
