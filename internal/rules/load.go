package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inkwell-commerce/declare/internal/classify"
	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/sku"
)

// Tables bundles every rule table the engine consumes.
type Tables struct {
	Classification   classify.Tables
	SKU              sku.RuleSet
	Synonyms         map[string]string
	DistinctiveTerms []string
}

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Classification: classify.Tables{
			Rules:            DefaultClassificationRules(),
			CodeTable:        DefaultCodeTable(),
			PrefixTable:      DefaultPrefixTable(),
			CategorySynonyms: DefaultCategorySynonyms(),
		},
		SKU: DefaultSKURuleSet(),
	}
}

// fileFormat is the YAML shape of a rule-table override file. Sections that
// are omitted keep their defaults.
type fileFormat struct {
	ClassificationRules []classify.Rule   `yaml:"classification_rules"`
	CodeTable           []codeEntry       `yaml:"code_table"`
	PrefixTable         []prefixEntry     `yaml:"prefix_table"`
	CategorySynonyms    map[string]string `yaml:"category_synonyms"`
	Synonyms            map[string]string `yaml:"synonyms"`
	DistinctiveTerms    []string          `yaml:"distinctive_terms"`
	SKU                 *skuFormat        `yaml:"sku"`
}

type codeEntry struct {
	Code          string `yaml:"code"`
	Description   string `yaml:"description"`
	OriginCountry string `yaml:"origin_country"`
}

type prefixEntry struct {
	Prefix        string `yaml:"prefix"`
	Code          string `yaml:"code"`
	Description   string `yaml:"description"`
	OriginCountry string `yaml:"origin_country"`
}

type skuFormat struct {
	Separator      string                       `yaml:"separator"`
	MaxLength      int                          `yaml:"max_length"`
	FallbackWidth  int                          `yaml:"fallback_width"`
	ImperfectToken string                       `yaml:"imperfect_token"`
	Dictionaries   map[string]map[string]string `yaml:"dictionaries"`
}

// facetNames maps YAML dictionary section names to facets.
var facetNames = map[string]sku.Facet{
	"brand":      sku.FacetBrand,
	"type":       sku.FacetType,
	"size":       sku.FacetSize,
	"subtype":    sku.FacetSubtype,
	"collection": sku.FacetCollection,
	"color":      sku.FacetColor,
	"material":   sku.FacetMaterial,
	"pack":       sku.FacetPack,
}

// Load reads a YAML override file on top of the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (Tables, error) {
	tables := Default()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Tables{}, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if len(file.ClassificationRules) > 0 {
		if err := validateRules(file.ClassificationRules); err != nil {
			return Tables{}, err
		}
		tables.Classification.Rules = file.ClassificationRules
	}

	if len(file.CodeTable) > 0 {
		table := make(map[string]classify.CodeEntry, len(file.CodeTable))
		for _, e := range file.CodeTable {
			clean := model.CleanCode(e.Code)
			if len(clean) != model.CanonicalCodeLength {
				return Tables{}, fmt.Errorf("%w: code %q is not %d digits", common.ErrInvalidConfig, e.Code, model.CanonicalCodeLength)
			}
			table[clean] = classify.CodeEntry{Code: clean, Description: e.Description, OriginCountry: e.OriginCountry}
		}
		tables.Classification.CodeTable = table
	}

	if len(file.PrefixTable) > 0 {
		table := make(map[string]classify.CodeEntry, len(file.PrefixTable))
		for _, e := range file.PrefixTable {
			prefix := model.CleanCode(e.Prefix)
			if prefix == "" || len(prefix) >= model.CanonicalCodeLength {
				return Tables{}, fmt.Errorf("%w: invalid code prefix %q", common.ErrInvalidConfig, e.Prefix)
			}
			table[prefix] = classify.CodeEntry{Code: model.CleanCode(e.Code), Description: e.Description, OriginCountry: e.OriginCountry}
		}
		tables.Classification.PrefixTable = table
	}

	if len(file.CategorySynonyms) > 0 {
		tables.Classification.CategorySynonyms = file.CategorySynonyms
	}
	if len(file.Synonyms) > 0 {
		tables.Synonyms = file.Synonyms
	}
	if len(file.DistinctiveTerms) > 0 {
		tables.DistinctiveTerms = file.DistinctiveTerms
	}

	if file.SKU != nil {
		if file.SKU.Separator != "" {
			tables.SKU.Separator = file.SKU.Separator
		}
		if file.SKU.MaxLength > 0 {
			tables.SKU.MaxLength = file.SKU.MaxLength
		}
		if file.SKU.FallbackWidth > 0 {
			tables.SKU.FallbackWidth = file.SKU.FallbackWidth
		}
		if file.SKU.ImperfectToken != "" {
			tables.SKU.ImperfectToken = file.SKU.ImperfectToken
		}
		if len(file.SKU.Dictionaries) > 0 {
			dicts := make(map[sku.Facet]map[string]string, len(file.SKU.Dictionaries))
			for name, dict := range file.SKU.Dictionaries {
				facet, ok := facetNames[name]
				if !ok {
					return Tables{}, fmt.Errorf("%w: unknown sku facet %q", common.ErrInvalidConfig, name)
				}
				dicts[facet] = dict
			}
			tables.SKU.Dictionaries = dicts
		}
	}

	return tables, nil
}

// validateRules rejects rule tables the classifier would refuse or that
// would misbehave silently: duplicate precedence, unresolvable regex, or a
// rule with no output code.
func validateRules(list []classify.Rule) error {
	seen := make(map[int]string, len(list))
	for _, r := range list {
		if r.Code == "" || r.Description == "" {
			return fmt.Errorf("%w: rule %q has no code or description", common.ErrInvalidConfig, r.Name)
		}
		if prev, dup := seen[r.Precedence]; dup {
			return fmt.Errorf("%w: rules %q and %q share precedence %d", common.ErrInvalidConfig, prev, r.Name, r.Precedence)
		}
		seen[r.Precedence] = r.Name
		if r.Pattern != "" {
			if _, err := common.MatchRegex(r.Pattern, ""); err != nil {
				return fmt.Errorf("%w: rule %q pattern: %v", common.ErrInvalidConfig, r.Name, err)
			}
		}
	}
	return nil
}
