// Package rules owns the static configuration the engine runs against: the
// ordered classification rule table, the code and code-prefix tables, and
// the code-synthesis facet dictionaries. Defaults cover the stationery
// catalog; hosts may override any table from a YAML file.
package rules

import (
	"github.com/inkwell-commerce/declare/internal/classify"
	"github.com/inkwell-commerce/declare/internal/sku"
)

// Precedence bands. Size- or variant-qualified rules sit above their bare
// keyword, inserts outrank notebooks at equal qualification, and category
// fallbacks sit below everything keyword-driven. The order is strict and
// total; NewClassifier rejects duplicate precedences.
const (
	precedenceQualified = 700
	precedenceKeyword   = 500
	precedenceCategory  = 200
)

// DefaultClassificationRules is the built-in rule cascade.
func DefaultClassificationRules() []classify.Rule {
	return []classify.Rule{
		// Qualified planner rules. A year anywhere in the title plus the
		// planner keyword marks a dated planner regardless of stale codes.
		{
			Name:          "dated planner",
			Precedence:    precedenceQualified + 30,
			Keywords:      []string{"planner"},
			Pattern:       `(^| )20[0-9]{2}( |$)`,
			Code:          "4820102010",
			Description:   "Dated paper planner (diary)",
			OriginCountry: "VN",
		},
		{
			Name:          "planner insert a5",
			Precedence:    precedenceQualified + 20,
			Keywords:      []string{"insert", "a5"},
			Code:          "4820102060",
			Description:   "A5 planner insert, printed paper",
			OriginCountry: "VN",
		},
		{
			Name:          "planner insert pocket",
			Precedence:    precedenceQualified + 10,
			Keywords:      []string{"insert", "pocket"},
			Code:          "4820102060",
			Description:   "Pocket planner insert, printed paper",
			OriginCountry: "VN",
		},

		// Bare keyword rules. Insert outranks notebook: an "insert for
		// notebooks" is an insert.
		{
			Name:          "planner",
			Precedence:    precedenceKeyword + 90,
			Keywords:      []string{"planner"},
			Code:          "4820102010",
			Description:   "Paper planner (diary)",
			OriginCountry: "VN",
		},
		{
			Name:          "insert",
			Precedence:    precedenceKeyword + 80,
			Keywords:      []string{"insert"},
			Code:          "4820102060",
			Description:   "Planner insert, printed paper",
			OriginCountry: "VN",
		},
		{
			Name:          "notebook",
			Precedence:    precedenceKeyword + 70,
			Keywords:      []string{"notebook"},
			Code:          "4820102030",
			Description:   "Bound paper notebook",
			OriginCountry: "VN",
		},
		{
			Name:          "journal",
			Precedence:    precedenceKeyword + 65,
			Keywords:      []string{"journal"},
			Code:          "4820102030",
			Description:   "Bound paper notebook",
			OriginCountry: "VN",
		},
		{
			Name:          "notepad",
			Precedence:    precedenceKeyword + 60,
			Keywords:      []string{"notepad"},
			Code:          "4820102040",
			Description:   "Paper memo pad",
			OriginCountry: "VN",
		},
		{
			Name:          "sticker",
			Precedence:    precedenceKeyword + 50,
			Keywords:      []string{"sticker"},
			Code:          "4911914040",
			Description:   "Printed paper stickers",
			OriginCountry: "CN",
		},
		{
			Name:          "washi tape",
			Precedence:    precedenceKeyword + 45,
			Keywords:      []string{"washi"},
			Code:          "4811412100",
			Description:   "Decorative self-adhesive paper tape",
			OriginCountry: "JP",
		},
		{
			Name:          "fountain pen",
			Precedence:    precedenceKeyword + 42,
			Keywords:      []string{"fountain", "pen"},
			Code:          "9608300030",
			Description:   "Fountain pen",
			OriginCountry: "JP",
		},
		// Pencil above pen: every pencil title contains "pen".
		{
			Name:          "pencil",
			Precedence:    precedenceKeyword + 40,
			Keywords:      []string{"pencil"},
			Code:          "9609100000",
			Description:   "Pencil with lead",
			OriginCountry: "CN",
		},
		{
			Name:          "pen",
			Precedence:    precedenceKeyword + 38,
			Keywords:      []string{"pen"},
			Code:          "9608101000",
			Description:   "Ball point pen",
			OriginCountry: "JP",
		},
		{
			Name:          "envelope",
			Precedence:    precedenceKeyword + 30,
			Keywords:      []string{"envelope"},
			Code:          "4817100000",
			Description:   "Paper envelopes",
			OriginCountry: "VN",
		},
		{
			Name:          "greeting card",
			Precedence:    precedenceKeyword + 25,
			Keywords:      []string{"card"},
			Code:          "4909002000",
			Description:   "Printed greeting card",
			OriginCountry: "VN",
		},
		{
			Name:          "cover",
			Precedence:    precedenceKeyword + 20,
			Keywords:      []string{"cover"},
			Code:          "4820504000",
			Description:   "Book cover",
			OriginCountry: "VN",
		},
		{
			Name:          "charm",
			Precedence:    precedenceKeyword + 10,
			Keywords:      []string{"charm"},
			Code:          "7117905500",
			Description:   "Imitation jewellery charm",
			OriginCountry: "CN",
		},

		// Category fallbacks for titles that name nothing recognizable.
		{
			Name:          "category planners",
			Precedence:    precedenceCategory + 30,
			Category:      "planners",
			Code:          "4820102010",
			Description:   "Paper planner (diary)",
			OriginCountry: "VN",
		},
		{
			Name:          "category notebooks",
			Precedence:    precedenceCategory + 20,
			Category:      "notebooks",
			Code:          "4820102030",
			Description:   "Bound paper notebook",
			OriginCountry: "VN",
		},
		{
			Name:          "category writing instruments",
			Precedence:    precedenceCategory + 10,
			Category:      "writing instruments",
			Code:          "9608101000",
			Description:   "Ball point pen",
			OriginCountry: "JP",
		},
	}
}

// DefaultCodeTable resolves full 10-digit codes that appear on historical
// declarations.
func DefaultCodeTable() map[string]classify.CodeEntry {
	return map[string]classify.CodeEntry{
		"4820102010": {Code: "4820102010", Description: "Paper planner (diary)", OriginCountry: "VN"},
		"4820102030": {Code: "4820102030", Description: "Bound paper notebook", OriginCountry: "VN"},
		"4820102040": {Code: "4820102040", Description: "Paper memo pad", OriginCountry: "VN"},
		"4820102060": {Code: "4820102060", Description: "Planner insert, printed paper", OriginCountry: "VN"},
		"4820504000": {Code: "4820504000", Description: "Book cover", OriginCountry: "VN"},
		"4817100000": {Code: "4817100000", Description: "Paper envelopes", OriginCountry: "VN"},
		"4909002000": {Code: "4909002000", Description: "Printed greeting card", OriginCountry: "VN"},
		"4911914040": {Code: "4911914040", Description: "Printed paper stickers", OriginCountry: "CN"},
		"4811412100": {Code: "4811412100", Description: "Decorative self-adhesive paper tape", OriginCountry: "JP"},
		"9608101000": {Code: "9608101000", Description: "Ball point pen", OriginCountry: "JP"},
		"9608300030": {Code: "9608300030", Description: "Fountain pen", OriginCountry: "JP"},
		"9609100000": {Code: "9609100000", Description: "Pencil with lead", OriginCountry: "CN"},
		"7117905500": {Code: "7117905500", Description: "Imitation jewellery charm", OriginCountry: "CN"},
	}
}

// DefaultPrefixTable resolves code families when the full code is unknown.
// Longer prefixes are probed before shorter ones.
func DefaultPrefixTable() map[string]classify.CodeEntry {
	return map[string]classify.CodeEntry{
		"48201020": {Code: "4820102030", Description: "Bound paper notebook", OriginCountry: "VN"},
		"482010":   {Code: "4820102030", Description: "Bound paper notebook", OriginCountry: "VN"},
		"482050":   {Code: "4820504000", Description: "Book cover", OriginCountry: "VN"},
		"4817":     {Code: "4817100000", Description: "Paper envelopes", OriginCountry: "VN"},
		"4909":     {Code: "4909002000", Description: "Printed greeting card", OriginCountry: "VN"},
		"9608":     {Code: "9608101000", Description: "Ball point pen", OriginCountry: "JP"},
		"9609":     {Code: "9609100000", Description: "Pencil with lead", OriginCountry: "CN"},
	}
}

// DefaultCategorySynonyms canonicalizes sales-channel category labels
// before category-equality rules run.
func DefaultCategorySynonyms() map[string]string {
	return map[string]string{
		"agendas":          "planners",
		"diaries":          "planners",
		"planner":          "planners",
		"journals":         "notebooks",
		"notebook":         "notebooks",
		"pens":             "writing instruments",
		"pens and pencils": "writing instruments",
		"writing supplies": "writing instruments",
	}
}

// DefaultSKURuleSet is the built-in code-synthesis configuration.
func DefaultSKURuleSet() sku.RuleSet {
	return sku.RuleSet{
		Separator:      "-",
		MaxLength:      20,
		FallbackWidth:  4,
		ImperfectToken: "IMP",
		Dictionaries: map[sku.Facet]map[string]string{
			sku.FacetBrand: {
				"inkwell": "IW",
			},
			sku.FacetType: {
				"weekly planner": "WPL",
				"daily planner":  "DPL",
				"planner":        "PLN",
				"notebook":       "NTB",
				"journal":        "NTB",
				"insert":         "INS",
				"notepad":        "PAD",
				"sticker":        "STK",
				"washi":          "WSH",
				"pencil":         "PCL",
				"pen":            "PEN",
				"envelope":       "ENV",
				"card":           "CRD",
				"cover":          "CVR",
				"charm":          "CHM",
			},
			sku.FacetSize: {
				"personal wide": "PW",
				"a5":            "A5",
				"a6":            "A6",
				"b5":            "B5",
				"b6":            "B6",
				"pocket":        "PKT",
				"personal":      "PER",
			},
			sku.FacetSubtype: {
				"dot":     "DOT",
				"dotted":  "DOT",
				"lined":   "LIN",
				"blank":   "BLK",
				"grid":    "GRD",
				"weekly":  "WK",
				"daily":   "DY",
				"monthly": "MO",
				"undated": "UND",
			},
			sku.FacetCollection: {
				"heritage": "HER",
				"meadow":   "MDW",
				"voyager":  "VGR",
				"studio":   "STU",
			},
			sku.FacetColor: {
				"forest green": "FGR",
				"navy":         "NVY",
				"black":        "BLK",
				"blush":        "BSH",
				"sand":         "SND",
				"olive":        "OLV",
			},
			sku.FacetMaterial: {
				"vegan leather": "VL",
				"leather":       "LTH",
				"linen":         "LNN",
				"kraft":         "KFT",
			},
			sku.FacetPack: {
				"set of 12": "12PK",
				"set of 3":  "3PK",
				"set of 5":  "5PK",
				"twin pack": "2PK",
			},
		},
	}
}
