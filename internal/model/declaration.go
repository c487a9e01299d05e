package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DeclarationLine represents one taxed entry on a trade declaration.
type DeclarationLine struct {
	Description   string
	Code          string // Trade-classification code, may be empty or stale
	OriginCountry string
	SKU           string
	DeclarationID string // Opaque identifier assigned by the declaration system
	Quantity      int
	Value         decimal.Decimal
}

// CanonicalCodeLength is the number of digits in a full trade-classification
// code as used by the classification tables.
const CanonicalCodeLength = 10

// CleanCode strips every non-digit character from a trade-classification
// code. Codes are compared for equality on their digits only; formatting
// with dots or spaces varies between carriers.
func CleanCode(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CodesEqual reports whether two codes refer to the same classification
// after stripping formatting.
func CodesEqual(a, b string) bool {
	return CleanCode(a) != "" && CleanCode(a) == CleanCode(b)
}

// Fingerprint returns a stable identity string used to suppress exact
// duplicate lines across repeated reconciliation runs.
func (d *DeclarationLine) Fingerprint() string {
	return strings.ToLower(strings.Join(strings.Fields(d.Description), " ")) +
		"|" + CleanCode(d.Code) +
		"|" + d.OriginCountry +
		"|" + d.Value.StringFixed(2) +
		"|" + strconv.Itoa(d.Quantity)
}
