// Package sku synthesizes compact, collision-free product codes from item
// attributes when a record arrives without one.
package sku

// Facet identifies one dictionary in a RuleSet, in segment order.
type Facet int

// Facets, in the order their segments appear in a synthesized code. The
// size segment is inserted immediately after the type segment regardless of
// which attribute carried it.
const (
	FacetBrand Facet = iota
	FacetType
	FacetSize
	FacetSubtype
	FacetCollection
	FacetColor
	FacetMaterial
	FacetPack
)

// RuleSet holds the per-facet dictionaries mapping normalized substrings to
// short code tokens, plus the composition limits. Loaded once by the host
// and passed in; never mutated by the generator.
type RuleSet struct {
	Dictionaries   map[Facet]map[string]string
	ImperfectToken string // Appended last when the item is flagged imperfect
	Separator      string
	MaxLength      int
	FallbackWidth  int // Width the derived fallback token is padded to
}

// Attributes are the structured facts known about an item. Free-text
// fields; empty fields simply contribute no segment. Name is the raw title,
// used both as a secondary lookup source and for the fallback token.
type Attributes struct {
	Name       string
	Brand      string
	Type       string
	Subtype    string
	Collection string
	Size       string
	Color      string
	Material   string
	Pack       string
	Imperfect  bool
}

// facetSource returns the attribute text a facet's dictionary is matched
// against. A facet with no dedicated attribute falls back to the full name,
// so dictionary phrases can still be picked out of the title.
func (a *Attributes) facetSource(f Facet) string {
	var s string
	switch f {
	case FacetBrand:
		s = a.Brand
	case FacetType:
		s = a.Type
	case FacetSize:
		s = a.Size
	case FacetSubtype:
		s = a.Subtype
	case FacetCollection:
		s = a.Collection
	case FacetColor:
		s = a.Color
	case FacetMaterial:
		s = a.Material
	case FacetPack:
		s = a.Pack
	}
	if s == "" {
		return a.Name
	}
	return s
}
