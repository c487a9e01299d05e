package model

// ClassificationStatus indicates how an item was classified.
type ClassificationStatus string

// Classification status constants.
const (
	StatusUnclassified     ClassificationStatus = "UNCLASSIFIED"
	StatusClassifiedByRule ClassificationStatus = "CLASSIFIED_BY_RULE"
	StatusClassifiedByCode ClassificationStatus = "CLASSIFIED_BY_CODE"
)

// Classification is a resolved customs identity for an item: the canonical
// trade-classification code, a human-readable description, and the country
// of origin the rule table assigns to that product type.
type Classification struct {
	Code          string
	Description   string
	OriginCountry string
	Status        ClassificationStatus
}

// Unknown reports whether the classifier failed to resolve the item.
func (c Classification) Unknown() bool {
	return c.Status == StatusUnclassified || c.Status == ""
}
