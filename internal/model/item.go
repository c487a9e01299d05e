// Package model defines the core domain models used throughout the application.
package model

import (
	"crypto/sha256"
	"fmt"

	"github.com/shopspring/decimal"
)

// Item represents one sold unit-type within an order.
type Item struct {
	Name       string
	SKU        string // Internal product code, may be empty
	ExternalID string // Identifier assigned by the sales channel
	ProductID  string // Identifier in the remote product directory
	Quantity   int
	UnitPrice  decimal.Decimal
}

// Identifier returns the strongest identifier the item carries, preferring
// the external id over the directory product id.
func (i *Item) Identifier() string {
	if i.ExternalID != "" {
		return i.ExternalID
	}
	return i.ProductID
}

// Total returns the extended price for the item line.
func (i *Item) Total() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// GenerateHash creates a unique hash for duplicate detection.
func (i *Item) GenerateHash() string {
	data := fmt.Sprintf("%s:%d:%s:%s",
		i.Name,
		i.Quantity,
		i.UnitPrice.StringFixed(2),
		i.Identifier())
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
