package model

import "time"

// Order is the aggregate the pipeline moves through: the sold items and the
// declaration lines that describe the same physical goods, independently
// keyed and possibly disagreeing on identifiers, counts, or ordering.
type Order struct {
	Reference        string
	Currency         string
	CreatedAt        time.Time
	Items            []Item
	DeclarationLines []DeclarationLine
}
