package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/inkwell-commerce/declare/internal/model"
)

// Money parses a decimal literal for fixtures; invalid literals panic,
// which is acceptable in test setup.
func Money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// SampleOrder returns a three-item stationery order whose declaration lines
// disagree with the items in the ways production data does: a stale code, a
// paraphrased description, and a missing line.
func SampleOrder(reference string) *model.Order {
	return &model.Order{
		Reference: reference,
		Currency:  "USD",
		Items: []model.Item{
			{
				Name:      "2026 Daily Planner - Hardcover",
				SKU:       "DPL-A5-HC",
				Quantity:  1,
				UnitPrice: Money("42.00"),
			},
			{
				Name:      "A5 Dotted Notebook",
				Quantity:  2,
				UnitPrice: Money("18.50"),
			},
			{
				Name:      "Washi Tape Set of 3",
				Quantity:  1,
				UnitPrice: Money("9.00"),
			},
		},
		DeclarationLines: []model.DeclarationLine{
			{
				Description:   "Planner",
				Code:          "4820.10.2099",
				SKU:           "DPL-A5-HC",
				DeclarationID: "DECL-001",
				Quantity:      1,
				Value:         Money("42.00"),
			},
			{
				Description:   "Notebook (bound journal)",
				DeclarationID: "DECL-002",
				Quantity:      2,
				Value:         Money("37.00"),
			},
		},
	}
}
