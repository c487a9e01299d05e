// Package csvio parses the CSV interchange files orders, declarations, and
// catalog products arrive in.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/inkwell-commerce/declare/internal/model"
)

// Expected header columns, by file kind.
var (
	orderHeader       = []string{"order_reference", "name", "sku", "external_id", "product_id", "quantity", "unit_price"}
	declarationHeader = []string{"order_reference", "description", "code", "origin_country", "sku", "declaration_id", "quantity", "value"}
	productHeader     = []string{"id", "name", "sku", "unit_price"}
)

// ReadOrders parses an order-items CSV and groups rows into orders by
// reference, preserving row order within each order. An exact duplicate row
// within one order is rejected: quantities live in their own column, so a
// repeated identical row means a double export, not two units.
func ReadOrders(r io.Reader) ([]model.Order, error) {
	records, err := readAll(r, orderHeader)
	if err != nil {
		return nil, err
	}

	byRef := make(map[string]*model.Order)
	seenRows := make(map[string]int)
	var refs []string
	for i, rec := range records {
		quantity, err := strconv.Atoi(rec[5])
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", i+2, rec[5])
		}
		unitPrice, err := decimal.NewFromString(rec[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit price %q", i+2, rec[6])
		}

		ref := rec[0]
		order, ok := byRef[ref]
		if !ok {
			order = &model.Order{Reference: ref, Currency: "USD"}
			byRef[ref] = order
			refs = append(refs, ref)
		}

		item := model.Item{
			Name:       rec[1],
			SKU:        rec[2],
			ExternalID: rec[3],
			ProductID:  rec[4],
			Quantity:   quantity,
			UnitPrice:  unitPrice,
		}
		key := ref + "|" + item.SKU + "|" + item.GenerateHash()
		if prev, dup := seenRows[key]; dup {
			return nil, fmt.Errorf("row %d: duplicate of row %d in order %q", i+2, prev, ref)
		}
		seenRows[key] = i + 2
		order.Items = append(order.Items, item)
	}

	orders := make([]model.Order, 0, len(refs))
	for _, ref := range refs {
		orders = append(orders, *byRef[ref])
	}
	return orders, nil
}

// ReadDeclarations parses a declaration-lines CSV, grouped by order
// reference.
func ReadDeclarations(r io.Reader) (map[string][]model.DeclarationLine, error) {
	records, err := readAll(r, declarationHeader)
	if err != nil {
		return nil, err
	}

	byRef := make(map[string][]model.DeclarationLine)
	for i, rec := range records {
		quantity, err := strconv.Atoi(rec[6])
		if err != nil || quantity <= 0 {
			return nil, fmt.Errorf("row %d: invalid quantity %q", i+2, rec[6])
		}
		value, err := decimal.NewFromString(rec[7])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid value %q", i+2, rec[7])
		}

		byRef[rec[0]] = append(byRef[rec[0]], model.DeclarationLine{
			Description:   rec[1],
			Code:          rec[2],
			OriginCountry: rec[3],
			SKU:           rec[4],
			DeclarationID: rec[5],
			Quantity:      quantity,
			Value:         value,
		})
	}
	return byRef, nil
}

// ReadProducts parses a product-catalog CSV.
func ReadProducts(r io.Reader) ([]model.Item, error) {
	records, err := readAll(r, productHeader)
	if err != nil {
		return nil, err
	}

	products := make([]model.Item, 0, len(records))
	for i, rec := range records {
		unitPrice, err := decimal.NewFromString(rec[3])
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid unit price %q", i+2, rec[3])
		}
		products = append(products, model.Item{
			ProductID: rec[0],
			Name:      rec[1],
			SKU:       rec[2],
			Quantity:  1,
			UnitPrice: unitPrice,
		})
	}
	return products, nil
}

// readAll verifies the header row and returns the remaining records.
func readAll(r io.Reader, expected []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}

	header := records[0]
	if len(header) != len(expected) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(expected), len(header))
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return nil, fmt.Errorf("expected column %q at position %d, got %q", col, i+1, header[i])
		}
	}
	return records[1:], nil
}
