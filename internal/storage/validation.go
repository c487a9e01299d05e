package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/inkwell-commerce/declare/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrInvalidOrder = errors.New("invalid order")
	ErrInvalidItem  = errors.New("invalid item")
	ErrInvalidLine  = errors.New("invalid declaration line")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateOrder validates an order and its nested collections.
func validateOrder(order *model.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order", ErrNilParameter)
	}
	if strings.TrimSpace(order.Reference) == "" {
		return fmt.Errorf("%w: missing reference", ErrInvalidOrder)
	}

	for i := range order.Items {
		if err := validateItem(&order.Items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}
	for i := range order.DeclarationLines {
		if err := validateLine(&order.DeclarationLines[i]); err != nil {
			return fmt.Errorf("declaration line at index %d: %w", i, err)
		}
	}
	return nil
}

// validateItem validates a single order item.
func validateItem(item *model.Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidItem)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
	}
	if item.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: unit price cannot be negative", ErrInvalidItem)
	}
	return nil
}

// validateLine validates a single declaration line.
func validateLine(line *model.DeclarationLine) error {
	if strings.TrimSpace(line.Description) == "" {
		return fmt.Errorf("%w: missing description", ErrInvalidLine)
	}
	if line.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidLine)
	}
	if line.Value.IsNegative() {
		return fmt.Errorf("%w: value cannot be negative", ErrInvalidLine)
	}
	return nil
}
