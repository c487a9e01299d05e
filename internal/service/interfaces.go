// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/inkwell-commerce/declare/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Order operations
	SaveOrder(ctx context.Context, order *model.Order) error
	GetOrder(ctx context.Context, reference string) (*model.Order, error)
	ListOrderReferences(ctx context.Context) ([]string, error)

	// Product catalog operations
	SaveProducts(ctx context.Context, products []model.Item) error
	GetProductByID(ctx context.Context, id string) (*model.Item, error)
	ListProducts(ctx context.Context) ([]model.Item, error)

	// Used-code registry operations
	ListUsedCodes(ctx context.Context) ([]string, error)
	AddUsedCode(ctx context.Context, code string) error

	// Change log operations
	SaveChanges(ctx context.Context, orderReference string, changes []model.Change) error
	GetChanges(ctx context.Context, orderReference string) ([]model.Change, error)
}

// OrderStore is the remote order system the pipeline reads from and writes
// back to. The local SQLite storage doubles as an OrderStore in the CLI;
// deployments against a live commerce API supply their own.
type OrderStore interface {
	Get(ctx context.Context, reference string) (*model.Order, error)
	Save(ctx context.Context, order *model.Order) (*model.Order, error)
}

// ProductDirectory resolves incomplete item records before matching. Both
// operations are optional collaborators: the engine runs without them, just
// with weaker identifier-tier coverage.
type ProductDirectory interface {
	LookupByID(ctx context.Context, id string) (*model.Item, error)
	SearchByName(ctx context.Context, text string) ([]model.Item, error)
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
