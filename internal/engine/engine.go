// Package engine orchestrates the reconciliation pipeline: load an order,
// resolve incomplete item records, classify, match, reconcile, persist. All
// decisions live in the core packages; this package only wires them to the
// collaborators.
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/inkwell-commerce/declare/internal/classify"
	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/match"
	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/reconcile"
	"github.com/inkwell-commerce/declare/internal/service"
	"github.com/inkwell-commerce/declare/internal/sku"
)

// Config holds configuration options for the reconciliation engine.
type Config struct {
	DryRun          bool
	FillMissingSKUs bool
	SynthesizeSKUs  bool
	RetryOptions    service.RetryOptions
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FillMissingSKUs: true,
		SynthesizeSKUs:  true,
	}
}

// ReconcileEngine runs the pipeline for one order at a time.
type ReconcileEngine struct {
	storage    service.Storage
	orders     service.OrderStore
	directory  service.ProductDirectory
	classifier *classify.Classifier
	matcher    *match.Matcher
	generator  *sku.Generator
	config     Config
}

// Result summarizes one reconciliation run.
type Result struct {
	Order             *model.Order
	Pairing           model.MatchResult
	Diff              []model.Change
	UnclassifiedItems []int
	Saved             bool
}

// New creates a reconciliation engine. directory may be nil; missing-SKU
// resolution is then skipped.
func New(storage service.Storage, orders service.OrderStore, directory service.ProductDirectory, classifier *classify.Classifier, matcher *match.Matcher, generator *sku.Generator, config Config) *ReconcileEngine {
	return &ReconcileEngine{
		storage:    storage,
		orders:     orders,
		directory:  directory,
		classifier: classifier,
		matcher:    matcher,
		generator:  generator,
		config:     config,
	}
}

// ReconcileOrder runs the full pipeline for one order reference.
func (e *ReconcileEngine) ReconcileOrder(ctx context.Context, reference string) (*Result, error) {
	order, err := e.orders.Get(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %q: %w", reference, err)
	}

	slog.Info("Reconciling order",
		"reference", reference,
		"items", len(order.Items),
		"declaration_lines", len(order.DeclarationLines))

	if e.config.FillMissingSKUs && e.directory != nil {
		e.resolveMissingSKUs(ctx, order)
	}

	if e.config.SynthesizeSKUs && e.generator != nil && !e.config.DryRun {
		if err := e.synthesizeMissingSKUs(ctx, order); err != nil {
			return nil, err
		}
	}

	pairing, err := e.matcher.Match(order.DeclarationLines, order.Items)
	if err != nil {
		return nil, fmt.Errorf("matching order %q: %w", reference, err)
	}

	classifications, unclassified := e.classifyItems(order, pairing)

	merged, err := reconcile.Reconcile(order.DeclarationLines, order.Items, classifications, pairing)
	if err != nil {
		return nil, fmt.Errorf("reconciling order %q: %w", reference, err)
	}

	result := &Result{
		Order:             order,
		Pairing:           pairing,
		Diff:              merged.Diff,
		UnclassifiedItems: unclassified,
	}

	if e.config.DryRun || len(merged.Diff) == 0 {
		order.DeclarationLines = merged.Merged
		return result, nil
	}

	order.DeclarationLines = merged.Merged
	saved, err := e.orders.Save(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to save order %q: %w", reference, err)
	}
	result.Order = saved
	result.Saved = true

	if err := e.storage.SaveChanges(ctx, reference, merged.Diff); err != nil {
		return nil, fmt.Errorf("failed to record changes for order %q: %w", reference, err)
	}

	slog.Info("Order reconciled",
		"reference", reference,
		"changes", len(merged.Diff),
		"unmatched_lines", len(pairing.UnmatchedDeclarations),
		"unmatched_items", len(pairing.UnmatchedItems))

	return result, nil
}

// classifyItems classifies every item, feeding the classifier the stale
// code of the item's paired declaration line so the code-table fallback has
// something to chew on when free text resolves nothing.
func (e *ReconcileEngine) classifyItems(order *model.Order, pairing model.MatchResult) ([]model.Classification, []int) {
	classifications := make([]model.Classification, len(order.Items))
	var unclassified []int

	for i := range order.Items {
		existingCode := ""
		if pair, ok := pairing.PairForItem(i); ok {
			existingCode = order.DeclarationLines[pair.DeclarationIndex].Code
		}
		classifications[i] = e.classifier.Classify(order.Items[i].Name, "", existingCode)
		if classifications[i].Unknown() {
			unclassified = append(unclassified, i)
			slog.Warn("Item left unclassified for manual review",
				"order", order.Reference,
				"item", order.Items[i].Name)
		}
	}
	return classifications, unclassified
}

// resolveMissingSKUs fills empty item SKUs from the product directory, by
// id when the item carries one, otherwise by ranked name search. Failures
// here degrade matching quality but never abort the run.
func (e *ReconcileEngine) resolveMissingSKUs(ctx context.Context, order *model.Order) {
	for i := range order.Items {
		item := &order.Items[i]
		if item.SKU != "" {
			continue
		}

		var found *model.Item
		err := common.WithRetry(ctx, func() error {
			var lookupErr error
			found, lookupErr = e.lookupItem(ctx, item)
			return lookupErr
		}, e.config.RetryOptions)
		if err != nil {
			slog.Warn("Product directory lookup failed",
				"order", order.Reference,
				"item", item.Name,
				"error", err)
			continue
		}

		if found != nil && found.SKU != "" {
			item.SKU = found.SKU
			if item.ProductID == "" {
				item.ProductID = found.ProductID
			}
		}
	}
}

// synthesizeMissingSKUs issues new codes for items the directory could not
// resolve. One used-code set spans the whole order so codes synthesized in
// the same batch cannot collide with each other.
func (e *ReconcileEngine) synthesizeMissingSKUs(ctx context.Context, order *model.Order) error {
	var used *sku.UsedSet

	for i := range order.Items {
		item := &order.Items[i]
		if item.SKU != "" {
			continue
		}

		if used == nil {
			codes, err := e.storage.ListUsedCodes(ctx)
			if err != nil {
				return fmt.Errorf("failed to load used codes: %w", err)
			}
			used = sku.NewUsedSet(codes...)
		}

		code := e.generator.Synthesize(sku.Attributes{Name: item.Name}, used.Contains)
		used.Add(code)
		if err := e.storage.AddUsedCode(ctx, code); err != nil {
			return fmt.Errorf("failed to record synthesized code: %w", err)
		}
		item.SKU = code

		slog.Info("Synthesized product code",
			"order", order.Reference,
			"item", item.Name,
			"code", code)
	}
	return nil
}

func (e *ReconcileEngine) lookupItem(ctx context.Context, item *model.Item) (*model.Item, error) {
	if item.ProductID != "" {
		return e.directory.LookupByID(ctx, item.ProductID)
	}

	candidates, err := e.directory.SearchByName(ctx, item.Name)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	return &candidates[0], nil
}
