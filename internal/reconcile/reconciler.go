// Package reconcile merges freshly classified and matched data into an
// existing declaration-line set without destructive loss. Lines are updated
// in place or appended, never deleted; every mutation is reported in a diff.
package reconcile

import (
	"fmt"

	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
)

// Result is the merged line set plus the changes that produced it.
type Result struct {
	Merged []model.DeclarationLine
	Diff   []model.Change
}

// Reconcile applies per-item classifications to the existing lines through
// the pairing. classifications is aligned with items by index; unknown
// classifications leave their lines untouched so the caller can route them
// to manual review.
//
// The merged output never contains fewer lines than the input. Shrinkage
// would mean silently under-reporting a trade declaration, so it aborts as
// a contract violation instead of returning a corrupted result.
func Reconcile(existing []model.DeclarationLine, items []model.Item, classifications []model.Classification, pairing model.MatchResult) (Result, error) {
	if len(classifications) != len(items) {
		return Result{}, fmt.Errorf("%w: %d classifications for %d items", common.ErrInvalidConfig, len(classifications), len(items))
	}

	merged := make([]model.DeclarationLine, len(existing))
	copy(merged, existing)

	var diff []model.Change

	for _, pair := range pairing.Pairs {
		if pair.DeclarationIndex < 0 || pair.DeclarationIndex >= len(merged) {
			return Result{}, fmt.Errorf("%w: declaration index %d out of range", common.ErrDoubleAssignment, pair.DeclarationIndex)
		}
		if pair.ItemIndex < 0 || pair.ItemIndex >= len(items) {
			return Result{}, fmt.Errorf("%w: item index %d out of range", common.ErrDoubleAssignment, pair.ItemIndex)
		}
		diff = append(diff, updateLine(&merged[pair.DeclarationIndex], pair.DeclarationIndex, &items[pair.ItemIndex], classifications[pair.ItemIndex])...)
	}

	for _, ii := range pairing.UnmatchedItems {
		cls := classifications[ii]
		if cls.Unknown() {
			continue
		}
		line := lineForItem(&items[ii], cls)
		if containsDuplicate(merged, &line) {
			continue
		}
		merged = append(merged, line)
		diff = append(diff, model.Change{
			Kind:      model.ChangeAppend,
			LineIndex: len(merged) - 1,
			After:     line.Description,
		})
	}

	if len(merged) < len(existing) {
		return Result{}, fmt.Errorf("%w: %d lines in, %d out", common.ErrLineShrinkage, len(existing), len(merged))
	}

	return Result{Merged: merged, Diff: diff}, nil
}

// updateLine applies a classification to a matched line in place. The
// opaque declaration identifier is preserved; only fields the classifier is
// authoritative over change, and an empty SKU is filled from the item since
// adding information is always safe.
func updateLine(line *model.DeclarationLine, idx int, item *model.Item, cls model.Classification) []model.Change {
	if cls.Unknown() {
		return nil
	}

	var changes []model.Change

	if !model.CodesEqual(line.Code, cls.Code) {
		changes = append(changes, model.Change{
			Kind: model.ChangeUpdate, LineIndex: idx, Field: "code",
			Before: line.Code, After: cls.Code,
		})
		line.Code = cls.Code
	}

	if line.Description != cls.Description {
		changes = append(changes, model.Change{
			Kind: model.ChangeUpdate, LineIndex: idx, Field: "description",
			Before: line.Description, After: cls.Description,
		})
		line.Description = cls.Description
	}

	if cls.OriginCountry != "" && line.OriginCountry != cls.OriginCountry {
		changes = append(changes, model.Change{
			Kind: model.ChangeUpdate, LineIndex: idx, Field: "origin_country",
			Before: line.OriginCountry, After: cls.OriginCountry,
		})
		line.OriginCountry = cls.OriginCountry
	}

	if line.SKU == "" && item.SKU != "" {
		changes = append(changes, model.Change{
			Kind: model.ChangeUpdate, LineIndex: idx, Field: "sku",
			After: item.SKU,
		})
		line.SKU = item.SKU
	}

	return changes
}

// lineForItem builds a fresh declaration line for a classified item that
// matched nothing.
func lineForItem(item *model.Item, cls model.Classification) model.DeclarationLine {
	return model.DeclarationLine{
		Description:   cls.Description,
		Code:          cls.Code,
		OriginCountry: cls.OriginCountry,
		SKU:           item.SKU,
		Quantity:      item.Quantity,
		Value:         item.Total(),
	}
}

// containsDuplicate guards against runaway duplication across repeated
// runs: an appended line identical in description, code, origin, value, and
// quantity to one already present is suppressed.
func containsDuplicate(lines []model.DeclarationLine, candidate *model.DeclarationLine) bool {
	fp := candidate.Fingerprint()
	for i := range lines {
		if lines[i].Fingerprint() == fp {
			return true
		}
	}
	return false
}
