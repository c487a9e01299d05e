// Package directory implements the ProductDirectory collaborator over the
// local product catalog. The pipeline uses it to pre-fill missing item SKUs
// before matching; deployments against a live directory API replace it.
package directory

import (
	"context"
	"fmt"
	"sort"

	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/service"
	"github.com/inkwell-commerce/declare/internal/similarity"
)

// Defaults for name search.
const (
	defaultMinScore   = 0.5
	defaultMaxResults = 10
)

// CatalogDirectory resolves products from storage, ranking name searches
// with the similarity scorer.
type CatalogDirectory struct {
	storage    service.Storage
	scorer     *similarity.Scorer
	minScore   float64
	maxResults int
}

// New creates a directory over the given storage.
func New(storage service.Storage, scorer *similarity.Scorer) *CatalogDirectory {
	return &CatalogDirectory{
		storage:    storage,
		scorer:     scorer,
		minScore:   defaultMinScore,
		maxResults: defaultMaxResults,
	}
}

// LookupByID implements service.ProductDirectory.
func (d *CatalogDirectory) LookupByID(ctx context.Context, id string) (*model.Item, error) {
	return d.storage.GetProductByID(ctx, id)
}

// SearchByName implements service.ProductDirectory. Results are ordered by
// descending similarity to the query; candidates below the minimum score
// are omitted entirely rather than returned as noise.
func (d *CatalogDirectory) SearchByName(ctx context.Context, text string) ([]model.Item, error) {
	products, err := d.storage.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	type scored struct {
		item  model.Item
		score float64
	}
	matches := make([]scored, 0, len(products))
	for _, p := range products {
		score := d.scorer.Score(text, p.Name).Score
		if score >= d.minScore {
			matches = append(matches, scored{item: p, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > d.maxResults {
		matches = matches[:d.maxResults]
	}

	items := make([]model.Item, len(matches))
	for i, m := range matches {
		items[i] = m.item
	}
	return items, nil
}
