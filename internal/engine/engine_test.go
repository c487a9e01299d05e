package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-commerce/declare/internal/classify"
	"github.com/inkwell-commerce/declare/internal/directory"
	"github.com/inkwell-commerce/declare/internal/engine"
	"github.com/inkwell-commerce/declare/internal/match"
	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/rules"
	"github.com/inkwell-commerce/declare/internal/similarity"
	"github.com/inkwell-commerce/declare/internal/sku"
	"github.com/inkwell-commerce/declare/internal/storage"
	"github.com/inkwell-commerce/declare/internal/testutil"
)

func newTestEngine(t *testing.T, db *storage.SQLiteStorage, config engine.Config) *engine.ReconcileEngine {
	t.Helper()

	tables := rules.Default()
	classifier, err := classify.NewClassifier(tables.Classification)
	require.NoError(t, err)

	scorer := similarity.NewScorer()
	matcher := match.NewMatcher(scorer)
	generator := sku.NewGenerator(tables.SKU)
	dir := directory.New(db, scorer)

	return engine.New(db, db, dir, classifier, matcher, generator, config)
}

func seedSampleOrder(t *testing.T, db *storage.SQLiteStorage) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, db.SaveOrder(ctx, testutil.SampleOrder("IW-1001")))
	require.NoError(t, db.SaveProducts(ctx, []model.Item{
		{Name: "A5 Dotted Notebook", SKU: "NTB-A5-DOT", ProductID: "prod-notebook", Quantity: 1, UnitPrice: testutil.Money("18.50")},
	}))
}

func TestReconcileOrder_FullPipeline(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedSampleOrder(t, db)

	eng := newTestEngine(t, db, engine.DefaultConfig())
	result, err := eng.ReconcileOrder(context.Background(), "IW-1001")
	require.NoError(t, err)

	assert.True(t, result.Saved)
	assert.Empty(t, result.UnclassifiedItems)
	require.Len(t, result.Order.DeclarationLines, 3)

	// The stale planner line: code repaired, description canonicalized, the
	// opaque declaration identifier untouched.
	planner := result.Order.DeclarationLines[0]
	assert.Equal(t, "4820102010", planner.Code)
	assert.Equal(t, "Dated paper planner (diary)", planner.Description)
	assert.Equal(t, "VN", planner.OriginCountry)
	assert.Equal(t, "DECL-001", planner.DeclarationID)

	// The paraphrased notebook line: fuzzy-matched, classified, and its SKU
	// filled from the catalog lookup.
	notebook := result.Order.DeclarationLines[1]
	assert.Equal(t, "4820102030", notebook.Code)
	assert.Equal(t, "Bound paper notebook", notebook.Description)
	assert.Equal(t, "NTB-A5-DOT", notebook.SKU)
	assert.Equal(t, "DECL-002", notebook.DeclarationID)

	// The washi tape had no line at all: appended with a synthesized SKU.
	washi := result.Order.DeclarationLines[2]
	assert.Equal(t, "4811412100", washi.Code)
	assert.Equal(t, "Decorative self-adhesive paper tape", washi.Description)
	assert.Equal(t, "JP", washi.OriginCountry)
	assert.Equal(t, "WSH-3PK", washi.SKU)
	assert.Equal(t, 1, washi.Quantity)
	assert.True(t, testutil.Money("9.00").Equal(washi.Value))

	// Pairing used the strongest applicable tier per line.
	first, ok := result.Pairing.PairForDeclaration(0)
	require.True(t, ok)
	assert.Equal(t, model.MatchByIdentifier, first.Source)
	second, ok := result.Pairing.PairForDeclaration(1)
	require.True(t, ok)
	assert.Equal(t, model.MatchByFuzzyName, second.Source)

	// The synthesized code is registered against future synthesis runs.
	codes, err := db.ListUsedCodes(context.Background())
	require.NoError(t, err)
	assert.Contains(t, codes, "WSH-3PK")

	// Every applied change lands in the audit log.
	changes, err := db.GetChanges(context.Background(), "IW-1001")
	require.NoError(t, err)
	assert.Len(t, changes, len(result.Diff))
	assert.NotEmpty(t, changes)
}

func TestReconcileOrder_SecondRunIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedSampleOrder(t, db)

	eng := newTestEngine(t, db, engine.DefaultConfig())
	ctx := context.Background()

	first, err := eng.ReconcileOrder(ctx, "IW-1001")
	require.NoError(t, err)
	require.True(t, first.Saved)

	second, err := eng.ReconcileOrder(ctx, "IW-1001")
	require.NoError(t, err)
	assert.False(t, second.Saved)
	assert.Empty(t, second.Diff)
	assert.Equal(t, first.Order.DeclarationLines, second.Order.DeclarationLines)

	// With SKUs persisted, every pairing collapses to the identifier tier.
	for _, pair := range second.Pairing.Pairs {
		assert.Equal(t, model.MatchByIdentifier, pair.Source)
	}
}

func TestReconcileOrder_DryRunWritesNothing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedSampleOrder(t, db)

	config := engine.DefaultConfig()
	config.DryRun = true
	eng := newTestEngine(t, db, config)

	result, err := eng.ReconcileOrder(context.Background(), "IW-1001")
	require.NoError(t, err)
	assert.False(t, result.Saved)
	assert.NotEmpty(t, result.Diff)

	// The stored order is untouched.
	stored, err := db.GetOrder(context.Background(), "IW-1001")
	require.NoError(t, err)
	assert.Len(t, stored.DeclarationLines, 2)
	assert.Equal(t, "4820.10.2099", stored.DeclarationLines[0].Code)

	// Dry runs synthesize nothing.
	codes, err := db.ListUsedCodes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, codes)

	changes, err := db.GetChanges(context.Background(), "IW-1001")
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestReconcileOrder_UnclassifiedItemsReported(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	order := &model.Order{
		Reference: "IW-5001",
		Currency:  "USD",
		Items: []model.Item{
			{Name: "Inexplicable Artifact", SKU: "ART-01", Quantity: 1, UnitPrice: testutil.Money("5.00")},
		},
	}
	require.NoError(t, db.SaveOrder(ctx, order))

	eng := newTestEngine(t, db, engine.DefaultConfig())
	result, err := eng.ReconcileOrder(ctx, "IW-5001")
	require.NoError(t, err)

	assert.Equal(t, []int{0}, result.UnclassifiedItems)
	assert.False(t, result.Saved)
	assert.Empty(t, result.Order.DeclarationLines, "unclassified items must not be appended")
}

func TestReconcileOrder_UnknownReference(t *testing.T) {
	db := testutil.SetupTestDB(t)

	eng := newTestEngine(t, db, engine.DefaultConfig())
	_, err := eng.ReconcileOrder(context.Background(), "IW-9999")
	require.Error(t, err)
}

func TestReconcileOrder_WithoutCollaborators(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	require.NoError(t, db.SaveOrder(ctx, testutil.SampleOrder("IW-1001")))

	tables := rules.Default()
	classifier, err := classify.NewClassifier(tables.Classification)
	require.NoError(t, err)
	matcher := match.NewMatcher(similarity.NewScorer())

	// No directory and no generator: the pipeline still reconciles, just
	// without SKU resolution.
	eng := engine.New(db, db, nil, classifier, matcher, nil, engine.DefaultConfig())
	result, err := eng.ReconcileOrder(ctx, "IW-1001")
	require.NoError(t, err)

	assert.True(t, result.Saved)
	require.Len(t, result.Order.DeclarationLines, 3)
	assert.Empty(t, result.Order.DeclarationLines[2].SKU)
}
