package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-commerce/declare/internal/common"
	"github.com/inkwell-commerce/declare/internal/model"
	"github.com/inkwell-commerce/declare/internal/storage"
	"github.com/inkwell-commerce/declare/internal/testutil"
)

func TestSaveOrderAndGetOrder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	order := testutil.SampleOrder("IW-1001")
	require.NoError(t, db.SaveOrder(ctx, order))

	loaded, err := db.GetOrder(ctx, "IW-1001")
	require.NoError(t, err)

	assert.Equal(t, "IW-1001", loaded.Reference)
	assert.Equal(t, "USD", loaded.Currency)
	require.Len(t, loaded.Items, 3)
	require.Len(t, loaded.DeclarationLines, 2)

	// Stored position order must survive the roundtrip; positional matching
	// depends on it.
	assert.Equal(t, "2026 Daily Planner - Hardcover", loaded.Items[0].Name)
	assert.Equal(t, "A5 Dotted Notebook", loaded.Items[1].Name)
	assert.Equal(t, "Washi Tape Set of 3", loaded.Items[2].Name)
	assert.True(t, testutil.Money("18.50").Equal(loaded.Items[1].UnitPrice))

	assert.Equal(t, "DECL-001", loaded.DeclarationLines[0].DeclarationID)
	assert.Equal(t, "4820.10.2099", loaded.DeclarationLines[0].Code)
	assert.True(t, testutil.Money("37.00").Equal(loaded.DeclarationLines[1].Value))
}

func TestSaveOrderReplacesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	order := testutil.SampleOrder("IW-1001")
	require.NoError(t, db.SaveOrder(ctx, order))

	order.Items = order.Items[:1]
	order.DeclarationLines[0].Code = "4820102010"
	require.NoError(t, db.SaveOrder(ctx, order))

	loaded, err := db.GetOrder(ctx, "IW-1001")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, "4820102010", loaded.DeclarationLines[0].Code)
}

func TestGetOrderNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)

	_, err := db.GetOrder(context.Background(), "NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSaveOrderValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		order *model.Order
	}{
		{name: "nil order", order: nil},
		{name: "missing reference", order: &model.Order{Currency: "USD"}},
		{
			name: "item without name",
			order: &model.Order{Reference: "IW-1", Items: []model.Item{
				{Quantity: 1, UnitPrice: testutil.Money("1.00")},
			}},
		},
		{
			name: "item with zero quantity",
			order: &model.Order{Reference: "IW-1", Items: []model.Item{
				{Name: "Pen", Quantity: 0, UnitPrice: testutil.Money("1.00")},
			}},
		},
		{
			name: "line with negative value",
			order: &model.Order{Reference: "IW-1", DeclarationLines: []model.DeclarationLine{
				{Description: "Pen", Quantity: 1, Value: testutil.Money("-1.00")},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, db.SaveOrder(ctx, tt.order))
		})
	}
}

func TestListOrderReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	refs, err := db.ListOrderReferences(ctx)
	require.NoError(t, err)
	assert.Empty(t, refs)

	require.NoError(t, db.SaveOrder(ctx, testutil.SampleOrder("IW-1001")))
	require.NoError(t, db.SaveOrder(ctx, testutil.SampleOrder("IW-1002")))

	refs, err = db.ListOrderReferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"IW-1001", "IW-1002"}, refs)
}

func TestOrderStoreRoundtrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	saved, err := db.Save(ctx, testutil.SampleOrder("IW-2001"))
	require.NoError(t, err)

	loaded, err := db.Get(ctx, "IW-2001")
	require.NoError(t, err)
	assert.Equal(t, saved.Items, loaded.Items)
	assert.Equal(t, saved.DeclarationLines, loaded.DeclarationLines)
}

func TestProducts(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	products := []model.Item{
		{Name: "A5 Dotted Notebook", SKU: "NTB-A5-DOT", Quantity: 1, UnitPrice: testutil.Money("18.50")},
		{Name: "2026 Daily Planner - Hardcover", SKU: "DPL-A5-HC", ProductID: "prod-1", Quantity: 1, UnitPrice: testutil.Money("42.00")},
	}
	require.NoError(t, db.SaveProducts(ctx, products))

	got, err := db.GetProductByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "DPL-A5-HC", got.SKU)
	assert.Equal(t, 1, got.Quantity)
	assert.True(t, testutil.Money("42.00").Equal(got.UnitPrice))

	all, err := db.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	for _, p := range all {
		assert.NotEmpty(t, p.ProductID, "every product is assigned an id on save")
	}

	// Upsert by id.
	require.NoError(t, db.SaveProducts(ctx, []model.Item{
		{Name: "2026 Daily Planner - Linen", SKU: "DPL-A5-LNN", ProductID: "prod-1", Quantity: 1, UnitPrice: testutil.Money("44.00")},
	}))
	got, err = db.GetProductByID(ctx, "prod-1")
	require.NoError(t, err)
	assert.Equal(t, "DPL-A5-LNN", got.SKU)

	_, err = db.GetProductByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUsedCodes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	codes, err := db.ListUsedCodes(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)

	require.NoError(t, db.AddUsedCode(ctx, "NTB-A5-DOT"))
	require.NoError(t, db.AddUsedCode(ctx, "DPL-A5-HC"))
	require.NoError(t, db.AddUsedCode(ctx, "NTB-A5-DOT"))

	codes, err = db.ListUsedCodes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"DPL-A5-HC", "NTB-A5-DOT"}, codes)
}

func TestChanges(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	changes := []model.Change{
		{Kind: model.ChangeUpdate, LineIndex: 0, Field: "code", Before: "4820.10.2099", After: "4820102010"},
		{Kind: model.ChangeAppend, LineIndex: 2, After: "Decorative self-adhesive paper tape"},
	}
	require.NoError(t, db.SaveChanges(ctx, "IW-1001", changes))

	got, err := db.GetChanges(ctx, "IW-1001")
	require.NoError(t, err)
	assert.Equal(t, changes, got)

	got, err = db.GetChanges(ctx, "IW-9999")
	require.NoError(t, err)
	assert.Empty(t, got)

	// Saving nothing is a no-op, not an error.
	require.NoError(t, db.SaveChanges(ctx, "IW-1001", nil))
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	require.NoError(t, db.Migrate(context.Background()))
}

func TestNewSQLiteStorageCreatesFile(t *testing.T) {
	path := t.TempDir() + "/declare.db"

	db, err := storage.NewSQLiteStorage(path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, db.Migrate(context.Background()))
	require.NoError(t, db.SaveOrder(context.Background(), testutil.SampleOrder("IW-3001")))

	loaded, err := db.GetOrder(context.Background(), "IW-3001")
	require.NoError(t, err)
	assert.Len(t, loaded.Items, 3)
}
