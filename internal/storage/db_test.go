package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-import/internal/stockimport/model"
)

func openTest(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestLocationsKeepInsertOrder(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)

	require.NoError(t, db.SaveLocation(ctx, model.Location{ID: "L2", Name: "Аура"}))
	require.NoError(t, db.SaveLocation(ctx, model.Location{ID: "L1", Name: "Мега", Address: "ул. Ленина, 1"}))
	require.NoError(t, db.SaveLocation(ctx, model.Location{ID: "L2", Name: "Аура Молл"}))

	locs, err := db.Locations(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Location{
		{ID: "L2", Name: "Аура Молл"},
		{ID: "L1", Name: "Мега", Address: "ул. Ленина, 1"},
	}, locs)
}

func TestApplyChanges(t *testing.T) {
	ctx := context.Background()
	db := openTest(t)
	price := 1500.0

	a := model.Product{ID: "a", Name: "Chanel", Size: model.Size5, Type: model.TypePerfume, LocationID: "L1", Quantity: 3, Price: &price}
	b := model.Product{ID: "b", Name: "Dior", Size: model.SizeCar, Type: model.TypeOther, LocationID: "L1", Quantity: 8}
	require.NoError(t, db.Apply(ctx, []model.Change{
		{Kind: model.ChangeInsert, Product: a},
		{Kind: model.ChangeInsert, Product: b},
	}))

	a.Quantity = 7
	b.Quantity = 0
	require.NoError(t, db.Apply(ctx, []model.Change{
		{Kind: model.ChangeUpdate, Product: a},
		{Kind: model.ChangeZero, Product: b},
	}))

	got, err := db.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Product{a, b}, got)

	require.NoError(t, db.Apply(ctx, nil))
}
