package gorm

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlitedriver "gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlitedriver.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the shared in-memory database alive and
	// serializes concurrent writers
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&UserModel{},
		&MeasurementModel{},
		&LineItemModel{},
		&TagModel{},
		&RecipeModel{},
		&CartEntryModel{},
		&FavoriteModel{},
		&SubscriptionModel{},
	))
	return db
}

func seedMeasurement(t *testing.T, db *gorm.DB, name, unit string) recipe.Measurement {
	t.Helper()
	model := MeasurementModel{ID: uuid.New(), Name: name, Unit: unit}
	require.NoError(t, db.Create(&model).Error)
	return measurementToDomain(model)
}

func mustAmount(t *testing.T, raw string) recipe.Amount {
	t.Helper()
	amount, err := recipe.ParseAmount(raw)
	require.NoError(t, err)
	return amount
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")
	amount := mustAmount(t, "200")

	first, err := repo.GetOrCreate(ctx, flour.ID, amount)
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, flour.ID, amount)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&LineItemModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetOrCreateTreatsScaleVariantsAsEqual(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")

	first, err := repo.GetOrCreate(ctx, flour.ID, mustAmount(t, "5"))
	require.NoError(t, err)
	second, err := repo.GetOrCreate(ctx, flour.ID, mustAmount(t, "5.000"))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "5", second.Amount.String())
}

func TestGetOrCreateKeepsDistinctPairsApart(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")
	sugar := seedMeasurement(t, db, "sugar", "g")

	a, err := repo.GetOrCreate(ctx, flour.ID, mustAmount(t, "200"))
	require.NoError(t, err)
	b, err := repo.GetOrCreate(ctx, flour.ID, mustAmount(t, "300"))
	require.NoError(t, err)
	c, err := repo.GetOrCreate(ctx, sugar.ID, mustAmount(t, "200"))
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)

	var count int64
	require.NoError(t, db.Model(&LineItemModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestGetOrCreateConcurrentResolvers(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")
	amount := mustAmount(t, "200")

	const workers = 16
	ids := make([]uuid.UUID, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			item, err := repo.GetOrCreate(ctx, flour.ID, amount)
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = item.ID
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	for _, id := range ids[1:] {
		assert.Equal(t, ids[0], id)
	}

	var count int64
	require.NoError(t, db.Model(&LineItemModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindByRecipeIDsCountsPerAssociation(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")
	shared, err := repo.GetOrCreate(ctx, flour.ID, mustAmount(t, "200"))
	require.NoError(t, err)

	// two recipes reference the identical deduplicated line item
	recipeIDs := make([]uuid.UUID, 2)
	for i := range recipeIDs {
		model := RecipeModel{
			ID:                 uuid.New(),
			Name:               fmt.Sprintf("Pancakes %d", i),
			Text:               "Mix and fry.",
			CookingTimeMinutes: 20,
			LineItems:          []LineItemModel{{ID: shared.ID}},
		}
		require.NoError(t, db.Omit("LineItems.*").Create(&model).Error)
		recipeIDs[i] = model.ID
	}

	items, err := repo.FindByRecipeIDs(ctx, recipeIDs)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, shared.ID, items[0].ID)
	assert.Equal(t, shared.ID, items[1].ID)
}

func TestFindByRecipeIDsEmpty(t *testing.T) {
	db := openTestDB(t)
	repo := NewLineItemRepository(db)

	items, err := repo.FindByRecipeIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
