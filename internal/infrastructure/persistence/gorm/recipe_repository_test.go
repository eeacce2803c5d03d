package gorm

import (
	"context"
	"testing"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedTag(t *testing.T, db *gorm.DB, slug string) recipe.Tag {
	t.Helper()
	model := TagModel{ID: uuid.New(), Name: slug, Color: "#" + slug[:3], Slug: slug}
	require.NoError(t, db.Create(&model).Error)
	return tagToDomain(model)
}

func buildRecipe(t *testing.T, db *gorm.DB, repo outbound.LineItemRepository, name string, authorID uuid.UUID, tags ...recipe.Tag) *recipe.Recipe {
	t.Helper()

	flour := seedMeasurement(t, db, "flour-"+uuid.NewString()[:8], "g")
	item, err := repo.GetOrCreate(context.Background(), flour.ID, mustAmount(t, "200"))
	require.NoError(t, err)

	entity, err := recipe.NewRecipe(name, "Mix and fry.", "", 20*time.Minute, authorID)
	require.NoError(t, err)
	entity.SetTags(tags)
	require.NoError(t, entity.SetLineItems([]recipe.LineItem{*item}))
	return entity
}

func TestRecipeRoundTrip(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)
	lineItems := NewLineItemRepository(db)
	ctx := context.Background()

	breakfast := seedTag(t, db, "breakfast")
	entity := buildRecipe(t, db, lineItems, "Pancakes", uuid.New(), breakfast)
	require.NoError(t, recipes.Create(ctx, entity))

	loaded, err := recipes.FindByID(ctx, entity.ID())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Pancakes", loaded.Name())
	assert.Equal(t, 20*time.Minute, loaded.CookingTime())
	require.Len(t, loaded.Tags(), 1)
	assert.Equal(t, "breakfast", loaded.Tags()[0].Slug)
	require.Len(t, loaded.LineItems(), 1)
	assert.Equal(t, "200", loaded.LineItems()[0].Amount.String())
}

func TestRecipeFindByIDMissing(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)

	loaded, err := recipes.FindByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestRecipeFindFilters(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)
	lineItems := NewLineItemRepository(db)
	ctx := context.Background()

	breakfast := seedTag(t, db, "breakfast")
	dinner := seedTag(t, db, "dinner")
	alice := uuid.New()
	bob := uuid.New()

	pancakes := buildRecipe(t, db, lineItems, "Pancakes", alice, breakfast)
	borscht := buildRecipe(t, db, lineItems, "Borscht", bob, dinner)
	require.NoError(t, recipes.Create(ctx, pancakes))
	require.NoError(t, recipes.Create(ctx, borscht))

	byTag, total, err := recipes.Find(ctx, outbound.RecipeCriteria{TagSlugs: []string{"breakfast"}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byTag, 1)
	assert.Equal(t, "Pancakes", byTag[0].Name())

	byAuthor, total, err := recipes.Find(ctx, outbound.RecipeCriteria{AuthorIDs: []uuid.UUID{bob}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, byAuthor, 1)
	assert.Equal(t, "Borscht", byAuthor[0].Name())

	// a non-nil empty id filter matches nothing
	none, total, err := recipes.Find(ctx, outbound.RecipeCriteria{IDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, none)

	all, total, err := recipes.Find(ctx, outbound.RecipeCriteria{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, all, 2)
}

func TestRecipeFindByTagCountsEachRecipeOnce(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)
	lineItems := NewLineItemRepository(db)
	ctx := context.Background()

	breakfast := seedTag(t, db, "breakfast")
	brunch := seedTag(t, db, "brunch")

	entity := buildRecipe(t, db, lineItems, "Pancakes", uuid.New(), breakfast, brunch)
	require.NoError(t, recipes.Create(ctx, entity))

	// the recipe matches both slugs, so the join yields two rows that
	// must collapse to one result and a count of one
	found, total, err := recipes.Find(ctx, outbound.RecipeCriteria{
		TagSlugs: []string{"breakfast", "brunch"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, found, 1)
	assert.Equal(t, "Pancakes", found[0].Name())
}

func TestRecipeDeleteKeepsSharedLineItems(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)
	lineItems := NewLineItemRepository(db)
	ctx := context.Background()

	flour := seedMeasurement(t, db, "flour", "g")
	shared, err := lineItems.GetOrCreate(ctx, flour.ID, mustAmount(t, "200"))
	require.NoError(t, err)

	authorID := uuid.New()
	first, err := recipe.NewRecipe("Pancakes", "Mix.", "", 20*time.Minute, authorID)
	require.NoError(t, err)
	require.NoError(t, first.SetLineItems([]recipe.LineItem{*shared}))
	second, err := recipe.NewRecipe("Crepes", "Mix thinner.", "", 25*time.Minute, authorID)
	require.NoError(t, err)
	require.NoError(t, second.SetLineItems([]recipe.LineItem{*shared}))

	require.NoError(t, recipes.Create(ctx, first))
	require.NoError(t, recipes.Create(ctx, second))

	require.NoError(t, recipes.Delete(ctx, first.ID()))

	gone, err := recipes.FindByID(ctx, first.ID())
	require.NoError(t, err)
	assert.Nil(t, gone)

	var count int64
	require.NoError(t, db.Model(&LineItemModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	remaining, err := lineItems.FindByRecipeIDs(ctx, []uuid.UUID{second.ID()})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func TestExistsByAuthorAndName(t *testing.T) {
	db := openTestDB(t)
	recipes := NewRecipeRepository(db)
	lineItems := NewLineItemRepository(db)
	ctx := context.Background()

	authorID := uuid.New()
	entity := buildRecipe(t, db, lineItems, "Pancakes", authorID)
	require.NoError(t, recipes.Create(ctx, entity))

	exists, err := recipes.ExistsByAuthorAndName(ctx, authorID, "Pancakes")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = recipes.ExistsByAuthorAndName(ctx, uuid.New(), "Pancakes")
	require.NoError(t, err)
	assert.False(t, exists)
}
