package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByNamePrefix(t *testing.T) {
	db := openTestDB(t)
	repo := NewMeasurementRepository(db)
	ctx := context.Background()

	seedMeasurement(t, db, "flour", "g")
	seedMeasurement(t, db, "flaxseed", "g")
	seedMeasurement(t, db, "sugar", "g")

	found, err := repo.SearchByNamePrefix(ctx, "fl")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "flaxseed", found[0].Name)
	assert.Equal(t, "flour", found[1].Name)

	all, err := repo.SearchByNamePrefix(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestSearchByNamePrefixEscapesWildcards(t *testing.T) {
	db := openTestDB(t)
	repo := NewMeasurementRepository(db)
	ctx := context.Background()

	seedMeasurement(t, db, "egg_white", "pcs")
	seedMeasurement(t, db, "eggplant", "pcs")

	// the underscore is a literal character, not a single-char wildcard
	found, err := repo.SearchByNamePrefix(ctx, "egg_")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "egg_white", found[0].Name)

	none, err := repo.SearchByNamePrefix(ctx, "egg%")
	require.NoError(t, err)
	assert.Empty(t, none)
}
