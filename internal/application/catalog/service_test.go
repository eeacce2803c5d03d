package catalog

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/foodgram/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*testutils.MockTagRepository, *testutils.MockMeasurementRepository, *Service) {
	t.Helper()
	tags := new(testutils.MockTagRepository)
	measurements := new(testutils.MockMeasurementRepository)
	svc := NewService(tags, measurements, testutils.NewTestLogger()).(*Service)
	return tags, measurements, svc
}

func TestSearchMeasurements(t *testing.T) {
	_, measurements, svc := newTestService(t)

	flourG := &recipe.Measurement{Name: "flour", Unit: "g"}
	flourKg := &recipe.Measurement{Name: "flour", Unit: "kg"}
	measurements.On("SearchByNamePrefix", mock.Anything, "flo").
		Return([]*recipe.Measurement{flourG, flourKg}, nil)

	dtos, err := svc.SearchMeasurements(context.Background(), "flo")
	require.NoError(t, err)
	require.Len(t, dtos, 2)
	// same component under different units stays distinct
	assert.Equal(t, "g", dtos[0].Unit)
	assert.Equal(t, "kg", dtos[1].Unit)
}

func TestGetTagUnknownSlug(t *testing.T) {
	tags, _, svc := newTestService(t)
	tags.On("FindBySlug", mock.Anything, "nope").Return(nil, nil)

	_, err := svc.GetTag(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeTagNotFound))
}

func TestListTags(t *testing.T) {
	tags, _, svc := newTestService(t)
	tags.On("List", mock.Anything).Return([]recipe.Tag{testutils.NewTag(), testutils.NewTag()}, nil)

	dtos, err := svc.ListTags(context.Background())
	require.NoError(t, err)
	assert.Len(t, dtos, 2)
}
