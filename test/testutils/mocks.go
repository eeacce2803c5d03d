// Package testutils provides shared mocks and factories for tests.
package testutils

import (
	"context"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/domain/user"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockMeasurementRepository mocks outbound.MeasurementRepository.
type MockMeasurementRepository struct {
	mock.Mock
}

func (m *MockMeasurementRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Measurement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Measurement), args.Error(1)
}

func (m *MockMeasurementRepository) SearchByNamePrefix(ctx context.Context, prefix string) ([]*recipe.Measurement, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Measurement), args.Error(1)
}

func (m *MockMeasurementRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMeasurementRepository) SaveBatch(ctx context.Context, measurements []*recipe.Measurement) error {
	args := m.Called(ctx, measurements)
	return args.Error(0)
}

// MockLineItemRepository mocks outbound.LineItemRepository.
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) GetOrCreate(ctx context.Context, measurementID uuid.UUID, amount recipe.Amount) (*recipe.LineItem, error) {
	args := m.Called(ctx, measurementID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.LineItem), args.Error(1)
}

func (m *MockLineItemRepository) FindByRecipeIDs(ctx context.Context, recipeIDs []uuid.UUID) ([]recipe.LineItem, error) {
	args := m.Called(ctx, recipeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.LineItem), args.Error(1)
}

// MockRecipeRepository mocks outbound.RecipeRepository.
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) Find(ctx context.Context, criteria outbound.RecipeCriteria) ([]*recipe.Recipe, int, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*recipe.Recipe), args.Int(1), args.Error(2)
}

func (m *MockRecipeRepository) ExistsByAuthorAndName(ctx context.Context, authorID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, authorID, name)
	return args.Bool(0), args.Error(1)
}

// MockTagRepository mocks outbound.TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context) ([]recipe.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, slug string) (*recipe.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Tag), args.Error(1)
}

func (m *MockTagRepository) SaveBatch(ctx context.Context, tags []recipe.Tag) error {
	args := m.Called(ctx, tags)
	return args.Error(0)
}

// MockUserRepository mocks outbound.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockAssociationRepository mocks the cart, favorite and subscription
// repositories, which share the same shape.
type MockAssociationRepository struct {
	mock.Mock
}

func (m *MockAssociationRepository) Add(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockAssociationRepository) Remove(ctx context.Context, userID, targetID uuid.UUID) error {
	args := m.Called(ctx, userID, targetID)
	return args.Error(0)
}

func (m *MockAssociationRepository) Contains(ctx context.Context, userID, targetID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAssociationRepository) RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAssociationRepository) AuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockCacheRepository mocks outbound.CacheRepository.
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
