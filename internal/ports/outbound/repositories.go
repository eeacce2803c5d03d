// Package outbound defines the interfaces for outbound ports (secondary/driven adapters).
// These are the interfaces the application uses to interact with external systems.
package outbound

import (
	"context"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/domain/user"
	"github.com/google/uuid"
)

// MeasurementRepository provides read access to the measurement catalog.
// Catalog rows are reference data: SaveBatch exists only for the
// administrative seed load, and nothing ever mutates existing rows.
type MeasurementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Measurement, error)
	// SearchByNamePrefix lists measurements whose name starts with the
	// given prefix, case-insensitively, ordered by name. An empty prefix
	// lists the whole catalog.
	SearchByNamePrefix(ctx context.Context, prefix string) ([]*recipe.Measurement, error)
	Count(ctx context.Context) (int64, error)
	SaveBatch(ctx context.Context, measurements []*recipe.Measurement) error
}

// LineItemRepository is the persistence side of the ingredient registry.
type LineItemRepository interface {
	// GetOrCreate returns the unique line item for the (measurement,
	// amount) pair, inserting it if absent. The implementation must be
	// atomic with respect to the store's uniqueness constraint: a lost
	// insert race resolves by reading back the winner's row, never by
	// surfacing a constraint violation.
	GetOrCreate(ctx context.Context, measurementID uuid.UUID, amount recipe.Amount) (*recipe.LineItem, error)
	// FindByRecipeIDs returns line items across the given recipes, one
	// element per recipe association: a line item shared by several of the
	// recipes appears once per recipe that references it.
	FindByRecipeIDs(ctx context.Context, recipeIDs []uuid.UUID) ([]recipe.LineItem, error)
}

// RecipeRepository defines the interface for recipe persistence.
type RecipeRepository interface {
	Create(ctx context.Context, r *recipe.Recipe) error
	Update(ctx context.Context, r *recipe.Recipe) error
	Delete(ctx context.Context, id uuid.UUID) error
	// FindByID returns (nil, nil) when no recipe exists with the given id.
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	Find(ctx context.Context, criteria RecipeCriteria) ([]*recipe.Recipe, int, error)
	ExistsByAuthorAndName(ctx context.Context, authorID uuid.UUID, name string) (bool, error)
}

// RecipeCriteria defines filter parameters for recipe listing.
type RecipeCriteria struct {
	TagSlugs  []string
	AuthorIDs []uuid.UUID
	// IDs restricts the result to the given recipes; used for the
	// favorited / in-cart filters. A non-nil empty slice yields no rows.
	IDs    []uuid.UUID
	Offset int
	Limit  int
}

// TagRepository defines the interface for tag persistence.
type TagRepository interface {
	List(ctx context.Context) ([]recipe.Tag, error)
	FindBySlug(ctx context.Context, slug string) (*recipe.Tag, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipe.Tag, error)
	SaveBatch(ctx context.Context, tags []recipe.Tag) error
}

// UserRepository defines the interface for user persistence.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// CartRepository associates users with the recipes they intend to cook.
type CartRepository interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	Contains(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// FavoriteRepository associates users with their favorite recipes.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, recipeID uuid.UUID) error
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error
	Contains(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// SubscriptionRepository associates users with the authors they follow.
type SubscriptionRepository interface {
	Add(ctx context.Context, userID, authorID uuid.UUID) error
	Remove(ctx context.Context, userID, authorID uuid.UUID) error
	Contains(ctx context.Context, userID, authorID uuid.UUID) (bool, error)
	AuthorIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// CacheRepository defines the interface for caching operations.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
