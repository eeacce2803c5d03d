// Package inbound defines the interfaces for inbound ports (primary/driving adapters).
// These are the use cases the application exposes to its transport layer.
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines recipe use cases.
type RecipeService interface {
	CreateRecipe(ctx context.Context, cmd CreateRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error
	GetRecipe(ctx context.Context, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, q RecipeQuery) ([]*RecipeDTO, int, error)
}

// ShoppingListService defines shopping-cart and export use cases.
type ShoppingListService interface {
	AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeSummaryDTO, error)
	RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error
	// BuildShoppingList aggregates ingredient quantities across every
	// recipe in the user's cart into a downloadable plain-text document.
	// An empty cart yields an empty document.
	BuildShoppingList(ctx context.Context, userID uuid.UUID) (*ShoppingListFile, error)
}

// OrganizerService defines favorite and subscription use cases.
type OrganizerService interface {
	AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeSummaryDTO, error)
	RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error
	Subscribe(ctx context.Context, userID, authorID uuid.UUID) (*SubscriptionDTO, error)
	Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error
	ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit int) ([]*SubscriptionDTO, error)
}

// CatalogService exposes the tag list and the measurement catalog.
type CatalogService interface {
	ListTags(ctx context.Context) ([]TagDTO, error)
	GetTag(ctx context.Context, slug string) (*TagDTO, error)
	SearchMeasurements(ctx context.Context, namePrefix string) ([]MeasurementDTO, error)
	GetMeasurement(ctx context.Context, id uuid.UUID) (*MeasurementDTO, error)
}

// UserService defines account use cases.
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*UserDTO, error)
	// VerifyCredentials checks an email and password pair and returns the
	// matching user. Failures are indistinguishable between unknown email
	// and wrong password.
	VerifyCredentials(ctx context.Context, email, password string) (*UserDTO, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
}

// Commands

// IngredientCommand references one catalog measurement with a raw amount.
// The amount stays a string until the registry parses it, so validation
// errors carry the original input.
type IngredientCommand struct {
	MeasurementID uuid.UUID
	Amount        string
}

// CreateRecipeCommand carries the data to create a recipe.
type CreateRecipeCommand struct {
	AuthorID           uuid.UUID
	Name               string
	Text               string
	Image              string
	CookingTimeMinutes int
	TagIDs             []uuid.UUID
	Ingredients        []IngredientCommand
}

// UpdateRecipeCommand carries a partial recipe update. Nil fields are left
// unchanged.
type UpdateRecipeCommand struct {
	RecipeID           uuid.UUID
	UserID             uuid.UUID
	Name               *string
	Text               *string
	Image              *string
	CookingTimeMinutes *int
	TagIDs             []uuid.UUID
	Ingredients        []IngredientCommand
}

// RecipeQuery carries recipe list filters. The requesting user is only
// needed for the favorited / in-cart filters.
type RecipeQuery struct {
	TagSlugs           []string
	AuthorIDs          []uuid.UUID
	OnlyFavorited      bool
	OnlyInShoppingCart bool
	UserID             uuid.UUID
	Offset             int
	Limit              int
}

// RegisterCommand carries the data to create an account.
type RegisterCommand struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// DTOs

// UserDTO is the API view of an account. It never carries credentials.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name,omitempty"`
	LastName  string    `json:"last_name,omitempty"`
}

// MeasurementDTO is the API view of a catalog entry.
type MeasurementDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Unit string    `json:"measurement_unit"`
}

// LineItemDTO is the API view of a resolved ingredient line item.
type LineItemDTO struct {
	ID          uuid.UUID      `json:"id"`
	Measurement MeasurementDTO `json:"measurement"`
	Amount      string         `json:"amount"`
}

// TagDTO is the API view of a tag.
type TagDTO struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// RecipeDTO is the full API view of a recipe.
type RecipeDTO struct {
	ID                 uuid.UUID     `json:"id"`
	AuthorID           *uuid.UUID    `json:"author,omitempty"`
	Name               string        `json:"name"`
	Text               string        `json:"text"`
	Image              string        `json:"image,omitempty"`
	CookingTimeMinutes int           `json:"cooking_time"`
	Tags               []TagDTO      `json:"tags"`
	Ingredients        []LineItemDTO `json:"ingredients"`
	CreatedAt          time.Time     `json:"created_at"`
}

// RecipeSummaryDTO is the short recipe view returned by cart and favorite
// operations.
type RecipeSummaryDTO struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Image              string    `json:"image,omitempty"`
	CookingTimeMinutes int       `json:"cooking_time"`
}

// SubscriptionDTO is the API view of a subscription and the author's
// recent recipes.
type SubscriptionDTO struct {
	AuthorID       uuid.UUID          `json:"author"`
	AuthorUsername string             `json:"author_username"`
	Recipes        []RecipeSummaryDTO `json:"recipes"`
	RecipesCount   int                `json:"recipes_count"`
}

// ShoppingListFile is the aggregated shopping-list export, delivered as a
// downloadable attachment. It is derived fresh on every request and never
// stored.
type ShoppingListFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
