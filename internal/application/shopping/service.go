// Package shopping provides the application layer for the shopping cart
// and the aggregated shopping-list export.
package shopping

import (
	"context"

	"github.com/foodgram/backend/internal/domain/shopping"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// shoppingListContentType is the media type of the export document.
const shoppingListContentType = "text/plain"

// Service implements the shopping-list use cases.
type Service struct {
	cart      outbound.CartRepository
	recipes   outbound.RecipeRepository
	lineItems outbound.LineItemRepository
	users     outbound.UserRepository
	logger    *zap.Logger
}

// NewService creates a new shopping-list service.
func NewService(
	cart outbound.CartRepository,
	recipes outbound.RecipeRepository,
	lineItems outbound.LineItemRepository,
	users outbound.UserRepository,
	logger *zap.Logger,
) inbound.ShoppingListService {
	return &Service{
		cart:      cart,
		recipes:   recipes,
		lineItems: lineItems,
		users:     users,
		logger:    logger.Named("shopping-service"),
	}
}

// AddToCart adds a recipe to the user's shopping cart. Adding a recipe
// that is already in the cart is a client error, mirroring the favorite
// semantics.
func (s *Service) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*inbound.RecipeSummaryDTO, error) {
	r, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if r == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}

	exists, err := s.cart.Contains(ctx, userID, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("check cart entry", err)
	}
	if exists {
		return nil, errors.NewAppError(errors.CodeAlreadyInCart,
			"Recipe already in shopping cart", "").
			WithMetadata("recipe_id", recipeID.String())
	}

	if err := s.cart.Add(ctx, userID, recipeID); err != nil {
		return nil, errors.NewDatabaseError("add cart entry", err)
	}

	s.logger.Info("Recipe added to shopping cart",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
	)

	return &inbound.RecipeSummaryDTO{
		ID:                 r.ID(),
		Name:               r.Name(),
		Image:              r.Image(),
		CookingTimeMinutes: int(r.CookingTime().Minutes()),
	}, nil
}

// RemoveFromCart removes a recipe from the user's shopping cart. Removing
// a recipe that is not in the cart is a client error.
func (s *Service) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	exists, err := s.cart.Contains(ctx, userID, recipeID)
	if err != nil {
		return errors.NewDatabaseError("check cart entry", err)
	}
	if !exists {
		return errors.NewAppError(errors.CodeNotInCart,
			"Recipe is not in the shopping cart", "").
			WithMetadata("recipe_id", recipeID.String())
	}

	if err := s.cart.Remove(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("remove cart entry", err)
	}

	s.logger.Info("Recipe removed from shopping cart",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()),
	)
	return nil
}

// BuildShoppingList produces the consolidated shopping list for the user:
// every ingredient line item across every cart recipe, grouped by the
// measurement's (name, unit) pair with amounts summed exactly. A recipe
// deleted since it was carted is simply absent from the association reads
// and therefore excluded. An empty cart yields an empty document.
func (s *Service) BuildShoppingList(ctx context.Context, userID uuid.UUID) (*inbound.ShoppingListFile, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if u == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	recipeIDs, err := s.cart.RecipeIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list cart recipes", err)
	}

	var lines []shopping.Line
	if len(recipeIDs) > 0 {
		items, err := s.lineItems.FindByRecipeIDs(ctx, recipeIDs)
		if err != nil {
			return nil, errors.NewDatabaseError("load cart ingredients", err)
		}
		lines = shopping.Aggregate(items)
	}

	s.logger.Info("Shopping list built",
		zap.String("user_id", userID.String()),
		zap.Int("recipes", len(recipeIDs)),
		zap.Int("lines", len(lines)),
	)

	return &inbound.ShoppingListFile{
		Filename:    shopping.Filename(u.Username()),
		ContentType: shoppingListContentType,
		Content:     []byte(shopping.Render(lines)),
	}, nil
}
