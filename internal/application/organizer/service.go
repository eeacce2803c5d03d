// Package organizer provides the application layer for favorites and
// author subscriptions.
package organizer

import (
	"context"

	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements the favorite and subscription use cases.
type Service struct {
	favorites     outbound.FavoriteRepository
	subscriptions outbound.SubscriptionRepository
	recipes       outbound.RecipeRepository
	users         outbound.UserRepository
	logger        *zap.Logger
}

// NewService creates a new organizer service.
func NewService(
	favorites outbound.FavoriteRepository,
	subscriptions outbound.SubscriptionRepository,
	recipes outbound.RecipeRepository,
	users outbound.UserRepository,
	logger *zap.Logger,
) inbound.OrganizerService {
	return &Service{
		favorites:     favorites,
		subscriptions: subscriptions,
		recipes:       recipes,
		users:         users,
		logger:        logger.Named("organizer-service"),
	}
}

// AddFavorite marks a recipe as one of the user's favorites. Favoriting a
// recipe twice is a client error.
func (s *Service) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*inbound.RecipeSummaryDTO, error) {
	r, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if r == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}

	exists, err := s.favorites.Contains(ctx, userID, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("check favorite", err)
	}
	if exists {
		return nil, errors.NewAppError(errors.CodeAlreadyFavorite,
			"Recipe already in favorites", "").
			WithMetadata("recipe_id", recipeID.String())
	}

	if err := s.favorites.Add(ctx, userID, recipeID); err != nil {
		return nil, errors.NewDatabaseError("add favorite", err)
	}

	s.logger.Info("Recipe favorited",
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

// RemoveFavorite removes a recipe from the user's favorites. Removing a
// recipe that is not a favorite is a client error.
func (s *Service) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) error {
	exists, err := s.favorites.Contains(ctx, userID, recipeID)
	if err != nil {
		return errors.NewDatabaseError("check favorite", err)
	}
	if !exists {
		return errors.NewAppError(errors.CodeNotFavorite,
			"Recipe is not in favorites", "").
			WithMetadata("recipe_id", recipeID.String())
	}

	if err := s.favorites.Remove(ctx, userID, recipeID); err != nil {
		return errors.NewDatabaseError("remove favorite", err)
	}
	return nil
}

// Subscribe subscribes the user to an author's recipes. Subscribing to
// oneself or subscribing twice is a client error.
func (s *Service) Subscribe(ctx context.Context, userID, authorID uuid.UUID) (*inbound.SubscriptionDTO, error) {
	if userID == authorID {
		return nil, errors.NewAppError(errors.CodeSelfSubscription,
			"Cannot subscribe to yourself", "")
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, errors.NewDatabaseError("find author", err)
	}
	if author == nil {
		return nil, errors.NewUserNotFoundError(authorID.String())
	}

	exists, err := s.subscriptions.Contains(ctx, userID, authorID)
	if err != nil {
		return nil, errors.NewDatabaseError("check subscription", err)
	}
	if exists {
		return nil, errors.NewAppError(errors.CodeAlreadySubscribed,
			"Already subscribed to this author", "").
			WithMetadata("author_id", authorID.String())
	}

	if err := s.subscriptions.Add(ctx, userID, authorID); err != nil {
		return nil, errors.NewDatabaseError("add subscription", err)
	}

	s.logger.Info("Subscription created",
		zap.String("user_id", userID.String()),
		zap.String("author_id", authorID.String()),
	)

	return s.subscriptionDTO(ctx, authorID, author.Username(), 0)
}

// Unsubscribe removes a subscription. Removing a missing subscription is
// a client error.
func (s *Service) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	exists, err := s.subscriptions.Contains(ctx, userID, authorID)
	if err != nil {
		return errors.NewDatabaseError("check subscription", err)
	}
	if !exists {
		return errors.NewAppError(errors.CodeNotSubscribed,
			"Not subscribed to this author", "").
			WithMetadata("author_id", authorID.String())
	}

	if err := s.subscriptions.Remove(ctx, userID, authorID); err != nil {
		return errors.NewDatabaseError("remove subscription", err)
	}
	return nil
}

// ListSubscriptions returns the user's subscriptions with each author's
// recent recipes. recipesLimit caps the embedded recipes per author; zero
// means no cap.
func (s *Service) ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit int) ([]*inbound.SubscriptionDTO, error) {
	if recipesLimit < 0 {
		return nil, errors.NewFieldValidationError("recipes_limit",
			"recipes_limit must be a non-negative integer")
	}

	authorIDs, err := s.subscriptions.AuthorIDs(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list subscriptions", err)
	}

	dtos := make([]*inbound.SubscriptionDTO, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		author, err := s.users.FindByID(ctx, authorID)
		if err != nil {
			return nil, errors.NewDatabaseError("find author", err)
		}
		if author == nil {
			continue
		}
		dto, err := s.subscriptionDTO(ctx, authorID, author.Username(), recipesLimit)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}

// subscriptionDTO assembles the subscription view for one author.
func (s *Service) subscriptionDTO(ctx context.Context, authorID uuid.UUID, username string, recipesLimit int) (*inbound.SubscriptionDTO, error) {
	entities, total, err := s.recipes.Find(ctx, outbound.RecipeCriteria{
		AuthorIDs: []uuid.UUID{authorID},
		Limit:     recipesLimit,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("list author recipes", err)
	}

	summaries := make([]inbound.RecipeSummaryDTO, len(entities))
	for i, entity := range entities {
		summaries[i] = inbound.RecipeSummaryDTO{
			ID:                 entity.ID(),
			Name:               entity.Name(),
			Image:              entity.Image(),
			CookingTimeMinutes: int(entity.CookingTime().Minutes()),
		}
	}

	return &inbound.SubscriptionDTO{
		AuthorID:       authorID,
		AuthorUsername: username,
		Recipes:        summaries,
		RecipesCount:   total,
	}, nil
}
