// Package recipe provides the application layer for recipe management.
// This implements the use cases defined in the inbound ports.
package recipe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// lineItemResolver resolves one (measurement, amount) reference through
// the ingredient registry.
type lineItemResolver interface {
	Resolve(ctx context.Context, measurementID uuid.UUID, rawAmount string) (*recipe.LineItem, error)
}

// Service implements the recipe use cases.
type Service struct {
	recipes   outbound.RecipeRepository
	tags      outbound.TagRepository
	users     outbound.UserRepository
	favorites outbound.FavoriteRepository
	cart      outbound.CartRepository
	registry  lineItemResolver
	cache     outbound.CacheRepository
	// listCacheTTL bounds how long the cached default listing page may
	// serve between invalidations.
	listCacheTTL time.Duration
	// uniqueNamePerAuthor makes duplicate recipe names per author a
	// conflict. Duplicate-permitting is the default; prevention is an
	// explicit policy, not inferred behavior.
	uniqueNamePerAuthor bool
	logger              *zap.Logger
}

// NewService creates a new recipe service.
func NewService(
	recipes outbound.RecipeRepository,
	tags outbound.TagRepository,
	users outbound.UserRepository,
	favorites outbound.FavoriteRepository,
	cart outbound.CartRepository,
	registry lineItemResolver,
	cache outbound.CacheRepository,
	listCacheTTL time.Duration,
	uniqueNamePerAuthor bool,
	logger *zap.Logger,
) inbound.RecipeService {
	return &Service{
		recipes:             recipes,
		tags:                tags,
		users:               users,
		favorites:           favorites,
		cart:                cart,
		registry:            registry,
		cache:               cache,
		listCacheTTL:        listCacheTTL,
		uniqueNamePerAuthor: uniqueNamePerAuthor,
		logger:              logger.Named("recipe-service"),
	}
}

// CreateRecipe creates a new recipe, resolving every ingredient reference
// through the registry so identical (measurement, amount) pairs reuse the
// same line item rows.
func (s *Service) CreateRecipe(ctx context.Context, cmd inbound.CreateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Creating new recipe",
		zap.String("name", cmd.Name),
		zap.String("author_id", cmd.AuthorID.String()),
	)

	exists, err := s.users.Exists(ctx, cmd.AuthorID)
	if err != nil {
		return nil, errors.NewDatabaseError("check user existence", err)
	}
	if !exists {
		return nil, errors.NewUserNotFoundError(cmd.AuthorID.String())
	}

	if s.uniqueNamePerAuthor {
		duplicate, err := s.recipes.ExistsByAuthorAndName(ctx, cmd.AuthorID, cmd.Name)
		if err != nil {
			return nil, errors.NewDatabaseError("check duplicate recipe", err)
		}
		if duplicate {
			return nil, errors.NewAppError(errors.CodeDuplicateRecipe,
				"Duplicate recipe", recipe.ErrDuplicateRecipeName.Error())
		}
	}

	entity, err := recipe.NewRecipe(
		cmd.Name, cmd.Text, cmd.Image,
		time.Duration(cmd.CookingTimeMinutes)*time.Minute,
		cmd.AuthorID,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	tags, err := s.resolveTags(ctx, cmd.TagIDs)
	if err != nil {
		return nil, err
	}
	entity.SetTags(tags)

	items, err := s.resolveIngredients(ctx, cmd.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := entity.SetLineItems(items); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.recipes.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}
	s.invalidateListCache(ctx)

	s.logger.Info("Recipe created successfully",
		zap.String("recipe_id", entity.ID().String()),
		zap.String("name", entity.Name()),
	)

	return entityToDTO(entity), nil
}

// UpdateRecipe applies a partial update to an existing recipe. Only the
// author may update it.
func (s *Service) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	entity, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(cmd.RecipeID.String())
	}

	if !entity.IsAuthoredBy(cmd.UserID) {
		return nil, errors.NewNotRecipeAuthorError("update this recipe")
	}

	if cmd.Name != nil {
		if err := entity.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Text != nil {
		if err := entity.UpdateText(*cmd.Text); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Image != nil {
		entity.UpdateImage(*cmd.Image)
	}
	if cmd.CookingTimeMinutes != nil {
		if err := entity.UpdateCookingTime(time.Duration(*cmd.CookingTimeMinutes) * time.Minute); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.TagIDs != nil {
		tags, err := s.resolveTags(ctx, cmd.TagIDs)
		if err != nil {
			return nil, err
		}
		entity.SetTags(tags)
	}
	if cmd.Ingredients != nil {
		items, err := s.resolveIngredients(ctx, cmd.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := entity.SetLineItems(items); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.recipes.Update(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("update recipe", err)
	}
	s.invalidateListCache(ctx)

	s.logger.Info("Recipe updated successfully",
		zap.String("recipe_id", entity.ID().String()),
	)

	return entityToDTO(entity), nil
}

// DeleteRecipe deletes a recipe. Only the author may delete it. Shared
// line items stay behind: other recipes may reference them.
func (s *Service) DeleteRecipe(ctx context.Context, recipeID, userID uuid.UUID) error {
	entity, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return errors.NewRecipeNotFoundError(recipeID.String())
	}

	if !entity.IsAuthoredBy(userID) {
		return errors.NewNotRecipeAuthorError("delete this recipe")
	}

	if err := s.recipes.Delete(ctx, recipeID); err != nil {
		return errors.NewDatabaseError("delete recipe", err)
	}
	s.invalidateListCache(ctx)

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()),
	)
	return nil
}

// GetRecipe returns one recipe by id.
func (s *Service) GetRecipe(ctx context.Context, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.recipes.FindByID(ctx, recipeID)
	if err != nil {
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	return entityToDTO(entity), nil
}

// ListRecipes lists recipes with optional tag, author, favorited and
// in-cart filters.
func (s *Service) ListRecipes(ctx context.Context, q inbound.RecipeQuery) ([]*inbound.RecipeDTO, int, error) {
	// Only the unfiltered first page is cached; every mutation drops it.
	cacheable := s.cache != nil &&
		len(q.TagSlugs) == 0 && len(q.AuthorIDs) == 0 &&
		!q.OnlyFavorited && !q.OnlyInShoppingCart && q.Offset == 0
	if cacheable {
		if dtos, total, ok := s.cachedListing(ctx, q.Limit); ok {
			return dtos, total, nil
		}
	}

	criteria := outbound.RecipeCriteria{
		TagSlugs:  q.TagSlugs,
		AuthorIDs: q.AuthorIDs,
		Offset:    q.Offset,
		Limit:     q.Limit,
	}

	for _, slug := range q.TagSlugs {
		tag, err := s.tags.FindBySlug(ctx, slug)
		if err != nil {
			return nil, 0, errors.NewDatabaseError("find tag", err)
		}
		if tag == nil {
			return nil, 0, errors.NewTagNotFoundError(slug)
		}
	}

	if q.OnlyFavorited {
		ids, err := s.favorites.RecipeIDs(ctx, q.UserID)
		if err != nil {
			return nil, 0, errors.NewDatabaseError("list favorites", err)
		}
		criteria.IDs = idsOrEmpty(ids)
	}
	if q.OnlyInShoppingCart {
		ids, err := s.cart.RecipeIDs(ctx, q.UserID)
		if err != nil {
			return nil, 0, errors.NewDatabaseError("list cart recipes", err)
		}
		criteria.IDs = intersect(criteria.IDs, idsOrEmpty(ids), q.OnlyFavorited)
	}

	entities, total, err := s.recipes.Find(ctx, criteria)
	if err != nil {
		return nil, 0, errors.NewDatabaseError("list recipes", err)
	}

	dtos := make([]*inbound.RecipeDTO, len(entities))
	for i, entity := range entities {
		dtos[i] = entityToDTO(entity)
	}
	if cacheable {
		s.storeListing(ctx, q.Limit, dtos, total)
	}
	return dtos, total, nil
}

// resolveTags loads the referenced tags, failing if any id is unknown.
func (s *Service) resolveTags(ctx context.Context, ids []uuid.UUID) ([]recipe.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, errors.NewDatabaseError("find tags", err)
	}
	if len(tags) != len(ids) {
		return nil, errors.NewValidationError("one or more tag ids do not exist")
	}
	return tags, nil
}

// resolveIngredients runs every ingredient reference through the registry.
func (s *Service) resolveIngredients(ctx context.Context, cmds []inbound.IngredientCommand) ([]recipe.LineItem, error) {
	items := make([]recipe.LineItem, 0, len(cmds))
	for _, cmd := range cmds {
		item, err := s.registry.Resolve(ctx, cmd.MeasurementID, cmd.Amount)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// invalidateListCache drops the cached recipe listing after any mutation.
func (s *Service) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recipeListCacheKey); err != nil {
		s.logger.Debug("Failed to invalidate recipe list cache", zap.Error(err))
	}
}

// recipeListCacheKey caches the unfiltered first page of the listing.
const recipeListCacheKey = "recipes:list"

// cachedListing is the serialized payload behind recipeListCacheKey. The
// limit travels with the page so a hit only serves requests asking for
// the same page size.
type cachedListing struct {
	Limit   int                  `json:"limit"`
	Total   int                  `json:"total"`
	Results []*inbound.RecipeDTO `json:"results"`
}

func (s *Service) cachedListing(ctx context.Context, limit int) ([]*inbound.RecipeDTO, int, bool) {
	raw, err := s.cache.Get(ctx, recipeListCacheKey)
	if err != nil {
		s.logger.Debug("Failed to read recipe list cache", zap.Error(err))
		return nil, 0, false
	}
	if raw == nil {
		return nil, 0, false
	}

	var payload cachedListing
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Limit != limit {
		return nil, 0, false
	}
	return payload.Results, payload.Total, true
}

func (s *Service) storeListing(ctx context.Context, limit int, dtos []*inbound.RecipeDTO, total int) {
	raw, err := json.Marshal(cachedListing{Limit: limit, Total: total, Results: dtos})
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, recipeListCacheKey, raw, s.listCacheTTL); err != nil {
		s.logger.Debug("Failed to cache recipe listing", zap.Error(err))
	}
}

// idsOrEmpty keeps a non-nil slice so an empty filter result yields no
// rows instead of no filter.
func idsOrEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

// intersect merges the favorited and in-cart id filters.
func intersect(a, b []uuid.UUID, both bool) []uuid.UUID {
	if !both {
		return b
	}
	seen := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	out := []uuid.UUID{}
	for _, id := range b {
		if _, ok := seen[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// entityToDTO converts a domain recipe to its API view.
func entityToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	tags := make([]inbound.TagDTO, len(entity.Tags()))
	for i, t := range entity.Tags() {
		tags[i] = inbound.TagDTO{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
	}

	items := make([]inbound.LineItemDTO, len(entity.LineItems()))
	for i, item := range entity.LineItems() {
		items[i] = inbound.LineItemDTO{
			ID: item.ID,
			Measurement: inbound.MeasurementDTO{
				ID:   item.Measurement.ID,
				Name: item.Measurement.Name,
				Unit: item.Measurement.Unit,
			},
			Amount: item.Amount.String(),
		}
	}

	return &inbound.RecipeDTO{
		ID:                 entity.ID(),
		AuthorID:           entity.AuthorID(),
		Name:               entity.Name(),
		Text:               entity.Text(),
		Image:              entity.Image(),
		CookingTimeMinutes: int(entity.CookingTime().Minutes()),
		Tags:               tags,
		Ingredients:        items,
		CreatedAt:          entity.CreatedAt(),
	}
}
