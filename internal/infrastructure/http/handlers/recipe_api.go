package handlers

import (
	"net/http"
	"strconv"

	"github.com/foodgram/backend/internal/infrastructure/http/middleware"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultPageSize = 20

// RecipeAPI serves recipe CRUD and listing endpoints.
type RecipeAPI struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

// NewRecipeAPI creates the recipe handler group.
func NewRecipeAPI(recipes inbound.RecipeService, logger *zap.Logger) *RecipeAPI {
	return &RecipeAPI{
		recipes: recipes,
		logger:  logger.Named("recipe-api"),
	}
}

// Routes mounts the read endpoints, which work anonymously. The
// favorited and in-cart filters need a token and are wired through the
// optional authentication middleware.
func (a *RecipeAPI) Routes(r chi.Router) {
	r.Get("/recipes", a.list)
	r.Get("/recipes/{recipeID}", a.get)
}

// ProtectedRoutes mounts the mutating endpoints.
func (a *RecipeAPI) ProtectedRoutes(r chi.Router) {
	r.Post("/recipes", a.create)
	r.Patch("/recipes/{recipeID}", a.update)
	r.Delete("/recipes/{recipeID}", a.delete)
}

type listResponse struct {
	Count   int                  `json:"count"`
	Results []*inbound.RecipeDTO `json:"results"`
}

func (a *RecipeAPI) list(w http.ResponseWriter, r *http.Request) {
	query, appErr := parseRecipeQuery(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	recipes, total, err := a.recipes.ListRecipes(r.Context(), query)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, listResponse{Count: total, Results: recipes})
}

func (a *RecipeAPI) get(w http.ResponseWriter, r *http.Request) {
	recipeID, appErr := parseUUIDParam(chi.URLParam(r, "recipeID"), "recipeID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.recipes.GetRecipe(r.Context(), recipeID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

type ingredientRequest struct {
	MeasurementID uuid.UUID `json:"id" validate:"required"`
	Amount        string    `json:"amount" validate:"required"`
}

type createRecipeRequest struct {
	Name               string              `json:"name" validate:"required,min=3,max=200"`
	Text               string              `json:"text" validate:"required"`
	Image              string              `json:"image"`
	CookingTimeMinutes int                 `json:"cooking_time" validate:"required,min=1"`
	TagIDs             []uuid.UUID         `json:"tags"`
	Ingredients        []ingredientRequest `json:"ingredients" validate:"required,min=1,dive"`
}

func (a *RecipeAPI) create(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	var req createRecipeRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.recipes.CreateRecipe(r.Context(), inbound.CreateRecipeCommand{
		AuthorID:           userID,
		Name:               req.Name,
		Text:               req.Text,
		Image:              req.Image,
		CookingTimeMinutes: req.CookingTimeMinutes,
		TagIDs:             req.TagIDs,
		Ingredients:        toIngredientCommands(req.Ingredients),
	})
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

type updateRecipeRequest struct {
	Name               *string             `json:"name" validate:"omitempty,min=3,max=200"`
	Text               *string             `json:"text" validate:"omitempty,min=1"`
	Image              *string             `json:"image"`
	CookingTimeMinutes *int                `json:"cooking_time" validate:"omitempty,min=1"`
	TagIDs             []uuid.UUID         `json:"tags"`
	Ingredients        []ingredientRequest `json:"ingredients" validate:"omitempty,min=1,dive"`
}

func (a *RecipeAPI) update(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}
	recipeID, appErr := parseUUIDParam(chi.URLParam(r, "recipeID"), "recipeID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	var req updateRecipeRequest
	if appErr := decodeJSON(r, &req); appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.recipes.UpdateRecipe(r.Context(), inbound.UpdateRecipeCommand{
		RecipeID:           recipeID,
		UserID:             userID,
		Name:               req.Name,
		Text:               req.Text,
		Image:              req.Image,
		CookingTimeMinutes: req.CookingTimeMinutes,
		TagIDs:             req.TagIDs,
		Ingredients:        toIngredientCommands(req.Ingredients),
	})
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (a *RecipeAPI) delete(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}
	recipeID, appErr := parseUUIDParam(chi.URLParam(r, "recipeID"), "recipeID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	if err := a.recipes.DeleteRecipe(r.Context(), recipeID, userID); err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toIngredientCommands(reqs []ingredientRequest) []inbound.IngredientCommand {
	if reqs == nil {
		return nil
	}
	cmds := make([]inbound.IngredientCommand, len(reqs))
	for i, req := range reqs {
		cmds[i] = inbound.IngredientCommand{
			MeasurementID: req.MeasurementID,
			Amount:        req.Amount,
		}
	}
	return cmds
}

func parseRecipeQuery(r *http.Request) (inbound.RecipeQuery, *errors.AppError) {
	q := r.URL.Query()
	query := inbound.RecipeQuery{
		TagSlugs: q["tags"],
		Limit:    defaultPageSize,
	}

	for _, raw := range q["author"] {
		id, appErr := parseUUIDParam(raw, "author")
		if appErr != nil {
			return query, appErr
		}
		query.AuthorIDs = append(query.AuthorIDs, id)
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			return query, errors.NewFieldValidationError("limit", "must be a positive integer")
		}
		query.Limit = limit
	}
	if raw := q.Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return query, errors.NewFieldValidationError("offset", "must be a non-negative integer")
		}
		query.Offset = offset
	}

	query.OnlyFavorited = q.Get("is_favorited") == "1"
	query.OnlyInShoppingCart = q.Get("is_in_shopping_cart") == "1"
	if query.OnlyFavorited || query.OnlyInShoppingCart {
		userID, ok := middleware.UserID(r.Context())
		if !ok {
			return query, errors.NewUnauthorizedError("Favorited and cart filters require authentication")
		}
		query.UserID = userID
	}
	return query, nil
}
