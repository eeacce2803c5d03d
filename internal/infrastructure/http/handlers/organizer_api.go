package handlers

import (
	"net/http"
	"strconv"

	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrganizerAPI serves favorite and subscription endpoints.
type OrganizerAPI struct {
	organizer          inbound.OrganizerService
	defaultRecipeLimit int
	logger             *zap.Logger
}

// NewOrganizerAPI creates the organizer handler group. defaultRecipeLimit
// caps the recipe previews on subscription listings when the client does not
// pass recipes_limit itself.
func NewOrganizerAPI(organizer inbound.OrganizerService, defaultRecipeLimit int, logger *zap.Logger) *OrganizerAPI {
	return &OrganizerAPI{
		organizer:          organizer,
		defaultRecipeLimit: defaultRecipeLimit,
		logger:             logger.Named("organizer-api"),
	}
}

// ProtectedRoutes mounts the organizer endpoints. All of them need an
// authenticated user.
func (a *OrganizerAPI) ProtectedRoutes(r chi.Router) {
	r.Post("/recipes/{recipeID}/favorite", a.addFavorite)
	r.Delete("/recipes/{recipeID}/favorite", a.removeFavorite)
	r.Post("/users/{authorID}/subscribe", a.subscribe)
	r.Delete("/users/{authorID}/subscribe", a.unsubscribe)
	r.Get("/users/subscriptions", a.listSubscriptions)
}

func (a *OrganizerAPI) addFavorite(w http.ResponseWriter, r *http.Request) {
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

	dto, err := a.organizer.AddFavorite(r.Context(), userID, recipeID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (a *OrganizerAPI) removeFavorite(w http.ResponseWriter, r *http.Request) {
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

	if err := a.organizer.RemoveFavorite(r.Context(), userID, recipeID); err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrganizerAPI) subscribe(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}
	authorID, appErr := parseUUIDParam(chi.URLParam(r, "authorID"), "authorID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	dto, err := a.organizer.Subscribe(r.Context(), userID, authorID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (a *OrganizerAPI) unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}
	authorID, appErr := parseUUIDParam(chi.URLParam(r, "authorID"), "authorID")
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	if err := a.organizer.Unsubscribe(r.Context(), userID, authorID); err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *OrganizerAPI) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	recipesLimit := a.defaultRecipeLimit
	if raw := r.URL.Query().Get("recipes_limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeAppError(w, r, a.logger,
				errors.NewFieldValidationError("recipes_limit", "must be a non-negative integer"))
			return
		}
		recipesLimit = parsed
	}

	dtos, err := a.organizer.ListSubscriptions(r.Context(), userID, recipesLimit)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}
