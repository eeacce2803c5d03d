package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ShoppingAPI serves the shopping cart and the shopping-list download.
type ShoppingAPI struct {
	shopping inbound.ShoppingListService
	logger   *zap.Logger
}

// NewShoppingAPI creates the shopping handler group.
func NewShoppingAPI(shopping inbound.ShoppingListService, logger *zap.Logger) *ShoppingAPI {
	return &ShoppingAPI{
		shopping: shopping,
		logger:   logger.Named("shopping-api"),
	}
}

// ProtectedRoutes mounts the shopping endpoints. All of them need an
// authenticated user.
func (a *ShoppingAPI) ProtectedRoutes(r chi.Router) {
	r.Post("/recipes/{recipeID}/shopping_cart", a.addToCart)
	r.Delete("/recipes/{recipeID}/shopping_cart", a.removeFromCart)
	r.Get("/recipes/download_shopping_cart", a.download)
}

func (a *ShoppingAPI) addToCart(w http.ResponseWriter, r *http.Request) {
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

	dto, err := a.shopping.AddToCart(r.Context(), userID, recipeID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto)
}

func (a *ShoppingAPI) removeFromCart(w http.ResponseWriter, r *http.Request) {
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

	if err := a.shopping.RemoveFromCart(r.Context(), userID, recipeID); err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// download streams the aggregated shopping list as a plain-text
// attachment. An empty cart yields an empty file, not an error.
func (a *ShoppingAPI) download(w http.ResponseWriter, r *http.Request) {
	userID, appErr := requireUser(r)
	if appErr != nil {
		writeAppError(w, r, a.logger, appErr)
		return
	}

	file, err := a.shopping.BuildShoppingList(r.Context(), userID)
	if err != nil {
		writeAppError(w, r, a.logger, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Content)
}
