package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/foodgram/backend/internal/infrastructure/http/middleware"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/foodgram/backend/test/testutils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockShoppingService struct {
	mock.Mock
}

func (m *mockShoppingService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*inbound.RecipeSummaryDTO, error) {
	args := m.Called(ctx, userID, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.RecipeSummaryDTO), args.Error(1)
}

func (m *mockShoppingService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *mockShoppingService) BuildShoppingList(ctx context.Context, userID uuid.UUID) (*inbound.ShoppingListFile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inbound.ShoppingListFile), args.Error(1)
}

func newShoppingRouter(svc inbound.ShoppingListService) chi.Router {
	api := NewShoppingAPI(svc, testutils.NewTestLogger())
	r := chi.NewRouter()
	api.ProtectedRoutes(r)
	return r
}

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.ContextWithUser(req.Context(), userID, "chef"))
}

func TestDownloadShoppingList(t *testing.T) {
	svc := new(mockShoppingService)
	userID := uuid.New()

	svc.On("BuildShoppingList", mock.Anything, userID).Return(&inbound.ShoppingListFile{
		Filename:    "chef_shopping_cart.txt",
		ContentType: "text/plain",
		Content:     []byte("flour (g)\t500"),
	}, nil)

	rec := httptest.NewRecorder()
	newShoppingRouter(svc).ServeHTTP(rec,
		authedRequest(http.MethodGet, "/recipes/download_shopping_cart", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="chef_shopping_cart.txt"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "flour (g)\t500", rec.Body.String())
}

func TestDownloadShoppingListEmptyCart(t *testing.T) {
	svc := new(mockShoppingService)
	userID := uuid.New()

	svc.On("BuildShoppingList", mock.Anything, userID).Return(&inbound.ShoppingListFile{
		Filename:    "chef_shopping_cart.txt",
		ContentType: "text/plain",
		Content:     nil,
	}, nil)

	rec := httptest.NewRecorder()
	newShoppingRouter(svc).ServeHTTP(rec,
		authedRequest(http.MethodGet, "/recipes/download_shopping_cart", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAddToCartConflict(t *testing.T) {
	svc := new(mockShoppingService)
	userID := uuid.New()
	recipeID := uuid.New()

	svc.On("AddToCart", mock.Anything, userID, recipeID).
		Return(nil, errors.NewAppError(errors.CodeAlreadyInCart, "Recipe already in shopping cart", ""))

	rec := httptest.NewRecorder()
	newShoppingRouter(svc).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/recipes/"+recipeID.String()+"/shopping_cart", userID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ALREADY_IN_CART")
}

func TestAddToCartRejectsBadID(t *testing.T) {
	svc := new(mockShoppingService)

	rec := httptest.NewRecorder()
	newShoppingRouter(svc).ServeHTTP(rec,
		authedRequest(http.MethodPost, "/recipes/not-a-uuid/shopping_cart", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddToCart", mock.Anything, mock.Anything, mock.Anything)
}
