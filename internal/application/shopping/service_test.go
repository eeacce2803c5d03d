package shopping

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/foodgram/backend/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ShoppingServiceTestSuite struct {
	suite.Suite
	cart      *testutils.MockAssociationRepository
	recipes   *testutils.MockRecipeRepository
	lineItems *testutils.MockLineItemRepository
	users     *testutils.MockUserRepository
	service   inbound.ShoppingListService
}

func (s *ShoppingServiceTestSuite) SetupTest() {
	s.cart = new(testutils.MockAssociationRepository)
	s.recipes = new(testutils.MockRecipeRepository)
	s.lineItems = new(testutils.MockLineItemRepository)
	s.users = new(testutils.MockUserRepository)
	s.service = NewService(s.cart, s.recipes, s.lineItems, s.users, testutils.NewTestLogger())
}

func TestShoppingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingServiceTestSuite))
}

func (s *ShoppingServiceTestSuite) TestAddToCart() {
	userID := uuid.New()
	r := testutils.NewRecipe(s.T(), uuid.New())

	s.recipes.On("FindByID", mock.Anything, r.ID()).Return(r, nil)
	s.cart.On("Contains", mock.Anything, userID, r.ID()).Return(false, nil)
	s.cart.On("Add", mock.Anything, userID, r.ID()).Return(nil)

	dto, err := s.service.AddToCart(context.Background(), userID, r.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), r.ID(), dto.ID)
	assert.Equal(s.T(), r.Name(), dto.Name)

	s.cart.AssertExpectations(s.T())
}

func (s *ShoppingServiceTestSuite) TestAddToCartTwiceFails() {
	userID := uuid.New()
	r := testutils.NewRecipe(s.T(), uuid.New())

	s.recipes.On("FindByID", mock.Anything, r.ID()).Return(r, nil)
	s.cart.On("Contains", mock.Anything, userID, r.ID()).Return(true, nil)

	_, err := s.service.AddToCart(context.Background(), userID, r.ID())
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeAlreadyInCart))

	s.cart.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ShoppingServiceTestSuite) TestAddToCartUnknownRecipe() {
	userID := uuid.New()
	recipeID := uuid.New()

	s.recipes.On("FindByID", mock.Anything, recipeID).Return(nil, nil)

	_, err := s.service.AddToCart(context.Background(), userID, recipeID)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeRecipeNotFound))
}

func (s *ShoppingServiceTestSuite) TestRemoveFromCartNotInCart() {
	userID := uuid.New()
	recipeID := uuid.New()

	s.cart.On("Contains", mock.Anything, userID, recipeID).Return(false, nil)

	err := s.service.RemoveFromCart(context.Background(), userID, recipeID)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeNotInCart))
}

func (s *ShoppingServiceTestSuite) TestBuildShoppingListAggregates() {
	u := testutils.NewUser(s.T(), "supersecret")
	recipeIDs := []uuid.UUID{uuid.New(), uuid.New()}

	flour := recipe.Measurement{ID: uuid.New(), Name: "flour", Unit: "g"}
	items := []recipe.LineItem{
		testutils.NewLineItem(s.T(), flour, "200"),
		testutils.NewLineItem(s.T(), flour, "300"),
	}

	s.users.On("FindByID", mock.Anything, u.ID()).Return(u, nil)
	s.cart.On("RecipeIDs", mock.Anything, u.ID()).Return(recipeIDs, nil)
	s.lineItems.On("FindByRecipeIDs", mock.Anything, recipeIDs).Return(items, nil)

	file, err := s.service.BuildShoppingList(context.Background(), u.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.Username()+"_shopping_cart.txt", file.Filename)
	assert.Equal(s.T(), "text/plain", file.ContentType)
	assert.Equal(s.T(), "flour (g)\t500", string(file.Content))
}

func (s *ShoppingServiceTestSuite) TestBuildShoppingListEmptyCart() {
	u := testutils.NewUser(s.T(), "supersecret")

	s.users.On("FindByID", mock.Anything, u.ID()).Return(u, nil)
	s.cart.On("RecipeIDs", mock.Anything, u.ID()).Return([]uuid.UUID{}, nil)

	file, err := s.service.BuildShoppingList(context.Background(), u.ID())
	require.NoError(s.T(), err)
	assert.Empty(s.T(), file.Content)
	assert.Equal(s.T(), u.Username()+"_shopping_cart.txt", file.Filename)

	s.lineItems.AssertNotCalled(s.T(), "FindByRecipeIDs", mock.Anything, mock.Anything)
}
