package organizer

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/domain/recipe"
	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/internal/ports/outbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/foodgram/backend/test/testutils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrganizerServiceTestSuite struct {
	suite.Suite
	favorites     *testutils.MockAssociationRepository
	subscriptions *testutils.MockAssociationRepository
	recipes       *testutils.MockRecipeRepository
	users         *testutils.MockUserRepository
	service       inbound.OrganizerService
}

func (s *OrganizerServiceTestSuite) SetupTest() {
	s.favorites = new(testutils.MockAssociationRepository)
	s.subscriptions = new(testutils.MockAssociationRepository)
	s.recipes = new(testutils.MockRecipeRepository)
	s.users = new(testutils.MockUserRepository)
	s.service = NewService(s.favorites, s.subscriptions, s.recipes, s.users, testutils.NewTestLogger())
}

func TestOrganizerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizerServiceTestSuite))
}

func (s *OrganizerServiceTestSuite) TestAddFavorite() {
	userID := uuid.New()
	r := testutils.NewRecipe(s.T(), uuid.New())

	s.recipes.On("FindByID", mock.Anything, r.ID()).Return(r, nil)
	s.favorites.On("Contains", mock.Anything, userID, r.ID()).Return(false, nil)
	s.favorites.On("Add", mock.Anything, userID, r.ID()).Return(nil)

	dto, err := s.service.AddFavorite(context.Background(), userID, r.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), r.Name(), dto.Name)
}

func (s *OrganizerServiceTestSuite) TestAddFavoriteTwiceFails() {
	userID := uuid.New()
	r := testutils.NewRecipe(s.T(), uuid.New())

	s.recipes.On("FindByID", mock.Anything, r.ID()).Return(r, nil)
	s.favorites.On("Contains", mock.Anything, userID, r.ID()).Return(true, nil)

	_, err := s.service.AddFavorite(context.Background(), userID, r.ID())
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeAlreadyFavorite))
}

func (s *OrganizerServiceTestSuite) TestRemoveFavoriteNotFavorite() {
	userID := uuid.New()
	recipeID := uuid.New()

	s.favorites.On("Contains", mock.Anything, userID, recipeID).Return(false, nil)

	err := s.service.RemoveFavorite(context.Background(), userID, recipeID)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeNotFavorite))
}

func (s *OrganizerServiceTestSuite) TestSubscribeToSelfFails() {
	userID := uuid.New()

	_, err := s.service.Subscribe(context.Background(), userID, userID)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeSelfSubscription))

	s.subscriptions.AssertNotCalled(s.T(), "Add", mock.Anything, mock.Anything, mock.Anything)
}

func (s *OrganizerServiceTestSuite) TestSubscribe() {
	userID := uuid.New()
	author := testutils.NewUser(s.T(), "supersecret")

	s.users.On("FindByID", mock.Anything, author.ID()).Return(author, nil)
	s.subscriptions.On("Contains", mock.Anything, userID, author.ID()).Return(false, nil)
	s.subscriptions.On("Add", mock.Anything, userID, author.ID()).Return(nil)
	s.recipes.On("Find", mock.Anything, mock.Anything).Return([]*recipe.Recipe{}, 0, nil)

	dto, err := s.service.Subscribe(context.Background(), userID, author.ID())
	require.NoError(s.T(), err)
	assert.Equal(s.T(), author.Username(), dto.AuthorUsername)
}

func (s *OrganizerServiceTestSuite) TestSubscribeTwiceFails() {
	userID := uuid.New()
	author := testutils.NewUser(s.T(), "supersecret")

	s.users.On("FindByID", mock.Anything, author.ID()).Return(author, nil)
	s.subscriptions.On("Contains", mock.Anything, userID, author.ID()).Return(true, nil)

	_, err := s.service.Subscribe(context.Background(), userID, author.ID())
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeAlreadySubscribed))
}

func (s *OrganizerServiceTestSuite) TestListSubscriptionsHonorsRecipesLimit() {
	userID := uuid.New()
	author := testutils.NewUser(s.T(), "supersecret")
	authored := []*recipe.Recipe{
		testutils.NewRecipe(s.T(), author.ID()),
		testutils.NewRecipe(s.T(), author.ID()),
	}

	s.subscriptions.On("AuthorIDs", mock.Anything, userID).Return([]uuid.UUID{author.ID()}, nil)
	s.users.On("FindByID", mock.Anything, author.ID()).Return(author, nil)
	s.recipes.On("Find", mock.Anything, outbound.RecipeCriteria{
		AuthorIDs: []uuid.UUID{author.ID()},
		Limit:     2,
	}).Return(authored, 5, nil)

	dtos, err := s.service.ListSubscriptions(context.Background(), userID, 2)
	require.NoError(s.T(), err)
	require.Len(s.T(), dtos, 1)
	assert.Len(s.T(), dtos[0].Recipes, 2)
	assert.Equal(s.T(), 5, dtos[0].RecipesCount)
}

func (s *OrganizerServiceTestSuite) TestUnsubscribeNotSubscribed() {
	userID := uuid.New()
	authorID := uuid.New()

	s.subscriptions.On("Contains", mock.Anything, userID, authorID).Return(false, nil)

	err := s.service.Unsubscribe(context.Background(), userID, authorID)
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeNotSubscribed))
}
