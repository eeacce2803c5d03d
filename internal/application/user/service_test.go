package user

import (
	"context"
	"testing"

	"github.com/foodgram/backend/internal/ports/inbound"
	"github.com/foodgram/backend/pkg/errors"
	"github.com/foodgram/backend/test/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	users   *testutils.MockUserRepository
	service inbound.UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.users = new(testutils.MockUserRepository)
	s.service = NewService(s.users, testutils.NewTestLogger())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestRegister() {
	s.users.On("FindByEmail", mock.Anything, "chef@example.com").Return(nil, nil)
	s.users.On("FindByUsername", mock.Anything, "chef").Return(nil, nil)
	s.users.On("Create", mock.Anything, mock.Anything).Return(nil)

	dto, err := s.service.Register(context.Background(), inbound.RegisterCommand{
		Email:    "chef@example.com",
		Username: "chef",
		Password: "supersecret",
	})
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "chef", dto.Username)

	s.users.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestRegisterDuplicateEmail() {
	existing := testutils.NewUser(s.T(), "supersecret")
	s.users.On("FindByEmail", mock.Anything, existing.Email()).Return(existing, nil)

	_, err := s.service.Register(context.Background(), inbound.RegisterCommand{
		Email:    existing.Email(),
		Username: "someone",
		Password: "supersecret",
	})
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeEmailAlreadyExists))

	s.users.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestVerifyCredentials() {
	u := testutils.NewUser(s.T(), "supersecret")
	s.users.On("FindByEmail", mock.Anything, u.Email()).Return(u, nil)

	dto, err := s.service.VerifyCredentials(context.Background(), u.Email(), "supersecret")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), u.ID(), dto.ID)

	_, err = s.service.VerifyCredentials(context.Background(), u.Email(), "wrong")
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeInvalidCredentials))
}

func (s *UserServiceTestSuite) TestVerifyCredentialsUnknownEmail() {
	s.users.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	_, err := s.service.VerifyCredentials(context.Background(), "ghost@example.com", "whatever")
	require.Error(s.T(), err)
	// unknown email and wrong password are indistinguishable
	assert.True(s.T(), errors.Is(err, errors.CodeInvalidCredentials))
}

func (s *UserServiceTestSuite) TestChangePassword() {
	u := testutils.NewUser(s.T(), "supersecret")
	s.users.On("FindByID", mock.Anything, u.ID()).Return(u, nil)
	s.users.On("Update", mock.Anything, u).Return(nil)

	err := s.service.ChangePassword(context.Background(), u.ID(), "supersecret", "evenmoresecret")
	require.NoError(s.T(), err)
	assert.True(s.T(), u.CheckPassword("evenmoresecret"))
}

func (s *UserServiceTestSuite) TestChangePasswordWrongCurrent() {
	u := testutils.NewUser(s.T(), "supersecret")
	s.users.On("FindByID", mock.Anything, u.ID()).Return(u, nil)

	err := s.service.ChangePassword(context.Background(), u.ID(), "wrong", "evenmoresecret")
	require.Error(s.T(), err)
	assert.True(s.T(), errors.Is(err, errors.CodeInvalidCredentials))

	s.users.AssertNotCalled(s.T(), "Update", mock.Anything, mock.Anything)
}
