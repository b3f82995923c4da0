package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockcompanion "github.com/KirkDiggler/dnd-companion/internal/clients/companion/mock"
	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens"
	mocktokens "github.com/KirkDiggler/dnd-companion/internal/repositories/tokens/mock"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens/mocks"
	"github.com/KirkDiggler/dnd-companion/internal/services/session"
)

type SessionServiceTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	mockClient *mockcompanion.MockClient
	mockRepo   *mocktokens.MockRepository
	mockTime   *mocks.MockTimeProvider
	service    session.Service
	ctx        context.Context
	now        time.Time
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClient = mockcompanion.NewMockClient(s.ctrl)
	s.mockRepo = mocktokens.NewMockRepository(s.ctrl)
	s.mockTime = mocks.NewMockTimeProvider(s.ctrl)
	s.ctx = context.Background()
	s.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s.mockTime.EXPECT().Now().Return(s.now).AnyTimes()

	s.service = session.NewService(&session.ServiceConfig{
		Client:       s.mockClient,
		Repository:   s.mockRepo,
		TimeProvider: s.mockTime,
		Profile:      "tester",
	})
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSessionServiceSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) signedToken(expiresAt time.Time) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	s.Require().NoError(err)
	return signed
}

func (s *SessionServiceTestSuite) TestNewService_StartsLoading() {
	s.Equal(session.StateLoading, s.service.State())
	s.Empty(s.service.Token())
	s.Nil(s.service.User())
}

func (s *SessionServiceTestSuite) TestNewService_PanicsWithoutDeps() {
	s.Panics(func() {
		session.NewService(&session.ServiceConfig{Repository: s.mockRepo})
	})
	s.Panics(func() {
		session.NewService(&session.ServiceConfig{Client: s.mockClient})
	})
}

func (s *SessionServiceTestSuite) TestInit_NoPersistedToken() {
	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(nil, dnderr.NotFound("no token"))

	state, err := s.service.Init(s.ctx)

	s.Require().NoError(err)
	s.Equal(session.StateUnauthenticated, state)
	s.Equal(session.StateUnauthenticated, s.service.State())
}

func (s *SessionServiceTestSuite) TestInit_RepositoryError() {
	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(nil, errors.New("redis down"))

	state, err := s.service.Init(s.ctx)

	s.Require().Error(err)
	s.Contains(err.Error(), "failed to load persisted token")
	s.Equal(session.StateUnauthenticated, state)
}

func (s *SessionServiceTestSuite) TestInit_ValidToken() {
	token := s.signedToken(s.now.Add(time.Hour))
	user := &account.User{ID: "user-1", Name: "Tester"}

	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(&tokens.Data{Token: token}, nil)
	s.mockClient.EXPECT().CurrentUser(s.ctx).DoAndReturn(func(context.Context) (*account.User, error) {
		// the token must be visible to the client while validating
		s.Equal(token, s.service.Token())
		s.Equal(session.StateLoading, s.service.State())
		return user, nil
	})
	s.mockRepo.EXPECT().Set(s.ctx, "tester", &tokens.Data{Token: token, User: user}).Return(nil)

	state, err := s.service.Init(s.ctx)

	s.Require().NoError(err)
	s.Equal(session.StateAuthenticated, state)
	s.Equal(token, s.service.Token())
	s.Equal(user, s.service.User())
}

func (s *SessionServiceTestSuite) TestInit_OpaqueTokenIsValidatedRemotely() {
	user := &account.User{ID: "user-1"}

	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(&tokens.Data{Token: "not-a-jwt"}, nil)
	s.mockClient.EXPECT().CurrentUser(s.ctx).Return(user, nil)
	s.mockRepo.EXPECT().Set(s.ctx, "tester", gomock.Any()).Return(errors.New("write failed"))

	state, err := s.service.Init(s.ctx)

	// a failed cache refresh does not fail the login
	s.Require().NoError(err)
	s.Equal(session.StateAuthenticated, state)
}

func (s *SessionServiceTestSuite) TestInit_ExpiredTokenClearedWithoutNetwork() {
	token := s.signedToken(s.now.Add(-time.Minute))

	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(&tokens.Data{Token: token}, nil)
	s.mockRepo.EXPECT().Delete(s.ctx, "tester").Return(nil)

	state, err := s.service.Init(s.ctx)

	s.Require().NoError(err)
	s.Equal(session.StateUnauthenticated, state)
	s.Empty(s.service.Token())
}

func (s *SessionServiceTestSuite) TestInit_CurrentUserFailureClearsToken() {
	token := s.signedToken(s.now.Add(time.Hour))

	s.mockRepo.EXPECT().Get(s.ctx, "tester").Return(&tokens.Data{Token: token}, nil)
	s.mockClient.EXPECT().CurrentUser(s.ctx).Return(nil, dnderr.Unauthenticated("token revoked"))
	s.mockRepo.EXPECT().Delete(s.ctx, "tester").Return(nil)
	s.mockClient.EXPECT().Logout(gomock.Any()).Times(0)

	state, err := s.service.Init(s.ctx)

	s.Require().NoError(err)
	s.Equal(session.StateUnauthenticated, state)
	s.Empty(s.service.Token())
	s.Nil(s.service.User())
}

func (s *SessionServiceTestSuite) TestLogin_Success() {
	input := &account.LoginInput{Email: "a@b.co", Password: "secret1"}
	user := &account.User{ID: "user-1", Email: "a@b.co"}

	s.mockClient.EXPECT().Login(s.ctx, input).Return(&account.AuthResponse{Token: "tok", User: user}, nil)
	s.mockRepo.EXPECT().Set(s.ctx, "tester", &tokens.Data{Token: "tok", User: user}).Return(nil)

	got, err := s.service.Login(s.ctx, input)

	s.Require().NoError(err)
	s.Equal(user, got)
	s.Equal(session.StateAuthenticated, s.service.State())
	s.Equal("tok", s.service.Token())
}

func (s *SessionServiceTestSuite) TestLogin_InvalidInputSkipsAPI() {
	_, err := s.service.Login(s.ctx, &account.LoginInput{Email: "", Password: "x"})

	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *SessionServiceTestSuite) TestLogin_APIError() {
	input := &account.LoginInput{Email: "a@b.co", Password: "wrong"}
	apiErr := dnderr.Unauthenticated("invalid credentials")

	s.mockClient.EXPECT().Login(s.ctx, input).Return(nil, apiErr)

	_, err := s.service.Login(s.ctx, input)

	s.Require().Error(err)
	s.True(dnderr.IsUnauthenticated(err))
	s.NotEqual(session.StateAuthenticated, s.service.State())
}

func (s *SessionServiceTestSuite) TestLogin_MissingToken() {
	input := &account.LoginInput{Email: "a@b.co", Password: "secret1"}

	s.mockClient.EXPECT().Login(s.ctx, input).Return(&account.AuthResponse{}, nil)

	_, err := s.service.Login(s.ctx, input)

	s.Require().Error(err)
	s.True(dnderr.IsInternal(err))
}

func (s *SessionServiceTestSuite) TestLogin_PersistFailure() {
	input := &account.LoginInput{Email: "a@b.co", Password: "secret1"}

	s.mockClient.EXPECT().Login(s.ctx, input).Return(&account.AuthResponse{Token: "tok"}, nil)
	s.mockRepo.EXPECT().Set(s.ctx, "tester", gomock.Any()).Return(errors.New("disk full"))

	_, err := s.service.Login(s.ctx, input)

	s.Require().Error(err)
	s.Empty(s.service.Token())
}

func (s *SessionServiceTestSuite) TestRegister_PersistsTokenButStaysUnauthenticated() {
	input := &account.RegisterInput{
		Name:            "Tester",
		Email:           "a@b.co",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		AcceptTerms:     true,
	}
	resp := &account.AuthResponse{Message: "check your email", Token: "tok", User: &account.User{ID: "user-1"}}

	s.mockClient.EXPECT().Register(s.ctx, input).Return(resp, nil)
	s.mockRepo.EXPECT().Set(s.ctx, "tester", &tokens.Data{Token: "tok", User: resp.User}).Return(nil)

	got, err := s.service.Register(s.ctx, input)

	s.Require().NoError(err)
	s.Equal(resp, got)
	s.NotEqual(session.StateAuthenticated, s.service.State())
	s.Empty(s.service.Token())
}

func (s *SessionServiceTestSuite) TestRegister_InvalidInput() {
	_, err := s.service.Register(s.ctx, &account.RegisterInput{Name: "A"})

	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
}

func (s *SessionServiceTestSuite) TestVerifyEmail() {
	s.mockClient.EXPECT().VerifyEmail(s.ctx, "abc").Return(&account.MessageResponse{Message: "verified"}, nil)

	msg, err := s.service.VerifyEmail(s.ctx, "abc")

	s.Require().NoError(err)
	s.Equal("verified", msg)
}

func (s *SessionServiceTestSuite) TestVerifyEmail_MissingToken() {
	_, err := s.service.VerifyEmail(s.ctx, "")

	s.Require().Error(err)
	s.True(dnderr.IsValidation(err))
	s.Equal("token", dnderr.GetMeta(err)["field"])
}

func (s *SessionServiceTestSuite) loggedIn() {
	input := &account.LoginInput{Email: "a@b.co", Password: "secret1"}
	s.mockClient.EXPECT().Login(s.ctx, input).Return(&account.AuthResponse{Token: "tok"}, nil)
	s.mockRepo.EXPECT().Set(s.ctx, "tester", gomock.Any()).Return(nil)
	_, err := s.service.Login(s.ctx, input)
	s.Require().NoError(err)
}

func (s *SessionServiceTestSuite) TestLogout_RemoteFailureStillClears() {
	s.loggedIn()

	s.mockClient.EXPECT().Logout(s.ctx).Return(dnderr.Unavailable("api down"))
	s.mockRepo.EXPECT().Delete(s.ctx, "tester").Return(nil)

	err := s.service.Logout(s.ctx)

	s.Require().NoError(err)
	s.Equal(session.StateUnauthenticated, s.service.State())
	s.Empty(s.service.Token())
}

func (s *SessionServiceTestSuite) TestLogout_WithoutTokenSkipsRemote() {
	s.mockRepo.EXPECT().Delete(s.ctx, "tester").Return(nil)

	s.Require().NoError(s.service.Logout(s.ctx))
	s.Equal(session.StateUnauthenticated, s.service.State())
}

func (s *SessionServiceTestSuite) TestLogout_ClearFailureReturned() {
	s.loggedIn()

	s.mockClient.EXPECT().Logout(s.ctx).Return(nil)
	s.mockRepo.EXPECT().Delete(s.ctx, "tester").Return(errors.New("redis down"))

	err := s.service.Logout(s.ctx)

	s.Require().Error(err)
	// in-memory state is cleared regardless
	s.Empty(s.service.Token())
}

func TestNewService_DefaultProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocktokens.NewMockRepository(ctrl)
	repo.EXPECT().Get(gomock.Any(), session.DefaultProfile).Return(nil, dnderr.NotFound("none"))

	svc := session.NewService(&session.ServiceConfig{
		Client:     mockcompanion.NewMockClient(ctrl),
		Repository: repo,
	})

	state, err := svc.Init(context.Background())
	if err != nil || state != session.StateUnauthenticated {
		t.Fatalf("Init() = %v, %v", state, err)
	}
}
