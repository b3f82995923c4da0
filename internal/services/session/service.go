package session

//go:generate mockgen -destination=mock/mock_service.go -package=mocksession -source=service.go

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-companion/internal/clients/companion"
	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens"
)

// DefaultProfile is used when no profile is configured
const DefaultProfile = "default"

// State is the authentication state of a session
type State string

const (
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// Service owns the login state of one profile. It is passed explicitly to
// whatever needs it and is safe for concurrent use.
type Service interface {
	// Init restores the persisted login, validating it against the API
	Init(ctx context.Context) (State, error)

	// Login authenticates and persists the token
	Login(ctx context.Context, input *account.LoginInput) (*account.User, error)

	// Register creates an account and persists the returned token. The
	// session stays unauthenticated until the email is verified and the
	// user logs in.
	Register(ctx context.Context, input *account.RegisterInput) (*account.AuthResponse, error)

	// VerifyEmail confirms an email address and returns the API message
	VerifyEmail(ctx context.Context, token string) (string, error)

	// Logout ends the session. The persisted token is always cleared even
	// when the API call fails.
	Logout(ctx context.Context) error

	// Token returns the current bearer token, empty when logged out
	Token() string
	User() *account.User
	State() State
}

// service implements the Service interface
type service struct {
	client       companion.Client
	repository   tokens.Repository
	timeProvider tokens.TimeProvider
	profile      string
	logger       *zap.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *account.User
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client       companion.Client    // Required
	Repository   tokens.Repository   // Required
	TimeProvider tokens.TimeProvider // Optional, will use the wall clock if nil
	Profile      string              // Optional, defaults to DefaultProfile
	Logger       *zap.Logger         // Optional
}

// NewService creates a new session service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("companion client is required")
	}
	if cfg.Repository == nil {
		panic("token repository is required")
	}

	svc := &service{
		client:       cfg.Client,
		repository:   cfg.Repository,
		timeProvider: cfg.TimeProvider,
		profile:      cfg.Profile,
		logger:       observability.OrNop(cfg.Logger),
		state:        StateLoading,
	}

	if svc.timeProvider == nil {
		svc.timeProvider = &tokens.RealTimeProvider{}
	}
	if svc.profile == "" {
		svc.profile = DefaultProfile
	}
	svc.logger = svc.logger.With(zap.String("profile", svc.profile))

	return svc
}

func (s *service) Init(ctx context.Context) (State, error) {
	s.setState(StateLoading, "", nil)

	data, err := s.repository.Get(ctx, s.profile)
	if err != nil {
		if dnderr.IsNotFound(err) {
			s.setState(StateUnauthenticated, "", nil)
			return StateUnauthenticated, nil
		}
		s.setState(StateUnauthenticated, "", nil)
		return StateUnauthenticated, dnderr.Wrap(err, "failed to load persisted token")
	}

	if data.Token == "" || tokenExpired(data.Token, s.timeProvider.Now()) {
		s.logger.Info("persisted token is expired, clearing it")
		s.clearPersisted(ctx)
		s.setState(StateUnauthenticated, "", nil)
		return StateUnauthenticated, nil
	}

	// The client reads the token back through Token while validating it
	s.setState(StateLoading, data.Token, data.User)

	user, err := s.client.CurrentUser(ctx)
	if err != nil {
		// Remote logout is skipped here; the token is already unusable
		s.logger.Warn("failed to load current user, clearing persisted token", zap.Error(err))
		s.clearPersisted(ctx)
		s.setState(StateUnauthenticated, "", nil)
		return StateUnauthenticated, nil
	}

	if err := s.repository.Set(ctx, s.profile, &tokens.Data{Token: data.Token, User: user}); err != nil {
		s.logger.Warn("failed to refresh cached user", zap.Error(err))
	}

	s.setState(StateAuthenticated, data.Token, user)
	return StateAuthenticated, nil
}

func (s *service) Login(ctx context.Context, input *account.LoginInput) (*account.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.Login(ctx, input)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, dnderr.Internal("login response did not include a token")
	}

	if err := s.repository.Set(ctx, s.profile, &tokens.Data{Token: resp.Token, User: resp.User}); err != nil {
		return nil, dnderr.Wrap(err, "failed to persist token")
	}

	s.setState(StateAuthenticated, resp.Token, resp.User)
	s.logger.Info("logged in", zap.String("user_id", userID(resp.User)))

	return resp.User, nil
}

func (s *service) Register(ctx context.Context, input *account.RegisterInput) (*account.AuthResponse, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	resp, err := s.client.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	if resp.Token != "" {
		if err := s.repository.Set(ctx, s.profile, &tokens.Data{Token: resp.Token, User: resp.User}); err != nil {
			return nil, dnderr.Wrap(err, "failed to persist token")
		}
	}

	s.logger.Info("registered account, awaiting email verification",
		zap.String("user_id", userID(resp.User)))

	return resp, nil
}

func (s *service) VerifyEmail(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", dnderr.Validation("verification token not found").WithMeta("field", "token")
	}

	resp, err := s.client.VerifyEmail(ctx, token)
	if err != nil {
		return "", err
	}

	return resp.Message, nil
}

func (s *service) Logout(ctx context.Context) error {
	if s.Token() != "" {
		if err := s.client.Logout(ctx); err != nil {
			s.logger.Warn("remote logout failed", zap.Error(err))
		}
	}

	s.setState(StateUnauthenticated, "", nil)

	if err := s.repository.Delete(ctx, s.profile); err != nil {
		return dnderr.Wrap(err, "failed to clear persisted token")
	}

	return nil
}

func (s *service) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *service) User() *account.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *service) setState(state State, token string, user *account.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.token = token
	s.user = user
}

func (s *service) clearPersisted(ctx context.Context) {
	if err := s.repository.Delete(ctx, s.profile); err != nil {
		s.logger.Warn("failed to clear persisted token", zap.Error(err))
	}
}

// tokenExpired reports whether token is a JWT whose exp claim has passed.
// Tokens that are not JWTs, or carry no exp, are left for the API to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return !now.Before(claims.ExpiresAt.Time)
}

func userID(user *account.User) string {
	if user == nil {
		return ""
	}
	return user.ID
}
