package services

import (
	"context"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-companion/internal/clients/companion"
	"github.com/KirkDiggler/dnd-companion/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/config"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/repositories/tokens"
	characterService "github.com/KirkDiggler/dnd-companion/internal/services/character"
	classesService "github.com/KirkDiggler/dnd-companion/internal/services/classes"
	sessionService "github.com/KirkDiggler/dnd-companion/internal/services/session"
	"github.com/KirkDiggler/dnd-companion/internal/uuid"
)

const redisPingTimeout = 5 * time.Second

// Provider holds all service instances
type Provider struct {
	SessionService   sessionService.Service
	CharacterService characterService.Service
	ClassesService   classesService.Service
	TokenRepository  tokens.Repository
}

// ProviderConfig holds configuration for creating services.
// Clients are built from Config when nil; a nil TokenRepository keeps
// tokens in memory.
type ProviderConfig struct {
	Config          *config.Config // Required
	DNDClient       dnd5e.Client
	CompanionClient companion.Client
	TokenRepository tokens.Repository
	Logger          *zap.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, dnderr.InvalidArgument("provider config is required")
	}
	logger := observability.OrNop(cfg.Logger)

	tokenRepo := cfg.TokenRepository
	if tokenRepo == nil {
		tokenRepo = tokens.NewInMemoryRepository(&tokens.InMemoryConfig{
			TTL: cfg.Config.Redis.TokenTTL,
		})
	}

	dndClient := cfg.DNDClient
	if dndClient == nil {
		var err error
		dndClient, err = dnd5e.New(&dnd5e.Config{
			BaseURL: cfg.Config.DND5E.BaseURL,
			Timeout: cfg.Config.DND5E.Timeout,
		})
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to create D&D 5e client")
		}
	}

	// The client reads the bearer token from the session it serves
	var sess sessionService.Service
	companionClient := cfg.CompanionClient
	if companionClient == nil {
		var err error
		companionClient, err = companion.New(&companion.Config{
			BaseURL: cfg.Config.API.BaseURL,
			Timeout: cfg.Config.API.Timeout,
			Tokens: companion.TokenSourceFunc(func() string {
				if sess == nil {
					return ""
				}
				return sess.Token()
			}),
			UUIDGenerator: uuid.NewGoogleUUIDGenerator(),
			Logger:        logger.Named("companion"),
		})
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to create companion client")
		}
	}

	sess = sessionService.NewService(&sessionService.ServiceConfig{
		Client:     companionClient,
		Repository: tokenRepo,
		Profile:    cfg.Config.Profile,
		Logger:     logger.Named("session"),
	})

	charService := characterService.NewService(&characterService.ServiceConfig{
		Client:  companionClient,
		Session: sess,
		Logger:  logger.Named("character"),
	})

	classService := classesService.NewService(&classesService.ServiceConfig{
		Client: dndClient,
		Logger: logger.Named("classes"),
	})

	return &Provider{
		SessionService:   sess,
		CharacterService: charService,
		ClassesService:   classService,
		TokenRepository:  tokenRepo,
	}, nil
}

// TokenStore is the token repository selected from config together with the
// handle that owns its connection
type TokenStore struct {
	Repository tokens.Repository
	Backend    string
	closer     io.Closer
}

// Close releases the Redis client or SQLite file, if any
func (s *TokenStore) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// OpenTokenStore picks Redis when a URL is configured, then the SQLite file
// named by TokenDB, then memory. An unreachable Redis falls through to the
// next option with a warning.
func OpenTokenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*TokenStore, error) {
	logger = observability.OrNop(logger)
	ttl := cfg.Redis.TokenTTL

	redisClient, err := ConnectRedis(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, falling back", zap.Error(err))
	}
	if redisClient != nil {
		return &TokenStore{
			Repository: tokens.NewRedisRepository(&tokens.RedisRepoConfig{Client: redisClient, TTL: ttl}),
			Backend:    "redis",
			closer:     redisClient,
		}, nil
	}

	if cfg.TokenDB != "" {
		repo, err := tokens.OpenSQLiteRepository(&tokens.SQLiteRepoConfig{Path: cfg.TokenDB, TTL: ttl})
		if err != nil {
			return nil, err
		}
		logger.Info("using sqlite token store", zap.String("path", cfg.TokenDB))
		return &TokenStore{Repository: repo, Backend: "sqlite", closer: repo}, nil
	}

	logger.Info("using in-memory token store")
	return &TokenStore{
		Repository: tokens.NewInMemoryRepository(&tokens.InMemoryConfig{TTL: ttl}),
		Backend:    "memory",
	}, nil
}

// ConnectRedis dials and pings the configured Redis. It returns nil, nil when
// no URL is configured.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	logger = observability.OrNop(logger)
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to parse redis url")
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, dnderr.WrapWithCode(err, dnderr.CodeUnavailable, "failed to connect to redis")
	}

	logger.Info("connected to redis", zap.String("addr", opts.Addr))
	return client, nil
}
