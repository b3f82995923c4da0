package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

// profilesKey indexes stored profiles. It lives outside the token: namespace
// so no profile name can collide with it.
const profilesKey = "token_index:profiles"

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider TimeProvider
	ttl          time.Duration
}

// RedisRepoConfig configures the Redis repository. A zero TTL never expires.
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider TimeProvider
	TTL          time.Duration
}

// NewRedisRepository creates a new Redis-backed token repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
		ttl:          cfg.TTL,
	}
}

func tokenKey(profile string) string {
	return fmt.Sprintf("token:%s", profile)
}

func (r *redisRepo) Get(ctx context.Context, profile string) (*Data, error) {
	if profile == "" {
		return nil, dnderr.InvalidArgument("profile is required")
	}

	jsonData, err := r.client.Get(ctx, tokenKey(profile)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, dnderr.NotFoundf("no token stored for profile '%s'", profile).
				WithMeta("profile", profile)
		}
		return nil, dnderr.Wrap(err, "failed to get token from Redis").
			WithMeta("profile", profile)
	}

	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, dnderr.Wrap(err, "failed to unmarshal token data").
			WithMeta("profile", profile)
	}

	return &data, nil
}

func (r *redisRepo) Set(ctx context.Context, profile string, data *Data) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}
	if data == nil {
		return dnderr.InvalidArgument("token data cannot be nil")
	}

	data.UpdatedAt = r.timeProvider.Now()

	jsonData, err := json.Marshal(data)
	if err != nil {
		return dnderr.Wrap(err, "failed to marshal token data")
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, tokenKey(profile), string(jsonData), r.ttl)
	pipe.SAdd(ctx, profilesKey, profile)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to set token in Redis").
			WithMeta("profile", profile)
	}

	return nil
}

func (r *redisRepo) Delete(ctx context.Context, profile string) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, tokenKey(profile))
	pipe.SRem(ctx, profilesKey, profile)
	if _, err := pipe.Exec(ctx); err != nil {
		return dnderr.Wrap(err, "failed to delete token from Redis").
			WithMeta("profile", profile)
	}

	return nil
}

// ListProfiles returns the indexed profiles whose token key still exists.
// Profiles whose token expired are pruned from the index.
func (r *redisRepo) ListProfiles(ctx context.Context) ([]string, error) {
	members, err := r.client.SMembers(ctx, profilesKey).Result()
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to list token profiles from Redis")
	}
	sort.Strings(members)

	profiles := make([]string, 0, len(members))
	var stale []any
	for _, profile := range members {
		exists, err := r.client.Exists(ctx, tokenKey(profile)).Result()
		if err != nil {
			return nil, dnderr.Wrap(err, "failed to check token in Redis").
				WithMeta("profile", profile)
		}
		if exists == 0 {
			stale = append(stale, profile)
			continue
		}
		profiles = append(profiles, profile)
	}

	if len(stale) > 0 {
		if err := r.client.SRem(ctx, profilesKey, stale...).Err(); err != nil {
			return nil, dnderr.Wrap(err, "failed to prune token profiles")
		}
	}

	return profiles, nil
}
