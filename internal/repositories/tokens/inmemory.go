package tokens

import (
	"context"
	"sort"
	"sync"
	"time"

	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
)

// InMemoryRepository keeps tokens for the life of the process.
// Useful for testing and when no Redis is configured.
type InMemoryRepository struct {
	mu           sync.RWMutex
	tokens       map[string]*Data
	timeProvider TimeProvider
	ttl          time.Duration
}

// InMemoryConfig configures the in-memory repository. A zero TTL never expires.
type InMemoryConfig struct {
	TimeProvider TimeProvider
	TTL          time.Duration
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository(cfg *InMemoryConfig) Repository {
	if cfg == nil {
		cfg = &InMemoryConfig{}
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &InMemoryRepository{
		tokens:       make(map[string]*Data),
		timeProvider: timeProvider,
		ttl:          cfg.TTL,
	}
}

// Get returns a copy of the stored data
func (r *InMemoryRepository) Get(ctx context.Context, profile string) (*Data, error) {
	if profile == "" {
		return nil, dnderr.InvalidArgument("profile is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, exists := r.tokens[profile]
	if !exists || r.expired(data) {
		return nil, dnderr.NotFoundf("no token stored for profile '%s'", profile).
			WithMeta("profile", profile)
	}

	dataCopy := *data
	return &dataCopy, nil
}

// Set stores a copy of data, stamping UpdatedAt
func (r *InMemoryRepository) Set(ctx context.Context, profile string, data *Data) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}
	if data == nil {
		return dnderr.InvalidArgument("token data cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	data.UpdatedAt = r.timeProvider.Now()
	dataCopy := *data
	r.tokens[profile] = &dataCopy

	return nil
}

// Delete removes the stored data. Deleting a missing profile is not an error.
func (r *InMemoryRepository) Delete(ctx context.Context, profile string) error {
	if profile == "" {
		return dnderr.InvalidArgument("profile is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.tokens, profile)
	return nil
}

// ListProfiles returns the profiles with a live token, sorted
func (r *InMemoryRepository) ListProfiles(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profiles := make([]string, 0, len(r.tokens))
	for profile, data := range r.tokens {
		if !r.expired(data) {
			profiles = append(profiles, profile)
		}
	}
	sort.Strings(profiles)

	return profiles, nil
}

func (r *InMemoryRepository) expired(data *Data) bool {
	return r.ttl > 0 && r.timeProvider.Now().Sub(data.UpdatedAt) >= r.ttl
}
