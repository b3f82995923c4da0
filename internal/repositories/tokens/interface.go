package tokens

//go:generate mockgen -destination=mock/mock.go -package=mocktokens -source=interface.go

import (
	"context"
	"time"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
)

// Data is the persisted login of one profile
type Data struct {
	Token     string        `json:"token"`
	User      *account.User `json:"user,omitempty"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Repository stores the bearer token and cached user per profile.
// Get returns a dnderr NotFound error when nothing is stored.
type Repository interface {
	Get(ctx context.Context, profile string) (*Data, error)
	Set(ctx context.Context, profile string, data *Data) error
	Delete(ctx context.Context, profile string) error
	ListProfiles(ctx context.Context) ([]string, error)
}
