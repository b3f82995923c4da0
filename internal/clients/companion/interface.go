package companion

//go:generate mockgen -destination=mock/mock_client.go -package=mockcompanion -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
)

// TokenSource supplies the bearer token for authenticated calls.
// An empty token sends the request without an Authorization header.
type TokenSource interface {
	Token() string
}

// TokenSourceFunc adapts a function to a TokenSource
type TokenSourceFunc func() string

func (f TokenSourceFunc) Token() string {
	if f == nil {
		return ""
	}
	return f()
}

// Client talks to the companion REST API
type Client interface {
	Register(ctx context.Context, input *account.RegisterInput) (*account.AuthResponse, error)
	Login(ctx context.Context, input *account.LoginInput) (*account.AuthResponse, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*account.User, error)
	VerifyEmail(ctx context.Context, token string) (*account.MessageResponse, error)

	ListCharacters(ctx context.Context) ([]*character.Character, error)
	GetCharacter(ctx context.Context, id string) (*character.Character, error)
	CreateCharacter(ctx context.Context, char *character.Character) (*character.Character, error)
	UpdateCharacter(ctx context.Context, id string, char *character.Character) (*character.Character, error)
	DeleteCharacter(ctx context.Context, id string) error
}
