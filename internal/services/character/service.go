package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-companion/internal/clients/companion"
	"github.com/KirkDiggler/dnd-companion/internal/domain/account"
	"github.com/KirkDiggler/dnd-companion/internal/domain/character"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
	"github.com/KirkDiggler/dnd-companion/internal/services/session"
)

// Service defines the character service interface
type Service interface {
	// Dashboard loads the current user and a summary of each character
	Dashboard(ctx context.Context) (*Dashboard, error)

	// Sheet loads a character and derives its full sheet
	Sheet(ctx context.Context, characterID string) (*Sheet, error)

	// Create derives the stats of a new character and stores it
	Create(ctx context.Context, input *CreateInput) (*character.Character, error)

	// Update re-derives the stats of a character and stores it
	Update(ctx context.Context, characterID string, input *UpdateInput) (*character.Character, error)

	// Delete removes a character and returns the remaining summaries
	Delete(ctx context.Context, characterID string) ([]*Summary, error)
}

// Dashboard is the landing view of a logged in user
type Dashboard struct {
	User       *account.User
	Characters []*Summary
}

// CreateInput contains the data needed to create a character.
// FixedHP overrides the hit point formula when positive.
type CreateInput struct {
	Character *character.Character
	FixedHP   int
}

// UpdateInput contains the data needed to update a character.
// A positive stored hp.max is kept as the maximum unless FixedHP replaces it
// or RecalculateHP asks for the hit point formula.
type UpdateInput struct {
	Character     *character.Character
	FixedHP       int
	RecalculateHP bool
}

// service implements the Service interface
type service struct {
	client       companion.Client
	session      session.Service
	acCalculator character.ACCalculator
	logger       *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client       companion.Client       // Required
	Session      session.Service        // Required
	ACCalculator character.ACCalculator // Optional, defaults to the 5e rules
	Logger       *zap.Logger            // Optional
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("companion client is required")
	}
	if cfg.Session == nil {
		panic("session service is required")
	}

	svc := &service{
		client:       cfg.Client,
		session:      cfg.Session,
		acCalculator: cfg.ACCalculator,
		logger:       observability.OrNop(cfg.Logger),
	}

	if svc.acCalculator == nil {
		svc.acCalculator = calculators.NewDnD5eACCalculator()
	}

	return svc
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}

	var (
		user  *account.User
		chars []*character.Character
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = s.client.CurrentUser(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		chars, err = s.client.ListCharacters(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Dashboard{
		User:       user,
		Characters: s.summarizeAll(chars),
	}, nil
}

func (s *service) Sheet(ctx context.Context, characterID string) (*Sheet, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	char, err := s.client.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	sheet := BuildSheet(char)
	sheet.ArmorClass = s.acCalculator.Calculate(char)

	return sheet, nil
}

func (s *service) Create(ctx context.Context, input *CreateInput) (*character.Character, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if input == nil || input.Character == nil {
		return nil, dnderr.InvalidArgument("character is required")
	}
	if err := Validate(input.Character); err != nil {
		return nil, err
	}

	char := input.Character
	ApplyDerivedStats(char, &DeriveOptions{
		FixedHP:      input.FixedHP,
		New:          true,
		ACCalculator: s.acCalculator,
	})

	created, err := s.client.CreateCharacter(ctx, char)
	if err != nil {
		return nil, err
	}

	s.logger.Info("created character",
		zap.String("character_id", created.ID),
		zap.String("name", created.Name),
		zap.Int("max_hp", created.HP.Max))

	return created, nil
}

func (s *service) Update(ctx context.Context, characterID string, input *UpdateInput) (*character.Character, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	if input == nil || input.Character == nil {
		return nil, dnderr.InvalidArgument("character is required")
	}
	char := input.Character
	if err := Validate(char); err != nil {
		return nil, err
	}

	fixedHP := input.FixedHP
	if fixedHP <= 0 && !input.RecalculateHP {
		fixedHP = char.HP.Max
	}

	ApplyDerivedStats(char, &DeriveOptions{
		FixedHP:      fixedHP,
		ACCalculator: s.acCalculator,
	})

	return s.client.UpdateCharacter(ctx, characterID, char)
}

func (s *service) Delete(ctx context.Context, characterID string) ([]*Summary, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	if err := s.client.DeleteCharacter(ctx, characterID); err != nil {
		return nil, err
	}
	s.logger.Info("deleted character", zap.String("character_id", characterID))

	chars, err := s.client.ListCharacters(ctx)
	if err != nil {
		return nil, dnderr.Wrap(err, "character deleted but reloading the list failed").
			WithMeta("character_id", characterID)
	}

	return s.summarizeAll(chars), nil
}

func (s *service) requireSession() error {
	if s.session.State() != session.StateAuthenticated {
		return dnderr.Unauthenticated("you must be logged in")
	}
	return nil
}

func (s *service) summarizeAll(chars []*character.Character) []*Summary {
	summaries := make([]*Summary, 0, len(chars))
	for _, char := range chars {
		if char == nil {
			continue
		}
		summary := Summarize(char)
		summary.ArmorClass = s.acCalculator.Calculate(char)
		summaries = append(summaries, summary)
	}
	return summaries
}
