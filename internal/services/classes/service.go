package classes

//go:generate mockgen -destination=mock/mock_service.go -package=mockclasses -source=service.go

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/dnd-companion/internal/clients/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e"
	"github.com/KirkDiggler/dnd-companion/internal/domain/rulebook/dnd5e/calculators"
	dnderr "github.com/KirkDiggler/dnd-companion/internal/errors"
	"github.com/KirkDiggler/dnd-companion/internal/observability"
)

const defaultConcurrency = 4

// Service serves the class catalog
type Service interface {
	// List returns every class. When the reference API cannot be reached the
	// built-in SRD catalog is returned instead.
	List(ctx context.Context) ([]*rulebook.Class, error)

	// Search filters List by a case-insensitive term on name or description
	Search(ctx context.Context, term string) ([]*rulebook.Class, error)
}

type service struct {
	client      dnd5e.Client
	concurrency int
	logger      *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Client      dnd5e.Client // Required
	Concurrency int          // Optional, parallel detail fetches
	Logger      *zap.Logger  // Optional
}

// NewService creates a new class catalog service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Client == nil {
		panic("dnd5e client is required")
	}

	svc := &service{
		client:      cfg.Client,
		concurrency: cfg.Concurrency,
		logger:      observability.OrNop(cfg.Logger),
	}
	if svc.concurrency <= 0 {
		svc.concurrency = defaultConcurrency
	}

	return svc
}

func (s *service) List(ctx context.Context) ([]*rulebook.Class, error) {
	refs, err := s.client.ListClasses()
	if err != nil {
		s.logger.Warn("class reference unavailable, using built-in catalog", zap.Error(err))
		return rulebook.SRDClasses(), nil
	}
	refs = slices.DeleteFunc(refs, func(ref *rulebook.Class) bool { return ref == nil })
	if len(refs) == 0 {
		s.logger.Warn("class reference returned no classes, using built-in catalog")
		return rulebook.SRDClasses(), nil
	}

	classes := make([]*rulebook.Class, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, ref := range refs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			class, err := s.client.GetClass(ref.Key)
			if err == nil && class == nil {
				err = dnderr.NotFoundf("class %s has no details", ref.Key)
			}
			if err != nil {
				s.logger.Warn("failed to load class details",
					zap.String("class", ref.Key), zap.Error(err))
				class = &rulebook.Class{
					Key:    ref.Key,
					Name:   ref.Name,
					HitDie: calculators.HitDie(ref.Name),
				}
			}
			classes[i] = class
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return classes, nil
}

func (s *service) Search(ctx context.Context, term string) ([]*rulebook.Class, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*rulebook.Class, 0, len(all))
	for _, class := range all {
		if class != nil && class.Matches(term) {
			matched = append(matched, class)
		}
	}

	return matched, nil
}
