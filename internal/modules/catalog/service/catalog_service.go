package service

import (
	"context"
	"fmt"
	"sync"

	"apnea/internal/modules/catalog/domain"
	catalogout "apnea/internal/modules/catalog/port/out"
	apperrors "apnea/internal/platform/errors"
	applog "apnea/internal/platform/log"
)

type CatalogService struct {
	store catalogout.OverrideStore

	mu       sync.Mutex
	registry *domain.Registry
}

func NewCatalogService(store catalogout.OverrideStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) load(ctx context.Context) (*domain.Registry, error) {
	if s.registry != nil {
		return s.registry, nil
	}
	overrides, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load template overrides: %w", err)
	}
	s.registry = domain.NewRegistry(overrides)
	return s.registry, nil
}

// Resolve maps a name or slug to the registered session-type name.
func (s *CatalogService) Resolve(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	canonical, ok := r.Canonical(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownSessionType, name)
	}
	return canonical, nil
}

func (s *CatalogService) Get(ctx context.Context, name string) (domain.Template, bool, error) {
	canonical, err := s.Resolve(ctx, name)
	if err != nil {
		return domain.Template{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t, _ := s.registry.Get(canonical)
	return t, s.registry.Overridden(canonical), nil
}

func (s *CatalogService) Set(ctx context.Context, name string, t domain.Template) (string, error) {
	canonical, err := s.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.registry.Set(canonical, t); err != nil {
		return "", err
	}
	if err := s.store.Save(ctx, s.registry.Overrides()); err != nil {
		return "", fmt.Errorf("save template overrides: %w", err)
	}
	logger := applog.WithComponent("catalog")
	logger.Info().Str("session_type", canonical).Msg("template updated")
	return canonical, nil
}

func (s *CatalogService) Reset(ctx context.Context, name string) (string, error) {
	canonical, err := s.Resolve(ctx, name)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.registry.Reset(canonical) {
		return canonical, nil
	}
	if err := s.store.Save(ctx, s.registry.Overrides()); err != nil {
		return "", fmt.Errorf("save template overrides: %w", err)
	}
	logger := applog.WithComponent("catalog")
	logger.Info().Str("session_type", canonical).Msg("template reset")
	return canonical, nil
}

// Overridden reports which built-in types currently carry edits.
func (s *CatalogService) Overridden(ctx context.Context) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	out := map[string]bool{}
	for _, name := range r.OverriddenNames() {
		out[name] = true
	}
	return out, nil
}
