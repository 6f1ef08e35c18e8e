package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/charlesng35/heroes/internal/cache"
	"github.com/charlesng35/heroes/internal/models"
	"github.com/charlesng35/heroes/internal/monitoring"
	"github.com/charlesng35/heroes/internal/repository"
)

const (
	// HeroListCacheKey is the cache key holding the full hero list.
	HeroListCacheKey = "heroes"
	// DefaultHeroListTTL bounds how long a cached hero list is served.
	DefaultHeroListTTL = 60 * time.Second
)

// HeroRepository is the persistence contract the hero service depends on.
type HeroRepository interface {
	Insert(ctx context.Context, hero *models.Hero) (*models.Hero, error)
	FindAll(ctx context.Context) ([]models.Hero, error)
	FindByID(ctx context.Context, id uint) (*models.Hero, bool, error)
	UpdateByID(ctx context.Context, id uint, changes repository.HeroChanges) (*models.Hero, error)
	DeleteByID(ctx context.Context, id uint) error
}

// CreateHeroInput describes the fields accepted when creating a hero.
type CreateHeroInput struct {
	Name      string
	Abilities []string
	Origin    string
}

// UpdateHeroInput enumerates mutable hero attributes. Nil fields are left unchanged.
type UpdateHeroInput struct {
	Name      *string
	Abilities *[]string
	Origin    *string
}

// HeroServiceOption customises a HeroService.
type HeroServiceOption func(*HeroService)

// WithHeroListTTL overrides the lifetime of the cached hero list.
func WithHeroListTTL(ttl time.Duration) HeroServiceOption {
	return func(s *HeroService) {
		if ttl > 0 {
			s.listTTL = ttl
		}
	}
}

// HeroService orchestrates hero persistence and the cached hero list.
//
// Writes never touch the cache, so a list cached before a write keeps being served until
// its TTL lapses.
type HeroService struct {
	repo    HeroRepository
	cache   cache.Store
	log     *zap.Logger
	listTTL time.Duration
}

// NewHeroService constructs a HeroService instance.
func NewHeroService(repo HeroRepository, store cache.Store, log *zap.Logger, opts ...HeroServiceOption) (*HeroService, error) {
	if repo == nil {
		return nil, errors.New("hero service: repository is required")
	}
	if store == nil {
		return nil, errors.New("hero service: cache store is required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	svc := &HeroService{
		repo:    repo,
		cache:   store,
		log:     log,
		listTTL: DefaultHeroListTTL,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc, nil
}

// Create persists a new hero.
func (s *HeroService) Create(ctx context.Context, input CreateHeroInput) (*models.Hero, error) {
	hero, err := s.repo.Insert(ctx, &models.Hero{
		Name:      strings.TrimSpace(input.Name),
		Abilities: models.NormaliseAbilities(input.Abilities),
		Origin:    strings.TrimSpace(input.Origin),
	})
	if err != nil {
		s.log.Error("failed to create hero", zap.Error(err))
		observe("create", err)
		return nil, err
	}

	s.log.Info("hero created", zap.Uint("hero_id", hero.ID))
	observe("create", nil)
	return hero, nil
}

// FindAll returns every hero, served from the cache while the cached list is fresh.
func (s *HeroService) FindAll(ctx context.Context) ([]models.Hero, error) {
	if heroes, ok := s.cachedHeroes(ctx); ok {
		s.log.Info("retrieved heroes from cache", zap.Int("count", len(heroes)))
		observe("find_all", nil)
		return heroes, nil
	}

	heroes, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log.Error("failed to retrieve heroes", zap.Error(err))
		observe("find_all", err)
		return nil, err
	}

	s.storeHeroes(ctx, heroes)
	s.log.Info("retrieved heroes from database", zap.Int("count", len(heroes)))
	observe("find_all", nil)
	return heroes, nil
}

// FindOne returns the hero with the given id.
func (s *HeroService) FindOne(ctx context.Context, id uint) (*models.Hero, error) {
	hero, err := s.lookup(ctx, "find_one", id)
	if err != nil {
		return nil, err
	}

	s.log.Info("hero retrieved", zap.Uint("hero_id", id))
	observe("find_one", nil)
	return hero, nil
}

// Update applies a partial update to an existing hero.
func (s *HeroService) Update(ctx context.Context, id uint, input UpdateHeroInput) (*models.Hero, error) {
	if _, err := s.lookup(ctx, "update", id); err != nil {
		return nil, err
	}

	hero, err := s.repo.UpdateByID(ctx, id, repository.HeroChanges{
		Name:      input.Name,
		Abilities: input.Abilities,
		Origin:    input.Origin,
	})
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("hero not found", zap.Uint("hero_id", id))
		observe("update", ErrHeroNotFound)
		return nil, heroNotFound(id)
	}
	if err != nil {
		s.log.Error("failed to update hero", zap.Uint("hero_id", id), zap.Error(err))
		observe("update", err)
		return nil, err
	}

	s.log.Info("hero updated", zap.Uint("hero_id", id))
	observe("update", nil)
	return hero, nil
}

// Remove deletes an existing hero.
func (s *HeroService) Remove(ctx context.Context, id uint) error {
	if _, err := s.lookup(ctx, "remove", id); err != nil {
		return err
	}

	err := s.repo.DeleteByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.log.Warn("hero not found", zap.Uint("hero_id", id))
		observe("remove", ErrHeroNotFound)
		return heroNotFound(id)
	}
	if err != nil {
		s.log.Error("failed to delete hero", zap.Uint("hero_id", id), zap.Error(err))
		observe("remove", err)
		return err
	}

	s.log.Info("hero deleted", zap.Uint("hero_id", id))
	observe("remove", nil)
	return nil
}

// lookup loads a hero and converts absence into a not-found error. Failures are logged and
// counted against operation.
func (s *HeroService) lookup(ctx context.Context, operation string, id uint) (*models.Hero, error) {
	hero, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("failed to find hero", zap.String("operation", operation), zap.Uint("hero_id", id), zap.Error(err))
		observe(operation, err)
		return nil, err
	}
	if !found {
		s.log.Warn("hero not found", zap.String("operation", operation), zap.Uint("hero_id", id))
		observe(operation, ErrHeroNotFound)
		return nil, heroNotFound(id)
	}
	return hero, nil
}

func (s *HeroService) cachedHeroes(ctx context.Context) ([]models.Hero, bool) {
	raw, ok, err := s.cache.Get(ctx, HeroListCacheKey)
	if err != nil {
		s.log.Warn("failed to read hero list from cache", zap.Error(err))
		monitoring.RecordCacheLookup(HeroListCacheKey, "error")
		return nil, false
	}
	if !ok {
		monitoring.RecordCacheLookup(HeroListCacheKey, "miss")
		return nil, false
	}

	heroes := make([]models.Hero, 0)
	if err := json.Unmarshal(raw, &heroes); err != nil {
		s.log.Warn("discarding undecodable cached hero list", zap.Error(err))
		monitoring.RecordCacheLookup(HeroListCacheKey, "error")
		return nil, false
	}

	monitoring.RecordCacheLookup(HeroListCacheKey, "hit")
	return heroes, true
}

func (s *HeroService) storeHeroes(ctx context.Context, heroes []models.Hero) {
	raw, err := json.Marshal(heroes)
	if err != nil {
		s.log.Warn("failed to encode hero list for cache", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, HeroListCacheKey, raw, s.listTTL); err != nil {
		s.log.Warn("failed to write hero list to cache", zap.Error(err))
	}
}

func observe(operation string, err error) {
	result := "success"
	switch {
	case err == nil:
	case errors.Is(err, ErrHeroNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	monitoring.RecordHeroOperation(operation, result)
}
