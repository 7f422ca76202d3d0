package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"staff-directory/internal/directory"
	"staff-directory/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FacetValueItem is one selectable filter value.
type FacetValueItem struct {
	ID   uuid.UUID
	Name string
}

// FacetUsecase supplies the distinct value lists behind the filter widgets
// and the typeahead search used when adding a new value.
type FacetUsecase interface {
	AllSkills(ctx context.Context) ([]FacetValueItem, error)
	AllProjects(ctx context.Context) ([]FacetValueItem, error)
	AllPositions(ctx context.Context) ([]FacetValueItem, error)
	// AllManagers lists every user who manages at least one member.
	AllManagers(ctx context.Context) ([]FacetValueItem, error)

	SearchSkills(ctx context.Context, query string) ([]FacetValueItem, error)
	SearchProjects(ctx context.Context, query string) ([]FacetValueItem, error)
	SearchPositions(ctx context.Context, query string) ([]FacetValueItem, error)

	CreatePosition(ctx context.Context, name string) (FacetValueItem, error)
	DeleteSkill(ctx context.Context, id uuid.UUID) error

	// InvalidateLists drops the cached value lists after a mutation that can
	// change them.
	InvalidateLists(ctx context.Context)
}

type Facets struct {
	repo     repository.FacetRepository
	managers repository.ManagerRepository
	cache    FacetCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewFacetUsecase(repo repository.FacetRepository, managers repository.ManagerRepository, cache FacetCache, cacheTTL time.Duration, logger *zap.Logger) *Facets {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &Facets{repo: repo, managers: managers, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

func (u *Facets) AllSkills(ctx context.Context) ([]FacetValueItem, error) {
	return u.cachedList(ctx, cacheKeySkills, u.repo.AllSkills)
}

func (u *Facets) AllProjects(ctx context.Context) ([]FacetValueItem, error) {
	return u.cachedList(ctx, cacheKeyProjects, u.repo.AllProjects)
}

func (u *Facets) AllPositions(ctx context.Context) ([]FacetValueItem, error) {
	return u.cachedList(ctx, cacheKeyPositions, u.repo.AllPositions)
}

func (u *Facets) AllManagers(ctx context.Context) ([]FacetValueItem, error) {
	return u.cachedList(ctx, cacheKeyManagers, func(ctx context.Context) ([]repository.FacetValue, error) {
		users, err := u.managers.AllManagers(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]repository.FacetValue, 0, len(users))
		for _, m := range users {
			out = append(out, repository.FacetValue{ID: m.ID, Name: m.Name})
		}
		return out, nil
	})
}

func (u *Facets) SearchSkills(ctx context.Context, query string) ([]FacetValueItem, error) {
	return u.searchList(ctx, query, u.repo.SearchSkills)
}

func (u *Facets) SearchProjects(ctx context.Context, query string) ([]FacetValueItem, error) {
	return u.searchList(ctx, query, u.repo.SearchProjects)
}

func (u *Facets) SearchPositions(ctx context.Context, query string) ([]FacetValueItem, error) {
	return u.searchList(ctx, query, u.repo.SearchPositions)
}

func (u *Facets) CreatePosition(ctx context.Context, name string) (FacetValueItem, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > directory.MaxQueryLen {
		return FacetValueItem{}, ErrInvalidInput
	}

	created, err := u.repo.CreatePosition(ctx, name)
	if err != nil {
		return FacetValueItem{}, ErrInternal
	}

	u.InvalidateLists(ctx)
	return FacetValueItem{ID: created.ID, Name: created.Name}, nil
}

func (u *Facets) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}
	if err := u.repo.DeleteSkill(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrFacetInUse):
			return ErrInUse
		case errors.Is(err, repository.ErrFacetNotFound):
			return ErrNotFound
		default:
			return ErrInternal
		}
	}
	u.InvalidateLists(ctx)
	return nil
}

func (u *Facets) InvalidateLists(ctx context.Context) {
	if u.cache == nil {
		return
	}
	for _, key := range []string{cacheKeySkills, cacheKeyProjects, cacheKeyPositions, cacheKeyManagers} {
		if err := u.cache.Delete(ctx, key); err != nil {
			u.logger.Warn("facet cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func (u *Facets) cachedList(ctx context.Context, key string, load func(context.Context) ([]repository.FacetValue, error)) ([]FacetValueItem, error) {
	if u.cache != nil {
		var cached []FacetValueItem
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			u.logger.Debug("facet cache hit", zap.String("key", key))
			return cached, nil
		}
	}

	values, err := load(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	items := toFacetItems(values)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, items, u.cacheTTL); err != nil {
			u.logger.Warn("facet cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
	return items, nil
}

// searchList intentionally treats an empty query as "nothing", not "all":
// typeahead widgets only show suggestions once the user has typed.
func (u *Facets) searchList(ctx context.Context, query string, search func(context.Context, string) ([]repository.FacetValue, error)) ([]FacetValueItem, error) {
	if len(query) > directory.MaxQueryLen {
		return nil, ErrInvalidInput
	}
	if query == "" {
		return []FacetValueItem{}, nil
	}

	values, err := search(ctx, query)
	if err != nil {
		return nil, ErrInternal
	}
	return toFacetItems(values), nil
}

func toFacetItems(values []repository.FacetValue) []FacetValueItem {
	out := make([]FacetValueItem, 0, len(values))
	for _, v := range values {
		out = append(out, FacetValueItem{ID: v.ID, Name: v.Name})
	}
	return out
}
