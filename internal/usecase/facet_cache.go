package usecase

import (
	"context"
	"time"
)

// FacetCache holds rendered facet value lists between requests. Misses and
// unavailable backends are both treated as a miss, never an error surface.
type FacetCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

const (
	cacheKeySkills    = "facets:skills"
	cacheKeyProjects  = "facets:projects"
	cacheKeyPositions = "facets:positions"
	cacheKeyManagers  = "facets:managers"
)
