package cache

import (
	"context"
	"errors"

	"github.com/Kariqs/mobistore-api/models"
)

// FilterOptionsCache stores the derived catalog facets between catalog writes.
type FilterOptionsCache interface {
	Get(ctx context.Context) (*models.FilterOptions, error)
	Set(ctx context.Context, opts *models.FilterOptions) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache always misses. It is used when no Redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context) (*models.FilterOptions, error) {
	return nil, ErrCacheMiss
}

func (NopCache) Set(context.Context, *models.FilterOptions) error { return nil }

func (NopCache) Invalidate(context.Context) error { return nil }
