package services

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"time"

	"github.com/Kariqs/mobistore-api/cache"
	"github.com/Kariqs/mobistore-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

var (
	defaultMinPrice = decimal.Zero
	defaultMaxPrice = decimal.NewFromInt(100000)
)

type FilterService struct {
	db    *gorm.DB
	cache cache.FilterOptionsCache
	sfg   singleflight.Group

	// generation counts invalidations. A load only publishes to the cache
	// when no invalidation happened while it read the catalog.
	generation atomic.Uint64
}

func NewFilterService(db *gorm.DB, c cache.FilterOptionsCache) *FilterService {
	if c == nil {
		c = cache.NopCache{}
	}
	return &FilterService{db: db, cache: c}
}

// FilterOptions returns the distinct facet values of the active catalog.
func (s *FilterService) FilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	v, err, _ := s.sfg.Do("filter-options", func() (any, error) {
		// the flight is shared, so one caller's cancellation must not fail
		// the others
		ctx := context.WithoutCancel(ctx)

		opts, err := s.cache.Get(ctx)
		if err == nil {
			return opts, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			zap.S().Warnw("filter options cache get failed", "error", err)
		}

		gen := s.generation.Load()
		opts, err = s.loadFilterOptions(ctx)
		if err != nil {
			return nil, err
		}
		s.publish(gen, opts)

		return opts, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.FilterOptions), nil
}

// publish stores opts loaded at generation gen. A catalog write that
// invalidated during the load or the store wins: the entry is skipped or
// dropped again.
func (s *FilterService) publish(gen uint64, opts *models.FilterOptions) {
	if s.generation.Load() != gen {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Set(ctx, opts); err != nil {
		zap.S().Warnw("filter options cache set failed", "error", err)
		return
	}
	if s.generation.Load() != gen {
		if err := s.cache.Invalidate(ctx); err != nil {
			zap.S().Warnw("filter options cache invalidate failed", "error", err)
		}
	}
}

func (s *FilterService) loadFilterOptions(ctx context.Context) (*models.FilterOptions, error) {
	db := s.db.WithContext(ctx)
	opts := &models.FilterOptions{}

	if err := pluckDistinct(db, "brand", &opts.Brands); err != nil {
		return nil, internalError("distinct brand", err)
	}
	if err := pluckDistinct(db, "ram", &opts.RAMOptions); err != nil {
		return nil, internalError("distinct ram", err)
	}
	if err := pluckDistinct(db, "rom", &opts.ROMOptions); err != nil {
		return nil, internalError("distinct rom", err)
	}
	if err := pluckDistinct(db, "network_type", &opts.NetworkTypes); err != nil {
		return nil, internalError("distinct network_type", err)
	}
	if err := pluckDistinct(db, "processor", &opts.Processors); err != nil {
		return nil, internalError("distinct processor", err)
	}
	if err := pluckDistinct(db, "battery", &opts.BatteryOptions); err != nil {
		return nil, internalError("distinct battery", err)
	}
	if err := pluckDistinct(db, "screen_size", &opts.ScreenSizes); err != nil {
		return nil, internalError("distinct screen_size", err)
	}

	var bounds struct {
		MinPrice decimal.NullDecimal
		MaxPrice decimal.NullDecimal
	}
	err := db.Model(&models.Product{}).
		Select("MIN(price) AS min_price, MAX(price) AS max_price").
		Where("status = ?", models.ProductActive).
		Scan(&bounds).Error
	if err != nil {
		return nil, internalError("price range", err)
	}

	opts.PriceRange = models.PriceRange{Min: defaultMinPrice, Max: defaultMaxPrice}
	if bounds.MinPrice.Valid {
		opts.PriceRange.Min = bounds.MinPrice.Decimal
	}
	if bounds.MaxPrice.Valid {
		opts.PriceRange.Max = bounds.MaxPrice.Decimal
	}

	return opts, nil
}

func pluckDistinct[T string | int | float64](db *gorm.DB, column string, dest *[]T) error {
	values := []T{}
	err := db.Model(&models.Product{}).
		Where("status = ?", models.ProductActive).
		Where(column + " IS NOT NULL").
		Distinct(column).
		Pluck(column, &values).Error
	if err != nil {
		return err
	}
	slices.Sort(values)
	*dest = values
	return nil
}

// Search returns the active products matching every supplied filter,
// newest first.
func (s *FilterService) Search(ctx context.Context, f models.SearchFilters) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Where("status = ?", models.ProductActive)

	if len(f.Brands) > 0 {
		query = query.Where("brand IN ?", f.Brands)
	}
	if len(f.RAM) > 0 {
		query = query.Where("ram IN ?", f.RAM)
	}
	if len(f.ROM) > 0 {
		query = query.Where("rom IN ?", f.ROM)
	}
	if len(f.Networks) > 0 {
		query = query.Where("network_type IN ?", f.Networks)
	}
	if len(f.Processors) > 0 {
		query = query.Where("processor IN ?", f.Processors)
	}

	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}
	if f.MinBattery != nil {
		query = query.Where("battery >= ?", *f.MinBattery)
	}

	products := []models.Product{}
	if err := query.Order("created_at DESC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, internalError("search products", err)
	}
	return products, nil
}

// InvalidateFilterOptions drops the cached facets after a catalog write.
func (s *FilterService) InvalidateFilterOptions() {
	s.generation.Add(1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Invalidate(ctx); err != nil {
		zap.S().Warnw("filter options cache invalidate failed", "error", err)
	}
}
