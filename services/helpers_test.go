package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/mobistore-api/cache"
	"github.com/Kariqs/mobistore-api/initializers"
	"github.com/Kariqs/mobistore-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := initializers.ConnectToDB("sqlite", filepath.Join(t.TempDir(), "shop.db"), 1)
	require.NoError(t, err)
	t.Cleanup(func() { initializers.CloseDB(db) })
	require.NoError(t, initializers.SyncDatabase(db))
	return db
}

var baseTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

type productOpt func(*models.Product)

func withBrand(b string) productOpt { return func(p *models.Product) { p.Brand = b } }
func withPrice(v int64) productOpt { return func(p *models.Product) { p.Price = decimal.NewFromInt(v) } }
func withRAM(v int) productOpt { return func(p *models.Product) { p.RAM = v } }
func withBattery(v int) productOpt { return func(p *models.Product) { p.Battery = v } }
func withNetwork(n string) productOpt { return func(p *models.Product) { p.NetworkType = n } }
func withSeller(id uint) productOpt { return func(p *models.Product) { p.SellerID = id } }
func withImage(url string) productOpt { return func(p *models.Product) { p.ImageURL = url } }
func withCreatedAt(offset int) productOpt {
	return func(p *models.Product) { p.CreatedAt = baseTime.Add(time.Duration(offset) * time.Minute) }
}
func deleted() productOpt { return func(p *models.Product) { p.Status = models.ProductDeleted } }

func seedProduct(t *testing.T, db *gorm.DB, name string, opts ...productOpt) *models.Product {
	t.Helper()
	p := &models.Product{
		SellerID:    1,
		Brand:       "Acme",
		ModelName:   name,
		Price:       decimal.NewFromInt(100),
		Stock:       10,
		RAM:         8,
		ROM:         128,
		NetworkType: "5G",
		Processor:   "Snapdragon",
		Battery:     4500,
		ScreenSize:  6.1,
		Status:      models.ProductActive,
		CreatedAt:   baseTime,
	}
	for _, opt := range opts {
		opt(p)
	}
	require.NoError(t, db.Create(p).Error)
	p.IsActive = p.Status == models.ProductActive
	return p
}

func productIDs(products []models.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	return ids
}

// fakeBlobStore records stored and deleted objects in memory.
type fakeBlobStore struct {
	mu        sync.Mutex
	seq       int
	stored    []string
	deleted   []string
	storeErr  error
	deleteErr error
}

func (f *fakeBlobStore) Store(_ context.Context, filename string, body io.Reader, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.storeErr != nil {
		return "", f.storeErr
	}
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	f.seq++
	url := fmt.Sprintf("https://bucket.s3.us-east-1.amazonaws.com/products/%d-%s", f.seq, filename)
	f.stored = append(f.stored, url)
	return url, nil
}

func (f *fakeBlobStore) Delete(_ context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, url)
	return nil
}

func (f *fakeBlobStore) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// fakeCache is an in-memory FilterOptionsCache that counts its calls.
type fakeCache struct {
	mu          sync.Mutex
	opts        *models.FilterOptions
	gets        int
	sets        int
	invalidated int
	getErr      error
}

func (f *fakeCache) Get(context.Context) (*models.FilterOptions, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.opts == nil {
		return nil, cache.ErrCacheMiss
	}
	return f.opts, nil
}

func (f *fakeCache) Set(_ context.Context, opts *models.FilterOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sets++
	f.opts = opts
	return nil
}

func (f *fakeCache) Invalidate(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidated++
	f.opts = nil
	return nil
}

func (f *fakeCache) counts() (gets, sets, invalidated int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gets, f.sets, f.invalidated
}

var errBoom = errors.New("boom")
