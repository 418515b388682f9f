package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/storage"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const blobDeleteTimeout = 10 * time.Second

type CatalogService struct {
	db       *gorm.DB
	blobs    storage.BlobStore
	filters  *FilterService
	validate *validator.Validate
}

func NewCatalogService(db *gorm.DB, blobs storage.BlobStore, filters *FilterService) *CatalogService {
	if blobs == nil {
		blobs = storage.Disabled{}
	}
	return &CatalogService{
		db:       db,
		blobs:    blobs,
		filters:  filters,
		validate: validator.New(),
	}
}

// CreateProduct stores the image, then the product row. The uploaded object is
// removed again if the row cannot be written.
func (s *CatalogService) CreateProduct(ctx context.Context, sellerID uint, in models.ProductInput, image *storage.Upload) (*models.Product, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}

	product := models.Product{
		SellerID:    sellerID,
		Brand:       in.Brand,
		ModelName:   in.ModelName,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		RAM:         in.RAM,
		ROM:         in.ROM,
		NetworkType: in.NetworkType,
		Processor:   in.Processor,
		Battery:     in.Battery,
		ScreenSize:  in.ScreenSize,
		Colors:      in.Colors,
		Status:      models.ProductActive,
	}

	if image != nil {
		url, err := s.blobs.Store(ctx, image.Filename, image.Body, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		product.ImageURL = url
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		if product.ImageURL != "" {
			s.deleteBlob(product.ImageURL)
		}
		return nil, internalError("create product", err)
	}
	product.IsActive = true

	s.invalidate()
	zap.S().Infow("product created", "product_id", product.ID, "seller_id", sellerID)
	return &product, nil
}

// UpdateProduct applies the non-nil fields of the update. A new image replaces
// the old one, which is deleted only after the row is saved.
func (s *CatalogService) UpdateProduct(ctx context.Context, sellerID, productID uint, in models.ProductUpdate, image *storage.Upload) (*models.Product, error) {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}

	if in.Price != nil && !in.Price.IsPositive() {
		return nil, fmt.Errorf("%w: price must be greater than zero", ErrInvalidInput)
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, fmt.Errorf("%w: stock cannot be negative", ErrInvalidInput)
	}

	changes := map[string]any{}
	if in.Brand != nil {
		changes["brand"] = *in.Brand
	}
	if in.ModelName != nil {
		changes["model_name"] = *in.ModelName
	}
	if in.Description != nil {
		changes["description"] = *in.Description
	}
	if in.Price != nil {
		changes["price"] = *in.Price
	}
	if in.Stock != nil {
		changes["stock"] = *in.Stock
	}
	if in.IsActive != nil {
		status := models.ProductDeleted
		if *in.IsActive {
			status = models.ProductActive
		}
		changes["status"] = status
	}

	oldImage := ""
	if image != nil {
		url, err := s.blobs.Store(ctx, image.Filename, image.Body, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		oldImage = product.ImageURL
		changes["image_url"] = url
	}

	// only the submitted columns are written so a concurrent status change
	// is not reverted
	if len(changes) > 0 {
		err := s.db.WithContext(ctx).Model(product).Updates(changes).Error
		if err != nil {
			if url, ok := changes["image_url"].(string); ok {
				s.deleteBlob(url)
			}
			return nil, internalError("update product", err)
		}
	}

	if err := s.db.WithContext(ctx).First(product, product.ID).Error; err != nil {
		return nil, internalError("reload product", err)
	}

	if oldImage != "" {
		s.deleteBlob(oldImage)
	}

	s.invalidate()
	return product, nil
}

// SoftDeleteProduct hides the product from buyers while keeping the row for
// cart snapshots and the seller's inventory.
func (s *CatalogService) SoftDeleteProduct(ctx context.Context, sellerID, productID uint) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Model(product).Update("status", models.ProductDeleted).Error
	if err != nil {
		return internalError("soft delete product", err)
	}

	s.invalidate()
	return nil
}

// HardDeleteProduct removes the row for good. Cart lines keep their snapshot
// with a NULL product reference and wishlist rows are dropped.
func (s *CatalogService) HardDeleteProduct(ctx context.Context, sellerID, productID uint) error {
	product, err := s.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.CartItem{}).
			Where("product_id = ?", product.ID).
			Update("product_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.Wishlist{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, product.ID).Error
	})
	if err != nil {
		return internalError("hard delete product", err)
	}

	if product.ImageURL != "" {
		s.deleteBlob(product.ImageURL)
	}

	s.invalidate()
	zap.S().Infow("product removed", "product_id", product.ID, "seller_id", sellerID)
	return nil
}

// SellerInventory lists every product of the seller, including deleted ones.
func (s *CatalogService) SellerInventory(ctx context.Context, sellerID uint) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, internalError("seller inventory", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, internalError("get product", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %d", ErrUnavailable, productID)
	}
	return &product, nil
}

// ownedProduct loads a product of the seller. Products of other sellers are
// reported as missing.
func (s *CatalogService) ownedProduct(ctx context.Context, sellerID, productID uint) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", productID, sellerID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, internalError("find product", err)
	}
	return &product, nil
}

func (s *CatalogService) deleteBlob(url string) {
	ctx, cancel := context.WithTimeout(context.Background(), blobDeleteTimeout)
	defer cancel()
	if err := s.blobs.Delete(ctx, url); err != nil {
		zap.S().Warnw("failed to delete image", "url", url, "error", err)
	}
}

func (s *CatalogService) invalidate() {
	if s.filters != nil {
		s.filters.InvalidateFilterOptions()
	}
}
