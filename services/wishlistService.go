package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Kariqs/mobistore-api/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// ToggleWishlist flips the membership of the product in the user's wishlist.
// Any existing product qualifies, active or not.
func (s *WishlistService) ToggleWishlist(ctx context.Context, userID, productID uint) (*models.WishlistToggle, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error
	if err != nil {
		return nil, internalError("find product", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}

	for attempt := 1; ; attempt++ {
		added, err := s.toggle(ctx, userID, productID)
		if err == nil {
			if added {
				return &models.WishlistToggle{Message: "Added to wishlist", IsWishlisted: true}, nil
			}
			return &models.WishlistToggle{Message: "Removed from wishlist", IsWishlisted: false}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internalError("toggle wishlist", err)
		}
		if attempt == maxCartAttempts {
			return nil, fmt.Errorf("%w: wishlist changed concurrently, retry", ErrConflict)
		}
		zap.S().Debugw("wishlist toggle lost a race, retrying", "user_id", userID, "attempt", attempt)
	}
}

func (s *WishlistService) toggle(ctx context.Context, userID, productID uint) (bool, error) {
	db := s.db.WithContext(ctx)

	result := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.Wishlist{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	entry := models.Wishlist{UserID: userID, ProductID: productID}
	if err := db.Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// ListWishlist returns the user's entries with the live state of each product.
func (s *WishlistService) ListWishlist(ctx context.Context, userID uint) ([]models.WishlistEntry, error) {
	var rows []models.Wishlist
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Product").
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, internalError("list wishlist", err)
	}

	entries := make([]models.WishlistEntry, 0, len(rows))
	for _, row := range rows {
		entry := models.WishlistEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			ProductID: row.ProductID,
		}
		if row.Product != nil {
			entry.Product = row.Product.Short()
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
