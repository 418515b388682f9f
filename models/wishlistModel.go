package models

import "time"

type Wishlist struct {
	ID        uint     `gorm:"primaryKey"`
	UserID    uint     `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID uint     `gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

type WishlistEntry struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"user_id"`
	ProductID uint         `json:"product_id"`
	Product   ProductShort `json:"product"`
}

type WishlistToggle struct {
	Message      string `json:"message"`
	IsWishlisted bool   `json:"is_wishlisted"`
}
