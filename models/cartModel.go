package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartCurrent    CartStatus = "CURRENT"
	CartCheckedOut CartStatus = "CHECKED_OUT"
	CartAbandoned  CartStatus = "ABANDONED"
)

// Cart belongs to one user. CurrentOwner mirrors UserID while the cart is
// CURRENT and is NULL otherwise, so its unique index admits at most one
// CURRENT cart per user.
type Cart struct {
	ID           uint       `gorm:"primaryKey"`
	UserID       uint       `gorm:"not null;index"`
	Status       CartStatus `gorm:"size:20;not null;default:CURRENT"`
	CurrentOwner *uint      `gorm:"uniqueIndex"`
	Items        []CartItem `gorm:"foreignKey:CartID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CartItem struct {
	ID                  uint            `gorm:"primaryKey"`
	CartID              uint            `gorm:"not null;uniqueIndex:idx_cart_product"`
	ProductID           *uint           `gorm:"uniqueIndex:idx_cart_product"`
	Quantity            int             `gorm:"not null"`
	ProductNameSnapshot string          `gorm:"size:150;not null"`
	PriceAtAddition     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Product             *Product        `gorm:"foreignKey:ProductID"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type CartItemView struct {
	ID                  uint            `json:"id"`
	CartID              uint            `json:"cart_id"`
	ProductID           *uint           `json:"product_id"`
	Quantity            int             `json:"quantity"`
	ProductNameSnapshot string          `json:"product_name_snapshot"`
	PriceAtAddition     decimal.Decimal `json:"price_at_addition"`
	Product             *ProductShort   `json:"product"`
}

// CartView is the response shape of a cart. ID is nil when the user has no
// CURRENT cart yet.
type CartView struct {
	ID          *uint           `json:"id"`
	UserID      uint            `json:"user_id"`
	Status      CartStatus      `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []CartItemView  `json:"items"`
}

type AddToCartData struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  *int `json:"quantity" binding:"omitempty,min=1"`
}
