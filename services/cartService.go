package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxCartAttempts bounds the retries of a cart write that lost a race on one
// of the cart unique indexes.
const maxCartAttempts = 3

type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// AddToCart adds quantity units of the product to the user's CURRENT cart,
// creating the cart on first use. Repeated adds of one product increase the
// quantity of its single line; the name and price snapshot of the first add
// is kept.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be at least 1", ErrInvalidInput)
	}

	var product models.Product
	err := s.db.WithContext(ctx).First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, internalError("find product", err)
	}
	if !product.IsActive {
		return nil, fmt.Errorf("%w: product %d", ErrUnavailable, productID)
	}

	for attempt := 1; ; attempt++ {
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			cart, err := currentCart(tx, userID)
			if err != nil {
				return err
			}
			return upsertCartItem(tx, cart.ID, &product, quantity)
		})
		if err == nil {
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, internalError("add to cart", err)
		}
		if attempt == maxCartAttempts {
			zap.S().Warnw("add to cart gave up after unique conflicts", "user_id", userID, "product_id", productID)
			return nil, fmt.Errorf("%w: cart changed concurrently, retry", ErrConflict)
		}
		zap.S().Debugw("add to cart lost a race, retrying", "user_id", userID, "attempt", attempt)
	}

	return s.GetCart(ctx, userID)
}

// currentCart returns the user's CURRENT cart, inserting one if missing. A
// concurrent insert for the same user fails with gorm.ErrDuplicatedKey.
func currentCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ? AND status = ?", userID, models.CartCurrent).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	owner := userID
	cart = models.Cart{
		UserID:       userID,
		Status:       models.CartCurrent,
		CurrentOwner: &owner,
	}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// upsertCartItem inserts a snapshot line or, when the (cart, product) line
// exists, increments its quantity in the same statement.
func upsertCartItem(tx *gorm.DB, cartID uint, product *models.Product, quantity int) error {
	productID := product.ID
	item := models.CartItem{
		CartID:              cartID,
		ProductID:           &productID,
		Quantity:            quantity,
		ProductNameSnapshot: product.ModelName,
		PriceAtAddition:     product.Price,
	}

	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + ?", quantity),
			"updated_at": time.Now(),
		}),
	}).Create(&item).Error
}

// GetCart returns the user's CURRENT cart, or an empty id-less view when the
// user has none.
func (s *CartService) GetCart(ctx context.Context, userID uint) (*models.CartView, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, models.CartCurrent).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.id ASC") }).
		Preload("Items.Product").
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.CartView{
			UserID:      userID,
			Status:      models.CartCurrent,
			TotalAmount: decimal.Zero,
			Items:       []models.CartItemView{},
		}, nil
	}
	if err != nil {
		return nil, internalError("get cart", err)
	}

	return cartView(&cart), nil
}

func cartView(cart *models.Cart) *models.CartView {
	id := cart.ID
	view := &models.CartView{
		ID:          &id,
		UserID:      cart.UserID,
		Status:      cart.Status,
		TotalAmount: decimal.Zero,
		Items:       make([]models.CartItemView, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		line := models.CartItemView{
			ID:                  item.ID,
			CartID:              item.CartID,
			ProductID:           item.ProductID,
			Quantity:            item.Quantity,
			ProductNameSnapshot: item.ProductNameSnapshot,
			PriceAtAddition:     item.PriceAtAddition,
		}
		if item.Product != nil {
			short := item.Product.Short()
			line.Product = &short
		}
		view.Items = append(view.Items, line)
		view.TotalAmount = view.TotalAmount.Add(item.PriceAtAddition.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return view
}

// RemoveCartItem deletes a line of the user's CURRENT cart. Items of other
// users' carts, or of carts that are no longer CURRENT, are reported as not
// found.
func (s *CartService) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	ownedCarts := s.db.Model(&models.Cart{}).
		Select("id").
		Where("user_id = ? AND status = ?", userID, models.CartCurrent)

	result := s.db.WithContext(ctx).
		Where("id = ? AND cart_id IN (?)", itemID, ownedCarts).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return internalError("remove cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: item %d not in your cart", ErrNotFound, itemID)
	}
	return nil
}
