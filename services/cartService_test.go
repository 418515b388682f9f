package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddToCart_CreatesCartWithSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	phone := seedProduct(t, db, "Pixel 9", withPrice(200))

	cart, err := svc.AddToCart(context.Background(), 10, phone.ID, 2)
	require.NoError(t, err)

	require.NotNil(t, cart.ID)
	assert.Equal(t, uint(10), cart.UserID)
	assert.Equal(t, models.CartCurrent, cart.Status)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "Pixel 9", cart.Items[0].ProductNameSnapshot)
	assert.True(t, decimal.NewFromInt(200).Equal(cart.Items[0].PriceAtAddition))
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, phone.ID, cart.Items[0].Product.ID)
	assert.True(t, decimal.NewFromInt(400).Equal(cart.TotalAmount))
}

func TestAddToCart_RepeatedAddIncrementsAndKeepsSnapshot(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	phone := seedProduct(t, db, "Pixel 9", withPrice(200))

	_, err := svc.AddToCart(ctx, 10, phone.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", phone.ID).
		Updates(map[string]any{"price": decimal.NewFromInt(999), "model_name": "Pixel 9 Pro"}).Error)

	cart, err := svc.AddToCart(ctx, 10, phone.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
	assert.Equal(t, "Pixel 9", cart.Items[0].ProductNameSnapshot)
	assert.True(t, decimal.NewFromInt(200).Equal(cart.Items[0].PriceAtAddition))
	assert.True(t, decimal.NewFromInt(800).Equal(cart.TotalAmount))
	// the nested product view is live
	assert.Equal(t, "Pixel 9 Pro", cart.Items[0].Product.ModelName)
}

func TestAddToCart_TotalAcrossLines(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	a := seedProduct(t, db, "A", withPrice(200))
	b := seedProduct(t, db, "B", withPrice(50))

	_, err := svc.AddToCart(ctx, 10, a.ID, 1)
	require.NoError(t, err)
	cart, err := svc.AddToCart(ctx, 10, b.ID, 3)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, a.ID, *cart.Items[0].ProductID)
	assert.Equal(t, b.ID, *cart.Items[1].ProductID)
	assert.True(t, decimal.NewFromInt(350).Equal(cart.TotalAmount))
}

func TestAddToCart_Errors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	active := seedProduct(t, db, "A")
	inactive := seedProduct(t, db, "B", deleted())

	_, err := svc.AddToCart(ctx, 10, 9999, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddToCart(ctx, 10, inactive.ID, 1)
	assert.ErrorIs(t, err, ErrUnavailable)

	_, err = svc.AddToCart(ctx, 10, active.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.Zero(t, carts)
}

func TestAddToCart_ConcurrentAddsKeepOneCartAndOneLine(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	phone := seedProduct(t, db, "Pixel 9")

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(context.Background(), 10, phone.ID, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ? AND status = ?", 10, models.CartCurrent).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)

	cart, err := svc.GetCart(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
}

// competeForCart registers a create hook that inserts another CURRENT cart for
// the user just before the service inserts its own, for the first races
// attempts. It returns the number of attempts seen.
func competeForCart(t *testing.T, db *gorm.DB, userID uint, races int) *int {
	t.Helper()
	attempts := 0
	err := db.Callback().Create().Before("gorm:create").Register("test:compete_for_cart", func(tx *gorm.DB) {
		if tx.Statement.Table != "carts" {
			return
		}
		attempts++
		if attempts > races {
			return
		}
		now := time.Now()
		tx.AddError(tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO carts (user_id, status, current_owner, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
			userID, models.CartCurrent, userID, now, now,
		).Error)
	})
	require.NoError(t, err)
	return &attempts
}

func TestAddToCart_RetriesAfterLosingCartRace(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	phone := seedProduct(t, db, "Pixel 9", withPrice(200))
	attempts := competeForCart(t, db, 10, 1)

	cart, err := svc.AddToCart(context.Background(), 10, phone.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, *attempts)

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", 10).Count(&carts).Error)
	assert.Equal(t, int64(1), carts)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestAddToCart_GivesUpAfterRepeatedConflicts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	phone := seedProduct(t, db, "Pixel 9")
	attempts := competeForCart(t, db, 10, maxCartAttempts)

	_, err := svc.AddToCart(context.Background(), 10, phone.ID, 1)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxCartAttempts, *attempts)

	var carts, items int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	assert.Zero(t, carts)
	assert.Zero(t, items)
}

func TestAddToCart_FailedLineInsertLeavesNoCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	phone := seedProduct(t, db, "Pixel 9")

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_cart_item", func(tx *gorm.DB) {
		if tx.Statement.Table == "cart_items" {
			tx.AddError(errBoom)
		}
	})
	require.NoError(t, err)

	_, err = svc.AddToCart(context.Background(), 10, phone.ID, 1)
	assert.ErrorIs(t, err, ErrInternal)

	var carts int64
	require.NoError(t, db.Model(&models.Cart{}).Count(&carts).Error)
	assert.Zero(t, carts)
}

func TestGetCart_EmptyView(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)

	cart, err := svc.GetCart(context.Background(), 42)
	require.NoError(t, err)

	assert.Nil(t, cart.ID)
	assert.Equal(t, uint(42), cart.UserID)
	assert.Equal(t, models.CartCurrent, cart.Status)
	assert.True(t, cart.TotalAmount.IsZero())
	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
}

func TestGetCart_IgnoresClosedCarts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	require.NoError(t, db.Create(&models.Cart{UserID: 42, Status: models.CartCheckedOut}).Error)

	cart, err := svc.GetCart(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, cart.ID)
}

func TestRemoveCartItem(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	phone := seedProduct(t, db, "Pixel 9")

	cart, err := svc.AddToCart(ctx, 10, phone.ID, 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	err = svc.RemoveCartItem(ctx, 11, itemID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.RemoveCartItem(ctx, 10, itemID))

	err = svc.RemoveCartItem(ctx, 10, itemID)
	assert.ErrorIs(t, err, ErrNotFound)

	cart, err = svc.GetCart(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.IsZero())
}

func TestRemoveCartItem_ClosedCart(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	phone := seedProduct(t, db, "Pixel 9")

	cart, err := svc.AddToCart(ctx, 10, phone.ID, 1)
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Cart{}).Where("id = ?", *cart.ID).
		Updates(map[string]any{"status": models.CartCheckedOut, "current_owner": nil}).Error)

	err = svc.RemoveCartItem(ctx, 10, cart.Items[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCart_KeepsSnapshotOfRemovedProduct(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCartService(db)
	ctx := context.Background()
	phone := seedProduct(t, db, "Pixel 9", withPrice(300))

	_, err := svc.AddToCart(ctx, 10, phone.ID, 2)
	require.NoError(t, err)

	catalog := NewCatalogService(db, &fakeBlobStore{}, nil)
	require.NoError(t, catalog.HardDeleteProduct(ctx, phone.SellerID, phone.ID))

	cart, err := svc.GetCart(ctx, 10)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Nil(t, cart.Items[0].ProductID)
	assert.Nil(t, cart.Items[0].Product)
	assert.Equal(t, "Pixel 9", cart.Items[0].ProductNameSnapshot)
	assert.True(t, decimal.NewFromInt(600).Equal(cart.TotalAmount))
}
