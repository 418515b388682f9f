package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to Mobistore API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/api/auth/register" - Create user account
- POST "/api/auth/login" - Access user account
- POST "/api/auth/logout" - Leave user account
- DELETE "/api/auth/delete-account" - Delete user account and its data

USER
- GET "/api/user/profile" - Get profile
- PUT "/api/user/profile" - Update profile
- POST "/api/user/address" - Add address
- GET "/api/user/addresses" - List addresses
- DELETE "/api/user/address/:addressId" - Delete address

PRODUCTS
- GET "/products/filter-options" - Filter values for the catalog
- GET "/products/search" - Search active products
- GET "/products/:id" - Get product by ID
- POST "/products/add" - Create product (seller)
- GET "/products/my-inventory" - Seller inventory (seller)
- PUT "/products/update/:id" - Update product (seller)
- DELETE "/products/delete/:id" - Deactivate product (seller)
- DELETE "/products/hard-delete/:id" - Delete product and image (seller)

SHOP
- POST "/shop/cart/add" - Add product to cart
- GET "/shop/cart" - Get current cart
- DELETE "/shop/cart/item/:itemId" - Remove cart item
- POST "/shop/wishlist/toggle/:productId" - Toggle wishlist entry
- GET "/shop/wishlist" - Get wishlist`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}

// Health reports whether the store answers a ping.
func Health(db *gorm.DB) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
		defer cancel()

		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(pingCtx)
		}
		if err != nil {
			zap.S().Warnw("health check failed", "error", err)
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
