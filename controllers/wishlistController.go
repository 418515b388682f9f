package controllers

import (
	"net/http"

	"github.com/Kariqs/mobistore-api/services"
	"github.com/gin-gonic/gin"
)

type WishlistController struct {
	wishlist *services.WishlistService
}

func NewWishlistController(wishlist *services.WishlistService) *WishlistController {
	return &WishlistController{wishlist: wishlist}
}

func (c *WishlistController) ToggleWishlist(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	productID, ok := idParam(ctx, "productId")
	if !ok {
		return
	}

	res, err := c.wishlist.ToggleWishlist(ctx.Request.Context(), user.UserID, productID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, res)
}

func (c *WishlistController) ListWishlist(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	entries, err := c.wishlist.ListWishlist(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, entries)
}
