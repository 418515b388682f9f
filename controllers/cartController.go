package controllers

import (
	"net/http"

	"github.com/Kariqs/mobistore-api/models"
	"github.com/Kariqs/mobistore-api/services"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

// AddToCart adds quantity (default 1) of a product to the caller's cart.
func (c *CartController) AddToCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	var body models.AddToCartData
	if err := ctx.ShouldBindJSON(&body); err != nil {
		badRequest(ctx, msgInvalidInput)
		return
	}
	quantity := 1
	if body.Quantity != nil {
		quantity = *body.Quantity
	}

	cart, err := c.carts.AddToCart(ctx.Request.Context(), user.UserID, body.ProductID, quantity)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, cart)
}

func (c *CartController) GetCart(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}

	cart, err := c.carts.GetCart(ctx.Request.Context(), user.UserID)
	if err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, cart)
}

func (c *CartController) RemoveCartItem(ctx *gin.Context) {
	user, ok := currentUser(ctx)
	if !ok {
		return
	}
	itemID, ok := idParam(ctx, "itemId")
	if !ok {
		return
	}

	if err := c.carts.RemoveCartItem(ctx.Request.Context(), user.UserID, itemID); err != nil {
		respondWithError(ctx, err)
		return
	}
	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Item removed from cart"})
}
