package routes

import (
	"github.com/gin-gonic/gin"
)

func CartRoutes(server *gin.Engine, d *Deps) {
	cart := server.Group("/shop/cart", d.RequireAuth)
	{
		cart.POST("/add", d.Cart.AddToCart)
		cart.GET("", d.Cart.GetCart)
		cart.DELETE("/item/:itemId", d.Cart.RemoveCartItem)
	}
}
