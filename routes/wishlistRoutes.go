package routes

import (
	"github.com/gin-gonic/gin"
)

func WishlistRoutes(server *gin.Engine, d *Deps) {
	wishlist := server.Group("/shop/wishlist", d.RequireAuth)
	{
		wishlist.POST("/toggle/:productId", d.Wishlist.ToggleWishlist)
		wishlist.GET("", d.Wishlist.ListWishlist)
	}
}
