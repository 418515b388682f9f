package routes

import (
	"github.com/Kariqs/mobistore-api/controllers"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the handlers and middleware the route groups mount.
type Deps struct {
	DB          *gorm.DB
	RequireAuth gin.HandlerFunc
	Auth        *controllers.AuthController
	Profile     *controllers.ProfileController
	Products    *controllers.ProductController
	Cart        *controllers.CartController
	Wishlist    *controllers.WishlistController
}

func RegisterRoutes(server *gin.Engine, d *Deps) {
	DefaultRoutes(server, d)
	AuthRoutes(server, d)
	ProfileRoutes(server, d)
	ProductRoutes(server, d)
	CartRoutes(server, d)
	WishlistRoutes(server, d)
}
