package routes

import (
	"github.com/Kariqs/mobistore-api/middlewares"
	"github.com/Kariqs/mobistore-api/models"
	"github.com/gin-gonic/gin"
)

func ProductRoutes(server *gin.Engine, d *Deps) {
	products := server.Group("/products")
	{
		products.GET("/filter-options", d.Products.FilterOptions)
		products.GET("/search", d.Products.Search)

		seller := products.Group("", d.RequireAuth, middlewares.RequireRole(models.RoleSeller))
		seller.POST("/add", d.Products.CreateProduct)
		seller.GET("/my-inventory", d.Products.SellerInventory)
		seller.PUT("/update/:id", d.Products.UpdateProduct)
		seller.DELETE("/delete/:id", d.Products.SoftDeleteProduct)
		seller.DELETE("/hard-delete/:id", d.Products.HardDeleteProduct)

		products.GET("/:id", d.Products.GetProduct)
	}
}
