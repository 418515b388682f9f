package routes

import (
	"github.com/gin-gonic/gin"
)

func ProfileRoutes(server *gin.Engine, d *Deps) {
	user := server.Group("/api/user", d.RequireAuth)
	{
		user.GET("/profile", d.Profile.GetProfile)
		user.PUT("/profile", d.Profile.UpdateProfile)
		user.POST("/address", d.Profile.AddAddress)
		user.GET("/addresses", d.Profile.ListAddresses)
		user.DELETE("/address/:addressId", d.Profile.DeleteAddress)
	}
}
