package routes

import (
	"github.com/gin-gonic/gin"
)

func AuthRoutes(server *gin.Engine, d *Deps) {
	auth := server.Group("/api/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
		auth.POST("/logout", d.Auth.Logout)
		auth.DELETE("/delete-account", d.RequireAuth, d.Auth.DeleteAccount)
	}
}
