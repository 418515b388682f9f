package routes

import (
	"github.com/Kariqs/mobistore-api/controllers"
	"github.com/gin-gonic/gin"
)

func DefaultRoutes(server *gin.Engine, d *Deps) {
	server.GET("/", controllers.GetHome)
	server.GET("/health", controllers.Health(d.DB))
}
