package routes

import (
	"youtube-be/controllers"

	"github.com/gin-gonic/gin"
)

// ChannelRoutes sets up the channel routes
func ChannelRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	channel := r.Group("/api/channel")
	{
		channel.POST("", auth, controllers.CreateChannel)
		channel.GET("/user/:userId", controllers.GetChannelByUser)
		channel.GET("/:id", controllers.GetChannelByID)
		channel.PUT("/:id", auth, controllers.UpdateChannel)
		channel.DELETE("/:id", auth, controllers.DeleteChannel)
	}
}
