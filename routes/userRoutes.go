package routes

import (
	"youtube-be/controllers"

	"github.com/gin-gonic/gin"
)

func UserRoutes(r *gin.Engine, deps Deps, auth gin.HandlerFunc) {
	user := r.Group("/api/user")
	{
		user.POST("/register", controllers.RegisterUser(deps.Tokens))
		user.POST("/login", controllers.LoginUser(deps.Tokens))
		user.GET("/profile", auth, controllers.GetUserProfile)
		user.GET("/liked", auth, controllers.GetLikedVideos(deps.Likes))
	}
}
