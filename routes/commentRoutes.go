package routes

import (
	"youtube-be/controllers"

	"github.com/gin-gonic/gin"
)

// CommentRoutes sets up the comment routes
func CommentRoutes(r *gin.Engine, auth gin.HandlerFunc) {
	comment := r.Group("/api/comment")
	{
		comment.POST("", auth, controllers.AddComment)
		comment.GET("/:videoId", controllers.GetCommentsByVideo)
		comment.PATCH("/:id", auth, controllers.EditComment)
		comment.DELETE("/:id", auth, controllers.DeleteComment)
	}
}
