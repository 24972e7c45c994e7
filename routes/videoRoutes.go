package routes

import (
	"youtube-be/controllers"
	"youtube-be/models"

	"github.com/gin-gonic/gin"
)

var voteEndpoints = []struct {
	path   string
	action models.VoteAction
}{
	{"/:id/like", models.VoteLike},
	{"/:id/unlike", models.VoteUnlike},
	{"/:id/dislike", models.VoteDislike},
	{"/:id/undislike", models.VoteUndislike},
}

// VideoRoutes sets up the video routes, including the vote endpoints. Votes
// are accepted as both POST and PATCH.
func VideoRoutes(r *gin.Engine, deps Deps, auth gin.HandlerFunc) {
	video := r.Group("/api/video")
	{
		video.POST("", auth, controllers.UploadVideo)
		video.GET("", controllers.GetAllVideos)
		video.GET("/channel/:channelId", controllers.GetVideosByChannel)
		video.GET("/:id", controllers.GetVideoByID)
		video.PUT("/:id", auth, controllers.UpdateVideo)
		video.DELETE("/:id", auth, controllers.DeleteVideo(deps.Cleaner))
	}

	chain := []gin.HandlerFunc{auth}
	if deps.VoteLimiter != nil {
		chain = append(chain, deps.VoteLimiter)
	}
	for _, ep := range voteEndpoints {
		handlers := append(append([]gin.HandlerFunc{}, chain...), controllers.VoteOnVideo(deps.Votes, ep.action))
		video.POST(ep.path, handlers...)
		video.PATCH(ep.path, handlers...)
	}
}
