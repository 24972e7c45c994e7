package routes

import (
	"net/http"

	"youtube-be/controllers"
	"youtube-be/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps carries what the handlers need beyond the shared Mongo collections.
type Deps struct {
	Tokens      controllers.TokenConfig
	Votes       controllers.VoteApplier
	Likes       controllers.LikedVideoLister
	Cleaner     controllers.LikeIndexCleaner
	VoteLimiter gin.HandlerFunc // optional
	MediaDir    string
	CORSOrigins []string
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.ExposeHeaders = []string{middlewares.RequestIDHeader}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// Setup registers middleware and every resource group on r.
func Setup(r *gin.Engine, deps Deps) {
	r.Use(corsMiddleware(deps.CORSOrigins))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if deps.MediaDir != "" {
		r.Static("/media", deps.MediaDir)
	}

	auth := middlewares.AuthMiddleware(deps.Tokens.Secret)
	UserRoutes(r, deps, auth)
	ChannelRoutes(r, auth)
	VideoRoutes(r, deps, auth)
	CommentRoutes(r, auth)
}
