package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"youtube-be/config"
	"youtube-be/models"
	"youtube-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikedVideoLister reads a user's liked-videos index.
type LikedVideoLister interface {
	LikedVideos(ctx context.Context, userID primitive.ObjectID) ([]models.Video, error)
}

// GetUserProfile retrieves the authenticated user's information
func GetUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var user models.User
	err := config.GetCollection(config.UsersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Println("Error loading profile:", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"_id":       user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"avatar":    user.Avatar,
		"channelId": user.ChannelID(),
	})
}

// GetLikedVideos lists the videos the authenticated user has liked.
func GetLikedVideos(lister LikedVideoLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		videos, err := lister.LikedVideos(ctx, userID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			log.Println("Error listing liked videos:", err)
			internalError(c)
			return
		}

		c.JSON(http.StatusOK, videos)
	}
}
