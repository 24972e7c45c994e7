package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"youtube-be/models"
	"youtube-be/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteApplier is satisfied by *services.EngagementService.
type VoteApplier interface {
	Vote(ctx context.Context, action models.VoteAction, videoID, userID primitive.ObjectID) (models.VoteCounts, error)
}

// VoteOnVideo applies action for the authenticated user on video :id and
// responds with the video's {likes, dislikes}.
func VoteOnVideo(svc VoteApplier, action models.VoteAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		videoID, ok := objectIDParam(c, "id", "video")
		if !ok {
			return
		}
		userID, ok := currentUserID(c)
		if !ok {
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		counts, err := svc.Vote(ctx, action, videoID, userID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Video or user not found"})
			case errors.Is(err, services.ErrVoteInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": "Vote already in progress, please retry"})
			default:
				log.Printf("Error applying %s on video %s: %v", action, videoID.Hex(), err)
				internalError(c)
			}
			return
		}

		c.JSON(http.StatusOK, counts)
	}
}
