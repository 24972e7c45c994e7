package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"youtube-be/config"
	"youtube-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AddComment posts a comment on a video
func AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Text    string `json:"text" binding:"required,max=2000"`
		VideoID string `json:"videoId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}
	videoID, err := primitive.ObjectIDFromHex(input.VideoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid video ID"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	videos := config.GetCollection(config.VideosCollection)
	count, err := videos.CountDocuments(ctx, bson.M{"_id": videoID})
	if err != nil {
		log.Println("Error checking video:", err)
		internalError(c)
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	now := time.Now()
	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		User:      userID,
		Video:     videoID,
		Text:      text,
		Timestamp: now,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := config.GetCollection(config.CommentsCollection).InsertOne(ctx, comment); err != nil {
		log.Println("Error inserting comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment"})
		return
	}

	_, err = videos.UpdateOne(ctx, bson.M{"_id": videoID}, bson.M{"$push": bson.M{"comments": comment.ID}})
	if err != nil {
		log.Println("Error linking comment to video:", err)
	}

	c.JSON(http.StatusCreated, comment)
}

// GetCommentsByVideo lists a video's comments with their authors
func GetCommentsByVideo(c *gin.Context) {
	videoID, ok := objectIDParam(c, "videoId", "video")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := findComments(ctx, bson.M{"video": videoID})
	if err != nil {
		log.Println("Error retrieving comments:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	views, err := commentsWithUsers(ctx, comments)
	if err != nil {
		log.Println("Error resolving comment authors:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	c.JSON(http.StatusOK, views)
}

func ownedComment(ctx context.Context, c *gin.Context) (*models.Comment, bool) {
	commentID, ok := objectIDParam(c, "id", "comment")
	if !ok {
		return nil, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	var comment models.Comment
	err := config.GetCollection(config.CommentsCollection).FindOne(ctx, bson.M{"_id": commentID}).Decode(&comment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return nil, false
		}
		log.Println("Error retrieving comment:", err)
		internalError(c)
		return nil, false
	}
	if comment.User != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return &comment, true
}

// EditComment lets the author change a comment's text
func EditComment(c *gin.Context) {
	var input struct {
		Text string `json:"text" binding:"required,max=2000"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := strings.TrimSpace(input.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Comment text is required"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, ok := ownedComment(ctx, c)
	if !ok {
		return
	}

	comment.Text = text
	comment.UpdatedAt = time.Now()
	_, err := config.GetCollection(config.CommentsCollection).UpdateOne(ctx,
		bson.M{"_id": comment.ID},
		bson.M{"$set": bson.M{"text": comment.Text, "updatedAt": comment.UpdatedAt}},
	)
	if err != nil {
		log.Println("Error updating comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment lets the author remove a comment
func DeleteComment(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	comment, ok := ownedComment(ctx, c)
	if !ok {
		return
	}

	if _, err := config.GetCollection(config.CommentsCollection).DeleteOne(ctx, bson.M{"_id": comment.ID}); err != nil {
		log.Println("Error deleting comment:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	_, err := config.GetCollection(config.VideosCollection).UpdateOne(ctx,
		bson.M{"_id": comment.Video},
		bson.M{"$pull": bson.M{"comments": comment.ID}},
	)
	if err != nil {
		log.Println("Error unlinking comment from video:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
