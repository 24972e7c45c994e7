package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"youtube-be/config"
	"youtube-be/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikeIndexCleaner removes a deleted video from every user's liked index.
type LikeIndexCleaner interface {
	PullLikedVideo(ctx context.Context, videoID primitive.ObjectID) (int64, error)
}

// UploadVideo publishes a video on the caller's channel
func UploadVideo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		Title       string `json:"title" binding:"required,max=200"`
		Description string `json:"description"`
		VideoLink   string `json:"videoLink" binding:"required"`
		Thumbnail   string `json:"thumbnail"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	channel, err := findChannel(ctx, bson.M{"owner": userID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Create a channel before uploading videos"})
			return
		}
		log.Println("Error retrieving channel:", err)
		internalError(c)
		return
	}

	video := models.NewVideo(channel.ID, input.Title, input.VideoLink)
	video.Description = input.Description
	video.Thumbnail = input.Thumbnail
	video.Category = input.Category

	if _, err := config.GetCollection(config.VideosCollection).InsertOne(ctx, video); err != nil {
		log.Println("Error inserting video:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload video"})
		return
	}

	_, err = config.GetCollection(config.ChannelsCollection).UpdateOne(ctx,
		bson.M{"_id": channel.ID},
		bson.M{"$push": bson.M{"videos": video.ID}, "$set": bson.M{"updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("Error adding video to channel:", err)
	}

	c.JSON(http.StatusCreated, video)
}

// GetAllVideos lists every video with its channel
func GetAllVideos(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	videos, err := findVideos(ctx, bson.M{})
	if err != nil {
		log.Println("Error retrieving videos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	views, err := withChannels(ctx, videos)
	if err != nil {
		log.Println("Error resolving channels:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	c.JSON(http.StatusOK, views)
}

// GetVideoByID returns a video with its channel and comments
func GetVideoByID(c *gin.Context) {
	videoID, ok := objectIDParam(c, "id", "video")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	var video models.Video
	err := config.GetCollection(config.VideosCollection).FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return
		}
		log.Println("Error retrieving video:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve video"})
		return
	}

	channels, err := channelsByID(ctx, []primitive.ObjectID{video.Channel})
	if err != nil {
		log.Println("Error resolving channel:", err)
		internalError(c)
		return
	}

	comments, err := findComments(ctx, bson.M{"video": video.ID})
	if err != nil {
		log.Println("Error retrieving comments:", err)
		internalError(c)
		return
	}
	commentViews, err := commentsWithUsers(ctx, comments)
	if err != nil {
		log.Println("Error resolving comment authors:", err)
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, videoDetail{
		Video:    video,
		Channel:  channels[video.Channel],
		Comments: commentViews,
	})
}

// GetVideosByChannel lists a channel's videos
func GetVideosByChannel(c *gin.Context) {
	channelID, ok := objectIDParam(c, "channelId", "channel")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	videos, err := findVideos(ctx, bson.M{"channel": channelID})
	if err != nil {
		log.Println("Error retrieving channel videos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	c.JSON(http.StatusOK, videos)
}

// ownedVideo loads video :id and checks the caller owns its channel. It writes
// the error response itself.
func ownedVideo(ctx context.Context, c *gin.Context) (*models.Video, bool) {
	videoID, ok := objectIDParam(c, "id", "video")
	if !ok {
		return nil, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	var video models.Video
	err := config.GetCollection(config.VideosCollection).FindOne(ctx, bson.M{"_id": videoID}).Decode(&video)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
			return nil, false
		}
		log.Println("Error retrieving video:", err)
		internalError(c)
		return nil, false
	}

	channel, err := findChannel(ctx, bson.M{"_id": video.Channel})
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		log.Println("Error retrieving channel:", err)
		internalError(c)
		return nil, false
	}
	if channel == nil || channel.Owner != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return &video, true
}

// UpdateVideo lets the channel owner edit a video's details
func UpdateVideo(c *gin.Context) {
	var input struct {
		Title       *string `json:"title,omitempty"`
		Description *string `json:"description,omitempty"`
		VideoLink   *string `json:"videoLink,omitempty"`
		Thumbnail   *string `json:"thumbnail,omitempty"`
		Category    *string `json:"category,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	video, ok := ownedVideo(ctx, c)
	if !ok {
		return
	}

	now := time.Now()
	update := bson.M{"updatedAt": now}
	if input.Title != nil {
		if *input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
			return
		}
		video.Title = *input.Title
		update["title"] = *input.Title
	}
	if input.Description != nil {
		video.Description = *input.Description
		update["description"] = *input.Description
	}
	if input.VideoLink != nil {
		if *input.VideoLink == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "videoLink cannot be empty"})
			return
		}
		video.VideoLink = *input.VideoLink
		update["videoLink"] = *input.VideoLink
	}
	if input.Thumbnail != nil {
		video.Thumbnail = *input.Thumbnail
		update["thumbnail"] = *input.Thumbnail
	}
	if input.Category != nil {
		video.Category = *input.Category
		update["category"] = *input.Category
	}
	video.UpdatedAt = now

	_, err := config.GetCollection(config.VideosCollection).UpdateOne(ctx, bson.M{"_id": video.ID}, bson.M{"$set": update})
	if err != nil {
		log.Println("Error updating video:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update video"})
		return
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a video along with its comments, its channel entry and
// every like index entry pointing at it.
func DeleteVideo(cleaner LikeIndexCleaner) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		video, ok := ownedVideo(ctx, c)
		if !ok {
			return
		}

		if _, err := config.GetCollection(config.VideosCollection).DeleteOne(ctx, bson.M{"_id": video.ID}); err != nil {
			log.Println("Error deleting video:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
			return
		}

		_, err := config.GetCollection(config.ChannelsCollection).UpdateOne(ctx,
			bson.M{"_id": video.Channel},
			bson.M{"$pull": bson.M{"videos": video.ID}},
		)
		if err != nil {
			log.Printf("Error pulling video %s from channel: %v", video.ID.Hex(), err)
		}

		if _, err := config.GetCollection(config.CommentsCollection).DeleteMany(ctx, bson.M{"video": video.ID}); err != nil {
			log.Printf("Error deleting comments of video %s: %v", video.ID.Hex(), err)
		}

		n, err := cleaner.PullLikedVideo(ctx, video.ID)
		if err != nil {
			log.Printf("Error pulling video %s from liked indexes: %v", video.ID.Hex(), err)
		} else if n > 0 {
			log.Printf("Removed video %s from %d liked indexes", video.ID.Hex(), n)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
	}
}
