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

func channelResponse(ch *models.Channel, videos any) gin.H {
	resp := gin.H{
		"_id":           ch.ID,
		"channelId":     ch.ID.Hex(),
		"channelName":   ch.ChannelName,
		"description":   ch.Description,
		"channelPic":    ch.ChannelPic,
		"channelBanner": ch.ChannelBanner,
		"owner":         ch.Owner,
		"subscribers":   ch.Subscribers,
		"createdAt":     ch.CreatedAt,
		"updatedAt":     ch.UpdatedAt,
	}
	if videos != nil {
		resp["videos"] = videos
	} else {
		resp["videos"] = ch.Videos
	}
	return resp
}

// CreateChannel creates a channel owned by the authenticated user
func CreateChannel(c *gin.Context) {
	ownerID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input struct {
		ChannelName   string `json:"channelName" binding:"required,max=100"`
		Description   string `json:"description"`
		ChannelPic    string `json:"channelPic"`
		ChannelBanner string `json:"channelBanner"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	now := time.Now()
	channel := models.Channel{
		ID:            primitive.NewObjectID(),
		ChannelName:   input.ChannelName,
		Description:   input.Description,
		ChannelPic:    input.ChannelPic,
		ChannelBanner: input.ChannelBanner,
		Owner:         ownerID,
		Videos:        []primitive.ObjectID{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := config.GetCollection(config.ChannelsCollection).InsertOne(ctx, channel); err != nil {
		log.Println("Error creating channel:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create channel"})
		return
	}

	_, err := config.GetCollection(config.UsersCollection).UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$set": bson.M{"channel": channel.ID, "updatedAt": now}},
	)
	if err != nil {
		log.Println("Error linking channel to user:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to link channel"})
		return
	}

	c.JSON(http.StatusCreated, channelResponse(&channel, nil))
}

func findChannel(ctx context.Context, filter bson.M) (*models.Channel, error) {
	var channel models.Channel
	if err := config.GetCollection(config.ChannelsCollection).FindOne(ctx, filter).Decode(&channel); err != nil {
		return nil, err
	}
	return &channel, nil
}

func respondWithChannelVideos(c *gin.Context, filter bson.M) {
	ctx, cancel := requestContext(c)
	defer cancel()

	channel, err := findChannel(ctx, filter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
			return
		}
		log.Println("Error retrieving channel:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve channel"})
		return
	}

	videos, err := findVideos(ctx, bson.M{"channel": channel.ID})
	if err != nil {
		log.Println("Error retrieving channel videos:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve videos"})
		return
	}

	c.JSON(http.StatusOK, channelResponse(channel, videos))
}

// GetChannelByID returns a channel with its videos
func GetChannelByID(c *gin.Context) {
	channelID, ok := objectIDParam(c, "id", "channel")
	if !ok {
		return
	}
	respondWithChannelVideos(c, bson.M{"_id": channelID})
}

// GetChannelByUser returns the channel owned by :userId
func GetChannelByUser(c *gin.Context) {
	ownerID, ok := objectIDParam(c, "userId", "user")
	if !ok {
		return
	}
	respondWithChannelVideos(c, bson.M{"owner": ownerID})
}

// ownedChannel loads channel :id and checks the caller owns it. It writes the
// error response itself.
func ownedChannel(ctx context.Context, c *gin.Context) (*models.Channel, bool) {
	channelID, ok := objectIDParam(c, "id", "channel")
	if !ok {
		return nil, false
	}
	userID, ok := currentUserID(c)
	if !ok {
		return nil, false
	}

	channel, err := findChannel(ctx, bson.M{"_id": channelID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Channel not found"})
			return nil, false
		}
		log.Println("Error retrieving channel:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve channel"})
		return nil, false
	}
	if channel.Owner != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return channel, true
}

// UpdateChannel lets the owner change the channel's details
func UpdateChannel(c *gin.Context) {
	var input struct {
		ChannelName   *string `json:"channelName,omitempty"`
		Description   *string `json:"description,omitempty"`
		ChannelPic    *string `json:"channelPic,omitempty"`
		ChannelBanner *string `json:"channelBanner,omitempty"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	channel, ok := ownedChannel(ctx, c)
	if !ok {
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if input.ChannelName != nil {
		if *input.ChannelName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "channelName cannot be empty"})
			return
		}
		channel.ChannelName = *input.ChannelName
		update["channelName"] = *input.ChannelName
	}
	if input.Description != nil {
		channel.Description = *input.Description
		update["description"] = *input.Description
	}
	if input.ChannelPic != nil {
		channel.ChannelPic = *input.ChannelPic
		update["channelPic"] = *input.ChannelPic
	}
	if input.ChannelBanner != nil {
		channel.ChannelBanner = *input.ChannelBanner
		update["channelBanner"] = *input.ChannelBanner
	}
	channel.UpdatedAt = update["updatedAt"].(time.Time)

	_, err := config.GetCollection(config.ChannelsCollection).UpdateOne(ctx, bson.M{"_id": channel.ID}, bson.M{"$set": update})
	if err != nil {
		log.Println("Error updating channel:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update channel"})
		return
	}

	c.JSON(http.StatusOK, channelResponse(channel, nil))
}

// DeleteChannel lets the owner delete the channel and unlinks it from the user
func DeleteChannel(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	channel, ok := ownedChannel(ctx, c)
	if !ok {
		return
	}

	if _, err := config.GetCollection(config.ChannelsCollection).DeleteOne(ctx, bson.M{"_id": channel.ID}); err != nil {
		log.Println("Error deleting channel:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete channel"})
		return
	}

	_, err := config.GetCollection(config.UsersCollection).UpdateOne(ctx,
		bson.M{"_id": channel.Owner, "channel": channel.ID},
		bson.M{"$set": bson.M{"channel": nil, "updatedAt": time.Now()}},
	)
	if err != nil {
		log.Println("Error unlinking channel from user:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Channel deleted"})
}
