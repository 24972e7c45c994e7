package controllers

import (
	"context"
	"net/http"
	"time"

	"youtube-be/middlewares"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const requestTimeout = 10 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

// currentUserID reads the id set by the auth middleware. It writes the error
// response itself and returns false when the id is unusable.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID := c.GetString(middlewares.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDParam parses a hex ObjectID route parameter, answering 400 on failure.
func objectIDParam(c *gin.Context, name, label string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
}
