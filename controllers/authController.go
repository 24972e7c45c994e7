package controllers

import (
	"errors"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"youtube-be/config"
	"youtube-be/models"
	authUtils "youtube-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TokenConfig is what the auth handlers need to issue tokens.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const passwordSpecials = "@$!%*?#&"

const weakPasswordMsg = "Password must be at least 6 characters long and include 1 uppercase, 1 lowercase, 1 number, and 1 special character."

// strongPassword requires six or more characters drawn from letters, digits
// and passwordSpecials, with at least one of each class.
func strongPassword(p string) bool {
	if len(p) < 6 {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range p {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}

func authResponse(user *models.User, token string) gin.H {
	return gin.H{
		"_id":       user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"avatar":    user.Avatar,
		"channelId": user.ChannelID(),
		"token":     token,
	}
}

// RegisterUser handles user registration
func RegisterUser(tc TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Username string `json:"username" binding:"required,max=50"`
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
			Avatar   string `json:"avatar" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		username := strings.TrimSpace(input.Username)
		email := strings.TrimSpace(input.Email)
		password := strings.TrimSpace(input.Password)
		avatar := strings.TrimSpace(input.Avatar)

		if username == "" || avatar == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username and avatar are required."})
			return
		}
		if !emailPattern.MatchString(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format."})
			return
		}
		if !strongPassword(password) {
			c.JSON(http.StatusBadRequest, gin.H{"error": weakPasswordMsg})
			return
		}

		userCollection := config.GetCollection(config.UsersCollection)
		ctx, cancel := requestContext(c)
		defer cancel()

		count, err := userCollection.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			log.Println("Error checking existing user:", err)
			internalError(c)
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
			return
		}

		now := time.Now()
		user := models.User{
			ID:                 primitive.NewObjectID(),
			Username:           username,
			Email:              email,
			Password:           password,
			Avatar:             avatar,
			LikedVideos:        []primitive.ObjectID{},
			SubscribedChannels: []primitive.ObjectID{},
			CreatedAt:          now,
			UpdatedAt:          now,
		}

		if err := user.HashPassword(); err != nil {
			log.Println("Error hashing password:", err)
			internalError(c)
			return
		}

		if _, err := userCollection.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
				return
			}
			log.Println("Error inserting user:", err)
			internalError(c)
			return
		}

		token, err := authUtils.GenerateToken(user.ID.Hex(), tc.Secret, tc.TTL)
		if err != nil {
			log.Println("Error generating token:", err)
			internalError(c)
			return
		}

		c.JSON(http.StatusCreated, authResponse(&user, token))
	}
}

// LoginUser handles user login
func LoginUser(tc TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		userCollection := config.GetCollection(config.UsersCollection)
		ctx, cancel := requestContext(c)
		defer cancel()

		var user models.User
		err := userCollection.FindOne(ctx, bson.M{"email": strings.TrimSpace(input.Email)}).Decode(&user)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid credentials"})
				return
			}
			log.Println("Error finding user:", err)
			internalError(c)
			return
		}

		if !user.ComparePassword(input.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
			return
		}

		token, err := authUtils.GenerateToken(user.ID.Hex(), tc.Secret, tc.TTL)
		if err != nil {
			log.Println("Error generating token:", err)
			internalError(c)
			return
		}

		c.JSON(http.StatusOK, authResponse(&user, token))
	}
}
