package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fail writes the JSON failure envelope used across the app.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}

// ok writes the JSON success envelope, merging in any extra payload.
func ok(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for key, value := range payload {
		body[key] = value
	}
	c.JSON(http.StatusOK, body)
}

// currentUserID returns the logged-in shopper's id from the session
// attached by the auth middleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("user_id"))
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid session user")
		return primitive.NilObjectID, false
	}
	return id, true
}
