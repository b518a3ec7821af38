package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"stylehive/database"
	"stylehive/models"
)

// AdminListUsers lists customer accounts with pagination and search over
// name, email and phone.
func AdminListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["$or"] = []bson.M{
			{"name": models.SearchRegex(search)},
			{"email": models.SearchRegex(search)},
			{"phone": models.SearchRegex(search)},
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	total, err := db.UserCollection.CountDocuments(ctx, filter)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to count users")
		return
	}

	findOptions := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit)).
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"password": 0})

	cursor, err := db.UserCollection.Find(ctx, filter, findOptions)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}

	ok(c, "", gin.H{
		"users": users,
		"total": total,
		"page":  page,
	})
}

// AdminToggleUser blocks or unblocks a customer account. Blocked users
// are refused at login.
func AdminToggleUser(c *gin.Context) {
	userID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var input struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Blocked flag is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$set": bson.M{"is_blocked": *input.Blocked}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update user")
		return
	}
	if result.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	message := "User unblocked"
	if *input.Blocked {
		message = "User blocked"
	}
	ok(c, message, nil)
}
