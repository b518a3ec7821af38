package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"stylehive/database"
	"stylehive/gcs"
	"stylehive/models"
)

func GetProfile(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	user.Password = ""
	ok(c, "", gin.H{"user": user})
}

// UpdateProfile updates name/phone and optionally the avatar, which is
// uploaded to GCS from multipart form data.
func UpdateProfile(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	name := c.PostForm("name")
	phone := c.PostForm("phone")
	if name == "" || phone == "" {
		fail(c, http.StatusBadRequest, "Name and phone are required")
		return
	}

	set := bson.M{"name": name, "phone": phone}

	file, header, err := c.Request.FormFile("profile_image")
	if err == nil {
		defer file.Close()
		contentType := header.Header.Get("Content-Type")
		imageURL, err := gcs.UploadImage(file, contentType, "profiles")
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to upload image")
			return
		}
		set["profile_image"] = imageURL
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := db.UserCollection.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if result.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	ok(c, "Profile updated", nil)
}

// GetReferralInfo returns the user's shareable code and who they brought in.
func GetReferralInfo(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	count, err := db.UserCollection.CountDocuments(ctx, bson.M{"referred_by": user.ReferralCode})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to count referrals")
		return
	}

	ok(c, "", gin.H{
		"referral_code": user.ReferralCode,
		"referrals":     count,
	})
}
