package controllers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/database"
	"stylehive/models"
	"stylehive/utils"
)

// resetSecret is read lazily so it picks up values loaded from .env.
func resetSecret() []byte {
	return []byte(os.Getenv("RESET_TOKEN_SECRET"))
}

const resetTokenTTL = 30 * time.Minute

func newResetToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"purpose": "password_reset",
		"exp":     time.Now().Add(resetTokenTTL).Unix(),
	})
	return token.SignedString(resetSecret())
}

func parseResetToken(tokenString string) (string, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return resetSecret(), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	return userID, ok && userID != ""
}

// ForgotPassword emails a signed, single-purpose reset link. The response
// is the same whether or not the email exists.
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err == nil {
		token, err := newResetToken(user.ID.Hex())
		if err == nil {
			_ = utils.SendPasswordResetEmail(user.Email, token)
		}
	}

	ok(c, "If the email is registered, a reset link has been sent", nil)
}

// ResetPassword sets a new password given a valid reset token.
func ResetPassword(c *gin.Context) {
	var input struct {
		Token           string `json:"token" binding:"required"`
		Password        string `json:"password" binding:"required,min=8"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Password != input.ConfirmPassword {
		fail(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	userID, valid := parseResetToken(input.Token)
	if !valid {
		fail(c, http.StatusUnauthorized, "Invalid or expired reset token")
		return
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to process password")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid reset token")
		return
	}
	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": objID},
		bson.M{"$set": bson.M{"password": hashed}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update password")
		return
	}
	if result.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	ok(c, "Password updated, please log in", nil)
}
