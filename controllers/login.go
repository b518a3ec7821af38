package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"stylehive/database"
	"stylehive/models"
	"stylehive/session"
)

// Login authenticates a shopper and establishes a 24 hour session.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !checkPasswordHash(input.Password, user.Password) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if user.IsBlocked {
		fail(c, http.StatusForbidden, "Your account has been blocked")
		return
	}

	cartID := ""
	if cart, err := models.GetCartByUser(user.ID); err == nil {
		cartID = cart.ID.Hex()
	}

	sess, err := establishSession(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to start session, try again")
		return
	}
	session.InitUserSession(sess, user.ID.Hex(), user.Email, user.Name, cartID, "customer")
	if err := session.Default.Save(ctx, sess); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save session, try again")
		return
	}

	session.WriteCookie(c, session.Default.Options(), sess)
	ok(c, "Login successful", gin.H{"name": user.Name})
}

// AdminLogin authenticates a back-office admin with an 8 hour session.
func AdminLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.AdminCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&admin)
	if err != nil {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	if !checkPasswordHash(input.Password, admin.Password) {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	sess, err := establishSession(ctx)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to start session, try again")
		return
	}
	session.InitAdminSession(sess, admin.ID.Hex(), admin.Email, admin.Name)
	if err := session.Default.Save(ctx, sess); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to save session, try again")
		return
	}

	session.WriteCookie(c, session.Default.Options(), sess)
	ok(c, "Admin login successful", gin.H{"name": admin.Name})
}

// establishSession creates a fresh session document for a login. A new id
// is always issued so a pre-login cookie can never carry over.
func establishSession(ctx context.Context) (*session.Session, error) {
	return session.Default.New(ctx)
}
