package controllers

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"stylehive/cache"
	"stylehive/database"
	"stylehive/models"
	"stylehive/utils"
)

const otpTTL = 10 * time.Minute

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func generateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		panic("otp: cannot read random bytes: " + err.Error())
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// newReferralCode derives a short shareable code from a UUID.
func newReferralCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// RequestOTP validates a registration, parks it in Redis and emails an
// OTP. The user document is only written after VerifyOTP.
func RequestOTP(c *gin.Context) {
	var input struct {
		Name            string `json:"name" binding:"required"`
		Email           string `json:"email" binding:"required,email"`
		Phone           string `json:"phone" binding:"required"`
		Password        string `json:"password" binding:"required,min=8"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
		ReferralCode    string `json:"referralCode"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Password != input.ConfirmPassword {
		fail(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var existing models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&existing)
	if err == nil {
		fail(c, http.StatusConflict, "Email already registered")
		return
	}
	err = db.UserCollection.FindOne(ctx, bson.M{"phone": input.Phone}).Decode(&existing)
	if err == nil {
		fail(c, http.StatusConflict, "Phone number already registered")
		return
	}

	if input.ReferralCode != "" {
		var referrer models.User
		err := db.UserCollection.FindOne(ctx, bson.M{"referral_code": input.ReferralCode}).Decode(&referrer)
		if err != nil {
			fail(c, http.StatusBadRequest, "Unknown referral code")
			return
		}
	}

	hashed, err := hashPassword(input.Password)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to process password")
		return
	}

	pending := models.User{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		Password:     hashed,
		ReferralCode: newReferralCode(),
		ReferredBy:   input.ReferralCode,
		Addresses:    []models.Address{},
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to stage registration")
		return
	}

	otp := generateOTP()
	if err := cache.SetOTP(ctx, input.Email, otp, otpTTL); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to store OTP")
		return
	}
	if err := cache.SetPendingUser(ctx, input.Email, payload, otpTTL); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to stage registration")
		return
	}

	if err := utils.SendOTPEmail(input.Email, otp); err != nil {
		log.Println("Failed to send OTP email:", err)
		fail(c, http.StatusInternalServerError, "Failed to send email")
		return
	}

	ok(c, "OTP sent to email", nil)
}

// VerifyOTP finishes the registration: checks the OTP, inserts the user
// and pays out the referral bonus on both sides.
func VerifyOTP(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
		OTP   string `json:"otp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	expected, err := cache.GetOTP(ctx, input.Email)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to check OTP")
		return
	}
	if expected == "" || expected != input.OTP {
		fail(c, http.StatusUnauthorized, "Incorrect or expired OTP")
		return
	}

	payload, err := cache.GetPendingUser(ctx, input.Email)
	if err != nil || payload == nil {
		fail(c, http.StatusBadRequest, "Registration expired, please start over")
		return
	}

	var user models.User
	if err := json.Unmarshal(payload, &user); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to read staged registration")
		return
	}
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()

	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to register")
		return
	}

	cache.DeleteOTP(ctx, input.Email)
	cache.DeletePendingUser(ctx, input.Email)

	if user.ReferredBy != "" {
		creditReferralBonus(ctx, user)
	}

	ok(c, "Registration successful", gin.H{"user_id": user.ID.Hex()})
}

const referralBonus = 100.0

// creditReferralBonus pays both sides of a referral. Failures are logged,
// not surfaced; the registration itself already succeeded.
func creditReferralBonus(ctx context.Context, user models.User) {
	var referrer models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"referral_code": user.ReferredBy}).Decode(&referrer)
	if err != nil {
		log.Println("Referral payout: referrer lookup failed:", err)
		return
	}
	if err := models.CreditWallet(referrer.ID, referralBonus, "Referral bonus for inviting "+user.Name); err != nil {
		log.Println("Referral payout to referrer failed:", err)
	}
	if err := models.CreditWallet(user.ID, referralBonus, "Referral signup bonus"); err != nil {
		log.Println("Referral payout to new user failed:", err)
	}
}
