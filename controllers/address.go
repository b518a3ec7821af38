package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/database"
	"stylehive/models"
)

type addressInput struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Street    string `json:"street" binding:"required"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
	Pincode   string `json:"pincode" binding:"required"`
	IsDefault bool   `json:"isDefault"`
}

func GetAddresses(c *gin.Context) {
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

	ok(c, "", gin.H{"addresses": user.Addresses})
}

// AddAddress appends a shipping address. Marking it default clears the
// flag on every other address first.
func AddAddress(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if input.IsDefault {
		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"addresses.$[].isDefault": false}},
		)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to update existing addresses")
			return
		}
	}

	address := models.Address{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Phone:     input.Phone,
		Street:    input.Street,
		City:      input.City,
		State:     input.State,
		Pincode:   input.Pincode,
		IsDefault: input.IsDefault,
	}

	_, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"addresses": address}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add address")
		return
	}

	ok(c, "Address added", gin.H{"address": address})
}

func UpdateAddress(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("address_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid address ID")
		return
	}

	var input addressInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if input.IsDefault {
		_, err := db.UserCollection.UpdateOne(ctx,
			bson.M{"_id": userID},
			bson.M{"$set": bson.M{"addresses.$[].isDefault": false}},
		)
		if err != nil {
			fail(c, http.StatusInternalServerError, "Failed to reset default addresses")
			return
		}
	}

	result, err := db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID, "addresses._id": addressID},
		bson.M{"$set": bson.M{
			"addresses.$.name":      input.Name,
			"addresses.$.phone":     input.Phone,
			"addresses.$.street":    input.Street,
			"addresses.$.city":      input.City,
			"addresses.$.state":     input.State,
			"addresses.$.pincode":   input.Pincode,
			"addresses.$.isDefault": input.IsDefault,
		}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update address")
		return
	}
	if result.MatchedCount == 0 {
		fail(c, http.StatusNotFound, "Address not found")
		return
	}

	ok(c, "Address updated", nil)
}

// DeleteAddress removes an address. When the deleted one was the default,
// the first remaining address becomes the new default.
func DeleteAddress(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	addressID, err := primitive.ObjectIDFromHex(c.Param("address_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid address ID")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		fail(c, http.StatusNotFound, "User not found")
		return
	}

	wasDefault := false
	if addr := user.AddressByID(addressID); addr != nil {
		wasDefault = addr.IsDefault
	}

	_, err = db.UserCollection.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"addresses": bson.M{"_id": addressID}}},
	)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to delete address")
		return
	}

	if wasDefault {
		err = db.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
		if err == nil && len(user.Addresses) > 0 {
			_, _ = db.UserCollection.UpdateOne(ctx,
				bson.M{"_id": userID, "addresses._id": user.Addresses[0].ID},
				bson.M{"$set": bson.M{"addresses.$.isDefault": true}},
			)
		}
	}

	ok(c, "Address deleted", nil)
}
