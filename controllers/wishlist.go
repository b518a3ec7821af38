package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

// ToggleWishlist adds or removes a product from the user's wishlist.
func ToggleWishlist(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if _, err := models.GetProductByID(productID); err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	added, err := models.ToggleWishlist(userID, productID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	message := "Removed from wishlist"
	if added {
		message = "Added to wishlist"
	}
	ok(c, message, gin.H{"wishlisted": added})
}

func GetWishlist(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	products, err := models.GetWishlistProducts(userID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}

	ok(c, "", gin.H{"wishlist": products})
}

func RemoveFromWishlist(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := models.RemoveFromWishlist(userID, productID); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}

	ok(c, "Removed from wishlist", nil)
}
