package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"stylehive/models"
)

// AddToCart puts a product variant in the user's cart.
func AddToCart(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		VariantID string `json:"variant_id" binding:"required"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	variantID, err2 := primitive.ObjectIDFromHex(input.VariantID)
	if err != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "Invalid IDs")
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil || product.IsBlocked {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	variant := product.VariantByID(variantID)
	if variant == nil || variant.IsBlocked {
		fail(c, http.StatusNotFound, "Variant not found")
		return
	}
	if variant.Stock < input.Quantity {
		fail(c, http.StatusBadRequest, "Not enough stock")
		return
	}

	err = models.AddToCart(userID, models.CartItem{
		ProductID: productID,
		VariantID: variantID,
		Quantity:  input.Quantity,
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add to cart")
		return
	}

	ok(c, "Added to cart", nil)
}

// GetCart returns the cart with product details resolved and the running
// totals the checkout will use.
func GetCart(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	lines, err := models.ResolveCartLines(userID)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// No cart document yet means an empty cart, not an error.
		ok(c, "", gin.H{"cart": []models.CartLine{}, "subtotal": 0})
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}

	var subtotal float64
	for _, line := range lines {
		subtotal += line.Total
	}

	ok(c, "", gin.H{"cart": lines, "subtotal": subtotal})
}

func UpdateCartQuantity(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	var input struct {
		ProductID string `json:"product_id" binding:"required"`
		VariantID string `json:"variant_id" binding:"required"`
		Quantity  int    `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Invalid input")
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.ProductID)
	variantID, err2 := primitive.ObjectIDFromHex(input.VariantID)
	if err != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "Invalid IDs")
		return
	}

	if err := models.UpdateCartQuantity(userID, productID, variantID, input.Quantity); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to update cart")
		return
	}

	ok(c, "Cart updated", nil)
}

func RemoveFromCart(c *gin.Context) {
	userID, valid := currentUserID(c)
	if !valid {
		return
	}

	productID, err := primitive.ObjectIDFromHex(c.Param("product_id"))
	variantID, err2 := primitive.ObjectIDFromHex(c.Param("variant_id"))
	if err != nil || err2 != nil {
		fail(c, http.StatusBadRequest, "Invalid IDs")
		return
	}

	if err := models.RemoveFromCart(userID, productID, variantID); err != nil {
		fail(c, http.StatusInternalServerError, "Failed to remove item")
		return
	}

	ok(c, "Item removed from cart", nil)
}
