package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
	"stylehive/services"
)

// ListProducts is the storefront catalog: paginated, searchable, filtered
// by category, blocked products hidden.
func ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))

	query := models.ProductQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
	if category := c.Query("category"); category != "" {
		categoryID, err := primitive.ObjectIDFromHex(category)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid category ID")
			return
		}
		query.CategoryID = categoryID
	}

	products, total, err := models.ListProducts(query)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch products")
		return
	}

	ok(c, "", gin.H{
		"products": products,
		"total":    total,
		"page":     query.Page,
	})
}

// GetProduct returns one product with its variants and the best active
// offer, if any.
func GetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := models.GetProductByID(productID)
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}
	if product.IsBlocked {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	offers, err := models.ActiveOffersFor(product.ID, product.CategoryID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch offers")
		return
	}

	ok(c, "", gin.H{
		"product":       product,
		"offer_percent": services.BestOfferPercent(offers, time.Now()),
	})
}

// ListCategories returns the unblocked categories for storefront menus.
func ListCategories(c *gin.Context) {
	categories, err := models.ActiveCategories()
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}
	ok(c, "", gin.H{"categories": categories})
}
