package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

// AdminListCategories lists categories with pagination, search and an
// optional blocked filter.
func AdminListCategories(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := models.CategoryQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		blocked := status == "blocked"
		query.Blocked = &blocked
	}

	categories, total, err := models.ListCategories(query)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	ok(c, "", gin.H{
		"categories": categories,
		"total":      total,
		"page":       query.Page,
	})
}

func AdminAddCategory(c *gin.Context) {
	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	exists, err := models.CategoryNameExists(input.Name, primitive.NilObjectID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to check category name")
		return
	}
	if exists {
		fail(c, http.StatusConflict, "Category already exists")
		return
	}

	category, err := models.AddCategory(input.Name, input.Description)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add category")
		return
	}

	ok(c, "Category created", gin.H{"category": category})
}

func AdminUpdateCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Category name is required")
		return
	}

	exists, err := models.CategoryNameExists(input.Name, categoryID)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to check category name")
		return
	}
	if exists {
		fail(c, http.StatusConflict, "Another category already uses that name")
		return
	}

	if err := models.UpdateCategory(categoryID, input.Name, input.Description); err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	ok(c, "Category updated", nil)
}

// AdminToggleCategory blocks or unblocks a category.
func AdminToggleCategory(c *gin.Context) {
	categoryID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var input struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Blocked flag is required")
		return
	}

	if err := models.SetCategoryBlocked(categoryID, *input.Blocked); err != nil {
		fail(c, http.StatusNotFound, "Category not found")
		return
	}

	message := "Category unblocked"
	if *input.Blocked {
		message = "Category blocked"
	}
	ok(c, message, nil)
}
