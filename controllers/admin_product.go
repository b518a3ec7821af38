package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/gcs"
	"stylehive/models"
)

// uploadVariantImages pushes every file in the multipart form field
// "images" to cloud storage and returns their public URLs.
func uploadVariantImages(files []*multipart.FileHeader) ([]string, error) {
	var urls []string
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return nil, err
		}
		url, err := gcs.UploadImage(file, fileHeader.Header.Get("Content-Type"), "products")
		file.Close()
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func variantFromForm(c *gin.Context) (models.Variant, bool) {
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price <= 0 {
		fail(c, http.StatusBadRequest, "Invalid price")
		return models.Variant{}, false
	}
	salePrice, err := strconv.ParseFloat(c.DefaultPostForm("sale_price", c.PostForm("price")), 64)
	if err != nil || salePrice <= 0 || salePrice > price {
		fail(c, http.StatusBadRequest, "Invalid sale price")
		return models.Variant{}, false
	}
	stock, err := strconv.Atoi(c.DefaultPostForm("stock", "0"))
	if err != nil || stock < 0 {
		fail(c, http.StatusBadRequest, "Invalid stock")
		return models.Variant{}, false
	}

	return models.Variant{
		Color:     c.PostForm("color"),
		Price:     price,
		SalePrice: salePrice,
		Stock:     stock,
	}, true
}

// AdminAddProduct creates a product with its first variant from a
// multipart form. Variant images go to cloud storage.
func AdminAddProduct(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		fail(c, http.StatusBadRequest, "Product name is required")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(c.PostForm("category_id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}
	if _, err := models.GetCategoryByID(categoryID); err != nil {
		fail(c, http.StatusBadRequest, "Category not found")
		return
	}

	variant, valid := variantFromForm(c)
	if !valid {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) < 3 {
		fail(c, http.StatusBadRequest, "At least 3 product images are required")
		return
	}
	urls, err := uploadVariantImages(files)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to upload images")
		return
	}
	variant.Images = urls

	product, err := models.AddProduct(models.Product{
		Name:        name,
		Description: c.PostForm("description"),
		CategoryID:  categoryID,
		Variants:    []models.Variant{variant},
	})
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to add product")
		return
	}

	ok(c, "Product created", gin.H{"product": product})
}

func AdminListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	query := models.ProductQuery{
		Page:           page,
		Limit:          limit,
		Search:         c.Query("search"),
		IncludeBlocked: true,
	}
	if categoryHex := c.Query("category"); categoryHex != "" {
		categoryID, err := primitive.ObjectIDFromHex(categoryHex)
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

func AdminUpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		CategoryID  string `json:"categoryId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Name and category are required")
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(input.CategoryID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid category ID")
		return
	}
	if _, err := models.GetCategoryByID(categoryID); err != nil {
		fail(c, http.StatusBadRequest, "Category not found")
		return
	}

	err = models.UpdateProduct(productID, models.Product{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  categoryID,
	})
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	ok(c, "Product updated", nil)
}

// AdminToggleProduct blocks or unblocks a product. Blocked products
// disappear from the storefront but stay visible in order history.
func AdminToggleProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var input struct {
		Blocked *bool `json:"blocked" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Blocked flag is required")
		return
	}

	if err := models.SetProductBlocked(productID, *input.Blocked); err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	message := "Product unblocked"
	if *input.Blocked {
		message = "Product blocked"
	}
	ok(c, message, nil)
}

// AdminAddVariant adds a new color variant to an existing product.
func AdminAddVariant(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}

	variant, valid := variantFromForm(c)
	if !valid {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid form data")
		return
	}
	files := form.File["images"]
	if len(files) < 3 {
		fail(c, http.StatusBadRequest, "At least 3 variant images are required")
		return
	}
	urls, err := uploadVariantImages(files)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to upload images")
		return
	}
	variant.Images = urls

	created, err := models.AddVariant(productID, variant)
	if err != nil {
		fail(c, http.StatusNotFound, "Product not found")
		return
	}

	ok(c, "Variant added", gin.H{"variant": created})
}

// AdminUpdateVariant updates a variant's color, pricing and stock.
// New images replace the old set only when files are attached.
func AdminUpdateVariant(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid product ID")
		return
	}
	variantID, err := primitive.ObjectIDFromHex(c.Param("variantId"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid variant ID")
		return
	}

	variant, valid := variantFromForm(c)
	if !valid {
		return
	}

	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["images"]; len(files) > 0 {
			urls, err := uploadVariantImages(files)
			if err != nil {
				fail(c, http.StatusInternalServerError, "Failed to upload images")
				return
			}
			variant.Images = urls
		}
	}

	if err := models.UpdateVariant(productID, variantID, variant); err != nil {
		fail(c, http.StatusNotFound, "Variant not found")
		return
	}

	ok(c, "Variant updated", nil)
}
