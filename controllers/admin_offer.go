package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"stylehive/models"
)

type offerInput struct {
	Name            string  `json:"name" binding:"required"`
	Type            string  `json:"type" binding:"required"`
	TargetID        string  `json:"targetId" binding:"required"`
	DiscountPercent float64 `json:"discountPercent" binding:"required"`
	StartsAt        string  `json:"startsAt" binding:"required"`
	EndsAt          string  `json:"endsAt" binding:"required"`
}

func (in offerInput) toOffer(c *gin.Context) (models.Offer, bool) {
	if in.Type != models.OfferProduct && in.Type != models.OfferCategory {
		fail(c, http.StatusBadRequest, "Offer type must be product or category")
		return models.Offer{}, false
	}
	if in.DiscountPercent <= 0 || in.DiscountPercent > 90 {
		fail(c, http.StatusBadRequest, "Discount must be between 1 and 90 percent")
		return models.Offer{}, false
	}

	targetID, err := primitive.ObjectIDFromHex(in.TargetID)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid target ID")
		return models.Offer{}, false
	}
	startsAt, err := time.Parse(time.RFC3339, in.StartsAt)
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid start time")
		return models.Offer{}, false
	}
	endsAt, err := time.Parse(time.RFC3339, in.EndsAt)
	if err != nil || !endsAt.After(startsAt) {
		fail(c, http.StatusBadRequest, "End time must be after start time")
		return models.Offer{}, false
	}

	return models.Offer{
		Name:            in.Name,
		Type:            in.Type,
		TargetID:        targetID,
		DiscountPercent: in.DiscountPercent,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		IsActive:        true,
	}, true
}

func AdminListOffers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	offers, total, err := models.ListOffers(page, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to fetch offers")
		return
	}

	ok(c, "", gin.H{
		"offers": offers,
		"total":  total,
		"page":   page,
	})
}

func AdminCreateOffer(c *gin.Context) {
	var input offerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "All offer fields are required")
		return
	}

	offer, valid := input.toOffer(c)
	if !valid {
		return
	}

	switch offer.Type {
	case models.OfferProduct:
		if _, err := models.GetProductByID(offer.TargetID); err != nil {
			fail(c, http.StatusBadRequest, "Target product not found")
			return
		}
	case models.OfferCategory:
		if _, err := models.GetCategoryByID(offer.TargetID); err != nil {
			fail(c, http.StatusBadRequest, "Target category not found")
			return
		}
	}

	created, err := models.CreateOffer(offer)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to create offer")
		return
	}

	ok(c, "Offer created", gin.H{"offer": created})
}

func AdminUpdateOffer(c *gin.Context) {
	offerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	var input offerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "All offer fields are required")
		return
	}

	offer, valid := input.toOffer(c)
	if !valid {
		return
	}

	if err := models.UpdateOffer(offerID, offer); err != nil {
		fail(c, http.StatusNotFound, "Offer not found")
		return
	}

	ok(c, "Offer updated", nil)
}

// AdminToggleOffer activates or deactivates an offer.
func AdminToggleOffer(c *gin.Context) {
	offerID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		fail(c, http.StatusBadRequest, "Invalid offer ID")
		return
	}

	var input struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "Active flag is required")
		return
	}

	if err := models.SetOfferActive(offerID, *input.Active); err != nil {
		fail(c, http.StatusNotFound, "Offer not found")
		return
	}

	message := "Offer deactivated"
	if *input.Active {
		message = "Offer activated"
	}
	ok(c, message, nil)
}
