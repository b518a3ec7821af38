package services

import (
	"math"
	"time"

	"stylehive/models"
)

// BestOfferPercent picks the highest discount among the offers that apply
// at the given time. Product and category offers do not stack.
func BestOfferPercent(offers []models.Offer, now time.Time) float64 {
	var best float64
	for _, offer := range offers {
		if offer.AppliesNow(now) && offer.DiscountPercent > best {
			best = offer.DiscountPercent
		}
	}
	return best
}

// DiscountForLine computes the discount amount for one cart line.
func DiscountForLine(lineTotal float64, offers []models.Offer, now time.Time) float64 {
	percent := BestOfferPercent(offers, now)
	return round2(lineTotal * percent / 100)
}

// ComputeCartDiscount sums the offer discounts across the resolved cart.
// Returns zero when no offer is active, keeping the checkout totals at
// finalAmount == subtotal.
func ComputeCartDiscount(lines []models.CartLine) (float64, error) {
	now := time.Now()
	var discount float64
	for _, line := range lines {
		offers, err := models.ActiveOffersFor(line.ProductID, line.CategoryID)
		if err != nil {
			return 0, err
		}
		discount += DiscountForLine(line.Total, offers, now)
	}
	return round2(discount), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
