package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"stylehive/models"
)

func activeOffer(percent float64, now time.Time) models.Offer {
	return models.Offer{
		DiscountPercent: percent,
		StartsAt:        now.Add(-time.Hour),
		EndsAt:          now.Add(time.Hour),
		IsActive:        true,
	}
}

func TestBestOfferPercentPicksHighest(t *testing.T) {
	now := time.Now()
	offers := []models.Offer{
		activeOffer(10, now),
		activeOffer(25, now),
		activeOffer(15, now),
	}

	assert.Equal(t, 25.0, BestOfferPercent(offers, now), "offers never stack, the best one wins")
}

func TestBestOfferPercentIgnoresInactiveAndExpired(t *testing.T) {
	now := time.Now()

	inactive := activeOffer(50, now)
	inactive.IsActive = false

	expired := activeOffer(40, now)
	expired.EndsAt = now.Add(-time.Minute)

	offers := []models.Offer{inactive, expired, activeOffer(10, now)}
	assert.Equal(t, 10.0, BestOfferPercent(offers, now))
}

func TestBestOfferPercentNoOffers(t *testing.T) {
	assert.Zero(t, BestOfferPercent(nil, time.Now()))
}

func TestDiscountForLine(t *testing.T) {
	now := time.Now()

	assert.Equal(t, 200.0, DiscountForLine(1000, []models.Offer{activeOffer(20, now)}, now))
	assert.Zero(t, DiscountForLine(1000, nil, now), "no offer means full price")
	// 333 * 15% = 49.95, rounded to two decimals
	assert.Equal(t, 49.95, DiscountForLine(333, []models.Offer{activeOffer(15, now)}, now))
}
