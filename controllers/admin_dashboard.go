package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stylehive/services"
)

// dashboardWindow resolves the from/to query params, defaulting to the
// last 30 days.
func dashboardWindow(c *gin.Context) (time.Time, time.Time, bool) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			fail(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return time.Time{}, time.Time{}, false
		}
		// Include the whole end day.
		to = parsed.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		fail(c, http.StatusBadRequest, "Date range is empty")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// AdminSalesSummary returns daily order counts and revenue for the
// dashboard chart.
func AdminSalesSummary(c *gin.Context) {
	from, to, valid := dashboardWindow(c)
	if !valid {
		return
	}

	summary, err := services.SalesSummary(from, to)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to build sales summary")
		return
	}

	var totalOrders int64
	var totalRevenue float64
	for _, day := range summary {
		totalOrders += day.Orders
		totalRevenue += day.Revenue
	}

	ok(c, "", gin.H{
		"daily":         summary,
		"total_orders":  totalOrders,
		"total_revenue": totalRevenue,
	})
}

// AdminTopProducts returns the best sellers in the window.
func AdminTopProducts(c *gin.Context) {
	from, to, valid := dashboardWindow(c)
	if !valid {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	top, err := services.TopProducts(from, to, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, "Failed to build top products")
		return
	}

	ok(c, "", gin.H{"top_products": top})
}
