package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/reports"
)

// CountAllPayments is the all-time dashboard: channel counts, order outcomes
// and the catalog sizes in one response.
func CountAllPayments(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeTotals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}

	categories, err := config.CategoryCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}
	products, err := config.ProductCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offlinePayments": report.OfflinePayments,
		"onlinePayments":  report.OnlinePayments,
		"totalPayments":   report.TotalPayments,
		"categories":      categories,
		"products":        products,
		"deliveredOrders": report.DeliveredOrders,
		"returnedOrders":  report.ReturnedOrders,
	})
}

// CountAllPaymentsWithQ is the all-time totals report with unit quantities.
func CountAllPaymentsWithQ(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeTotalsWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}
	c.JSON(http.StatusOK, report)
}

// CountPaymentsByProduct maps "Category Product" keys to the number of paid
// records that sold them, all-time.
func CountPaymentsByProduct(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeByProduct)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments by product"})
		return
	}
	c.JSON(http.StatusOK, report.ProductCounts)
}

func CountPaymentsByOffer(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeByOffer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments by offer"})
		return
	}
	c.JSON(http.StatusOK, report.OfferCounts)
}

func CountPaymentsByProductWithQuantity(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeByProductWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments by product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"products":                  report.Products,
		"totalPaymentCountProducts": report.TotalPaymentCountProducts,
	})
}

func CountPaymentsByOfferWithQuantity(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	report, err := reports.Aggregate(ctx, reports.Everything, reports.ModeByOfferWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments by offer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"offers":                  report.Offers,
		"totalPaymentCountOffers": report.TotalPaymentCountOffers,
	})
}
