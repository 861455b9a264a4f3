package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
	"github.com/abdo261/server-pokemon/reports"
)

type dayInput struct {
	StartAt time.Time  `json:"startAt"`
	StopAt  *time.Time `json:"stopAt"`
}

func GetAllDays(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"startat": -1})
	cursor, err := config.DayCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des journées : " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var days []models.Day
	if err := cursor.All(ctx, &days); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des journées : " + err.Error()})
		return
	}
	if days == nil {
		days = []models.Day{}
	}
	c.JSON(http.StatusOK, days)
}

// GetLatestDay returns the most recently opened day, or a literal null when
// no day was ever opened — the front treats null as "store never opened".
func GetLatestDay(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	day, err := reports.LatestDay(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la dernière journée : " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

// GetDayByID returns the day together with its in-window paid sales and the
// per-deliverer rollup.
func GetDayByID(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	day, err := reports.FindDay(ctx, c.Param("id"))
	if errors.Is(err, reports.ErrDayNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la journée : " + err.Error()})
		return
	}

	window := reports.Window{GTE: day.StartAt, LTE: day.StopAt}
	payments, err := reports.FetchPayments(ctx, window, reports.ChannelAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la journée : " + err.Error()})
		return
	}
	paymentOffers, err := reports.FetchPaymentOffers(ctx, window, reports.ChannelAll)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la journée : " + err.Error()})
		return
	}
	deliveries, err := reports.ResolveDeliveries(ctx, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la journée : " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"day":             day,
		"paymentProducts": payments,
		"paymentOffers":   paymentOffers,
		"deliveries":      deliveries,
	})
}

func CreateDay(c *gin.Context) {
	var input dayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.StartAt.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"startAt": []string{"La date de début est requise"}})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	day := models.Day{
		ID:      primitive.NewObjectID(),
		StartAt: input.StartAt,
		StopAt:  input.StopAt,
	}
	if _, err := config.DayCollection.InsertOne(ctx, day); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de la journée : " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Journée créée avec succès",
		"day":     day,
	})
}

// UpdateDay rewrites both bounds; setting stopAt closes the session.
func UpdateDay(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}

	var input dayInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.StartAt.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"startAt": []string{"La date de début est requise"}})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	update := bson.M{
		"$set":   bson.M{"startat": input.StartAt},
		"$unset": bson.M{"stopat": ""},
	}
	if input.StopAt != nil {
		update = bson.M{"$set": bson.M{"startat": input.StartAt, "stopat": *input.StopAt}}
	}

	result, err := config.DayCollection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la journée : " + err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}

	var updated models.Day
	if err := config.DayCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la journée : " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Journée mise à jour avec succès",
		"day":     updated,
	})
}

// DeleteDay removes only the session document; the payments and orders it
// windowed stay untouched.
func DeleteDay(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.DayCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression de la journée : " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Journée supprimée avec succès"})
}

// CountAllPaymentsForDay builds the totals-with-quantity report of a day and
// attaches the delivery rollup.
func CountAllPaymentsForDay(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	window, err := reports.ResolveWindow(ctx, c.Param("dayId"))
	if errors.Is(err, reports.ErrDayNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Day not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}

	report, err := reports.Aggregate(ctx, window, reports.ModeTotalsWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}
	deliveries, err := reports.ResolveDeliveries(ctx, window)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offlinePayments": report.OfflinePayments,
		"onlinePayments":  report.OnlinePayments,
		"totalPayments":   report.TotalPayments,
		"deliveredOrders": report.DeliveredOrders,
		"returnedOrders":  report.ReturnedOrders,
		"deliveries":      deliveries,
	})
}

// CountAllPaymentsForDayWithQ breaks a day's sales down by product and by
// offer, keyed by the names recorded at sale time.
func CountAllPaymentsForDayWithQ(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	window, err := reports.ResolveWindow(ctx, c.Param("dayId"))
	if errors.Is(err, reports.ErrDayNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Day not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}

	byProduct, err := reports.Aggregate(ctx, window, reports.ModeByProductWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}
	byOffer, err := reports.Aggregate(ctx, window, reports.ModeByOfferWithQuantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments for the day"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"offers":                    byOffer.Offers,
		"products":                  byProduct.Products,
		"totalPaymentCountProducts": byProduct.TotalPaymentCountProducts,
		"totalPaymentCountOffers":   byOffer.TotalPaymentCountOffers,
	})
}

// CountAllPaymentsWithDayRange is the counts-only variant: channel record
// counts plus order outcomes, no quantities.
func CountAllPaymentsWithDayRange(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	window, err := reports.ResolveWindow(ctx, c.Param("dayId"))
	if errors.Is(err, reports.ErrDayNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Journée non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}

	report, err := reports.Aggregate(ctx, window, reports.ModeTotals)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "An error occurred while counting payments"})
		return
	}
	c.JSON(http.StatusOK, report)
}
