package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
)

type paymentOfferInput struct {
	Details           []models.LineItem `json:"details"`
	TotalPrice        float64           `json:"totalPrice"`
	IsPayed           bool              `json:"isPayed"`
	ClientPhoneNumber string            `json:"clientPhoneNumber"`
	DeliveryID        string            `json:"deliveryId"`
	DeliveryPrice     float64           `json:"deliveryPrice"`
	OfferIDs          []string          `json:"offerIds"`
	OrderID           string            `json:"orderId"`
}

func listPaymentOffers(c *gin.Context, filter bson.M) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := config.PaymentOfferCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payment offers: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var offers []models.PaymentOffer
	if err := cursor.All(ctx, &offers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payment offers: " + err.Error()})
		return
	}
	if offers == nil {
		offers = []models.PaymentOffer{}
	}
	c.JSON(http.StatusOK, offers)
}

func GetAllPaymentOffers(c *gin.Context) {
	listPaymentOffers(c, bson.M{})
}

func GetLocalPaymentOffers(c *gin.Context) {
	listPaymentOffers(c, bson.M{"orderid": nil})
}

func GetEnlinePaymentOffers(c *gin.Context) {
	listPaymentOffers(c, bson.M{"orderid": bson.M{"$ne": nil}})
}

func GetPaymentOfferByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var offer models.PaymentOffer
	err = config.PaymentOfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payment offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func CreatePaymentOffer(c *gin.Context) {
	var input paymentOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.TotalPrice < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"totalPrice": []string{"Prix total invalide"}})
		return
	}
	for _, item := range input.Details {
		if item.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"details": []string{"Quantité négative"}})
			return
		}
	}

	details, err := models.EncodeDetails(input.Details)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"details": []string{"Détails invalides"}})
		return
	}
	offerIDs, ok := parseObjectIDs(input.OfferIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"offerIds": []string{"Offre invalide"}})
		return
	}
	deliveryID, ok := parseOptionalObjectID(input.DeliveryID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"deliveryId": []string{"Livreur invalide"}})
		return
	}
	orderID, ok := parseOptionalObjectID(input.OrderID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"orderId": []string{"Commande invalide"}})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	offer := models.PaymentOffer{
		ID:                primitive.NewObjectID(),
		Details:           details,
		TotalPrice:        input.TotalPrice,
		IsPayed:           input.IsPayed,
		ClientPhoneNumber: input.ClientPhoneNumber,
		DeliveryID:        deliveryID,
		DeliveryPrice:     input.DeliveryPrice,
		OfferIDs:          offerIDs,
		OrderID:           orderID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if _, err := config.PaymentOfferCollection.InsertOne(ctx, offer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating payment offer: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment offer created successfully", "paymentOffer": offer})
}

func UpdatePaymentOffer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}

	var input paymentOfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	updateFields := bson.M{
		"ispayed":    input.IsPayed,
		"updated_at": time.Now(),
	}
	if input.Details != nil {
		for _, item := range input.Details {
			if item.Quantity < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"details": []string{"Quantité négative"}})
				return
			}
		}
		details, err := models.EncodeDetails(input.Details)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"details": []string{"Détails invalides"}})
			return
		}
		updateFields["details"] = details
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.PaymentOfferCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating payment offer: " + err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}

	var updated models.PaymentOffer
	if err := config.PaymentOfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating payment offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment offer updated successfully", "paymentOffer": updated})
}

func DeletePaymentOffer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.PaymentOfferCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting payment offer: " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment offer not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment offer deleted successfully"})
}
