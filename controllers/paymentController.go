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

type paymentInput struct {
	Details           []models.LineItem `json:"details"`
	TotalPrice        float64           `json:"totalPrice"`
	IsPayed           bool              `json:"isPayed"`
	ClientPhoneNumber string            `json:"clientPhoneNumber"`
	DeliveryID        string            `json:"deliveryId"`
	DeliveryPrice     float64           `json:"deliveryPrice"`
	ProductIDs        []string          `json:"productIds"`
	OrderID           string            `json:"orderId"`
}

func listPayments(c *gin.Context, filter bson.M) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"updated_at": -1})
	cursor, err := config.PaymentCollection.Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payments: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err := cursor.All(ctx, &payments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payments: " + err.Error()})
		return
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	c.JSON(http.StatusOK, payments)
}

func GetAllPayments(c *gin.Context) {
	listPayments(c, bson.M{})
}

// GetLocalPayments lists counter sales, the ones with no order behind them.
func GetLocalPayments(c *gin.Context) {
	listPayments(c, bson.M{"orderid": nil})
}

// GetEnlinePayments lists the sales that came through the online ordering
// flow.
func GetEnlinePayments(c *gin.Context) {
	listPayments(c, bson.M{"orderid": bson.M{"$ne": nil}})
}

func GetPaymentByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var payment models.Payment
	err = config.PaymentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&payment)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving payment: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}

func parseObjectIDs(raw []string) ([]primitive.ObjectID, bool) {
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		objID, err := primitive.ObjectIDFromHex(r)
		if err != nil {
			return nil, false
		}
		ids = append(ids, objID)
	}
	return ids, true
}

func parseOptionalObjectID(raw string) (*primitive.ObjectID, bool) {
	if raw == "" {
		return nil, true
	}
	objID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, false
	}
	return &objID, true
}

// CreatePayment records a sale. The line items are encoded into the details
// blob as they are now; later catalog edits must not change what this sale
// says it sold.
func CreatePayment(c *gin.Context) {
	var input paymentInput
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
	productIDs, ok := parseObjectIDs(input.ProductIDs)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"productIds": []string{"Produit invalide"}})
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

	payment := models.Payment{
		ID:                primitive.NewObjectID(),
		Details:           details,
		TotalPrice:        input.TotalPrice,
		IsPayed:           input.IsPayed,
		ClientPhoneNumber: input.ClientPhoneNumber,
		DeliveryID:        deliveryID,
		DeliveryPrice:     input.DeliveryPrice,
		ProductIDs:        productIDs,
		OrderID:           orderID,
		CreatedAt:         time.Now(),
		UpdatedAt:         time.Now(),
	}
	if _, err := config.PaymentCollection.InsertOne(ctx, payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating payment: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Payment created successfully", "payment": payment})
}

// UpdatePayment only touches the details blob and the paid flag, matching
// what the checkout flow edits after the fact.
func UpdatePayment(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	var input paymentInput
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

	result, err := config.PaymentCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating payment: " + err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	var updated models.Payment
	if err := config.PaymentCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating payment: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated successfully", "payment": updated})
}

func DeletePayment(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.PaymentCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting payment: " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Payment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
