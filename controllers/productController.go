package controllers

import (
	"fmt"
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

type productInput struct {
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"categoryId"`
	Image      string  `json:"image"`
}

func GetAllProducts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.ProductCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des produits: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des produits: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProductByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var product models.Product
	err = config.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&product)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération du produit: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct inserts a product. A category reference, when given, must
// point at an existing category.
func CreateProduct(c *gin.Context) {
	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Name == "" || input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le nom et un prix positif sont requis"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var categoryID *primitive.ObjectID
	if input.CategoryID != "" {
		objID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"categoryId": []string{"Catégorie invalide"}})
			return
		}
		count, err := config.CategoryCollection.CountDocuments(ctx, bson.M{"_id": objID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du produit: " + err.Error()})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"categoryId": []string{"Cette catégorie n'existe pas"}})
			return
		}
		categoryID = &objID
	}

	product := models.Product{
		ID:         primitive.NewObjectID(),
		Name:       input.Name,
		Price:      input.Price,
		CategoryID: categoryID,
		Image:      input.Image,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := config.ProductCollection.InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création du produit: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Produit %s créé avec succès", product.Name),
		"product": product,
	})
}

func UpdateProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}

	var input productInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	count, err := config.ProductCollection.CountDocuments(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du produit: " + err.Error()})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}

	updateFields := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		updateFields["name"] = input.Name
	}
	if input.Price > 0 {
		updateFields["price"] = input.Price
	}
	if input.Image != "" {
		updateFields["image"] = input.Image
	}
	if input.CategoryID != "" {
		catID, err := primitive.ObjectIDFromHex(input.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"categoryId": []string{"Catégorie invalide"}})
			return
		}
		n, err := config.CategoryCollection.CountDocuments(ctx, bson.M{"_id": catID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du produit: " + err.Error()})
			return
		}
		if n == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"categoryId": []string{"Cette catégorie n'existe pas"}})
			return
		}
		updateFields["categoryid"] = catID
	}

	if _, err := config.ProductCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du produit: " + err.Error()})
		return
	}

	var updated models.Product
	if err := config.ProductCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour du produit: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Produit mis à jour avec succès",
		"product": updated,
	})
}

func DeleteProduct(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression du produit: " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Produit non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé avec succès"})
}

func CreateManyProducts(c *gin.Context) {
	var inputs []models.Product
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	processed := 0
	for _, product := range inputs {
		if product.ID.IsZero() {
			product.ID = primitive.NewObjectID()
		}
		update := bson.M{"$set": bson.M{
			"name":       product.Name,
			"price":      product.Price,
			"categoryid": product.CategoryID,
			"image":      product.Image,
			"updated_at": time.Now(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := config.ProductCollection.UpdateOne(ctx, bson.M{"_id": product.ID}, update, opts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création ou mise à jour des produits: " + err.Error()})
			return
		}
		processed++
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d produits traités avec succès", processed)})
}
