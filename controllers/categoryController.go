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

type categoryInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Image string `json:"image"`
}

// GetAllCategories lists categories newest first, each with its product
// count, the shape the POS front expects.
func GetAllCategories(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.CategoryCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des catégories: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des catégories: " + err.Error()})
		return
	}

	response := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		count, err := config.ProductCollection.CountDocuments(ctx, bson.M{"categoryid": category.ID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des catégories: " + err.Error()})
			return
		}
		response = append(response, gin.H{
			"id":        category.ID.Hex(),
			"name":      category.Name,
			"color":     category.Color,
			"image":     category.Image,
			"createdAt": category.CreatedAt,
			"_count":    gin.H{"products": count},
		})
	}

	c.JSON(http.StatusOK, response)
}

// GetCategoryByID returns a category together with its products.
func GetCategoryByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var category models.Category
	err = config.CategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&category)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la catégorie: " + err.Error()})
		return
	}

	cursor, err := config.ProductCollection.Find(ctx, bson.M{"categoryid": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la catégorie: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de la catégorie: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":        category.ID.Hex(),
		"name":      category.Name,
		"color":     category.Color,
		"image":     category.Image,
		"createdAt": category.CreatedAt,
		"products":  products,
	})
}

// CreateCategory inserts a category. Name and color are both unique: the
// front uses the color as a visual key, two categories must never share one.
func CreateCategory(c *gin.Context) {
	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Name == "" || input.Color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le nom et la couleur sont requis"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	count, err := config.CategoryCollection.CountDocuments(ctx, bson.M{"color": input.Color})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de la catégorie: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"color": []string{"Une catégorie avec cette couleur existe déjà"}})
		return
	}
	count, err = config.CategoryCollection.CountDocuments(ctx, bson.M{"name": input.Name})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de la catégorie: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"name": []string{"Une catégorie avec ce nom existe déjà"}})
		return
	}

	category := models.Category{
		ID:        primitive.NewObjectID(),
		Name:      input.Name,
		Color:     input.Color,
		Image:     input.Image,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := config.CategoryCollection.InsertOne(ctx, category); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de la catégorie: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Catégorie %s créée avec succès", category.Name),
		"category": category,
	})
}

func UpdateCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}

	var input categoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var existing models.Category
	err = config.CategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la catégorie: " + err.Error()})
		return
	}

	if input.Name != "" && input.Name != existing.Name {
		count, err := config.CategoryCollection.CountDocuments(ctx, bson.M{"name": input.Name})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la catégorie: " + err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"name": []string{"Un autre catégorie avec ce nom existe déjà"}})
			return
		}
	}
	if input.Color != "" && input.Color != existing.Color {
		count, err := config.CategoryCollection.CountDocuments(ctx, bson.M{"color": input.Color})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la catégorie: " + err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"color": []string{"Cette couleur existe déjà"}})
			return
		}
	}

	updateFields := bson.M{"updated_at": time.Now()}
	if input.Name != "" {
		updateFields["name"] = input.Name
	}
	if input.Color != "" {
		updateFields["color"] = input.Color
	}
	if input.Image != "" {
		updateFields["image"] = input.Image
	}

	if _, err := config.CategoryCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la catégorie: " + err.Error()})
		return
	}

	var updated models.Category
	if err := config.CategoryCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de la catégorie: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":  "Catégorie mise à jour avec succès",
		"category": updated,
	})
}

func DeleteCategory(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.CategoryCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression de la catégorie: " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Catégorie non trouvée"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Catégorie supprimée avec succès"})
}

func CreateManyCategories(c *gin.Context) {
	var inputs []models.Category
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	processed := 0
	for _, category := range inputs {
		if category.ID.IsZero() {
			category.ID = primitive.NewObjectID()
		}
		update := bson.M{"$set": bson.M{
			"name":       category.Name,
			"color":      category.Color,
			"image":      category.Image,
			"updated_at": time.Now(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := config.CategoryCollection.UpdateOne(ctx, bson.M{"_id": category.ID}, update, opts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création ou mise à jour des catégories: " + err.Error()})
			return
		}
		processed++
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d catégories traitées avec succès", processed)})
}
