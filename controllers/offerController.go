package controllers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
)

func GetAllOffers(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.OfferCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving offers: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var offers []models.Offer
	if err := cursor.All(ctx, &offers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving offers: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, offers)
}

func GetOfferByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var offer models.Offer
	err = config.OfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&offer)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error retrieving offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, offer)
}

func parseOfferProducts(c *gin.Context) ([]primitive.ObjectID, bool) {
	var ids []primitive.ObjectID
	for _, raw := range c.PostFormArray("products") {
		objID, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, false
		}
		ids = append(ids, objID)
	}
	return ids, true
}

// CreateOffer accepts a multipart form: name, price, products, isPublish and
// an optional image file stored under images/offer.
func CreateOffer(c *gin.Context) {
	name := c.PostForm("name")
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if name == "" || err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le nom et un prix positif sont requis"})
		return
	}
	productIDs, ok := parseOfferProducts(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"products": []string{"Produit invalide"}})
		return
	}

	imagePath := ""
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = SaveImage(file, "offer", name+filepath.Ext(file.Filename))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating offer: " + err.Error()})
			return
		}
	}

	ctx, cancel := requestContext()
	defer cancel()

	offer := models.Offer{
		ID:         primitive.NewObjectID(),
		Name:       name,
		Price:      price,
		ImageFile:  imagePath,
		IsPublish:  c.PostForm("isPublish") == "true",
		ProductIDs: productIDs,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if _, err := config.OfferCollection.InsertOne(ctx, offer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating offer: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Offer created successfully", "offer": offer})
}

// UpdateOffer replaces the offer fields. Image lifecycle follows the form: a
// new file replaces (and deletes) the old one, imageFile="null" removes it,
// and a bare rename moves the stored file to the new offer name.
func UpdateOffer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}

	name := c.PostForm("name")
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if name == "" || err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Le nom et un prix positif sont requis"})
		return
	}
	productIDs, ok := parseOfferProducts(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"products": []string{"Produit invalide"}})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var existing models.Offer
	err = config.OfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating offer: " + err.Error()})
		return
	}

	imagePath := existing.ImageFile
	if file, err := c.FormFile("image"); err == nil {
		if existing.ImageFile != "" {
			DeleteImage(existing.ImageFile)
		}
		imagePath, err = SaveImage(file, "offer", name+filepath.Ext(file.Filename))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating offer: " + err.Error()})
			return
		}
	} else if c.PostForm("imageFile") == "null" && existing.ImageFile != "" {
		DeleteImage(existing.ImageFile)
		imagePath = ""
	} else if name != existing.Name && existing.ImageFile != "" {
		newPath := "/images/offer/" + name + filepath.Ext(existing.ImageFile)
		if newPath != existing.ImageFile {
			if err := RenameImage(existing.ImageFile, newPath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating offer: " + err.Error()})
				return
			}
			imagePath = newPath
		}
	}

	update := bson.M{"$set": bson.M{
		"name":       name,
		"price":      price,
		"imagefile":  imagePath,
		"ispublish":  c.PostForm("isPublish") == "true",
		"productids": productIDs,
		"updated_at": time.Now(),
	}}
	if _, err := config.OfferCollection.UpdateOne(ctx, bson.M{"_id": objID}, update); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating offer: " + err.Error()})
		return
	}

	var updated models.Offer
	if err := config.OfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "L'offre a été mise à jour avec succès!",
		"offer":   updated,
	})
}

func DeleteOffer(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var existing models.Offer
	err = config.OfferCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Offer not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting offer: " + err.Error()})
		return
	}

	if existing.ImageFile != "" {
		DeleteImage(existing.ImageFile)
	}
	if _, err := config.OfferCollection.DeleteOne(ctx, bson.M{"_id": objID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting offer: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted successfully"})
}
