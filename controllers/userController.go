package controllers

import (
	"context"
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
	"github.com/abdo261/server-pokemon/utils"
)

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 10*time.Second)
}

// GetAllUsers lists users newest first, passwords stripped.
func GetAllUsers(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.M{"created_at": -1})
	cursor, err := config.UserCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des utilisateurs: " + err.Error()})
		return
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération des utilisateurs: " + err.Error()})
		return
	}

	sanitized := make([]models.User, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, u.Sanitize())
	}
	c.JSON(http.StatusOK, sanitized)
}

func GetUserByID(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la récupération de l'utilisateur: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, user.Sanitize())
}

type userInput struct {
	UserName  string `json:"userName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ImageFile string `json:"imageFile"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
}

func validRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleResponsable || role == models.RoleLivreur
}

// CreateUser inserts a user with a hashed password. Email is unique.
func CreateUser(c *gin.Context) {
	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.UserName == "" || input.Email == "" || input.Password == "" || !validRole(input.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Champs requis manquants ou rôle invalide"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de l'utilisateur: " + err.Error()})
		return
	}
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"email": []string{"Cet email est déjà utilisé"}})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de l'utilisateur: " + err.Error()})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		UserName:  input.UserName,
		Email:     input.Email,
		Password:  hashed,
		ImageFile: input.ImageFile,
		Role:      input.Role,
		Phone:     input.Phone,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if _, err := config.UserCollection.InsertOne(ctx, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création de l'utilisateur: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Utilisateur %s créé avec succès", user.UserName),
		"user":    user.Sanitize(),
	})
}

// UpdateUser replaces the editable fields. An empty password keeps the old
// hash; the email uniqueness check excludes the user itself.
func UpdateUser(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}

	var input userInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var existing models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur: " + err.Error()})
		return
	}

	if input.Email != "" && input.Email != existing.Email {
		count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": input.Email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur: " + err.Error()})
			return
		}
		if count > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"email": []string{"Cet email est déjà utilisé"}})
			return
		}
	}

	updateFields := bson.M{"updated_at": time.Now()}
	if input.UserName != "" {
		updateFields["username"] = input.UserName
	}
	if input.Email != "" {
		updateFields["email"] = input.Email
	}
	if input.Password != "" {
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur: " + err.Error()})
			return
		}
		updateFields["password"] = hashed
	}
	if input.ImageFile != "" {
		updateFields["imagefile"] = input.ImageFile
	}
	if input.Role != "" {
		if !validRole(input.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"role": []string{"Rôle invalide"}})
			return
		}
		updateFields["role"] = input.Role
	}
	if input.Phone != "" {
		updateFields["phone"] = input.Phone
	}

	if _, err := config.UserCollection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": updateFields}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur: " + err.Error()})
		return
	}

	var updated models.User
	if err := config.UserCollection.FindOne(ctx, bson.M{"_id": objID}).Decode(&updated); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour de l'utilisateur: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Utilisateur mis à jour avec succès",
		"user":    updated.Sanitize(),
	})
}

func DeleteUser(c *gin.Context) {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	result, err := config.UserCollection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression de l'utilisateur: " + err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur non trouvé"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Utilisateur supprimé avec succès"})
}

// CreateManyUsers upserts a batch keyed by id, used to seed or sync a store.
func CreateManyUsers(c *gin.Context) {
	var inputs []models.User
	if err := c.ShouldBindJSON(&inputs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	processed := 0
	for _, user := range inputs {
		if user.ID.IsZero() {
			user.ID = primitive.NewObjectID()
		}
		filter := bson.M{"_id": user.ID}
		update := bson.M{"$set": bson.M{
			"username":   user.UserName,
			"email":      user.Email,
			"password":   user.Password,
			"imagefile":  user.ImageFile,
			"role":       user.Role,
			"phone":      user.Phone,
			"updated_at": time.Now(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := config.UserCollection.UpdateOne(ctx, filter, update, opts); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la création ou mise à jour des utilisateurs: " + err.Error()})
			return
		}
		processed++
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%d utilisateurs traités avec succès", processed)})
}
