package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/models"
	"github.com/abdo261/server-pokemon/utils"
)

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, issues a JWT and records a session audit row.
// Wrong email and wrong password return the same message so the form cannot
// be used to probe accounts.
func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"email":    []string{"L'email est requis"},
			"password": []string{"Le mot de passe est requis"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": input.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{
			"email":    []string{"Identifiants incorrects"},
			"password": []string{"Identifiants incorrects"},
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion de l'utilisateur: " + err.Error()})
		return
	}

	if err := utils.VerifyPassword(user.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"email":    []string{"Identifiants incorrects"},
			"password": []string{"Identifiants incorrects"},
		})
		return
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la connexion de l'utilisateur: " + err.Error()})
		return
	}

	session := models.Session{
		ID:        primitive.NewObjectID(),
		UserID:    user.ID,
		Role:      user.Role,
		IP:        c.ClientIP(),
		Device:    c.GetHeader("User-Agent"),
		Timestamp: time.Now(),
	}
	if _, err := config.SessionCollection.InsertOne(ctx, session); err != nil {
		// The login itself succeeded; a lost audit row is only logged.
		c.Error(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"token":   token,
		"user":    user.Sanitize(),
	})
}
