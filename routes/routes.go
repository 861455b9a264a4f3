package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abdo261/server-pokemon/controllers"
	"github.com/abdo261/server-pokemon/middleware"
	"github.com/abdo261/server-pokemon/models"
)

func InitializeRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.POST("/auth/login", controllers.Login)

	users := api.Group("/users")
	users.Use(middleware.AuthMiddleware(models.RoleAdmin))
	{
		users.GET("/", controllers.GetAllUsers)
		users.GET("/:id", controllers.GetUserByID)
		users.POST("/", controllers.CreateUser)
		users.POST("/many", controllers.CreateManyUsers)
		users.PUT("/:id", controllers.UpdateUser)
		users.DELETE("/:id", controllers.DeleteUser)
	}

	categories := api.Group("/categories")
	{
		categories.GET("/", controllers.GetAllCategories)
		categories.GET("/:id", controllers.GetCategoryByID)
		categories.POST("/", controllers.CreateCategory)
		categories.POST("/many", controllers.CreateManyCategories)
		categories.PUT("/:id", controllers.UpdateCategory)
		categories.DELETE("/:id", controllers.DeleteCategory)
	}

	products := api.Group("/products")
	{
		products.GET("/", controllers.GetAllProducts)
		products.GET("/:id", controllers.GetProductByID)
		products.POST("/", controllers.CreateProduct)
		products.POST("/many", controllers.CreateManyProducts)
		products.PUT("/:id", controllers.UpdateProduct)
		products.DELETE("/:id", controllers.DeleteProduct)
	}

	offers := api.Group("/offers")
	{
		offers.GET("/", controllers.GetAllOffers)
		offers.GET("/:id", controllers.GetOfferByID)
		offers.POST("/", controllers.CreateOffer)
		offers.PUT("/:id", controllers.UpdateOffer)
		offers.DELETE("/:id", controllers.DeleteOffer)
	}

	payments := api.Group("/payments")
	{
		payments.GET("/", controllers.GetAllPayments)
		payments.GET("/enline", controllers.GetEnlinePayments)
		payments.GET("/locale", controllers.GetLocalPayments)
		payments.GET("/:id", controllers.GetPaymentByID)
		payments.POST("/", controllers.CreatePayment)
		payments.PUT("/:id", controllers.UpdatePayment)
		payments.DELETE("/:id", controllers.DeletePayment)
	}

	paymentOffers := api.Group("/paymentsOffer")
	{
		paymentOffers.GET("/", controllers.GetAllPaymentOffers)
		paymentOffers.GET("/enline", controllers.GetEnlinePaymentOffers)
		paymentOffers.GET("/locale", controllers.GetLocalPaymentOffers)
		paymentOffers.GET("/:id", controllers.GetPaymentOfferByID)
		paymentOffers.POST("/", controllers.CreatePaymentOffer)
		paymentOffers.PUT("/:id", controllers.UpdatePaymentOffer)
		paymentOffers.DELETE("/:id", controllers.DeletePaymentOffer)
	}

	days := api.Group("/days")
	{
		days.GET("/", controllers.GetAllDays)
		days.GET("/latest", controllers.GetLatestDay)
		days.GET("/:id", controllers.GetDayByID)
		days.GET("/count/:dayId", controllers.CountAllPaymentsForDay)
		days.GET("/countAllPaymentWithQ/:dayId", controllers.CountAllPaymentsForDayWithQ)
		days.GET("/countCountAllPaymentsWithDayRange/:dayId", controllers.CountAllPaymentsWithDayRange)
		days.POST("/", controllers.CreateDay)
		days.PUT("/:id", controllers.UpdateDay)
		days.DELETE("/:id", controllers.DeleteDay)
	}

	counts := api.Group("/paymentCounts")
	{
		counts.GET("/countAll", controllers.CountAllPayments)
		counts.GET("/countAllWitheQuantity", controllers.CountAllPaymentsWithQ)
		counts.GET("/countByProducts", controllers.CountPaymentsByProduct)
		counts.GET("/countByOffers", controllers.CountPaymentsByOffer)
		counts.GET("/countByProductsWithQuantity", controllers.CountPaymentsByProductWithQuantity)
		counts.GET("/countByOffersWithQuantity", controllers.CountPaymentsByOfferWithQuantity)
	}

	images := api.Group("/images")
	{
		images.GET("/category/:name", controllers.GetImageCategoryByName)
		images.GET("/product/:name", controllers.GetImageProductByName)
		images.GET("/offer/:name", controllers.GetImageOfferByName)
	}
}
