package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abdo261/server-pokemon/config"
	"github.com/abdo261/server-pokemon/controllers"
	"github.com/abdo261/server-pokemon/middleware"
	"github.com/abdo261/server-pokemon/routes"
	"github.com/abdo261/server-pokemon/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	r := gin.Default()

	middleware.InitMetrics()
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", func(c *gin.Context) {
		promhttp.Handler().ServeHTTP(c.Writer, c.Request)
	})

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://192.168.1.4:3000", "http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	s := gocron.NewScheduler(time.Local)
	s.Every(1).Day().At("23:50").Do(utils.SendDailyReport)
	s.StartAsync()

	config.ConnectDatabase()
	controllers.InitImageStore()
	routes.InitializeRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	r.Run(":" + port)
}
