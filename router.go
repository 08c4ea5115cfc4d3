package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "financetracker/docs"
)

// setupRouter builds the engine with middleware and every API route.
func setupRouter(allowedOrigins []string, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(recovery(log))
	r.Use(requestLogger(log))

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "X-CSRF-Token", "Authorization", requestIDHeader},
		ExposeHeaders:    []string{"Content-Length", requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", healthCheck)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")

	// Account routes
	api.GET("/accounts", getAccounts)
	api.GET("/accounts/totalNetworth", getTotalNetworth)
	api.GET("/accounts/:id", getAccount)
	api.POST("/accounts", createAccount)
	api.PUT("/accounts/:id", updateAccount)
	api.DELETE("/accounts/:id", deleteAccount)

	// Category routes
	api.GET("/categories", getCategories)
	api.POST("/categories", createCategory)
	api.DELETE("/categories/:id", deleteCategory)

	// Transaction routes
	api.GET("/transactions", getTransactions)
	api.GET("/transactions/totalSpendMonth", getTotalSpendMonth)
	api.GET("/transactions/totalSpendYear", getTotalSpendYear)
	api.GET("/transactions/totalIncomeMonth", getTotalIncomeMonth)
	api.GET("/transactions/currentMonthDaily", getCurrentMonthDaily)
	api.GET("/transactions/snapshot", getSnapshots)
	api.POST("/transactions/snapshot", recordSnapshot)
	api.GET("/transactions/:id", getTransaction)
	api.POST("/transactions", createTransaction)
	api.PUT("/transactions/:id", updateTransaction)
	api.DELETE("/transactions/:id", deleteTransaction)

	api.GET("/summary", getSummary)

	return r
}
