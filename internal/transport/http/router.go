package http

import (
	"store-service/internal/service"
	"store-service/internal/transport/http/handlers"
	"store-service/internal/transport/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Services struct {
	Catalog  service.CatalogService
	Orders   service.OrderService
	Shipping service.ShippingService
	Auth     service.AdminAuthService
}

func Router(svc Services, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, log)
	orderHandler := handlers.NewOrderHandler(svc.Orders, log)
	shippingHandler := handlers.NewShippingHandler(svc.Shipping, log)
	adminHandler := handlers.NewAdminHandler(svc.Auth, log)

	// публичная витрина
	r.GET("/products", catalogHandler.ListProducts)
	r.GET("/products/:id", catalogHandler.GetProduct)
	r.GET("/categories", catalogHandler.ListCategories)
	r.GET("/shipping", shippingHandler.GetCost)
	r.POST("/orders", orderHandler.CreateOrder)
	r.POST("/payments", orderHandler.CapturePayment)

	r.POST("/admin/login", adminHandler.Login)

	// админка за JWT
	admin := r.Group("/", middleware.AuthRequired(svc.Auth, log))
	{
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeactivateProduct)

		admin.POST("/categories", catalogHandler.CreateCategory)
		admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
		admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)

		admin.GET("/orders", orderHandler.ListOrders)
		admin.GET("/orders/:id", orderHandler.GetOrder)
		admin.PATCH("/orders/:id", orderHandler.UpdateOrderStatus)

		admin.POST("/shipping", shippingHandler.SetCost)
		admin.GET("/admin/dashboard", orderHandler.DashboardStats)
	}

	return r
}
