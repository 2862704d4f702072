package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freshkart/freshkart-backend-go/handlers"
	"github.com/freshkart/freshkart-backend-go/metrics"
	customMiddleware "github.com/freshkart/freshkart-backend-go/middleware"
	"github.com/freshkart/freshkart-backend-go/repository"
	"github.com/freshkart/freshkart-backend-go/services"
)

func SetupRoutes(e *echo.Echo, db *mongo.Database) {
	orderRepo := repository.NewOrderRepository(db)
	deliveryRepo := repository.NewDeliveryRepository(db)
	agentRepo := repository.NewAgentRepository(db)

	lifecycle := services.NewLifecycle(orderRepo, deliveryRepo, agentRepo)
	agentSvc := services.NewAgents(agentRepo, deliveryRepo)

	vendorOrders := handlers.NewVendorOrders(lifecycle)
	vendorDeliveries := handlers.NewVendorDeliveries(lifecycle, deliveryRepo)
	deliveryAgents := handlers.NewDeliveryAgents(agentSvc)

	// Public routes
	e.POST("/api/auth/register", handlers.RegisterCustomer)
	e.POST("/api/auth/login", handlers.LoginCustomer)
	e.POST("/api/vendor/auth/register", handlers.RegisterVendor)
	e.POST("/api/vendor/auth/login", handlers.LoginVendor)

	e.GET("/api/products", handlers.GetProducts)
	e.GET("/api/products/:id", handlers.GetProduct)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", metrics.Handler())

	// Customer routes
	api := e.Group("/api", customMiddleware.CustomerAuth)

	api.GET("/cart", handlers.GetCart)
	api.POST("/cart", handlers.AddToCart)
	api.PUT("/cart/quantity", handlers.UpdateCartItemQuantity)
	api.DELETE("/cart/:productId", handlers.RemoveFromCart)

	api.POST("/orders", handlers.Checkout)
	api.GET("/orders", handlers.GetMyOrders)
	api.GET("/orders/:id", handlers.GetMyOrder)
	api.GET("/orders/:id/status", handlers.GetMyOrderStatus)

	// Vendor dashboard routes
	vendor := e.Group("/api/vendor", customMiddleware.VendorAuth)

	vendor.GET("/orders", handlers.GetVendorOrders)
	vendor.PUT("/orders", vendorOrders.UpdateStatus)

	vendor.GET("/deliveries", vendorDeliveries.List)
	vendor.PUT("/deliveries/:id/status", vendorDeliveries.UpdateStatus)
	vendor.PUT("/deliveries/:id/assign", vendorDeliveries.Assign)

	vendor.POST("/delivery-agents", deliveryAgents.Create)
	vendor.GET("/delivery-agents", deliveryAgents.List)
	vendor.GET("/delivery-agents/:id", deliveryAgents.Get)
	vendor.PUT("/delivery-agents/:id", deliveryAgents.Update)
	vendor.DELETE("/delivery-agents/:id", deliveryAgents.Delete)

	vendor.GET("/products", handlers.GetVendorProducts)
	vendor.POST("/products", handlers.CreateProduct)
	vendor.PUT("/products/:id", handlers.UpdateProduct)
	vendor.DELETE("/products/:id", handlers.DeleteProduct)

	vendor.GET("/analytics/summary", handlers.GetAnalyticsSummary)
	vendor.GET("/settings", handlers.GetStoreSettings)
	vendor.PUT("/settings", handlers.UpdateStoreSettings)
}
