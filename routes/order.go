package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/martasparks/martas-mebeles-api/controllers/order"
	"github.com/martasparks/martas-mebeles-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	{
		// Create a new order (guests checkout too, so the token is optional)
		orders.POST("/place", middleware.OptionalToken, orderControllers.PlaceOrderHandler(db))

		// Order confirmation lookup by human-readable number
		orders.GET("/number/:orderNumber", orderControllers.GetOrderByNumberHandler(db))

		// Fetch all orders (admin)
		orders.GET("/", middleware.ValidateAPIKey, orderControllers.GetAllOrdersHandler(db))

		// websocket endpoint for real-time order updates
		orders.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		// Fetch orders for a specific customer
		orders.GET("/customer/:customerID", middleware.ValidateToken, orderControllers.GetCustomerOrdersHandler(db))

		// Update order status (e.g., shipped, cancelled)
		orders.PUT("/:orderID/status", middleware.ValidateAPIKey, orderControllers.UpdateOrderStatusHandler(db))

		// Update payment status (e.g., paid, refunded)
		orders.PUT("/:orderID/payment-status", middleware.ValidateAPIKey, orderControllers.UpdatePaymentStatusHandler(db))
	}
}
