package routes

import (
	orderControllers "github.com/Rajatkhanna801/store-backend/controllers/order"
	productcontroller "github.com/Rajatkhanna801/store-backend/controllers/product"
	settingsControllers "github.com/Rajatkhanna801/store-backend/controllers/settings"
	userControllers "github.com/Rajatkhanna801/store-backend/controllers/user"
	"github.com/Rajatkhanna801/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.POST("/users", userControllers.UpsertUser(db))

		admin.POST("/categories", productcontroller.CreateCategory(db))
		admin.POST("/products", productcontroller.CreateProduct(db))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db))

		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
		admin.PUT("/orders/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))

		// websocket endpoint for real-time order updates
		admin.GET("/ws/orders", orderControllers.OrderWebSocketHandler)

		admin.POST("/settings", settingsControllers.CreateSettings(db))
	}
}
