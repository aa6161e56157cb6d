package routes

import (
	"github.com/Rajatkhanna801/store-backend/config"
	cartControllers "github.com/Rajatkhanna801/store-backend/controllers/cart"
	checkoutControllers "github.com/Rajatkhanna801/store-backend/controllers/checkout"
	orderControllers "github.com/Rajatkhanna801/store-backend/controllers/order"
	settingsControllers "github.com/Rajatkhanna801/store-backend/controllers/settings"
	userControllers "github.com/Rajatkhanna801/store-backend/controllers/user"
	"github.com/Rajatkhanna801/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	user := r.Group("/")
	user.Use(middleware.ValidateToken)
	{
		user.GET("/me", userControllers.GetProfile(db))

		user.GET("/addresses", userControllers.GetAddresses(db))
		user.POST("/addresses", userControllers.CreateAddress(db))
		user.DELETE("/addresses/:addressID", userControllers.DeleteAddress(db))

		user.GET("/cart", cartControllers.GetUserCart(db))
		user.POST("/cart", cartControllers.AddCartItem(db))
		user.PUT("/cart/:itemID", cartControllers.UpdateCartItem(db))
		user.DELETE("/cart/:itemID", cartControllers.DeleteCartItem(db))
		user.DELETE("/cart", cartControllers.ClearUserCart(db))

		// Checkout reservation lifecycle
		user.POST("/checkouts", checkoutControllers.CreateCheckoutHandler(db, cfg.Checkout))
		user.GET("/checkouts/:checkoutID", checkoutControllers.GetCheckoutHandler(db))
		user.POST("/checkouts/:checkoutID/cancel", checkoutControllers.CancelCheckoutHandler(db))

		// Convert checkout to a permanent order
		user.POST("/orders", orderControllers.CreateOrderHandler(db, cfg.Checkout))
		user.GET("/orders", orderControllers.GetUserOrdersHandler(db))
		user.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db, cfg.Checkout))

		user.GET("/settings", settingsControllers.GetSettings(db, cfg.Checkout))
	}
}
