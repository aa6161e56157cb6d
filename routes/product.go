package routes

import (
	productcontroller "github.com/Rajatkhanna801/store-backend/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("/", productcontroller.GetAllProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
	r.GET("/categories", productcontroller.GetAllCategories(db))
}
