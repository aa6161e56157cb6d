package productcontroller

import (
	"net/http"

	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DeleteProduct handles DELETE /admin/products/:id. A product that is still
// referenced by any cart, checkout or order item cannot be removed.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		referenced, err := models.ProductReferenced(db, product.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check product references"})
			return
		}
		if referenced {
			c.JSON(http.StatusConflict, gin.H{"error": "Product is referenced by cart, checkout or order items"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
