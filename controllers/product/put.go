package productcontroller

import (
	"net/http"

	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	CategoryID      uint    `json:"category_id"`
	Price           string  `json:"price" binding:"omitempty,decimal"`
	DiscountedPrice *string `json:"discounted_price" binding:"omitempty,decimal"`
	Quantity        *int    `json:"quantity" binding:"omitempty,min=0"`
}

// UpdateProduct handles PUT /admin/products/:id. Setting quantity here is
// the administrative restock path; reservations never touch it directly.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != "" {
			product.Name = input.Name
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.CategoryID != 0 {
			var category models.Category
			if err := db.First(&category, input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			product.CategoryID = category.ID
		}
		if input.Price != "" {
			price, err := decimal.NewFromString(input.Price)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
				return
			}
			product.Price = price
		}
		if input.DiscountedPrice != nil {
			if *input.DiscountedPrice == "" {
				product.DiscountedPrice = nil
			} else {
				discounted, err := decimal.NewFromString(*input.DiscountedPrice)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discounted price"})
					return
				}
				product.DiscountedPrice = &discounted
			}
		}
		if input.Quantity != nil {
			product.Quantity = *input.Quantity
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
