package productcontroller

import (
	"net/http"

	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateProductInput struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	CategoryID      uint   `json:"category_id" binding:"required"`
	Price           string `json:"price" binding:"required,decimal"`
	DiscountedPrice string `json:"discounted_price" binding:"omitempty,decimal"`
	Quantity        int    `json:"quantity" binding:"min=0"`
}

// CreateProduct handles POST /admin/products.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}

		price, err := decimal.NewFromString(input.Price)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
			return
		}
		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			CategoryID:  category.ID,
			Price:       price,
			Quantity:    input.Quantity,
		}
		if input.DiscountedPrice != "" {
			discounted, err := decimal.NewFromString(input.DiscountedPrice)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid discounted price"})
				return
			}
			product.DiscountedPrice = &discounted
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
