package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rajatkhanna801/store-backend/middleware"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CartItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=0"`
	Status    string `json:"status" binding:"omitempty,oneof=active saved_for_later"`
}

type UpdateCartItemInput struct {
	Quantity *int   `json:"quantity" binding:"omitempty,min=0"`
	Status   string `json:"status" binding:"omitempty,oneof=active saved_for_later"`
}

// getOrCreateCart fetches the user's cart, creating it on first use.
func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// GET /cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}
		var items []models.CartItem
		if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart items"})
			return
		}

		actual, total, discount := models.CartSubtotalDetails(items)
		c.JSON(http.StatusOK, gin.H{
			"id":    cart.ID,
			"items": items,
			"subtotal": gin.H{
				"actual_price":   actual,
				"total_amount":   total,
				"discount_price": discount,
			},
		})
	}
}

// POST /cart
// Adds a product to the cart, or replaces the quantity if the product is
// already present in the same status bucket. Quantity 0 removes the item.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		status := models.CartItemStatus(input.Status)
		if status == "" {
			status = models.CartItemStatusActive
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ? AND status = ?", cart.ID, product.ID, status).
			First(&item).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if input.Quantity == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
				return
			}
			item = models.CartItem{
				CartID:    cart.ID,
				ProductID: product.ID,
				Quantity:  input.Quantity,
				Status:    status,
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
			c.JSON(http.StatusCreated, item)
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
		default:
			if input.Quantity == 0 {
				if err := db.Delete(&item).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
				return
			}
			item.Quantity = input.Quantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
			c.JSON(http.StatusOK, item)
		}
	}
}

// PUT /cart/:itemID
// Updates quantity and/or moves the item between the active and
// saved-for-later buckets.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID, err := strconv.ParseUint(c.Param("itemID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart item ID"})
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}
		var item models.CartItem
		if err := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		if input.Quantity != nil {
			if *input.Quantity == 0 {
				if err := db.Delete(&item).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove cart item"})
					return
				}
				c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
				return
			}
			item.Quantity = *input.Quantity
		}
		if input.Status != "" {
			newStatus := models.CartItemStatus(input.Status)
			if newStatus != item.Status {
				// The same product may already sit in the target bucket.
				var count int64
				db.Model(&models.CartItem{}).
					Where("cart_id = ? AND product_id = ? AND status = ?", cart.ID, item.ProductID, newStatus).
					Count(&count)
				if count > 0 {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Product already in " + input.Status})
					return
				}
				item.Status = newStatus
			}
		}

		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /cart/:itemID
func DeleteCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		itemID := c.Param("itemID")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User cart not found"})
			return
		}

		result := db.Where("id = ? AND cart_id = ?", itemID, cart.ID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user cart"})
			return
		}
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
