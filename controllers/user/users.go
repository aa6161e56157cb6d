package userControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Rajatkhanna801/store-backend/middleware"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddressInput struct {
	Label     string `json:"label"`
	Line1     string `json:"line1" binding:"required"`
	Line2     string `json:"line2"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Pincode   string `json:"pincode" binding:"required"`
	IsDefault bool   `json:"is_default"`
}

// GET /me
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user models.User
		if err := db.Preload("Addresses").First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// POST /addresses
func CreateAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var input AddressInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		address := models.Address{
			UserID:    userID,
			Label:     input.Label,
			Line1:     input.Line1,
			Line2:     input.Line2,
			City:      input.City,
			State:     input.State,
			Country:   input.Country,
			Pincode:   input.Pincode,
			IsDefault: input.IsDefault,
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if input.IsDefault {
				// Only one default address per user.
				if err := tx.Model(&models.Address{}).
					Where("user_id = ?", userID).
					Update("is_default", false).Error; err != nil {
					return err
				}
			}
			return tx.Create(&address).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
			return
		}
		c.JSON(http.StatusCreated, address)
	}
}

// GET /addresses
func GetAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var addresses []models.Address
		if err := db.Where("user_id = ?", userID).
			Order("is_default DESC, created_at DESC").
			Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
			return
		}
		c.JSON(http.StatusOK, addresses)
	}
}

// DELETE /addresses/:addressID
// Addresses referenced by checkouts or orders are delete-protected.
func DeleteAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		addressID, err := strconv.ParseUint(c.Param("addressID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid address ID"})
			return
		}

		var address models.Address
		if err := db.Where("id = ? AND user_id = ?", addressID, userID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}

		var count int64
		for _, model := range []any{&models.Checkout{}, &models.Order{}} {
			if err := db.Model(model).Where("shipping_address_id = ?", address.ID).Count(&count).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check address references"})
				return
			}
			if count > 0 {
				c.JSON(http.StatusConflict, gin.H{"error": "Address is referenced by checkouts or orders"})
				return
			}
		}

		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Address deleted"})
	}
}

// -------- Admin --------

type UpsertUserInput struct {
	ID    string `json:"id" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// POST /admin/users
// Users are provisioned by the identity provider; this endpoint mirrors
// them into the store database.
func UpsertUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpsertUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		err := db.First(&user, "id = ?", input.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			user = models.User{ID: input.ID, Email: input.Email, Name: input.Name, Phone: input.Phone}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
				return
			}
			c.JSON(http.StatusCreated, user)
		case err != nil:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		default:
			user.Email = input.Email
			user.Name = input.Name
			user.Phone = input.Phone
			if err := db.Save(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
			c.JSON(http.StatusOK, user)
		}
	}
}
