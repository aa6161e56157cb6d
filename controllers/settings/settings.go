package settingsControllers

import (
	"net/http"

	"github.com/Rajatkhanna801/store-backend/config"
	"github.com/Rajatkhanna801/store-backend/models"
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CreateSettingsInput struct {
	MinimumOrderAmount string `json:"minimum_order_amount" binding:"required,decimal"`
	DeliveryCharge     string `json:"delivery_charge" binding:"required,decimal"`
}

// ValidDecimal is the "decimal" binding rule: a parseable, non-negative
// decimal string. Registered once in main.
func ValidDecimal(fl validatorv10.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	return err == nil && !d.IsNegative()
}

// CreateSettings handles POST /admin/settings. Settings are append-only;
// each call creates a new row and the latest row wins.
func CreateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateSettingsInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		minAmount, err := decimal.NewFromString(input.MinimumOrderAmount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minimum order amount"})
			return
		}
		delivery, err := decimal.NewFromString(input.DeliveryCharge)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid delivery charge"})
			return
		}

		settings := models.StoreSettings{
			MinimumOrderAmount: minAmount,
			DeliveryCharge:     delivery,
		}
		if err := db.Create(&settings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
			return
		}
		c.JSON(http.StatusCreated, settings)
	}
}

// GetSettings handles GET /settings: the latest configured row, or the
// config defaults when none exists yet.
func GetSettings(db *gorm.DB, cfg config.CheckoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		settings, err := models.LatestStoreSettings(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}
		if settings == nil {
			c.JSON(http.StatusOK, gin.H{
				"minimum_order_amount": cfg.MinimumOrderAmount,
				"delivery_charge":      cfg.DeliveryCharge,
			})
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}
