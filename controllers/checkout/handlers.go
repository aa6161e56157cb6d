package checkoutControllers

import (
	"net/http"
	"strconv"

	"github.com/Rajatkhanna801/store-backend/config"
	"github.com/Rajatkhanna801/store-backend/errs"
	"github.com/Rajatkhanna801/store-backend/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func respondError(c *gin.Context, err error) {
	if shortfalls, ok := errs.StockDetails(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Insufficient inventory", "errors": shortfalls})
		return
	}
	switch {
	case errs.IsStateConflict(err):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	case errs.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
	}
}

// POST /checkouts
func CreateCheckoutHandler(db *gorm.DB, cfg config.CheckoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		checkout, err := CreateCheckout(db, cfg, userID, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"checkout":          checkout,
			"expires_in_second": int(checkout.TimeUntilExpiry().Seconds()),
		})
	}
}

// GET /checkouts/:checkoutID
func GetCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		checkoutID, err := strconv.ParseUint(c.Param("checkoutID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout ID"})
			return
		}
		checkout, err := GetCheckout(db, userID, uint(checkoutID))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"checkout":          checkout,
			"expires_in_second": int(checkout.TimeUntilExpiry().Seconds()),
		})
	}
}

// POST /checkouts/:checkoutID/cancel
func CancelCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		checkoutID, err := strconv.ParseUint(c.Param("checkoutID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checkout ID"})
			return
		}
		if err := CancelCheckout(db, userID, uint(checkoutID)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Checkout cancelled. Items returned to inventory."})
	}
}
