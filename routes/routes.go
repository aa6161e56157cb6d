package routes

import (
	"github.com/Rajatkhanna801/store-backend/config"
	"github.com/Rajatkhanna801/store-backend/metrics"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up the public, user and
// admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public catalog + metrics
	SetupProductRoutes(r, db)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// User routes (JWT-protected)
	SetupUserRoutes(r, db, cfg)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
