package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Public storefront routes
	SetupStorefrontRoutes(r, db)

	// Cart routes (guest + customer)
	SetupCartRoutes(r, db)

	// Customer profile routes (JWT-protected)
	SetupCustomerRoutes(r, db)

	// Order routes
	SetupOrderRoutes(r, db)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
