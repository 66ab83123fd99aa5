package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/martasparks/martas-mebeles-api/controllers/cart"
	"github.com/martasparks/martas-mebeles-api/middleware"
)

// SetupCartRoutes registers the "/cart/*" endpoints. Sync and read work for
// both guests and logged-in customers; merge and clear require a session.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", middleware.OptionalToken, cartControllers.GetCart(db))          // GET /cart?guest_id=<id>
		cartGroup.POST("/sync", middleware.OptionalToken, cartControllers.SyncCart(db))   // POST /cart/sync
		cartGroup.POST("/merge", middleware.ValidateToken, cartControllers.MergeCart(db)) // POST /cart/merge
		cartGroup.DELETE("", middleware.ValidateToken, cartControllers.ClearCustomerCart(db))
	}
}
