package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	customerControllers "github.com/martasparks/martas-mebeles-api/controllers/customer"
	"github.com/martasparks/martas-mebeles-api/middleware"
)

// SetupCustomerRoutes registers all "/customer/*" endpoints. Requires JWT middleware.
func SetupCustomerRoutes(r *gin.Engine, db *gorm.DB) {
	customerGroup := r.Group("/customer")
	customerGroup.Use(middleware.ValidateToken)
	{
		customerGroup.GET("/", customerControllers.GetCustomer(db))    // GET /customer/
		customerGroup.PUT("/", customerControllers.UpdateCustomer(db)) // PUT /customer/
	}
}
