package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/martasparks/martas-mebeles-api/controllers/admin"
	productcontroller "github.com/martasparks/martas-mebeles-api/controllers/product"
	translationControllers "github.com/martasparks/martas-mebeles-api/controllers/translation"
)

// SetupStorefrontRoutes registers the public browse endpoints.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))

	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))

	r.GET("/sliders", adminController.GetActiveSliders(db))

	r.GET("/translations/:locale", translationControllers.GetTranslationsForLocale(db))
}
