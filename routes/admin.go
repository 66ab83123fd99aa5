package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/martasparks/martas-mebeles-api/controllers/admin"
	cartControllers "github.com/martasparks/martas-mebeles-api/controllers/cart"
	customerControllers "github.com/martasparks/martas-mebeles-api/controllers/customer"
	productcontroller "github.com/martasparks/martas-mebeles-api/controllers/product"
	translationControllers "github.com/martasparks/martas-mebeles-api/controllers/translation"
	"github.com/martasparks/martas-mebeles-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// Admin & customer management
		adminGroup.GET("/admins", adminController.GetAllAdmins(db))
		adminGroup.GET("/customers", customerControllers.GetAllCustomers(db))

		// Product management
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// Category management
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// Admin approval workflow
		adminMgmt := adminGroup.Group("/admin-management")
		{
			adminMgmt.GET("/pending", adminController.ListPendingAdmins(db))
			adminMgmt.POST("/approve", adminController.ApproveAdmin(db))
			adminMgmt.POST("/reject", adminController.RejectAdmin(db))
		}

		// Homepage slider management
		sliderMgmt := adminGroup.Group("/sliders")
		{
			sliderMgmt.POST("/upload", adminController.UploadSlider(db))
			sliderMgmt.GET("/", adminController.GetSliders(db))
			sliderMgmt.PUT("/:id", adminController.UpdateSlider(db))
			sliderMgmt.DELETE("/:id", adminController.DeleteSlider(db))
		}

		// Runtime-editable UI translations
		translationMgmt := adminGroup.Group("/translations")
		{
			translationMgmt.GET("", translationControllers.GetAllTranslations(db))
			translationMgmt.POST("", translationControllers.UpsertTranslation(db))
			translationMgmt.PUT("/:id", translationControllers.UpdateTranslation(db))
			translationMgmt.DELETE("/:id", translationControllers.DeleteTranslation(db))
		}

		// Support view into a customer's live cart
		cartMgmt := adminGroup.Group("/customer-cart")
		{
			cartMgmt.GET("/:customer_id", cartControllers.GetAdminCustomerCart(db))
		}
	}
}
