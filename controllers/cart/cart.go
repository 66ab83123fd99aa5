package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

type SyncItemInput struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type SyncCartRequest struct {
	GuestID string          `json:"guest_id"`
	Items   []SyncItemInput `json:"items"`
}

// currentCustomerID returns the authenticated customer id, or "" for guests.
func currentCustomerID(c *gin.Context) string {
	if v, exists := c.Get("customer_id"); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// findOwnerCart locates the cart for the caller. Authenticated callers get
// their customer cart; if none exists yet but the supplied guest id still
// owns a cart, that cart is promoted in place (customer key attached, guest
// key cleared). This is the lazy alternate path to the explicit merge and
// must land in the same end state. A fresh cart row is created when the
// caller has none.
func findOwnerCart(tx *gorm.DB, customerID, guestID string) (*models.Cart, error) {
	var cart models.Cart

	if customerID != "" {
		err := tx.Where("customer_id = ?", customerID).First(&cart).Error
		if err == nil {
			return &cart, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}

		if guestID != "" {
			err = tx.Where("guest_id = ?", guestID).First(&cart).Error
			if err == nil {
				if cart.CustomerID == nil {
					if err := tx.Model(&cart).
						Updates(map[string]interface{}{"customer_id": customerID, "guest_id": nil}).Error; err != nil {
						return nil, err
					}
					cart.CustomerID = &customerID
					cart.GuestID = nil
				}
				return &cart, nil
			}
			if err != gorm.ErrRecordNotFound {
				return nil, err
			}
		}

		cart = models.Cart{CustomerID: &customerID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}

	err := tx.Where("guest_id = ?", guestID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{GuestID: &guestID}
		if err := tx.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// POST /cart/sync
//
// Full replace: the submitted item list becomes the cart's item list inside
// a single transaction. An empty list clears the cart. Snapshots are taken
// from the live catalog, never from the client payload.
func SyncCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		customerID := currentCustomerID(c)
		if customerID == "" && req.GuestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		for _, item := range req.Items {
			if item.Quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
				return
			}
		}

		var cart *models.Cart
		err := db.Transaction(func(tx *gorm.DB) error {
			var txErr error
			cart, txErr = findOwnerCart(tx, customerID, req.GuestID)
			if txErr != nil {
				return txErr
			}

			// Replace, not diff: delete every row, then bulk-insert the
			// submitted list. Idempotent by construction.
			if txErr := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; txErr != nil {
				return txErr
			}

			for _, input := range req.Items {
				var product models.Product
				if txErr := tx.First(&product, "id = ?", input.ProductID).Error; txErr != nil {
					return txErr
				}
				newItem := models.CartItem{
					CartID:    cart.CartID,
					ProductID: product.ID,
					LVName:    product.LVName,
					RUName:    product.RUName,
					ENName:    product.ENName,
					Image:     product.Image,
					Price:     product.SalePrice,
					Quantity:  input.Quantity,
					AddedAt:   time.Now(),
				}
				if txErr := tx.Create(&newItem).Error; txErr != nil {
					return txErr
				}
			}
			return nil
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync cart"})
			return
		}

		var fresh models.Cart
		if err := db.Preload("Items").First(&fresh, cart.CartID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "cart": fresh})
	}
}

// GET /cart?guest_id=<id>
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := currentCustomerID(c)
		guestID := c.Query("guest_id")

		if customerID == "" && guestID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "guest_id is required"})
			return
		}

		var cart models.Cart
		query := db.Preload("Items")
		if customerID != "" {
			query = query.Where("customer_id = ?", customerID)
		} else {
			query = query.Where("guest_id = ?", guestID)
		}

		if err := query.First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, gin.H{"cart": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}

// DELETE /cart
func ClearCustomerCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := currentCustomerID(c)
		if customerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var cart models.Cart
		if err := db.Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				// Nothing to clear
				c.JSON(http.StatusOK, gin.H{"success": true})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// GET /admin/customer-cart/:customer_id
func GetAdminCustomerCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customer_id")
		if customerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, gin.H{"cart": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"cart": cart})
	}
}
