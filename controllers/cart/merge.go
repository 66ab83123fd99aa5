package cartControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

type MergeCartRequest struct {
	GuestID string `json:"guest_id" binding:"required"`
}

// MergeGuestCartIntoCustomerCart folds a guest cart into the customer's
// durable cart. Quantities for overlapping products add up; everything else
// moves over as new rows. The guest cart is deleted inside the same
// transaction, so a repeated call finds nothing to merge and is a no-op.
//
// Returns false with a nil error when there was no guest cart (or it was
// empty) and the customer's cart is left untouched.
func MergeGuestCartIntoCustomerCart(db *gorm.DB, guestID, customerID string) (bool, error) {
	merged := false

	err := db.Transaction(func(tx *gorm.DB) error {
		var guestCart models.Cart
		if err := tx.Preload("Items").
			Where("guest_id = ?", guestID).
			First(&guestCart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil // nothing to merge
			}
			return err
		}

		if len(guestCart.Items) == 0 {
			return nil
		}

		var customerCart models.Cart
		err := tx.Preload("Items").
			Where("customer_id = ?", customerID).
			First(&customerCart).Error

		if err == gorm.ErrRecordNotFound {
			// Customer has no cart yet: re-key the guest cart in place.
			// Ownership flips once and never reverts.
			if err := tx.Model(&guestCart).
				Updates(map[string]interface{}{"customer_id": customerID, "guest_id": nil}).Error; err != nil {
				return err
			}
			merged = true
			return nil
		} else if err != nil {
			return err
		}

		for _, guestItem := range guestCart.Items {
			var customerItem models.CartItem

			lookupErr := tx.Where(
				"cart_id = ? AND product_id = ?",
				customerCart.CartID,
				guestItem.ProductID,
			).First(&customerItem).Error

			if lookupErr == nil {
				// Additive merge: quantities combine, they are not replaced
				customerItem.Quantity += guestItem.Quantity
				customerItem.AddedAt = time.Now()

				if err := tx.Save(&customerItem).Error; err != nil {
					return err
				}
			} else if lookupErr == gorm.ErrRecordNotFound {
				newItem := models.CartItem{
					CartID:    customerCart.CartID,
					ProductID: guestItem.ProductID,
					LVName:    guestItem.LVName,
					RUName:    guestItem.RUName,
					ENName:    guestItem.ENName,
					Image:     guestItem.Image,
					Price:     guestItem.Price,
					Quantity:  guestItem.Quantity,
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			} else {
				return lookupErr
			}
		}

		if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&guestCart).Error; err != nil {
			return err
		}

		merged = true
		return nil
	})

	return merged, err
}

// POST /cart/merge
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := currentCustomerID(c)
		if customerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var req MergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if _, err := MergeGuestCartIntoCustomerCart(db, req.GuestID, customerID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to merge cart"})
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Where("customer_id = ?", customerID).First(&cart).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusOK, gin.H{"success": true, "cart": nil})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
	}
}
