package orderControllers

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

// Flat-rate shipping policy, currently free delivery across Latvia.
const shippingCost = 0.0

// Attempts with the short suffix before widening it.
const orderNumberMaxRetries = 10

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type PlaceOrderRequest struct {
	Name          string           `json:"name" binding:"required"`
	Email         string           `json:"email" binding:"required,email"`
	Phone         string           `json:"phone"`
	Country       string           `json:"country"`
	City          string           `json:"city"`
	Street        string           `json:"street"`
	PostalCode    string           `json:"postal_code"`
	Notes         string           `json:"notes"`
	PaymentMethod string           `json:"payment_method"` // e.g. "card", "cod"
	Items         []OrderItemInput `json:"items" binding:"required,dive"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// candidateOrderNumber builds MM + 6 time digits + a random suffix.
// The suffix is 3 digits; wide candidates use 6 to guarantee the retry
// loop terminates even under a burst of same-second checkouts.
func candidateOrderNumber(wide bool) string {
	timePart := fmt.Sprintf("%06d", time.Now().Unix()%1000000)
	if wide {
		return fmt.Sprintf("MM%s%06d", timePart, rand.Intn(1000000))
	}
	return fmt.Sprintf("MM%s%03d", timePart, rand.Intn(1000))
}

// GenerateOrderNumber produces an order number not present in the orders
// table. Regenerates on collision, switching to the wider suffix after
// orderNumberMaxRetries attempts.
func GenerateOrderNumber(tx *gorm.DB) (string, error) {
	for attempt := 0; ; attempt++ {
		number := candidateOrderNumber(attempt >= orderNumberMaxRetries)

		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
}

// -------- Core Logic --------

// PlaceOrder snapshots the submitted items into an immutable order. Prices
// always come from the live catalog, never from the client. Totals are
// computed once here and never recomputed afterwards.
func PlaceOrder(db *gorm.DB, customerID string, req PlaceOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, errors.New("order has no items")
	}

	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal float64
		var orderItems []models.OrderItem

		for _, input := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.New("product does not exist")
				}
				return err
			}

			if product.Stock < input.Quantity {
				return errors.New("insufficient stock for product: " + product.LVName)
			}

			// Deduct stock
			product.Stock -= input.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			subtotal += product.SalePrice * float64(input.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID: product.ID,
				LVName:    product.LVName,
				RUName:    product.RUName,
				ENName:    product.ENName,
				Image:     product.Image,
				Price:     product.SalePrice,
				Quantity:  input.Quantity,
			})
		}

		orderNumber, err := GenerateOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:   orderNumber,
			Name:          req.Name,
			Email:         req.Email,
			Phone:         req.Phone,
			Country:       req.Country,
			City:          req.City,
			Street:        req.Street,
			PostalCode:    req.PostalCode,
			Notes:         req.Notes,
			Items:         orderItems,
			Subtotal:      subtotal,
			ShippingCost:  shippingCost,
			TotalAmount:   subtotal + shippingCost,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			CreatedAt:     time.Now(),
		}
		if customerID != "" {
			order.CustomerID = &customerID
		}

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Logged-in customers get their server cart cleared here; guest
		// carts are cleared by the client after the confirmation page.
		if customerID != "" {
			var cart models.Cart
			if err := tx.Where("customer_id = ?", customerID).First(&cart).Error; err == nil {
				if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
					return err
				}
			} else if err != gorm.ErrRecordNotFound {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	broadcastNewOrder(order)
	return &order, nil
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		customerID := ""
		if v, exists := c.Get("customer_id"); exists {
			customerID, _ = v.(string)
		}

		order, err := PlaceOrder(db, customerID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order": gin.H{
				"orderNumber":   order.OrderNumber,
				"totalAmount":   order.TotalAmount,
				"orderStatus":   order.Status,
				"paymentStatus": order.PaymentStatus,
				"createdAt":     order.CreatedAt,
			},
		})
	}
}

// GET /orders/number/:orderNumber
func GetOrderByNumberHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderNumber := c.Param("orderNumber")
		if orderNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderNumber is required"})
			return
		}

		var order models.Order
		if err := db.
			Preload("Items").
			Where("order_number = ?", orderNumber).
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// GET /orders/ (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/customer/:customerID
func GetCustomerOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		customerID := c.Param("customerID")
		if customerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerID is required"})
			return
		}
		var orders []models.Order
		if err := db.
			Where("customer_id = ?", customerID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /orders/:orderID/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /orders/:orderID/payment-status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
