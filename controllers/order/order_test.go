package orderControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Expected no error opening test db, got: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Expected no error migrating, got: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, id uint, name string, price float64, stock int) {
	t.Helper()
	product := models.Product{ID: id, LVName: name, SalePrice: price, Stock: stock}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Expected no error seeding product, got: %v", err)
	}
}

func checkoutRequest(items ...OrderItemInput) PlaceOrderRequest {
	return PlaceOrderRequest{
		Name:          "Anna Berzina",
		Email:         "anna@example.com",
		Phone:         "+37120000000",
		Country:       "Latvia",
		City:          "Riga",
		Street:        "Brivibas iela 1",
		PostalCode:    "LV-1010",
		PaymentMethod: "card",
		Items:         items,
	}
}

var orderNumberPattern = regexp.MustCompile(`^MM\d{6}\d{3,6}$`)

func TestPlaceOrder_ComputesTotalsFromCatalog(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)
	seedProduct(t, db, 2, "Galds", 5, 5)

	order, err := PlaceOrder(db, "", checkoutRequest(
		OrderItemInput{ProductID: 1, Quantity: 2},
		OrderItemInput{ProductID: 2, Quantity: 1},
	))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if order.Subtotal != 25 {
		t.Errorf("Expected subtotal 25, got %v", order.Subtotal)
	}
	if order.TotalAmount != 25+shippingCost {
		t.Errorf("Expected total %v, got %v", 25+shippingCost, order.TotalAmount)
	}
	if !orderNumberPattern.MatchString(order.OrderNumber) {
		t.Errorf("Expected order number like MM123456789, got %q", order.OrderNumber)
	}
	if order.Status != models.OrderStatusPending || order.PaymentStatus != models.PaymentStatusPending {
		t.Errorf("Expected pending/pending, got %s/%s", order.Status, order.PaymentStatus)
	}
	if order.CustomerID != nil {
		t.Error("Expected guest order to have no customer")
	}

	var stored models.Order
	if err := db.Preload("Items").First(&stored, order.ID).Error; err != nil {
		t.Fatalf("Expected order to be persisted, got: %v", err)
	}
	if len(stored.Items) != 2 {
		t.Fatalf("Expected 2 order items, got %d", len(stored.Items))
	}
	if stored.Items[0].Price != 10 || stored.Items[0].LVName != "Skapis" {
		t.Errorf("Expected frozen catalog snapshot, got %+v", stored.Items[0])
	}
}

func TestPlaceOrder_DeductsStock(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)

	if _, err := PlaceOrder(db, "", checkoutRequest(OrderItemInput{ProductID: 1, Quantity: 3})); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	var product models.Product
	if err := db.First(&product, "id = ?", uint(1)).Error; err != nil {
		t.Fatalf("Expected product to exist, got: %v", err)
	}
	if product.Stock != 2 {
		t.Errorf("Expected stock 2 after placing order, got %d", product.Stock)
	}
}

func TestPlaceOrder_InsufficientStockAbortsEverything(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)
	seedProduct(t, db, 2, "Galds", 5, 1)

	_, err := PlaceOrder(db, "", checkoutRequest(
		OrderItemInput{ProductID: 1, Quantity: 2},
		OrderItemInput{ProductID: 2, Quantity: 3},
	))
	if err == nil {
		t.Fatal("Expected insufficient stock error")
	}

	// The whole transaction rolls back, including the first item's deduction.
	var product models.Product
	db.First(&product, "id = ?", uint(1))
	if product.Stock != 5 {
		t.Errorf("Expected stock rollback to 5, got %d", product.Stock)
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no order rows, got %d", count)
	}
}

func TestPlaceOrder_UnknownProductRejected(t *testing.T) {
	db := setupTestDB(t)

	if _, err := PlaceOrder(db, "", checkoutRequest(OrderItemInput{ProductID: 42, Quantity: 1})); err == nil {
		t.Fatal("Expected error for unknown product")
	}
}

func TestPlaceOrder_EmptyItemsRejected(t *testing.T) {
	db := setupTestDB(t)

	if _, err := PlaceOrder(db, "", checkoutRequest()); err == nil {
		t.Fatal("Expected error for empty order")
	}
}

func TestPlaceOrder_ClearsCustomerServerCart(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)

	customerID := "cust_1"
	cart := models.Cart{CustomerID: &customerID}
	if err := db.Create(&cart).Error; err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	db.Create(&models.CartItem{CartID: cart.CartID, ProductID: 1, LVName: "Skapis", Price: 10, Quantity: 2})

	order, err := PlaceOrder(db, customerID, checkoutRequest(OrderItemInput{ProductID: 1, Quantity: 2}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if order.CustomerID == nil || *order.CustomerID != customerID {
		t.Error("Expected order to be attached to the customer")
	}

	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.CartID).Count(&count)
	if count != 0 {
		t.Errorf("Expected customer cart to be emptied at checkout, got %d items", count)
	}
}

func TestGenerateOrderNumber_UniqueAcrossMany(t *testing.T) {
	db := setupTestDB(t)

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		number, err := GenerateOrderNumber(db)
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if !orderNumberPattern.MatchString(number) {
			t.Fatalf("Expected well-formed order number, got %q", number)
		}
		if seen[number] {
			t.Fatalf("Expected unique order numbers, got duplicate %q", number)
		}
		seen[number] = true

		// Persist so the next iteration's collision check can see it.
		if err := db.Create(&models.Order{
			OrderNumber: number,
			Name:        "Anna Berzina",
			Email:       "anna@example.com",
		}).Error; err != nil {
			t.Fatalf("Expected no error persisting order, got: %v", err)
		}
	}
}

func TestGetOrderByNumberHandler(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)

	order, err := PlaceOrder(db, "", checkoutRequest(OrderItemInput{ProductID: 1, Quantity: 1}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/orders/number/:orderNumber", GetOrderByNumberHandler(db))

	req := httptest.NewRequest(http.MethodGet, "/orders/number/"+order.OrderNumber, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Order models.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got: %v", err)
	}
	if resp.Order.OrderNumber != order.OrderNumber || len(resp.Order.Items) != 1 {
		t.Errorf("Expected order with its items, got %+v", resp.Order)
	}

	req = httptest.NewRequest(http.MethodGet, "/orders/number/MM000000000", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown order number, got %d", w.Code)
	}
}

func TestUpdateOrderStatusHandler_RejectsUnknownStatus(t *testing.T) {
	db := setupTestDB(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/orders/:orderID/status", UpdateOrderStatusHandler(db))

	payload, _ := json.Marshal(UpdateOrderStatusRequest{Status: "teleported"})
	req := httptest.NewRequest(http.MethodPut, "/orders/1/status", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown status, got %d", w.Code)
	}
}

func TestOrderBroadcast_ReachesWebsocketClients(t *testing.T) {
	db := setupTestDB(t)
	seedProduct(t, db, 1, "Skapis", 10, 5)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", OrderWebSocketHandler)
	server := httptest.NewServer(r)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Expected no error dialing, got: %v", err)
	}
	defer conn.Close()

	// Give the handler goroutine a moment to register the connection.
	time.Sleep(50 * time.Millisecond)

	// Checkouts and new connections run on separate goroutines, so they
	// must be able to interleave without tripping the race detector.
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			extra, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
			if err == nil {
				extra.Close()
			}
		}()
	}

	order, err := PlaceOrder(db, "", checkoutRequest(OrderItemInput{ProductID: 1, Quantity: 1}))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	wg.Wait()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Expected a broadcast message, got: %v", err)
	}

	var got models.Order
	if err := json.Unmarshal(msg, &got); err != nil {
		t.Fatalf("Expected valid order JSON, got: %v", err)
	}
	if got.OrderNumber != order.OrderNumber {
		t.Errorf("Expected broadcast of order %s, got %s", order.OrderNumber, got.OrderNumber)
	}
}

func TestMapStatusHelpers(t *testing.T) {
	if status, err := mapOrderStatus("Ready_To_Ship"); err != nil || status != models.OrderStatusReadyToShip {
		t.Errorf("Expected case-insensitive match, got %v / %v", status, err)
	}
	if _, err := mapOrderStatus("nope"); err == nil {
		t.Error("Expected error for unknown order status")
	}
	if status, err := mapPaymentStatus("PAID"); err != nil || status != models.PaymentStatusPaid {
		t.Errorf("Expected case-insensitive match, got %v / %v", status, err)
	}
	if _, err := mapPaymentStatus("gold"); err == nil {
		t.Error("Expected error for unknown payment status")
	}
}
