package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	cartControllers "github.com/martasparks/martas-mebeles-api/controllers/cart"
	"github.com/martasparks/martas-mebeles-api/models"
)

// ---------------------------------------------
// GOOGLE CUSTOMER LOGIN
// ---------------------------------------------
func GoogleCustomerLoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var req struct {
		IDToken string `json:"idToken"`
		GuestID string `json:"guest_id"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IDToken == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if firebaseAuth == nil {
		http.Error(w, "Auth provider not configured", http.StatusServiceUnavailable)
		return
	}

	ctx := context.Background()

	// Verify Firebase token
	token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
	if err != nil {
		http.Error(w, "Invalid Firebase ID token", http.StatusUnauthorized)
		return
	}

	if token.Audience != projectID {
		http.Error(w, "Invalid token audience", http.StatusUnauthorized)
		return
	}

	// Extract customer info. Phone-auth users verify fine but carry no
	// email claim, and the account model is keyed on email.
	email, ok := emailFromClaims(token.Claims)
	if !ok {
		http.Error(w, "Token has no email claim", http.StatusUnauthorized)
		return
	}
	emailVerified, _ := token.Claims["email_verified"].(bool)
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)
	customerID := token.UID

	// ---------------------------------------------
	// 1. Fetch or Create customer
	// ---------------------------------------------
	var customer models.Customer
	err = db.Preload("Cart.Items").Where("id = ?", customerID).First(&customer).Error

	if err == gorm.ErrRecordNotFound {
		customer = models.Customer{
			ID:            customerID,
			Email:         email,
			EmailVerified: emailVerified,
			Name:          name,
			Picture:       picture,
			Provider:      "google",
		}

		if err := db.Create(&customer).Error; err != nil {
			http.Error(w, "Failed to create customer", http.StatusInternalServerError)
			return
		}
	} else if err == nil {
		db.Model(&customer).Updates(map[string]interface{}{
			"name":           name,
			"picture":        picture,
			"email_verified": emailVerified,
		})
	} else {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// ---------------------------------------------
	// 2. Merge Guest Cart -> Customer Cart
	// ---------------------------------------------
	mergeStatus := "no-guest-cart"

	if req.GuestID != "" {
		merged, err := cartControllers.MergeGuestCartIntoCustomerCart(db, req.GuestID, customer.ID)
		if err != nil {
			mergeStatus = "merge-failed"
		} else if merged {
			mergeStatus = "merged-success"
		} else {
			mergeStatus = "guest-cart-empty"
		}
	}

	// ---------------------------------------------
	// 3. Create auth response
	// ---------------------------------------------
	resp := map[string]interface{}{
		"message":      "Login successful",
		"merge_status": mergeStatus,
		"customer":     customer,
		"token":        issueJWT(email, "customer", customerID, name, picture),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// issueJWT generates a session JWT for a customer or admin
func issueJWT(email, role, customerID, name, picture string) string {
	claims := jwt.MapClaims{
		"customer_id": customerID,
		"email":       email,
		"role":        role,
		"name":        name,
		"picture":     picture,
		"exp":         time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		return ""
	}

	return signedToken
}
