package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

// GoogleAdminLoginHandler handles admin login via Google OAuth2. Unknown
// emails are recorded as unapproved admins and must be approved from the
// admin-management screen before they can sign in.
func GoogleAdminLoginHandler(w http.ResponseWriter, r *http.Request, db *gorm.DB) {
	var req struct {
		IDToken string `json:"idToken"`
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

	token, err := firebaseAuth.VerifyIDTokenAndCheckRevoked(ctx, req.IDToken)
	if err != nil {
		http.Error(w, "Invalid Firebase ID token", http.StatusUnauthorized)
		return
	}

	if token.Audience != projectID {
		http.Error(w, "Invalid token audience", http.StatusUnauthorized)
		return
	}

	email, ok := emailFromClaims(token.Claims)
	if !ok {
		http.Error(w, "Token has no email claim", http.StatusUnauthorized)
		return
	}
	name, _ := token.Claims["name"].(string)
	picture, _ := token.Claims["picture"].(string)

	var admin models.Admin
	err = db.Where("email = ?", email).First(&admin).Error

	if err == gorm.ErrRecordNotFound {
		// First sight of this email: record it as pending approval
		admin = models.Admin{
			Email:    email,
			Name:     name,
			Picture:  picture,
			Approved: false,
		}
		if err := db.Create(&admin).Error; err != nil {
			http.Error(w, "Failed to register admin", http.StatusInternalServerError)
			return
		}
		http.Error(w, "Admin approval pending", http.StatusForbidden)
		return
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if !admin.Approved {
		http.Error(w, "Admin approval pending", http.StatusForbidden)
		return
	}

	db.Model(&admin).Updates(models.Admin{Name: name, Picture: picture})

	resp := map[string]interface{}{
		"message": "Admin login successful",
		"admin":   admin,
		"token":   issueJWT(email, "admin", token.UID, name, picture),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
