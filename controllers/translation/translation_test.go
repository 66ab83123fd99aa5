package translationControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("Expected no error opening test db, got: %v", err)
	}
	if err := db.AutoMigrate(&models.Translation{}); err != nil {
		t.Fatalf("Expected no error migrating, got: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/translations/:locale", GetTranslationsForLocale(db))
	r.POST("/admin/translations", UpsertTranslation(db))
	r.DELETE("/admin/translations/:id", DeleteTranslation(db))
	return r, db
}

func upsert(t *testing.T, r *gin.Engine, locale, key, value string) *httptest.ResponseRecorder {
	t.Helper()
	payload, _ := json.Marshal(UpsertTranslationRequest{Locale: locale, Key: key, Value: value})
	req := httptest.NewRequest(http.MethodPost, "/admin/translations", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertTranslation_CreateThenUpdate(t *testing.T) {
	r, db := setupTestRouter(t)

	if w := upsert(t, r, "lv", "cart.title", "Grozs"); w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 on first upsert, got %d: %s", w.Code, w.Body.String())
	}
	if w := upsert(t, r, "lv", "cart.title", "Iepirkumu grozs"); w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on second upsert, got %d: %s", w.Code, w.Body.String())
	}

	// One row per (locale, key), holding the latest value
	var rows []models.Translation
	if err := db.Where("locale = ? AND key = ?", "lv", "cart.title").Find(&rows).Error; err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Expected a single row, got %d", len(rows))
	}
	if rows[0].Value != "Iepirkumu grozs" {
		t.Errorf("Expected updated value, got %q", rows[0].Value)
	}
}

func TestGetTranslationsForLocale_ReturnsFlatMap(t *testing.T) {
	r, _ := setupTestRouter(t)

	upsert(t, r, "lv", "cart.title", "Grozs")
	upsert(t, r, "lv", "cart.empty", "Grozs ir tukšs")
	upsert(t, r, "ru", "cart.title", "Корзина")

	req := httptest.NewRequest(http.MethodGet, "/translations/lv", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Locale   string            `json:"locale"`
		Messages map[string]string `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Expected valid JSON, got: %v", err)
	}
	if resp.Locale != "lv" {
		t.Errorf("Expected locale lv, got %q", resp.Locale)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("Expected 2 messages for lv only, got %d", len(resp.Messages))
	}
	if resp.Messages["cart.title"] != "Grozs" {
		t.Errorf("Expected cart.title = Grozs, got %q", resp.Messages["cart.title"])
	}
}

func TestDeleteTranslation_UnknownIDIs404(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/translations/99", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}
