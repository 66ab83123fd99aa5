package translationControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

type UpsertTranslationRequest struct {
	Locale string `json:"locale" binding:"required"`
	Key    string `json:"key" binding:"required"`
	Value  string `json:"value" binding:"required"`
}

// GET /translations/:locale
//
// The storefront fetches this flat key/value map at runtime instead of
// shipping static message files, so copy edits go live without a deploy.
func GetTranslationsForLocale(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		locale := c.Param("locale")
		if locale == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "locale is required"})
			return
		}

		var translations []models.Translation
		if err := db.Where("locale = ?", locale).Find(&translations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
			return
		}

		messages := make(map[string]string, len(translations))
		for _, t := range translations {
			messages[t.Key] = t.Value
		}

		c.JSON(http.StatusOK, gin.H{"locale": locale, "messages": messages})
	}
}

// GET /admin/translations
func GetAllTranslations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var translations []models.Translation
		query := db.Order("locale asc, key asc")
		if locale := c.Query("locale"); locale != "" {
			query = query.Where("locale = ?", locale)
		}
		if err := query.Find(&translations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translations"})
			return
		}
		c.JSON(http.StatusOK, translations)
	}
}

// POST /admin/translations
//
// Upsert keyed on (locale, key): editing an existing string and adding a
// new one go through the same endpoint.
func UpsertTranslation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpsertTranslationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var translation models.Translation
		err := db.Where("locale = ? AND key = ?", req.Locale, req.Key).First(&translation).Error
		if err == gorm.ErrRecordNotFound {
			translation = models.Translation{
				Locale: req.Locale,
				Key:    req.Key,
				Value:  req.Value,
			}
			if err := db.Create(&translation).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create translation"})
				return
			}
			c.JSON(http.StatusCreated, translation)
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch translation"})
			return
		}

		if err := db.Model(&translation).Update("value", req.Value).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update translation"})
			return
		}
		c.JSON(http.StatusOK, translation)
	}
}

// PUT /admin/translations/:id
func UpdateTranslation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var translation models.Translation
		if err := db.First(&translation, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
			return
		}

		var req struct {
			Value string `json:"value" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if err := db.Model(&translation).Update("value", req.Value).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update translation"})
			return
		}

		c.JSON(http.StatusOK, translation)
	}
}

// DELETE /admin/translations/:id
func DeleteTranslation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		result := db.Delete(&models.Translation{}, id)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete translation"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Translation not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Translation deleted"})
	}
}
