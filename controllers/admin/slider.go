package adminController

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

const sliderUploadDir = "/var/www/martas-mebeles/uploads/sliders"
const sliderPublicPath = "/uploads/sliders"

// UploadSlider - save image locally and store the slide in DB
func UploadSlider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, fileHeader, err := c.Request.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}
		defer file.Close()

		// Ensure upload directory exists
		if err := os.MkdirAll(sliderUploadDir, os.ModePerm); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create upload folder"})
			return
		}

		// Original filename
		origName := fileHeader.Filename
		ext := filepath.Ext(origName)
		baseName := strings.TrimSuffix(origName, ext)

		// Remove duplicate extensions like ".jpg.jpg"
		for {
			e := filepath.Ext(baseName)
			if e != "" && (e == ".jpg" || e == ".jpeg" || e == ".png" || e == ".webp") {
				baseName = strings.TrimSuffix(baseName, e)
			} else {
				break
			}
		}

		// Clean spaces
		baseName = strings.ReplaceAll(baseName, " ", "_")

		// Final filename
		newFileName := fmt.Sprintf("%d_%s%s", time.Now().Unix(), baseName, ext)
		savePath := filepath.Join(sliderUploadDir, newFileName)

		// Save file locally
		if err := c.SaveUploadedFile(fileHeader, savePath); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
			return
		}

		sortOrder, _ := strconv.Atoi(c.PostForm("sort_order"))

		slider := models.Slider{
			ImageURL:  fmt.Sprintf("%s/%s", sliderPublicPath, newFileName),
			LVCaption: c.PostForm("lv_caption"),
			RUCaption: c.PostForm("ru_caption"),
			ENCaption: c.PostForm("en_caption"),
			LinkURL:   c.PostForm("link_url"),
			SortOrder: sortOrder,
			IsActive:  true,
		}
		if err := db.Create(&slider).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "DB save failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Slider uploaded", "data": slider})
	}
}

// GetSliders - list all slides for the admin panel
func GetSliders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sliders []models.Slider
		if err := db.Order("sort_order asc").Find(&sliders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sliders"})
			return
		}
		c.JSON(http.StatusOK, sliders)
	}
}

// GetActiveSliders - public storefront feed, active slides only
func GetActiveSliders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sliders []models.Slider
		if err := db.Where("is_active = ?", true).Order("sort_order asc").Find(&sliders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get sliders"})
			return
		}
		c.JSON(http.StatusOK, sliders)
	}
}

// UpdateSlider - change captions, link, ordering or active flag
func UpdateSlider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var slider models.Slider
		if err := db.First(&slider, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Slider not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		var input struct {
			LVCaption *string `json:"lv_caption"`
			RUCaption *string `json:"ru_caption"`
			ENCaption *string `json:"en_caption"`
			LinkURL   *string `json:"link_url"`
			SortOrder *int    `json:"sort_order"`
			IsActive  *bool   `json:"is_active"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.LVCaption != nil {
			updates["lv_caption"] = *input.LVCaption
		}
		if input.RUCaption != nil {
			updates["ru_caption"] = *input.RUCaption
		}
		if input.ENCaption != nil {
			updates["en_caption"] = *input.ENCaption
		}
		if input.LinkURL != nil {
			updates["link_url"] = *input.LinkURL
		}
		if input.SortOrder != nil {
			updates["sort_order"] = *input.SortOrder
		}
		if input.IsActive != nil {
			updates["is_active"] = *input.IsActive
		}

		if len(updates) > 0 {
			if err := db.Model(&slider).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update slider"})
				return
			}
		}

		c.JSON(http.StatusOK, slider)
	}
}

// DeleteSlider - delete both DB record & local file
func DeleteSlider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var slider models.Slider

		if err := db.First(&slider, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Slider not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		// Delete file from disk
		if slider.ImageURL != "" {
			localPath := filepath.Join(sliderUploadDir, filepath.Base(slider.ImageURL))
			if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete file"})
				return
			}
		}

		if err := db.Delete(&slider).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete from database"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Slider deleted"})
	}
}
