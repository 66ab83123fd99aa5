package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/martasparks/martas-mebeles-api/models"
)

const uploadDir = "/var/www/martas-mebeles/uploads/products"

// CreateProduct creates a new product with multiple categories + image upload.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Required fields
		lvname := c.PostForm("lvname")
		salePriceStr := c.PostForm("sale_price")
		if lvname == "" || salePriceStr == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lvname and sale_price are required"})
			return
		}

		// Optional fields
		runame := c.PostForm("runame")
		enname := c.PostForm("enname")
		lvdescription := c.PostForm("lvdescription")
		rudescription := c.PostForm("rudescription")
		endescription := c.PostForm("endescription")
		regularPriceStr := c.PostForm("regular_price")
		stockStr := c.PostForm("stock")
		categoryIDsStr := c.PostForm("category_ids")

		// Convert numerics
		salePrice, err := strconv.ParseFloat(salePriceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale_price"})
			return
		}

		var regularPrice float64
		if regularPriceStr != "" {
			if rp, parseErr := strconv.ParseFloat(regularPriceStr, 64); parseErr == nil {
				regularPrice = rp
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid regular_price"})
				return
			}
		}
		var stock int
		if stockStr != "" {
			if s, parseErr := strconv.Atoi(stockStr); parseErr == nil {
				stock = s
			} else {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stock"})
				return
			}
		}

		// Categories
		var categories []models.Category
		if categoryIDsStr != "" {
			idTokens := strings.Split(categoryIDsStr, ",")
			var parsedIDs []uint
			for _, tok := range idTokens {
				tok = strings.TrimSpace(tok)
				if tok == "" {
					continue
				}
				if id64, parseErr := strconv.ParseUint(tok, 10, 64); parseErr == nil {
					parsedIDs = append(parsedIDs, uint(id64))
				} else {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_ids format"})
					return
				}
			}
			if len(parsedIDs) > 0 {
				if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
					return
				}
			}
		}

		// Image upload
		var imageURL string
		file, err := c.FormFile("image")
		if err == nil {
			filename := strings.ReplaceAll(file.Filename, " ", "_")

			if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to create upload folder: %v", err)})
				return
			}
			savePath := filepath.Join(uploadDir, filename)

			if err := c.SaveUploadedFile(file, savePath); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": fmt.Sprintf("Failed to save image: %v", err)})
				return
			}

			// Public URL (served by nginx/gin)
			imageURL = fmt.Sprintf("/uploads/products/%s", filename)
		}

		newProduct := models.Product{
			LVName:        lvname,
			RUName:        runame,
			ENName:        enname,
			LVDescription: lvdescription,
			RUDescription: rudescription,
			ENDescription: endescription,
			SalePrice:     salePrice,
			RegularPrice:  regularPrice,
			Stock:         stock,
			Image:         imageURL,
			Categories:    categories,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
