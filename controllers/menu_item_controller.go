package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

// MenuItemRequest represents the request body for creating a menu item
type MenuItemRequest struct {
	Name            string            `json:"name" binding:"required"`
	Description     string            `json:"description"`
	Category        string            `json:"category" binding:"required"`
	Price           float64           `json:"price" binding:"required,gt=0"`
	Available       *bool             `json:"available"`
	ImageURL        string            `json:"image_url"`
	Ingredients     []string          `json:"ingredients"`
	Allergens       []string          `json:"allergens"`
	NutritionalInfo map[string]string `json:"nutritional_info"`
}

// ListMenuItems handles GET /api/v1/menu-items - the public menu, ordered
// by category then name. Unavailable items are kept out of the storefront.
func ListMenuItems(c *gin.Context) {
	items := services.GetMenuStore().Items()

	available := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if item.Available {
			available = append(available, item)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    available,
	})
}

// ListAllMenuItems handles GET /api/v1/admin/menu-items - the full catalog
// including unavailable items
func ListAllMenuItems(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.GetMenuStore().Items(),
	})
}

// CreateMenuItem handles POST /api/v1/admin/menu-items
func CreateMenuItem(c *gin.Context) {
	var req MenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	item := models.MenuItem{
		Name:            req.Name,
		Category:        req.Category,
		Price:           req.Price,
		Available:       true,
		Ingredients:     req.Ingredients,
		Allergens:       req.Allergens,
		NutritionalInfo: req.NutritionalInfo,
	}
	if req.Description != "" {
		item.Description = &req.Description
	}
	if req.ImageURL != "" {
		item.ImageURL = &req.ImageURL
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := services.GetMenuStore().Add(&item); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add menu item",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/v1/admin/menu-items/:id - applies a
// partial update
func UpdateMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Menu item ID must be a number",
			},
		})
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A non-empty update body is required",
			},
		})
		return
	}

	item, err := services.GetMenuStore().Update(uint(id), updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update menu item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/v1/admin/menu-items/:id (admin only)
func DeleteMenuItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Menu item ID must be a number",
			},
		})
		return
	}

	if err := services.GetMenuStore().Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete menu item",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu item deleted",
	})
}
