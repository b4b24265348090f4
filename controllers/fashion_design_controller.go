package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

// FashionDesignRequest represents the request body for creating a design
type FashionDesignRequest struct {
	Name           string   `json:"name" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	DesignImages   []string `json:"design_images"`
	Status         string   `json:"status" binding:"omitempty,oneof=draft in-review approved archived"`
	TechnicalSpecs string   `json:"technical_specs"`
}

// ListFashionDesigns handles GET /api/v1/fashion-designs - the public
// collection, newest first. Only approved designs are shown.
func ListFashionDesigns(c *gin.Context) {
	designs := services.GetDesignStore().Designs()

	approved := make([]models.FashionDesign, 0, len(designs))
	for _, design := range designs {
		if design.Status == models.DesignStatusApproved {
			approved = append(approved, design)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    approved,
	})
}

// ListAllFashionDesigns handles GET /api/v1/admin/fashion-designs
func ListAllFashionDesigns(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.GetDesignStore().Designs(),
	})
}

// CreateFashionDesign handles POST /api/v1/admin/fashion-designs
func CreateFashionDesign(c *gin.Context) {
	var req FashionDesignRequest
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

	design := models.FashionDesign{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		DesignImages: req.DesignImages,
		Status:       models.DesignStatusDraft,
	}
	if req.Status != "" {
		design.Status = req.Status
	}
	if req.TechnicalSpecs != "" {
		design.TechnicalSpecs = &req.TechnicalSpecs
	}

	if err := services.GetDesignStore().Add(&design); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add fashion design",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    design,
	})
}

// UpdateFashionDesign handles PUT /api/v1/admin/fashion-designs/:id
func UpdateFashionDesign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Design ID must be a number",
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

	design, err := services.GetDesignStore().Update(uint(id), updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update fashion design",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    design,
	})
}

// DeleteFashionDesign handles DELETE /api/v1/admin/fashion-designs/:id
// (admin only)
func DeleteFashionDesign(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Design ID must be a number",
			},
		})
		return
	}

	if err := services.GetDesignStore().Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete fashion design",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Fashion design deleted",
	})
}
