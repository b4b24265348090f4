package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/config"
	"github.com/zuri-studios/zuri-api/middleware"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
	"github.com/zuri-studios/zuri-api/utils"
)

// customOrderStatuses are the statuses staff may move a submission to.
var customOrderStatuses = map[string]bool{
	models.CustomOrderStatusSubmitted:  true,
	models.CustomOrderStatusReviewed:   true,
	models.CustomOrderStatusAccepted:   true,
	models.CustomOrderStatusInProgress: true,
	models.CustomOrderStatusCompleted:  true,
	models.CustomOrderStatusRejected:   true,
}

// UpdateCustomOrderStatusRequest represents the admin status update body
type UpdateCustomOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SubmitCustomOrder handles POST /api/v1/custom-orders - runs the custom
// order submission workflow. The request is multipart: an `order` part
// carrying the JSON form, and zero or more `reference_images` file parts.
func SubmitCustomOrder(c *gin.Context) {
	payload := c.PostForm("order")
	if payload == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "An `order` form field with the order JSON is required",
			},
		})
		return
	}

	var form services.CustomOrderForm
	if err := json.Unmarshal([]byte(payload), &form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order payload is not valid JSON",
			},
		})
		return
	}

	// Validate before any upload or insert happens
	if err := form.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid order data",
				"details": err.Error(),
			},
		})
		return
	}

	multipartForm, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Invalid multipart form",
			},
		})
		return
	}
	files := multipartForm.File["reference_images"]

	order, err := services.GetOrderService().NewWorkflow().SubmitCustomOrder(&form, files)
	if err != nil {
		if errors.Is(err, services.ErrSubmissionInFlight) {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SUBMISSION_IN_FLIGHT",
					"message": "A submission is already in progress",
				},
			})
			return
		}

		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUBMISSION_FAILED",
				"message": "Failed to submit order. Please try again or contact support.",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
		"message": "Order submitted successfully. We'll get back to you within 24 hours.",
	})
}

// ListMyCustomOrders handles GET /api/v1/my/custom-orders - lists the
// signed-in user's submissions, newest first
func ListMyCustomOrders(c *gin.Context) {
	state := middleware.MustAuthState(c)
	if state.Email == "" && state.Profile != nil {
		state.Email = state.Profile.Email
	}
	if state.Email == "" {
		// No email claim and no profile row: nothing can match, and an
		// empty-string lookup must never leak other rows.
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "No profile found for this account",
			},
		})
		return
	}

	var orders []models.CustomOrderSubmission
	if err := config.GetDB().Where("email = ?", state.Email).Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load your orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ListCustomOrders handles GET /api/v1/admin/custom-orders - lists all
// submissions for staff review, newest first
func ListCustomOrders(c *gin.Context) {
	var orders []models.CustomOrderSubmission
	if err := config.GetDB().Order("created_at desc").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load custom orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateCustomOrderStatus handles PUT /api/v1/admin/custom-orders/:id/status
func UpdateCustomOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be a number",
			},
		})
		return
	}

	var req UpdateCustomOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !customOrderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A valid status is required",
			},
		})
		return
	}

	db := config.GetDB()
	result := db.Model(&models.CustomOrderSubmission{}).Where("id = ?", id).Update("status", req.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Custom order not found",
			},
		})
		return
	}

	var order models.CustomOrderSubmission
	if err := db.First(&order, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load updated order",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
