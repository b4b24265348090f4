package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zuri-studios/zuri-api/models"
	"github.com/zuri-studios/zuri-api/services"
)

var foodOrderStatuses = map[string]bool{
	models.FoodOrderStatusPending:        true,
	models.FoodOrderStatusPreparing:      true,
	models.FoodOrderStatusReadyForPickup: true,
	models.FoodOrderStatusOutForDelivery: true,
	models.FoodOrderStatusDelivered:      true,
	models.FoodOrderStatusCancelled:      true,
}

var paymentStatuses = map[string]bool{
	models.PaymentStatusPending: true,
	models.PaymentStatusPaid:    true,
}

// UpdateFoodOrderStatusRequest represents the kitchen status update body
type UpdateFoodOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateFoodOrderPaymentRequest represents the payment status update body
type UpdateFoodOrderPaymentRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// CreateFoodOrder handles POST /api/v1/food-orders - checks out a cart.
// The total is computed from the submitted items; header and item rows are
// written together.
func CreateFoodOrder(c *gin.Context) {
	var form services.FoodOrderForm
	if err := c.ShouldBindJSON(&form); err != nil {
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

	order, err := services.GetOrderService().NewWorkflow().SubmitFoodOrder(&form)
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

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUBMISSION_FAILED",
				"message": "Failed to create food order",
			},
		})
		return
	}

	// Patch the admin dashboard's cached collection with the committed order
	if store := services.GetFoodOrderStore(); store != nil {
		store.Record(order)
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListFoodOrders handles GET /api/v1/admin/food-orders - lists all orders
// with their items, newest first
func ListFoodOrders(c *gin.Context) {
	store := services.GetFoodOrderStore()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Orders(),
	})
}

// RefetchFoodOrders handles POST /api/v1/admin/food-orders/refetch -
// replaces the cached collection wholesale
func RefetchFoodOrders(c *gin.Context) {
	store := services.GetFoodOrderStore()
	if err := store.Refetch(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load food orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    store.Orders(),
	})
}

// UpdateFoodOrderStatus handles PUT /api/v1/admin/food-orders/:id/status
func UpdateFoodOrderStatus(c *gin.Context) {
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

	var req UpdateFoodOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || !foodOrderStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A valid status is required",
			},
		})
		return
	}

	order, err := services.GetFoodOrderStore().UpdateStatus(uint(id), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateFoodOrderPayment handles PUT /api/v1/admin/food-orders/:id/payment
func UpdateFoodOrderPayment(c *gin.Context) {
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

	var req UpdateFoodOrderPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || !paymentStatuses[req.PaymentStatus] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A valid payment status is required",
			},
		})
		return
	}

	order, err := services.GetFoodOrderStore().UpdatePaymentStatus(uint(id), req.PaymentStatus)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update payment status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
