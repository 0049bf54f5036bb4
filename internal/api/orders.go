package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Dev-Mayuresh/resto-mania-backend/internal/repository"
)

// CreateOrder places a new order. Order and session ids come from the
// caller; repeating a request with the same ids does not duplicate
// the order.
func (h *Handler) CreateOrder(c *gin.Context) {
	var params repository.CreateOrderParams
	if err := c.ShouldBindJSON(&params); err != nil {
		jsonError(c, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	if len(params.Items) == 0 {
		jsonError(c, http.StatusBadRequest, repository.ErrEmptyOrder)
		return
	}
	for _, line := range params.Items {
		if line.ItemName == "" || line.Quantity <= 0 {
			jsonError(c, http.StatusBadRequest, errors.New("each item needs a name and a positive quantity"))
			return
		}
	}

	items, err := h.orders.Create(c.Request.Context(), params)
	if err != nil {
		h.log.WithError(err).WithField("order_id", params.OrderID).Error("failed to create order")
		jsonError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Order placed successfully!",
		"session_id": params.SessionID,
		"items":      items,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.orders.GetByID(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		OrderStatus string `json:"order_status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OrderStatus == "" {
		jsonError(c, http.StatusBadRequest, errors.New("order_status is required"))
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), c.Param("order_id"), body.OrderStatus)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) UpdateSessionStatus(c *gin.Context) {
	var body struct {
		SessionStatus string `json:"session_status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.SessionStatus == "" {
		jsonError(c, http.StatusBadRequest, errors.New("session_status is required"))
		return
	}

	session, err := h.orders.UpdateSessionStatus(
		c.Request.Context(),
		c.Param("order_id"),
		c.Param("session_id"),
		body.SessionStatus,
	)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":        "Session status updated successfully!",
		"updatedSession": session,
	})
}
