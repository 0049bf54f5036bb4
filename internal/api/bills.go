package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateBillRequest(c *gin.Context) {
	var body struct {
		OrderID string `json:"order_id"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.OrderID == "" {
		jsonError(c, http.StatusBadRequest, errors.New("order_id is required"))
		return
	}

	bill, err := h.bills.Create(c.Request.Context(), body.OrderID)
	if err != nil {
		h.log.WithError(err).WithField("order_id", body.OrderID).Error("failed to create bill request")
		jsonError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Bill request submitted successfully!",
		"billRequest": bill,
	})
}

func (h *Handler) ListBillRequests(c *gin.Context) {
	bills, err := h.bills.List(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, bills)
}

func (h *Handler) UpdateBillStatus(c *gin.Context) {
	var body struct {
		BillStatus string `json:"bill_status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.BillStatus == "" {
		jsonError(c, http.StatusBadRequest, errors.New("bill_status is required"))
		return
	}

	bill, err := h.bills.UpdateStatus(c.Request.Context(), c.Param("order_id"), body.BillStatus)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, bill)
}
