package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListTables(c *gin.Context) {
	tables, err := h.tables.List(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (h *Handler) UpdateTableStatus(c *gin.Context) {
	var body struct {
		TableID *int   `json:"table_id"`
		Status  string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.TableID == nil {
		jsonError(c, http.StatusBadRequest, errors.New("table_id must be a number"))
		return
	}

	table, err := h.tables.UpdateStatus(c.Request.Context(), *body.TableID, body.Status)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Table status updated successfully.",
		"table":   table,
	})
}
