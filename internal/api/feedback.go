package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) AddFeedback(c *gin.Context) {
	var body struct {
		ClientID     string `json:"client_id"`
		FeedbackText string `json:"feedback_text"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ClientID == "" || body.FeedbackText == "" {
		jsonError(c, http.StatusBadRequest, errors.New("client_id and feedback_text are required"))
		return
	}

	fb, err := h.feedback.Add(c.Request.Context(), body.ClientID, body.FeedbackText)
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Feedback submitted successfully!",
		"feedback": fb,
	})
}

func (h *Handler) ListFeedback(c *gin.Context) {
	out, err := h.feedback.List(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListFeedbackByClient(c *gin.Context) {
	out, err := h.feedback.ListByClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("feedback_id"), 10, 64)
	if err != nil {
		jsonError(c, http.StatusBadRequest, errors.New("feedback_id must be a number"))
		return
	}

	if err := h.feedback.Delete(c.Request.Context(), id); err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted successfully!"})
}
