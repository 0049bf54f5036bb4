package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type userBody struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	MailID   string `json:"mail_id"`
}

func (h *Handler) CreateUser(c *gin.Context) {
	var body userBody
	if err := c.ShouldBindJSON(&body); err != nil || body.ClientID == "" {
		jsonError(c, http.StatusBadRequest, errors.New("client_id is required"))
		return
	}

	user, err := h.users.Create(c.Request.Context(), body.ClientID, body.Name, body.MailID)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		jsonError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var body userBody
	if err := c.ShouldBindJSON(&body); err != nil {
		jsonError(c, http.StatusBadRequest, errors.New("failed to parse JSON"))
		return
	}

	user, err := h.users.Update(c.Request.Context(), c.Param("client_id"), body.Name, body.MailID)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateConversationID refreshes the external chat correlation key
// for a client. The payload uses the chat bridge's field names.
func (h *Handler) UpdateConversationID(c *gin.Context) {
	var body struct {
		ClientID string `json:"clientId"`
		ConvoID  string `json:"convoId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ClientID == "" || body.ConvoID == "" {
		jsonError(c, http.StatusBadRequest, errors.New("missing clientId or convoId"))
		return
	}

	changed, err := h.users.SetConversationID(c.Request.Context(), body.ClientID, body.ConvoID)
	if err != nil {
		jsonError(c, statusFor(err), err)
		return
	}
	if changed {
		h.log.WithField("client_id", body.ClientID).Info("conversation id updated")
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Conversation ID updated",
		"convoId": body.ConvoID,
	})
}
