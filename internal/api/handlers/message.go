package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/messaging"
	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

const blockedMsg = "User has been blocked. Therefore message cannot be sent."

// POST /api/v1/messages
// SendMessage godoc
// @Summary Send a message to a user by username
// @Description Fails when either party has blocked the other. The sentAt timestamp is stamped server-side; any client-supplied value is ignored.
// @Tags Messages
// @Accept json
// @Produce json
// @Success 200 {object} models.Message
// @Failure 422 {object} utils.ErrorBody
// @Router /api/v1/messages [post]
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	sender, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input struct {
		Username string `json:"username"`
		Message  string `json:"message"`
		// Accepted for wire compatibility, never used: the timestamp is
		// always generated server-side at persistence time.
		SentAt string `json:"sentAt"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Username == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	msg, err := h.Messages.Send(r.Context(), sender, input.Username, input.Message)
	switch {
	case err == nil:
		utils.JSON(w, http.StatusOK, msg)
	case errors.Is(err, apperr.ErrNotFound):
		utils.JSONError(w, http.StatusUnprocessableEntity, map[string][]string{
			"username": {fmt.Sprintf("User (%s) cannot be found", input.Username)},
		})
	case messaging.Blocked(err):
		utils.JSONError(w, http.StatusUnprocessableEntity, map[string][]string{
			"receiverId": {blockedMsg},
		})
	default:
		writeError(w, err)
	}
}

// DELETE /api/v1/messages/{id}
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	if _, err := h.caller(r); err != nil {
		writeError(w, err)
		return
	}

	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid message id")
		return
	}

	msg, err := h.Messages.Delete(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msg)
}

// GET /api/v1/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.Messages.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msgs)
}

// GET /api/v1/messages/with/{receiverId}
// Message history the caller has sent to one receiver.
func (h *Handler) MessagesWith(w http.ResponseWriter, r *http.Request) {
	sender, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	receiverID, err := strconv.ParseUint(r.PathValue("receiverId"), 10, 32)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid receiver id")
		return
	}

	msgs, err := h.Messages.Between(r.Context(), sender.ID, uint(receiverID))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, msgs)
}

// GET /api/v1/network
// Distinct users the caller has messaged.
func (h *Handler) Network(w http.ResponseWriter, r *http.Request) {
	sender, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	users, err := h.Messages.Network(r.Context(), sender.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}
