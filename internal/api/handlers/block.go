package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

// PUT /api/v1/block
// SetBlock godoc
// @Summary Block or unblock a user by username
// @Description With block=true adds the target to the caller's block list, with block=false removes it. Both directions are idempotent.
// @Tags Users
// @Accept json
// @Produce json
// @Success 200 {object} models.User
// @Failure 422 {object} utils.ErrorBody
// @Router /api/v1/block [put]
func (h *Handler) SetBlock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var input struct {
		Username string `json:"username"`
		Block    bool   `json:"block"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil || input.Username == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	err = h.Users.SetBlocked(r.Context(), user, input.Username, input.Block)
	if errors.Is(err, apperr.ErrNotFound) {
		// Published contract: string error body, not a field map.
		utils.JSONError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("User (%s) cannot be found", input.Username))
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, user)
}
