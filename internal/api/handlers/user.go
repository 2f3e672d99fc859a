package handlers

import (
	"net/http"
	"strconv"

	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

// GET /api/v1/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Users.All(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, users)
}

// GET /api/v1/me
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.caller(r)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}

// DELETE /api/v1/users/{id}
// DeleteUser godoc
// @Summary Delete a user by id
// @Description Removal is unconditional for any authenticated caller. Messages and block-list entries referencing the id are left in place.
// @Tags Users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} models.User
// @Failure 404 {object} utils.ErrorBody
// @Router /api/v1/users/{id} [delete]
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
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
		utils.JSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	user, err := h.Users.Delete(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, user)
}
