package handlers

import (
	"errors"
	"log"
	"net/http"

	"gorm.io/gorm"

	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/api/middleware"
	"github.com/opinar/OfflineMessagingApi/internal/identity"
	"github.com/opinar/OfflineMessagingApi/internal/messaging"
	"github.com/opinar/OfflineMessagingApi/internal/models"
	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

// Handler wires the HTTP surface to the identity and message stores.
type Handler struct {
	Users    *identity.Store
	Messages *messaging.Store
}

func New(db *gorm.DB) *Handler {
	return &Handler{
		Users:    identity.NewStore(db),
		Messages: messaging.NewStore(db),
	}
}

// caller resolves the authenticated user record for this request. The
// middleware only carries the id; the record is loaded fresh per request
// and threaded explicitly into every store call.
func (h *Handler) caller(r *http.Request) (*models.User, error) {
	id, ok := middleware.UserID(r)
	if !ok {
		return nil, apperr.ErrUnauthenticated
	}
	user, err := h.Users.ByID(r.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		// Token for a user that no longer exists.
		return nil, apperr.ErrUnauthenticated
	}
	return user, err
}

// writeError maps store errors onto the JSON failure contract. Business
// denials come out as structured 422 bodies; anything unexpected is a
// generic 500, logged but never retried.
func writeError(w http.ResponseWriter, err error) {
	if v := apperr.Validation(err); v != nil {
		utils.JSONError(w, http.StatusUnprocessableEntity, v.Fields)
		return
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, apperr.ErrUnauthenticated):
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized")
	default:
		log.Printf("internal error: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}
