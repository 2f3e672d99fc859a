package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/opinar/OfflineMessagingApi/internal/api/services"
	"github.com/opinar/OfflineMessagingApi/internal/apperr"
	"github.com/opinar/OfflineMessagingApi/internal/config"
	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

// GET /api/v1/auth/google/login
func (h *Handler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	flow := r.URL.Query().Get("redirect") // "login" or "register"
	if flow == "" {
		flow = "login"
	}

	state, err := GenerateState(map[string]string{"flow": flow})
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to generate OAuth state")
		return
	}

	url := services.GoogleOauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GET /api/v1/auth/google/callback
func (h *Handler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.FormValue("state")
	stateData, err := DecodeState(state)
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid OAuth state")
		return
	}
	flow := stateData["flow"]

	token, err := services.GoogleOauthConfig.Exchange(r.Context(), r.FormValue("code"))
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Code exchange failed")
		return
	}

	client := services.GoogleOauthConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to get user info")
		return
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.Unmarshal(data, &googleUser); err != nil {
		utils.JSONError(w, http.StatusInternalServerError, "Failed to parse user info")
		return
	}

	frontend := config.Envs.FrontendURL
	user, err := h.Users.ByEmail(r.Context(), googleUser.Email)

	switch flow {
	case "register":
		if err == nil {
			http.Redirect(w, r, frontend+"/login?error=user_already_exists", http.StatusTemporaryRedirect)
			return
		}
		// Google accounts get a random local password; they sign in through
		// this flow, never with credentials.
		password, err := utils.GenerateSecureToken(32)
		if err != nil {
			utils.JSONError(w, http.StatusInternalServerError, "Failed to create user")
			return
		}
		user, err = h.Users.Register(r.Context(), googleUser.Name, googleUser.Email, password)
		if err != nil {
			writeError(w, err)
			return
		}

	default: // login
		if errors.Is(err, apperr.ErrNotFound) {
			http.Redirect(w, r, frontend+"/register?error=user_not_found", http.StatusTemporaryRedirect)
			return
		}
		if err != nil {
			writeError(w, err)
			return
		}
	}

	if err := issueSession(w, user); err != nil {
		writeError(w, err)
		return
	}

	status := "success_login"
	if flow == "register" {
		status = "success_register"
	}
	http.Redirect(w, r, frontend+"/?status="+status, http.StatusTemporaryRedirect)
}
