package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opinar/OfflineMessagingApi/internal/api/middleware"
	"github.com/opinar/OfflineMessagingApi/internal/config"
	"github.com/opinar/OfflineMessagingApi/internal/models"
	"github.com/opinar/OfflineMessagingApi/internal/utils"
)

const sessionTTL = 24 * time.Hour

// POST /api/v1/auth/sign-up
// RegisterUser godoc
// @Summary Register a new user
// @Description Creates a user with an empty block list. Duplicate username or email fails with field-keyed errors.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 201 {object} models.User
// @Failure 422 {object} utils.ErrorBody
// @Router /api/v1/auth/sign-up [post]
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.Users.Register(r.Context(), input.Username, input.Email, input.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, user)
}

// POST /api/v1/auth/login
// LoginUser godoc
// @Summary Log in with email and password
// @Description Issues a JWT session cookie on success.
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} utils.Msg
// @Failure 401 {object} utils.ErrorBody
// @Router /api/v1/auth/login [post]
func (h *Handler) LoginUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		utils.JSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Email == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	user, err := h.Users.Authenticate(r.Context(), input.Email, input.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := issueSession(w, user); err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, utils.Msg{Msg: "You signed in successfully."})
}

// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	isProd := config.Envs.Environment == "production"

	// maxAge < 0 deletes the cookie
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   isProd,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	utils.JSON(w, http.StatusOK, utils.Msg{Msg: "You logged out."})
}

// issueSession signs a JWT for user and sets it as the session cookie.
func issueSession(w http.ResponseWriter, user *models.User) error {
	expiration := time.Now().Add(sessionTTL)
	claims := &middleware.Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiration),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(config.Envs.JWTSecret))
	if err != nil {
		return err
	}

	isProd := config.Envs.Environment == "production"
	sameSite := http.SameSiteLaxMode
	if isProd {
		sameSite = http.SameSiteNoneMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    tokenString,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		Secure:   isProd,
		HttpOnly: true,
		SameSite: sameSite,
	})
	return nil
}
