package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"gorm.io/gorm"

	_ "github.com/opinar/OfflineMessagingApi/docs"

	"github.com/opinar/OfflineMessagingApi/internal/api/handlers"
	"github.com/opinar/OfflineMessagingApi/internal/api/middleware"
	"github.com/opinar/OfflineMessagingApi/internal/config"
)

func SetupRouter(db *gorm.DB) http.Handler {
	h := handlers.New(db)

	mainMux := http.NewServeMux()
	c := cors.New(config.Envs.CorsConfig)

	// ---------- PUBLIC ROUTES ----------
	mainMux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "OK")
	})

	mainMux.HandleFunc("/docs/", httpSwagger.WrapHandler)

	authMux := http.NewServeMux()
	authMux.HandleFunc("/sign-up", h.RegisterUser)
	authMux.HandleFunc("/login", h.LoginUser)
	authMux.HandleFunc("/google/login", h.HandleGoogleLogin)
	authMux.HandleFunc("/google/callback", h.HandleGoogleCallback)
	authMux.HandleFunc("/logout", h.Logout)

	mainMux.Handle("/api/v1/auth/",
		http.StripPrefix("/api/v1/auth", authMux),
	)

	mainMux.HandleFunc("GET /api/v1/users", h.ListUsers)
	mainMux.HandleFunc("GET /api/v1/messages", h.ListMessages)

	// ---------- PROTECTED ROUTES ----------
	protectedMux := http.NewServeMux()

	protectedMux.HandleFunc("/me", h.CurrentUser)
	protectedMux.HandleFunc("/users/{id}", h.DeleteUser)
	protectedMux.HandleFunc("/block", h.SetBlock)

	protectedMux.HandleFunc("POST /messages", h.SendMessage)
	protectedMux.HandleFunc("/messages/{id}", h.DeleteMessage)
	protectedMux.HandleFunc("GET /messages/with/{receiverId}", h.MessagesWith)
	protectedMux.HandleFunc("GET /network", h.Network)

	mainMux.Handle("/api/v1/",
		http.StripPrefix(
			"/api/v1",
			middleware.AuthMiddleware(protectedMux),
		),
	)

	log.Println("Router initialized")
	handler := c.Handler(mainMux)
	handler = middleware.Logger(handler)
	return handler
}
