package handler

import (
	"net/http"

	"pdf-summarizer/internal/config"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-summarizer"}`))
	}).Methods("GET")

	// Initialize handlers
	authHandler := NewAuthHandler(container.AuthService, container.Logger)
	planHandler := NewPlanHandler(container.PlanService, container.Logger)
	uploadHandler := NewUploadHandler(container.UploadService, container.UsageService, container.Config, container.Logger)
	adminHandler := NewAdminHandler(container.UserRepository, container.UsageRepository, container.Config, container.Logger)

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/google/login", authHandler.GoogleLogin).Methods("GET")
	api.HandleFunc("/auth/google/callback", authHandler.GoogleCallback).Methods("GET")
	api.HandleFunc("/plans", planHandler.GetPlans).Methods("GET")
	api.HandleFunc("/uploads/preview", uploadHandler.Preview).Methods("POST")
	api.HandleFunc("/test/reset", adminHandler.ResetState).Methods("POST")

	// Auth middleware for protected routes
	authMiddleware := AuthMiddleware(container.AuthService, container.Logger)

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/auth/profile", authHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/plans/select", planHandler.SelectPlan).Methods("POST")
	protected.HandleFunc("/uploads", uploadHandler.Upload).Methods("POST")
	protected.HandleFunc("/usage", uploadHandler.GetUsage).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://localhost:3000",
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
