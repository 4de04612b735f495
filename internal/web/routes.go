package web

import (
	"github.com/go-chi/chi/v5"

	"github.com/kozaktomas/face-gallery/internal/web/handlers"
	"github.com/kozaktomas/face-gallery/internal/web/middleware"
)

func (s *Server) setupRoutes(sessionManager *middleware.SessionManager) {
	// Create handlers
	authHandler := handlers.NewAuthHandler(s.config.Admin, sessionManager)
	eventsHandler := handlers.NewEventsHandler(s.service)
	uploadHandler := handlers.NewUploadHandler(s.service)
	guestHandler := handlers.NewGuestHandler(s.service)
	statsHandler := handlers.NewStatsHandler(s.service)
	filesHandler := handlers.NewFilesHandler(s.photos)

	// Health check (no auth required)
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// Public pages
	s.router.Get("/", handlers.Home)
	s.router.Get("/upload", uploadHandler.Page)
	s.router.Post("/upload", uploadHandler.Upload)
	s.router.Get("/guest", guestHandler.Page)
	s.router.Post("/guest", guestHandler.Match)
	s.router.Get("/uploads/{eventID}/{filename}", filesHandler.Serve)

	// Admin login flow
	s.router.Get("/admin/login", authHandler.LoginPage)
	s.router.Post("/admin/login", authHandler.Login)
	s.router.Get("/admin/logout", authHandler.Logout)

	// Admin-gated routes
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(sessionManager))

		r.Get("/admin", statsHandler.Dashboard)
		r.Get("/admin/create_event", eventsHandler.CreatePage)
		r.Post("/admin/create_event", eventsHandler.Create)
		r.Post("/admin/delete_event/{eventID}", eventsHandler.Delete)
	})
}
