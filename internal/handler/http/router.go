package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/http/middleware"
	"github.com/worklog-hq/timesheet-backend-go/internal/handler/ws"
	"github.com/worklog-hq/timesheet-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	gateway *ws.Gateway,
	timesheetHandler TimesheetHandler,
	notificationHandler NotificationHandler,
	messageHandler MessageHandler,
	userHandler UserHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timesheet-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// The gateway does its own token admission; REST auth middleware would
	// reject the upgrade request before the handshake.
	r.Get("/ws/notifications/{userID}", gateway.ServeNotifications)

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", timesheetHandler.Create)
				r.Get("/", timesheetHandler.ListByDate)
				r.Put("/", timesheetHandler.Update)
				r.Post("/bulk-delete", timesheetHandler.BulkDelete)
				r.Post("/submit", timesheetHandler.Submit)
				r.Get("/approved", timesheetHandler.Approved)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/pending-review", timesheetHandler.PendingReview)
					r.Post("/review", timesheetHandler.Review)
				})
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Patch("/{id}/read", notificationHandler.MarkAsRead)
				r.Delete("/read", notificationHandler.DeleteRead)
			})

			r.Post("/messages", messageHandler.Send)

			r.Route("/users", func(r chi.Router) {
				r.Get("/{id}", userHandler.GetByID)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", userHandler.Create)
				})
			})
		})
	})

	return r
}
