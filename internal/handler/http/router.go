package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftlog-hq/timetracker-backend-go/internal/config"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/handler/http/middleware"
	"github.com/shiftlog-hq/timetracker-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	authHandler AuthHandler,
	userHandler UserHandler,
	timeLogHandler TimeLogHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel(cfg.App.LogLevel),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timetracker-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/public-register", authHandler.PublicRegister)
			r.Post("/register-super-admin", authHandler.RegisterSuperAdmin)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/profile", authHandler.Profile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/register", authHandler.Register)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/timelogs", func(r chi.Router) {
				r.Post("/login", timeLogHandler.ClockIn)
				r.Post("/logout", timeLogHandler.ClockOut)
				r.Post("/breaks/start", timeLogHandler.StartBreak)
				r.Post("/breaks/end", timeLogHandler.EndBreak)
				r.Get("/me", timeLogHandler.GetMyTimeLogs)
				r.Get("/me/stats", timeLogHandler.GetMyStats)
				r.Put("/{id}/notes", timeLogHandler.UpdateNotes)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", timeLogHandler.List)
					r.Get("/range", timeLogHandler.ListByRange)
					r.Get("/employee/{employeeID}", timeLogHandler.GetEmployeeTimeLogs)
					r.Get("/employee/{employeeID}/stats", timeLogHandler.GetEmployeeStats)
				})
			})

			// Admin only
			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", userHandler.ListEmployees)
				r.Get("/{employeeID}", userHandler.GetEmployee)
				r.Put("/{employeeID}", userHandler.UpdateEmployee)
				r.Delete("/{employeeID}", userHandler.DeleteEmployee)
			})

			// Superadmin only
			r.Route("/admin-management", func(r chi.Router) {
				r.Use(middleware.SuperAdminOnly)
				r.Get("/", userHandler.ListAdmins)
				r.Post("/", userHandler.CreateAdmin)
				r.Get("/{employeeID}", userHandler.GetAdmin)
				r.Put("/{employeeID}", userHandler.UpdateAdmin)
				r.Delete("/{employeeID}", userHandler.DeleteAdmin)
			})
		})
	})

	return r
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
