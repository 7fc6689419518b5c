package http

import (
	"log/slog"
	"os"

	"github.com/chandra447/dk-stores/internal/handler/http/middleware"
	"github.com/chandra447/dk-stores/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigin string
	Env           string

	// GoogleEnabled registers the Google OAuth routes only when the
	// credentials are configured.
	GoogleEnabled bool
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	registerHandler RegisterHandler,
	employeeHandler EmployeeHandler,
	rollcallHandler RollcallHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "dk-stores"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
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
			r.Post("/signup", authHandler.Signup)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			if cfg.GoogleEnabled {
				r.Route("/oauth/callback", func(r chi.Router) {
					r.Get("/google", authHandler.OAuthCallbackGoogle)
				})
			}

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Post("/manager", authHandler.LoginManager)
				if cfg.GoogleEnabled {
					r.Route("/oauth", func(r chi.Router) {
						r.Get("/google", authHandler.LoginWithGoogle)
					})
				}
			})

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/me", authHandler.Me)

				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/admins", authHandler.CreateAdmin)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/registers", func(r chi.Router) {
				r.Get("/", registerHandler.ListMine)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", registerHandler.Create)
				})

				r.Route("/{registerID}", func(r chi.Router) {
					r.Get("/", registerHandler.Get)
					r.Post("/open", registerHandler.Open)
					r.Get("/log/today", registerHandler.TodayLog)

					r.Route("/employees", func(r chi.Router) {
						r.Get("/", employeeHandler.List)
						r.Get("/status", employeeHandler.ListWithStatus)

						// Admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.AdminOnly)
							r.Post("/", employeeHandler.Create)
						})
					})

					// Admin only
					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/managers", employeeHandler.CreateManager)
					})
				})
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/log", reportHandler.EmployeeRange)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Put("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
					r.Post("/login-account", employeeHandler.ProvisionLogin)
				})
			})

			r.Route("/rollcalls", func(r chi.Router) {
				r.Post("/present", rollcallHandler.MarkPresent)
				r.Post("/absent", rollcallHandler.MarkAbsent)
				r.Post("/return", rollcallHandler.ReturnFromAbsence)
				r.Get("/status", rollcallHandler.Status)

				r.Route("/{rollcallID}", func(r chi.Router) {
					r.Post("/breaks", rollcallHandler.StartBreak)
					r.Put("/half-day", rollcallHandler.SetHalfDay)
				})
			})

			r.Put("/breaks/{breakID}/end", rollcallHandler.EndBreak)

			r.Route("/register-logs/{registerLogID}", func(r chi.Router) {
				r.Get("/breaks/active", rollcallHandler.ActiveBreaks)
				r.Get("/log", rollcallHandler.DayLog)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/dashboard", reportHandler.Dashboard)
				r.Get("/contribution", reportHandler.Contribution)
				r.Get("/hourly", reportHandler.Hourly)
			})
		})
	})
	return r
}
