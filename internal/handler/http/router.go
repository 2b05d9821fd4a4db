package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	Logger             *slog.Logger
	AllowedOrigins     []string
	RateLimitPerMinute int
}

func NewRouter(opts RouterOptions, JWTService jwt.Service, attendanceHandler AttendanceHandler, vacationHandler VacationHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "X-RateLimit-Remaining"},
		MaxAge:           300,
	}))

	if opts.Logger != nil {
		r.Use(httplog.RequestLogger(opts.Logger, &httplog.Options{
			Level:  slog.LevelDebug,
			Schema: httplog.SchemaECS,
		}))
	}

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	// Writes are limited per caller
	writeLimit := httprate.Limit(
		opts.RateLimitPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(callerKey),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Too many requests, slow down")
		}),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired)
		r.Use(middleware.RequireCompany)

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceViewOwn))
				r.Get("/status", attendanceHandler.Status)
				r.Get("/stats", attendanceHandler.Stats)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionAttendanceCreate))
				r.Use(writeLimit)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Post("/breaks/start", attendanceHandler.StartBreak)
				r.Post("/breaks/end", attendanceHandler.EndBreak)
			})
		})

		r.Route("/vacations", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionLeaveViewOwn))
				r.Get("/", vacationHandler.List)
				r.Get("/balance", vacationHandler.Balance)
				r.Get("/{id}", vacationHandler.Get)
			})

			r.Group(func(r chi.Router) {
				r.Use(writeLimit)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/", vacationHandler.Submit)
				r.With(middleware.RequirePermission(user.PermissionLeaveCreate)).Post("/{id}/cancel", vacationHandler.Cancel)
				r.With(middleware.RequirePermission(user.PermissionLeaveApprove)).Post("/{id}/decision", vacationHandler.Decide)
			})
		})
	})
	return r
}

func callerKey(r *http.Request) (string, error) {
	if caller, err := user.CallerFromContext(r.Context()); err == nil {
		return "user:" + caller.UserID, nil
	}
	return httprate.KeyByIP(r)
}
