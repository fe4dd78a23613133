package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shiftpulse/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/shiftpulse/timeclock-backend-go/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	frontendURL string,
	attendanceHandler AttendanceHandler,
	payPeriodHandler PayPeriodHandler,
	laborCostHandler LaborCostHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-shiftpulse"),
		slog.String("version", "v1.0.0"),
		slog.String("env", "development"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
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

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Route("/breaks", func(r chi.Router) {
					r.Post("/start", attendanceHandler.BreakStart)
					r.Post("/end", attendanceHandler.BreakEnd)
				})
				r.Get("/today", attendanceHandler.GetTodayStatus)
				r.Get("/summary", attendanceHandler.GetSummary)
				r.Get("/", attendanceHandler.List)
			})

			r.Get("/pay-periods", payPeriodHandler.Resolve)

			// Manager only
			r.Route("/labor-costs", func(r chi.Router) {
				r.Use(middleware.RequireManager)
				r.Get("/", laborCostHandler.List)
				r.Route("/{year}/{month}", func(r chi.Router) {
					r.Put("/", laborCostHandler.Upsert)
					r.Get("/", laborCostHandler.Get)
					r.Delete("/", laborCostHandler.Delete)
				})
			})
		})
	})
	return r
}
