package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AppName        string
	Version        string
	Env            string
	AllowedOrigins []string
	LogLevel       slog.Level
}

type Handlers struct {
	Company   CompanyHandler
	Period    PeriodHandler
	Shift     ShiftHandler
	Payroll   PayrollHandler
	Ccss      CcssHandler
	Deduction DeductionHandler
	Event     EventHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", cfg.AppName),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/periods", h.Period.List)

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.Payroll.GetAll)
		})

		r.Post("/deductions/flush", h.Deduction.Flush)

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", h.Company.List)

			r.Route("/{companyKey}", func(r chi.Router) {
				r.Get("/", h.Company.Get)
				r.Put("/", h.Company.Save)

				r.Get("/shifts", h.Shift.GetGrid)
				r.Put("/shifts", h.Shift.SetShift)

				r.Get("/payroll", h.Payroll.GetCompany)

				r.Get("/ccss-rates", h.Ccss.GetRates)
				r.Put("/ccss-rates", h.Ccss.SetRates)

				r.Route("/deductions/{employeeName}", func(r chi.Router) {
					r.Get("/", h.Deduction.Get)
					r.Put("/{field}", h.Deduction.Type)
				})

				r.Get("/events", h.Event.Stream)
			})
		})
	})

	return r
}
