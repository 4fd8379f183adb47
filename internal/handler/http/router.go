package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hris-finance-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// JWTAuth enables bearer verification on every /api/v1 route when set
	JWTAuth *jwtauth.JWTAuth
}

type Handlers struct {
	Calendar   CalendarHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Payment    PaymentHandler
	Expense    ExpenseHandler
	Report     ReportHandler
	Dashboard  DashboardHandler
}

func NewRouter(cfg RouterConfig, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
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

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.JWTAuth != nil {
			r.Use(jwtauth.Verifier(cfg.JWTAuth))
			r.Use(middleware.AuthRequired(cfg.JWTAuth))
		}

		r.Get("/calendar/working-days", h.Calendar.GetWorkingDays)

		r.Put("/attendances", h.Attendance.Upsert)
		r.Get("/employees/{employeeId}/absences", h.Attendance.GetAbsenceSummary)

		r.Route("/payroll", func(r chi.Router) {
			r.Get("/", h.Payroll.ListPayrollRecords)
			r.Post("/", h.Payroll.CreatePayroll)
			r.Post("/preview", h.Payroll.PreviewPayroll)
			r.Post("/generate", h.Payroll.GeneratePayroll)
			r.Get("/{id}", h.Payroll.GetPayrollRecord)
			r.Patch("/{id}/status", h.Payroll.UpdatePayrollStatus)
			r.Delete("/{id}", h.Payroll.DeletePayrollRecord)
		})

		r.Route("/payments", func(r chi.Router) {
			r.Put("/", h.Payment.Upsert)
			r.Get("/", h.Payment.List)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Post("/", h.Expense.Create)
			r.Get("/", h.Expense.List)
			r.Get("/{id}", h.Expense.Get)
			r.Patch("/{id}/correction", h.Expense.Correct)
		})

		r.Get("/reports/financial", h.Report.GetFinancialReport)
		r.Get("/dashboard", h.Dashboard.GetDashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
