package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-finance-go/internal/config"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payment"
	"github.com/cmlabs-hris/hris-finance-go/internal/domain/payroll"
	appHTTP "github.com/cmlabs-hris/hris-finance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-finance-go/internal/pkg/money"
	"github.com/cmlabs-hris/hris-finance-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-finance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-finance-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-finance-go/internal/service/dashboard"
	expenseService "github.com/cmlabs-hris/hris-finance-go/internal/service/expense"
	"github.com/cmlabs-hris/hris-finance-go/internal/service/finance"
	paymentService "github.com/cmlabs-hris/hris-finance-go/internal/service/payment"
	payrollService "github.com/cmlabs-hris/hris-finance-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-finance-go/internal/service/report"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/sync/errgroup"
)

type repositories struct {
	tx          database.Transactor
	employee    employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	payroll     payroll.PayrollRepository
	planActual  payment.PlanActualRepository
	participant payment.ParticipantRepository
	expense     expense.ExpenseRepository
	close       func()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-finance"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	clock := appHTTP.Clock(time.Now)
	policy := money.Policy{Places: cfg.Finance.MoneyPlaces}
	source := finance.NewSource(repos.planActual, repos.participant, repos.expense)

	attendanceSvc := attendanceService.NewAttendanceService(repos.attendance, repos.employee, attendanceService.WithClock(clock))
	payrollSvc := payrollService.NewPayrollService(
		repos.tx,
		repos.payroll,
		repos.employee,
		repos.expense,
		attendanceSvc,
		policy,
		payrollService.WithClock(clock),
		payrollService.WithLogger(logger),
	)
	paymentSvc := paymentService.NewPaymentService(repos.planActual, repos.participant, source, policy, paymentService.WithClock(clock))
	expenseSvc := expenseService.NewExpenseService(repos.expense, policy, expenseService.WithClock(clock))
	reportSvc := reportService.NewReportService(source, policy)
	dashboardSvc := dashboardService.NewDashboardService(source, cfg.Finance.OpeningBalance, policy)

	var tokenAuth *jwtauth.JWTAuth
	if cfg.JWT.Secret != "" {
		tokenAuth = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).JWTAuth()
	} else {
		logger.Warn("JWT_SECRET_KEY is not set, API routes are unauthenticated")
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         logger,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		JWTAuth:        tokenAuth,
	}, appHTTP.Handlers{
		Calendar:   appHTTP.NewCalendarHandler(),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Payment:    appHTTP.NewPaymentHandler(paymentSvc, clock),
		Expense:    appHTTP.NewExpenseHandler(expenseSvc, clock),
		Report:     appHTTP.NewReportHandler(reportSvc, clock),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, clock),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server running", "addr", server.Addr, "store", cfg.Store.Type)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories, error) {
	switch cfg.Store.Type {
	case config.StoreTypeMemory:
		store := memory.NewStore()
		if cfg.Store.SeedFile != "" {
			if err := store.LoadSeedFile(cfg.Store.SeedFile); err != nil {
				return repositories{}, fmt.Errorf("failed to seed memory store: %w", err)
			}
			logger.Info("Memory store seeded", "file", cfg.Store.SeedFile)
		}
		return repositories{
			tx:          memory.NewTransactor(),
			employee:    memory.NewEmployeeRepository(store),
			attendance:  memory.NewAttendanceRepository(store),
			payroll:     memory.NewPayrollRepository(store),
			planActual:  memory.NewPlanActualRepository(store),
			participant: memory.NewParticipantRepository(store),
			expense:     memory.NewExpenseRepository(store),
			close:       func() {},
		}, nil

	case config.StoreTypePostgres:
		if cfg.Database.AutoMigrate {
			if err := postgresql.Migrate(cfg.Database.URL); err != nil {
				return repositories{}, fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		db, err := database.NewPostgreSQLDB(ctx, cfg.Database.URL, database.PoolConfig{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return repositories{}, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repositories{
			tx:          postgresql.NewTransactor(db),
			employee:    postgresql.NewEmployeeRepository(db),
			attendance:  postgresql.NewAttendanceRepository(db),
			payroll:     postgresql.NewPayrollRepository(db),
			planActual:  postgresql.NewPlanActualRepository(db),
			participant: postgresql.NewParticipantRepository(db),
			expense:     postgresql.NewExpenseRepository(db),
			close:       db.Close,
		}, nil
	}

	return repositories{}, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
}
