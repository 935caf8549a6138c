package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/backoffice-payroll-go/internal/config"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/domain/record"
	appHTTP "github.com/cmlabs-hris/backoffice-payroll-go/internal/handler/http"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/cache"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/cron"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/pkg/sse"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/document"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/memory"
	"github.com/cmlabs-hris/backoffice-payroll-go/internal/repository/postgresql"
	ccssService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/ccss"
	companyService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/company"
	deductionService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/deduction"
	payrollService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/payroll"
	shiftService "github.com/cmlabs-hris/backoffice-payroll-go/internal/service/shift"
	"github.com/redis/go-redis/v9"
)

const (
	appName    = "backoffice-payroll"
	appVersion = "v1.0.0"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store record.Store
	switch cfg.Store.Backend {
	case config.StoreBackendPostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			log.Fatal("Error connecting to database: ", err)
		}
		defer db.Close()
		if err := postgresql.EnsureSchema(ctx, db); err != nil {
			log.Fatal("Error preparing records table: ", err)
		}
		store = postgresql.NewRecordStore(db)
	default:
		slog.Warn("Using in-memory record store, data is lost on restart")
		store = memory.NewStore()
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = cache.ConnectRedisWithRetry(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5, 2*time.Second)
		if err != nil {
			log.Fatal("Error connecting to redis: ", err)
		}
		defer rdb.Close()
	}

	companyRepo := document.NewCompanyRepository(store)
	shiftRepo := document.NewShiftRepository(store, cfg.Payroll.LegacyMonthBase)
	rateRepo := document.NewCcssRateRepository(store)

	hub := sse.NewHub()
	notifier := payrollService.NewNotifier(hub)

	companySvc := companyService.NewCompanyService(companyRepo,
		companyService.WithOnChange(notifier.CompanyChanged))
	shiftSvc := shiftService.NewShiftService(shiftRepo, companyRepo,
		shiftService.WithOnChange(notifier.ShiftChanged))
	resolver := ccssService.NewResolver(rateRepo, companyRepo, rdb, cfg.Redis.TTL,
		ccssService.WithOnChange(notifier.RatesChanged))
	overrides := deductionService.NewStore(cfg.Payroll.DeductionDebounce,
		deductionService.WithOnCommit(notifier.DeductionCommitted))
	payrollSvc := payrollService.NewPayrollService(companyRepo, shiftSvc, resolver, overrides, cfg.Payroll.SentinelCompany)
	notifier.Attach(payrollSvc)
	notifier.AttachRates(resolver)

	if cfg.App.SeedFile != "" {
		n, err := seedCompanies(ctx, companySvc, cfg.App.SeedFile)
		if err != nil {
			log.Fatal("Error seeding companies: ", err)
		}
		slog.Info("Seeded companies", "count", n, "file", cfg.App.SeedFile)
	}

	scheduler := cron.NewScheduler(ctx)
	cron.NewPayrollJobs(companyRepo, resolver, payrollSvc, cfg.Cron.CacheWarmInterval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AppName:        appName,
			Version:        appVersion,
			Env:            cfg.App.Env,
			AllowedOrigins: cfg.App.AllowedOrigins,
			LogLevel:       cfg.SlogLevel(),
		},
		appHTTP.Handlers{
			Company:   appHTTP.NewCompanyHandler(companySvc),
			Period:    appHTTP.NewPeriodHandler(shiftSvc, time.Now),
			Shift:     appHTTP.NewShiftHandler(shiftSvc, time.Now),
			Payroll:   appHTTP.NewPayrollHandler(payrollSvc, time.Now),
			Ccss:      appHTTP.NewCcssHandler(resolver),
			Deduction: appHTTP.NewDeductionHandler(overrides, companySvc),
			Event:     appHTTP.NewEventHandler(hub, 30*time.Second),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		// Open event streams end with ctx so Shutdown does not wait on them.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "store", cfg.Store.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}

	// Commit whatever the clerks typed in the last debounce window.
	overrides.FlushAll()
}
