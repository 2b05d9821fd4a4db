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

	"github.com/cmlabs-hris/hris-attendance-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-attendance-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/lock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/hris-attendance-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/hris-attendance-go/internal/service/attendance"
	vacationService "github.com/cmlabs-hris/hris-attendance-go/internal/service/vacation"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-attendance"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        cfg.Database.MaxConns,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	var locker lock.Locker = lock.NewLocalLock()
	if cfg.Redis.Addr != "" {
		redisLock, err := lock.NewRedisLock(ctx, cfg.Redis.Addr)
		if err != nil {
			return fmt.Errorf("error connecting to redis: %w", err)
		}
		defer redisLock.Close()
		locker = redisLock
	}

	clock := timeofday.NewClock(cfg.App.Timezone)
	transactor := postgresql.NewTransactor(db)

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)

	vacationSvc := vacationService.NewVacationService(leaveTypeRepo, vacationRepo, clock)
	attendanceSvc := attendanceService.NewAttendanceService(
		transactor,
		attendanceRepo,
		breakRepo,
		employeeRepo,
		vacationSvc,
		clock,
	)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:             logger,
			AllowedOrigins:     cfg.HTTP.AllowedOrigins,
			RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
		},
		JWTService,
		appHTTP.NewAttendanceHandler(attendanceSvc),
		appHTTP.NewVacationHandler(vacationSvc),
	)

	scheduler := cron.NewScheduler(ctx)
	cron.NewProvisioningJobs(attendanceSvc, employeeRepo, locker, clock, cfg.Provision.Interval).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", cfg.App.Timezone.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
