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

	"github.com/cmlabs-hris/overtime-backend-go/internal/config"
	"github.com/cmlabs-hris/overtime-backend-go/internal/domain/overtime"
	appHTTP "github.com/cmlabs-hris/overtime-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/overtime-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/overtime-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/overtime-backend-go/internal/service/master"
	notificationService "github.com/cmlabs-hris/overtime-backend-go/internal/service/notification"
	overtimeService "github.com/cmlabs-hris/overtime-backend-go/internal/service/overtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgresql.Migrate(ctx, db); err != nil {
			slog.Error("Error migrating database", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema applied")
	}

	entryRepo := postgresql.NewOvertimeEntryRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	branchRepo := postgresql.NewBranchRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	resolver := overtime.NewBranchResolver(cfg.Overtime.BranchAliases)
	calculator := overtimeService.NewCalculator(resolver, overtime.DefaultPolicyBook())
	limits := overtimeService.NewLimitChecker(cfg.Overtime.Limits)

	notificationSvc := notificationService.NewNotificationService(notificationRepo)
	overtimeSvc := overtimeService.NewOvertimeService(
		postgresql.NewTransactor(db),
		entryRepo,
		employeeRepo,
		notificationRepo,
		calculator,
		limits,
	)
	masterSvc := master.NewMasterService(branchRepo, resolver)

	scheduler := cron.NewScheduler()
	notificationJobs := cron.NewNotificationJobs(notificationSvc, cfg.Notifications.Retention(), cfg.Notifications.PurgeInterval)
	if err := notificationJobs.RegisterJobs(scheduler); err != nil {
		slog.Error("Error registering cron jobs", "error", err)
		os.Exit(1)
	}
	scheduler.Start(ctx)

	router := appHTTP.NewRouter(
		cfg,
		logger,
		appHTTP.NewOvertimeHandler(overtimeSvc),
		appHTTP.NewMasterHandler(masterSvc),
		appHTTP.NewNotificationHandler(notificationSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
	slog.Info("Server stopped")
}
