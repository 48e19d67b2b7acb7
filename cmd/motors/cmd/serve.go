package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/milestonemotors/motors/internal/api"
	"github.com/milestonemotors/motors/internal/api/middleware"
	"github.com/milestonemotors/motors/internal/catalog"
	"github.com/milestonemotors/motors/internal/config"
	"github.com/milestonemotors/motors/internal/identity"
	"github.com/milestonemotors/motors/internal/jobs"
	"github.com/milestonemotors/motors/internal/photos"
	"github.com/milestonemotors/motors/internal/platform/tracer"
	"github.com/milestonemotors/motors/internal/session"
	"github.com/milestonemotors/motors/internal/store"
	"github.com/milestonemotors/motors/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the marketplace server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmdLog := log.NewWithOptions(os.Stderr, log.Options{
		Level: parseLogLevel(cfg.Logging.Level),
	})
	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx := context.Background()

	if cfg.Tracing.Enabled {
		tp, err := tracer.Init(ctx, cfg.Tracing.Endpoint)
		if err != nil {
			return fmt.Errorf("initializing tracing: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tp.Shutdown(shutdownCtx); err != nil {
				cmdLog.Error("tracer shutdown failed", "err", err)
			}
		}()
	}

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	var photoSvc photos.Service
	if cfg.Storage.Endpoint != "" {
		photoSvc, err = photos.NewMinio(ctx, photos.MinioOptions{
			Endpoint:      cfg.Storage.Endpoint,
			AccessKey:     cfg.Storage.AccessKey,
			SecretKey:     cfg.Storage.SecretKey,
			Bucket:        cfg.Storage.Bucket,
			UseSSL:        cfg.Storage.UseSSL,
			PublicBaseURL: cfg.Storage.PublicBaseURL,
		}, appLog)
		if err != nil {
			return fmt.Errorf("connecting to object storage: %w", err)
		}
	} else {
		cmdLog.Warn("no storage endpoint configured, photo uploads disabled")
		photoSvc = photos.NewNoOp(appLog)
	}

	sessions := session.NewManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.SessionTTL,
		cfg.Auth.CookieName,
		cfg.Auth.Secure,
	)

	srv := api.NewServer(api.Deps{
		Store:        st,
		Catalog:      catalog.NewService(st, photoSvc, appLog),
		Identity:     identity.NewService(st, photoSvc, appLog, cfg.Auth.BcryptCost),
		Sessions:     sessions,
		LoginLimiter: middleware.NewLoginLimiter(cfg.Auth.LoginRate.PerSecond, cfg.Auth.LoginRate.Burst),
		Logger:       appLog,
	})

	sched, err := jobs.NewScheduler(st, cfg.Jobs.MetricsRefreshInterval, appLog)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	cmdLog.Info("starting server", "addr", addr)

	go func() {
		if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cmdLog.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cmdLog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	<-sched.Stop().Done()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	cmdLog.Info("server stopped")
	return nil
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
