package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbaid4/testwecicada/internal/auth"
	"github.com/kbaid4/testwecicada/internal/config"
	"github.com/kbaid4/testwecicada/internal/database"
	"github.com/kbaid4/testwecicada/internal/http/handlers"
	"github.com/kbaid4/testwecicada/internal/http/middleware"
	"github.com/kbaid4/testwecicada/internal/logging"
	"github.com/kbaid4/testwecicada/internal/services"
	"github.com/kbaid4/testwecicada/internal/storage"
)

func main() {
	// Load .env variables; real environment variables win.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.NewJSON(os.Stdout, cfg.LogLevel)
	if envErr != nil {
		log.Debug(context.Background(), ".env file not found, using system environment variables")
	}

	if err := run(cfg, log); err != nil {
		log.Error(context.Background(), "server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info(ctx, "starting", cfg.Redacted()...)

	// Connect DB
	repos, err := database.NewManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		return err
	}

	guard, err := auth.NewGuard([]byte(cfg.JWTSecret), cfg.TokenTTL)
	if err != nil {
		return err
	}

	svc := services.New(repos, blobs, guard, log)

	sweeper := storage.NewSweeper(blobs, svc.Events.ReferencedHandles, cfg.SweepGrace, log, prometheus.DefaultRegisterer)
	if err := sweeper.Start(cfg.SweepSchedule); err != nil {
		return err
	}
	defer func() { <-sweeper.Stop().Done() }()

	// Start Gin
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.NewMetrics(prometheus.DefaultRegisterer).Handler(),
		middleware.CORS(cfg.CORSOrigins),
	)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := handlers.New(handlers.Deps{
		Services:       svc,
		Guard:          guard,
		DB:             repos,
		Log:            log,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})
	api.SetupRoutes(r)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info(context.Background(), "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageBackend == config.StorageS3 {
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Prefix:    cfg.S3Prefix,
		})
	}
	return storage.NewDiskStore(cfg.UploadDir)
}
