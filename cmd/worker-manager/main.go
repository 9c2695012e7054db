// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"esign-workers/internal/common/aws"
	"esign-workers/internal/common/camunda"
	"esign-workers/internal/common/config"
	"esign-workers/internal/common/esign"
	"esign-workers/internal/common/logger"
	"esign-workers/internal/common/observability"

	es "esign-workers/internal/workers/esign/envelope-schedule"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...",
		zap.String("app", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebeClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebeClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: cfg.Camunda.UsePlaintext,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.Timeout),
			RequestTimeout:         config.GetDuration(cfg.Camunda.RequestTimeout),
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	defer zeebeClient.Close()
	zapLog.Info("Zeebe client connected successfully")

	// --- Document sources ---
	documents, err := newDocumentReader(ctx, cfg)
	if err != nil {
		zapLog.Fatal("document storage init failed", zap.Error(err))
	}

	// --- Register Workers ---
	scheduleHandler, err := es.NewHandler(es.HandlerOptions{
		AppConfig:     cfg,
		Camunda:       zeebeClient,
		Logger:        log,
		Documents:     documents,
		Observability: obs,
	})
	if err != nil {
		zapLog.Fatal("envelope schedule worker init failed", zap.Error(err))
	}
	if err := scheduleHandler.Register(); err != nil {
		zapLog.Fatal("envelope schedule worker registration failed", zap.Error(err))
	}
	defer scheduleHandler.Close()

	zapLog.Info("Workers registered",
		zap.String("taskType", scheduleHandler.GetTaskType()),
		zap.Bool("enabled", scheduleHandler.IsEnabled()),
	)

	// --- Health & Metrics Server ---
	var server *http.Server
	if cfg.Metrics.Enabled {
		server = &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Metrics.Port),
			Handler:           newOpsMux(cfg.Metrics.Path, scheduleHandler),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			zapLog.Info("Health/Metrics server listening", zap.String("addr", server.Addr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if server != nil {
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLog.Error("Error stopping Health/Metrics server", zap.Error(err))
		}
	}

	zapLog.Info("Worker manager stopped")
}

// newDocumentReader reads local paths under esign.document_dir and, when
// object storage is enabled, s3://bucket/key paths from S3.
func newDocumentReader(ctx context.Context, cfg *config.Config) (esign.DocumentReader, error) {
	var local afero.Fs = afero.NewOsFs()
	if cfg.ESign.DocumentDir != "" {
		local = afero.NewBasePathFs(local, cfg.ESign.DocumentDir)
	}

	reader := &esign.SourceReader{Local: esign.NewFileReader(local)}

	if cfg.Storage.S3.Enabled {
		s3Client, err := aws.NewS3Client(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, err
		}
		reader.Remote = esign.NewS3Reader(s3Client)
	}

	return reader, nil
}

type healthChecker interface {
	HealthCheck(ctx context.Context) error
}

func newOpsMux(metricsPath string, checks ...healthChecker) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		for _, check := range checks {
			if err := check.HealthCheck(ctx); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, map[string]string{
					"status": "not_ready",
					"error":  err.Error(),
				})
				return
			}
		}
		writeStatus(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	mux.Handle(metricsPath, promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, status int, body map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
