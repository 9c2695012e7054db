package envelopeschedule

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"esign-workers/internal/common/camunda"
	"esign-workers/internal/common/config"
	"esign-workers/internal/common/errors"
	"esign-workers/internal/common/esign"
	"esign-workers/internal/common/logger"
	"esign-workers/internal/common/metrics"
	"esign-workers/internal/common/observability"
	"esign-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType   = "esign.envelope.schedule"
	WorkerName = "envelope-schedule"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	camunda      *camunda.Client
	service      *Service
	obs          *observability.Observability
	errorHandler *errors.ErrorHandler
	jobWorker    *camunda.CamundaWorker
}

type HandlerOptions struct {
	AppConfig     *config.Config
	Camunda       *camunda.Client
	CustomConfig  *Config
	Logger        logger.Logger
	Documents     esign.DocumentReader
	Observability *observability.Observability
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)

	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", WorkerName, err)
	}

	var loggerInstance logger.Logger
	if opts.Logger != nil {
		loggerInstance = opts.Logger
	} else {
		loggerInstance = logger.NewStructured("info", "json")
	}

	handler := &Handler{
		config:       workerConfig,
		logger:       loggerInstance,
		camunda:      opts.Camunda,
		obs:          opts.Observability,
		errorHandler: errors.NewErrorHandler(loggerInstance),
	}

	handler.service = NewService(ServiceDependencies{
		Logger:        loggerInstance,
		Documents:     opts.Documents,
		Observability: opts.Observability,
	}, handler.config)

	return handler, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	h.logger.Info("Processing envelope schedule request", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
		"worker":             TaskType,
	})

	if !h.config.Enabled {
		h.logger.Info("Worker disabled by configuration", map[string]interface{}{
			"worker": TaskType,
		})
		h.completeJob(ctx, client, job, &Output{
			EnvelopeScheduled: false,
			Message:           "Envelope scheduling disabled",
		})
		return
	}

	input, err := h.parseInput(job)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, startTime)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
	h.obs.RecordJobProcessed(ctx, "completed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "completed")
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, startTime time.Time) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, extractErrorCode(err)).Inc()
	h.obs.RecordJobProcessed(ctx, "failed")
	h.obs.RecordJobDuration(ctx, time.Since(startTime), "failed")
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) parseInput(job entities.Job) (*Input, error) {
	variables, err := job.GetVariablesAsMap()
	if err != nil {
		return nil, errors.NewInputParsingFailedError(err)
	}

	validationResult := validation.ValidateInput(variables, GetInputSchema())
	if !validationResult.Valid {
		return nil, errors.NewValidationFailedError(
			fmt.Sprintf("Validation errors: %v", validationResult.GetErrorMessages()),
		)
	}

	input := &Input{
		SignerEmail: variables["signerEmail"].(string),
		SignerName:  variables["signerName"].(string),
		DocPDF:      variables["docPdf"].(string),
		ResumeDate:  variables["resumeDate"].(string),
	}

	if accountID, ok := variables["accountId"].(string); ok {
		input.AccountID = accountID
	}

	return input, nil
}

func outputVariables(output *Output) map[string]interface{} {
	variables := map[string]interface{}{
		"envelopeScheduled": output.EnvelopeScheduled,
		"esignMessage":      output.Message,
	}

	if output.EnvelopeID != "" {
		variables["envelopeId"] = output.EnvelopeID
	}

	if output.EnvelopeStatus != "" {
		variables["envelopeStatus"] = output.EnvelopeStatus
	}

	if output.EnvelopeStatusDateTime != "" {
		variables["envelopeStatusDateTime"] = output.EnvelopeStatusDateTime
	}

	if output.RequestID != "" {
		variables["esignRequestId"] = output.RequestID
	}

	return variables
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	variables := outputVariables(output)

	if result, err := validation.ValidateDocument(variables, GetOutputSchema()); err != nil || !result.Valid {
		fields := map[string]interface{}{"jobKey": job.GetKey(), "worker": TaskType}
		if err != nil {
			fields["error"] = err.Error()
		} else {
			fields["errors"] = result.GetErrorMessages()
		}
		h.logger.Warn("Output does not match schema", fields)
	}

	request, err := client.NewCompleteJobCommand().JobKey(job.GetKey()).VariablesFromMap(variables)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
			"worker": TaskType,
		})
		return
	}

	_, err = request.Send(ctx)
	if err != nil {
		h.logger.Error("Failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
			"worker": TaskType,
		})
	} else {
		h.logger.Info("Successfully completed envelope schedule", map[string]interface{}{
			"jobKey":     job.GetKey(),
			"scheduled":  output.EnvelopeScheduled,
			"envelopeId": output.EnvelopeID,
			"worker":     TaskType,
		})
	}
}

func (h *Handler) Register() error {
	if !h.config.Enabled {
		h.logger.Info("Worker is disabled, skipping registration", map[string]interface{}{
			"worker": TaskType,
		})
		return nil
	}
	if h.camunda == nil {
		return fmt.Errorf("camunda client is required to register %s", TaskType)
	}

	h.jobWorker = camunda.NewWorker(h.camunda.GetClient(), camunda.WorkerOptions{
		TaskType:      TaskType,
		MaxJobsActive: h.config.MaxJobsActive,
		Timeout:       h.config.Timeout,
	}, h, h.logger)

	return nil
}

func (h *Handler) Close() {
	if h.jobWorker != nil {
		h.logger.Info("Shutting down worker gracefully", map[string]interface{}{
			"worker": TaskType,
		})
		h.jobWorker.Stop()
		h.jobWorker = nil
	}
}

func (h *Handler) HealthCheck(ctx context.Context) error {
	if h.camunda != nil {
		if err := h.camunda.HealthCheck(ctx); err != nil {
			return fmt.Errorf("camunda health check failed: %w", err)
		}
	}

	if err := h.service.TestConnection(ctx); err != nil {
		return fmt.Errorf("esign health check failed: %w", err)
	}

	return nil
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func extractErrorCode(err error) string {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return string(stdErr.Code)
	}
	return "UNKNOWN_ERROR"
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()

	if appConfig != nil {
		workerCfg := config.GetWorkerConfig(appConfig, WorkerName)
		cfg.Enabled = workerCfg.Enabled
		if workerCfg.MaxJobsActive > 0 {
			cfg.MaxJobsActive = workerCfg.MaxJobsActive
		}
		if workerCfg.Timeout > 0 {
			cfg.Timeout = config.GetDuration(workerCfg.Timeout)
		}

		cfg.BasePath = appConfig.ESign.BasePath
		cfg.AccessToken = appConfig.ESign.AccessToken
		cfg.AccountID = appConfig.ESign.AccountID
		cfg.DocumentDir = appConfig.ESign.DocumentDir
	}

	return cfg
}

// Execute runs the envelope schedule without a Zeebe job.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.service.Execute(ctx, input)
}
