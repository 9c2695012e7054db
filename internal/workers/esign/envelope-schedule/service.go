package envelopeschedule

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"esign-workers/internal/common/errors"
	"esign-workers/internal/common/esign"
	"esign-workers/internal/common/logger"
	"esign-workers/internal/common/metrics"
	"esign-workers/internal/common/observability"

	"github.com/araddon/dateparse"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/attribute"
)

type Service struct {
	config *Config
	logger logger.Logger
	docs   esign.DocumentReader
	client *esign.Client
	obs    *observability.Observability
}

func NewService(deps ServiceDependencies, config *Config) *Service {
	docs := deps.Documents
	if docs == nil {
		docs = &esign.SourceReader{Local: esign.NewFileReader(documentFs(config.DocumentDir))}
	}

	return &Service{
		config: config,
		logger: deps.Logger,
		docs:   docs,
		client: esign.NewClient(config.BasePath, config.AccessToken),
		obs:    deps.Observability,
	}
}

// documentFs roots relative and absolute document paths at dir when set.
func documentFs(dir string) afero.Fs {
	if dir == "" {
		return afero.NewOsFs()
	}
	return afero.NewBasePathFs(afero.NewOsFs(), dir)
}

func (s *Service) Execute(ctx context.Context, input *Input) (*Output, error) {
	requestID := uuid.NewString()

	s.logger.Info("Executing envelope schedule", map[string]interface{}{
		"requestId":   requestID,
		"signerEmail": input.SignerEmail,
		"docPdf":      input.DocPDF,
		"resumeDate":  input.ResumeDate,
	})

	resumeDate, err := ParseResumeDate(input.ResumeDate)
	if err != nil {
		return nil, errors.NewInvalidResumeDateError(input.ResumeDate, err).
			WithMetadata("esignRequestId", requestID)
	}

	accountID := input.AccountID
	if accountID == "" {
		accountID = s.config.AccountID
	}
	if accountID == "" {
		return nil, errors.NewValidationFailedError("accountId is required when esign.account_id is not configured").
			WithMetadata("esignRequestId", requestID)
	}

	envelope, err := esign.MakeEnvelope(ctx, s.docs, esign.EnvelopeArgs{
		SignerEmail: input.SignerEmail,
		SignerName:  input.SignerName,
		DocPDF:      input.DocPDF,
		ResumeDate:  resumeDate,
	})
	if err != nil {
		return nil, errors.NewDocumentReadFailedError(input.DocPDF, err).
			WithMetadata("esignRequestId", requestID)
	}

	ctx, span := s.obs.StartSpan(ctx, "esign.envelope.create",
		attribute.String("esign.account_id", accountID),
		attribute.String("esign.request_id", requestID),
	)
	start := time.Now()
	summary, err := s.client.CreateEnvelope(ctx, accountID, envelope)
	metrics.ESignRequestDuration.WithLabelValues("create_envelope").Observe(time.Since(start).Seconds())
	observability.EndSpan(span, err)

	if err != nil {
		metrics.ESignEnvelopesSubmitted.WithLabelValues("failed").Inc()
		s.obs.RecordEnvelope(ctx, "failed")
		return nil, classifyESignError(err).WithMetadata("esignRequestId", requestID)
	}

	metrics.ESignEnvelopesSubmitted.WithLabelValues(summary.Status).Inc()
	s.obs.RecordEnvelope(ctx, summary.Status)

	s.logger.Info("Envelope scheduled", map[string]interface{}{
		"requestId":  requestID,
		"envelopeId": summary.EnvelopeID,
		"status":     summary.Status,
		"resumeDate": esign.FormatResumeDate(resumeDate),
	})

	return &Output{
		EnvelopeScheduled:      true,
		EnvelopeID:             summary.EnvelopeID,
		EnvelopeStatus:         summary.Status,
		EnvelopeStatusDateTime: summary.StatusDateTime,
		RequestID:              requestID,
		Message:                fmt.Sprintf("Envelope scheduled to send at %s", esign.FormatResumeDate(resumeDate)),
	}, nil
}

// ParseResumeDate accepts RFC 3339 and the other layouts dateparse knows.
// Values without a zone are taken as UTC.
func ParseResumeDate(value string) (time.Time, error) {
	return dateparse.ParseIn(value, time.UTC)
}

func classifyESignError(err error) *errors.StandardError {
	var apiErr *esign.APIError
	if !stderrors.As(err, &apiErr) {
		return errors.NewESignUnavailableError(err)
	}

	switch {
	case apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden:
		return errors.NewESignAuthenticationFailedError(err)
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		return errors.NewESignRequestRejectedError(err).WithMetadata("esignErrorCode", apiErr.ErrorCode)
	default:
		return errors.NewESignAPIError(err)
	}
}

// TestConnection checks that the worker has what it needs to call the API.
// No request is sent; the token is only presented on a real submission.
func (s *Service) TestConnection(ctx context.Context) error {
	if s.client == nil || s.client.BasePath() == "" {
		return fmt.Errorf("esign client not configured")
	}
	if s.config.AccessToken == "" {
		return fmt.Errorf("esign access token not configured")
	}
	return ctx.Err()
}
