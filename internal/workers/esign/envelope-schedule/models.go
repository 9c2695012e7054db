package envelopeschedule

import (
	"esign-workers/internal/common/esign"
	"esign-workers/internal/common/logger"
	"esign-workers/internal/common/observability"
)

type Input struct {
	SignerEmail string `json:"signerEmail"`
	SignerName  string `json:"signerName"`
	DocPDF      string `json:"docPdf"`
	ResumeDate  string `json:"resumeDate"`
	AccountID   string `json:"accountId,omitempty"`
}

type Output struct {
	EnvelopeScheduled      bool   `json:"envelopeScheduled"`
	EnvelopeID             string `json:"envelopeId,omitempty"`
	EnvelopeStatus         string `json:"envelopeStatus,omitempty"`
	EnvelopeStatusDateTime string `json:"envelopeStatusDateTime,omitempty"`
	RequestID              string `json:"esignRequestId,omitempty"`
	Message                string `json:"esignMessage"`
}

type ServiceDependencies struct {
	Logger        logger.Logger
	Documents     esign.DocumentReader
	Observability *observability.Observability
}
