// Package esign is a small client for the eSignature REST API: envelope
// definitions, a builder for scheduled-sending envelopes and the HTTP calls
// that submit them.
package esign

// Envelope statuses accepted by the create-envelope call.
const (
	StatusCreated = "created"
	StatusSent    = "sent"
)

// ScheduledSendingPending is the only status the scheduled-sending model is
// created with; the service moves it forward once the resume date passes.
const ScheduledSendingPending = "pending"

type EnvelopeDefinition struct {
	EmailSubject string      `json:"emailSubject,omitempty"`
	Documents    []Document  `json:"documents,omitempty"`
	Recipients   *Recipients `json:"recipients,omitempty"`
	Workflow     *Workflow   `json:"workflow,omitempty"`
	Status       string      `json:"status,omitempty"`
}

type Document struct {
	DocumentBase64 string `json:"documentBase64,omitempty"`
	Name           string `json:"name,omitempty"`
	FileExtension  string `json:"fileExtension,omitempty"`
	DocumentID     string `json:"documentId,omitempty"`
}

type Recipients struct {
	Signers []Signer `json:"signers,omitempty"`
}

// Signer is a recipient who must sign. Recipients sharing a RoutingOrder
// receive the envelope in parallel; lower values are delivered first.
type Signer struct {
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	RecipientID  string `json:"recipientId,omitempty"`
	RoutingOrder string `json:"routingOrder,omitempty"`
	Tabs         *Tabs  `json:"tabs,omitempty"`
}

type Tabs struct {
	SignHereTabs []SignHere `json:"signHereTabs,omitempty"`
}

// SignHere is placed wherever AnchorString appears in any document of the
// envelope, shifted by the offsets.
type SignHere struct {
	AnchorString  string `json:"anchorString,omitempty"`
	AnchorXOffset string `json:"anchorXOffset,omitempty"`
	AnchorYOffset string `json:"anchorYOffset,omitempty"`
	AnchorUnits   string `json:"anchorUnits,omitempty"`
}

type Workflow struct {
	WorkflowSteps []WorkflowStep `json:"workflowSteps,omitempty"`
}

type WorkflowStep struct {
	ScheduledSending *ScheduledSending `json:"scheduledSending,omitempty"`
}

type ScheduledSending struct {
	Status string              `json:"status,omitempty"`
	Rules  []EnvelopeDelayRule `json:"rules,omitempty"`
}

type EnvelopeDelayRule struct {
	ResumeDate string `json:"resumeDate,omitempty"`
}

// EnvelopeSummary is what the service returns after creating an envelope.
type EnvelopeSummary struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime,omitempty"`
	URI            string `json:"uri,omitempty"`
}

// Envelope is the subset of the envelope resource returned by a lookup.
type Envelope struct {
	EnvelopeID            string `json:"envelopeId"`
	Status                string `json:"status"`
	EmailSubject          string `json:"emailSubject,omitempty"`
	CreatedDateTime       string `json:"createdDateTime,omitempty"`
	SentDateTime          string `json:"sentDateTime,omitempty"`
	StatusChangedDateTime string `json:"statusChangedDateTime,omitempty"`
}
