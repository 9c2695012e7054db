package envelopeschedule

import "esign-workers/internal/common/validation"

// GetInputSchema describes the job variables read by the worker. Process-wide
// variables are also delivered with the job, so extra keys are allowed.
func GetInputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"signerEmail", "signerName", "docPdf", "resumeDate"},
		Properties: map[string]validation.Property{
			"signerEmail": {
				Type:        "string",
				Description: "Email address of the signer",
				MinLength:   intPtr(1),
			},
			"signerName": {
				Type:        "string",
				Description: "Full name of the signer",
				MinLength:   intPtr(1),
			},
			"docPdf": {
				Type:        "string",
				Description: "Local path or s3://bucket/key of the PDF to sign",
				MinLength:   intPtr(1),
			},
			"resumeDate": {
				Type:        "string",
				Description: "When the envelope should be sent",
				MinLength:   intPtr(1),
			},
			"accountId": {
				Type:        "string",
				Description: "eSignature account; defaults to esign.account_id",
			},
		},
		AdditionalProperties: true,
	}
}

func GetOutputSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"envelopeScheduled", "esignMessage"},
		Properties: map[string]validation.Property{
			"envelopeScheduled": {
				Type:        "boolean",
				Description: "Whether the envelope was accepted for scheduled sending",
			},
			"envelopeId": {
				Type:        "string",
				Description: "Identifier assigned by the eSignature service",
			},
			"envelopeStatus": {
				Type:        "string",
				Description: "Envelope status returned on creation",
			},
			"envelopeStatusDateTime": {
				Type:        "string",
				Description: "Time of the last status change",
			},
			"esignRequestId": {
				Type:        "string",
				Description: "Correlation id of the submission",
			},
			"esignMessage": {
				Type:        "string",
				Description: "Result message",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
