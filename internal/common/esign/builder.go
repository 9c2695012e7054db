package esign

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"
)

const (
	emailSubject = "Please sign this document set"

	// The display name may differ from the source file name.
	documentName      = "Lorem Ipsum"
	documentExtension = "pdf"
	documentID        = "1"

	signerRecipientID  = "1"
	signerRoutingOrder = "1"

	AnchorSignature1 = "**signature_1**"
	AnchorSN1        = "/sn1/"
)

// ResumeDateLayout is the string form used for the scheduled-sending resume date.
const ResumeDateLayout = time.RFC3339

// EnvelopeArgs are the per-envelope inputs.
type EnvelopeArgs struct {
	SignerEmail string
	SignerName  string
	DocPDF      string
	ResumeDate  time.Time
}

// MakeEnvelope builds a scheduled-sending envelope for a single signer.
//
// The document at args.DocPDF is read once; any read error is returned before
// anything else is built. The envelope is always requested with status "sent":
// the scheduled-sending rule, not a draft, is what holds it back. Nothing about
// the signer, the date or the file type is validated here; the service does
// that on submission.
func MakeEnvelope(ctx context.Context, docs DocumentReader, args EnvelopeArgs) (*EnvelopeDefinition, error) {
	content, err := docs.ReadDocument(ctx, args.DocPDF)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", args.DocPDF, err)
	}

	signer := Signer{
		Email:        args.SignerEmail,
		Name:         args.SignerName,
		RecipientID:  signerRecipientID,
		RoutingOrder: signerRoutingOrder,
		Tabs: &Tabs{
			SignHereTabs: []SignHere{
				anchoredSignHere(AnchorSignature1),
				anchoredSignHere(AnchorSN1),
			},
		},
	}

	return &EnvelopeDefinition{
		EmailSubject: emailSubject,
		Documents: []Document{{
			DocumentBase64: base64.StdEncoding.EncodeToString(content),
			Name:           documentName,
			FileExtension:  documentExtension,
			DocumentID:     documentID,
		}},
		Recipients: &Recipients{Signers: []Signer{signer}},
		Workflow:   scheduledSendingWorkflow(args.ResumeDate),
		Status:     StatusSent,
	}, nil
}

func anchoredSignHere(anchor string) SignHere {
	return SignHere{
		AnchorString:  anchor,
		AnchorXOffset: "20",
		AnchorYOffset: "10",
		AnchorUnits:   "pixels",
	}
}

func scheduledSendingWorkflow(resumeDate time.Time) *Workflow {
	return &Workflow{
		WorkflowSteps: []WorkflowStep{{
			ScheduledSending: &ScheduledSending{
				Status: ScheduledSendingPending,
				Rules: []EnvelopeDelayRule{{
					ResumeDate: FormatResumeDate(resumeDate),
				}},
			},
		}},
	}
}

// FormatResumeDate renders t in UTC using ResumeDateLayout.
func FormatResumeDate(t time.Time) string {
	return t.UTC().Format(ResumeDateLayout)
}
