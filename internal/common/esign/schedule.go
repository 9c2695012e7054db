package esign

import "context"

// Args carries everything one scheduled-sending request needs.
type Args struct {
	BasePath     string
	AccessToken  string
	AccountID    string
	EnvelopeArgs EnvelopeArgs
}

// ScheduleEnvelope configures a client from args, builds the envelope and
// creates it. Errors from either step are returned unchanged; a document that
// cannot be read stops the call before any request is sent.
func ScheduleEnvelope(ctx context.Context, docs DocumentReader, args Args) (*EnvelopeSummary, error) {
	client := NewClient(args.BasePath, args.AccessToken)
	return client.ScheduleEnvelope(ctx, docs, args.AccountID, args.EnvelopeArgs)
}

// ScheduleEnvelope builds and submits a scheduled-sending envelope using an
// already configured client.
func (c *Client) ScheduleEnvelope(ctx context.Context, docs DocumentReader, accountID string, args EnvelopeArgs) (*EnvelopeSummary, error) {
	envelope, err := MakeEnvelope(ctx, docs, args)
	if err != nil {
		return nil, err
	}
	return c.CreateEnvelope(ctx, accountID, envelope)
}
