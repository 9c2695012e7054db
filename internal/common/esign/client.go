package esign

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	commonhttp "esign-workers/internal/common/http"
)

const apiVersionPath = "/v2.1"

// APIError is returned for any non-2xx response. Body holds the raw response.
type APIError struct {
	StatusCode int
	ErrorCode  string
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.ErrorCode != "" {
		return fmt.Sprintf("esign api error (status %d): %s: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("esign api error (status %d): %s", e.StatusCode, e.Body)
}

// Client talks to one eSignature REST base path with one access token.
type Client struct {
	basePath   string
	httpClient *http.Client
}

// NewClient configures a client for basePath (for example
// https://demo.docusign.net/restapi) that authenticates with accessToken.
func NewClient(basePath, accessToken string) *Client {
	return &Client{
		basePath:   strings.TrimRight(basePath, "/"),
		httpClient: commonhttp.NewBearerClient(0, accessToken),
	}
}

// BasePath returns the configured API base path.
func (c *Client) BasePath() string {
	return c.basePath
}

// CreateEnvelope issues Envelopes::create for accountID and returns the
// service's summary untouched.
func (c *Client) CreateEnvelope(ctx context.Context, accountID string, envelope *EnvelopeDefinition) (*EnvelopeSummary, error) {
	jsonData, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.envelopesURL(accountID), bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var summary EnvelopeSummary
	if err := c.do(req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// GetEnvelope looks up the current state of an envelope.
func (c *Client) GetEnvelope(ctx context.Context, accountID, envelopeID string) (*Envelope, error) {
	u := c.envelopesURL(accountID) + "/" + url.PathEscape(envelopeID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	var envelope Envelope
	if err := c.do(req, &envelope); err != nil {
		return nil, err
	}
	return &envelope, nil
}

func (c *Client) envelopesURL(accountID string) string {
	return fmt.Sprintf("%s%s/accounts/%s/envelopes", c.basePath, apiVersionPath, url.PathEscape(accountID))
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Body:       string(body),
	}

	var payload struct {
		ErrorCode string `json:"errorCode"`
		Message   string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.ErrorCode = payload.ErrorCode
		apiErr.Message = payload.Message
	}
	return apiErr
}
