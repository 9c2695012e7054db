package esign

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method        string
	Path          string
	Authorization string
	ContentType   string
	Body          []byte
}

func newTestServer(t *testing.T, status int, response string, calls *int32, last *recordedRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		body, _ := io.ReadAll(r.Body)
		if last != nil {
			*last = recordedRequest{
				Method:        r.Method,
				Path:          r.URL.Path,
				Authorization: r.Header.Get("Authorization"),
				ContentType:   r.Header.Get("Content-Type"),
				Body:          body,
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_CreateEnvelope_Success(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := newTestServer(t, http.StatusCreated,
		`{"envelopeId":"4b728be4-0000-4000-8000-000000000001","status":"sent","statusDateTime":"2026-10-19T10:00:00.0000000Z","uri":"/envelopes/4b728be4-0000-4000-8000-000000000001"}`,
		&calls, &last)

	client := NewClient(srv.URL+"/restapi/", "test-access-token")
	env := &EnvelopeDefinition{EmailSubject: "Please sign this document set", Status: StatusSent}

	summary, err := client.CreateEnvelope(context.Background(), "account-123", env)
	require.NoError(t, err)

	assert.Equal(t, "4b728be4-0000-4000-8000-000000000001", summary.EnvelopeID)
	assert.Equal(t, "sent", summary.Status)
	assert.Equal(t, "/envelopes/4b728be4-0000-4000-8000-000000000001", summary.URI)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/restapi/v2.1/accounts/account-123/envelopes", last.Path)
	assert.Equal(t, "Bearer test-access-token", last.Authorization)
	assert.Equal(t, "application/json", last.ContentType)

	var sent EnvelopeDefinition
	require.NoError(t, json.Unmarshal(last.Body, &sent))
	assert.Equal(t, "sent", sent.Status)
	assert.Equal(t, "Please sign this document set", sent.EmailSubject)
}

func TestClient_CreateEnvelope_AcceptsAny2xx(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "ok", status: http.StatusOK},
		{name: "created", status: http.StatusCreated},
		{name: "accepted", status: http.StatusAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := newTestServer(t, tt.status, `{"envelopeId":"env-2","status":"sent"}`, &calls, nil)
			client := NewClient(srv.URL, "token")

			summary, err := client.CreateEnvelope(context.Background(), "account-123", &EnvelopeDefinition{})
			require.NoError(t, err)
			assert.Equal(t, "env-2", summary.EnvelopeID)
			assert.Equal(t, "sent", summary.Status)
		})
	}
}

func TestClient_CreateEnvelope_APIError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		response    string
		wantCode    string
		wantMessage string
	}{
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			response:    `{"errorCode":"USER_AUTHENTICATION_FAILED","message":"One or both of Username and Password are invalid."}`,
			wantCode:    "USER_AUTHENTICATION_FAILED",
			wantMessage: "One or both of Username and Password are invalid.",
		},
		{
			name:        "invalid request",
			status:      http.StatusBadRequest,
			response:    `{"errorCode":"INVALID_REQUEST_PARAMETER","message":"The request contained at least one invalid parameter."}`,
			wantCode:    "INVALID_REQUEST_PARAMETER",
			wantMessage: "The request contained at least one invalid parameter.",
		},
		{
			name:     "non-json gateway error",
			status:   http.StatusBadGateway,
			response: `upstream unavailable`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			srv := newTestServer(t, tt.status, tt.response, &calls, nil)
			client := NewClient(srv.URL, "token")

			summary, err := client.CreateEnvelope(context.Background(), "account-123", &EnvelopeDefinition{})
			assert.Nil(t, summary)
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, tt.response, apiErr.Body)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_CreateEnvelope_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client := NewClient(baseURL, "token")
	_, err := client.CreateEnvelope(context.Background(), "account-123", &EnvelopeDefinition{})

	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "failed to execute request")
}

func TestClient_CreateEnvelope_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := NewClient(srv.URL, "token")
	_, err := client.CreateEnvelope(ctx, "account-123", &EnvelopeDefinition{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestClient_GetEnvelope(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := newTestServer(t, http.StatusOK,
		`{"envelopeId":"env-1","status":"created","emailSubject":"Please sign this document set","createdDateTime":"2026-10-19T10:00:00Z"}`,
		&calls, &last)

	client := NewClient(srv.URL, "token")
	env, err := client.GetEnvelope(context.Background(), "account-123", "env-1")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, last.Method)
	assert.Equal(t, "/v2.1/accounts/account-123/envelopes/env-1", last.Path)
	assert.Equal(t, "Bearer token", last.Authorization)
	assert.Equal(t, "env-1", env.EnvelopeID)
	assert.Equal(t, "created", env.Status)
	assert.Equal(t, "Please sign this document set", env.EmailSubject)
}

func TestClient_GetEnvelope_NotFound(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusNotFound,
		`{"errorCode":"ENVELOPE_DOES_NOT_EXIST","message":"The envelope specified either does not exist or you have no rights to the envelope."}`,
		&calls, nil)

	client := NewClient(srv.URL, "token")
	_, err := client.GetEnvelope(context.Background(), "account-123", "missing")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "ENVELOPE_DOES_NOT_EXIST", apiErr.ErrorCode)
}

func TestAPIError_Error(t *testing.T) {
	withCode := &APIError{StatusCode: 400, ErrorCode: "INVALID_EMAIL_ADDRESS_FOR_RECIPIENT", Message: "bad email"}
	assert.Equal(t, "esign api error (status 400): INVALID_EMAIL_ADDRESS_FOR_RECIPIENT: bad email", withCode.Error())

	raw := &APIError{StatusCode: 503, Body: "maintenance"}
	assert.Equal(t, "esign api error (status 503): maintenance", raw.Error())
}
