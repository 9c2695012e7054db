package esign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEnvelope_Success(t *testing.T) {
	var calls int32
	var last recordedRequest
	srv := newTestServer(t, http.StatusCreated, `{"envelopeId":"env-42","status":"sent"}`, &calls, &last)

	envArgs := createTestArgs()
	reader := newTestReader(t, map[string][]byte{envArgs.DocPDF: testPDF})

	summary, err := ScheduleEnvelope(context.Background(), reader, Args{
		BasePath:     srv.URL,
		AccessToken:  "access-token",
		AccountID:    "account-9",
		EnvelopeArgs: envArgs,
	})
	require.NoError(t, err)
	assert.Equal(t, &EnvelopeSummary{EnvelopeID: "env-42", Status: "sent"}, summary)

	assert.Equal(t, "/v2.1/accounts/account-9/envelopes", last.Path)
	assert.Equal(t, "Bearer access-token", last.Authorization)

	var sent EnvelopeDefinition
	require.NoError(t, json.Unmarshal(last.Body, &sent))
	require.Len(t, sent.Documents, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString(testPDF), sent.Documents[0].DocumentBase64)
	assert.Equal(t, "2026-11-02T09:30:00Z", sent.Workflow.WorkflowSteps[0].ScheduledSending.Rules[0].ResumeDate)
}

func TestScheduleEnvelope_MissingDocumentSkipsNetwork(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusCreated, `{"envelopeId":"env-42","status":"sent"}`, &calls, nil)

	summary, err := ScheduleEnvelope(context.Background(), newTestReader(t, nil), Args{
		BasePath:     srv.URL,
		AccessToken:  "access-token",
		AccountID:    "account-9",
		EnvelopeArgs: createTestArgs(),
	})

	assert.Nil(t, summary)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestScheduleEnvelope_APIErrorPassedThrough(t *testing.T) {
	var calls int32
	srv := newTestServer(t, http.StatusBadRequest,
		`{"errorCode":"INVALID_DATE_FORMAT","message":"resumeDate is invalid"}`, &calls, nil)

	envArgs := createTestArgs()
	reader := newTestReader(t, map[string][]byte{envArgs.DocPDF: testPDF})
	client := NewClient(srv.URL, "access-token")

	_, err := client.ScheduleEnvelope(context.Background(), reader, "account-9", envArgs)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "INVALID_DATE_FORMAT", apiErr.ErrorCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
