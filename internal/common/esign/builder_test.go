package esign

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

var testPDF = []byte("%PDF-1.4\n/sn1/ **signature_1**\n%%EOF")

func newTestReader(t *testing.T, files map[string][]byte) *FileReader {
	t.Helper()
	memFs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, afero.WriteFile(memFs, path, content, 0o644))
	}
	return NewFileReader(memFs)
}

func createTestArgs() EnvelopeArgs {
	return EnvelopeArgs{
		SignerEmail: "signer@example.com",
		SignerName:  "Jane Signer",
		DocPDF:      "/docs/World_Wide_Corp_lorem.pdf",
		ResumeDate:  time.Date(2026, 11, 2, 9, 30, 0, 0, time.UTC),
	}
}

// ==========================
// Builder Tests
// ==========================

func TestMakeEnvelope_Document(t *testing.T) {
	args := createTestArgs()
	reader := newTestReader(t, map[string][]byte{args.DocPDF: testPDF})

	env, err := MakeEnvelope(context.Background(), reader, args)
	require.NoError(t, err)

	require.Len(t, env.Documents, 1)
	doc := env.Documents[0]
	assert.Equal(t, base64.StdEncoding.EncodeToString(testPDF), doc.DocumentBase64)
	assert.Equal(t, "Lorem Ipsum", doc.Name)
	assert.Equal(t, "pdf", doc.FileExtension)
	assert.Equal(t, "1", doc.DocumentID)
	assert.Equal(t, "Please sign this document set", env.EmailSubject)
}

func TestMakeEnvelope_Signer(t *testing.T) {
	args := createTestArgs()
	reader := newTestReader(t, map[string][]byte{args.DocPDF: testPDF})

	env, err := MakeEnvelope(context.Background(), reader, args)
	require.NoError(t, err)

	require.NotNil(t, env.Recipients)
	require.Len(t, env.Recipients.Signers, 1)
	signer := env.Recipients.Signers[0]
	assert.Equal(t, "signer@example.com", signer.Email)
	assert.Equal(t, "Jane Signer", signer.Name)
	assert.Equal(t, "1", signer.RecipientID)
	assert.Equal(t, "1", signer.RoutingOrder)
}

func TestMakeEnvelope_AnchorTabs(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "document containing anchors", content: testPDF},
		{name: "document without anchors", content: []byte("%PDF-1.4\nplain text\n%%EOF")},
		{name: "empty document", content: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := createTestArgs()
			reader := newTestReader(t, map[string][]byte{args.DocPDF: tt.content})

			env, err := MakeEnvelope(context.Background(), reader, args)
			require.NoError(t, err)

			tabs := env.Recipients.Signers[0].Tabs
			require.NotNil(t, tabs)
			require.Len(t, tabs.SignHereTabs, 2)

			anchors := []string{tabs.SignHereTabs[0].AnchorString, tabs.SignHereTabs[1].AnchorString}
			assert.ElementsMatch(t, []string{"**signature_1**", "/sn1/"}, anchors)
			for _, tab := range tabs.SignHereTabs {
				assert.Equal(t, "pixels", tab.AnchorUnits)
				assert.Equal(t, "20", tab.AnchorXOffset)
				assert.Equal(t, "10", tab.AnchorYOffset)
			}
		})
	}
}

func TestMakeEnvelope_ScheduledSendingRule(t *testing.T) {
	args := createTestArgs()
	reader := newTestReader(t, map[string][]byte{args.DocPDF: testPDF})

	env, err := MakeEnvelope(context.Background(), reader, args)
	require.NoError(t, err)

	require.NotNil(t, env.Workflow)
	require.Len(t, env.Workflow.WorkflowSteps, 1)
	sending := env.Workflow.WorkflowSteps[0].ScheduledSending
	require.NotNil(t, sending)
	assert.Equal(t, "pending", sending.Status)
	require.Len(t, sending.Rules, 1)
	assert.Equal(t, "2026-11-02T09:30:00Z", sending.Rules[0].ResumeDate)
	assert.Equal(t, FormatResumeDate(args.ResumeDate), sending.Rules[0].ResumeDate)
}

func TestMakeEnvelope_ResumeDateNormalizedToUTC(t *testing.T) {
	args := createTestArgs()
	loc := time.FixedZone("UTC+2", 2*60*60)
	args.ResumeDate = time.Date(2026, 11, 2, 11, 30, 0, 0, loc)
	reader := newTestReader(t, map[string][]byte{args.DocPDF: testPDF})

	env, err := MakeEnvelope(context.Background(), reader, args)
	require.NoError(t, err)

	rule := env.Workflow.WorkflowSteps[0].ScheduledSending.Rules[0]
	assert.Equal(t, "2026-11-02T09:30:00Z", rule.ResumeDate)
}

func TestMakeEnvelope_StatusAlwaysSent(t *testing.T) {
	inputs := []EnvelopeArgs{
		createTestArgs(),
		{DocPDF: "/docs/World_Wide_Corp_lorem.pdf"},
		{SignerEmail: "not-an-email", SignerName: "", DocPDF: "/docs/World_Wide_Corp_lorem.pdf", ResumeDate: time.Time{}},
	}
	reader := newTestReader(t, map[string][]byte{"/docs/World_Wide_Corp_lorem.pdf": testPDF})

	for _, args := range inputs {
		env, err := MakeEnvelope(context.Background(), reader, args)
		require.NoError(t, err)
		assert.Equal(t, StatusSent, env.Status)
	}
}

func TestMakeEnvelope_MissingDocument(t *testing.T) {
	reader := newTestReader(t, nil)

	env, err := MakeEnvelope(context.Background(), reader, createTestArgs())

	assert.Nil(t, env)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "/docs/World_Wide_Corp_lorem.pdf")
}

func TestMakeEnvelope_JSONShape(t *testing.T) {
	args := createTestArgs()
	reader := newTestReader(t, map[string][]byte{args.DocPDF: testPDF})

	env, err := MakeEnvelope(context.Background(), reader, args)
	require.NoError(t, err)

	raw, err := json.Marshal(env)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "sent", decoded["status"])
	workflow := decoded["workflow"].(map[string]interface{})
	steps := workflow["workflowSteps"].([]interface{})
	sending := steps[0].(map[string]interface{})["scheduledSending"].(map[string]interface{})
	rules := sending["rules"].([]interface{})
	assert.Equal(t, "2026-11-02T09:30:00Z", rules[0].(map[string]interface{})["resumeDate"])

	signers := decoded["recipients"].(map[string]interface{})["signers"].([]interface{})
	tabs := signers[0].(map[string]interface{})["tabs"].(map[string]interface{})
	assert.Len(t, tabs["signHereTabs"], 2)
}
