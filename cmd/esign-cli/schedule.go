package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"esign-workers/internal/common/esign"
)

type ScheduleCommand struct {
	*baseCommand

	flagSignerEmail string
	flagSignerName  string
	flagDoc         string
	flagResumeDate  string
	flagTimeout     time.Duration
}

type scheduleResult struct {
	EnvelopeID     string `json:"envelopeId"`
	Status         string `json:"status"`
	StatusDateTime string `json:"statusDateTime,omitempty"`
	ResumeDate     string `json:"resumeDate"`
}

func (c *ScheduleCommand) Synopsis() string {
	return "Create an envelope that is sent at a future date"
}

func (c *ScheduleCommand) Help() string {
	var b strings.Builder
	c.Flags().SetOutput(&b)
	c.Flags().PrintDefaults()

	return `Usage: esign-cli schedule [options]

  Builds an envelope with one PDF and one signer and submits it with a
  scheduled-sending rule. The signer receives the envelope once the
  resume date has passed.

Options:
` + b.String()
}

func (c *ScheduleCommand) Flags() *flag.FlagSet {
	f := flag.NewFlagSet("schedule", flag.ContinueOnError)
	c.connectionFlags(f)

	f.StringVar(&c.flagSignerEmail, "signer-email", "", "(Required) Signer email address.")
	f.StringVar(&c.flagSignerName, "signer-name", "", "(Required) Signer full name.")
	f.StringVar(&c.flagDoc, "doc", "", "(Required) PDF path, local or s3://bucket/key.")
	f.StringVar(&c.flagResumeDate, "resume-date", "",
		"(Required) When to send, e.g. 2026-11-02T09:30:00Z. Values without a zone are UTC.")
	f.DurationVar(&c.flagTimeout, "timeout", 30*time.Second, "Request timeout.")

	return f
}

func (c *ScheduleCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if err := c.resolveConnection(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if c.flagSignerEmail == "" || c.flagSignerName == "" || c.flagDoc == "" || c.flagResumeDate == "" {
		c.UI.Error("signer-email, signer-name, doc and resume-date are required")
		return 1
	}

	resumeDate, err := dateparse.ParseIn(c.flagResumeDate, time.UTC)
	if err != nil {
		c.UI.Error(fmt.Sprintf("invalid resume-date %q: %v", c.flagResumeDate, err))
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	docs, err := c.documentReader(ctx, c.flagDoc)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error configuring document storage: %v", err))
		return 1
	}

	summary, err := esign.ScheduleEnvelope(ctx, docs, esign.Args{
		BasePath:    c.flagBasePath,
		AccessToken: c.flagAccessToken,
		AccountID:   c.flagAccountID,
		EnvelopeArgs: esign.EnvelopeArgs{
			SignerEmail: c.flagSignerEmail,
			SignerName:  c.flagSignerName,
			DocPDF:      c.flagDoc,
			ResumeDate:  resumeDate,
		},
	})
	if err != nil {
		return c.apiError("schedule envelope", err)
	}

	c.Log.Info("Envelope scheduled", map[string]interface{}{
		"envelopeId": summary.EnvelopeID,
		"status":     summary.Status,
	})

	return c.outputJSON(scheduleResult{
		EnvelopeID:     summary.EnvelopeID,
		Status:         summary.Status,
		StatusDateTime: summary.StatusDateTime,
		ResumeDate:     esign.FormatResumeDate(resumeDate),
	})
}
