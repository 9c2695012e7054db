package main

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"esign-workers/internal/common/esign"
)

type StatusCommand struct {
	*baseCommand

	flagEnvelopeID string
	flagTimeout    time.Duration
}

func (c *StatusCommand) Synopsis() string {
	return "Show the status of an envelope"
}

func (c *StatusCommand) Help() string {
	var b strings.Builder
	c.Flags().SetOutput(&b)
	c.Flags().PrintDefaults()

	return `Usage: esign-cli status -envelope-id <id> [options]

  Looks up an envelope and prints its status and timestamps. A scheduled
  envelope stays in "sent" with no recipient activity until its resume
  date passes.

Options:
` + b.String()
}

func (c *StatusCommand) Flags() *flag.FlagSet {
	f := flag.NewFlagSet("status", flag.ContinueOnError)
	c.connectionFlags(f)

	f.StringVar(&c.flagEnvelopeID, "envelope-id", "", "(Required) Envelope to look up.")
	f.DurationVar(&c.flagTimeout, "timeout", 30*time.Second, "Request timeout.")

	return f
}

func (c *StatusCommand) Run(args []string) int {
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	if err := c.resolveConnection(); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if c.flagEnvelopeID == "" {
		c.UI.Error("envelope-id is required")
		return 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.flagTimeout)
	defer cancel()

	client := esign.NewClient(c.flagBasePath, c.flagAccessToken)
	envelope, err := client.GetEnvelope(ctx, c.flagAccountID, c.flagEnvelopeID)
	if err != nil {
		return c.apiError("get envelope", err)
	}

	return c.outputJSON(envelope)
}
