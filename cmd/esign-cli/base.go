package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"esign-workers/internal/common/aws"
	"esign-workers/internal/common/config"
	"esign-workers/internal/common/esign"
	"esign-workers/internal/common/logger"
)

type baseCommand struct {
	UI     cli.Ui
	Log    logger.Logger
	Fs     afero.Fs
	Getenv func(string) string

	flagBasePath    string
	flagAccessToken string
	flagAccountID   string
}

// connectionFlags registers the flags every API command shares. Unset flags
// fall back to ESIGN_BASE_PATH, ESIGN_ACCESS_TOKEN and ESIGN_ACCOUNT_ID.
func (c *baseCommand) connectionFlags(f *flag.FlagSet) {
	f.StringVar(&c.flagBasePath, "base-path", "",
		"API base path, e.g. https://demo.docusign.net/restapi. Env: ESIGN_BASE_PATH")
	f.StringVar(&c.flagAccessToken, "access-token", "",
		"OAuth access token. Env: ESIGN_ACCESS_TOKEN")
	f.StringVar(&c.flagAccountID, "account-id", "",
		"Account the envelope belongs to. Env: ESIGN_ACCOUNT_ID")
}

func (c *baseCommand) resolveConnection() error {
	c.flagBasePath = c.fallback(c.flagBasePath, "ESIGN_BASE_PATH")
	c.flagAccessToken = c.fallback(c.flagAccessToken, "ESIGN_ACCESS_TOKEN")
	c.flagAccountID = c.fallback(c.flagAccountID, "ESIGN_ACCOUNT_ID")

	var missing []string
	if c.flagBasePath == "" {
		missing = append(missing, "base-path")
	}
	if c.flagAccessToken == "" {
		missing = append(missing, "access-token")
	}
	if c.flagAccountID == "" {
		missing = append(missing, "account-id")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *baseCommand) fallback(value, envKey string) string {
	if value != "" || c.Getenv == nil {
		return value
	}
	return c.Getenv(envKey)
}

// documentReader reads local files from c.Fs. An S3 client is only created
// for s3:// paths, configured from AWS_REGION and ESIGN_S3_ENDPOINT.
func (c *baseCommand) documentReader(ctx context.Context, path string) (esign.DocumentReader, error) {
	reader := &esign.SourceReader{Local: esign.NewFileReader(c.Fs)}
	if !strings.HasPrefix(path, "s3://") {
		return reader, nil
	}

	endpoint := c.fallback("", "ESIGN_S3_ENDPOINT")
	s3Client, err := aws.NewS3Client(ctx, config.S3Config{
		Enabled:      true,
		Region:       c.fallback("", "AWS_REGION"),
		Endpoint:     endpoint,
		UsePathStyle: endpoint != "",
	})
	if err != nil {
		return nil, err
	}
	reader.Remote = esign.NewS3Reader(s3Client)
	return reader, nil
}

func (c *baseCommand) outputJSON(v interface{}) int {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding output: %v", err))
		return 1
	}
	c.UI.Output(string(out))
	return 0
}

func (c *baseCommand) apiError(action string, err error) int {
	c.Log.Error(action+" failed", map[string]interface{}{"error": err.Error()})
	c.UI.Error(fmt.Sprintf("%s failed: %v", action, err))
	return 1
}
