package envelopeschedule

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled" json:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active" json:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout" json:"timeout"`
	BasePath      string        `mapstructure:"base_path" json:"base_path"`
	AccessToken   string        `mapstructure:"access_token" json:"access_token"`
	AccountID     string        `mapstructure:"account_id" json:"account_id"`
	DocumentDir   string        `mapstructure:"document_dir" json:"document_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       30 * time.Second,
	}
}

// Validate checks the worker config. AccountID may be empty when every job
// supplies its own accountId variable.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.MaxJobsActive, validation.Required, validation.Min(1)),
		validation.Field(&c.BasePath, validation.Required, is.URL),
		validation.Field(&c.AccessToken, validation.Required),
	)
}
