// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	Camunda CamundaConfig           `mapstructure:"camunda"`
	ESign   ESignConfig             `mapstructure:"esign"`
	Storage StorageConfig           `mapstructure:"storage"`
	Workers map[string]WorkerConfig `mapstructure:"workers"`
	Logging LoggingConfig           `mapstructure:"logging"`
	Metrics MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	UsePlaintext   bool   `mapstructure:"use_plaintext"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// --- Specific Configuration Sections ---

// ESignConfig points the envelope client at one eSignature account.
type ESignConfig struct {
	BasePath    string `mapstructure:"base_path"`
	AccessToken string `mapstructure:"access_token"`
	AccountID   string `mapstructure:"account_id"`
	DocumentDir string `mapstructure:"document_dir"`
}

// StorageConfig configures where s3:// documents are read from.
type StorageConfig struct {
	S3 S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UsePathStyle    bool   `mapstructure:"use_path_style"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls the /metrics and health endpoints.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port"`
	Path    string `mapstructure:"path"`
}
