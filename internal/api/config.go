package api

import "time"

type Config struct {
	HTTPAddr        string        `envconfig:"MDR_HTTP_ADDR" default:"0.0.0.0:8080"`
	MetricsAddr     string        `envconfig:"MDR_METRICS_ADDR" default:"0.0.0.0:9090"`
	LogLevel        string        `envconfig:"MDR_LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"MDR_SHUTDOWN_TIMEOUT" default:"30s"`

	FabricAPIURL  string `envconfig:"MDR_FABRIC_API_URL" default:"https://api.fabric.microsoft.com/v1"`
	TokenAudience string `envconfig:"MDR_TOKEN_AUDIENCE" default:"https://api.fabric.microsoft.com"`
	// StaticToken bypasses the Azure credential chain when set.
	StaticToken string `envconfig:"MDR_STATIC_TOKEN"`

	PollInterval  time.Duration `envconfig:"MDR_POLL_INTERVAL" default:"30s"`
	MaxWait       time.Duration `envconfig:"MDR_MAX_WAIT" default:"30m"`
	SweepInterval time.Duration `envconfig:"MDR_JOB_SWEEP_INTERVAL" default:"10m"`
	JobRetention  time.Duration `envconfig:"MDR_JOB_RETENTION" default:"24h"`
}
