package apitest

import (
	"time"

	"signup-qa/internal/pkg/config"
)

// Config defines runtime inputs for API tests.
type Config struct {
	Env             string
	BaseURL         string
	APITimeout      time.Duration
	RetryCount      int
	ParallelWorkers int
	EmailPrefix     string
	EmailDomain     string
}

// LoadConfig reads environment variables with sensible defaults, loading a
// .env file first if one is present. An empty BaseURL means "no live
// environment": integration tests then start the in-process stub.
func LoadConfig() Config {
	config.LoadDotenv()

	return Config{
		Env:             config.GetEnvOrDefault("ENV", "dev"),
		BaseURL:         config.GetEnvOrDefault("BASE_URL", ""),
		APITimeout:      config.GetDurationOrDefault("API_TIMEOUT", 30*time.Second),
		RetryCount:      config.GetIntOrDefault("RETRY_COUNT", 2),
		ParallelWorkers: config.GetIntOrDefault("PARALLEL_WORKERS", 4),
		EmailPrefix:     config.GetEnvOrDefault("EMAIL_PREFIX", "test"),
		EmailDomain:     config.GetEnvOrDefault("EMAIL_DOMAIN", "example.com"),
	}
}

// IsDev reports whether the suite targets the development environment.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}

// HasLiveEnvironment reports whether a remote base URL was configured.
func (c Config) HasLiveEnvironment() bool {
	return c.BaseURL != ""
}
