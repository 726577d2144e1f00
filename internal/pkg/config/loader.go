package config

import (
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var dotenvOnce sync.Once

// LoadDotenv loads a .env file once, best effort. Environment variables set
// by the shell always win because godotenv never overwrites existing keys.
func LoadDotenv() {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})
}

// GetEnvOrDefault reads an environment variable with a fallback value.
func GetEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// MustGetEnv reads an environment variable, panicking when it is unset.
// Reserved for values the process cannot run without.
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic("required environment variable not set: " + key)
	}
	return value
}

// GetIntOrDefault reads an integer environment variable with a fallback.
func GetIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// GetBoolOrDefault reads a boolean environment variable with a fallback.
func GetBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}

// GetDurationOrDefault reads a duration environment variable with a
// fallback. Plain integers are interpreted as seconds for compatibility
// with configs that predate duration strings.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}
