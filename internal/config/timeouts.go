package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the time budgets of blocking collaborator calls.
// The resolver itself never applies them; callers wrap lookups with them.
type Timeouts struct {
	DirectoryLookup   time.Duration // Budget for a single node directory lookup
	SSHDial           time.Duration // TCP dial timeout for verify
	RetryMaxAttempts  int           // Retries after the first directory attempt
	RetryInitialDelay time.Duration // Initial backoff between directory attempts
}

// LoadTimeouts loads timeout configuration from environment variables.
// Unset or unparsable variables fall back to defaults.
//
// Environment Variables:
//   - DELIVERY_CLUSTER_TIMEOUT_LOOKUP (default: 30s)
//   - DELIVERY_CLUSTER_TIMEOUT_SSH_DIAL (default: 10s)
//   - DELIVERY_CLUSTER_RETRY_MAX_ATTEMPTS (default: 3)
//   - DELIVERY_CLUSTER_RETRY_INITIAL_DELAY (default: 500ms)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		DirectoryLookup:   parseDuration("DELIVERY_CLUSTER_TIMEOUT_LOOKUP", 30*time.Second),
		SSHDial:           parseDuration("DELIVERY_CLUSTER_TIMEOUT_SSH_DIAL", 10*time.Second),
		RetryMaxAttempts:  parseInt("DELIVERY_CLUSTER_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: parseDuration("DELIVERY_CLUSTER_RETRY_INITIAL_DELAY", 500*time.Millisecond),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d < 0 {
		return defaultVal
	}

	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil || i < 0 {
		return defaultVal
	}

	return i
}
