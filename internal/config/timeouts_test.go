package config

import (
	"testing"
	"time"
)

func TestLoadTimeouts_Defaults(t *testing.T) {
	t.Setenv("DELIVERY_CLUSTER_TIMEOUT_LOOKUP", "")
	t.Setenv("DELIVERY_CLUSTER_TIMEOUT_SSH_DIAL", "")
	t.Setenv("DELIVERY_CLUSTER_RETRY_MAX_ATTEMPTS", "")
	t.Setenv("DELIVERY_CLUSTER_RETRY_INITIAL_DELAY", "")

	timeouts := LoadTimeouts()

	if timeouts.DirectoryLookup != 30*time.Second {
		t.Errorf("Expected DirectoryLookup default 30s, got %v", timeouts.DirectoryLookup)
	}
	if timeouts.SSHDial != 10*time.Second {
		t.Errorf("Expected SSHDial default 10s, got %v", timeouts.SSHDial)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected RetryMaxAttempts default 3, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 500*time.Millisecond {
		t.Errorf("Expected RetryInitialDelay default 500ms, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_FromEnv(t *testing.T) {
	t.Setenv("DELIVERY_CLUSTER_TIMEOUT_LOOKUP", "5s")
	t.Setenv("DELIVERY_CLUSTER_TIMEOUT_SSH_DIAL", "1m")
	t.Setenv("DELIVERY_CLUSTER_RETRY_MAX_ATTEMPTS", "7")
	t.Setenv("DELIVERY_CLUSTER_RETRY_INITIAL_DELAY", "2s")

	timeouts := LoadTimeouts()

	if timeouts.DirectoryLookup != 5*time.Second {
		t.Errorf("Expected DirectoryLookup 5s, got %v", timeouts.DirectoryLookup)
	}
	if timeouts.SSHDial != time.Minute {
		t.Errorf("Expected SSHDial 1m, got %v", timeouts.SSHDial)
	}
	if timeouts.RetryMaxAttempts != 7 {
		t.Errorf("Expected RetryMaxAttempts 7, got %d", timeouts.RetryMaxAttempts)
	}
	if timeouts.RetryInitialDelay != 2*time.Second {
		t.Errorf("Expected RetryInitialDelay 2s, got %v", timeouts.RetryInitialDelay)
	}
}

func TestLoadTimeouts_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("DELIVERY_CLUSTER_TIMEOUT_LOOKUP", "soon")
	t.Setenv("DELIVERY_CLUSTER_RETRY_MAX_ATTEMPTS", "-2")

	timeouts := LoadTimeouts()

	if timeouts.DirectoryLookup != 30*time.Second {
		t.Errorf("Expected fallback 30s, got %v", timeouts.DirectoryLookup)
	}
	if timeouts.RetryMaxAttempts != 3 {
		t.Errorf("Expected fallback 3, got %d", timeouts.RetryMaxAttempts)
	}
}
