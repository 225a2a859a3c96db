package hcloud

import (
	"errors"
	"testing"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/cvent/delivery-cluster/internal/directory"
	"github.com/cvent/delivery-cluster/internal/util/retry"
)

func TestIsResourceLocked(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "generic error",
			err:      errors.New("something went wrong"),
			expected: false,
		},
		{
			name:     "hcloud locked error",
			err:      hcloud.Error{Code: hcloud.ErrorCodeLocked, Message: "resource is locked"},
			expected: true,
		},
		{
			name:     "hcloud conflict error",
			err:      hcloud.Error{Code: hcloud.ErrorCodeConflict, Message: "conflict occurred"},
			expected: true,
		},
		{
			name:     "hcloud not found error (not locked)",
			err:      hcloud.Error{Code: hcloud.ErrorCodeNotFound, Message: "not found"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isResourceLocked(tt.err)
			if result != tt.expected {
				t.Errorf("isResourceLocked(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantNotFound bool
		wantFatal    bool
	}{
		{
			name:         "not found",
			err:          hcloud.Error{Code: hcloud.ErrorCodeNotFound, Message: "server not found"},
			wantNotFound: true,
			wantFatal:    false,
		},
		{
			name:      "unauthorized is fatal",
			err:       hcloud.Error{Code: hcloud.ErrorCodeUnauthorized, Message: "unable to authenticate"},
			wantFatal: true,
		},
		{
			name:      "invalid input is fatal",
			err:       hcloud.Error{Code: hcloud.ErrorCodeInvalidInput, Message: "invalid name"},
			wantFatal: true,
		},
		{
			name: "rate limit is retryable",
			err:  hcloud.Error{Code: hcloud.ErrorCodeRateLimitExceeded, Message: "slow down"},
		},
		{
			name: "locked is retryable",
			err:  hcloud.Error{Code: hcloud.ErrorCodeLocked, Message: "locked"},
		},
		{
			name: "transport error is retryable",
			err:  errors.New("connection reset by peer"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify("delivery-server-chefspec", tt.err)
			if errors.Is(got, directory.ErrNotFound) != tt.wantNotFound {
				t.Errorf("classify() not found = %v, want %v (%v)", !tt.wantNotFound, tt.wantNotFound, got)
			}
			if retry.IsFatal(got) != tt.wantFatal {
				t.Errorf("classify() fatal = %v, want %v (%v)", !tt.wantFatal, tt.wantFatal, got)
			}
		})
	}
}

func TestIsRateLimited(t *testing.T) {
	if !isRateLimited(hcloud.Error{Code: hcloud.ErrorCodeRateLimitExceeded}) {
		t.Error("expected rate limit error to be detected")
	}
	if isRateLimited(errors.New("rate limit")) {
		t.Error("plain errors must not be classified as hcloud rate limits")
	}
}
