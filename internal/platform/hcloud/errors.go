package hcloud

import (
	"errors"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/cvent/delivery-cluster/internal/directory"
	"github.com/cvent/delivery-cluster/internal/util/retry"
)

// isResourceLocked checks if an error indicates a resource is locked.
// Lookups against a server under a running action may hit this. Retryable.
func isResourceLocked(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeLocked,
		hcloud.ErrorCodeConflict,
		hcloud.ErrorCodeResourceLocked,
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isPermanent checks if retrying cannot change the outcome.
func isPermanent(err error) bool {
	return isHCloudErrorCode(err,
		hcloud.ErrorCodeInvalidInput,
		hcloud.ErrorCodeUnauthorized,
		hcloud.ErrorCodeForbidden,
	)
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeNotFound)
}

// isRateLimited checks if an error indicates rate limiting. Retryable.
func isRateLimited(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeRateLimitExceeded)
}

// classify maps an API error of a lookup onto directory semantics.
func classify(name string, err error) error {
	switch {
	case IsNotFound(err):
		return fmt.Errorf("%w: %s", directory.ErrNotFound, name)
	case isPermanent(err):
		return retry.Fatal(fmt.Errorf("failed to get server %s: %w", name, err))
	default:
		return fmt.Errorf("failed to get server %s: %w", name, err)
	}
}
