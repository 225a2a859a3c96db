package topology

import (
	"errors"
	"fmt"

	"github.com/cvent/delivery-cluster/internal/config"
)

// Error kinds. Every resolution failure is a *ResolveError whose Kind is one of these.
var (
	// ErrMissingRoleConfiguration means the role has no section in the configuration.
	ErrMissingRoleConfiguration = errors.New("missing role configuration")
	// ErrMissingConnectionData means the ssh/local connection table has no address for the node.
	ErrMissingConnectionData = errors.New("missing connection data")
	// ErrDirectoryLookupFailed means the node directory could not produce an address.
	ErrDirectoryLookupFailed = errors.New("directory lookup failed")
	// ErrInvalidIndex means the index is out of range for the role.
	ErrInvalidIndex = errors.New("invalid index")
)

// ResolveError describes a failed resolution of one role instance.
type ResolveError struct {
	Kind  error
	Role  config.Role
	Index int
	Err   error
}

func (e *ResolveError) Error() string {
	target := string(e.Role)
	if e.Index != 0 {
		target = fmt.Sprintf("%s[%d]", e.Role, e.Index)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", target, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", target, e.Kind)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ResolveError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, role config.Role, index int, cause error) *ResolveError {
	return &ResolveError{Kind: kind, Role: role, Index: index, Err: cause}
}

// KindLabel returns a stable snake_case label for the kind of err, "error"
// when err carries no known kind, or "ok" when err is nil.
func KindLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrMissingRoleConfiguration):
		return "missing_role_configuration"
	case errors.Is(err, ErrMissingConnectionData):
		return "missing_connection_data"
	case errors.Is(err, ErrDirectoryLookupFailed):
		return "directory_lookup_failed"
	case errors.Is(err, ErrInvalidIndex):
		return "invalid_index"
	default:
		return "error"
	}
}
