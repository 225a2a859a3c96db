// Package retry provides exponential backoff for transient collaborator
// failures such as node directory lookups and SSH dials.
//
// Errors wrapped with [Fatal] stop the loop immediately. Context
// cancellation is honored between attempts.
package retry
