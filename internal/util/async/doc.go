// Package async provides helpers for running independent operations in
// parallel, such as resolving every node of a cluster at once.
package async
