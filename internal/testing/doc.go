// Package testing provides test utilities, builders, and fixtures for unit tests.
//
// This package centralizes common testing patterns to avoid duplication across test files:
//   - ConfigBuilder: Fluent builder for creating cluster configurations
//   - ChefSpecConfig: The reference "chefspec" cluster used across resolver tests
//   - MockDirectory: testify mock of the node directory
//
// Usage:
//
//	cfg := testing.NewConfigBuilder().
//	    WithDriver(config.DriverHCloud).
//	    WithRole(config.RoleDelivery, config.RoleConfig{}).
//	    WithBuilders(3).
//	    Build()
//
//	dir := &testing.MockDirectory{}
//	dir.On("GetNodeRecord", mock.Anything, "delivery-server-chefspec").
//	    Return(&directory.NodeRecord{PublicIPv4: "192.0.2.1"}, nil)
package testing
