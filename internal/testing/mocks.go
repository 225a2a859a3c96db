package testing

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cvent/delivery-cluster/internal/directory"
)

// MockDirectory is a mock implementation of directory.Directory.
type MockDirectory struct {
	mock.Mock
}

// GetNodeRecord returns the mocked record for name.
func (m *MockDirectory) GetNodeRecord(ctx context.Context, name string) (*directory.NodeRecord, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.NodeRecord), args.Error(1)
}
