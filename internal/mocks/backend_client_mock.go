package mocks

import (
	"context"

	"avatar-studio/internal/client"
	"avatar-studio/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockBackendClient is a mock type for the BackendClient type
type MockBackendClient struct {
	mock.Mock
}

// GetConfig provides a mock function with given fields: ctx
func (_m *MockBackendClient) GetConfig(ctx context.Context) (*models.Configuration, error) {
	ret := _m.Called(ctx)

	var r0 *models.Configuration
	if rf, ok := ret.Get(0).(func(context.Context) *models.Configuration); ok {
		r0 = rf(ctx)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.Configuration)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// CreateContent provides a mock function with given fields: ctx, req
func (_m *MockBackendClient) CreateContent(ctx context.Context, req models.ContentRequest) (*models.ContentCreation, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.ContentCreation
	if rf, ok := ret.Get(0).(func(context.Context, models.ContentRequest) *models.ContentCreation); ok {
		r0 = rf(ctx, req)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ContentCreation)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, models.ContentRequest) error); ok {
		r1 = rf(ctx, req)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// UpdateChecklist provides a mock function with given fields: ctx, sessionID, update
func (_m *MockBackendClient) UpdateChecklist(ctx context.Context, sessionID string, update models.ChecklistUpdate) (*models.ChecklistState, error) {
	ret := _m.Called(ctx, sessionID, update)

	var r0 *models.ChecklistState
	if rf, ok := ret.Get(0).(func(context.Context, string, models.ChecklistUpdate) *models.ChecklistState); ok {
		r0 = rf(ctx, sessionID, update)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ChecklistState)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string, models.ChecklistUpdate) error); ok {
		r1 = rf(ctx, sessionID, update)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetChecklist provides a mock function with given fields: ctx, sessionID
func (_m *MockBackendClient) GetChecklist(ctx context.Context, sessionID string) (*models.ChecklistState, error) {
	ret := _m.Called(ctx, sessionID)

	var r0 *models.ChecklistState
	if rf, ok := ret.Get(0).(func(context.Context, string) *models.ChecklistState); ok {
		r0 = rf(ctx, sessionID)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*models.ChecklistState)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, sessionID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockBackendClient creates a new instance of MockBackendClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewMockBackendClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBackendClient {
	m := &MockBackendClient{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

var _ client.BackendClient = (*MockBackendClient)(nil)
