// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/Rami-Pastrami/ghost-customs3-adapter/pkg/storage"
)

// MockStore is a mock implementation of the storage.ObjectStore interface
type MockStore struct {
	mock.Mock
}

// Name provides a mock function with given fields:
func (m *MockStore) Name() string {
	ret := m.Called()

	var r0 string
	if rf, ok := ret.Get(0).(func() string); ok {
		r0 = rf()
	} else {
		r0 = ret.Get(0).(string)
	}

	return r0
}

// Put provides a mock function with given fields: ctx, key, body, opts
func (m *MockStore) Put(ctx context.Context, key string, body io.Reader, opts storage.PutOptions) error {
	ret := m.Called(ctx, key, body, opts)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string, io.Reader, storage.PutOptions) error); ok {
		r0 = rf(ctx, key, body, opts)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// Head provides a mock function with given fields: ctx, key
func (m *MockStore) Head(ctx context.Context, key string) (*storage.ObjectInfo, error) {
	ret := m.Called(ctx, key)

	var r0 *storage.ObjectInfo
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*storage.ObjectInfo, error)); ok {
		return rf(ctx, key)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*storage.ObjectInfo)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Get provides a mock function with given fields: ctx, key
func (m *MockStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := m.Called(ctx, key)

	var r0 io.ReadCloser
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (io.ReadCloser, error)); ok {
		return rf(ctx, key)
	}
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}
	r1 = ret.Error(1)

	return r0, r1
}

// Delete provides a mock function with given fields: ctx, key
func (m *MockStore) Delete(ctx context.Context, key string) error {
	ret := m.Called(ctx, key)

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, string) error); ok {
		r0 = rf(ctx, key)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewMockStore creates a new instance of MockStore
func NewMockStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockStore {
	mock_1 := &MockStore{}
	mock_1.Mock.Test(t)

	t.Cleanup(func() { mock_1.AssertExpectations(t) })

	return mock_1
}

var _ storage.ObjectStore = (*MockStore)(nil)
