package queries_test

import (
	"context"

	"production/internal/core/domain/model/batch"
	"production/internal/core/domain/model/kernel"
	"production/internal/core/domain/model/mixorder"
	"production/internal/core/domain/model/mobilerun"
	"production/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockMixOrderReader struct {
	mock.Mock
}

func (m *MockMixOrderReader) Get(ctx context.Context, tenantID, id kernel.UUID) (mixorder.MixOrder, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(mixorder.MixOrder), args.Error(1)
}

func (m *MockMixOrderReader) List(ctx context.Context, tenantID kernel.UUID, filter ports.MixOrderFilter) ([]mixorder.MixOrder, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]mixorder.MixOrder), args.Error(1)
}

type MockBatchReader struct {
	mock.Mock
}

func (m *MockBatchReader) Get(ctx context.Context, tenantID, id kernel.UUID) (batch.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(batch.Batch), args.Error(1)
}

func (m *MockBatchReader) List(ctx context.Context, tenantID kernel.UUID, filter ports.BatchFilter) ([]batch.Batch, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]batch.Batch), args.Error(1)
}

func (m *MockBatchReader) ListChildren(ctx context.Context, tenantID, id kernel.UUID) ([]batch.Batch, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).([]batch.Batch), args.Error(1)
}

type MockMobileRunReader struct {
	mock.Mock
}

func (m *MockMobileRunReader) Get(ctx context.Context, tenantID, id kernel.UUID) (mobilerun.MobileRun, error) {
	args := m.Called(ctx, tenantID, id)
	return args.Get(0).(mobilerun.MobileRun), args.Error(1)
}

func (m *MockMobileRunReader) List(ctx context.Context, tenantID kernel.UUID, filter ports.MobileRunFilter) ([]mobilerun.MobileRun, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]mobilerun.MobileRun), args.Error(1)
}

type MockActiveMobileRunReader struct {
	mock.Mock
}

func (m *MockActiveMobileRunReader) ListActive(ctx context.Context) ([]mobilerun.MobileRun, error) {
	args := m.Called(ctx)
	runs, _ := args.Get(0).([]mobilerun.MobileRun)
	return runs, args.Error(1)
}
