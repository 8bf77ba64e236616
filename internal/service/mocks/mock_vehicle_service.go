package mocks

import (
	"context"

	"fleetdocs/internal/model"
	"fleetdocs/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) List(ctx context.Context, userID, search string) ([]model.VehicleWithDocuments, error) {
	args := m.Called(ctx, userID, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleService) Get(ctx context.Context, userID, id string) (*model.VehicleWithDocuments, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleService) Create(ctx context.Context, userID string, in service.VehicleInput) (*model.Vehicle, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleService) CreateWithDocuments(ctx context.Context, userID string, in service.VehicleWithDocumentsInput) (*model.VehicleWithDocuments, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.VehicleWithDocuments), args.Error(1)
}

func (m *MockVehicleService) Update(ctx context.Context, userID, id string, in service.UpdateVehicleInput) (*model.Vehicle, error) {
	args := m.Called(ctx, userID, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockVehicleService) Delete(ctx context.Context, userID, id string) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

func (m *MockVehicleService) Alerts(ctx context.Context, userID string) (*model.AlertSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AlertSummary), args.Error(1)
}
